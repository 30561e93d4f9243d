// Package testutil provides thread generators and chat-list assertions
// shared by tests across the repo.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vanderheijden86/threadline/pkg/model"
)

// GeneratorOptions configures synthetic thread generation.
type GeneratorOptions struct {
	// Count is the number of threads to generate.
	Count int
	// Seed makes generation deterministic.
	Seed int64
	// PinnedRatio is the fraction of threads that are pinned (0..1).
	PinnedRatio float64
	// ArchivedRatio is the fraction of threads that are archived (0..1).
	ArchivedRatio float64
	// UnreadRatio is the fraction of threads with unread messages (0..1).
	UnreadRatio float64
	// Base is the newest activity timestamp; older threads step back from
	// it. Defaults to a fixed instant so layouts are reproducible.
	Base time.Time
}

// DefaultGeneratorOptions returns options producing a small mixed inbox.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Count:         20,
		Seed:          1,
		PinnedRatio:   0.15,
		ArchivedRatio: 0.2,
		UnreadRatio:   0.4,
		Base:          time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

var sampleTitles = []string{
	"Weekend plans", "Design sync", "Family", "Book club", "Ride share",
	"Lunch?", "Project atlas", "Garden committee", "Trivia night", "Movers",
}

var samplePreviews = []string{
	"sounds good to me", "see you there", "can you resend that?",
	"ok 👍", "let's do Thursday instead", "photo attached",
	"who's bringing snacks", "running 10 min late",
}

// GenerateThreads produces a deterministic synthetic thread set.
func GenerateThreads(opts GeneratorOptions) []model.Thread {
	rng := rand.New(rand.NewSource(opts.Seed))
	base := opts.Base
	if base.IsZero() {
		base = DefaultGeneratorOptions().Base
	}

	threads := make([]model.Thread, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		t := model.Thread{
			ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("thread-%d-%d", opts.Seed, i))).String(),
			Title:        fmt.Sprintf("%s %d", sampleTitles[rng.Intn(len(sampleTitles))], i),
			Preview:      samplePreviews[rng.Intn(len(samplePreviews))],
			LastActivity: base.Add(-time.Duration(i) * 17 * time.Minute),
		}
		if rng.Float64() < opts.ArchivedRatio {
			t.Archived = true
		} else if rng.Float64() < opts.PinnedRatio {
			t.Pinned = true
			t.PinnedAt = t.LastActivity.Add(5 * time.Minute)
		}
		if rng.Float64() < opts.UnreadRatio {
			t.Unread = 1 + rng.Intn(9)
		}
		threads = append(threads, t)
	}
	return threads
}

// ThreadByID returns the thread with the given id, if present.
func ThreadByID(threads []model.Thread, id string) (model.Thread, bool) {
	for _, t := range threads {
		if t.ID == id {
			return t, true
		}
	}
	return model.Thread{}, false
}
