package chatlist

import (
	"errors"
	"testing"
	"time"

	"github.com/vanderheijden86/threadline/pkg/model"
)

var buildBase = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func thread(id string, ageMinutes int) model.Thread {
	return model.Thread{
		ID:           id,
		Title:        "t-" + id,
		LastActivity: buildBase.Add(-time.Duration(ageMinutes) * time.Minute),
	}
}

func pinnedThread(id string, ageMinutes, pinAgeMinutes int) model.Thread {
	t := thread(id, ageMinutes)
	t.Pinned = true
	t.PinnedAt = buildBase.Add(-time.Duration(pinAgeMinutes) * time.Minute)
	return t
}

func TestBuildStateInboxPartition(t *testing.T) {
	archived := thread("arch", 5)
	archived.Archived = true
	threads := []model.Thread{
		thread("b", 20),
		pinnedThread("p", 30, 1),
		archived,
		thread("a", 10),
	}

	state, err := BuildState(threads, ViewContext{Mode: ModeInbox})
	if err != nil {
		t.Fatal(err)
	}
	if state.SectionCount() != 2 {
		t.Fatalf("expected pinned + inbox, got %d sections", state.SectionCount())
	}
	if state.Sections[0].Kind != SectionPinned || state.Sections[1].Kind != SectionInbox {
		t.Fatalf("wrong section order: %v, %v", state.Sections[0].Kind, state.Sections[1].Kind)
	}
	if got := state.Sections[1].Rows; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("inbox should order newest first: %v", got)
	}
	if _, found := state.Find("arch"); found {
		t.Error("archived thread leaked into the inbox")
	}
}

func TestBuildStateArchiveMode(t *testing.T) {
	archived := thread("arch", 5)
	archived.Archived = true
	threads := []model.Thread{thread("a", 10), archived}

	state, err := BuildState(threads, ViewContext{Mode: ModeArchive})
	if err != nil {
		t.Fatal(err)
	}
	if state.SectionCount() != 1 || state.Sections[0].Kind != SectionArchived {
		t.Fatalf("archive mode should show only the archived section: %+v", state.Sections)
	}
	if state.Sections[0].Rows[0] != "arch" {
		t.Errorf("wrong archive contents: %v", state.Sections[0].Rows)
	}
}

func TestBuildStateUnreadFilterKeepsPinned(t *testing.T) {
	read := thread("read", 10)
	unread := thread("unread", 20)
	unread.Unread = 3
	muted := thread("muted", 30)
	muted.Unread = 2
	muted.Muted = true
	pin := pinnedThread("pin", 40, 1)

	state, err := BuildState([]model.Thread{read, unread, muted, pin},
		ViewContext{Mode: ModeInbox, Filter: FilterUnread})
	if err != nil {
		t.Fatal(err)
	}
	if _, found := state.Find("pin"); !found {
		t.Error("pinned thread must survive the unread filter")
	}
	if _, found := state.Find("unread"); !found {
		t.Error("unread thread missing")
	}
	if _, found := state.Find("read"); found {
		t.Error("read thread should be filtered out")
	}
	if _, found := state.Find("muted"); found {
		t.Error("muted thread never counts as unread")
	}
}

func TestBuildStateEmptySectionsOmitted(t *testing.T) {
	state, err := BuildState([]model.Thread{thread("a", 1)}, ViewContext{Mode: ModeInbox})
	if err != nil {
		t.Fatal(err)
	}
	if state.SectionCount() != 1 {
		t.Fatalf("no pinned threads means no pinned section: %+v", state.Sections)
	}

	state, err = BuildState(nil, ViewContext{Mode: ModeInbox})
	if err != nil {
		t.Fatal(err)
	}
	if state.SectionCount() != 0 || state.TotalRows() != 0 {
		t.Errorf("empty snapshot should yield an empty state: %+v", state.Sections)
	}
}

func TestBuildStatePinnedOrderedByPinTime(t *testing.T) {
	// Older activity but newer pin surfaces first.
	a := pinnedThread("a", 100, 2)
	b := pinnedThread("b", 10, 50)

	state, err := BuildState([]model.Thread{a, b}, ViewContext{Mode: ModeInbox})
	if err != nil {
		t.Fatal(err)
	}
	rows := state.Sections[0].Rows
	if rows[0] != "a" || rows[1] != "b" {
		t.Errorf("pinned rows should order by pin time, newest first: %v", rows)
	}
}

func TestBuildStateTieBreaksByID(t *testing.T) {
	a := thread("b-second", 10)
	b := thread("a-first", 10)
	state, err := BuildState([]model.Thread{a, b}, ViewContext{Mode: ModeInbox})
	if err != nil {
		t.Fatal(err)
	}
	rows := state.Sections[0].Rows
	if rows[0] != "a-first" || rows[1] != "b-second" {
		t.Errorf("equal timestamps should break ties by id: %v", rows)
	}
}

func TestBuildStateDuplicateIDFails(t *testing.T) {
	_, err := BuildState([]model.Thread{thread("x", 1), thread("x", 2)}, ViewContext{Mode: ModeInbox})
	if !errors.Is(err, ErrInconsistentMembership) {
		t.Fatalf("duplicate id should fail with ErrInconsistentMembership, got %v", err)
	}
}
