// Package model defines the core thread data structures shared across
// threadline: the Thread value type, its JSON/JSONL representation, and
// validation rules.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Thread represents a single conversation in the store.
type Thread struct {
	// ID is the opaque, globally unique thread identifier.
	ID string `json:"id"`
	// Title is the display name of the conversation.
	Title string `json:"title"`
	// Preview is a short snippet of the most recent message.
	Preview string `json:"preview,omitempty"`
	// LastActivity is the timestamp of the most recent message or event.
	LastActivity time.Time `json:"last_activity"`
	// Pinned marks the thread as pinned to the top of the list.
	Pinned bool `json:"pinned,omitempty"`
	// PinnedAt records when the thread was pinned (zero if not pinned).
	PinnedAt time.Time `json:"pinned_at,omitempty"`
	// Archived removes the thread from the inbox.
	Archived bool `json:"archived,omitempty"`
	// Unread is the number of unread messages in the thread.
	Unread int `json:"unread,omitempty"`
	// Muted suppresses unread indicators for the thread.
	Muted bool `json:"muted,omitempty"`
	// Labels are free-form tags attached to the thread.
	Labels []string `json:"labels,omitempty"`
	// Participants are display names of the conversation members.
	Participants []string `json:"participants,omitempty"`
}

// Validate checks structural invariants of a thread record.
func (t Thread) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("thread has empty ID")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("thread %s has empty title", t.ID)
	}
	if t.Unread < 0 {
		return fmt.Errorf("thread %s has negative unread count %d", t.ID, t.Unread)
	}
	if t.Pinned && t.PinnedAt.IsZero() {
		return fmt.Errorf("thread %s is pinned without a pin timestamp", t.ID)
	}
	return nil
}

// HasUnread reports whether the thread should show an unread indicator.
// Muted threads never count as unread regardless of message state.
func (t Thread) HasUnread() bool {
	return !t.Muted && t.Unread > 0
}

// SortKey returns the timestamp used for recency ordering. Pinned threads
// order by pin time so that newly pinned threads surface first.
func (t Thread) SortKey() time.Time {
	if t.Pinned && !t.PinnedAt.IsZero() {
		return t.PinnedAt
	}
	return t.LastActivity
}

// String returns a compact human-readable description, mainly for debug logs.
func (t Thread) String() string {
	flags := ""
	if t.Pinned {
		flags += "P"
	}
	if t.Archived {
		flags += "A"
	}
	if t.Muted {
		flags += "M"
	}
	if flags != "" {
		flags = " [" + flags + "]"
	}
	return fmt.Sprintf("%s %q unread=%d%s", t.ID, t.Title, t.Unread, flags)
}
