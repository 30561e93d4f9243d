// Package chatlist implements the incremental load coordinator for the
// thread list: it collects pending change signals, classifies each load
// cycle into one of four strategies, builds an immutable render state, and
// applies a minimal ordered mutation sequence to a render surface.
//
// The whole package follows a single-goroutine cooperative model. All
// coordinator entry points must be called from the owning update loop;
// background producers hand off through the host's message dispatch.
package chatlist

// Mode selects which top-level collection of threads is displayed.
type Mode int

const (
	// ModeInbox shows active (non-archived) threads.
	ModeInbox Mode = iota
	// ModeArchive shows archived threads.
	ModeArchive
)

// String returns the mode name used in config files and debug output.
func (m Mode) String() string {
	switch m {
	case ModeInbox:
		return "inbox"
	case ModeArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Filter restricts which threads are shown within the current mode.
type Filter int

const (
	// FilterAll shows every thread in the mode.
	FilterAll Filter = iota
	// FilterUnread shows only threads with unread messages. Pinned threads
	// are always shown regardless of filter.
	FilterUnread
)

// String returns the filter name used in config files and debug output.
func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterUnread:
		return "unread"
	default:
		return "unknown"
	}
}

// ViewContext is an immutable snapshot of what the list should display:
// mode, filter, selection state, and banner visibility. Two contexts are
// equal iff all fields match.
type ViewContext struct {
	Mode           Mode
	Filter         Filter
	MultiSelect    bool
	LastSelectedID string
	BannersVisible bool
}

// Equal reports whether v and o describe the same view.
func (v ViewContext) Equal(o ViewContext) bool {
	return v == o
}

// ContextSource provides the current observable view inputs. All accessors
// are synchronous and side-effect free.
type ContextSource interface {
	Mode() Mode
	Filter() Filter
	MultiSelect() bool
	LastSelectedID() string
	BannersVisible() bool
}

// SnapshotContext captures src into an immutable ViewContext.
func SnapshotContext(src ContextSource) ViewContext {
	return ViewContext{
		Mode:           src.Mode(),
		Filter:         src.Filter(),
		MultiSelect:    src.MultiSelect(),
		LastSelectedID: src.LastSelectedID(),
		BannersVisible: src.BannersVisible(),
	}
}
