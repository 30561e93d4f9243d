package chatlist

// StrategyKind enumerates the four load strategies.
type StrategyKind int

const (
	// StrategyNoOp means nothing changed; the cycle does no work.
	StrategyNoOp StrategyKind = iota
	// StrategyReset rebuilds the render state from scratch, no diff.
	StrategyReset
	// StrategyDiff rebuilds the state and computes a minimal ordered
	// change sequence against the previous state.
	StrategyDiff
	// StrategyContextOnly rebuilds the state for a changed view context
	// without computing row changes.
	StrategyContextOnly
)

// String returns the strategy name used in debug output.
func (k StrategyKind) String() string {
	switch k {
	case StrategyNoOp:
		return "noop"
	case StrategyReset:
		return "reset"
	case StrategyDiff:
		return "diff"
	case StrategyContextOnly:
		return "context-only"
	default:
		return "unknown"
	}
}

// LoadStrategy is the classified work for one load cycle. UpdatedIDs is set
// only for StrategyDiff.
type LoadStrategy struct {
	Kind       StrategyKind
	UpdatedIDs map[string]struct{}
}

// ClassifyInput carries the drained accumulator state and context
// comparison inputs for strategy selection.
type ClassifyInput struct {
	// Reset is the drained reset flag.
	Reset bool
	// PendingIDs is the drained changed-id set.
	PendingIDs map[string]struct{}
	// NewContext is the freshly snapshotted view context.
	NewContext ViewContext
	// LastContext is the context of the last materialized state.
	LastContext ViewContext
	// HaveLast is false before the first successful load; the first cycle
	// is always a reset.
	HaveLast bool
	// Force upgrades an otherwise idle cycle to a context-only rebuild.
	Force bool
}

// Classify chooses the load strategy for one cycle. Reset always dominates;
// a non-empty id set dominates a pure context change, because content
// changes can shift section membership (a thread entering or leaving the
// archive) and must be reconciled by diffing, not by a context refresh
// alone. This holds even when a context change co-occurs with pending ids.
func Classify(in ClassifyInput) LoadStrategy {
	switch {
	case !in.HaveLast || in.Reset:
		return LoadStrategy{Kind: StrategyReset}
	case len(in.PendingIDs) > 0:
		return LoadStrategy{Kind: StrategyDiff, UpdatedIDs: in.PendingIDs}
	case !in.NewContext.Equal(in.LastContext):
		return LoadStrategy{Kind: StrategyContextOnly}
	case in.Force:
		return LoadStrategy{Kind: StrategyContextOnly}
	default:
		return LoadStrategy{Kind: StrategyNoOp}
	}
}
