package chatlist

import (
	"github.com/vanderheijden86/threadline/pkg/debug"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// ThreadReader is the read-only snapshot view handed to Store.Read
// callbacks. Threads returns the full point-in-time thread membership.
type ThreadReader interface {
	Threads() ([]model.Thread, error)
}

// Store provides consistent point-in-time reads of thread data. Each Read
// call runs its callback inside one short-lived snapshot; no snapshot spans
// multiple load cycles.
type Store interface {
	Read(fn func(ThreadReader) error) error
}

// Coordinator owns the chat-list render state and runs the
// accumulate -> classify -> build -> apply pipeline. It is confined to a
// single goroutine (the host's update loop); none of its methods are
// reentrant-safe across goroutines.
type Coordinator struct {
	store   Store
	source  ContextSource
	surface RenderSurface

	pending Accumulator
	state   *RenderState
	lastCtx ViewContext
	loaded  bool

	// forceReset re-arms a full reset after a failed or inconsistent
	// cycle. Distinct from the accumulator flag so a fault cannot be
	// coalesced away by an intervening Drain.
	forceReset bool
}

// NewCoordinator creates a coordinator over the given store and context
// source. A render surface must be attached before the first load.
func NewCoordinator(store Store, source ContextSource) *Coordinator {
	return &Coordinator{
		store:  store,
		source: source,
		state:  EmptyRenderState(),
	}
}

// AttachSurface binds the render surface the applicator drives.
func (c *Coordinator) AttachSurface(surface RenderSurface) {
	c.surface = surface
}

// RequestFullReload marks everything as dirty; the next load rebuilds the
// render state from scratch and the surface drops all per-row caches.
func (c *Coordinator) RequestFullReload() {
	c.pending.RequestReset()
}

// RequestUpdate marks the given thread ids as changed; the next load
// reconciles them through the diff path.
func (c *Coordinator) RequestUpdate(ids ...string) {
	c.pending.RequestUpdate(ids...)
}

// HasPendingChanges reports whether a future LoadIfNecessary has work.
func (c *Coordinator) HasPendingChanges() bool {
	return c.forceReset || !c.pending.Empty()
}

// State returns the current render state. The caller must treat it as
// read-only; it is replaced wholesale by each successful load.
func (c *Coordinator) State() *RenderState {
	return c.state
}

// SectionCount returns the number of sections in the current state.
func (c *Coordinator) SectionCount() int {
	return c.state.SectionCount()
}

// RowCount returns the row count for a section kind in the current state.
func (c *Coordinator) RowCount(kind SectionKind) int {
	return c.state.RowCount(kind)
}

// TotalRows returns the total row count of the current state.
func (c *Coordinator) TotalRows() int {
	return c.state.TotalRows()
}

// LastResult describes the outcome of the most recent load cycle, mainly
// for status display and tests.
type LastResult struct {
	Strategy   StrategyKind
	Structural int
	Err        error
}

// LoadIfNecessary runs one load cycle: drain pending changes, classify,
// rebuild state if needed, and apply the resulting mutations to the
// surface. It executes synchronously on the calling goroutine.
//
// suppressAnimation asks the surface not to animate structural changes.
// force upgrades an otherwise idle cycle to a context-only rebuild.
//
// On a snapshot read failure or inconsistent membership the cycle aborts,
// the fault is surfaced through debug assertions, and the next cycle is
// treated as a full reset. Accumulated ids are never silently dropped:
// they are either reconciled by this cycle or subsumed by that reset.
func (c *Coordinator) LoadIfNecessary(suppressAnimation, force bool) LastResult {
	if c.surface == nil {
		debug.Assert(false, "chatlist: LoadIfNecessary called without an attached surface")
		return LastResult{Strategy: StrategyNoOp}
	}

	reset, ids := c.pending.Drain()
	if c.forceReset {
		reset = true
		c.forceReset = false
	}
	newCtx := SnapshotContext(c.source)

	strategy := Classify(ClassifyInput{
		Reset:       reset,
		PendingIDs:  ids,
		NewContext:  newCtx,
		LastContext: c.lastCtx,
		HaveLast:    c.loaded,
		Force:       force,
	})
	debug.Log("chatlist: load strategy=%s pending=%d", strategy.Kind, len(ids))

	if strategy.Kind == StrategyNoOp {
		return LastResult{Strategy: StrategyNoOp}
	}

	next, err := c.buildUnder(newCtx)
	if err != nil {
		// Fatal for this cycle only: report and fall back to a reset on
		// the next invocation.
		debug.Log("chatlist: load aborted: %v", err)
		debug.Assert(false, "chatlist: snapshot read failed or inconsistent; forcing reset next cycle")
		c.forceReset = true
		return LastResult{Strategy: strategy.Kind, Err: err}
	}

	var result LoadResult
	switch strategy.Kind {
	case StrategyReset:
		result = LoadResult{Kind: ResultReset, State: next}
	case StrategyDiff:
		secChanges, rowChanges := DiffStates(c.state, next, strategy.UpdatedIDs)
		result = LoadResult{Kind: ResultDiff, State: next, SectionChanges: secChanges, RowChanges: rowChanges}
	case StrategyContextOnly:
		result = LoadResult{Kind: ResultContextOnly, State: next}
	default:
		debug.Assert(false, "chatlist: unhandled strategy")
		return LastResult{Strategy: strategy.Kind}
	}

	c.state = next
	c.lastCtx = newCtx
	c.loaded = true

	structural := Apply(result, c.surface, !suppressAnimation)
	return LastResult{Strategy: strategy.Kind, Structural: structural}
}

// buildUnder reads one snapshot and assembles the render state for ctx.
func (c *Coordinator) buildUnder(ctx ViewContext) (*RenderState, error) {
	var next *RenderState
	err := c.store.Read(func(r ThreadReader) error {
		threads, err := r.Threads()
		if err != nil {
			return err
		}
		next, err = BuildState(threads, ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
