package chatlist

// RenderSurface is the external widget abstraction the applicator issues
// structural mutation instructions to. Implementations mirror the section
// and row layout of the coordinator's RenderState.
//
// All methods are called from the owning update loop, and structural
// methods only between BeginUpdates and EndUpdates. Paths follow the
// RowChange coordinate rules: deletes and move sources address the layout
// as it stands when the call arrives, inserts and move targets address the
// new layout.
type RenderSurface interface {
	// BeginUpdates opens a batched-mutation scope. animated hints whether
	// the surface should animate the batch.
	BeginUpdates(animated bool)
	// EndUpdates closes the scope opened by BeginUpdates.
	EndUpdates()

	InsertSection(index int, kind SectionKind)
	DeleteSection(index int)
	InsertRow(path RowPath, id string)
	DeleteRow(path RowPath)
	MoveRow(from, to RowPath)
	// ReloadRow structurally refreshes one row in place.
	ReloadRow(path RowPath, id string)

	// ReloadAll replaces the entire layout with the given state and drops
	// every per-id cache; they are no longer valid after a reset.
	ReloadAll(state *RenderState)

	// SwapState replaces the layout with the given state without any
	// positional animation, keeping per-id caches: row content is
	// unchanged on a context switch, only membership and order are.
	SwapState(state *RenderState)

	// InvalidateRow drops cached derived content for the id. The row's
	// content may have changed even if its position did not.
	InvalidateRow(id string)

	// IsRowVisible reports whether the row at path is currently realized
	// on screen.
	IsRowVisible(path RowPath) bool

	// UpdateRowInPlace attempts the fast path: refresh the visible row's
	// content without a structural change. It returns false when the
	// cached content object for the id no longer exists, in which case
	// the caller falls back to ReloadRow.
	UpdateRowInPlace(path RowPath, id string) bool
}
