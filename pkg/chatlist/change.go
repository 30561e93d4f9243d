package chatlist

import "fmt"

// RowChangeOp enumerates row mutation primitives.
type RowChangeOp int

const (
	// RowDelete removes the row at From.
	RowDelete RowChangeOp = iota
	// RowInsert inserts the row id at To.
	RowInsert
	// RowMove relocates the row from From to To across sections.
	RowMove
	// RowUpdate refreshes the content of the row at To without moving it.
	RowUpdate
)

// String returns the op name used in debug output.
func (op RowChangeOp) String() string {
	switch op {
	case RowDelete:
		return "delete"
	case RowInsert:
		return "insert"
	case RowMove:
		return "move"
	case RowUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// RowChange is one ordered mutation of the row layout. Every change carries
// the affected row id so per-id caches can be invalidated.
//
// Paths are expressed in the coordinate space a consumer sees when applying
// the change list front to back: From paths for deletes and moves refer to
// the layout at that point in the sequence, To paths for inserts, moves and
// updates refer to the new state. A consumer that applies changes in order
// (deletes descending first, then inserts ascending, then moves, then
// updates) reproduces the new layout exactly.
type RowChange struct {
	Op   RowChangeOp
	ID   string
	From RowPath // valid for RowDelete and RowMove
	To   RowPath // valid for RowInsert, RowMove and RowUpdate
}

// String formats the change for debug output.
func (c RowChange) String() string {
	switch c.Op {
	case RowDelete:
		return fmt.Sprintf("delete %s %s", c.ID, c.From)
	case RowInsert:
		return fmt.Sprintf("insert %s %s", c.ID, c.To)
	case RowMove:
		return fmt.Sprintf("move %s %s->%s", c.ID, c.From, c.To)
	case RowUpdate:
		return fmt.Sprintf("update %s %s", c.ID, c.To)
	default:
		return fmt.Sprintf("unknown %s", c.ID)
	}
}

// SectionChangeOp enumerates section mutation primitives.
type SectionChangeOp int

const (
	// SectionDelete removes the section at Index (pre-insert coordinates).
	SectionDelete SectionChangeOp = iota
	// SectionInsert inserts an empty section of Kind at Index (new-state
	// coordinates).
	SectionInsert
)

// SectionChange is one ordered section mutation. Deletes are emitted before
// inserts, deletes with descending indices, inserts ascending.
type SectionChange struct {
	Op    SectionChangeOp
	Index int
	Kind  SectionKind
}

// ResultKind enumerates the outcomes of a load cycle.
type ResultKind int

const (
	// ResultNoOp carries no state and no changes.
	ResultNoOp ResultKind = iota
	// ResultReset carries a wholesale replacement state.
	ResultReset
	// ResultDiff carries a new state plus the ordered change sequence
	// versus the previous state.
	ResultDiff
	// ResultContextOnly carries a new state with no row changes; the
	// surface swaps without positional animation.
	ResultContextOnly
)

// String returns the result kind name used in debug output.
func (k ResultKind) String() string {
	switch k {
	case ResultNoOp:
		return "noop"
	case ResultReset:
		return "reset"
	case ResultDiff:
		return "diff"
	case ResultContextOnly:
		return "context-only"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of one load cycle, consumed by the applicator.
type LoadResult struct {
	Kind           ResultKind
	State          *RenderState // nil for ResultNoOp
	SectionChanges []SectionChange
	RowChanges     []RowChange
}
