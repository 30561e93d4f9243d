package chatlist

import "testing"

func state(sections ...Section) *RenderState {
	return NewRenderState(sections)
}

func sec(kind SectionKind, rows ...string) Section {
	return Section{Kind: kind, Rows: rows}
}

func rowChangesByOp(changes []RowChange, op RowChangeOp) []RowChange {
	var out []RowChange
	for _, rc := range changes {
		if rc.Op == op {
			out = append(out, rc)
		}
	}
	return out
}

func TestDiffIdenticalStatesIsEmpty(t *testing.T) {
	s := state(sec(SectionPinned, "1", "2"), sec(SectionInbox, "3", "4"))
	secChanges, rowChanges := DiffStates(s, s, nil)
	if len(secChanges) != 0 || len(rowChanges) != 0 {
		t.Fatalf("identical states should diff to nothing: %v %v", secChanges, rowChanges)
	}
}

func TestDiffSingleCrossSectionMove(t *testing.T) {
	prev := state(sec(SectionPinned, "1", "2", "3"), sec(SectionInbox, "4", "5"))
	next := state(sec(SectionPinned, "1", "3"), sec(SectionInbox, "4", "5", "2"))

	secChanges, rowChanges := DiffStates(prev, next, nil)
	if len(secChanges) != 0 {
		t.Fatalf("no section changed: %v", secChanges)
	}
	if len(rowChanges) != 1 {
		t.Fatalf("unpinning one row should be exactly one change, got %v", rowChanges)
	}
	mv := rowChanges[0]
	if mv.Op != RowMove || mv.ID != "2" {
		t.Fatalf("expected a move of row 2, got %+v", mv)
	}
	if mv.From != (RowPath{Section: 0, Row: 1}) {
		t.Errorf("wrong move source: %v", mv.From)
	}
	if mv.To != (RowPath{Section: 1, Row: 2}) {
		t.Errorf("wrong move target: %v", mv.To)
	}
}

func TestDiffAnchoredRowsNeedNoStructuralChange(t *testing.T) {
	// Row b disappears; a and c keep their relative order and stay put.
	prev := state(sec(SectionInbox, "a", "b", "c"))
	next := state(sec(SectionInbox, "a", "c"))

	secChanges, rowChanges := DiffStates(prev, next, nil)
	if len(secChanges) != 0 {
		t.Fatalf("unexpected section changes: %v", secChanges)
	}
	if len(rowChanges) != 1 || rowChanges[0].Op != RowDelete || rowChanges[0].ID != "b" {
		t.Fatalf("expected a single delete of b, got %v", rowChanges)
	}
}

func TestDiffReorderIsDeleteInsertNotMove(t *testing.T) {
	prev := state(sec(SectionInbox, "a", "b", "c"))
	next := state(sec(SectionInbox, "b", "a", "c"))

	_, rowChanges := DiffStates(prev, next, nil)
	if moves := rowChangesByOp(rowChanges, RowMove); len(moves) != 0 {
		t.Fatalf("same-section reorders never synthesize moves: %v", moves)
	}
	deletes := rowChangesByOp(rowChanges, RowDelete)
	inserts := rowChangesByOp(rowChanges, RowInsert)
	if len(deletes) != 1 || len(inserts) != 1 || deletes[0].ID != inserts[0].ID {
		t.Fatalf("reorder should be one delete+insert of the same id: del=%v ins=%v", deletes, inserts)
	}
}

func TestDiffUpdatesOnlyAnchoredRows(t *testing.T) {
	s := state(sec(SectionInbox, "a", "b", "c"))
	_, rowChanges := DiffStates(s, s, map[string]struct{}{"b": {}})
	if len(rowChanges) != 1 {
		t.Fatalf("expected a single update, got %v", rowChanges)
	}
	if rowChanges[0].Op != RowUpdate || rowChanges[0].ID != "b" ||
		rowChanges[0].To != (RowPath{Section: 0, Row: 1}) {
		t.Fatalf("wrong update: %+v", rowChanges[0])
	}
}

func TestDiffSectionInsertWithMove(t *testing.T) {
	// Pinning a row creates the pinned section and moves the row into it.
	prev := state(sec(SectionInbox, "a", "b"))
	next := state(sec(SectionPinned, "a"), sec(SectionInbox, "b"))

	secChanges, rowChanges := DiffStates(prev, next, nil)
	if len(secChanges) != 1 || secChanges[0].Op != SectionInsert ||
		secChanges[0].Index != 0 || secChanges[0].Kind != SectionPinned {
		t.Fatalf("expected pinned section insert at 0, got %v", secChanges)
	}
	if len(rowChanges) != 1 || rowChanges[0].Op != RowMove || rowChanges[0].ID != "a" {
		t.Fatalf("expected a single move of a, got %v", rowChanges)
	}
	// Source index is the position after the section insert shifted it.
	if rowChanges[0].From != (RowPath{Section: 1, Row: 0}) {
		t.Errorf("move source should account for the inserted section: %v", rowChanges[0].From)
	}
}

func TestDiffDeletedSectionSurvivorsReinsert(t *testing.T) {
	// Unpinning the last pinned row deletes the section; the row re-enters
	// the inbox as an insert, not a move.
	prev := state(sec(SectionPinned, "p"), sec(SectionInbox, "a"))
	next := state(sec(SectionInbox, "p", "a"))

	secChanges, rowChanges := DiffStates(prev, next, nil)
	if len(secChanges) != 1 || secChanges[0].Op != SectionDelete || secChanges[0].Index != 0 {
		t.Fatalf("expected pinned section delete at 0, got %v", secChanges)
	}
	if moves := rowChangesByOp(rowChanges, RowMove); len(moves) != 0 {
		t.Fatalf("rows of a deleted section re-insert, never move: %v", moves)
	}
	inserts := rowChangesByOp(rowChanges, RowInsert)
	if len(inserts) != 1 || inserts[0].ID != "p" || inserts[0].To != (RowPath{Section: 0, Row: 0}) {
		t.Fatalf("expected re-insert of p at [0:0], got %v", inserts)
	}
}

func TestDiffDeleteOrderIsDescending(t *testing.T) {
	prev := state(sec(SectionInbox, "a", "b", "c", "d"))
	next := state(sec(SectionInbox, "a", "d"))

	_, rowChanges := DiffStates(prev, next, nil)
	deletes := rowChangesByOp(rowChanges, RowDelete)
	if len(deletes) != 2 {
		t.Fatalf("expected 2 deletes, got %v", deletes)
	}
	if !deletes[1].From.Less(deletes[0].From) {
		t.Errorf("deletes must be emitted highest path first: %v then %v",
			deletes[0].From, deletes[1].From)
	}
	// Paths refer to the pre-delete layout.
	if id, _ := prev.RowAt(deletes[0].From); id != deletes[0].ID {
		t.Errorf("delete path %v does not address %s in the old layout", deletes[0].From, deletes[0].ID)
	}
}

func TestDiffOrderingDisciplineInEmission(t *testing.T) {
	// A busy transition: section delete, deletes, inserts, move, update.
	prev := state(sec(SectionPinned, "p"), sec(SectionInbox, "a", "b", "c"))
	next := state(sec(SectionInbox, "p", "a", "c", "n"))

	_, rowChanges := DiffStates(prev, next, map[string]struct{}{"a": {}})
	phase := func(op RowChangeOp) int {
		switch op {
		case RowDelete:
			return 0
		case RowInsert:
			return 1
		case RowMove:
			return 2
		default:
			return 3
		}
	}
	for i := 1; i < len(rowChanges); i++ {
		if phase(rowChanges[i].Op) < phase(rowChanges[i-1].Op) {
			t.Fatalf("row changes out of phase order: %v", rowChanges)
		}
	}
}

func TestLCSAnchorsLongestRun(t *testing.T) {
	anchors := lcsAnchors([]string{"a", "b", "c", "d"}, []string{"b", "c", "d", "a"})
	if len(anchors) != 3 {
		t.Fatalf("expected b,c,d anchored, got %v", anchors)
	}
	for _, id := range []string{"b", "c", "d"} {
		if _, ok := anchors[id]; !ok {
			t.Errorf("%s should be anchored", id)
		}
	}
}
