package testutil

import (
	"testing"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// AssertValidState verifies RenderState invariants: no duplicate ids across
// or within sections, no empty ids, counts consistent with layout.
func AssertValidState(t *testing.T, state *chatlist.RenderState) {
	t.Helper()
	if state == nil {
		t.Fatal("nil render state")
	}
	seen := make(map[string]chatlist.SectionKind)
	total := 0
	for _, sec := range state.Sections {
		for _, id := range sec.Rows {
			if id == "" {
				t.Errorf("empty row id in section %s", sec.Kind)
			}
			if prev, dup := seen[id]; dup {
				t.Errorf("row %s appears in both %s and %s", id, prev, sec.Kind)
			}
			seen[id] = sec.Kind
		}
		if got := state.RowCount(sec.Kind); got != len(sec.Rows) {
			t.Errorf("section %s count %d, layout has %d rows", sec.Kind, got, len(sec.Rows))
		}
		total += len(sec.Rows)
	}
	if state.TotalRows() != total {
		t.Errorf("total rows %d, layout has %d", state.TotalRows(), total)
	}
}

// AssertStatesEqual verifies two states have identical layout.
func AssertStatesEqual(t *testing.T, want, got *chatlist.RenderState) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("render states differ:\nwant %v\ngot  %v", layout(want), layout(got))
	}
}

// AssertMirrorsState verifies a mirror surface reproduces the state layout.
func AssertMirrorsState(t *testing.T, m *MirrorSurface, want *chatlist.RenderState) {
	t.Helper()
	got := m.State()
	if !want.Equal(got) {
		t.Errorf("mirror diverged from state:\nwant %v\ngot  %v\nops: %v", layout(want), layout(got), m.Ops)
	}
}

// AssertNoDuplicateIDs verifies all thread ids are unique.
func AssertNoDuplicateIDs(t *testing.T, threads []model.Thread) {
	t.Helper()
	seen := make(map[string]bool)
	for _, th := range threads {
		if seen[th.ID] {
			t.Errorf("duplicate thread ID: %s", th.ID)
		}
		seen[th.ID] = true
	}
}

// AssertAllValid verifies all threads pass validation.
func AssertAllValid(t *testing.T, threads []model.Thread) {
	t.Helper()
	for i, th := range threads {
		if err := th.Validate(); err != nil {
			t.Errorf("thread %d (%s) invalid: %v", i, th.ID, err)
		}
	}
}

func layout(s *chatlist.RenderState) map[string][]string {
	out := make(map[string][]string)
	for _, sec := range s.Sections {
		out[sec.Kind.String()] = sec.Rows
	}
	return out
}
