package chatlist_test

import (
	"testing"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/testutil"
)

func mk(sections ...chatlist.Section) *chatlist.RenderState {
	return chatlist.NewRenderState(sections)
}

func row(kind chatlist.SectionKind, rows ...string) chatlist.Section {
	return chatlist.Section{Kind: kind, Rows: rows}
}

func diffResult(prev, next *chatlist.RenderState, updated map[string]struct{}) chatlist.LoadResult {
	secChanges, rowChanges := chatlist.DiffStates(prev, next, updated)
	return chatlist.LoadResult{
		Kind:           chatlist.ResultDiff,
		State:          next,
		SectionChanges: secChanges,
		RowChanges:     rowChanges,
	}
}

func TestApplyReset(t *testing.T) {
	next := mk(row(chatlist.SectionInbox, "a", "b"))
	m := testutil.NewMirrorSurface(chatlist.EmptyRenderState())

	n := chatlist.Apply(chatlist.LoadResult{Kind: chatlist.ResultReset, State: next}, m, false)
	if n != 1 {
		t.Fatalf("reset counts as one structural operation, got %d", n)
	}
	if m.Resets != 1 {
		t.Fatalf("expected one ReloadAll, got %d", m.Resets)
	}
	testutil.AssertMirrorsState(t, m, next)
}

func TestApplyNoOpTouchesNothing(t *testing.T) {
	s := mk(row(chatlist.SectionInbox, "a"))
	m := testutil.NewMirrorSurface(s)

	if n := chatlist.Apply(chatlist.LoadResult{Kind: chatlist.ResultNoOp}, m, false); n != 0 {
		t.Fatalf("no-op performed %d operations", n)
	}
	if m.Batches != 0 || m.Structural != 0 || m.Resets != 0 || m.Swaps != 0 {
		t.Errorf("surface was touched: batches=%d structural=%d resets=%d swaps=%d",
			m.Batches, m.Structural, m.Resets, m.Swaps)
	}
}

func TestApplyContextOnlySwapsWithoutStructuralOps(t *testing.T) {
	prev := mk(row(chatlist.SectionPinned, "p"), row(chatlist.SectionInbox, "a", "b"))
	next := mk(row(chatlist.SectionArchived, "z"))
	m := testutil.NewMirrorSurface(prev)

	n := chatlist.Apply(chatlist.LoadResult{Kind: chatlist.ResultContextOnly, State: next}, m, false)
	if n != 0 {
		t.Fatalf("context-only reported %d structural ops", n)
	}
	// The surface must end up holding the new layout, not the old one.
	testutil.AssertMirrorsState(t, m, next)
	if m.Swaps != 1 {
		t.Errorf("expected one state swap, got %d", m.Swaps)
	}
	if m.Batches != 0 || m.Structural != 0 || m.Resets != 0 {
		t.Errorf("context-only must not batch, mutate, or reset: batches=%d structural=%d resets=%d",
			m.Batches, m.Structural, m.Resets)
	}
}

func TestApplyDiffReproducesTargetState(t *testing.T) {
	cases := []struct {
		name       string
		prev, next *chatlist.RenderState
	}{
		{
			name: "cross-section move",
			prev: mk(row(chatlist.SectionPinned, "1", "2", "3"), row(chatlist.SectionInbox, "4", "5")),
			next: mk(row(chatlist.SectionPinned, "1", "3"), row(chatlist.SectionInbox, "4", "5", "2")),
		},
		{
			name: "section appears",
			prev: mk(row(chatlist.SectionInbox, "a", "b", "c")),
			next: mk(row(chatlist.SectionPinned, "b"), row(chatlist.SectionInbox, "a", "c")),
		},
		{
			name: "section disappears with survivors",
			prev: mk(row(chatlist.SectionPinned, "p", "q"), row(chatlist.SectionInbox, "a")),
			next: mk(row(chatlist.SectionInbox, "p", "a")),
		},
		{
			name: "reorder within section",
			prev: mk(row(chatlist.SectionInbox, "a", "b", "c", "d")),
			next: mk(row(chatlist.SectionInbox, "d", "a", "b", "c")),
		},
		{
			name: "everything at once",
			prev: mk(row(chatlist.SectionPinned, "p"), row(chatlist.SectionInbox, "a", "b", "c")),
			next: mk(row(chatlist.SectionInbox, "n", "c", "a", "p")),
		},
		{
			name: "empty to populated",
			prev: chatlist.EmptyRenderState(),
			next: mk(row(chatlist.SectionPinned, "p"), row(chatlist.SectionInbox, "a")),
		},
		{
			name: "populated to empty",
			prev: mk(row(chatlist.SectionPinned, "p"), row(chatlist.SectionInbox, "a")),
			next: chatlist.EmptyRenderState(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := testutil.NewMirrorSurface(tc.prev)
			chatlist.Apply(diffResult(tc.prev, tc.next, nil), m, false)
			testutil.AssertMirrorsState(t, m, tc.next)
			if m.BatchOpen {
				t.Error("batch left open")
			}
		})
	}
}

func TestApplyAllFastPathOpensNoBatch(t *testing.T) {
	s := mk(row(chatlist.SectionInbox, "a", "b", "c"))
	m := testutil.NewMirrorSurface(s)

	n := chatlist.Apply(diffResult(s, s, map[string]struct{}{"b": {}}), m, false)
	if n != 0 {
		t.Fatalf("fast-path-only cycle reported %d structural ops", n)
	}
	if m.Batches != 0 {
		t.Errorf("fast-path-only cycle opened %d batches", m.Batches)
	}
	if len(m.FastPathed) != 1 || m.FastPathed[0] != "b" {
		t.Errorf("expected in-place update of b, got %v", m.FastPathed)
	}
	if len(m.Invalidated) != 1 || m.Invalidated[0] != "b" {
		t.Errorf("cache invalidation must precede the update: %v", m.Invalidated)
	}
}

func TestApplyUpdateFallsBackWhenNotVisible(t *testing.T) {
	s := mk(row(chatlist.SectionInbox, "a", "b"))
	m := testutil.NewMirrorSurface(s)
	m.VisibleFn = func(chatlist.RowPath) bool { return false }

	n := chatlist.Apply(diffResult(s, s, map[string]struct{}{"a": {}}), m, false)
	if n != 1 {
		t.Fatalf("off-screen update should become one structural reload, got %d", n)
	}
	if len(m.Reloaded) != 1 || m.Reloaded[0] != "a" {
		t.Errorf("expected structural reload of a, got %v", m.Reloaded)
	}
	if len(m.FastPathed) != 0 {
		t.Errorf("fast path should not run for invisible rows: %v", m.FastPathed)
	}
	if m.Batches != 1 {
		t.Errorf("the fallback must run inside a batch, got %d", m.Batches)
	}
}

func TestApplyUpdateFallsBackWhenInPlaceFails(t *testing.T) {
	s := mk(row(chatlist.SectionInbox, "a"))
	m := testutil.NewMirrorSurface(s)
	m.InPlaceFn = func(chatlist.RowPath, string) bool { return false }

	n := chatlist.Apply(diffResult(s, s, map[string]struct{}{"a": {}}), m, false)
	if n != 1 || len(m.Reloaded) != 1 {
		t.Fatalf("stale cache should fall back to a reload: n=%d reloaded=%v", n, m.Reloaded)
	}
}

func TestApplyInvalidatesEveryChangedID(t *testing.T) {
	prev := mk(row(chatlist.SectionPinned, "p"), row(chatlist.SectionInbox, "a", "b"))
	next := mk(row(chatlist.SectionInbox, "p", "a"))
	m := testutil.NewMirrorSurface(prev)

	chatlist.Apply(diffResult(prev, next, nil), m, false)
	want := map[string]bool{"p": true, "b": true}
	for _, id := range m.Invalidated {
		delete(want, id)
	}
	if len(want) != 0 {
		t.Errorf("ids never invalidated: %v (got %v)", want, m.Invalidated)
	}
}
