package chatlist

import "testing"

func TestClassifyFirstLoadIsReset(t *testing.T) {
	s := Classify(ClassifyInput{HaveLast: false})
	if s.Kind != StrategyReset {
		t.Fatalf("first load should reset, got %v", s.Kind)
	}
}

func TestClassifyResetDominates(t *testing.T) {
	// Reset wins even when ids and a context change are pending.
	s := Classify(ClassifyInput{
		Reset:      true,
		PendingIDs: map[string]struct{}{"a": {}},
		NewContext: ViewContext{Mode: ModeArchive},
		LastContext: ViewContext{Mode: ModeInbox},
		HaveLast:   true,
	})
	if s.Kind != StrategyReset {
		t.Fatalf("reset should dominate, got %v", s.Kind)
	}
	if s.UpdatedIDs != nil {
		t.Error("reset strategy should carry no ids")
	}
}

func TestClassifyIDsDominateContextChange(t *testing.T) {
	// Content changes can move rows between sections, so pending ids force
	// a diff even when the context also changed.
	s := Classify(ClassifyInput{
		PendingIDs:  map[string]struct{}{"a": {}},
		NewContext:  ViewContext{Filter: FilterUnread},
		LastContext: ViewContext{Filter: FilterAll},
		HaveLast:    true,
	})
	if s.Kind != StrategyDiff {
		t.Fatalf("pending ids should force a diff, got %v", s.Kind)
	}
	if len(s.UpdatedIDs) != 1 {
		t.Fatalf("expected 1 updated id, got %d", len(s.UpdatedIDs))
	}
}

func TestClassifyContextOnly(t *testing.T) {
	s := Classify(ClassifyInput{
		NewContext:  ViewContext{Mode: ModeArchive},
		LastContext: ViewContext{Mode: ModeInbox},
		HaveLast:    true,
	})
	if s.Kind != StrategyContextOnly {
		t.Fatalf("context change alone should be context-only, got %v", s.Kind)
	}
}

func TestClassifyForce(t *testing.T) {
	ctx := ViewContext{Mode: ModeInbox}
	s := Classify(ClassifyInput{NewContext: ctx, LastContext: ctx, HaveLast: true, Force: true})
	if s.Kind != StrategyContextOnly {
		t.Fatalf("force on an idle cycle should rebuild, got %v", s.Kind)
	}
}

func TestClassifyNoOp(t *testing.T) {
	ctx := ViewContext{Mode: ModeInbox, BannersVisible: true}
	s := Classify(ClassifyInput{NewContext: ctx, LastContext: ctx, HaveLast: true})
	if s.Kind != StrategyNoOp {
		t.Fatalf("idle cycle should be a no-op, got %v", s.Kind)
	}
}
