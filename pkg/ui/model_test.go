package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/config"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// memStore serves a mutable in-memory snapshot through the store contract.
type memStore struct {
	threads []model.Thread
}

type memReader struct{ s *memStore }

func (r memReader) Threads() ([]model.Thread, error) {
	out := make([]model.Thread, len(r.s.threads))
	copy(out, r.s.threads)
	return out, nil
}

func (s *memStore) Read(fn func(chatlist.ThreadReader) error) error {
	return fn(memReader{s})
}

func uiThreads() []model.Thread {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	mk := func(id, title string, age int) model.Thread {
		return model.Thread{ID: id, Title: title, LastActivity: base.Add(-time.Duration(age) * time.Minute)}
	}
	pin := mk("pin", "Family", 90)
	pin.Pinned = true
	pin.PinnedAt = base
	arch := mk("arch", "Movers", 120)
	arch.Archived = true
	return []model.Thread{pin, mk("a", "Design sync", 10), mk("b", "Book club", 20), arch}
}

func newTestModel(t *testing.T, threads []model.Thread) (Model, *memStore) {
	t.Helper()
	store := &memStore{threads: threads}
	m := NewModel(store, config.DefaultConfig(), "test source")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	next, _ = m.Update(StoreChangedMsg{})
	return next.(Model), store
}

func TestModelInitialLoad(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())

	if m.coord.TotalRows() != 3 {
		t.Fatalf("inbox should show 3 threads, got %d", m.coord.TotalRows())
	}
	if m.coord.RowCount(chatlist.SectionPinned) != 1 {
		t.Errorf("pinned count = %d", m.coord.RowCount(chatlist.SectionPinned))
	}
	if m.lastLoad.Strategy != chatlist.StrategyReset {
		t.Errorf("first load should reset, got %v", m.lastLoad.Strategy)
	}
	if _, ok := m.surface.content["a"]; !ok {
		t.Error("content cache not primed")
	}
}

func TestModelWatcherEventNarrowsToDiff(t *testing.T) {
	m, store := newTestModel(t, uiThreads())

	for i := range store.threads {
		if store.threads[i].ID == "b" {
			store.threads[i].Unread = 4
		}
	}
	next, _ := m.Update(StoreChangedMsg{})
	m = next.(Model)

	if m.lastLoad.Strategy != chatlist.StrategyDiff {
		t.Fatalf("a narrow change should diff, got %v", m.lastLoad.Strategy)
	}
	if m.lastLoad.Structural != 0 {
		t.Errorf("content-only change should take the fast path, %d structural ops", m.lastLoad.Structural)
	}
}

func TestModelUnchangedWatcherEventIsNoOp(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())

	next, _ := m.Update(StoreChangedMsg{})
	m = next.(Model)
	if m.lastLoad.Strategy != chatlist.StrategyNoOp {
		t.Fatalf("spurious watcher event should be a no-op, got %v", m.lastLoad.Strategy)
	}
}

func TestModelModeSwitch(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.view.mode != chatlist.ModeArchive {
		t.Fatal("tab should switch to archive")
	}
	if m.lastLoad.Strategy != chatlist.StrategyContextOnly {
		t.Errorf("mode switch should be context-only, got %v", m.lastLoad.Strategy)
	}
	if m.coord.TotalRows() != 1 {
		t.Errorf("archive should show 1 thread, got %d", m.coord.TotalRows())
	}

	// The surface mirror must follow the swap, not keep the inbox layout.
	if len(m.surface.sections) != 1 || m.surface.sections[0].Kind != chatlist.SectionArchived {
		t.Fatalf("surface still holds the old layout: %+v", m.surface.sections)
	}
	if rows := m.surface.sections[0].Rows; len(rows) != 1 || rows[0] != "arch" {
		t.Fatalf("archived row missing from surface: %v", rows)
	}
	out := m.renderList()
	if !strings.Contains(out, "Movers") {
		t.Errorf("rendered list missing the archived thread:\n%s", out)
	}
	if strings.Contains(out, "Design sync") {
		t.Errorf("rendered list still shows inbox rows:\n%s", out)
	}
	// Cursor addressing follows the new layout too.
	if id, ok := m.selectedID(); !ok || id != "arch" {
		t.Errorf("selection should land on the archived thread, got %q", id)
	}

	// And tab back restores the inbox view.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if len(m.surface.sections) != 2 {
		t.Fatalf("inbox layout not restored: %+v", m.surface.sections)
	}
}

func TestModelUnreadFilterToggle(t *testing.T) {
	threads := uiThreads()
	threads[1].Unread = 2 // "a"
	m, _ := newTestModel(t, threads)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	m = next.(Model)
	if m.view.filter != chatlist.FilterUnread {
		t.Fatal("u should enable the unread filter")
	}
	// Pinned survives the filter, plus the one unread thread.
	if m.coord.TotalRows() != 2 {
		t.Errorf("expected pinned + unread = 2 rows, got %d", m.coord.TotalRows())
	}
	// The surface layout follows the filter swap.
	flat := 0
	for _, sec := range m.surface.sections {
		flat += len(sec.Rows)
	}
	if flat != 2 {
		t.Errorf("surface still shows %d rows after the filter swap: %+v", flat, m.surface.sections)
	}
}

func TestModelCursorFollowsSelection(t *testing.T) {
	m, store := newTestModel(t, uiThreads())

	// Move to the second row ("a", first inbox row after the pinned one).
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(Model)
	id, ok := m.selectedID()
	if !ok || id != "a" {
		t.Fatalf("expected cursor on a, got %q", id)
	}

	// A new thread lands above; the cursor keeps following "a".
	base := time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)
	store.threads = append(store.threads, model.Thread{ID: "new", Title: "Lunch?", LastActivity: base})
	next, _ = m.Update(StoreChangedMsg{})
	m = next.(Model)

	id, ok = m.selectedID()
	if !ok || id != "a" {
		t.Fatalf("cursor should follow the selected thread, got %q", id)
	}
}

func TestModelReadOnlyMutation(t *testing.T) {
	// memStore implements no Mutator, like a JSONL export.
	m, _ := newTestModel(t, uiThreads())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	if m.statusMsg != "source is read-only" || !m.statusIsError {
		t.Fatalf("pin on a read-only source should set an error status, got %q", m.statusMsg)
	}
}

func TestModelSearchJump(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = next.(Model)
	if !m.searching {
		t.Fatal("/ should open the search prompt")
	}
	for _, r := range "book" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.searching {
		t.Fatal("enter should close the search prompt")
	}
	if id, _ := m.selectedID(); id != "b" {
		t.Fatalf("expected jump to Book club, got %q", id)
	}
}

func TestModelFullReload(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	m = next.(Model)
	if m.lastLoad.Strategy != chatlist.StrategyReset {
		t.Fatalf("R should force a reset, got %v", m.lastLoad.Strategy)
	}
}

func TestModelViewRenders(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())
	out := m.View()
	if out == "" || out == "loading threads..." {
		t.Fatalf("view should render after sizing: %q", out)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, uiThreads())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}
