package ui

import (
	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/debug"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// listSurface is the TUI implementation of chatlist.RenderSurface. It
// mirrors the coordinator's section/row layout and keeps two caches keyed
// by thread id: the content cache (thread records) and the line cache
// (rendered row strings). The in-place fast path re-renders a visible row
// from cached content without touching the layout.
type listSurface struct {
	sections []chatlist.Section

	content map[string]model.Thread
	lines   map[string]string

	// renderLine renders a thread into its row string; set by the model.
	renderLine func(model.Thread) string
	// visible reports whether a row path is on screen; set by the model.
	visible func(chatlist.RowPath) bool

	batchOpen bool
}

func newListSurface() *listSurface {
	return &listSurface{
		content:    make(map[string]model.Thread),
		lines:      make(map[string]string),
		renderLine: func(model.Thread) string { return "" },
		visible:    func(chatlist.RowPath) bool { return false },
	}
}

// setContent replaces the content cache entry for a thread.
func (s *listSurface) setContent(t model.Thread) {
	s.content[t.ID] = t
}

// dropContent removes a thread from the content cache.
func (s *listSurface) dropContent(id string) {
	delete(s.content, id)
	delete(s.lines, id)
}

// threadAt returns the cached content for the row at path.
func (s *listSurface) threadAt(path chatlist.RowPath) (model.Thread, bool) {
	if path.Section < 0 || path.Section >= len(s.sections) {
		return model.Thread{}, false
	}
	rows := s.sections[path.Section].Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return model.Thread{}, false
	}
	t, ok := s.content[rows[path.Row]]
	return t, ok
}

// line returns the rendered row string for id, rendering and caching it
// on demand from the content cache.
func (s *listSurface) line(id string) string {
	if line, ok := s.lines[id]; ok {
		return line
	}
	t, ok := s.content[id]
	if !ok {
		return ""
	}
	line := s.renderLine(t)
	s.lines[id] = line
	return line
}

// BeginUpdates opens a batched-mutation scope.
func (s *listSurface) BeginUpdates(animated bool) {
	debug.Assert(!s.batchOpen, "ui: nested BeginUpdates")
	s.batchOpen = true
}

// EndUpdates closes the scope.
func (s *listSurface) EndUpdates() {
	debug.Assert(s.batchOpen, "ui: EndUpdates without open batch")
	s.batchOpen = false
}

// InsertSection inserts an empty section of kind at index.
func (s *listSurface) InsertSection(index int, kind chatlist.SectionKind) {
	if index > len(s.sections) {
		index = len(s.sections)
	}
	s.sections = append(s.sections[:index], append([]chatlist.Section{{Kind: kind}}, s.sections[index:]...)...)
}

// DeleteSection removes the section at index.
func (s *listSurface) DeleteSection(index int) {
	if index < 0 || index >= len(s.sections) {
		debug.Assert(false, "ui: DeleteSection index out of range")
		return
	}
	s.sections = append(s.sections[:index], s.sections[index+1:]...)
}

// InsertRow inserts id at path, clamping the row offset.
func (s *listSurface) InsertRow(path chatlist.RowPath, id string) {
	if path.Section < 0 || path.Section >= len(s.sections) {
		debug.Assert(false, "ui: InsertRow section out of range")
		return
	}
	rows := s.sections[path.Section].Rows
	at := path.Row
	if at > len(rows) {
		at = len(rows)
	}
	s.sections[path.Section].Rows = append(rows[:at], append([]string{id}, rows[at:]...)...)
}

// DeleteRow removes the row at path.
func (s *listSurface) DeleteRow(path chatlist.RowPath) {
	if path.Section < 0 || path.Section >= len(s.sections) {
		debug.Assert(false, "ui: DeleteRow section out of range")
		return
	}
	rows := s.sections[path.Section].Rows
	if path.Row < 0 || path.Row >= len(rows) {
		debug.Assert(false, "ui: DeleteRow row out of range")
		return
	}
	s.sections[path.Section].Rows = append(rows[:path.Row], rows[path.Row+1:]...)
}

// MoveRow relocates a row between sections.
func (s *listSurface) MoveRow(from, to chatlist.RowPath) {
	if from.Section < 0 || from.Section >= len(s.sections) {
		debug.Assert(false, "ui: MoveRow source section out of range")
		return
	}
	rows := s.sections[from.Section].Rows
	if from.Row < 0 || from.Row >= len(rows) {
		debug.Assert(false, "ui: MoveRow source row out of range")
		return
	}
	id := rows[from.Row]
	s.sections[from.Section].Rows = append(rows[:from.Row], rows[from.Row+1:]...)
	target := s.sections[to.Section].Rows
	at := to.Row
	if at > len(target) {
		at = len(target)
	}
	s.sections[to.Section].Rows = append(target[:at], append([]string{id}, target[at:]...)...)
}

// ReloadRow drops the rendered line so the next frame re-renders it.
func (s *listSurface) ReloadRow(path chatlist.RowPath, id string) {
	delete(s.lines, id)
}

// ReloadAll replaces the layout wholesale and drops every per-id line;
// after a reset none of them can be trusted.
func (s *listSurface) ReloadAll(state *chatlist.RenderState) {
	s.setSections(state)
	s.lines = make(map[string]string)
}

// SwapState replaces the layout for a context switch. Cached lines stay:
// the rows themselves did not change, only which ones are shown.
func (s *listSurface) SwapState(state *chatlist.RenderState) {
	s.setSections(state)
}

func (s *listSurface) setSections(state *chatlist.RenderState) {
	s.sections = nil
	for _, sec := range state.Sections {
		rows := make([]string, len(sec.Rows))
		copy(rows, sec.Rows)
		s.sections = append(s.sections, chatlist.Section{Kind: sec.Kind, Rows: rows})
	}
}

// InvalidateRow drops the cached rendered line for id.
func (s *listSurface) InvalidateRow(id string) {
	delete(s.lines, id)
}

// IsRowVisible reports whether the row is on screen.
func (s *listSurface) IsRowVisible(path chatlist.RowPath) bool {
	return s.visible(path)
}

// UpdateRowInPlace re-renders a visible row from cached content. Returns
// false when the content cache no longer holds the thread; the applicator
// then falls back to a structural reload.
func (s *listSurface) UpdateRowInPlace(path chatlist.RowPath, id string) bool {
	t, ok := s.content[id]
	if !ok {
		return false
	}
	s.lines[id] = s.renderLine(t)
	return true
}
