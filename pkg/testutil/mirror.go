package testutil

import (
	"fmt"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
)

// MirrorSurface is a chatlist.RenderSurface that maintains a faithful
// section/row mirror and records every call, for verifying both the final
// layout and the operation discipline (batching, ordering, fast paths).
type MirrorSurface struct {
	Sections []chatlist.Section

	// Batches counts BeginUpdates/EndUpdates pairs; BatchOpen tracks the
	// currently open scope.
	Batches   int
	BatchOpen bool
	// Structural counts structural operations received.
	Structural int
	// Invalidated records ids passed to InvalidateRow, in order.
	Invalidated []string
	// Reloaded records ids structurally reloaded via ReloadRow.
	Reloaded []string
	// FastPathed records ids refreshed through UpdateRowInPlace.
	FastPathed []string
	// Resets counts ReloadAll calls.
	Resets int
	// Swaps counts SwapState calls.
	Swaps int
	// Ops records a readable trace of structural calls.
	Ops []string

	// VisibleFn decides row visibility; nil means everything is visible.
	VisibleFn func(chatlist.RowPath) bool
	// InPlaceFn decides whether the fast path succeeds for a row; nil
	// means it always succeeds.
	InPlaceFn func(chatlist.RowPath, string) bool
}

// NewMirrorSurface seeds a mirror with a deep copy of the given state.
func NewMirrorSurface(state *chatlist.RenderState) *MirrorSurface {
	m := &MirrorSurface{}
	m.Load(state)
	return m
}

// Load replaces the mirror layout with a deep copy of state.
func (m *MirrorSurface) Load(state *chatlist.RenderState) {
	m.Sections = nil
	if state == nil {
		return
	}
	for _, sec := range state.Sections {
		rows := make([]string, len(sec.Rows))
		copy(rows, sec.Rows)
		m.Sections = append(m.Sections, chatlist.Section{Kind: sec.Kind, Rows: rows})
	}
}

// State returns the mirror layout as a RenderState.
func (m *MirrorSurface) State() *chatlist.RenderState {
	sections := make([]chatlist.Section, 0, len(m.Sections))
	for _, sec := range m.Sections {
		rows := make([]string, len(sec.Rows))
		copy(rows, sec.Rows)
		sections = append(sections, chatlist.Section{Kind: sec.Kind, Rows: rows})
	}
	return chatlist.NewRenderState(sections)
}

// BeginUpdates opens a batch scope.
func (m *MirrorSurface) BeginUpdates(animated bool) {
	if m.BatchOpen {
		panic("testutil: nested BeginUpdates")
	}
	m.BatchOpen = true
	m.Batches++
}

// EndUpdates closes the batch scope.
func (m *MirrorSurface) EndUpdates() {
	if !m.BatchOpen {
		panic("testutil: EndUpdates without open batch")
	}
	m.BatchOpen = false
}

func (m *MirrorSurface) structural(op string) {
	if !m.BatchOpen {
		panic(fmt.Sprintf("testutil: structural op %s outside batch", op))
	}
	m.Structural++
	m.Ops = append(m.Ops, op)
}

// InsertSection inserts an empty section of kind at index.
func (m *MirrorSurface) InsertSection(index int, kind chatlist.SectionKind) {
	m.structural(fmt.Sprintf("insert-section %d %s", index, kind))
	if index > len(m.Sections) {
		index = len(m.Sections)
	}
	m.Sections = append(m.Sections[:index], append([]chatlist.Section{{Kind: kind}}, m.Sections[index:]...)...)
}

// DeleteSection removes the section at index.
func (m *MirrorSurface) DeleteSection(index int) {
	m.structural(fmt.Sprintf("delete-section %d", index))
	m.Sections = append(m.Sections[:index], m.Sections[index+1:]...)
}

// InsertRow inserts id at path, clamping the row offset.
func (m *MirrorSurface) InsertRow(path chatlist.RowPath, id string) {
	m.structural(fmt.Sprintf("insert-row %s %s", id, path))
	rows := m.Sections[path.Section].Rows
	at := path.Row
	if at > len(rows) {
		at = len(rows)
	}
	m.Sections[path.Section].Rows = append(rows[:at], append([]string{id}, rows[at:]...)...)
}

// DeleteRow removes the row at path.
func (m *MirrorSurface) DeleteRow(path chatlist.RowPath) {
	m.structural(fmt.Sprintf("delete-row %s", path))
	rows := m.Sections[path.Section].Rows
	m.Sections[path.Section].Rows = append(rows[:path.Row], rows[path.Row+1:]...)
}

// MoveRow relocates a row from from to to.
func (m *MirrorSurface) MoveRow(from, to chatlist.RowPath) {
	m.structural(fmt.Sprintf("move-row %s->%s", from, to))
	rows := m.Sections[from.Section].Rows
	id := rows[from.Row]
	m.Sections[from.Section].Rows = append(rows[:from.Row], rows[from.Row+1:]...)
	target := m.Sections[to.Section].Rows
	at := to.Row
	if at > len(target) {
		at = len(target)
	}
	m.Sections[to.Section].Rows = append(target[:at], append([]string{id}, target[at:]...)...)
}

// ReloadRow records a structural single-row reload.
func (m *MirrorSurface) ReloadRow(path chatlist.RowPath, id string) {
	m.structural(fmt.Sprintf("reload-row %s %s", id, path))
	m.Reloaded = append(m.Reloaded, id)
}

// ReloadAll replaces the whole layout.
func (m *MirrorSurface) ReloadAll(state *chatlist.RenderState) {
	m.Resets++
	m.Load(state)
}

// SwapState replaces the layout without counting as a reset.
func (m *MirrorSurface) SwapState(state *chatlist.RenderState) {
	m.Swaps++
	m.Load(state)
}

// InvalidateRow records a cache invalidation.
func (m *MirrorSurface) InvalidateRow(id string) {
	m.Invalidated = append(m.Invalidated, id)
}

// IsRowVisible consults VisibleFn, defaulting to visible.
func (m *MirrorSurface) IsRowVisible(path chatlist.RowPath) bool {
	if m.VisibleFn == nil {
		return true
	}
	return m.VisibleFn(path)
}

// UpdateRowInPlace consults InPlaceFn, defaulting to success.
func (m *MirrorSurface) UpdateRowInPlace(path chatlist.RowPath, id string) bool {
	if m.InPlaceFn != nil && !m.InPlaceFn(path, id) {
		return false
	}
	m.FastPathed = append(m.FastPathed, id)
	return true
}
