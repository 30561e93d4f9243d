package chatlist

import "fmt"

// SectionKind identifies a logical grouping of rows in the list. Kinds have
// a canonical display order: pinned, inbox, archived.
type SectionKind int

const (
	// SectionPinned holds pinned threads, newest pin first.
	SectionPinned SectionKind = iota
	// SectionInbox holds active unpinned threads, most recent first.
	SectionInbox
	// SectionArchived holds archived threads, most recent first.
	SectionArchived
)

// String returns the section name used in debug output.
func (k SectionKind) String() string {
	switch k {
	case SectionPinned:
		return "pinned"
	case SectionInbox:
		return "inbox"
	case SectionArchived:
		return "archived"
	default:
		return fmt.Sprintf("section(%d)", int(k))
	}
}

// Section is an ordered group of row identifiers under one kind. Row ids
// are opaque thread identifiers, unique within the section.
type Section struct {
	Kind SectionKind
	Rows []string
}

// RowPath addresses a row by section index and row offset within it.
type RowPath struct {
	Section int
	Row     int
}

// String formats the path for debug output.
func (p RowPath) String() string {
	return fmt.Sprintf("[%d:%d]", p.Section, p.Row)
}

// Less orders paths by section, then row.
func (p RowPath) Less(o RowPath) bool {
	if p.Section != o.Section {
		return p.Section < o.Section
	}
	return p.Row < o.Row
}

// RenderState is an immutable snapshot of the materialized list layout:
// ordered sections, each with ordered row ids, plus precomputed counts.
// A state is replaced wholesale on every successful load, never mutated.
type RenderState struct {
	Sections []Section

	counts map[SectionKind]int
	total  int
}

// NewRenderState builds a state from ordered sections, computing the
// per-kind aggregate counts. The sections slice is owned by the new state
// and must not be mutated afterwards.
func NewRenderState(sections []Section) *RenderState {
	s := &RenderState{
		Sections: sections,
		counts:   make(map[SectionKind]int, len(sections)),
	}
	for _, sec := range sections {
		s.counts[sec.Kind] += len(sec.Rows)
		s.total += len(sec.Rows)
	}
	return s
}

// EmptyRenderState returns a state with no sections.
func EmptyRenderState() *RenderState {
	return NewRenderState(nil)
}

// SectionCount returns the number of sections.
func (s *RenderState) SectionCount() int {
	return len(s.Sections)
}

// RowCount returns the number of rows under the given kind.
func (s *RenderState) RowCount(kind SectionKind) int {
	return s.counts[kind]
}

// TotalRows returns the number of rows across all sections.
func (s *RenderState) TotalRows() int {
	return s.total
}

// SectionIndex returns the index of the section with the given kind, or -1.
func (s *RenderState) SectionIndex(kind SectionKind) int {
	for i, sec := range s.Sections {
		if sec.Kind == kind {
			return i
		}
	}
	return -1
}

// RowAt returns the row id at path, if the path is in range.
func (s *RenderState) RowAt(path RowPath) (string, bool) {
	if path.Section < 0 || path.Section >= len(s.Sections) {
		return "", false
	}
	rows := s.Sections[path.Section].Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return "", false
	}
	return rows[path.Row], true
}

// Find returns the path of the row with the given id.
func (s *RenderState) Find(id string) (RowPath, bool) {
	for si, sec := range s.Sections {
		for ri, row := range sec.Rows {
			if row == id {
				return RowPath{Section: si, Row: ri}, true
			}
		}
	}
	return RowPath{}, false
}

// Equal reports whether two states have identical section and row layout.
func (s *RenderState) Equal(o *RenderState) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.Sections) != len(o.Sections) {
		return false
	}
	for i := range s.Sections {
		if s.Sections[i].Kind != o.Sections[i].Kind {
			return false
		}
		if len(s.Sections[i].Rows) != len(o.Sections[i].Rows) {
			return false
		}
		for j := range s.Sections[i].Rows {
			if s.Sections[i].Rows[j] != o.Sections[i].Rows[j] {
				return false
			}
		}
	}
	return true
}

// cloneSections deep-copies the section layout for diff simulation.
func cloneSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, sec := range sections {
		rows := make([]string, len(sec.Rows))
		copy(rows, sec.Rows)
		out[i] = Section{Kind: sec.Kind, Rows: rows}
	}
	return out
}
