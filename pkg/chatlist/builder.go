package chatlist

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vanderheijden86/threadline/pkg/debug"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// ErrInconsistentMembership signals that the backing snapshot produced an
// id in more than one section, or twice in one section. This is a
// programming-error class fault: the caller aborts the cycle and forces a
// reset on the next one instead of silently correcting the data.
var ErrInconsistentMembership = errors.New("inconsistent section membership")

// BuildState assembles a fresh RenderState from a snapshot of threads under
// the given view context. Empty sections are omitted. Ordering inside each
// section is deterministic: pinned threads by pin time (newest first), all
// others by last activity (newest first), ties broken by id.
func BuildState(threads []model.Thread, ctx ViewContext) (*RenderState, error) {
	seen := make(map[string]struct{}, len(threads))
	for _, t := range threads {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: thread %s appears twice in snapshot", ErrInconsistentMembership, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	var pinned, plain []model.Thread
	for _, t := range threads {
		switch ctx.Mode {
		case ModeInbox:
			if t.Archived {
				continue
			}
			if t.Pinned {
				pinned = append(pinned, t)
				continue
			}
			if ctx.Filter == FilterUnread && !t.HasUnread() {
				continue
			}
			plain = append(plain, t)
		case ModeArchive:
			if !t.Archived {
				continue
			}
			if ctx.Filter == FilterUnread && !t.HasUnread() {
				continue
			}
			plain = append(plain, t)
		}
	}

	sortThreads(pinned)
	sortThreads(plain)

	var sections []Section
	if len(pinned) > 0 {
		sections = append(sections, Section{Kind: SectionPinned, Rows: threadIDs(pinned)})
	}
	if len(plain) > 0 {
		kind := SectionInbox
		if ctx.Mode == ModeArchive {
			kind = SectionArchived
		}
		sections = append(sections, Section{Kind: kind, Rows: threadIDs(plain)})
	}
	return NewRenderState(sections), nil
}

// sortThreads orders threads newest first by their sort key, breaking ties
// by id so the layout is stable across loads.
func sortThreads(threads []model.Thread) {
	sort.SliceStable(threads, func(i, j int) bool {
		ki, kj := threads[i].SortKey(), threads[j].SortKey()
		if !ki.Equal(kj) {
			return ki.After(kj)
		}
		return threads[i].ID < threads[j].ID
	})
}

func threadIDs(threads []model.Thread) []string {
	ids := make([]string, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}
	return ids
}

// rowRef locates a row by its section kind and path within a state.
type rowRef struct {
	kind SectionKind
	path RowPath
}

// DiffStates computes the minimal ordered change sequence that transforms
// prev into next. Sections are diffed first by kind identity; rows within
// surviving sections are diffed by id and relative order.
//
// Rows whose relative order within their section is preserved yield no
// structural change (an Update if their id is in updated); rows reordered
// within the same section yield Delete+Insert so their content is reloaded;
// rows that change section yield a single Move. Emission order matches the
// application order the applicator uses: section deletes (descending), row
// deletes (descending), section inserts (ascending), row inserts
// (ascending), moves (ascending target), updates.
func DiffStates(prev, next *RenderState, updated map[string]struct{}) ([]SectionChange, []RowChange) {
	work := cloneSections(prev.Sections)

	nextKinds := make(map[SectionKind]int, len(next.Sections))
	for i, sec := range next.Sections {
		nextKinds[sec.Kind] = i
	}

	var secChanges []SectionChange
	// Rows living in a deleted section go down with it; survivors are
	// re-inserted rather than moved.
	sectionCasualties := make(map[string]struct{})
	for i := len(work) - 1; i >= 0; i-- {
		if _, keep := nextKinds[work[i].Kind]; keep {
			continue
		}
		for _, id := range work[i].Rows {
			sectionCasualties[id] = struct{}{}
		}
		secChanges = append(secChanges, SectionChange{Op: SectionDelete, Index: i, Kind: work[i].Kind})
		work = append(work[:i], work[i+1:]...)
	}

	oldRefs := refsOf(prev)
	newRefs := refsOf(next)

	// Per-kind order anchors: common same-kind rows that keep their
	// relative order need no structural change.
	anchored := make(map[string]struct{})
	for kind := range nextKinds {
		var oldOrder, newOrder []string
		oldIdx := prev.SectionIndex(kind)
		if oldIdx < 0 {
			continue
		}
		for _, id := range prev.Sections[oldIdx].Rows {
			if ref, ok := newRefs[id]; ok && ref.kind == kind {
				oldOrder = append(oldOrder, id)
			}
		}
		for _, id := range next.Sections[nextKinds[kind]].Rows {
			if ref, ok := oldRefs[id]; ok && ref.kind == kind {
				newOrder = append(newOrder, id)
			}
		}
		for id := range lcsAnchors(oldOrder, newOrder) {
			anchored[id] = struct{}{}
		}
	}

	var deleteIDs, insertIDs, moveIDs, updateIDs []string
	for id, oref := range oldRefs {
		if _, gone := sectionCasualties[id]; gone {
			if _, kept := newRefs[id]; kept {
				insertIDs = append(insertIDs, id)
			}
			continue
		}
		nref, kept := newRefs[id]
		switch {
		case !kept:
			deleteIDs = append(deleteIDs, id)
		case oref.kind != nref.kind:
			moveIDs = append(moveIDs, id)
		default:
			if _, ok := anchored[id]; !ok {
				// Reordered within its section: delete+insert, never a
				// synthetic move, so the content is reloaded too.
				deleteIDs = append(deleteIDs, id)
				insertIDs = append(insertIDs, id)
			} else if _, changed := updated[id]; changed {
				updateIDs = append(updateIDs, id)
			}
		}
	}
	for id := range newRefs {
		if _, existed := oldRefs[id]; !existed {
			insertIDs = append(insertIDs, id)
		}
	}

	var rowChanges []RowChange

	// Row deletes, highest path first, against the working layout.
	deletePaths := make([]RowPath, len(deleteIDs))
	for i, id := range deleteIDs {
		deletePaths[i], _ = findRow(work, id)
	}
	sort.Sort(sort.Reverse(byPathIDs{paths: deletePaths, ids: deleteIDs}))
	for i, id := range deleteIDs {
		p := deletePaths[i]
		work[p.Section].Rows = append(work[p.Section].Rows[:p.Row], work[p.Section].Rows[p.Row+1:]...)
		rowChanges = append(rowChanges, RowChange{Op: RowDelete, ID: id, From: p})
	}

	// Section inserts at their final indices, ascending. Survivors keep
	// their canonical relative order, so final indices stay valid.
	var inserts []SectionChange
	for kind, idx := range nextKinds {
		if prev.SectionIndex(kind) < 0 {
			inserts = append(inserts, SectionChange{Op: SectionInsert, Index: idx, Kind: kind})
		}
	}
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].Index < inserts[j].Index })
	for _, sc := range inserts {
		at := sc.Index
		if at > len(work) {
			at = len(work)
		}
		work = append(work[:at], append([]Section{{Kind: sc.Kind}}, work[at:]...)...)
		secChanges = append(secChanges, sc)
	}

	// Row inserts at new-state paths, ascending. Target rows later than a
	// pending cross-section move are clamped to the current section length;
	// the move restores the exact offset afterwards.
	insertPaths := make([]RowPath, len(insertIDs))
	for i, id := range insertIDs {
		insertPaths[i] = newRefs[id].path
	}
	sort.Sort(byPathIDs{paths: insertPaths, ids: insertIDs})
	for i, id := range insertIDs {
		p := insertPaths[i]
		insertRow(work, p, id)
		rowChanges = append(rowChanges, RowChange{Op: RowInsert, ID: id, To: p})
	}

	// Cross-section moves, ascending target. From is the row's position in
	// the layout at this point of the sequence.
	movePaths := make([]RowPath, len(moveIDs))
	for i, id := range moveIDs {
		movePaths[i] = newRefs[id].path
	}
	sort.Sort(byPathIDs{paths: movePaths, ids: moveIDs})
	for i, id := range moveIDs {
		from, ok := findRow(work, id)
		if !ok {
			debug.Assert(false, fmt.Sprintf("chatlist: move source %s vanished mid-diff", id))
			continue
		}
		to := movePaths[i]
		work[from.Section].Rows = append(work[from.Section].Rows[:from.Row], work[from.Section].Rows[from.Row+1:]...)
		insertRow(work, to, id)
		rowChanges = append(rowChanges, RowChange{Op: RowMove, ID: id, From: from, To: to})
	}

	// Content updates last, ascending.
	updatePaths := make([]RowPath, len(updateIDs))
	for i, id := range updateIDs {
		updatePaths[i] = newRefs[id].path
	}
	sort.Sort(byPathIDs{paths: updatePaths, ids: updateIDs})
	for i, id := range updateIDs {
		rowChanges = append(rowChanges, RowChange{Op: RowUpdate, ID: id, To: updatePaths[i]})
	}

	debug.Assert(NewRenderState(work).Equal(next), "chatlist: diff simulation does not reproduce the target state")

	return secChanges, rowChanges
}

// refsOf indexes every row of a state by id.
func refsOf(s *RenderState) map[string]rowRef {
	refs := make(map[string]rowRef, s.TotalRows())
	for si, sec := range s.Sections {
		for ri, id := range sec.Rows {
			refs[id] = rowRef{kind: sec.Kind, path: RowPath{Section: si, Row: ri}}
		}
	}
	return refs
}

// findRow locates id in a working layout.
func findRow(sections []Section, id string) (RowPath, bool) {
	for si, sec := range sections {
		for ri, row := range sec.Rows {
			if row == id {
				return RowPath{Section: si, Row: ri}, true
			}
		}
	}
	return RowPath{}, false
}

// insertRow places id at path in the working layout, clamping the row
// offset to the current section length.
func insertRow(sections []Section, path RowPath, id string) {
	rows := sections[path.Section].Rows
	at := path.Row
	if at > len(rows) {
		at = len(rows)
	}
	rows = append(rows[:at], append([]string{id}, rows[at:]...)...)
	sections[path.Section].Rows = rows
}

// lcsAnchors returns the ids on a longest common subsequence of the two
// orderings. Anchored ids keep their relative order and need no structural
// change. Both inputs contain the same id set in different orders.
func lcsAnchors(old, new []string) map[string]struct{} {
	n, m := len(old), len(new)
	anchors := make(map[string]struct{})
	if n == 0 || m == 0 {
		return anchors
	}
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if old[i] == new[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case old[i] == new[j]:
			anchors[old[i]] = struct{}{}
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return anchors
}

// byPathIDs sorts parallel (path, id) slices by path order.
type byPathIDs struct {
	paths []RowPath
	ids   []string
}

func (s byPathIDs) Len() int           { return len(s.paths) }
func (s byPathIDs) Less(i, j int) bool { return s.paths[i].Less(s.paths[j]) }
func (s byPathIDs) Swap(i, j int) {
	s.paths[i], s.paths[j] = s.paths[j], s.paths[i]
	s.ids[i], s.ids[j] = s.ids[j], s.ids[i]
}
