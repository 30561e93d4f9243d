package datasource

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vanderheijden86/threadline/pkg/model"
)

// ChangedIDs compares two thread snapshots and returns the ids that were
// added, removed, or modified between them, sorted for determinism. The
// file watcher only says "something changed"; this narrows it down to the
// ids the load coordinator should reconcile.
func ChangedIDs(prev, next []model.Thread) []string {
	prevDigests := make(map[string]string, len(prev))
	for _, t := range prev {
		prevDigests[t.ID] = digest(t)
	}

	changed := make(map[string]struct{})
	nextSeen := make(map[string]struct{}, len(next))
	for _, t := range next {
		nextSeen[t.ID] = struct{}{}
		old, existed := prevDigests[t.ID]
		if !existed || old != digest(t) {
			changed[t.ID] = struct{}{}
		}
	}
	for id := range prevDigests {
		if _, ok := nextSeen[id]; !ok {
			changed[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(changed))
	for id := range changed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// digest flattens the render-relevant fields of a thread into a comparable
// string. Fields that never affect the list (participants) are excluded.
func digest(t model.Thread) string {
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteByte(0)
	b.WriteString(t.Preview)
	b.WriteByte(0)
	b.WriteString(t.LastActivity.UTC().Format("2006-01-02T15:04:05.000000000"))
	b.WriteByte(0)
	if t.Pinned {
		b.WriteString(t.PinnedAt.UTC().Format("2006-01-02T15:04:05.000000000"))
	}
	b.WriteByte(0)
	if t.Archived {
		b.WriteByte('A')
	}
	if t.Muted {
		b.WriteByte('M')
	}
	b.WriteByte(0)
	b.WriteString(strings.Join(t.Labels, ","))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(t.Unread))
	return b.String()
}
