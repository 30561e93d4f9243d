package chatlist

import "github.com/vanderheijden86/threadline/pkg/debug"

// Apply issues the result's mutations to the surface in the documented
// order and returns the number of structural operations performed.
//
// For diff results the sequence is: invalidate per-id caches for every
// changed id, then section deletes, row deletes, section inserts, row
// inserts, moves, and finally updates, all inside one batch scope. The
// scope opens lazily on the first structural operation, so a cycle whose
// updates all take the in-place fast path never opens an empty batch.
func Apply(result LoadResult, surface RenderSurface, animated bool) int {
	switch result.Kind {
	case ResultNoOp:
		return 0

	case ResultReset:
		surface.ReloadAll(result.State)
		return 1

	case ResultContextOnly:
		// Layout replaced wholesale, no animation; per-id caches survive
		// because row content is unchanged by a context switch.
		surface.SwapState(result.State)
		return 0

	case ResultDiff:
		return applyDiff(result, surface, animated)

	default:
		debug.Assert(false, "chatlist: unknown load result kind")
		return 0
	}
}

func applyDiff(result LoadResult, surface RenderSurface, animated bool) int {
	for _, id := range changedIDs(result.RowChanges) {
		surface.InvalidateRow(id)
	}

	structural := 0
	open := func() {
		if structural == 0 {
			surface.BeginUpdates(animated)
		}
		structural++
	}

	// Section deletes are emitted before section inserts; row changes are
	// already ordered deletes, inserts, moves, updates.
	for _, sc := range result.SectionChanges {
		if sc.Op != SectionDelete {
			continue
		}
		open()
		surface.DeleteSection(sc.Index)
	}
	for _, rc := range result.RowChanges {
		if rc.Op != RowDelete {
			continue
		}
		open()
		surface.DeleteRow(rc.From)
	}
	for _, sc := range result.SectionChanges {
		if sc.Op != SectionInsert {
			continue
		}
		open()
		surface.InsertSection(sc.Index, sc.Kind)
	}
	for _, rc := range result.RowChanges {
		switch rc.Op {
		case RowInsert:
			open()
			surface.InsertRow(rc.To, rc.ID)
		case RowMove:
			open()
			surface.MoveRow(rc.From, rc.To)
		}
	}
	for _, rc := range result.RowChanges {
		if rc.Op != RowUpdate {
			continue
		}
		if surface.IsRowVisible(rc.To) && surface.UpdateRowInPlace(rc.To, rc.ID) {
			continue
		}
		// Row not realized or its cached content is gone: structural
		// reload, never a dropped update.
		open()
		surface.ReloadRow(rc.To, rc.ID)
	}

	if structural > 0 {
		surface.EndUpdates()
	}
	return structural
}

// changedIDs returns the unique ids touched by the change list, in
// first-seen order.
func changedIDs(changes []RowChange) []string {
	seen := make(map[string]struct{}, len(changes))
	var ids []string
	for _, rc := range changes {
		if _, ok := seen[rc.ID]; ok {
			continue
		}
		seen[rc.ID] = struct{}{}
		ids = append(ids, rc.ID)
	}
	return ids
}
