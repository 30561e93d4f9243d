package chatlist

// Accumulator collects pending change signals between load cycles: a sticky
// reset flag and a deduplicated set of changed thread ids. Requests are
// commutative and idempotent; any burst of calls between two loads collapses
// into one effective instruction, consumed atomically by Drain.
//
// The accumulator is owned by exactly one coordinator and must only be
// touched from the owning update loop.
type Accumulator struct {
	reset bool
	ids   map[string]struct{}
}

// RequestReset arms the reset flag. The flag is sticky until drained and
// dominates any accumulated ids.
func (a *Accumulator) RequestReset() {
	a.reset = true
}

// RequestUpdate unions the given ids into the pending set. Empty ids are
// ignored.
func (a *Accumulator) RequestUpdate(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if a.ids == nil {
			a.ids = make(map[string]struct{})
		}
		a.ids[id] = struct{}{}
	}
}

// Empty reports whether nothing is pending.
func (a *Accumulator) Empty() bool {
	return !a.reset && len(a.ids) == 0
}

// Drain returns the current (reset, ids) pair and clears both. The returned
// set is owned by the caller.
func (a *Accumulator) Drain() (reset bool, ids map[string]struct{}) {
	reset, ids = a.reset, a.ids
	a.reset = false
	a.ids = nil
	return reset, ids
}
