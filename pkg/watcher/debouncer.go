package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces rapid trigger bursts into one callback after a quiet
// period. A fresh trigger while the timer is pending restarts the window.
type debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// trigger schedules fn after the debounce window, replacing any pending
// invocation. A zero duration fires synchronously.
func (b *debouncer) trigger(fn func()) {
	if b.d <= 0 {
		fn()
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// cancel drops any pending invocation.
func (b *debouncer) cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
