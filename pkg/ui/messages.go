package ui

// StoreChangedMsg signals that the backing store file changed on disk.
// The watcher goroutine hands off through the tea message loop so all
// coordinator calls stay on the update goroutine.
type StoreChangedMsg struct{}

// WatchErrMsg carries a watcher error into the update loop.
type WatchErrMsg struct {
	Err error
}
