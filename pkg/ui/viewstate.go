package ui

import "github.com/vanderheijden86/threadline/pkg/chatlist"

// viewState is the mutable view context shared between the tea model and
// the coordinator. It implements chatlist.ContextSource; the coordinator
// snapshots it at the start of every load cycle. A pointer is shared so
// bubbletea's value-copied models all observe the same state.
type viewState struct {
	mode           chatlist.Mode
	filter         chatlist.Filter
	multiSelect    bool
	lastSelectedID string
	bannersVisible bool
}

func (v *viewState) Mode() chatlist.Mode     { return v.mode }
func (v *viewState) Filter() chatlist.Filter { return v.filter }
func (v *viewState) MultiSelect() bool       { return v.multiSelect }
func (v *viewState) LastSelectedID() string  { return v.lastSelectedID }
func (v *viewState) BannersVisible() bool    { return v.bannersVisible }

// scrollState shares the viewport position and render width with the
// surface's visibility check and line renderer, which outlive any
// particular copy of the tea model.
type scrollState struct {
	offset int
	height int
	width  int
}
