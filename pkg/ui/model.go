package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/threadline/internal/datasource"
	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/config"
	"github.com/vanderheijden86/threadline/pkg/debug"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// Model is the top-level bubbletea model for the thread list. It owns the
// load coordinator and acts as its context source; the listSurface it
// attaches is the render surface the applicator drives.
type Model struct {
	theme Theme
	cfg   config.Config

	store chatlist.Store
	mut   datasource.Mutator // nil when the source is read-only

	coord   *chatlist.Coordinator
	surface *listSurface
	view    *viewState
	scroll  *scrollState

	vp        viewport.Model
	search    textinput.Model
	searching bool

	// snapshot is the last content snapshot, kept to narrow watcher
	// events down to changed thread ids.
	snapshot []model.Thread
	changes  <-chan struct{}

	cursor int
	width  int
	height int
	ready  bool

	statusMsg     string
	statusIsError bool
	lastLoad      chatlist.LastResult
	sourceDesc    string
}

// NewModel creates the thread list model over a snapshot store.
func NewModel(store chatlist.Store, cfg config.Config, sourceDesc string) Model {
	view := &viewState{
		bannersVisible: cfg.UI.ShowBanners,
	}
	if cfg.UI.DefaultMode == "archive" {
		view.mode = chatlist.ModeArchive
	}
	if cfg.UI.UnreadOnly {
		view.filter = chatlist.FilterUnread
	}

	theme := DefaultTheme()
	scroll := &scrollState{}
	surface := newListSurface()
	badge := cfg.UI.UnreadBadge
	if badge == "" {
		badge = "●"
	}
	relative := cfg.UI.RelativeTimes
	surface.renderLine = func(t model.Thread) string {
		return renderThreadLine(t, theme, scroll, badge, relative)
	}
	surface.visible = func(path chatlist.RowPath) bool {
		line := lineOf(surface.sections, path)
		return line >= scroll.offset && line < scroll.offset+scroll.height
	}

	coord := chatlist.NewCoordinator(store, view)
	coord.AttachSurface(surface)

	mut, _ := store.(datasource.Mutator)

	search := textinput.New()
	search.Placeholder = "jump to thread"
	search.Prompt = "/"
	search.CharLimit = 80

	return Model{
		theme:      theme,
		cfg:        cfg,
		store:      store,
		mut:        mut,
		coord:      coord,
		surface:    surface,
		view:       view,
		scroll:     scroll,
		vp:         viewport.New(0, 0),
		search:     search,
		sourceDesc: sourceDesc,
	}
}

// SetChangeChannel wires the watcher's change channel into the model.
func (m Model) SetChangeChannel(ch <-chan struct{}) Model {
	m.changes = ch
	return m
}

// Coordinator exposes the load coordinator, mainly for tests.
func (m Model) Coordinator() *chatlist.Coordinator {
	return m.coord
}

// Init triggers the initial load and starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StoreChangedMsg{} },
		waitForChange(m.changes),
	)
}

// waitForChange blocks on the watcher channel and re-enters the update
// loop with a StoreChangedMsg.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return StoreChangedMsg{}
	}
}

// Update handles messages. All coordinator calls happen here, on the
// program's single update goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := m.chromeLines()
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-chrome, 1)
		m.scroll.height = m.vp.Height
		m.scroll.offset = m.vp.YOffset
		m.scroll.width = msg.Width
		// Cached lines embed the old width.
		m.surface.lines = make(map[string]string)
		m.ready = true
		m.syncViewport()
		return m, nil

	case StoreChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case WatchErrMsg:
		m.setStatus(fmt.Sprintf("watch error: %v", msg.Err), true)
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.scroll.offset = m.vp.YOffset
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.setCursor(0)
	case "G", "end":
		m.setCursor(len(m.rowPaths()) - 1)

	case "tab":
		if m.view.mode == chatlist.ModeInbox {
			m.view.mode = chatlist.ModeArchive
		} else {
			m.view.mode = chatlist.ModeInbox
		}
		m.load(false, false)

	case "u":
		if m.view.filter == chatlist.FilterAll {
			m.view.filter = chatlist.FilterUnread
		} else {
			m.view.filter = chatlist.FilterAll
		}
		m.load(false, false)

	case "v":
		m.view.multiSelect = !m.view.multiSelect
		m.load(false, false)

	case "b":
		m.view.bannersVisible = !m.view.bannersVisible
		m.load(false, false)

	case "R":
		m.coord.RequestFullReload()
		m.load(true, false)
		m.setStatus("reloaded", false)

	case "p":
		m.togglePin()
	case "a":
		m.toggleArchive()
	case "r":
		m.markRead()

	case "y":
		if id, ok := m.selectedID(); ok {
			if err := clipboard.WriteAll(id); err != nil {
				m.setStatus(fmt.Sprintf("clipboard: %v", err), true)
			} else {
				m.setStatus("thread id copied", false)
			}
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.jumpTo(m.search.Value())
		m.search.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// refresh re-reads the store, narrows the change down to specific thread
// ids, and runs one load cycle. Called for the initial load and for every
// watcher event.
func (m *Model) refresh() {
	defer debug.LogEnterExit("ui.refresh")()

	var next []model.Thread
	err := m.store.Read(func(r chatlist.ThreadReader) error {
		threads, err := r.Threads()
		if err != nil {
			return err
		}
		next = threads
		return nil
	})
	if err != nil {
		m.setStatus(fmt.Sprintf("store read failed: %v", err), true)
		m.coord.RequestFullReload()
		return
	}

	changed := datasource.ChangedIDs(m.snapshot, next)
	present := make(map[string]struct{}, len(next))
	for _, t := range next {
		m.surface.setContent(t)
		present[t.ID] = struct{}{}
	}
	for _, t := range m.snapshot {
		if _, ok := present[t.ID]; !ok {
			m.surface.dropContent(t.ID)
		}
	}
	m.snapshot = next

	if len(changed) > 0 {
		m.coord.RequestUpdate(changed...)
	}
	m.load(false, false)
}

// load runs one coordinator cycle and refreshes derived view state.
func (m *Model) load(suppressAnimation, force bool) {
	m.lastLoad = m.coord.LoadIfNecessary(suppressAnimation, force)
	if m.lastLoad.Err != nil {
		m.setStatus(fmt.Sprintf("load failed: %v", m.lastLoad.Err), true)
	}
	m.clampCursor()
	m.syncViewport()
}

func (m *Model) togglePin() {
	t, ok := m.selectedThread()
	if !ok {
		return
	}
	if m.mut == nil {
		m.setStatus("source is read-only", true)
		return
	}
	if err := m.mut.SetPinned(t.ID, !t.Pinned); err != nil {
		m.setStatus(fmt.Sprintf("pin failed: %v", err), true)
		return
	}
	m.refresh()
}

func (m *Model) toggleArchive() {
	t, ok := m.selectedThread()
	if !ok {
		return
	}
	if m.mut == nil {
		m.setStatus("source is read-only", true)
		return
	}
	if err := m.mut.SetArchived(t.ID, !t.Archived); err != nil {
		m.setStatus(fmt.Sprintf("archive failed: %v", err), true)
		return
	}
	m.refresh()
}

func (m *Model) markRead() {
	t, ok := m.selectedThread()
	if !ok {
		return
	}
	if m.mut == nil {
		m.setStatus("source is read-only", true)
		return
	}
	if err := m.mut.MarkRead(t.ID); err != nil {
		m.setStatus(fmt.Sprintf("mark read failed: %v", err), true)
		return
	}
	m.refresh()
}

// jumpTo selects the first thread whose title contains the query.
func (m *Model) jumpTo(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return
	}
	for i, path := range m.rowPaths() {
		t, ok := m.surface.threadAt(path)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(t.Title), query) {
			m.setCursor(i)
			return
		}
	}
	m.setStatus(fmt.Sprintf("no thread matching %q", query), true)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

// rowPaths flattens the surface layout into cursor-addressable paths.
func (m *Model) rowPaths() []chatlist.RowPath {
	var paths []chatlist.RowPath
	for si, sec := range m.surface.sections {
		for ri := range sec.Rows {
			paths = append(paths, chatlist.RowPath{Section: si, Row: ri})
		}
	}
	return paths
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(i int) {
	paths := m.rowPaths()
	if len(paths) == 0 {
		m.cursor = 0
		m.view.lastSelectedID = ""
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(paths) {
		i = len(paths) - 1
	}
	m.cursor = i
	if id, ok := m.coordRowAt(paths[i]); ok {
		m.view.lastSelectedID = id
	}
	m.ensureCursorVisible()
	m.syncViewport()
}

func (m *Model) coordRowAt(path chatlist.RowPath) (string, bool) {
	if path.Section >= len(m.surface.sections) {
		return "", false
	}
	rows := m.surface.sections[path.Section].Rows
	if path.Row >= len(rows) {
		return "", false
	}
	return rows[path.Row], true
}

func (m *Model) clampCursor() {
	paths := m.rowPaths()
	if len(paths) == 0 {
		m.cursor = 0
		return
	}
	// Keep following the previously selected thread if it still exists.
	if m.view.lastSelectedID != "" {
		for i, p := range paths {
			if id, _ := m.coordRowAt(p); id == m.view.lastSelectedID {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(paths) {
		m.cursor = len(paths) - 1
	}
}

func (m *Model) selectedID() (string, bool) {
	paths := m.rowPaths()
	if m.cursor < 0 || m.cursor >= len(paths) {
		return "", false
	}
	return m.coordRowAt(paths[m.cursor])
}

func (m *Model) selectedThread() (model.Thread, bool) {
	id, ok := m.selectedID()
	if !ok {
		return model.Thread{}, false
	}
	t, ok := m.surface.content[id]
	return t, ok
}

// lineOf returns the absolute content line of a row path: one header line
// per section plus the rows above it.
func lineOf(sections []chatlist.Section, path chatlist.RowPath) int {
	line := 0
	for si := 0; si < path.Section && si < len(sections); si++ {
		line += 1 + len(sections[si].Rows)
	}
	return line + 1 + path.Row
}

func (m *Model) ensureCursorVisible() {
	paths := m.rowPaths()
	if m.cursor < 0 || m.cursor >= len(paths) {
		return
	}
	line := lineOf(m.surface.sections, paths[m.cursor])
	if line < m.vp.YOffset {
		m.vp.SetYOffset(line)
	} else if line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
	m.scroll.offset = m.vp.YOffset
}

// chromeLines counts the fixed lines around the viewport.
func (m *Model) chromeLines() int {
	chrome := 2 // header + status
	if m.view.bannersVisible {
		chrome++
	}
	if m.searching {
		chrome++
	}
	return chrome
}

// syncViewport re-renders the list into the viewport.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.vp.Height = max(m.height-m.chromeLines(), 1)
	m.scroll.height = m.vp.Height
	m.vp.SetContent(m.renderList())
	m.scroll.offset = m.vp.YOffset
}

func (m *Model) renderList() string {
	paths := m.rowPaths()
	selected := -1
	if m.cursor >= 0 && m.cursor < len(paths) {
		selected = m.cursor
	}

	var b strings.Builder
	flat := 0
	for _, sec := range m.surface.sections {
		title := fmt.Sprintf("%s (%d)", strings.ToUpper(sec.Kind.String()), len(sec.Rows))
		b.WriteString(m.theme.SectionHeader.Render(title))
		b.WriteByte('\n')
		for _, id := range sec.Rows {
			line := m.surface.line(id)
			prefix := "  "
			if m.view.multiSelect {
				prefix = "▢ "
			}
			if flat == selected {
				b.WriteString(m.theme.SelectedRow.Render(prefix + line))
			} else {
				b.WriteString(m.theme.Row.Render(prefix + line))
			}
			b.WriteByte('\n')
			flat++
		}
	}
	if flat == 0 {
		b.WriteString(m.theme.Muted.Render("  no threads"))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "loading threads..."
	}

	var b strings.Builder
	counts := fmt.Sprintf("%d threads", m.coord.TotalRows())
	b.WriteString(m.theme.Header.Render(fmt.Sprintf("threadline · %s · %s · %s", m.view.mode, m.view.filter, counts)))
	b.WriteByte('\n')

	if m.view.bannersVisible {
		b.WriteString(m.theme.Banner.Render(m.sourceDesc))
		b.WriteByte('\n')
	}

	b.WriteString(m.vp.View())
	b.WriteByte('\n')

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteByte('\n')
	}

	status := m.statusMsg
	if status == "" {
		status = fmt.Sprintf("last load: %s (%d ops) · j/k move · tab archive · u unread · p pin · a archive · / jump · q quit",
			m.lastLoad.Strategy, m.lastLoad.Structural)
	}
	if m.statusIsError {
		b.WriteString(m.theme.StatusError.Render(status))
	} else {
		b.WriteString(m.theme.Status.Render(status))
	}
	return b.String()
}

// renderThreadLine renders the cached plain row for a thread.
func renderThreadLine(t model.Thread, theme Theme, scroll *scrollState, badge string, relative bool) string {
	width := scroll.width
	if width <= 0 {
		width = 80
	}

	marker := "  "
	if t.HasUnread() {
		marker = theme.UnreadBadge.Render(badge) + " "
	} else if t.Muted {
		marker = theme.Muted.Render("∅") + " "
	}

	ts := t.LastActivity.Format("Jan 02 15:04")
	if relative {
		ts = FormatTimeRel(t.LastActivity)
	}
	ts = theme.Timestamp.Render(ts)

	// marker(2) + title + gap + preview, timestamp right-aligned.
	titleWidth := width / 3
	title := padRight(truncate(t.Title, titleWidth), titleWidth)
	previewWidth := width - titleWidth - 2 - 14
	if previewWidth < 8 {
		previewWidth = 8
	}
	preview := theme.Muted.Render(padRight(truncate(t.Preview, previewWidth), previewWidth))

	return fmt.Sprintf("%s%s %s %s", marker, title, preview, ts)
}
