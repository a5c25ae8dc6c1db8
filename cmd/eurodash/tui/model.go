package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/disclosure"
)

// Options configures the dashboard model.
type Options struct {
	Config  config.Config
	Fetcher dataset.Fetcher
	Logger  *slog.Logger
}

// Model is the root dashboard model: a tab per page, chart panels stacked
// within the page, one shared pointer document for popup dismissal.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	doc    *disclosure.Document
	titles []string
	pages  [][]*ChartPanel

	tabBar    TabBar
	statusBar StatusBar
	help      HelpOverlay

	page  int
	focus int

	width, height int
	ready         bool
	quitting      bool
}

// NewModel builds the dashboard from cfg. Nothing is fetched until Init.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		log:    logger,
		doc:    disclosure.NewDocument(),
	}
	policy := opts.Config.Policy()
	n := 0
	for _, pg := range opts.Config.Pages {
		m.titles = append(m.titles, pg.Title)
		var panels []*ChartPanel
		for _, ch := range pg.Charts {
			p := NewChartPanel(ch, opts.Fetcher, m.doc, policy, logger)
			p.SetColor(barColors[n%len(barColors)])
			n++
			panels = append(panels, p)
		}
		m.pages = append(m.pages, panels)
	}
	m.tabBar = NewTabBar(m.titles)
	m.setFocus(0)
	return m
}

// Init satisfies tea.Model. It loads the first page.
func (m Model) Init() tea.Cmd {
	return m.loadPage()
}

// Document returns the shared pointer document.
func (m Model) Document() *disclosure.Document {
	return m.doc
}

// Panels returns the panels of the active page.
func (m Model) Panels() []*ChartPanel {
	if m.page < 0 || m.page >= len(m.pages) {
		return nil
	}
	return m.pages[m.page]
}

// Page returns the active page index.
func (m Model) Page() int {
	return m.page
}

// Focus returns the focused panel index within the active page.
func (m Model) Focus() int {
	return m.focus
}

// Close cancels in-flight fetches and detaches every popup listener.
func (m Model) Close() {
	m.cancel()
	for _, panels := range m.pages {
		for _, p := range panels {
			p.Stop()
		}
	}
}

// Update satisfies tea.Model. Routes messages to the correct child component.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.distributeSize()
		return m, nil

	case ChartLoadedMsg:
		p := m.panel(msg.ChartID)
		if p == nil {
			return m, nil
		}
		cmd := p.HandleLoaded(msg)
		m.syncStatusBar()
		return m, cmd

	case FilterChangedMsg:
		p := m.panel(msg.ChartID)
		if p == nil {
			return m, nil
		}
		m.log.Info("filter changed", "chart_id", msg.ChartID, "query", msg.Selection.Query().Encode())
		m.syncStatusBar()
		return m, p.Fetch(m.ctx, msg.Selection)

	case PageSwitchMsg:
		return m.switchPage(msg.Index)

	case tea.MouseMsg:
		if m.help.Active() {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input messages belong to the open filter.
	if f := m.openFilter(); f != nil {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.help.Active() {
		m.help = m.help.Update(msg)
		return m, nil
	}

	if p := m.focused(); p != nil && p.Filter().IsOpen() {
		cmd := p.Filter().HandleKey(msg)
		m.syncStatusBar()
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.help.Open()
		return m, nil
	case "tab", "down", "j":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up", "k":
		m.setFocus(m.focus - 1)
		return m, nil
	case "f", "enter":
		if p := m.focused(); p != nil {
			m.closeFilters(p.Filter())
			return m, p.Filter().Open()
		}
		return m, nil
	case "r":
		if p := m.focused(); p != nil {
			return m, p.Reload(m.ctx)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tabBar, cmd = m.tabBar.Update(msg)
	return m, cmd
}

// handleMouse dispatches a press to the document first, which closes any
// popup pressed outside of, then routes it to the component under it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	m.doc.Dispatch(disclosure.PointerEvent{X: msg.X, Y: msg.Y})

	if msg.Y == 0 {
		if i := m.tabBar.HitTest(msg.X); i >= 0 && i != m.page {
			return m.switchPage(i)
		}
		return m, nil
	}

	// An open popup lies above the panels, so it is tested first.
	panels := m.Panels()
	if f := m.openFilter(); f != nil && f.Contains(msg.X, msg.Y) {
		cmd := f.HandlePress(msg.X, msg.Y)
		m.syncStatusBar()
		return m, cmd
	}
	for i, p := range panels {
		if p.Filter().Contains(msg.X, msg.Y) {
			m.setFocus(i)
			cmd := p.Filter().HandlePress(msg.X, msg.Y)
			m.syncStatusBar()
			return m, cmd
		}
		if msg.Y >= p.y && msg.Y < p.y+p.height {
			m.setFocus(i)
			return m, nil
		}
	}
	return m, nil
}

func (m Model) switchPage(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.pages) {
		return m, nil
	}
	m.closeFilters(nil)
	m.page = i
	m.tabBar.SetActive(i)
	m.setFocus(0)
	m.distributeSize()
	return m, m.loadPage()
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	statusView := m.statusBar.View()
	contentHeight := m.height - 2

	var body []string
	for i, p := range m.Panels() {
		if i > 0 {
			body = append(body, SeparatorStyle.Render(strings.Repeat("─", m.width)))
		}
		body = append(body, p.View())
	}
	content := strings.Join(body, "\n")
	lines := strings.Split(content, "\n")
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight {
		lines = lines[:max(contentHeight, 0)]
	}

	frame := m.tabBar.View() + "\n" + strings.Join(lines, "\n") + "\n" + statusView

	if f := m.openFilter(); f != nil {
		x, y := f.PopupOrigin()
		frame = PlaceAt(frame, f.PopupView(), x, y, m.height)
	}
	if m.help.Active() {
		frame = Composite(frame, m.help.View(), m.width, m.height)
	}
	return frame
}

// distributeSize stacks the active page's panels between the tab bar and
// the status bar, one separator row between neighbours.
func (m *Model) distributeSize() {
	m.tabBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	panels := m.Panels()
	if len(panels) == 0 {
		return
	}
	avail := m.height - 2 - (len(panels) - 1)
	each := max(avail/len(panels), 3)
	y := 1
	for _, p := range panels {
		p.SetBounds(0, y, m.width, each)
		y += each + 1
	}
	m.syncStatusBar()
}

func (m *Model) setFocus(i int) {
	panels := m.Panels()
	if len(panels) == 0 {
		m.focus = 0
		return
	}
	m.focus = (i%len(panels) + len(panels)) % len(panels)
	for j, p := range panels {
		p.SetFocused(j == m.focus)
	}
	m.syncStatusBar()
}

func (m *Model) syncStatusBar() {
	summary, title := "", ""
	if p := m.focused(); p != nil {
		title = p.Title()
		summary = p.Filter().Engine().OverallSummary()
	}
	m.statusBar.Update(m.page, len(m.pages), title, summary)
}

func (m Model) focused() *ChartPanel {
	panels := m.Panels()
	if m.focus < 0 || m.focus >= len(panels) {
		return nil
	}
	return panels[m.focus]
}

func (m Model) panel(id string) *ChartPanel {
	for _, panels := range m.pages {
		for _, p := range panels {
			if p.ID() == id {
				return p
			}
		}
	}
	return nil
}

// openFilter returns the open filter on the active page. At most one is
// open at a time.
func (m Model) openFilter() *FilterView {
	for _, p := range m.Panels() {
		if p.Filter().IsOpen() {
			return p.Filter()
		}
	}
	return nil
}

// closeFilters closes every open filter except keep.
func (m Model) closeFilters(keep *FilterView) {
	for _, panels := range m.pages {
		for _, p := range panels {
			if p.Filter() != keep {
				p.Filter().Close()
			}
		}
	}
}

// loadPage fetches panels of the active page that have never loaded.
func (m Model) loadPage() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.Panels() {
		if !p.Started() {
			cmds = append(cmds, p.Fetch(m.ctx, nil))
		}
	}
	return tea.Batch(cmds...)
}
