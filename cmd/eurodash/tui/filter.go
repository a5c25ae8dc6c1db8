package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/eurodash/internal/disclosure"
	"github.com/ruminaider/eurodash/internal/facet"
)

const (
	filterButton = "[Filter]"
	clearAction  = "[clear]"
	// popupWidth is the content width of a filter popup.
	popupWidth = 40
	// popupOptionRows caps the option rows shown per group.
	popupOptionRows = 5
)

type rowKind int

const (
	rowTitle rowKind = iota
	rowSearch
	rowOption
	rowMoreAbove
	rowMoreBelow
	rowNoMatch
)

// popupRow is one content line of the popup. View renders rows and
// HandlePress maps a pressed line back to its row.
type popupRow struct {
	kind   rowKind
	group  int
	option facet.Option
	index  int // position within the group's visible options
	count  int // hidden options, for the more rows
}

// FilterView is one interactive filter: a "[Filter]" button followed by the
// compact selection summary, and a popup listing every group with its search
// input, clear action and options.
//
// Engine notifications are queued and turned into FilterChangedMsg commands
// by the method that caused them.
type FilterView struct {
	chartID string
	engine  *facet.Engine
	ctrl    *disclosure.Controller
	input   textinput.Model
	log     *slog.Logger

	group  int // focused group index
	cursor int // option cursor within the focused group
	offset int // scroll offset of the focused group

	x, y  int // screen position of the button
	width int // width available to the button line

	pending []facet.Selection
}

// NewFilterView creates a closed filter for one chart whose outside-press
// listener registers on doc.
func NewFilterView(chartID string, doc *disclosure.Document, policy facet.StalePolicy, logger *slog.Logger) *FilterView {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	f := &FilterView{chartID: chartID, log: logger, width: popupWidth}
	f.engine = facet.NewEngine(facet.Config{
		OnChange: func(sel facet.Selection) { f.pending = append(f.pending, sel) },
		Policy:   policy,
		Logger:   logger,
	})
	f.ctrl = disclosure.NewController(doc, f.region)
	f.ctrl.OnClose(func() { f.input.Blur() })

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 40
	ti.Width = popupWidth - 4
	f.input = ti
	return f
}

// Engine exposes the filter state engine.
func (f *FilterView) Engine() *facet.Engine {
	return f.engine
}

// IsOpen reports whether the popup is shown.
func (f *FilterView) IsOpen() bool {
	return f.ctrl.IsOpen()
}

// Listening reports whether the outside-press listener is attached.
func (f *FilterView) Listening() bool {
	return f.ctrl.Listening()
}

// SetPosition places the button line at column x, row y with width cells.
func (f *FilterView) SetPosition(x, y, width int) {
	f.x, f.y, f.width = x, y, width
}

// Observe passes a schema arrival to the engine.
func (f *FilterView) Observe(schema *facet.Schema) tea.Cmd {
	f.engine.Observe(schema)
	f.clamp()
	if f.IsOpen() {
		f.input.SetValue(f.engine.Search(f.currentKey()))
	}
	return f.flush()
}

// Open shows the popup and focuses the search input of the current group.
func (f *FilterView) Open() tea.Cmd {
	if f.IsOpen() {
		return nil
	}
	f.ctrl.Open()
	f.clamp()
	f.input.SetValue(f.engine.Search(f.currentKey()))
	return f.input.Focus()
}

// Close hides the popup.
func (f *FilterView) Close() {
	f.ctrl.Close()
}

// Toggle opens a closed popup and closes an open one.
func (f *FilterView) Toggle() tea.Cmd {
	if f.IsOpen() {
		f.Close()
		return nil
	}
	return f.Open()
}

// Release tears the filter down, detaching any document listener.
func (f *FilterView) Release() {
	f.ctrl.Release()
}

// HandleKey processes a key while the popup is open.
func (f *FilterView) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !f.IsOpen() {
		return nil
	}
	key := f.currentKey()

	switch msg.String() {
	case "esc":
		f.Close()
		return nil
	case "tab":
		f.focusGroup(f.group + 1)
	case "shift+tab":
		f.focusGroup(f.group - 1)
	case "up":
		f.moveCursor(-1)
	case "down":
		f.moveCursor(1)
	case "enter":
		opts := f.engine.VisibleOptions(key)
		if f.cursor >= 0 && f.cursor < len(opts) {
			f.engine.ToggleOption(key, opts[f.cursor].Value)
		}
	case "ctrl+x":
		f.engine.ClearGroup(key)
	case "ctrl+a":
		f.engine.ClearAll()
	default:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if key != "" && f.input.Value() != f.engine.Search(key) {
			f.engine.SetSearch(key, f.input.Value())
			f.cursor, f.offset = 0, 0
		}
		return tea.Batch(cmd, f.flush())
	}
	return f.flush()
}

// HandlePress processes a left-button press at screen cell (x, y). The
// document dispatch for outside presses happens before this is called.
func (f *FilterView) HandlePress(x, y int) tea.Cmd {
	if f.buttonRect().Contains(x, y) {
		return f.Toggle()
	}
	if !f.IsOpen() || !f.popupRect().Contains(x, y) {
		return nil
	}

	rows := f.rows()
	i := y - (f.y + 2) // button line, then the popup's top border
	if i < 0 || i >= len(rows) {
		return nil
	}
	row := rows[i]
	if row.group != f.group {
		f.focusGroup(row.group)
	}
	key := f.currentKey()

	switch row.kind {
	case rowTitle:
		clearStart := f.x + 2 + popupWidth - len(clearAction)
		if x >= clearStart {
			f.engine.ClearGroup(key)
		}
	case rowOption:
		f.cursor = row.index
		f.engine.ToggleOption(key, row.option.Value)
	case rowMoreAbove:
		f.moveCursor(-1)
	case rowMoreBelow:
		f.moveCursor(1)
	}
	return f.flush()
}

// Contains reports whether (x, y) hits the button or the open popup.
func (f *FilterView) Contains(x, y int) bool {
	return f.region().Contains(x, y)
}

// ButtonView renders the button line: "[Filter]" and the selection summary.
func (f *FilterView) ButtonView() string {
	btn := FilterButtonStyle.Render(filterButton)
	if f.IsOpen() {
		btn = FilterButtonOpenStyle.Render(filterButton)
	}

	summary := f.engine.OverallSummary()
	if f.engine.State() != facet.Ready {
		summary = "loading filters…"
	}
	room := f.width - len(filterButton) - 1
	if room <= 0 || summary == "" {
		return btn
	}
	return btn + " " + FilterSummaryStyle.Render(fit(summary, room))
}

// PopupView renders the open popup, or "" when closed. Its top-left corner
// belongs at PopupOrigin.
func (f *FilterView) PopupView() string {
	if !f.IsOpen() {
		return ""
	}

	rows := f.rows()
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, f.renderRow(r))
	}
	if len(lines) == 0 {
		lines = append(lines, DimStyle.Render(fit("no filters for this chart", popupWidth)))
	}
	return PopupStyle.Width(popupWidth + 2).Render(strings.Join(lines, "\n"))
}

// PopupOrigin returns the screen cell of the popup's top-left corner.
func (f *FilterView) PopupOrigin() (int, int) {
	return f.x, f.y + 1
}

func (f *FilterView) renderRow(r popupRow) string {
	key := f.keyAt(r.group)
	switch r.kind {
	case rowTitle:
		title := fmt.Sprintf(" %s: %s ", key, f.engine.Summary(key))
		style := GroupTitleStyle
		if r.group == f.group {
			style = ActiveGroupTitleStyle
		}
		return style.Render(fit(title, popupWidth-len(clearAction))) + ClearActionStyle.Render(clearAction)
	case rowSearch:
		if r.group == f.group {
			return fit(f.input.View(), popupWidth)
		}
		if text := f.engine.Search(key); text != "" {
			return fit("/ "+text, popupWidth)
		}
		return DimStyle.Render(fit("/ search", popupWidth))
	case rowOption:
		return f.renderOption(key, r)
	case rowMoreAbove:
		return DimStyle.Render(fit(fmt.Sprintf("  ↑ %d more", r.count), popupWidth))
	case rowMoreBelow:
		return DimStyle.Render(fit(fmt.Sprintf("  ↓ %d more", r.count), popupWidth))
	case rowNoMatch:
		return DimStyle.Render(fit("  (no matches)", popupWidth))
	}
	return ""
}

func (f *FilterView) renderOption(key string, r popupRow) string {
	def, _ := f.engine.Schema().Group(key)
	selected := f.engine.IsSelected(key, r.option.Value)

	box := "[ ]"
	if selected {
		box = "[x]"
	}
	if !def.Multiple {
		box = "( )"
		if selected {
			box = "(•)"
		}
	}

	line := fit(box+" "+r.option.Label, popupWidth-2)
	if selected {
		line = SelectedStyle.Render(line)
	} else {
		line = UnselectedStyle.Render(line)
	}
	if r.group == f.group && r.index == f.cursor {
		return CursorStyle.Render("> ") + line
	}
	return "  " + line
}

// rows lays out the popup content: per group a title, a search line and
// a window of the group's visible options.
func (f *FilterView) rows() []popupRow {
	var rows []popupRow
	for gi, key := range f.keys() {
		rows = append(rows, popupRow{kind: rowTitle, group: gi}, popupRow{kind: rowSearch, group: gi})

		opts := f.engine.VisibleOptions(key)
		if len(opts) == 0 {
			rows = append(rows, popupRow{kind: rowNoMatch, group: gi})
			continue
		}
		start := 0
		if gi == f.group {
			start = f.offset
		}
		end := min(start+popupOptionRows, len(opts))
		if start > 0 {
			rows = append(rows, popupRow{kind: rowMoreAbove, group: gi, count: start})
		}
		for i := start; i < end; i++ {
			rows = append(rows, popupRow{kind: rowOption, group: gi, option: opts[i], index: i})
		}
		if end < len(opts) {
			rows = append(rows, popupRow{kind: rowMoreBelow, group: gi, count: len(opts) - end})
		}
	}
	return rows
}

func (f *FilterView) keys() []string {
	return f.engine.Schema().Keys()
}

func (f *FilterView) keyAt(i int) string {
	keys := f.keys()
	if i < 0 || i >= len(keys) {
		return ""
	}
	return keys[i]
}

func (f *FilterView) currentKey() string {
	return f.keyAt(f.group)
}

func (f *FilterView) focusGroup(i int) {
	n := len(f.keys())
	if n == 0 {
		return
	}
	f.group = (i%n + n) % n
	f.cursor, f.offset = 0, 0
	f.input.SetValue(f.engine.Search(f.currentKey()))
	f.input.CursorEnd()
}

func (f *FilterView) moveCursor(delta int) {
	n := len(f.engine.VisibleOptions(f.currentKey()))
	if n == 0 {
		return
	}
	f.cursor = max(0, min(n-1, f.cursor+delta))
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+popupOptionRows {
		f.offset = f.cursor - popupOptionRows + 1
	}
}

// clamp keeps group and cursor inside the current schema after it changed.
func (f *FilterView) clamp() {
	n := len(f.keys())
	if f.group >= n {
		f.group = max(0, n-1)
		f.cursor, f.offset = 0, 0
	}
	f.moveCursor(0)
}

func (f *FilterView) buttonRect() disclosure.Rect {
	return disclosure.Rect{X: f.x, Y: f.y, Width: len(filterButton), Height: 1}
}

func (f *FilterView) popupRect() disclosure.Rect {
	if !f.IsOpen() {
		return disclosure.Rect{}
	}
	px, py := f.PopupOrigin()
	_, h := blockSize(f.PopupView())
	return disclosure.Rect{X: px, Y: py, Width: popupWidth + 4, Height: h}
}

func (f *FilterView) region() disclosure.Region {
	return disclosure.Union{f.buttonRect(), f.popupRect()}
}

// flush turns queued engine notifications into FilterChangedMsg commands.
func (f *FilterView) flush() tea.Cmd {
	if len(f.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(f.pending))
	for _, sel := range f.pending {
		msg := FilterChangedMsg{ChartID: f.chartID, Selection: sel}
		f.log.Debug("filter changed", "summary", f.engine.OverallSummary())
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	f.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}
