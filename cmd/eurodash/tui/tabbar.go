package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// TabBar renders the page tabs along the top of the dashboard.
type TabBar struct {
	tabs   []string
	active int
	width  int
}

// NewTabBar creates a tab bar with one tab per page title.
func NewTabBar(titles []string) TabBar {
	return TabBar{tabs: titles}
}

// SetWidth sets the available width for rendering.
func (t *TabBar) SetWidth(w int) {
	t.width = w
}

// Active returns the index of the selected tab.
func (t TabBar) Active() int {
	return t.active
}

// SetActive selects tab i. Out-of-range indexes are ignored.
func (t *TabBar) SetActive(i int) {
	if i >= 0 && i < len(t.tabs) {
		t.active = i
	}
}

// CycleNext advances to the next tab, wrapping around.
func (t *TabBar) CycleNext() {
	if len(t.tabs) > 0 {
		t.active = (t.active + 1) % len(t.tabs)
	}
}

// CyclePrev moves to the previous tab, wrapping around.
func (t *TabBar) CyclePrev() {
	if len(t.tabs) > 0 {
		t.active = (t.active - 1 + len(t.tabs)) % len(t.tabs)
	}
}

// Update handles page navigation keys.
func (t TabBar) Update(msg tea.Msg) (TabBar, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	prev := t.active
	switch s := key.String(); s {
	case "right", "l", "]":
		t.CycleNext()
	case "left", "h", "[":
		t.CyclePrev()
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			t.SetActive(int(s[0] - '1'))
		}
	}
	if t.active == prev {
		return t, nil
	}
	idx := t.active
	return t, func() tea.Msg { return PageSwitchMsg{Index: idx} }
}

// HitTest returns the tab under column x, or -1.
func (t TabBar) HitTest(x int) int {
	pos := 0
	for i := range t.tabs {
		w := ansi.StringWidth(t.renderTab(i))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

func (t TabBar) renderTab(i int) string {
	label := fmt.Sprintf("%d %s", i+1, t.tabs[i])
	if i == t.active {
		return ActiveTabStyle.Render(label)
	}
	return InactiveTabStyle.Render(label)
}

// View renders the tab bar as a single line.
func (t TabBar) View() string {
	row := ""
	for i := range t.tabs {
		if i > 0 {
			row += TabBarStyle.Render(" ")
		}
		row += t.renderTab(i)
	}
	return TabBarStyle.Width(t.width).Render(ansi.Truncate(row, t.width, ""))
}
