package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var helpBindings = []struct{ keys, desc string }{
	{"←/→  1-9", "switch page"},
	{"tab / shift+tab", "focus next / previous chart"},
	{"f, enter", "open the focused chart's filter"},
	{"r", "reload the focused chart"},
	{"q, ctrl+c", "quit"},
	{"", ""},
	{"Filter open", ""},
	{"tab / shift+tab", "next / previous group"},
	{"↑/↓  enter", "move, toggle option"},
	{"type", "search the group's options"},
	{"ctrl+x / ctrl+a", "clear group / clear all"},
	{"esc or click outside", "close"},
}

// HelpOverlay is a modal listing key bindings.
type HelpOverlay struct {
	active bool
}

// Active returns whether the overlay is shown.
func (h HelpOverlay) Active() bool {
	return h.active
}

// Open shows the overlay.
func (h *HelpOverlay) Open() {
	h.active = true
}

// Update closes the overlay on esc, ?, q or enter.
func (h HelpOverlay) Update(msg tea.Msg) HelpOverlay {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q", "enter":
			h.active = false
		}
	}
	return h
}

// View renders the overlay box; callers composite it over the frame.
func (h HelpOverlay) View() string {
	if !h.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, kb := range helpBindings {
		switch {
		case kb.keys == "":
			b.WriteString("\n")
		case kb.desc == "":
			b.WriteString(OverlayTitleStyle.Render(kb.keys) + "\n")
		default:
			b.WriteString(StatusBarKeyStyle.UnsetBackground().Render(fit(kb.keys, 22)) + kb.desc + "\n")
		}
	}
	b.WriteString("\n" + DimStyle.Render("esc: close"))
	return OverlayStyle.Render(b.String())
}
