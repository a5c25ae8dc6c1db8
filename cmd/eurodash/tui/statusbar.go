package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with the focused chart and shortcuts.
type StatusBar struct {
	page    int
	pages   int
	chart   string
	summary string
	width   int
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the focused chart context.
func (s *StatusBar) Update(page, pages int, chart, summary string) {
	s.page, s.pages = page, pages
	s.chart = chart
	s.summary = summary
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("page %d/%d", s.page+1, s.pages)
	if s.chart != "" {
		left += " · " + s.chart
	}
	if s.summary != "" {
		left += " · " + s.summary
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("f") + ": filter",
		StatusBarKeyStyle.Render("r") + ": reload",
		StatusBarKeyStyle.Render("?") + ": help",
		StatusBarKeyStyle.Render("q") + ": quit",
	}
	right := strings.Join(shortcuts, " · ")

	available := s.width - 2 // StatusBarStyle padding
	rightWidth := ansi.StringWidth(right)
	left = ansi.Truncate(left, max(available-rightWidth-1, 0), "…")
	gap := max(available-ansi.StringWidth(left)-rightWidth, 1)

	return StatusBarStyle.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
