package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}
	w, h := blockSize(overlay)
	x := (totalWidth - w) / 2
	y := (totalHeight - h) / 2
	return PlaceAt(background, overlay, max(x, 0), max(y, 0), totalHeight)
}

// PlaceAt draws block over background with its top-left corner at column x,
// row y. Background text left and right of the block is kept, styled
// sequences included. The result has at least height rows.
func PlaceAt(background, block string, x, y, height int) string {
	if block == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}

		bg := bgLines[row]
		left := ansi.Truncate(bg, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(bg) {
			right = ansi.TruncateLeft(bg, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}

// blockSize returns the display width and line count of a rendered block.
func blockSize(s string) (int, int) {
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w, len(lines)
}

// fit truncates s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
