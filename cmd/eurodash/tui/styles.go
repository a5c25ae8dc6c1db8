package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// barColors cycles across chart panels so neighbouring charts differ.
var barColors = []lipgloss.Color{
	lipgloss.Color(flavor.Blue().Hex),
	lipgloss.Color(flavor.Peach().Hex),
	lipgloss.Color(flavor.Green().Hex),
	lipgloss.Color(flavor.Mauve().Hex),
	lipgloss.Color(flavor.Teal().Hex),
}

// Tab bar styles.
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface0).
				Padding(0, 1)

	// TabBarStyle is the background strip for the tab bar row.
	TabBarStyle = lipgloss.NewStyle().
			Background(colorSurface0)
)

// Chart panel styles.
var (
	// PanelTitleStyle is the chart title of an unfocused panel.
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Bold(true)

	// FocusedTitleStyle is the chart title of the focused panel.
	FocusedTitleStyle = lipgloss.NewStyle().
				Foreground(colorMauve).
				Bold(true)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(colorText)

	BarValueStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(colorSurface1)
)

// Filter styles.
var (
	// FilterButtonStyle is the closed "[Filter]" button.
	FilterButtonStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// FilterButtonOpenStyle is the button while its popup is shown.
	FilterButtonOpenStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Bold(true)

	// FilterSummaryStyle renders the compact selection summary.
	FilterSummaryStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0).
				Italic(true)

	// PopupStyle is the border and background of a filter popup.
	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(0, 1)

	GroupTitleStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	ActiveGroupTitleStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorMauve).
				Bold(true)

	ClearActionStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	CursorStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)
)

// Status bar styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Overlay styles.
var (
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)
)
