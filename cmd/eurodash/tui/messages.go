package tui

import (
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/facet"
)

// FilterChangedMsg carries a filter engine notification: the full selection
// of the chart's filter after a user action.
type FilterChangedMsg struct {
	ChartID   string
	Selection facet.Selection
}

// ChartLoadedMsg delivers a finished fetch for one chart.
type ChartLoadedMsg struct {
	ChartID string
	Result  dataset.Result
}

// PageSwitchMsg is sent when the active page changes.
type PageSwitchMsg struct{ Index int }
