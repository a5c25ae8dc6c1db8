package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/disclosure"
	"github.com/ruminaider/eurodash/internal/facet"
)

// ChartPanel shows one chart: its title, its filter and a horizontal bar
// chart of the latest payload.
type ChartPanel struct {
	chart   config.Chart
	filter  *FilterView
	fetcher dataset.Fetcher
	loader  dataset.Loader
	log     *slog.Logger
	color   lipgloss.Color

	series  dataset.Series
	errText string
	loading bool
	started bool
	focused bool

	x, y, width, height int
}

// NewChartPanel creates a panel for ch. Its filter registers on doc.
func NewChartPanel(ch config.Chart, f dataset.Fetcher, doc *disclosure.Document, policy facet.StalePolicy, logger *slog.Logger) *ChartPanel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("chart_id", ch.ID)
	return &ChartPanel{
		chart:   ch,
		filter:  NewFilterView(ch.ID, doc, policy, logger),
		fetcher: f,
		log:     logger,
		color:   barColors[0],
		width:   60,
		height:  8,
	}
}

// ID returns the chart id.
func (p *ChartPanel) ID() string {
	return p.chart.ID
}

// Title returns the chart title.
func (p *ChartPanel) Title() string {
	return p.chart.Title
}

// Filter returns the panel's filter.
func (p *ChartPanel) Filter() *FilterView {
	return p.filter
}

// Series returns the currently drawn series.
func (p *ChartPanel) Series() dataset.Series {
	return p.series
}

// Err returns the message shown instead of the chart, if any.
func (p *ChartPanel) Err() string {
	return p.errText
}

// Loading reports whether a fetch is in flight.
func (p *ChartPanel) Loading() bool {
	return p.loading
}

// Started reports whether the panel has fetched at least once.
func (p *ChartPanel) Started() bool {
	return p.started
}

// SetFocused marks the panel as the keyboard target.
func (p *ChartPanel) SetFocused(v bool) {
	p.focused = v
}

// SetColor sets the bar color.
func (p *ChartPanel) SetColor(c lipgloss.Color) {
	p.color = c
}

// SetBounds places the panel. The filter button sits on the second row.
func (p *ChartPanel) SetBounds(x, y, width, height int) {
	p.x, p.y, p.width, p.height = x, y, width, height
	p.filter.SetPosition(x, y+1, width)
}

// Fetch starts a fetch for sel, superseding any in flight.
func (p *ChartPanel) Fetch(ctx context.Context, sel facet.Selection) tea.Cmd {
	p.loading = true
	p.started = true
	run := p.loader.Start(ctx, p.fetcher, p.chart.Endpoint, sel)
	id := p.chart.ID
	p.log.Debug("fetch started", "endpoint", p.chart.Endpoint, "query", sel.Query().Encode())
	return func() tea.Msg {
		return ChartLoadedMsg{ChartID: id, Result: run()}
	}
}

// Reload refetches with the current selection.
func (p *ChartPanel) Reload(ctx context.Context) tea.Cmd {
	return p.Fetch(ctx, p.filter.Engine().Selection())
}

// HandleLoaded applies a finished fetch. Results of superseded fetches are
// dropped. The returned command carries any notification caused by the new
// schema.
func (p *ChartPanel) HandleLoaded(msg ChartLoadedMsg) tea.Cmd {
	r := msg.Result
	if !p.loader.Current(r.Seq) {
		p.log.Debug("superseded result dropped", "seq", r.Seq)
		return nil
	}
	p.loading = false

	if r.Err != nil {
		if errors.Is(r.Err, context.Canceled) {
			return nil
		}
		p.log.Warn("fetch failed", "error", r.Err)
		p.errText = r.Err.Error()
		p.series = nil
		return nil
	}

	resp := r.Response
	p.errText = resp.Error
	p.series = nil
	if resp.Error == "" {
		s, err := dataset.ParseSeries(resp.ChartData, dataset.Order(p.chart.Sort))
		if err != nil {
			p.log.Warn("unreadable chart data", "error", err)
			p.errText = err.Error()
		}
		p.series = s
	}
	// A payload without filters keeps the current ones, so the selection
	// that produced an error can still be changed.
	if resp.Interactive == nil {
		return nil
	}
	return p.filter.Observe(resp.Interactive)
}

// Stop cancels the in-flight fetch and releases the filter.
func (p *ChartPanel) Stop() {
	p.loader.Stop()
	p.filter.Release()
}

// View renders exactly height rows of width cells.
func (p *ChartPanel) View() string {
	titleStyle := PanelTitleStyle
	if p.focused {
		titleStyle = FocusedTitleStyle
	}
	title := titleStyle.Render(ansi.Truncate(p.chart.Title, p.width-12, "…"))
	if p.loading {
		title += " " + DimStyle.Render("loading…")
	}

	lines := []string{title, p.filter.ButtonView()}
	body := p.height - len(lines)
	switch {
	case p.errText != "":
		lines = append(lines, ErrorStyle.Render(fit("! "+p.errText, p.width)))
	case len(p.series) == 0 && !p.loading && p.started:
		lines = append(lines, DimStyle.Render("no data"))
	default:
		lines = append(lines, p.bars(body)...)
	}

	for len(lines) < p.height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:max(p.height, 0)], "\n")
}

// bars renders up to rows bar lines, the last one noting hidden points.
func (p *ChartPanel) bars(rows int) []string {
	if rows <= 0 || len(p.series) == 0 {
		return nil
	}
	points := p.series
	hidden := 0
	if len(points) > rows {
		hidden = len(points) - (rows - 1)
		points = points[:rows-1]
	}

	labelW := 0
	valueW := 0
	for _, pt := range points {
		labelW = max(labelW, ansi.StringWidth(pt.Label))
		valueW = max(valueW, len(dataset.FormatValue(pt.Value)))
	}
	labelW = min(labelW, max(p.width/3, 6))
	barW := max(p.width-labelW-valueW-3, 1)
	peak := p.series.Max()

	barStyle := lipgloss.NewStyle().Foreground(p.color)
	out := make([]string, 0, rows)
	for _, pt := range points {
		n := 0
		if peak > 0 && pt.Value > 0 {
			n = int(math.Round(pt.Value / peak * float64(barW)))
		}
		bar := strings.Repeat("█", n) + strings.Repeat(" ", barW-n)
		out = append(out, BarLabelStyle.Render(fit(pt.Label, labelW))+" "+
			barStyle.Render(bar)+" "+
			BarValueStyle.Render(fmt.Sprintf("%*s", valueW, dataset.FormatValue(pt.Value))))
	}
	if hidden > 0 {
		out = append(out, DimStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}
	return out
}
