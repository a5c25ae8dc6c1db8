package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/disclosure"
	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChart = config.Chart{ID: "q1c3", Title: "Frequency of crimes", Endpoint: "/api/question1/chart3", Sort: "desc"}

func fetchNow(t *testing.T, p *ChartPanel, sel facet.Selection) ChartLoadedMsg {
	t.Helper()
	cmd := p.Fetch(context.Background(), sel)
	msg, ok := cmd().(ChartLoadedMsg)
	require.True(t, ok)
	return msg
}

func TestChartPanel_LoadAppliesSeriesAndSchema(t *testing.T) {
	ff := &fakeFetcher{}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.SetBounds(0, 1, 60, 8)

	msg := fetchNow(t, p, nil)
	assert.True(t, p.Loading())
	assert.Nil(t, p.HandleLoaded(msg))

	assert.False(t, p.Loading())
	assert.Empty(t, p.Err())
	assert.Equal(t, dataset.Series{
		{Label: "Theft", Value: 50},
		{Label: "Fraud", Value: 30},
		{Label: "Robbery", Value: 20},
	}, p.Series())
	assert.Equal(t, facet.Ready, p.Filter().Engine().State())
	assert.Equal(t, []fetchCall{{endpoint: "/api/question1/chart3"}}, ff.Calls())

	view := p.View()
	assert.Len(t, strings.Split(view, "\n"), 8)
	assert.Contains(t, view, "Frequency of crimes")
	assert.Contains(t, view, "[Filter] geo: * | time: 2020")
	assert.Contains(t, view, "Theft")
	assert.Contains(t, view, "█")
}

func TestChartPanel_SupersededResultDropped(t *testing.T) {
	ff := &fakeFetcher{}
	ff.respond = func(endpoint string, sel facet.Selection) (*dataset.Response, error) {
		label := "all"
		if len(sel["geo"]) > 0 {
			label = sel["geo"][0].String()
		}
		return &dataset.Response{
			ChartData:   []byte(`{"categories": ["` + label + `"], "values": [1]}`),
			Interactive: sampleSchema(),
		}, nil
	}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)

	first := p.Fetch(context.Background(), nil)
	second := p.Fetch(context.Background(), facet.Selection{"geo": facet.Values("DE")})

	newer := second().(ChartLoadedMsg)
	older := first().(ChartLoadedMsg)

	p.HandleLoaded(newer)
	p.HandleLoaded(older)
	assert.Equal(t, dataset.Series{{Label: "DE", Value: 1}}, p.Series())
	assert.False(t, p.Loading())
	assert.True(t, errors.Is(older.Result.Err, context.Canceled), "older request was canceled")
}

func TestChartPanel_ApplicationError(t *testing.T) {
	ff := &fakeFetcher{respond: func(string, facet.Selection) (*dataset.Response, error) {
		return &dataset.Response{Interactive: sampleSchema(), Error: "Failed to build chart data"}, nil
	}}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.HandleLoaded(fetchNow(t, p, nil))

	assert.Equal(t, "Failed to build chart data", p.Err())
	assert.Empty(t, p.Series())
	assert.Equal(t, facet.Ready, p.Filter().Engine().State(), "the schema still initializes the filter")
	assert.Contains(t, p.View(), "Failed to build chart data")
}

func TestChartPanel_ErrorWithoutSchemaKeepsFilters(t *testing.T) {
	failing := false
	ff := &fakeFetcher{respond: func(string, facet.Selection) (*dataset.Response, error) {
		if failing {
			return &dataset.Response{Error: "Failed to build chart data"}, nil
		}
		return &dataset.Response{
			ChartData:   []byte(`{"categories": ["Theft"], "values": [5]}`),
			Interactive: sampleSchema(),
		}, nil
	}}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.HandleLoaded(fetchNow(t, p, nil))

	failing = true
	engine := p.Filter().Engine()
	engine.ToggleOption("geo", facet.String("DE"))
	p.Filter().pending = nil
	assert.Nil(t, p.HandleLoaded(fetchNow(t, p, engine.Selection())))

	assert.Equal(t, "Failed to build chart data", p.Err())
	assert.Equal(t, []string{"geo", "time"}, engine.Schema().Keys())
	assert.Equal(t, "geo: Germany | time: 2020", engine.OverallSummary())

	assert.True(t, engine.ToggleOption("geo", facet.String("DE")), "the failing value can be deselected")
	assert.Empty(t, engine.Selected("geo"))

	p.Filter().Open()
	assert.Contains(t, p.Filter().PopupView(), "Germany")
}

func TestChartPanel_TransportError(t *testing.T) {
	ff := &fakeFetcher{respond: func(string, facet.Selection) (*dataset.Response, error) {
		return nil, &dataset.StatusError{URL: "http://x/api", StatusCode: 500}
	}}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.HandleLoaded(fetchNow(t, p, nil))

	assert.Contains(t, p.Err(), "500")
	assert.Equal(t, facet.Uninitialized, p.Filter().Engine().State())
}

func TestChartPanel_UnreadableChartData(t *testing.T) {
	ff := &fakeFetcher{respond: func(string, facet.Selection) (*dataset.Response, error) {
		return &dataset.Response{ChartData: []byte(`[1, 2]`), Interactive: sampleSchema()}, nil
	}}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.HandleLoaded(fetchNow(t, p, nil))
	assert.Contains(t, p.Err(), "unsupported")
}

func TestChartPanel_ReloadUsesCurrentSelection(t *testing.T) {
	ff := &fakeFetcher{}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.HandleLoaded(fetchNow(t, p, nil))

	p.Filter().Engine().ToggleOption("geo", facet.String("FR"))
	p.Filter().pending = nil
	p.HandleLoaded(p.Reload(context.Background())().(ChartLoadedMsg))

	calls := ff.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "geo=FR&time=2020", calls[1].query)
}

func TestChartPanel_BarsTruncate(t *testing.T) {
	ff := &fakeFetcher{respond: func(string, facet.Selection) (*dataset.Response, error) {
		return &dataset.Response{
			ChartData: []byte(`{"labels": ["a", "b", "c", "d", "e"], "values": [1, 2, 3, 4, 5.25]}`),
		}, nil
	}}
	p := NewChartPanel(testChart, ff, disclosure.NewDocument(), facet.RetainStale, nil)
	p.SetBounds(0, 0, 40, 5)
	p.HandleLoaded(fetchNow(t, p, nil))

	lines := strings.Split(p.View(), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "5.25", "sorted descending")
	assert.Contains(t, lines[4], "… 3 more")
}

func TestChartPanel_StopReleasesFilter(t *testing.T) {
	doc := disclosure.NewDocument()
	p := NewChartPanel(testChart, &fakeFetcher{}, doc, facet.RetainStale, nil)
	p.Filter().Open()
	require.Equal(t, 1, doc.ListenerCount())
	p.Stop()
	assert.Equal(t, 0, doc.ListenerCount())
}
