package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/facet"
)

func sendKey(m tea.Model, key string) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func sendSpecialKey(m tea.Model, key tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// sampleSchema offers a multi-select geo group and a single-select time
// group defaulting to 2020.
func sampleSchema() *facet.Schema {
	def := facet.Int(2020)
	return facet.NewSchema().
		Set("geo", facet.GroupDefinition{
			Values:   facet.Values("BE", "DE", "FR"),
			Labels:   []string{"Belgium", "Germany", "France"},
			Multiple: true,
		}).
		Set("time", facet.GroupDefinition{
			Values:  []facet.Value{facet.Int(2019), facet.Int(2020)},
			Default: &def,
		})
}

type fetchCall struct {
	endpoint string
	query    string
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	// respond overrides the default payload when set.
	respond func(endpoint string, sel facet.Selection) (*dataset.Response, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, endpoint string, sel facet.Selection) (*dataset.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{endpoint: endpoint, query: sel.Query().Encode()})
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(endpoint, sel)
	}
	return &dataset.Response{
		ChartData:   []byte(`{"categories": ["Theft", "Fraud", "Robbery"], "values": [50, 30, 20]}`),
		Interactive: sampleSchema(),
	}, nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

// runCmd executes cmd, giving up on commands that block, such as cursor
// blink ticks.
func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

// drain runs cmd and feeds the dashboard messages it produces back into m
// until no more are produced.
func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ChartLoadedMsg, FilterChangedMsg, PageSwitchMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

// collect runs cmd and returns the FilterChangedMsgs it produces.
func collect(cmd tea.Cmd) []FilterChangedMsg {
	var out []FilterChangedMsg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case FilterChangedMsg:
			out = append(out, msg)
		}
	}
	return out
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
