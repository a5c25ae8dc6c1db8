package commands

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/facet"
)

// WriteTable prints each result as a titled two-column table.
func WriteTable(w io.Writer, results []ChartResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", r.Chart.Title, r.Chart.ID)
		if r.Err != nil {
			fmt.Fprintf(w, "  ! %v\n", r.Err)
			continue
		}
		if len(r.Series) == 0 {
			fmt.Fprintln(w, "  no data")
			continue
		}

		labelW, valueW := 0, 0
		for _, p := range r.Series {
			labelW = max(labelW, len([]rune(p.Label)))
			valueW = max(valueW, len(dataset.FormatValue(p.Value)))
		}
		for _, p := range r.Series {
			pad := strings.Repeat(" ", labelW-len([]rune(p.Label)))
			fmt.Fprintf(w, "  %s%s  %*s\n", p.Label, pad, valueW, dataset.FormatValue(p.Value))
		}
	}
	return nil
}

type jsonPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type jsonChart struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Points  []jsonPoint   `json:"points"`
	Filters *facet.Schema `json:"filters,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// WriteJSON prints results as an indented JSON array.
func WriteJSON(w io.Writer, results []ChartResult) error {
	out := make([]jsonChart, len(results))
	for i, r := range results {
		c := jsonChart{ID: r.Chart.ID, Title: r.Chart.Title, Points: []jsonPoint{}, Filters: r.Schema}
		if r.Err != nil {
			c.Error = r.Err.Error()
		}
		for _, p := range r.Series {
			c.Points = append(c.Points, jsonPoint{Label: p.Label, Value: p.Value})
		}
		out[i] = c
	}
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
