package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/facet"
)

// FetchOptions selects the charts of a one-shot fetch.
type FetchOptions struct {
	// IDs names the charts to fetch. Empty means every chart.
	IDs []string
	// Filters are "key=value" pairs; repeating a key selects several values.
	Filters     []string
	Concurrency int
}

// ChartResult is the outcome of fetching one chart.
type ChartResult struct {
	Chart  config.Chart
	Series dataset.Series
	Schema *facet.Schema
	Err    error
}

// ParseFilters turns "key=value" pairs into a selection. Values stay
// strings, which encode to the same query text as their number twins.
func ParseFilters(pairs []string) (facet.Selection, error) {
	q := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("filter %q: expected key=value", p)
		}
		q.Add(key, strings.TrimSpace(value))
	}
	return facet.ParseQuery(q), nil
}

// Charts returns the charts named by ids, or every chart when ids is empty.
func Charts(cfg config.Config, ids []string) ([]config.Chart, error) {
	if len(ids) == 0 {
		return cfg.Charts(), nil
	}
	out := make([]config.Chart, 0, len(ids))
	for _, id := range ids {
		ch, err := cfg.Chart(id)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// Fetch fetches the selected charts concurrently. Per-chart failures are
// reported in ChartResult.Err; the returned error covers bad options and
// cancellation.
func Fetch(ctx context.Context, cfg config.Config, f dataset.Fetcher, opts FetchOptions) ([]ChartResult, error) {
	charts, err := Charts(cfg, opts.IDs)
	if err != nil {
		return nil, err
	}
	sel, err := ParseFilters(opts.Filters)
	if err != nil {
		return nil, err
	}

	jobs := make([]dataset.Job, len(charts))
	for i, ch := range charts {
		jobs[i] = dataset.Job{ID: ch.ID, Endpoint: ch.Endpoint, Selection: sel}
	}
	outcomes, err := dataset.FetchAll(ctx, f, jobs, opts.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("fetching charts: %w", err)
	}

	results := make([]ChartResult, len(charts))
	for i, o := range outcomes {
		results[i] = toResult(charts[i], o.Response, o.Err)
	}
	return results, nil
}

// FetchOne fetches a single chart under sel.
func FetchOne(ctx context.Context, f dataset.Fetcher, ch config.Chart, sel facet.Selection) ChartResult {
	resp, err := f.Fetch(ctx, ch.Endpoint, sel)
	return toResult(ch, resp, err)
}

func toResult(ch config.Chart, resp *dataset.Response, err error) ChartResult {
	r := ChartResult{Chart: ch, Err: err}
	if err != nil {
		return r
	}
	r.Schema = resp.Interactive
	if resp.Error != "" {
		r.Err = errors.New(resp.Error)
		return r
	}
	r.Series, r.Err = dataset.ParseSeries(resp.ChartData, dataset.Order(ch.Sort))
	return r
}
