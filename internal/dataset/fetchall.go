package dataset

import (
	"context"

	"github.com/ruminaider/eurodash/internal/facet"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds FetchAll when no limit is given.
const DefaultConcurrency = 4

// Job names one chart fetch.
type Job struct {
	ID        string
	Endpoint  string
	Selection facet.Selection
}

// Outcome pairs a Job id with its result.
type Outcome struct {
	ID       string
	Response *Response
	Err      error
}

// FetchAll fetches every job with at most limit requests in flight.
// Outcomes are returned in job order. A failing chart does not stop the
// others; the returned error is non-nil only when ctx ends first.
func FetchAll(ctx context.Context, f Fetcher, jobs []Job, limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	out := make([]Outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			resp, err := f.Fetch(ctx, job.Endpoint, job.Selection)
			out[i] = Outcome{ID: job.ID, Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out, ctx.Err()
}
