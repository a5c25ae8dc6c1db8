package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error)

func (f fetchFunc) Fetch(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
	return f(ctx, endpoint, sel)
}

func TestLoader_BeginCancelsPrevious(t *testing.T) {
	var l Loader
	first, s1 := l.Begin(context.Background())
	second, s2 := l.Begin(context.Background())

	assert.Greater(t, s2, s1)
	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
	assert.False(t, l.Current(s1))
	assert.True(t, l.Current(s2))
	assert.Equal(t, s2, l.Seq())

	l.Stop()
	assert.ErrorIs(t, second.Err(), context.Canceled)
}

func TestLoader_SupersededResultIsNotCurrent(t *testing.T) {
	var l Loader
	f := fetchFunc(func(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Response{Error: sel["geo"][0].String()}, nil
	})

	slow := l.Start(context.Background(), f, "/c", facet.Selection{"geo": facet.Values("BE")})
	fast := l.Start(context.Background(), f, "/c", facet.Selection{"geo": facet.Values("DE")})

	// The newer fetch completes first, the older one afterwards.
	r2 := fast()
	r1 := slow()

	assert.True(t, l.Current(r2.Seq))
	require.NoError(t, r2.Err)
	assert.Equal(t, "DE", r2.Response.Error)

	assert.False(t, l.Current(r1.Seq))
	assert.True(t, errors.Is(r1.Err, context.Canceled))
}

func TestLoader_StartCopiesSelection(t *testing.T) {
	var l Loader
	var seen []facet.Value
	f := fetchFunc(func(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
		seen = sel["geo"]
		return &Response{}, nil
	})

	sel := facet.Selection{"geo": facet.Values("BE")}
	run := l.Start(context.Background(), f, "/c", sel)
	sel["geo"][0] = facet.String("XX")
	run()
	assert.Equal(t, facet.Values("BE"), seen)
}

func TestFetchAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	f := fetchFunc(func(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		if endpoint == "/bad" {
			return nil, errors.New("boom")
		}
		return &Response{Error: endpoint}, nil
	})

	jobs := []Job{
		{ID: "a", Endpoint: "/a"},
		{ID: "b", Endpoint: "/bad"},
		{ID: "c", Endpoint: "/c"},
	}
	out, err := FetchAll(context.Background(), f, jobs, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "/a", out[0].Response.Error)
	assert.EqualError(t, out[1].Err, "boom")
	assert.Equal(t, "/c", out[2].Response.Error)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestFetchAll_ContextEnded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := fetchFunc(func(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
		return nil, ctx.Err()
	})
	out, err := FetchAll(ctx, f, []Job{{ID: "a", Endpoint: "/a"}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, out, 1)
}
