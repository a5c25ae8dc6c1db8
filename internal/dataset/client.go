package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/ruminaider/eurodash/internal/facet"
	"golang.org/x/time/rate"
)

// ErrNoBaseURL is returned by NewClient when no data source URL is set.
var ErrNoBaseURL = errors.New("dataset: no base URL configured")

// maxBody caps how much of a response body is read.
const maxBody = 16 << 20

// Response is one chart payload.
type Response struct {
	ChartData   gojson.RawMessage `json:"chart_data"`
	Interactive *facet.Schema     `json:"interactive_data"`
	// Error is a message reported by the data source itself. The transport
	// succeeded; the chart has nothing to draw.
	Error string `json:"error"`
}

// StatusError reports a non-2xx reply.
type StatusError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned %d", e.URL, e.StatusCode)
}

// Fetcher retrieves one chart payload for a selection.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second. Zero disables limiting.
	RateLimit  float64
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches chart payloads from one data source.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrNoBaseURL
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{base: base, http: hc, limiter: limiter, log: logger}, nil
}

// BaseURL returns the normalized data source URL.
func (c *Client) BaseURL() string {
	return c.base
}

// URL returns the request URL for endpoint under sel.
func (c *Client) URL(endpoint string, sel facet.Selection) string {
	u := c.base + endpoint
	if q := sel.Query().Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Fetch requests endpoint with sel encoded as repeated query parameters.
func (c *Client) Fetch(ctx context.Context, endpoint string, sel facet.Selection) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	url := c.URL(endpoint, sel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	c.log.Debug("chart fetched",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{URL: url, StatusCode: resp.StatusCode}
		var payload Response
		if gojson.Unmarshal(body, &payload) == nil {
			se.Message = payload.Error
		}
		return nil, se
	}

	var out Response
	if err := gojson.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return &out, nil
}
