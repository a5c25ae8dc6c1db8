package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		input := []byte(`base_url: http://localhost:8080
timeout: 5s
rate_limit: 2.5
stale_policy: prune
log_level: debug
log_file: /tmp/eurodash.log
pages:
  - title: Question 1
    charts:
      - id: q1c3
        title: Crimes by category
        endpoint: /api/question1/chart3
        sort: desc
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 2.5, cfg.RateLimit)
		assert.Equal(t, facet.PruneStale, cfg.Policy())
		assert.Equal(t, "debug", cfg.LogLevel)
		require.Len(t, cfg.Pages, 1)
		require.Len(t, cfg.Pages[0].Charts, 1)
		assert.Equal(t, config.Chart{
			ID: "q1c3", Title: "Crimes by category", Endpoint: "/api/question1/chart3", Sort: "desc",
		}, cfg.Pages[0].Charts[0])
		assert.NoError(t, cfg.Validate())
	})

	t.Run("defaults fill missing scalars", func(t *testing.T) {
		cfg, err := config.Parse([]byte("pages: []\n"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "retain", cfg.StalePolicy)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.Pages)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte(`{{{`))
		assert.Error(t, err)
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 30s")
	assert.Contains(t, string(data), "/api/question7/chart2")

	back, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Pages, 7)
	assert.Len(t, cfg.Charts(), 17)

	ch, err := cfg.Chart("q1c3")
	require.NoError(t, err)
	assert.Equal(t, "/api/question1/chart3", ch.Endpoint)
}

func TestChart_Unknown(t *testing.T) {
	_, err := config.Default().Chart("nope")
	assert.True(t, errors.Is(err, config.ErrUnknownChart))
	assert.Contains(t, err.Error(), "nope")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad base url", func(c *config.Config) { c.BaseURL = "localhost" }, "base_url"},
		{"zero timeout", func(c *config.Config) { c.Timeout = 0 }, "timeout"},
		{"negative rate", func(c *config.Config) { c.RateLimit = -1 }, "rate_limit"},
		{"bad policy", func(c *config.Config) { c.StalePolicy = "forget" }, "stale policy"},
		{"bad level", func(c *config.Config) { c.LogLevel = "loud" }, "log level"},
		{"untitled page", func(c *config.Config) { c.Pages[0].Title = "" }, "no title"},
		{"duplicate id", func(c *config.Config) { c.Pages[1].Charts[0].ID = "q1c1" }, "duplicate"},
		{"missing id", func(c *config.Config) { c.Pages[0].Charts[0].ID = "" }, "without id"},
		{"relative endpoint", func(c *config.Config) { c.Pages[0].Charts[0].Endpoint = "api/x" }, "must start with /"},
		{"bad sort", func(c *config.Config) { c.Pages[0].Charts[0].Sort = "sideways" }, "unknown sort"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: https://example.org\n"), 0644))
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", cfg.BaseURL)
	})
}
