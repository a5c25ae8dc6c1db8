package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/ruminaider/eurodash/internal/logging"
	"go.yaml.in/yaml/v3"
)

// ErrUnknownChart is returned by Config.Chart when no chart has the id.
var ErrUnknownChart = errors.New("unknown chart")

// Sort orders for chart series.
const (
	SortNone = ""
	SortDesc = "desc"
	SortAsc  = "asc"
)

// DefaultBaseURL is where the data source listens when run locally.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Config represents ~/.eurodash/config.yaml.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"`
	StalePolicy string        `yaml:"stale_policy"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file,omitempty"`
	Pages       []Page        `yaml:"pages"`
}

// Page is one tab of the dashboard.
type Page struct {
	Title  string  `yaml:"title"`
	Charts []Chart `yaml:"charts"`
}

// Chart binds a panel to a data-source endpoint.
type Chart struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Endpoint string `yaml:"endpoint"`
	Sort     string `yaml:"sort,omitempty"`
}

// Parse parses config.yaml bytes into a Config. Missing scalar fields take
// their default values; a missing pages list is left empty.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads and parses the config at path. A missing file yields Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.StalePolicy == "" {
		c.StalePolicy = facet.RetainStale.String()
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.LevelInfo
	}
}

// Validate reports the first problem found in the config.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must be an http(s) URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit)
	}
	if _, err := facet.ParseStalePolicy(c.StalePolicy); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, p := range c.Pages {
		if p.Title == "" {
			return fmt.Errorf("page %d has no title", i+1)
		}
		for _, ch := range p.Charts {
			if ch.ID == "" {
				return fmt.Errorf("page %q: chart without id", p.Title)
			}
			if seen[ch.ID] {
				return fmt.Errorf("duplicate chart id %q", ch.ID)
			}
			seen[ch.ID] = true
			if !strings.HasPrefix(ch.Endpoint, "/") {
				return fmt.Errorf("chart %q: endpoint %q must start with /", ch.ID, ch.Endpoint)
			}
			switch ch.Sort {
			case SortNone, SortDesc, SortAsc:
			default:
				return fmt.Errorf("chart %q: unknown sort %q", ch.ID, ch.Sort)
			}
		}
	}
	return nil
}

// Chart looks up a chart by id across all pages.
func (c Config) Chart(id string) (Chart, error) {
	for _, p := range c.Pages {
		for _, ch := range p.Charts {
			if ch.ID == id {
				return ch, nil
			}
		}
	}
	return Chart{}, fmt.Errorf("%w: %s", ErrUnknownChart, id)
}

// Charts returns every chart in page order.
func (c Config) Charts() []Chart {
	var out []Chart
	for _, p := range c.Pages {
		out = append(out, p.Charts...)
	}
	return out
}

// Policy returns the parsed stale policy, falling back to retain.
func (c Config) Policy() facet.StalePolicy {
	p, err := facet.ParseStalePolicy(c.StalePolicy)
	if err != nil {
		return facet.RetainStale
	}
	return p
}
