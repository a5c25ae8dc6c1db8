package devserver

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ruminaider/eurodash/internal/facet"
	"go.yaml.in/yaml/v3"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is a synthetic data cube plus the charts served from it.
type Fixture struct {
	Scale      float64     `yaml:"scale"`
	Dimensions []Dimension `yaml:"dimensions"`
	Charts     []ChartDef  `yaml:"charts"`
}

// Dimension is one axis of the cube.
type Dimension struct {
	Name    string `yaml:"name"`
	Numeric bool   `yaml:"numeric"`
	Codes   []Code `yaml:"codes"`
}

// Code is one value along a dimension.
type Code struct {
	Code   string  `yaml:"code"`
	Label  string  `yaml:"label"`
	Weight float64 `yaml:"weight"`
}

// ChartDef describes one route.
type ChartDef struct {
	Route   string      `yaml:"route"`
	GroupBy string      `yaml:"group_by"`
	Filters []FilterDef `yaml:"filters"`
}

// FilterDef exposes a dimension as a filter group on a chart.
type FilterDef struct {
	Dim      string `yaml:"dim"`
	Multiple bool   `yaml:"multiple"`
	// Default applies when the request carries no value for a single-select
	// filter.
	Default string `yaml:"default"`
	// Only restricts the offered codes.
	Only []string `yaml:"only"`
}

// DefaultFixture returns the embedded fixture.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// ParseFixture parses and checks fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) validate() error {
	if fx.Scale == 0 {
		fx.Scale = 1
	}
	routes := make(map[string]bool)
	for _, ch := range fx.Charts {
		if !strings.HasPrefix(ch.Route, "/") {
			return fmt.Errorf("fixture chart route %q must start with /", ch.Route)
		}
		if routes[ch.Route] {
			return fmt.Errorf("fixture chart route %q defined twice", ch.Route)
		}
		routes[ch.Route] = true
		if _, ok := fx.dimension(ch.GroupBy); !ok {
			return fmt.Errorf("chart %s: unknown group_by dimension %q", ch.Route, ch.GroupBy)
		}
		for _, f := range ch.Filters {
			if _, ok := fx.dimension(f.Dim); !ok {
				return fmt.Errorf("chart %s: unknown filter dimension %q", ch.Route, f.Dim)
			}
		}
	}
	return nil
}

func (fx *Fixture) dimension(name string) (Dimension, bool) {
	for _, d := range fx.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

func (d Dimension) value(code string) facet.Value {
	if d.Numeric {
		return facet.Number(code)
	}
	return facet.String(code)
}

func (d Dimension) label(code string) string {
	for _, c := range d.Codes {
		if c.Code == code && c.Label != "" {
			return c.Label
		}
	}
	return code
}

// group builds the filter group definition offered for f.
func (d Dimension) group(f FilterDef) facet.GroupDefinition {
	allowed := make(map[string]bool, len(f.Only))
	for _, c := range f.Only {
		allowed[c] = true
	}

	var def facet.GroupDefinition
	labelled := false
	for _, c := range d.Codes {
		if len(allowed) > 0 && !allowed[c.Code] {
			continue
		}
		def.Values = append(def.Values, d.value(c.Code))
		def.Labels = append(def.Labels, d.label(c.Code))
		labelled = labelled || c.Label != ""
	}
	if !labelled {
		def.Labels = nil
	}
	def.Multiple = f.Multiple
	if f.Default != "" {
		v := d.value(f.Default)
		def.Default = &v
	}
	return def
}
