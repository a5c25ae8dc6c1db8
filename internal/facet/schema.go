package facet

import (
	"bytes"
	"fmt"
	"slices"

	gojson "github.com/goccy/go-json"
)

// GroupDefinition describes one filter group as supplied by the data source.
type GroupDefinition struct {
	Values   []Value  `json:"values"`
	Labels   []string `json:"labels,omitempty"`
	Default  *Value   `json:"default"`
	Multiple bool     `json:"multiple"`
}

// groupWire mirrors the payload shape before lenient conversion.
type groupWire struct {
	Values   gojson.RawMessage `json:"values"`
	Labels   gojson.RawMessage `json:"labels"`
	Default  gojson.RawMessage `json:"default"`
	Multiple gojson.RawMessage `json:"multiple"`
}

// UnmarshalJSON decodes a group leniently. Any part that does not have the
// expected shape is dropped rather than failing the whole payload: a
// non-array "values" becomes empty, unreadable labels are skipped (which makes
// the label count mismatch and the values double as labels), and a bad
// default or multiple flag falls back to none/false.
func (d *GroupDefinition) UnmarshalJSON(data []byte) error {
	*d = GroupDefinition{}

	var wire groupWire
	if err := gojson.Unmarshal(data, &wire); err != nil {
		return nil
	}

	var rawValues []gojson.RawMessage
	if gojson.Unmarshal(wire.Values, &rawValues) == nil {
		for _, raw := range rawValues {
			var v Value
			if v.UnmarshalJSON(raw) == nil {
				d.Values = append(d.Values, v)
			}
		}
	}

	var rawLabels []gojson.RawMessage
	if gojson.Unmarshal(wire.Labels, &rawLabels) == nil && rawLabels != nil {
		d.Labels = make([]string, 0, len(rawLabels))
		for _, raw := range rawLabels {
			var v Value
			if v.UnmarshalJSON(raw) == nil {
				d.Labels = append(d.Labels, v.String())
			}
		}
	}

	if len(wire.Default) > 0 {
		var v Value
		if v.UnmarshalJSON(wire.Default) == nil {
			d.Default = &v
		}
	}

	if len(wire.Multiple) > 0 {
		var multiple bool
		if gojson.Unmarshal(wire.Multiple, &multiple) == nil {
			d.Multiple = multiple
		}
	}
	return nil
}

// Options pairs values with labels. Labels are used only when there is
// exactly one per value; otherwise each value is its own label. Repeated
// values keep their first occurrence.
func (d GroupDefinition) Options() []Option {
	useLabels := len(d.Labels) == len(d.Values)
	seen := make(map[Value]struct{}, len(d.Values))
	opts := make([]Option, 0, len(d.Values))
	for i, v := range d.Values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		label := v.String()
		if useLabels {
			label = d.Labels[i]
		}
		opts = append(opts, Option{Value: v, Label: label})
	}
	return opts
}

// Has reports whether v is one of the group's values.
func (d GroupDefinition) Has(v Value) bool {
	return slices.Contains(d.Values, v)
}

// Schema is the ordered set of group definitions available at one point in
// time. Keys keep the order in which they were added or decoded.
//
// A nil *Schema is valid and behaves as an empty schema.
type Schema struct {
	keys   []string
	groups map[string]GroupDefinition
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{groups: make(map[string]GroupDefinition)}
}

// Set adds or replaces a group. A new key is appended to the key order; a
// replaced key keeps its position.
func (s *Schema) Set(key string, def GroupDefinition) *Schema {
	if s.groups == nil {
		s.groups = make(map[string]GroupDefinition)
	}
	if _, exists := s.groups[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.groups[key] = def
	return s
}

// Group returns the definition for key.
func (s *Schema) Group(key string) (GroupDefinition, bool) {
	if s == nil {
		return GroupDefinition{}, false
	}
	def, ok := s.groups[key]
	return def, ok
}

// Keys returns the group keys in schema order.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Len returns the number of groups.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// UnmarshalJSON decodes a JSON object, preserving key order. Repeated keys
// keep the first position and the last definition.
func (s *Schema) UnmarshalJSON(data []byte) error {
	*s = Schema{groups: make(map[string]GroupDefinition)}

	dec := gojson.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding filter schema: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding filter schema: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding filter schema: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoding filter schema: unexpected key %v", keyTok)
		}
		var def GroupDefinition
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("decoding filter group %q: %w", key, err)
		}
		s.Set(key, def)
	}
	return nil
}

// MarshalJSON encodes the schema as an object in key order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := gojson.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		def, err := gojson.Marshal(s.groups[key])
		if err != nil {
			return nil, fmt.Errorf("encoding filter group %q: %w", key, err)
		}
		b.Write(def)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
