package facet

import (
	"net/url"
	"slices"
	"sort"
)

// Option is one selectable entry of a group.
type Option struct {
	Value Value
	Label string
}

// Selection maps each group key to its selected values in selection order.
type Selection map[string][]Value

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
		if out[k] == nil {
			out[k] = []Value{}
		}
	}
	return out
}

// Keys returns the group keys in sorted order.
func (s Selection) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Contains reports whether v is selected in group key.
func (s Selection) Contains(key string, v Value) bool {
	return slices.Contains(s[key], v)
}


// Query encodes the selection as request parameters, one occurrence per
// selected value. Empty groups are omitted.
func (s Selection) Query() url.Values {
	q := url.Values{}
	for _, k := range s.Keys() {
		for _, v := range s[k] {
			q.Add(k, v.String())
		}
	}
	return q
}

// ParseQuery is the inverse of Query. Every value becomes a string-kind
// value; callers that need number kinds resolve them against a schema with
// Resolve.
func ParseQuery(q url.Values) Selection {
	sel := make(Selection, len(q))
	for k, texts := range q {
		seen := make(map[string]struct{}, len(texts))
		vals := make([]Value, 0, len(texts))
		for _, t := range texts {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			vals = append(vals, String(t))
		}
		sel[k] = vals
	}
	return sel
}

// Resolve maps text to the matching value of group key in schema, so a
// user-typed "2019" finds the numeric 2019. Unknown text resolves to a
// string value.
func Resolve(schema *Schema, key, text string) Value {
	if def, ok := schema.Group(key); ok {
		for _, v := range def.Values {
			if v.String() == text {
				return v
			}
		}
	}
	return String(text)
}
