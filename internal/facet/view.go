package facet

import "strings"

// SummaryAll is the summary of a group with nothing selected.
const SummaryAll = "*"

// Options returns every option of group key, or nil for an unknown group.
func (e *Engine) Options(key string) []Option {
	def, ok := e.group(key)
	if !ok {
		return nil
	}
	return def.Options()
}

// VisibleOptions returns the options of group key whose label contains the
// group's search text, ignoring case.
func (e *Engine) VisibleOptions(key string) []Option {
	return FilterOptions(e.Options(key), e.search[key])
}

// FilterOptions keeps the options whose label contains text, ignoring case.
// Empty text keeps everything.
func FilterOptions(opts []Option, text string) []Option {
	if text == "" {
		return opts
	}
	needle := strings.ToLower(text)
	var out []Option
	for _, o := range opts {
		if strings.Contains(strings.ToLower(o.Label), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Summary renders the labels of the selected values of group key, falling
// back to the raw value for values the schema no longer offers.
func (e *Engine) Summary(key string) string {
	selected := e.selection[key]
	if len(selected) == 0 {
		return SummaryAll
	}
	opts := e.Options(key)
	parts := make([]string, 0, len(selected))
	for _, v := range selected {
		parts = append(parts, labelOf(opts, v))
	}
	return strings.Join(parts, ", ")
}

// OverallSummary renders "key: summary" for every group in schema order.
func (e *Engine) OverallSummary() string {
	keys := e.schema.Keys()
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Summary(key))
	}
	return strings.Join(parts, " | ")
}

func labelOf(opts []Option, v Value) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v.String()
}
