package facet

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// State is the engine lifecycle state.
type State int

const (
	Uninitialized State = iota // no schema observed yet
	Ready                      // selections are live
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// StalePolicy decides what happens to selected values that disappear from a
// later schema.
type StalePolicy int

const (
	RetainStale StalePolicy = iota // keep them (sticky user choice)
	PruneStale                     // drop them and notify
)

// String returns the config spelling of the policy.
func (p StalePolicy) String() string {
	switch p {
	case RetainStale:
		return "retain"
	case PruneStale:
		return "prune"
	default:
		return "unknown"
	}
}

// ParseStalePolicy parses "retain" or "prune". The empty string means retain.
func ParseStalePolicy(s string) (StalePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "retain":
		return RetainStale, nil
	case "prune":
		return PruneStale, nil
	default:
		return RetainStale, fmt.Errorf("unknown stale policy %q (want retain or prune)", s)
	}
}

// Config holds the engine's collaborators.
type Config struct {
	// OnChange receives a full snapshot after every mutating operation.
	OnChange func(Selection)
	Policy   StalePolicy
	Logger   *slog.Logger
}

// Engine owns the selection and search state of one filter instance and is
// the only place that notifies the consumer. It is not safe for concurrent
// use; all calls are expected from a single event loop.
type Engine struct {
	schema    *Schema
	selection Selection
	search    map[string]string
	state     State
	policy    StalePolicy
	onChange  func(Selection)
	logger    *slog.Logger
}

// NewEngine creates an uninitialized engine.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		selection: Selection{},
		search:    map[string]string{},
		policy:    cfg.Policy,
		onChange:  cfg.OnChange,
		logger:    logger,
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Schema returns the most recently observed schema, which may be nil.
func (e *Engine) Schema() *Schema {
	return e.schema
}

// Observe records a schema arrival. The first non-nil schema initializes the
// engine. Later arrivals replace the schema used for lookups, trim
// single-select groups to their last selected value and, under PruneStale,
// drop selections whose values vanished. Any such change is notified once.
func (e *Engine) Observe(schema *Schema) {
	e.schema = schema
	if e.Initialize(schema) {
		return
	}
	if e.state != Ready || schema == nil {
		return
	}
	changed := false
	if e.policy == PruneStale && e.prune() {
		changed = true
	}
	if e.trimSingle() {
		changed = true
	}
	if changed {
		e.notify()
	}
}

// Initialize seeds selection and search state from schema. It runs at most
// once per engine and reports whether it did.
func (e *Engine) Initialize(schema *Schema) bool {
	if e.state == Ready || schema == nil {
		return false
	}
	e.schema = schema
	for _, key := range schema.Keys() {
		def, _ := schema.Group(key)
		if def.Default != nil {
			e.selection[key] = []Value{*def.Default}
		} else {
			e.selection[key] = []Value{}
		}
		e.search[key] = ""
	}
	e.state = Ready
	e.logger.Debug("filter initialized", "groups", schema.Len())
	return true
}

// ToggleOption applies a user click on value in group key. Single-select
// groups get radio semantics; multi-select groups add or remove the value.
// A key missing from the current schema is ignored.
func (e *Engine) ToggleOption(key string, value Value) bool {
	def, ok := e.group(key)
	if !ok {
		e.logger.Debug("toggle for unknown group ignored", "group", key)
		return false
	}

	current := e.selection[key]
	var next []Value
	switch {
	case !def.Multiple:
		next = []Value{value}
	case slices.Contains(current, value):
		next = slices.DeleteFunc(slices.Clone(current), func(v Value) bool { return v == value })
	default:
		next = append(slices.Clone(current), value)
	}
	e.selection[key] = next
	e.notify()
	return true
}

// SetSearch stores the search text of group key. It never notifies.
func (e *Engine) SetSearch(key, text string) {
	e.search[key] = text
}

// Search returns the search text of group key.
func (e *Engine) Search(key string) string {
	return e.search[key]
}

// ClearGroup empties the selection of group key.
func (e *Engine) ClearGroup(key string) bool {
	if _, ok := e.group(key); !ok {
		e.logger.Debug("clear for unknown group ignored", "group", key)
		return false
	}
	e.selection[key] = []Value{}
	e.notify()
	return true
}

// ClearAll empties every group's selection with a single notification.
func (e *Engine) ClearAll() bool {
	if e.state != Ready {
		return false
	}
	for key := range e.selection {
		e.selection[key] = []Value{}
	}
	e.notify()
	return true
}

// Selection returns a snapshot of the current selection.
func (e *Engine) Selection() Selection {
	return e.selection.Clone()
}

// Selected returns the selected values of group key.
func (e *Engine) Selected(key string) []Value {
	return slices.Clone(e.selection[key])
}

// IsSelected reports whether value is selected in group key.
func (e *Engine) IsSelected(key string, value Value) bool {
	return e.selection.Contains(key, value)
}

func (e *Engine) group(key string) (GroupDefinition, bool) {
	return e.schema.Group(key)
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange(e.selection.Clone())
	}
}

// prune removes selected values that are no longer offered. Groups missing
// from the schema entirely are left alone.
func (e *Engine) prune() bool {
	changed := false
	for key, selected := range e.selection {
		def, ok := e.group(key)
		if !ok {
			continue
		}
		kept := slices.DeleteFunc(slices.Clone(selected), func(v Value) bool { return !def.Has(v) })
		if len(kept) != len(selected) {
			e.selection[key] = kept
			changed = true
		}
	}
	if changed {
		e.logger.Debug("pruned stale selections")
	}
	return changed
}

// trimSingle keeps only the last selected value of every single-select
// group, for groups that were multi-select under an earlier schema.
func (e *Engine) trimSingle() bool {
	changed := false
	for key, selected := range e.selection {
		def, ok := e.group(key)
		if !ok || def.Multiple || len(selected) <= 1 {
			continue
		}
		e.selection[key] = []Value{selected[len(selected)-1]}
		changed = true
	}
	if changed {
		e.logger.Debug("trimmed single-select groups")
	}
	return changed
}
