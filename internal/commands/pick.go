package commands

import (
	"github.com/ruminaider/eurodash/internal/facet"
)

// PickGroup is one filter group offered by the pick form.
type PickGroup struct {
	Key      string
	Multiple bool
	Options  []facet.Option
	// Selected holds the texts of the initially selected values.
	Selected []string
}

// PickGroups lists the schema's groups in order, each seeded the way a
// fresh filter engine would seed it.
func PickGroups(schema *facet.Schema) []PickGroup {
	engine := facet.NewEngine(facet.Config{})
	engine.Initialize(schema)

	var out []PickGroup
	for _, key := range schema.Keys() {
		def, _ := schema.Group(key)
		g := PickGroup{Key: key, Multiple: def.Multiple, Options: def.Options()}
		for _, v := range engine.Selected(key) {
			g.Selected = append(g.Selected, v.String())
		}
		out = append(out, g)
	}
	return out
}

// SelectionFromPicks converts the texts chosen per group back into schema
// values. Groups with nothing chosen are left out.
func SelectionFromPicks(schema *facet.Schema, picks map[string][]string) facet.Selection {
	sel := make(facet.Selection)
	for _, key := range schema.Keys() {
		texts := picks[key]
		if len(texts) == 0 {
			continue
		}
		vals := make([]facet.Value, 0, len(texts))
		for _, t := range texts {
			vals = append(vals, facet.Resolve(schema, key, t))
		}
		sel[key] = vals
	}
	return sel
}
