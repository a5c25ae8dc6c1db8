// Package facet implements the interactive faceted filter shared by every
// chart panel.
//
// A [Schema] arrives from the data source with each payload and describes the
// available groups (country, year, crime type...). An [Engine] owns what is
// currently selected and searched per group:
//
//	e := facet.NewEngine(facet.Config{OnChange: refetch})
//	e.Observe(payload.Interactive) // first non-nil schema initializes
//	e.ToggleOption("geo", facet.String("FR"))
//	e.SetSearch("time", "202")
//	visible := e.VisibleOptions("time")
//
// Selections are seeded once, from the defaults of the first schema, and are
// never reset by later schemas. Every mutating call hands a complete
// [Selection] snapshot to OnChange; search edits never do.
//
// Operations that reference a group the current schema does not know are
// silent no-ops, and malformed group definitions degrade to using the raw
// values as labels. Nothing in this package returns an error to the consumer.
package facet
