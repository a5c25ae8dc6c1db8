package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_ValuesDoubleAsLabels(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())

	opts := e.Options("time")
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: String("2019"), Label: "2019"}, opts[0])
}

func TestOptions_PairsLabels(t *testing.T) {
	schema := NewSchema().Set("geo", GroupDefinition{
		Values: Values("DE", "FR"),
		Labels: []string{"Germany", "France"},
	})
	e, _ := newTestEngine(t, schema)

	assert.Equal(t, []Option{
		{Value: String("DE"), Label: "Germany"},
		{Value: String("FR"), Label: "France"},
	}, e.Options("geo"))
}

func TestOptions_MismatchedLabelsFallBack(t *testing.T) {
	schema := NewSchema().Set("geo", GroupDefinition{
		Values: Values("DE", "FR"),
		Labels: []string{"Germany", "France", "Poland"},
	})
	e, _ := newTestEngine(t, schema)

	opts := e.Options("geo")
	require.Len(t, opts, 2)
	assert.Equal(t, "DE", opts[0].Label)
	assert.Equal(t, "FR", opts[1].Label)
}

func TestOptions_DeduplicatesValues(t *testing.T) {
	schema := NewSchema().Set("geo", GroupDefinition{
		Values: Values("DE", "FR", "DE"),
		Labels: []string{"Germany", "France", "Deutschland"},
	})
	e, _ := newTestEngine(t, schema)

	assert.Equal(t, []Option{
		{Value: String("DE"), Label: "Germany"},
		{Value: String("FR"), Label: "France"},
	}, e.Options("geo"))
}

func TestOptions_UnknownGroup(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())
	assert.Empty(t, e.Options("nope"))
	assert.Empty(t, e.VisibleOptions("nope"))
}

func TestVisibleOptions_Search(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())

	e.SetSearch("time", "202")
	assert.Len(t, e.VisibleOptions("time"), 3)

	e.SetSearch("time", "2021")
	visible := e.VisibleOptions("time")
	require.Len(t, visible, 1)
	assert.Equal(t, String("2021"), visible[0].Value)
}

func TestVisibleOptions_CaseInsensitive(t *testing.T) {
	schema := NewSchema().Set("iccs", GroupDefinition{
		Values: Values("ICCS0101", "ICCS0401"),
		Labels: []string{"Intentional homicide", "Robbery"},
	})
	e, _ := newTestEngine(t, schema)

	e.SetSearch("iccs", "HOMI")
	visible := e.VisibleOptions("iccs")
	require.Len(t, visible, 1)
	assert.Equal(t, "Intentional homicide", visible[0].Label)
}

func TestVisibleOptions_IsPure(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())
	e.SetSearch("time", "20")

	assert.Equal(t, e.VisibleOptions("time"), e.VisibleOptions("time"))
}

func TestVisibleOptions_FollowsSchemaChange(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())
	e.SetSearch("time", "2022")
	assert.Empty(t, e.VisibleOptions("time"))

	e.Observe(NewSchema().Set("time", GroupDefinition{Values: Values("2022", "2023"), Multiple: true}))
	assert.Len(t, e.VisibleOptions("time"), 1)
}

func TestSummary(t *testing.T) {
	schema := NewSchema().Set("geo", GroupDefinition{
		Values:   Values("DE", "FR"),
		Labels:   []string{"Germany", "France"},
		Multiple: true,
	})
	e, _ := newTestEngine(t, schema)

	assert.Equal(t, SummaryAll, e.Summary("geo"))

	e.ToggleOption("geo", String("FR"))
	e.ToggleOption("geo", String("DE"))
	assert.Equal(t, "France, Germany", e.Summary("geo"))

	e.ClearGroup("geo")
	assert.Equal(t, SummaryAll, e.Summary("geo"))
}

func TestSummary_StarIffEmpty(t *testing.T) {
	e, _ := newTestEngine(t, timeSchema())
	for _, v := range []string{"2019", "2020", "2019", "2020"} {
		e.ToggleOption("time", String(v))
		empty := len(e.Selected("time")) == 0
		assert.Equal(t, empty, e.Summary("time") == SummaryAll)
	}
}

func TestOverallSummary_SchemaOrder(t *testing.T) {
	de := String("DE")
	schema := NewSchema().
		Set("time", GroupDefinition{Values: Values("2020", "2021"), Multiple: true}).
		Set("geo", GroupDefinition{Values: Values("DE", "FR"), Labels: []string{"Germany", "France"}, Default: &de})
	e, _ := newTestEngine(t, schema)

	assert.Equal(t, "time: * | geo: Germany", e.OverallSummary())

	e.ToggleOption("time", String("2021"))
	assert.Equal(t, "time: 2021 | geo: Germany", e.OverallSummary())
}

func TestOverallSummary_NoSchema(t *testing.T) {
	e := NewEngine(Config{})
	assert.Equal(t, "", e.OverallSummary())
}

func TestFilterOptions_EmptyTextKeepsAll(t *testing.T) {
	opts := []Option{{Value: String("a"), Label: "A"}, {Value: String("b"), Label: "B"}}
	assert.Equal(t, opts, FilterOptions(opts, ""))
	assert.Empty(t, FilterOptions(opts, "z"))
}
