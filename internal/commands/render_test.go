package commands_test

import (
	"bytes"
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/ruminaider/eurodash/internal/commands"
	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/facet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []commands.ChartResult {
	def := facet.Int(2020)
	schema := facet.NewSchema().Set("time", facet.GroupDefinition{
		Values:  []facet.Value{facet.Int(2019), facet.Int(2020)},
		Default: &def,
	})
	return []commands.ChartResult{
		{
			Chart:  config.Chart{ID: "q1c3", Title: "Frequency of crimes"},
			Series: dataset.Series{{Label: "Theft", Value: 12345}, {Label: "Robbery", Value: 7.5}},
			Schema: schema,
		},
		{
			Chart: config.Chart{ID: "q2c1", Title: "Crime growth over time"},
			Err:   errors.New("no data for the selected filters"),
		},
		{
			Chart: config.Chart{ID: "q3c1", Title: "Bribery"},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, commands.WriteTable(&buf, sampleResults()))

	want := "Frequency of crimes (q1c3)\n" +
		"  Theft    12,345\n" +
		"  Robbery     7.5\n" +
		"\n" +
		"Crime growth over time (q2c1)\n" +
		"  ! no data for the selected filters\n" +
		"\n" +
		"Bribery (q3c1)\n" +
		"  no data\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, commands.WriteJSON(&buf, sampleResults()))

	var got []struct {
		ID     string `json:"id"`
		Points []struct {
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"points"`
		Filters map[string]any `json:"filters"`
		Error   string         `json:"error"`
	}
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "q1c3", got[0].ID)
	assert.Equal(t, "Theft", got[0].Points[0].Label)
	assert.Equal(t, 12345.0, got[0].Points[0].Value)
	assert.Contains(t, got[0].Filters, "time")
	assert.Equal(t, "no data for the selected filters", got[1].Error)
	assert.NotNil(t, got[2].Points)
	assert.Empty(t, got[2].Points)
	assert.Contains(t, buf.String(), "\n  {\n")
}
