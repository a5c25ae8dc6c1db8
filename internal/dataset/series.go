package dataset

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
	gojson "github.com/goccy/go-json"
	"github.com/ruminaider/eurodash/internal/facet"
)

// ErrUnsupportedShape is returned by ParseSeries for chart_data it cannot
// read as label/value pairs.
var ErrUnsupportedShape = errors.New("dataset: unsupported chart_data shape")

// Order controls how ParseSeries sorts points.
type Order string

const (
	Unsorted   Order = ""
	Descending Order = "desc"
	Ascending  Order = "asc"
)

// Point is one bar of a chart.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered list of points.
type Series []Point

// Max returns the largest value, or zero for an empty series.
func (s Series) Max() float64 {
	var m float64
	for i, p := range s {
		if i == 0 || p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Total sums all values.
func (s Series) Total() float64 {
	var t float64
	for _, p := range s {
		t += p.Value
	}
	return t
}

// FormatValue renders v with thousands separators, cutting it to two
// decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 2)
}

type field struct {
	key string
	raw gojson.RawMessage
}

// ParseSeries reads chart_data in any of these shapes:
//
//	{"categories": [...], "values": [...]}
//	{"labels": [...], "values": [...]}
//	{"pivot_data": {"column": {"row": 1.5}}}   rows summed across columns
//	{"label": 1.5, ...}
//
// Null values are skipped. Empty or null chart_data yields an empty series.
func ParseSeries(raw []byte, order Order) (Series, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Series{}, nil
	}

	fields, err := objectFields(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}
	byKey := make(map[string]gojson.RawMessage, len(fields))
	for _, f := range fields {
		byKey[f.key] = f.raw
	}

	var s Series
	switch {
	case byKey["values"] != nil && byKey["categories"] != nil:
		s, err = zipSeries(byKey["categories"], byKey["values"])
	case byKey["values"] != nil && byKey["labels"] != nil:
		s, err = zipSeries(byKey["labels"], byKey["values"])
	case byKey["pivot_data"] != nil:
		s, err = pivotSeries(byKey["pivot_data"])
	default:
		s, err = flatSeries(fields)
	}
	if err != nil {
		return nil, err
	}

	switch order {
	case Descending:
		slices.SortStableFunc(s, func(a, b Point) int { return cmp.Compare(b.Value, a.Value) })
	case Ascending:
		slices.SortStableFunc(s, func(a, b Point) int { return cmp.Compare(a.Value, b.Value) })
	}
	return s, nil
}

func zipSeries(labelsRaw, valuesRaw gojson.RawMessage) (Series, error) {
	var labels []facet.Value
	if err := gojson.Unmarshal(labelsRaw, &labels); err != nil {
		return nil, fmt.Errorf("%w: labels: %v", ErrUnsupportedShape, err)
	}
	var values []*float64
	if err := gojson.Unmarshal(valuesRaw, &values); err != nil {
		return nil, fmt.Errorf("%w: values: %v", ErrUnsupportedShape, err)
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels for %d values", ErrUnsupportedShape, len(labels), len(values))
	}

	s := make(Series, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		s = append(s, Point{Label: labels[i].String(), Value: *v})
	}
	return s, nil
}

func pivotSeries(raw gojson.RawMessage) (Series, error) {
	columns, err := objectFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: pivot_data: %v", ErrUnsupportedShape, err)
	}

	index := make(map[string]int)
	var s Series
	for _, col := range columns {
		rows, err := objectFields(col.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: pivot column %q: %v", ErrUnsupportedShape, col.key, err)
		}
		for _, row := range rows {
			var v *float64
			if err := gojson.Unmarshal(row.raw, &v); err != nil {
				return nil, fmt.Errorf("%w: pivot cell %q/%q: %v", ErrUnsupportedShape, col.key, row.key, err)
			}
			i, ok := index[row.key]
			if !ok {
				i = len(s)
				index[row.key] = i
				s = append(s, Point{Label: row.key})
			}
			if v != nil {
				s[i].Value += *v
			}
		}
	}
	return s, nil
}

func flatSeries(fields []field) (Series, error) {
	s := make(Series, 0, len(fields))
	for _, f := range fields {
		var v *float64
		if err := gojson.Unmarshal(f.raw, &v); err != nil {
			return nil, fmt.Errorf("%w: field %q is not a number", ErrUnsupportedShape, f.key)
		}
		if v == nil {
			continue
		}
		s = append(s, Point{Label: f.key, Value: *v})
	}
	return s, nil
}

// objectFields decodes a JSON object keeping its key order.
func objectFields(raw []byte) ([]field, error) {
	dec := gojson.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '{' {
		return nil, errors.New("not an object")
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var v gojson.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		fields = append(fields, field{key: key, raw: v})
	}
	return fields, nil
}
