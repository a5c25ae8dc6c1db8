package facet

import (
	"bytes"
	"errors"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// ErrNotScalar is returned when a JSON option value is an object, an array or
// null.
var ErrNotScalar = errors.New("facet: option value must be a string or number")

// Value is a raw option value as sent by the data source. Strings and numbers
// are kept apart so "2019" and 2019 never compare equal.
type Value struct {
	text   string
	number bool
}

// String creates a string-kind Value.
func String(s string) Value {
	return Value{text: s}
}

// Number creates a number-kind Value from its literal text (e.g. "2019").
func Number(literal string) Value {
	return Value{text: literal, number: true}
}

// Int creates a number-kind Value from an int.
func Int(n int) Value {
	return Number(strconv.Itoa(n))
}

// String returns the literal text of the value. It doubles as the display
// label when a group has no labels.
func (v Value) String() string {
	return v.text
}

// IsNumber reports whether the value was sent as a JSON number.
func (v Value) IsNumber() bool {
	return v.number
}

// MarshalJSON encodes numbers as bare literals and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.number {
		return []byte(v.text), nil
	}
	return gojson.Marshal(v.text)
}

// UnmarshalJSON accepts strings, numbers and booleans. Booleans are kept as
// string values holding their literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrNotScalar
	}
	switch data[0] {
	case '"':
		var s string
		if err := gojson.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := gojson.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = String(strconv.FormatBool(b))
	case 'n', '{', '[':
		return ErrNotScalar
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return err
		}
		*v = Number(string(data))
	}
	return nil
}

// Values converts plain strings into string-kind values.
func Values(texts ...string) []Value {
	out := make([]Value, len(texts))
	for i, t := range texts {
		out[i] = String(t)
	}
	return out
}
