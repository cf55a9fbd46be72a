// Package sheet holds the raw indicator tables returned by the factsheet API.
package sheet

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Value is a numeric cell that may be absent. The zero Value is absent; a
// present zero is a valid number and never collapses into absence.
type Value struct {
	num   float64
	valid bool
}

// Num returns a present value. NaN and ±Inf are reported as absent.
func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{num: f, valid: true}
}

// Absent returns the absence sentinel.
func Absent() Value { return Value{} }

// Valid reports whether the value is present.
func (v Value) Valid() bool { return v.valid }

// Float returns the number and whether it is present.
func (v Value) Float() (float64, bool) { return v.num, v.valid }

// Or returns the number, or def when absent.
func (v Value) Or(def float64) float64 {
	if !v.valid {
		return def
	}
	return v.num
}

// Any returns the number as an interface, or nil when absent. Chart widgets
// treat nil as a gap.
func (v Value) Any() any {
	if !v.valid {
		return nil
	}
	return v.num
}

func (v Value) String() string {
	if !v.valid {
		return "null"
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	*v = valueOf(gjson.ParseBytes(data))
	return nil
}

// MarshalYAML keeps absent cells as YAML null.
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

func valueOf(r gjson.Result) Value {
	if r.Type != gjson.Number {
		return Value{}
	}
	return Num(r.Float())
}
