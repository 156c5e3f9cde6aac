// Package dataset holds the in-memory table shared by ingestion and the
// dashboard: ordered columns, ordered rows, nullable textual cells.
package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single nullable cell. Cells keep their textual form so a table
// survives a CSV round trip unchanged; numeric access parses on demand.
type Value struct {
	raw   string
	valid bool
}

// Null returns the missing-value cell.
func Null() Value { return Value{} }

// Text returns a non-null cell holding s.
func Text(s string) Value { return Value{raw: s, valid: true} }

// Number returns a non-null cell holding f in its shortest textual form.
// NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64), valid: true}
}

// Bool returns a non-null cell holding "True" or "False".
func Bool(b bool) Value {
	if b {
		return Text("True")
	}
	return Text("False")
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return !v.valid }

// String returns the cell text; null cells render as "".
func (v Value) String() string { return v.raw }

// Float parses the cell as a float64. ok is false for null or non-numeric cells.
func (v Value) Float() (f float64, ok bool) {
	if !v.valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Equal compares two cells by nullness and text.
func (v Value) Equal(o Value) bool {
	return v.valid == o.valid && v.raw == o.raw
}
