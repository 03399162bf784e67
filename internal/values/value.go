// Package values implements Wrench's runtime value representations: the
// primitive values, arrays, rows, tables (with shared interior mutability),
// and function closures the evaluator and pipe engine operate on.
package values

import (
	"fmt"
	"strconv"

	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// Value is any runtime value the evaluator can hold or pass across a pipe
// channel. All Wrench runtime values implement it.
type Value interface {
	// Type returns the static type this value carries at runtime.
	Type() types.Type
	// String renders the value the way `print` writes it. A Row renders
	// as one "col: value, " line (Row.String); a table renders one such
	// line per row (TableRef.String).
	String() string
}

// Int is a 32-bit signed integer value.
type Int int32

func (Int) Type() types.Type   { return types.Int }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }
func (i Int) AsDouble() Double { return Double(i) }

// Double is an IEEE-754 64-bit floating point value.
type Double float64

func (Double) Type() types.Type { return types.Double }
func (d Double) String() string { return strconv.FormatFloat(float64(d), 'g', -1, 64) }

// Bool is a boolean value.
type Bool bool

func (Bool) Type() types.Type { return types.Bool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String is an immutable UTF-8 string value.
type String string

func (String) Type() types.Type { return types.String }
func (s String) String() string { return string(s) }

// Null is the single null value.
type Null struct{}

func (Null) Type() types.Type { return types.Null }
func (Null) String() string   { return "Null" }

// AsNumeric converts a Value known to be numeric to a float64, widening Int
// as needed. It panics (via a RuntimeTypeError, see errors.go) if v is not
// Int or Double — callers must have type-checked the operand first.
func AsNumeric(v Value) float64 {
	switch n := v.(type) {
	case Int:
		return float64(n)
	case Double:
		return float64(n)
	default:
		panic(&RuntimeTypeError{Detail: fmt.Sprintf("expected a numeric value, got %s", v.Type())})
	}
}
