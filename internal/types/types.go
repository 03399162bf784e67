// Package types implements Wrench's static type representations and the
// widening/assignability rules the type checker and evaluator share.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the shape of a Type without needing a type switch at
// every call site.
type Kind int

const (
	// KindInvalid is the zero Kind, returned by the checker in place of a
	// real type once an error has already been reported for an expression,
	// so callers can keep analyzing without a nil check at every call site.
	KindInvalid Kind = iota
	KindInt
	KindDouble
	KindBool
	KindString
	KindNull
	KindArray
	KindFunction
	KindTable
	KindRow
	// KindAny is the internal type used only for built-in function
	// signatures (print, import, async_import, table_add_row). It is never
	// produced by user code and is not a first-class polymorphic type.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "<invalid>"
	case KindInt:
		return "Int"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindTable:
		return "Table"
	case KindRow:
		return "Row"
	case KindAny:
		return "Any"
	default:
		return "?"
	}
}

// Parameter pairs a type with a name. It is used both for function formal
// parameters and for table/row column declarations.
type Parameter struct {
	Type Type
	Name string
}

// Type is the static type of a Wrench value. It is a plain, comparable-by
// value description; two Types describe the same type iff Equal reports
// true.
type Type struct {
	Kind Kind

	// Array element type (KindArray only).
	Elem *Type

	// Function signature (KindFunction only).
	Return *Type
	Params []Type

	// Table / Row column schema (KindTable, KindRow only). Order does not
	// affect identity for either kind (Equal compares column sets), and
	// String renders the columns sorted by name; the print order of a row
	// value's cells is kept by values.Row, not here.
	Columns []Parameter
}

var (
	// Invalid stands in for an expression's type once the checker has
	// already reported an error for it; it is never a real program type.
	Invalid = Type{Kind: KindInvalid}

	Int    = Type{Kind: KindInt}
	Double = Type{Kind: KindDouble}
	Bool   = Type{Kind: KindBool}
	String = Type{Kind: KindString}
	Null   = Type{Kind: KindNull}
	Any    = Type{Kind: KindAny}
)

// ArrayOf builds an Array(T) type.
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

// FunctionOf builds a Function(return, params...) type.
func FunctionOf(ret Type, params ...Type) Type {
	return Type{Kind: KindFunction, Return: &ret, Params: params}
}

// TableOf builds a Table([Parameter]) type.
func TableOf(columns ...Parameter) Type {
	return Type{Kind: KindTable, Columns: columns}
}

// RowOf builds a Row([Parameter]) type.
func RowOf(columns ...Parameter) Type {
	return Type{Kind: KindRow, Columns: columns}
}

// IsNumeric reports whether t is Int or Double.
func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindDouble
}

// Column looks up a column by name (first match, per spec's row lookup
// rule). ok is false when no column of that name is declared.
func (t Type) Column(name string) (Parameter, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Parameter{}, false
}

// Equal reports whether t and other describe the same static type.
// Table/Row schema equality is by column set (name+type), independent of
// declaration order, matching the data model's "structure is a set of
// unique names" invariant; array/function equality requires exact
// structural equality of their parts.
func (t Type) Equal(other Type) bool {
	// Invalid stands in for a type the checker already flagged; treating it
	// as equal to anything keeps one error from cascading into a flood of
	// unrelated mismatch errors downstream.
	if t.Kind == KindInvalid || other.Kind == KindInvalid {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Elem.Equal(*other.Elem)
	case KindFunction:
		if len(t.Params) != len(other.Params) || !t.Return.Equal(*other.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	case KindTable, KindRow:
		return sameColumns(t.Columns, other.Columns)
	default:
		return true
	}
}

func sameColumns(a, b []Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	index := make(map[string]Type, len(a))
	for _, p := range a {
		index[p.Name] = p.Type
	}
	for _, p := range b {
		want, ok := index[p.Name]
		if !ok || !want.Equal(p.Type) {
			return false
		}
	}
	return true
}

// AssignableTo reports whether a value of type t may be used where
// `target` is expected, accounting for Int -> Double widening. This is
// the single widening rule in the language: Double -> Int is always
// rejected.
func (t Type) AssignableTo(target Type) bool {
	if t.Equal(target) {
		return true
	}
	if t.Kind == KindInt && target.Kind == KindDouble {
		return true
	}
	return false
}

// String renders the type the way Wrench source declares it.
func (t Type) String() string {
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("fn(%s) %s", strings.Join(parts, ", "), t.Return.String())
	case KindTable:
		return fmt.Sprintf("table(%s)", columnsString(t.Columns))
	case KindRow:
		return fmt.Sprintf("row(%s)", columnsString(t.Columns))
	default:
		return t.Kind.String()
	}
}

func columnsString(cols []Parameter) string {
	sorted := make([]Parameter, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = fmt.Sprintf("%s %s", c.Type.String(), c.Name)
	}
	return strings.Join(parts, ", ")
}
