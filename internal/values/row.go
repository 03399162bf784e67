package values

import (
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// cell is one (column name, value) pair within a Row, stored in insertion
// order — row iteration and projection follow declaration order, not any
// sorted order.
type cell struct {
	name  string
	value Value
}

// Row is an ordered sequence of named cells conforming to a schema. The
// rows a pipe chain reads from a source Table are value-cloned by
// TableRef.Snapshot (see Clone) before they enter the chain; rows made or
// forwarded by the stages themselves are passed on without cloning.
type Row struct {
	schema types.Type // Kind == KindRow
	cells  []cell
}

// NewRow builds a Row from ordered (name, value) pairs. names and vals
// must be the same length; this is enforced by callers (the evaluator
// builds rows from type-checked row literals and from table iteration, and
// table/column shapes are already validated there).
func NewRow(schema types.Type, names []string, vals []Value) *Row {
	cells := make([]cell, len(names))
	for i := range names {
		cells[i] = cell{name: names[i], value: vals[i]}
	}
	return &Row{schema: schema, cells: cells}
}

func (r *Row) Type() types.Type { return r.schema }

func (r *Row) String() string {
	var sb strings.Builder
	for _, c := range r.cells {
		sb.WriteString(c.name)
		sb.WriteString(": ")
		sb.WriteString(c.value.String())
		sb.WriteString(", ")
	}
	return sb.String()
}

// Get returns the cell named col. ok is false if no such column exists —
// the type checker guarantees this never happens for well-typed column
// projections, but the evaluator still reports ColumnNotFoundError for any
// path that reaches here unchecked (e.g. a reducer returning a
// mismatched row at runtime from the built-in Any-typed boundary).
func (r *Row) Get(col string) (Value, bool) {
	for _, c := range r.cells {
		if c.name == col {
			return c.value, true
		}
	}
	return nil, false
}

// Columns returns the column names in row order.
func (r *Row) Columns() []string {
	names := make([]string, len(r.cells))
	for i, c := range r.cells {
		names[i] = c.name
	}
	return names
}

// Clone returns a value copy of the row. Every cell value is a Wrench
// primitive, which is already immutable, so cloning only needs to copy
// the cell slice itself to break aliasing of the Row struct.
func (r *Row) Clone() *Row {
	cells := make([]cell, len(r.cells))
	copy(cells, r.cells)
	return &Row{schema: r.schema, cells: cells}
}
