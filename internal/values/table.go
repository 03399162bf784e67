package values

import (
	"strings"
	"sync"

	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// TableRef is a table accessed through a shared, interior-mutable
// container: every identifier and `for` iterator that holds the same
// TableRef observes the same underlying rows, and a mutation performed
// through one alias (e.g. table_add_row) is visible through every other
// alias. This mirrors the teacher's reference-counted runtime containers
// (internal/interp/runtime/refcount.go in the teacher), simplified to the
// single concern this language needs: shared mutability plus a cheap
// value-snapshot operation for crossing a pipe worker boundary.
//
// TableRef is never itself sent across a pipe channel; Snapshot() is used
// to hand a stage worker a value copy that cannot alias the evaluator's
// live table (spec §4.4, "value marshalling across threads").
type TableRef struct {
	mu     sync.Mutex
	schema types.Type // Kind == KindTable
	rows   []*Row
}

// NewTable creates an empty, shared table with the given column schema.
func NewTable(schema types.Type) *TableRef {
	return &TableRef{schema: schema}
}

func (t *TableRef) Type() types.Type { return t.schema }

func (t *TableRef) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sb strings.Builder
	for _, r := range t.rows {
		sb.WriteString(r.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Schema returns the table's column schema.
func (t *TableRef) Schema() types.Type { return t.schema }

// AddRow appends row to the table. The caller (table_add_row, import, or
// a reduce-stage flush) is responsible for having checked row.Type()
// equals the table's schema; AddRow itself does not re-validate so it can
// be used on the hot CSV-import path without repeated schema walks.
func (t *TableRef) AddRow(row *Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
}

// Rows returns the table's current rows, in insertion order. The returned
// slice is a fresh copy of the row pointers (not of the rows themselves,
// which are immutable once built) so callers may range over it without
// holding the table's lock.
func (t *TableRef) Rows() []*Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]*Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Len returns the current row count.
func (t *TableRef) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Column collects a column's values across every row, in row order, for
// the `table.col` projection.
func (t *TableRef) Column(name string) []Value {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Value, 0, len(t.rows))
	for _, r := range t.rows {
		if v, ok := r.Get(name); ok {
			out = append(out, v)
		}
	}
	return out
}

// Snapshot returns a new, independent TableRef holding value-copies of
// every row. It shares no memory with t: mutating the snapshot (e.g.
// appending a row to it) is never observable from t, and vice versa. The
// pipe engine uses it when a Table goes from the evaluator into a pipe
// chain: the chain's source table and every Table stage argument. Tables
// built inside the chain, and the collected result, are not snapshotted.
func (t *TableRef) Snapshot() *TableRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]*Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.Clone()
	}
	return &TableRef{schema: t.schema, rows: rows}
}
