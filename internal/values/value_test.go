package values

import (
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/types"
)

func TestRowStringFormat(t *testing.T) {
	schema := types.RowOf(types.Parameter{Type: types.Int, Name: "id"}, types.Parameter{Type: types.Int, Name: "v"})
	row := NewRow(schema, []string{"id", "v"}, []Value{Int(1), Int(11)})
	if got, want := row.String(), "id: 1, v: 11, "; got != want {
		t.Fatalf("row.String() = %q, want %q", got, want)
	}
}

func TestTableSnapshotIsIndependent(t *testing.T) {
	schema := types.TableOf(types.Parameter{Type: types.Int, Name: "v"})
	tbl := NewTable(schema)
	tbl.AddRow(NewRow(types.RowOf(types.Parameter{Type: types.Int, Name: "v"}), []string{"v"}, []Value{Int(1)}))

	snap := tbl.Snapshot()
	snap.AddRow(NewRow(types.RowOf(types.Parameter{Type: types.Int, Name: "v"}), []string{"v"}, []Value{Int(2)}))

	if tbl.Len() != 1 {
		t.Fatalf("mutating a snapshot must not affect the original table, original has %d rows", tbl.Len())
	}
	if snap.Len() != 2 {
		t.Fatalf("expected snapshot to have the appended row, got %d rows", snap.Len())
	}
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	arr := NewArray(types.Int, []Value{Int(1), Int(2)})
	if _, err := arr.At(2); err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
	if v, err := arr.At(1); err != nil || v != Int(2) {
		t.Fatalf("At(1) = %v, %v", v, err)
	}
}

func TestTableColumnProjection(t *testing.T) {
	rowSchema := types.RowOf(types.Parameter{Type: types.Int, Name: "id"}, types.Parameter{Type: types.Int, Name: "v"})
	schema := types.TableOf(types.Parameter{Type: types.Int, Name: "id"}, types.Parameter{Type: types.Int, Name: "v"})
	tbl := NewTable(schema)
	tbl.AddRow(NewRow(rowSchema, []string{"id", "v"}, []Value{Int(1), Int(10)}))
	tbl.AddRow(NewRow(rowSchema, []string{"id", "v"}, []Value{Int(2), Int(20)}))

	col := tbl.Column("v")
	if len(col) != 2 || col[0] != Int(10) || col[1] != Int(20) {
		t.Fatalf("unexpected column projection: %v", col)
	}
}
