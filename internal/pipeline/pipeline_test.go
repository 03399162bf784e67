package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

func intType() *ast.TypeExpr  { return &ast.TypeExpr{Name: "Int"} }
func boolType() *ast.TypeExpr { return &ast.TypeExpr{Name: "Bool"} }

func idVRowType() *ast.TypeExpr {
	return &ast.TypeExpr{IsRow: true, Columns: []ast.ColumnDecl{
		{Type: intType(), Name: "id"},
		{Type: intType(), Name: "v"},
	}}
}

func idVTableSchema() types.Type {
	return types.TableOf(
		types.Parameter{Type: types.Int, Name: "id"},
		types.Parameter{Type: types.Int, Name: "v"},
	)
}

// closureWith builds a minimal Closure whose Decl carries just enough
// (Params[0].Type, ReturnType) for runReduce/OutputSchema to resolve a
// schema from — the body is never walked, since tests drive behavior
// through the injected CallFunc, not through a real evaluator.
func closureWith(paramType, returnType *ast.TypeExpr) *values.Closure {
	return &values.Closure{Decl: &ast.FunctionDecl{
		Name:       "f",
		Params:     []ast.ColumnDecl{{Type: paramType, Name: "r"}},
		ReturnType: returnType,
		Body:       &ast.Block{},
	}}
}

func idVTable(rows [][2]int32) *values.TableRef {
	schema := idVTableSchema()
	rowSchema := types.RowOf(
		types.Parameter{Type: types.Int, Name: "id"},
		types.Parameter{Type: types.Int, Name: "v"},
	)
	t := values.NewTable(schema)
	for _, r := range rows {
		t.AddRow(values.NewRow(rowSchema, []string{"id", "v"}, []values.Value{values.Int(r[0]), values.Int(r[1])}))
	}
	return t
}

func noopCSVStream(path string, schema types.Type, emit func(*values.Row) error) error {
	return nil
}

// TestRunMapFilterPreservesOrder runs a map stage (add 1 to v) followed
// by a filter stage (keep v < 25) and checks the collected output table
// preserves input row order — spec §4.4's per-row pipeline must not
// reorder rows as they cross independently-scheduled stage goroutines.
func TestRunMapFilterPreservesOrder(t *testing.T) {
	source := Source{Table: idVTable([][2]int32{{1, 10}, {2, 20}, {3, 30}})}

	addOne := closureWith(idVRowType(), idVRowType())
	keepUnder25 := closureWith(idVRowType(), boolType())

	call := func(closure *values.Closure, args []values.Value) (values.Value, error) {
		row := args[0].(*values.Row)
		if closure == addOne {
			id, _ := row.Get("id")
			v, _ := row.Get("v")
			return values.NewRow(row.Type(), []string{"id", "v"}, []values.Value{id, v.(values.Int) + 1}), nil
		}
		v, _ := row.Get("v")
		return values.Bool(v.(values.Int) < 25), nil
	}

	stages := []Stage{
		{Kind: StageMap, Name: "add1", Closure: addOne},
		{Kind: StageFilter, Name: "keep", Closure: keepUnder25},
	}

	result, err := Run(context.Background(), source, stages, call, noopCSVStream, io.Discard)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	table, ok := result.(*values.TableRef)
	if !ok {
		t.Fatalf("expected *values.TableRef, got %T", result)
	}
	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after filtering, got %d", len(rows))
	}
	wantIDs := []int32{1, 2}
	for i, row := range rows {
		id, _ := row.Get("id")
		if int32(id.(values.Int)) != wantIDs[i] {
			t.Fatalf("row %d: got id %v, want %v (order not preserved)", i, id, wantIDs[i])
		}
	}
}

// TestRunReduceExactlyOnce checks a reduce stage's closure is invoked
// exactly once, after its input channel has drained completely, not once
// per row — the defining behavioral difference between Reduce and
// Map/Filter.
func TestRunReduceExactlyOnce(t *testing.T) {
	source := Source{Table: idVTable([][2]int32{{1, 10}, {2, 20}, {3, 30}})}

	sumTableType := &ast.TypeExpr{IsTable: true, Columns: []ast.ColumnDecl{{Type: intType(), Name: "v"}}}
	sumcol := closureWith(idVRowType(), sumTableType)

	calls := 0
	call := func(closure *values.Closure, args []values.Value) (values.Value, error) {
		calls++
		buffered := args[0].(*values.TableRef)
		var total int32
		for _, row := range buffered.Rows() {
			v, _ := row.Get("v")
			total += int32(v.(values.Int))
		}
		outSchema := types.TableOf(types.Parameter{Type: types.Int, Name: "v"})
		out := values.NewTable(outSchema)
		out.AddRow(values.NewRow(types.RowOf(types.Parameter{Type: types.Int, Name: "v"}), []string{"v"}, []values.Value{values.Int(total)}))
		return out, nil
	}

	stages := []Stage{{Kind: StageReduce, Name: "sumcol", Closure: sumcol}}

	result, err := Run(context.Background(), source, stages, call, noopCSVStream, io.Discard)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the reduce closure to be called exactly once, got %d calls", calls)
	}
	table := result.(*values.TableRef)
	rows := table.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 summary row, got %d", len(rows))
	}
	v, _ := rows[0].Get("v")
	if int32(v.(values.Int)) != 60 {
		t.Fatalf("expected summed v=60, got %v", v)
	}
}

// TestRunFailFastCancellation checks that when one stage's call errors
// partway through, Run returns promptly with that error instead of
// hanging — the producer has more rows queued than fit in the bounded
// channel, so without ctx.Done() checked on every send, the producer
// would block forever once the failing stage stops consuming.
func TestRunFailFastCancellation(t *testing.T) {
	rows := make([][2]int32, 0, 64)
	for i := int32(0); i < 64; i++ {
		rows = append(rows, [2]int32{i, i})
	}
	source := Source{Table: idVTable(rows)}

	boom := errors.New("boom on row 2")
	failing := closureWith(idVRowType(), idVRowType())
	call := func(closure *values.Closure, args []values.Value) (values.Value, error) {
		row := args[0].(*values.Row)
		id, _ := row.Get("id")
		if int32(id.(values.Int)) == 2 {
			return nil, boom
		}
		return row, nil
	}

	stages := []Stage{{Kind: StageMap, Name: "failing", Closure: failing}}

	done := make(chan struct{})
	var err error
	go func() {
		_, err = Run(context.Background(), source, stages, call, noopCSVStream, io.Discard)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return promptly after a stage error — producer likely blocked on a full channel")
	}
	if err == nil {
		t.Fatal("expected Run to return the stage error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the stage's own error to propagate, got %v", err)
	}
}
