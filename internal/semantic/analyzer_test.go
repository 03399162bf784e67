package semantic

import (
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/token"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

func intType() *ast.TypeExpr  { return &ast.TypeExpr{Name: "Int"} }
func boolType() *ast.TypeExpr { return &ast.TypeExpr{Name: "Bool"} }

func TestVarDeclWideningIsAccepted(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: &ast.TypeExpr{Name: "Double"}, Name: "x", Value: &ast.IntLiteral{Value: 1}},
	}}
	if err := Analyze(prog); err != nil {
		t.Fatalf("widening Int into a Double var should be legal: %v", err)
	}
}

func TestVarDeclNarrowingIsRejected(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: intType(), Name: "x", Value: &ast.DoubleLiteral{Value: 1.5}},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("narrowing Double into an Int var must be rejected")
	}
}

func TestRedeclarationIsRejected(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: intType(), Name: "x", Value: &ast.IntLiteral{Value: 1}},
		&ast.VarDecl{Type: intType(), Name: "x", Value: &ast.IntLiteral{Value: 2}},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("redeclaring x in the same scope must be rejected")
	}
}

func TestConstAssignmentIsRejected(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: intType(), Name: "k", Value: &ast.IntLiteral{Value: 1}, IsConstant: true},
		&ast.Assignment{Name: "k", Value: &ast.IntLiteral{Value: 2}},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("assigning to a constant must be rejected")
	}
}

func TestUndefinedIdentifierIsRejected(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ExprStatement{Value: &ast.Identifier{Name: "ghost"}},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("referencing an undefined identifier must be rejected")
	}
}

func TestCollectsAllErrorsInOnePass(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.ExprStatement{Value: &ast.Identifier{Name: "a"}},
		&ast.ExprStatement{Value: &ast.Identifier{Name: "b"}},
	}}
	err := Analyze(prog)
	if err == nil {
		t.Fatal("expected errors")
	}
	ae, ok := err.(*AnalysisError)
	if !ok {
		t.Fatalf("expected *AnalysisError, got %T", err)
	}
	if len(ae.Errors) != 2 {
		t.Fatalf("expected both undefined identifiers reported, got %d error(s): %v", len(ae.Errors), ae.Errors)
	}
}

func rowType(cols ...types.Parameter) *ast.TypeExpr {
	decls := make([]ast.ColumnDecl, len(cols))
	for i, c := range cols {
		decls[i] = ast.ColumnDecl{Type: typeExprOf(c.Type), Name: c.Name}
	}
	return &ast.TypeExpr{IsRow: true, Columns: decls}
}

func tableType(cols ...types.Parameter) *ast.TypeExpr {
	decls := make([]ast.ColumnDecl, len(cols))
	for i, c := range cols {
		decls[i] = ast.ColumnDecl{Type: typeExprOf(c.Type), Name: c.Name}
	}
	return &ast.TypeExpr{IsTable: true, Columns: decls}
}

func typeExprOf(t types.Type) *ast.TypeExpr {
	switch t.Kind {
	case types.KindInt:
		return intType()
	case types.KindBool:
		return boolType()
	default:
		return &ast.TypeExpr{Name: t.String()}
	}
}

// TestPipeMapFilterTypeChecks mirrors the map and filter stages of spec
// example E4: a table of (id, v) piped through a row->row map and a
// row->bool filter.
func TestPipeMapFilterTypeChecks(t *testing.T) {
	schema := []types.Parameter{{Type: types.Int, Name: "id"}, {Type: types.Int, Name: "v"}}

	addOne := &ast.FunctionDecl{
		Name:       "add1",
		ReturnType: rowType(schema...),
		Params:     []ast.ColumnDecl{{Type: rowType(schema...), Name: "r"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.Identifier{Name: "r"}},
		}},
	}
	keep := &ast.FunctionDecl{
		Name:       "keep",
		ReturnType: boolType(),
		Params:     []ast.ColumnDecl{{Type: rowType(schema...), Name: "r"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.BoolLiteral{Value: true}},
		}},
	}

	pipe := &ast.PipeExpr{
		Left: &ast.PipeExpr{
			Left:     &ast.Identifier{Name: "t"},
			Function: "add1",
		},
		Function: "keep",
	}
	pipe.Left.(*ast.PipeExpr).Position = token.Position{Line: 1, Column: 1}

	prog := &ast.Program{Statements: []ast.Statement{
		addOne,
		keep,
		&ast.VarDecl{Type: tableType(schema...), Name: "t", Value: &ast.TableLiteral{Columns: addOne.ReturnType.Columns}},
		&ast.ExprStatement{Value: pipe},
	}}

	if err := Analyze(prog); err != nil {
		t.Fatalf("map+filter pipe should type check: %v", err)
	}
}

func TestPipeRejectsSchemaMismatch(t *testing.T) {
	idOnly := []types.Parameter{{Type: types.Int, Name: "id"}}
	idAndV := []types.Parameter{{Type: types.Int, Name: "id"}, {Type: types.Int, Name: "v"}}

	wrongShape := &ast.FunctionDecl{
		Name:       "wrongShape",
		ReturnType: rowType(idAndV...),
		Params:     []ast.ColumnDecl{{Type: rowType(idOnly...), Name: "r"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStatement{Value: &ast.Identifier{Name: "r"}},
		}},
	}

	prog := &ast.Program{Statements: []ast.Statement{
		wrongShape,
		&ast.VarDecl{Type: tableType(idAndV...), Name: "t", Value: &ast.TableLiteral{Columns: tableType(idAndV...).Columns}},
		&ast.ExprStatement{Value: &ast.PipeExpr{Left: &ast.Identifier{Name: "t"}, Function: "wrongShape"}},
	}}

	if err := Analyze(prog); err == nil {
		t.Fatal("a map stage whose declared row schema differs from the incoming schema must be rejected")
	}
}

func TestAsyncImportOutsidePipeIsRejected(t *testing.T) {
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{
			Type: tableType(types.Parameter{Type: types.Int, Name: "id"}),
			Name: "t",
			Value: &ast.CallExpr{
				Function: "async_import",
				Args:     []ast.Expression{&ast.StringLiteral{Value: "x.csv"}, &ast.TableLiteral{Columns: []ast.ColumnDecl{{Type: intType(), Name: "id"}}}},
			},
		},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("async_import used outside a pipe's initial position must be rejected")
	}
}

func TestPrintMustBeTerminal(t *testing.T) {
	schema := []types.Parameter{{Type: types.Int, Name: "id"}}
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: tableType(schema...), Name: "t", Value: &ast.TableLiteral{Columns: tableType(schema...).Columns}},
		&ast.ExprStatement{Value: &ast.PipeExpr{
			Left:     &ast.PipeExpr{Left: &ast.Identifier{Name: "t"}, Function: "print"},
			Function: "print",
		}},
	}}
	if err := Analyze(prog); err == nil {
		t.Fatal("a non-terminal 'print' stage must be rejected")
	}
}
