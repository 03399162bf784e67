package parser

import (
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
)

func TestParseVarDeclAndArithmetic(t *testing.T) {
	prog, err := Parse(`var Int x = 1 + 2 * 3;`)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	bin, ok := decl.Value.(*ast.BinaryOp)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected '+' at the top (lower precedence than '*'), got %#v", decl.Value)
	}
}

func TestParseFunctionAndPipe(t *testing.T) {
	src := `
fn row(Int id, Int v) add1(row(Int id, Int v) r) {
	return row(Int id = r.id, Int v = r.v + 1);
}
fn Bool keep(row(Int id, Int v) r) {
	return r.v < 25;
}
var table(Int id, Int v) t = table(Int id, Int v);
t pipe add1() pipe keep() pipe print();
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Statements) != 4 {
		t.Fatalf("expected 4 top-level statements, got %d", len(prog.Statements))
	}
	exprStmt, ok := prog.Statements[3].(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected ExprStatement, got %T", prog.Statements[3])
	}
	outer, ok := exprStmt.Value.(*ast.PipeExpr)
	if !ok || outer.Function != "print" {
		t.Fatalf("expected outermost pipe stage to be 'print', got %#v", exprStmt.Value)
	}
	initial, stages := ast.Flatten(outer)
	if _, ok := initial.(*ast.Identifier); !ok {
		t.Fatalf("expected initial expression to be identifier 't', got %#v", initial)
	}
	if len(stages) != 3 || stages[0].Function != "add1" || stages[1].Function != "keep" || stages[2].Function != "print" {
		t.Fatalf("unexpected flattened stages: %#v", stages)
	}
}

func TestParseCollectsMultipleErrors(t *testing.T) {
	_, err := Parse(`var Int x = ; var Int y = ;`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if len(pe.Errors) < 2 {
		t.Fatalf("expected at least 2 collected errors, got %d: %v", len(pe.Errors), pe.Errors)
	}
}
