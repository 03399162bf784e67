package evaluator

import (
	"bytes"
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/parser"
	"github.com/AAUP4-Projekt/wrench/internal/semantic"
)

// run parses, type-checks, and evaluates src, returning everything
// written to `print`. Mirrors the teacher's whole-program fixture tests,
// but without the snapshot library (unit tests assert exact output).
func run(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err != nil {
		t.Fatalf("type-check error: %v", err)
	}
	var out bytes.Buffer
	if err := New(&out).Run(prog); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	return out.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	got := run(t, `print(3 + 5 * 2);`)
	if got != "13\n" {
		t.Fatalf("got %q, want %q", got, "13\n")
	}
}

func TestForOverArray(t *testing.T) {
	got := run(t, `for (Int x in [1, 2, 3]) { print(x); }`)
	if got != "1\n2\n3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRecursion(t *testing.T) {
	src := `
fn Int f(Int n) {
	if (n == 0) { return 1; } else { return n * f(n - 1); }
}
print(f(5));
`
	got := run(t, src)
	if got != "120\n" {
		t.Fatalf("got %q", got)
	}
}

func TestConstAssignmentRejectedAtTypeCheck(t *testing.T) {
	prog, err := parser.Parse(`const Int k = 1; k = 2;`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err == nil {
		t.Fatal("expected a type-check error for assigning to a const")
	}
}

func TestDivisionByZero(t *testing.T) {
	prog, err := parser.Parse(`print(10 / 0);`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err != nil {
		t.Fatalf("type-check error: %v", err)
	}
	var out bytes.Buffer
	err = New(&out).Run(prog)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	if _, ok := err.(interface{ Error() string }); !ok {
		t.Fatalf("expected an error value, got %v", err)
	}
}

func TestPipeMapAndFilter(t *testing.T) {
	src := `
fn row(Int id, Int v) add1(row(Int id, Int v) r) {
	return row(Int id = r.id, Int v = r.v + 1);
}
fn Bool keep(row(Int id, Int v) r) {
	return r.v < 25;
}
var table(Int id, Int v) t = table(Int id, Int v);
table_add_row(t, row(Int id = 1, Int v = 10));
table_add_row(t, row(Int id = 2, Int v = 20));
table_add_row(t, row(Int id = 3, Int v = 30));
t pipe add1() pipe keep() pipe print();
`
	got := run(t, src)
	want := "id: 1, v: 11, \nid: 2, v: 21, \n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPipeReduce(t *testing.T) {
	src := `
fn table(Int v) sumcol(table(Int id, Int v) tbl) {
	var Int total = 0;
	for (row(Int id, Int v) r in tbl) {
		total = total + r.v;
	}
	var table(Int v) out = table(Int v);
	table_add_row(out, row(Int v = total));
	return out;
}
var table(Int id, Int v) t = table(Int id, Int v);
table_add_row(t, row(Int id = 1, Int v = 10));
table_add_row(t, row(Int id = 2, Int v = 20));
table_add_row(t, row(Int id = 3, Int v = 30));
t pipe sumcol() pipe print();
`
	got := run(t, src)
	if got != "v: 60, \n" {
		t.Fatalf("got %q", got)
	}
}

func TestNonConstGlobalInvisibleInsideFunctionBody(t *testing.T) {
	// Per spec §4.3, ordinary (non-const) globals are invisible inside
	// function bodies — only other functions and const variables are
	// captured.
	src := `
var Int x = 1;
fn Int f() { return x; }
`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err == nil {
		t.Fatal("expected a type-check error: function body cannot see a non-const global")
	}
}

func TestConstGlobalVisibleInsideFunctionBody(t *testing.T) {
	src := `
const Int k = 10;
fn Int f() { return k; }
print(f());
`
	got := run(t, src)
	if got != "10\n" {
		t.Fatalf("got %q", got)
	}
}
