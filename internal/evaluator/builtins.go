package evaluator

import (
	"fmt"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/csvsource"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/types"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// callPrint writes each argument followed by a newline and returns Null
// (spec §6's `print` contract). Rows print as their schema-ordered
// "col: value, " rendering plus the trailing newline spec.md §9 fixes.
func (e *Evaluator) callPrint(n *ast.CallExpr, en *env.Environment) (values.Value, error) {
	for _, arg := range n.Args {
		v, err := e.eval(arg, en)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(e.Output, v.String())
	}
	return values.Null{}, nil
}

// callImport reads the CSV at the first argument's path into the second
// argument's Table, in place, and returns it (spec §6's synchronous
// `import`).
func (e *Evaluator) callImport(n *ast.CallExpr, en *env.Environment) (values.Value, error) {
	if len(n.Args) != 2 {
		return nil, &ArityError{Function: "import", Want: 2, Got: len(n.Args)}
	}
	pathVal, err := e.eval(n.Args[0], en)
	if err != nil {
		return nil, err
	}
	path, ok := pathVal.(values.String)
	if !ok {
		return nil, &CallTypeError{Function: "import", Detail: "first argument must be a String path"}
	}
	tableVal, err := e.eval(n.Args[1], en)
	if err != nil {
		return nil, err
	}
	table, ok := tableVal.(*values.TableRef)
	if !ok {
		return nil, &CallTypeError{Function: "import", Detail: "second argument must be a Table"}
	}
	if err := csvsource.ReadInto(string(path), table); err != nil {
		return nil, err
	}
	return table, nil
}

// callTableAddRow appends the row argument to the table argument, after
// checking the row's schema structurally matches the table's (same
// column names and types, any order — SPEC_FULL.md §C keeps the
// original draft's looser match rather than requiring identical
// declaration order).
func (e *Evaluator) callTableAddRow(n *ast.CallExpr, en *env.Environment) (values.Value, error) {
	if len(n.Args) != 2 {
		return nil, &ArityError{Function: "table_add_row", Want: 2, Got: len(n.Args)}
	}
	tableVal, err := e.eval(n.Args[0], en)
	if err != nil {
		return nil, err
	}
	table, ok := tableVal.(*values.TableRef)
	if !ok {
		return nil, &CallTypeError{Function: "table_add_row", Detail: "first argument must be a Table"}
	}
	rowVal, err := e.eval(n.Args[1], en)
	if err != nil {
		return nil, err
	}
	row, ok := rowVal.(*values.Row)
	if !ok {
		return nil, &CallTypeError{Function: "table_add_row", Detail: "second argument must be a Row"}
	}
	if !types.RowOf(table.Schema().Columns...).Equal(row.Type()) {
		return nil, &CallTypeError{Function: "table_add_row", Detail: "row schema does not match table schema"}
	}
	table.AddRow(row)
	return values.Null{}, nil
}
