package semantic

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// The four built-ins (spec §4.2) are polymorphic in a way no ordinary
// Function type can express, so each is checked by its own rule rather
// than through the generic signature stored for it at NewAnalyzer time.
func (a *Analyzer) analyzeCallExpr(e *ast.CallExpr) types.Type {
	switch e.Function {
	case "print":
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Null
	case "import":
		return a.analyzeImportCall(e)
	case "async_import":
		a.addError(e.Position, "async_import is only legal as the initial expression of a pipe chain")
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Invalid
	case "table_add_row":
		return a.analyzeTableAddRowCall(e)
	}
	return a.analyzeUserCall(e)
}

func (a *Analyzer) analyzeImportCall(e *ast.CallExpr) types.Type {
	if len(e.Args) != 2 {
		a.addError(e.Position, "import expects 2 arguments (path, table), got %d", len(e.Args))
		return types.Invalid
	}
	path := a.analyzeExpression(e.Args[0])
	if path.Kind != types.KindString && path.Kind != types.KindInvalid {
		a.addError(e.Args[0].Pos(), "import's first argument must be String, got %s", path.String())
	}
	table := a.analyzeExpression(e.Args[1])
	if table.Kind != types.KindTable && table.Kind != types.KindInvalid {
		a.addError(e.Args[1].Pos(), "import's second argument must be a Table, got %s", table.String())
		return types.Invalid
	}
	return table
}

func (a *Analyzer) analyzeTableAddRowCall(e *ast.CallExpr) types.Type {
	if len(e.Args) != 2 {
		a.addError(e.Position, "table_add_row expects 2 arguments (table, row), got %d", len(e.Args))
		return types.Null
	}
	table := a.analyzeExpression(e.Args[0])
	row := a.analyzeExpression(e.Args[1])
	if table.Kind != types.KindTable && table.Kind != types.KindInvalid {
		a.addError(e.Args[0].Pos(), "table_add_row's first argument must be a Table, got %s", table.String())
		return types.Null
	}
	if row.Kind != types.KindRow && row.Kind != types.KindInvalid {
		a.addError(e.Args[1].Pos(), "table_add_row's second argument must be a Row, got %s", row.String())
		return types.Null
	}
	if table.Kind == types.KindTable && row.Kind == types.KindRow {
		rowSchema := types.RowOf(table.Columns...)
		if !row.Equal(rowSchema) {
			a.addError(e.Position, "row schema %s does not match table schema %s", row.String(), table.String())
		}
	}
	return types.Null
}

func (a *Analyzer) analyzeUserCall(e *ast.CallExpr) types.Type {
	b, ok := a.lookup(e.Function)
	if !ok {
		a.addError(e.Position, "call to undefined function '%s'", e.Function)
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Invalid
	}
	if !b.IsFunction {
		a.addError(e.Position, "'%s' is not a function", e.Function)
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return types.Invalid
	}

	sig := b.Sig
	if len(e.Args) != len(sig.Params) {
		a.addError(e.Position, "function '%s' expects %d argument(s), got %d", e.Function, len(sig.Params), len(e.Args))
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
		return *sig.Return
	}
	for i, arg := range e.Args {
		got := a.analyzeExpression(arg)
		if !got.AssignableTo(sig.Params[i]) {
			a.addError(arg.Pos(), "argument %d to '%s' must be %s, got %s", i+1, e.Function, sig.Params[i].String(), got.String())
		}
	}
	return *sig.Return
}
