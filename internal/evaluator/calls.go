package evaluator

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// evalCallExpr dispatches built-in names first (spec §4.3 rule 1), then
// falls back to an ordinary user function lookup.
func (e *Evaluator) evalCallExpr(n *ast.CallExpr, en *env.Environment) (values.Value, error) {
	switch n.Function {
	case "print":
		return e.callPrint(n, en)
	case "import":
		return e.callImport(n, en)
	case "async_import":
		return nil, &CallTypeError{Function: "async_import", Detail: "only legal as the initial expression of a pipe chain"}
	case "table_add_row":
		return e.callTableAddRow(n, en)
	}

	b, err := en.Lookup(n.Function)
	if err != nil {
		return nil, err
	}
	if !b.IsFunction {
		return nil, &NotAFunctionError{Name: n.Function}
	}
	args, err := e.evalArgs(n.Args, en)
	if err != nil {
		return nil, err
	}
	return e.call(b.Closure, args)
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, en *env.Environment) ([]values.Value, error) {
	args := make([]values.Value, len(exprs))
	for i, a := range exprs {
		v, err := e.eval(a, en)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
