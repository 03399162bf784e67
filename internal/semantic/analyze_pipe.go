package semantic

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// analyzePipeExpr checks a flattened pipe chain stage by stage. Throughout,
// current tracks the Row schema flowing on the channel between stages —
// a Table initial expression (or async_import) is understood as a stream
// of that table's rows, per spec §4.4. The function's own return type is
// the Table the engine collects at the end, or Null if the chain is
// print-terminated.
func (a *Analyzer) analyzePipeExpr(e *ast.PipeExpr) types.Type {
	initial, stages := ast.Flatten(e)

	current, ok := a.analyzePipeInitial(initial)
	if !ok {
		current = types.Invalid
	}

	for i, stage := range stages {
		isTerminal := i == len(stages)-1

		if stage.Function == "print" {
			if !isTerminal {
				a.addError(stage.Position, "'print' is only legal as the terminal stage of a pipe")
			}
			for _, arg := range stage.Args {
				a.analyzeExpression(arg)
			}
			return types.Null
		}

		current = a.analyzePipeStage(stage, current)
	}

	if current.Kind == types.KindInvalid {
		return types.Invalid
	}
	return types.TableOf(current.Columns...)
}

// analyzePipeInitial resolves the chain's source expression to the Row
// schema it streams. async_import is legal only here; everywhere else
// analyzeCallExpr rejects it.
func (a *Analyzer) analyzePipeInitial(initial ast.Expression) (types.Type, bool) {
	if call, isCall := initial.(*ast.CallExpr); isCall && call.Function == "async_import" {
		return a.analyzeAsyncImportInitial(call)
	}

	t := a.analyzeExpression(initial)
	switch t.Kind {
	case types.KindTable:
		return types.RowOf(t.Columns...), true
	case types.KindInvalid:
		return types.Invalid, false
	default:
		a.addError(initial.Pos(), "pipe's initial expression must be a Table, got %s", t.String())
		return types.Invalid, false
	}
}

func (a *Analyzer) analyzeAsyncImportInitial(call *ast.CallExpr) (types.Type, bool) {
	if len(call.Args) != 2 {
		a.addError(call.Position, "async_import expects 2 arguments (path, table), got %d", len(call.Args))
		return types.Invalid, false
	}
	path := a.analyzeExpression(call.Args[0])
	if path.Kind != types.KindString && path.Kind != types.KindInvalid {
		a.addError(call.Args[0].Pos(), "async_import's first argument must be String, got %s", path.String())
	}
	table := a.analyzeExpression(call.Args[1])
	if table.Kind != types.KindTable {
		if table.Kind != types.KindInvalid {
			a.addError(call.Args[1].Pos(), "async_import's second argument must be a Table, got %s", table.String())
		}
		return types.Invalid, false
	}
	return types.RowOf(table.Columns...), true
}

// analyzePipeStage checks one non-print stage against the row schema
// flowing in (current) and returns the schema flowing out, classifying
// the stage by its function's declared return type (spec §4.4's table).
func (a *Analyzer) analyzePipeStage(stage ast.PipeStage, current types.Type) types.Type {
	b, found := a.lookup(stage.Function)
	if !found || !b.IsFunction {
		a.addError(stage.Position, "pipe stage calls undefined function '%s'", stage.Function)
		for _, arg := range stage.Args {
			a.analyzeExpression(arg)
		}
		return types.Invalid
	}

	sig := b.Sig
	if len(sig.Params) == 0 {
		a.addError(stage.Position, "pipe stage function '%s' must accept the piped value as its first parameter", stage.Function)
		for _, arg := range stage.Args {
			a.analyzeExpression(arg)
		}
		return types.Invalid
	}
	pipedParam := sig.Params[0]
	extra := sig.Params[1:]
	if len(stage.Args) != len(extra) {
		a.addError(stage.Position, "pipe stage '%s' expects %d extra argument(s), got %d", stage.Function, len(extra), len(stage.Args))
	}
	for i, arg := range stage.Args {
		got := a.analyzeExpression(arg)
		if i < len(extra) && !got.AssignableTo(extra[i]) {
			a.addError(arg.Pos(), "argument %d to pipe stage '%s' must be %s, got %s", i+1, stage.Function, extra[i].String(), got.String())
		}
	}

	ret := *sig.Return
	switch ret.Kind {
	case types.KindTable:
		return a.checkReduceStage(stage, pipedParam, current, ret)
	case types.KindBool:
		a.checkRowShapeMatches(stage, "filter", pipedParam, current)
		return current
	default:
		if ret.Kind != types.KindRow {
			a.addError(stage.Position, "pipe stage function '%s' must return Table, Bool, or Row, got %s", stage.Function, ret.String())
		}
		a.checkRowShapeMatches(stage, "map", pipedParam, current)
		return ret
	}
}

func (a *Analyzer) checkRowShapeMatches(stage ast.PipeStage, kind string, pipedParam, current types.Type) {
	if current.Kind == types.KindInvalid {
		return
	}
	if current.Kind != types.KindRow {
		a.addError(stage.Position, "%s stage '%s' requires an incoming Row, got %s", kind, stage.Function, current.String())
		return
	}
	if !pipedParam.Equal(current) {
		a.addError(stage.Position, "%s stage '%s' declared row schema %s does not match incoming schema %s", kind, stage.Function, pipedParam.String(), current.String())
	}
}

func (a *Analyzer) checkReduceStage(stage ast.PipeStage, pipedParam, current, ret types.Type) types.Type {
	if current.Kind == types.KindInvalid {
		return types.RowOf(ret.Columns...)
	}
	if pipedParam.Kind != types.KindTable {
		a.addError(stage.Position, "reduce stage '%s' must declare a Table parameter, got %s", stage.Function, pipedParam.String())
	} else if !pipedParam.Equal(types.TableOf(current.Columns...)) {
		a.addError(stage.Position, "reduce stage '%s' declared input table schema %s does not match incoming row schema %s", stage.Function, pipedParam.String(), current.String())
	}
	return types.RowOf(ret.Columns...)
}
