package evaluator

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/pipeline"
	"github.com/AAUP4-Projekt/wrench/internal/types"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// evalPipeExpr flattens the chain (spec §9, ast.Flatten), evaluates its
// initial expression and every stage's extra arguments in the calling
// environment, and hands the resolved stage list to internal/pipeline to
// actually run concurrently.
func (e *Evaluator) evalPipeExpr(n *ast.PipeExpr, en *env.Environment) (values.Value, error) {
	initial, flatStages := ast.Flatten(n)

	source, err := e.evalPipeSource(initial, en)
	if err != nil {
		return nil, err
	}

	stages := make([]pipeline.Stage, len(flatStages))
	for i, fs := range flatStages {
		st, err := e.buildStage(fs, en)
		if err != nil {
			return nil, err
		}
		stages[i] = st
	}

	return e.runPipeline(source, stages)
}

func (e *Evaluator) evalPipeSource(initial ast.Expression, en *env.Environment) (pipeline.Source, error) {
	if call, ok := initial.(*ast.CallExpr); ok && call.Function == "async_import" {
		return e.evalAsyncImportSource(call, en)
	}
	v, err := e.eval(initial, en)
	if err != nil {
		return pipeline.Source{}, err
	}
	table, ok := v.(*values.TableRef)
	if !ok {
		return pipeline.Source{}, &values.RuntimeTypeError{Detail: "pipe chain must start from a Table, got " + v.Type().String()}
	}
	return pipeline.Source{Table: table}, nil
}

func (e *Evaluator) evalAsyncImportSource(call *ast.CallExpr, en *env.Environment) (pipeline.Source, error) {
	if len(call.Args) != 2 {
		return pipeline.Source{}, &ArityError{Function: "async_import", Want: 2, Got: len(call.Args)}
	}
	pathVal, err := e.eval(call.Args[0], en)
	if err != nil {
		return pipeline.Source{}, err
	}
	path, ok := pathVal.(values.String)
	if !ok {
		return pipeline.Source{}, &CallTypeError{Function: "async_import", Detail: "first argument must be a String path"}
	}
	schemaVal, err := e.eval(call.Args[1], en)
	if err != nil {
		return pipeline.Source{}, err
	}
	table, ok := schemaVal.(*values.TableRef)
	if !ok {
		return pipeline.Source{}, &CallTypeError{Function: "async_import", Detail: "second argument must be a Table"}
	}
	return pipeline.Source{Async: &pipeline.AsyncImport{Path: string(path), Schema: table.Schema()}}, nil
}

func (e *Evaluator) buildStage(stage ast.PipeStage, en *env.Environment) (pipeline.Stage, error) {
	if stage.Function == "print" {
		return pipeline.Stage{Kind: pipeline.StagePrint, Name: "print"}, nil
	}
	b, err := en.Lookup(stage.Function)
	if err != nil {
		return pipeline.Stage{}, err
	}
	if !b.IsFunction {
		return pipeline.Stage{}, &NotAFunctionError{Name: stage.Function}
	}
	args, err := e.evalArgs(stage.Args, en)
	if err != nil {
		return pipeline.Stage{}, err
	}
	snapshotTableArgs(args)
	return pipeline.Stage{Kind: classifyStage(b.Closure), Name: stage.Function, Closure: b.Closure, Args: args}, nil
}

// snapshotTableArgs breaks aliasing on every Table-typed stage argument
// before it crosses into a pipeline worker goroutine, per spec §4.4: "any
// Table value passed as a stage argument is copied by value onto the
// stage worker." Stage arguments are evaluated once in the caller's
// environment but then called repeatedly, once per row, from a different
// goroutine than the one that evaluated them — without this, every call
// would share the caller's live, unsynchronized Table instead of an
// independent copy.
func snapshotTableArgs(args []values.Value) {
	for i, a := range args {
		if t, ok := a.(*values.TableRef); ok {
			args[i] = t.Snapshot()
		}
	}
}

// classifyStage mirrors internal/semantic's pipe-stage classification
// (spec §4.4's table) against the same declared return type, at
// run time instead of check time.
func classifyStage(closure *values.Closure) pipeline.StageKind {
	switch closure.Decl.ReturnType.Resolve().Kind {
	case types.KindTable:
		return pipeline.StageReduce
	case types.KindBool:
		return pipeline.StageFilter
	default:
		return pipeline.StageMap
	}
}
