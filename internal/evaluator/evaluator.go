// Package evaluator tree-walks a type-checked Wrench program: statements
// (declarations, assignment, blocks, if/while/for, return), expressions
// (arithmetic, comparison, logical, indexing, column projection, calls),
// function calls through internal/env's closure/call-environment model,
// and pipe chains via internal/pipeline.
//
// It assumes its input already passed internal/semantic's checker, so it
// never itself validates static types — every error this package returns
// is one of spec.md §7's runtime error kinds (division by zero, index out
// of bounds, a CSV import failure, ...), not a type mismatch. Unlike the
// teacher's interpreter, which signals failure and early-return with an
// `isError(Value)` sentinel plus boolean flags threaded through every
// Eval call, this package uses plain Go `(value, error)` returns for
// failure and a small `outcome` sentinel (result.go) only for the one
// kind of early exit Wrench actually has: `return`.
package evaluator

import (
	"context"
	"io"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/csvsource"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/pipeline"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// Evaluator executes a program against a fresh global environment.
type Evaluator struct {
	// Output is where `print` (both the builtin and a pipe's terminal
	// print stage) writes.
	Output io.Writer

	// Trace, when non-nil, receives a line of execution trace per
	// statement, for the CLI's `debug=true` mode. Pipe stages are not
	// traced individually.
	Trace func(format string, args ...any)
}

// New creates an Evaluator writing `print` output to out.
func New(out io.Writer) *Evaluator {
	return &Evaluator{Output: out}
}

// Run executes a whole program's top-level statements in a fresh global
// environment. A top-level `return` is accepted and simply ends
// execution early, mirroring a function body with an implicit outermost
// call.
func (e *Evaluator) Run(program *ast.Program) error {
	genv := env.New()
	_, err := e.execStatements(program.Statements, genv)
	return err
}

func (e *Evaluator) trace(format string, args ...any) {
	if e.Trace != nil {
		e.Trace(format, args...)
	}
}

func (e *Evaluator) runPipeline(source pipeline.Source, stages []pipeline.Stage) (values.Value, error) {
	return pipeline.Run(context.Background(), source, stages, e.call, csvsource.Stream, e.Output)
}
