// Package semantic implements Wrench's single-pass static type checker:
// it walks the program the external parser produced and validates every
// declaration, assignment, call, and pipe stage against the types seen
// so far, widening Int to Double where the language allows it and
// rejecting everything else. Unlike the evaluator, it never executes
// anything — it only ever inspects shapes.
package semantic

import (
	"fmt"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// binding is a name's static type plus the declaration-kind flags the
// checker needs to reject illegal assignments and calls.
type binding struct {
	Type       types.Type
	IsConstant bool
	IsFunction bool
	Sig        types.Type // KindFunction signature, set when IsFunction
}

type scope struct {
	names map[string]binding
}

func newScope() *scope {
	return &scope{names: make(map[string]binding)}
}

// Analyzer performs the checker's single pass. It mirrors the shape of
// internal/env.Environment (a scope stack with no shadowing across the
// whole stack) but carries types instead of runtime values.
type Analyzer struct {
	scopes []*scope

	// currentReturn is the declared return type of the function body
	// currently being checked, or nil outside any function.
	currentReturn *types.Type

	// loopDepth tracks nesting of for/while, reserved for future
	// break/continue validation; Wrench has neither today.
	loopDepth int

	errors []string
}

// NewAnalyzer creates an analyzer with the global scope seeded with the
// four built-in functions (spec §4.2). Their signatures use types.Any
// where the built-in's real contract is polymorphic; analyzeCallExpr
// special-cases each by name rather than matching these signatures
// structurally.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{}
	a.pushScope()
	a.declareFunction("print", types.FunctionOf(types.Null, types.Any))
	a.declareFunction("import", types.FunctionOf(types.Any, types.String, types.Any))
	a.declareFunction("async_import", types.FunctionOf(types.Any, types.String, types.Any))
	a.declareFunction("table_add_row", types.FunctionOf(types.Null, types.Any, types.Any))
	return a
}

// Analyze type-checks an entire program and returns every error found, or
// nil if the program is well-typed. It never stops at the first error
// (spec §7: "the checker collects all errors in its single pass").
func Analyze(program *ast.Program) error {
	a := NewAnalyzer()
	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt)
	}
	if len(a.errors) == 0 {
		return nil
	}
	return &AnalysisError{Errors: a.errors}
}

func (a *Analyzer) addError(pos fmt.Stringer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, fmt.Sprintf("%s: %s", pos.String(), msg))
}

func (a *Analyzer) pushScope() { a.scopes = append(a.scopes, newScope()) }
func (a *Analyzer) popScope()  { a.scopes = a.scopes[:len(a.scopes)-1] }

func (a *Analyzer) visible(name string) bool {
	for _, s := range a.scopes {
		if _, ok := s.names[name]; ok {
			return true
		}
	}
	return false
}

func (a *Analyzer) declare(name string, t types.Type, isConstant bool) bool {
	if a.visible(name) {
		return false
	}
	a.scopes[len(a.scopes)-1].names[name] = binding{Type: t, IsConstant: isConstant}
	return true
}

func (a *Analyzer) declareFunction(name string, sig types.Type) bool {
	if a.visible(name) {
		return false
	}
	a.scopes[len(a.scopes)-1].names[name] = binding{Type: sig, IsFunction: true, Sig: sig}
	return true
}

func (a *Analyzer) lookup(name string) (binding, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if b, ok := a.scopes[i].names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}
