package evaluator

import (
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// call invokes a user-declared function with already-evaluated
// arguments: a fresh environment seeded from the closure's captured
// function set plus a self-binding for recursion, then one scope
// holding the bound arguments (spec §4.3, "function calls").
func (e *Evaluator) call(closure *values.Closure, args []values.Value) (values.Value, error) {
	if len(args) != len(closure.Decl.Params) {
		return nil, &ArityError{Function: closure.Name(), Want: len(closure.Decl.Params), Got: len(args)}
	}

	callEnv := env.NewCall(closure.Name(), closure, closure.Captured, closure.CapturedConst)
	callEnv.PushScope()
	for i, p := range closure.Decl.Params {
		v := widen(args[i], p.Type.Resolve())
		if err := callEnv.Declare(&env.Binding{Name: p.Name, Value: v}); err != nil {
			callEnv.PopScope()
			return nil, err
		}
	}

	out, err := e.execStatements(closure.Decl.Body.Statements, callEnv)
	callEnv.PopScope()
	if err != nil {
		return nil, err
	}
	if out.isReturn() {
		return out.value, nil
	}
	return values.Null{}, nil
}
