// Package env implements Wrench's lexical environment: a stack of scopes
// mapping names to variable or function bindings, with the language's
// strict no-shadowing declaration discipline and the capture-functions
// operation closures need.
package env

import (
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// Binding is a single visible name: either a mutable/constant Variable or
// a Function closure. Exactly one of Value/Closure is set, selected by
// IsFunction.
type Binding struct {
	Name       string
	IsFunction bool

	// Variable fields.
	Value      values.Value
	IsConstant bool

	// Function field.
	Closure *values.Closure
}

type scope struct {
	names map[string]*Binding
}

func newScope() *scope {
	return &scope{names: make(map[string]*Binding)}
}

// Environment is a stack of lexical scopes. Per spec §4.1, names are
// unique across the *entire* stack at declaration time — there is no
// shadowing, ever — so Declare checks every scope, not just the
// innermost one.
type Environment struct {
	scopes []*scope
}

// New creates a fresh environment with its global scope already pushed,
// matching spec §4.1's "create empty environment, then push scope at
// least once before any use."
func New() *Environment {
	return &Environment{scopes: []*scope{newScope()}}
}

// PushScope opens a new, innermost scope. Callers must balance every
// PushScope with exactly one PopScope on every exit path (spec §8
// property 1: scope balance), including early Return/break paths.
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, newScope())
}

// PopScope closes the innermost scope.
func (e *Environment) PopScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Declare inserts binding into the innermost scope. It fails with
// RedeclarationError if the name is already visible in any scope on the
// stack, implementing the language's disallow-shadowing semantics.
func (e *Environment) Declare(binding *Binding) error {
	if e.visible(binding.Name) {
		return &RedeclarationError{Name: binding.Name}
	}
	innermost := e.scopes[len(e.scopes)-1]
	innermost.names[binding.Name] = binding
	return nil
}

// Lookup returns the innermost binding for name, searching outward
// through enclosing scopes. Because declarations are unique across the
// whole stack, there is at most one binding to find.
func (e *Environment) Lookup(name string) (*Binding, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].names[name]; ok {
			return b, nil
		}
	}
	return nil, &UnknownIdentifierError{Name: name}
}

// Update sets the value of the nearest visible Variable binding named
// name. It fails with UnknownIdentifierError if no such binding exists,
// NotAVariableError if the binding is a function, and
// ConstAssignmentError if the variable is constant.
func (e *Environment) Update(name string, value values.Value) error {
	b, err := e.Lookup(name)
	if err != nil {
		return err
	}
	if b.IsFunction {
		return &NotAVariableError{Name: name}
	}
	if b.IsConstant {
		return &ConstAssignmentError{Name: name}
	}
	b.Value = value
	return nil
}

// visible reports whether name is already bound in any scope on the
// stack, regardless of kind.
func (e *Environment) visible(name string) bool {
	for _, s := range e.scopes {
		if _, ok := s.names[name]; ok {
			return true
		}
	}
	return false
}

// CaptureFunctions returns every function binding currently visible
// across the whole scope stack, as a snapshot for a new closure record.
// Together with CaptureConstants, this is all the state a function
// closure captures.
func (e *Environment) CaptureFunctions() []*values.Closure {
	var out []*values.Closure
	for _, s := range e.scopes {
		for _, b := range s.names {
			if b.IsFunction {
				out = append(out, b.Closure)
			}
		}
	}
	return out
}

// CaptureConstants returns every const variable binding currently
// visible across the whole scope stack, alongside CaptureFunctions —
// spec §4.3's other kind of state a function closure is allowed to see
// ("variables ... visible inside functions only if declared const").
func (e *Environment) CaptureConstants() []values.CapturedConstant {
	var out []values.CapturedConstant
	for _, s := range e.scopes {
		for _, b := range s.names {
			if !b.IsFunction && b.IsConstant {
				out = append(out, values.CapturedConstant{Name: b.Name, Value: b.Value})
			}
		}
	}
	return out
}

// NewCall builds the fresh environment a function call executes against:
// the closure's captured const variables and function set plus a
// self-binding under funcName to support recursion, all in its one global
// scope (spec §4.3, "function calls"). It does not bind the arguments;
// the caller pushes a scope of its own for them.
func NewCall(funcName string, closure *values.Closure, captured []*values.Closure, constants []values.CapturedConstant) *Environment {
	e := New()
	for _, c := range constants {
		_ = e.Declare(&Binding{Name: c.Name, Value: c.Value, IsConstant: true})
	}
	for _, c := range captured {
		// Captured functions were already unique at declaration time; the
		// self-binding below is inserted after, so a recursive function's
		// own (pre-call) capture never includes itself.
		_ = e.Declare(&Binding{Name: c.Name(), IsFunction: true, Closure: c})
	}
	_ = e.Declare(&Binding{Name: funcName, IsFunction: true, Closure: closure})
	return e
}
