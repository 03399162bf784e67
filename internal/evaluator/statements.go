package evaluator

import (
	"fmt"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

// execStatements runs stmts in order against en, stopping and
// propagating the first Return or error (spec §8 property 7: statements
// run in declared order, so a function declared partway through a block
// is only visible to statements after it).
func (e *Evaluator) execStatements(stmts []ast.Statement, en *env.Environment) (outcome, error) {
	for _, s := range stmts {
		out, err := e.execStatement(s, en)
		if err != nil {
			return none, err
		}
		if out.isReturn() {
			return out, nil
		}
	}
	return none, nil
}

func (e *Evaluator) execStatement(stmt ast.Statement, en *env.Environment) (outcome, error) {
	pos := stmt.Pos()
	e.trace("%d:%d: %T", pos.Line, pos.Column, stmt)
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return none, e.execVarDecl(s, en)
	case *ast.Assignment:
		return none, e.execAssignment(s, en)
	case *ast.ExprStatement:
		_, err := e.eval(s.Value, en)
		return none, err
	case *ast.Block:
		en.PushScope()
		out, err := e.execStatements(s.Statements, en)
		en.PopScope()
		return out, err
	case *ast.IfStatement:
		return e.execIf(s, en)
	case *ast.WhileStatement:
		return e.execWhile(s, en)
	case *ast.ForStatement:
		return e.execFor(s, en)
	case *ast.ReturnStatement:
		return e.execReturn(s, en)
	case *ast.FunctionDecl:
		return none, e.execFunctionDecl(s, en)
	default:
		return none, fmt.Errorf("unhandled statement type %T", stmt)
	}
}

func (e *Evaluator) execVarDecl(s *ast.VarDecl, en *env.Environment) error {
	v, err := e.eval(s.Value, en)
	if err != nil {
		return err
	}
	v = widen(v, s.Type.Resolve())
	return en.Declare(&env.Binding{Name: s.Name, Value: v, IsConstant: s.IsConstant})
}

// execAssignment widens an Int value to Double when the binding it is
// replacing already holds a Double — env.Binding carries no separate
// static type, so the existing runtime value's tag is the only record
// of the variable's declared width.
func (e *Evaluator) execAssignment(s *ast.Assignment, en *env.Environment) error {
	v, err := e.eval(s.Value, en)
	if err != nil {
		return err
	}
	if b, lookupErr := en.Lookup(s.Name); lookupErr == nil && !b.IsFunction {
		if _, isDouble := b.Value.(values.Double); isDouble {
			v = widen(v, b.Value.Type())
		}
	}
	return en.Update(s.Name, v)
}

func (e *Evaluator) execIf(s *ast.IfStatement, en *env.Environment) (outcome, error) {
	cond, err := e.eval(s.Condition, en)
	if err != nil {
		return none, err
	}
	b, ok := cond.(values.Bool)
	if !ok {
		return none, &values.RuntimeTypeError{Detail: fmt.Sprintf("if condition must be Bool, got %s", cond.Type())}
	}
	if bool(b) {
		return e.execStatement(s.Consequence, en)
	}
	if s.Alternative != nil {
		return e.execStatement(s.Alternative, en)
	}
	return none, nil
}

func (e *Evaluator) execWhile(s *ast.WhileStatement, en *env.Environment) (outcome, error) {
	for {
		cond, err := e.eval(s.Condition, en)
		if err != nil {
			return none, err
		}
		b, ok := cond.(values.Bool)
		if !ok {
			return none, &values.RuntimeTypeError{Detail: fmt.Sprintf("while condition must be Bool, got %s", cond.Type())}
		}
		if !bool(b) {
			return none, nil
		}
		en.PushScope()
		out, err := e.execStatements(s.Body.Statements, en)
		en.PopScope()
		if err != nil {
			return none, err
		}
		if out.isReturn() {
			return out, nil
		}
	}
}

func (e *Evaluator) execFor(s *ast.ForStatement, en *env.Environment) (outcome, error) {
	collVal, err := e.eval(s.Collection, en)
	if err != nil {
		return none, err
	}
	switch coll := collVal.(type) {
	case *values.Array:
		for i := 0; i < coll.Len(); i++ {
			item, err := coll.At(i)
			if err != nil {
				return none, err
			}
			out, err := e.runForBody(s, item, en)
			if err != nil {
				return none, err
			}
			if out.isReturn() {
				return out, nil
			}
		}
		return none, nil
	case *values.TableRef:
		for _, row := range coll.Rows() {
			out, err := e.runForBody(s, row, en)
			if err != nil {
				return none, err
			}
			if out.isReturn() {
				return out, nil
			}
		}
		return none, nil
	default:
		return none, &values.RuntimeTypeError{Detail: fmt.Sprintf("for-loop requires an Array or Table, got %s", collVal.Type())}
	}
}

func (e *Evaluator) runForBody(s *ast.ForStatement, item values.Value, en *env.Environment) (outcome, error) {
	en.PushScope()
	if err := en.Declare(&env.Binding{Name: s.Variable, Value: item}); err != nil {
		en.PopScope()
		return none, err
	}
	out, err := e.execStatements(s.Body.Statements, en)
	en.PopScope()
	return out, err
}

func (e *Evaluator) execReturn(s *ast.ReturnStatement, en *env.Environment) (outcome, error) {
	if s.Value == nil {
		return returning(values.Null{}), nil
	}
	v, err := e.eval(s.Value, en)
	if err != nil {
		return none, err
	}
	return returning(v), nil
}

// execFunctionDecl declares a closure capturing every function visible
// at this point, plus every const variable (spec §4.3: ordinary
// variables are resupplied fresh at every call, but const variables are
// visible from the declaration site onward).
func (e *Evaluator) execFunctionDecl(s *ast.FunctionDecl, en *env.Environment) error {
	closure := &values.Closure{Decl: s, Captured: en.CaptureFunctions(), CapturedConst: en.CaptureConstants()}
	return en.Declare(&env.Binding{Name: s.Name, IsFunction: true, Closure: closure})
}
