package semantic

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s)
	case *ast.Assignment:
		a.analyzeAssignment(s)
	case *ast.ExprStatement:
		a.analyzeExpression(s.Value)
	case *ast.Block:
		a.pushScope()
		a.analyzeStatements(s.Statements)
		a.popScope()
	case *ast.IfStatement:
		a.analyzeIf(s)
	case *ast.WhileStatement:
		a.analyzeWhile(s)
	case *ast.ForStatement:
		a.analyzeFor(s)
	case *ast.ReturnStatement:
		a.analyzeReturn(s)
	case *ast.FunctionDecl:
		a.analyzeFunctionDecl(s)
	default:
		a.addError(stmt.Pos(), "unknown statement type %T", stmt)
	}
}

// analyzeStatements checks a block's statements in order. Per spec §8
// property 7 (function declarations may appear anywhere a statement
// may), a nested fn declares into the same scope the block already
// pushed, so a later statement in the same block can call it and an
// earlier one cannot — order-sensitive, exactly like every other
// declaration.
func (a *Analyzer) analyzeStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		a.analyzeStatement(s)
	}
}

func (a *Analyzer) analyzeVarDecl(s *ast.VarDecl) {
	declared := s.Type.Resolve()
	valueType := a.analyzeExpression(s.Value)
	if !valueType.AssignableTo(declared) {
		a.addError(s.Position, "cannot initialize %s %s with value of type %s", declared.String(), s.Name, valueType.String())
	}
	if !a.declare(s.Name, declared, s.IsConstant) {
		a.addError(s.Position, "identifier '%s' already declared", s.Name)
	}
}

func (a *Analyzer) analyzeAssignment(s *ast.Assignment) {
	valueType := a.analyzeExpression(s.Value)
	b, ok := a.lookup(s.Name)
	if !ok {
		a.addError(s.Position, "assignment to unknown identifier '%s'", s.Name)
		return
	}
	if b.IsFunction {
		a.addError(s.Position, "'%s' is a function and cannot be assigned to", s.Name)
		return
	}
	if b.IsConstant {
		a.addError(s.Position, "cannot assign to constant '%s'", s.Name)
		return
	}
	if !valueType.AssignableTo(b.Type) {
		a.addError(s.Position, "cannot assign value of type %s to %s of type %s", valueType.String(), s.Name, b.Type.String())
	}
}

func (a *Analyzer) analyzeIf(s *ast.IfStatement) {
	a.requireBool(s.Condition, "if condition")
	a.analyzeStatement(s.Consequence)
	if s.Alternative != nil {
		a.analyzeStatement(s.Alternative)
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStatement) {
	a.requireBool(s.Condition, "while condition")
	a.loopDepth++
	a.analyzeStatement(s.Body)
	a.loopDepth--
}

func (a *Analyzer) analyzeFor(s *ast.ForStatement) {
	collType := a.analyzeExpression(s.Collection)
	elemType := s.ElemType.Resolve()
	switch collType.Kind {
	case types.KindArray:
		if !collType.Elem.AssignableTo(elemType) {
			a.addError(s.Position, "for-loop variable type %s does not match array element type %s", elemType.String(), collType.Elem.String())
		}
	case types.KindTable:
		// Per spec §4.2, `for (T x in table)` iterates rows: T must be
		// the table's own Row(params) type.
		rowType := types.RowOf(collType.Columns...)
		if !rowType.Equal(elemType) {
			a.addError(s.Position, "for-loop variable type %s does not match table's row type %s", elemType.String(), rowType.String())
		}
	case types.KindRow:
		// Per spec §9 Open Questions, the draft's acceptance of `for`
		// over a bare Row is a bug; this checker rejects it outright.
		a.addError(s.Position, "cannot iterate over a Row value")
	case types.KindInvalid:
		// Already reported.
	default:
		a.addError(s.Position, "for-loop requires an Array or Table, got %s", collType.String())
	}

	a.pushScope()
	a.declare(s.Variable, elemType, false)
	a.loopDepth++
	a.analyzeStatements(s.Body.Statements)
	a.loopDepth--
	a.popScope()
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStatement) {
	if a.currentReturn == nil {
		a.addError(s.Position, "return statement outside of a function")
		return
	}
	var got types.Type
	if s.Value != nil {
		got = a.analyzeExpression(s.Value)
	} else {
		got = types.Null
	}
	if !got.AssignableTo(*a.currentReturn) {
		a.addError(s.Position, "function declared to return %s, got %s", a.currentReturn.String(), got.String())
	}
}

func (a *Analyzer) requireBool(expr ast.Expression, what string) {
	t := a.analyzeExpression(expr)
	if t.Kind != types.KindBool && t.Kind != types.KindInvalid {
		a.addError(expr.Pos(), "%s must be Bool, got %s", what, t.String())
	}
}
