package semantic

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// analyzeExpression analyzes expr and returns its static type. It always
// returns a usable type — types.Invalid once an error has already been
// reported for this expression — so callers never need a nil check.
func (a *Analyzer) analyzeExpression(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return types.Int
	case *ast.DoubleLiteral:
		return types.Double
	case *ast.BoolLiteral:
		return types.Bool
	case *ast.StringLiteral:
		return types.String
	case *ast.NullLiteral:
		return types.Null
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(e)
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(e)
	case *ast.UnaryOp:
		return a.analyzeUnaryOp(e)
	case *ast.IndexExpr:
		return a.analyzeIndexExpr(e)
	case *ast.ColumnExpr:
		return a.analyzeColumnExpr(e)
	case *ast.CallExpr:
		return a.analyzeCallExpr(e)
	case *ast.RowLiteral:
		return a.analyzeRowLiteral(e)
	case *ast.TableLiteral:
		return a.analyzeTableLiteral(e)
	case *ast.PipeExpr:
		return a.analyzePipeExpr(e)
	default:
		a.addError(expr.Pos(), "unknown expression type %T", expr)
		return types.Invalid
	}
}

func (a *Analyzer) analyzeIdentifier(e *ast.Identifier) types.Type {
	b, ok := a.lookup(e.Name)
	if !ok {
		a.addError(e.Position, "undefined identifier '%s'", e.Name)
		return types.Invalid
	}
	return b.Type
}

func (a *Analyzer) analyzeArrayLiteral(e *ast.ArrayLiteral) types.Type {
	if len(e.Elements) == 0 {
		a.addError(e.Position, "empty array literal requires an explicit element type, which the checker cannot infer")
		return types.Invalid
	}
	elem := a.analyzeExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := a.analyzeExpression(el)
		if !t.AssignableTo(elem) {
			if elem.AssignableTo(t) {
				elem = t
				continue
			}
			a.addError(el.Pos(), "array element of type %s does not match preceding elements of type %s", t.String(), elem.String())
		}
	}
	return types.ArrayOf(elem)
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "**": true}

func (a *Analyzer) analyzeBinaryOp(e *ast.BinaryOp) types.Type {
	left := a.analyzeExpression(e.Left)
	right := a.analyzeExpression(e.Right)

	switch {
	case e.Operator == "or" || e.Operator == "and":
		if left.Kind != types.KindBool && left.Kind != types.KindInvalid {
			a.addError(e.Left.Pos(), "left operand of '%s' must be Bool, got %s", e.Operator, left.String())
		}
		if right.Kind != types.KindBool && right.Kind != types.KindInvalid {
			a.addError(e.Right.Pos(), "right operand of '%s' must be Bool, got %s", e.Operator, right.String())
		}
		return types.Bool

	case e.Operator == "+" && left.Kind == types.KindString:
		if right.Kind != types.KindString && right.Kind != types.KindInvalid {
			a.addError(e.Position, "cannot concatenate String with %s", right.String())
		}
		return types.String

	case arithmeticOps[e.Operator]:
		if !left.IsNumeric() || !right.IsNumeric() {
			if left.Kind != types.KindInvalid && right.Kind != types.KindInvalid {
				a.addError(e.Position, "operator '%s' requires numeric operands, got %s and %s", e.Operator, left.String(), right.String())
			}
			return types.Invalid
		}
		if left.Kind == types.KindDouble || right.Kind == types.KindDouble {
			return types.Double
		}
		return types.Int

	case comparisonOps[e.Operator]:
		if e.Operator == "==" || e.Operator == "!=" {
			if !left.AssignableTo(right) && !right.AssignableTo(left) {
				a.addError(e.Position, "cannot compare %s with %s", left.String(), right.String())
			}
			return types.Bool
		}
		// Per spec §4.2, ordering operators are numeric-only — unlike
		// equality, String does not support '<'/'<='/'>'/'>='.
		if left.Kind != types.KindInvalid && right.Kind != types.KindInvalid {
			if !left.IsNumeric() || !right.IsNumeric() {
				a.addError(e.Position, "operator '%s' requires numeric operands, got %s and %s", e.Operator, left.String(), right.String())
			}
		}
		return types.Bool

	default:
		a.addError(e.Position, "unknown operator '%s'", e.Operator)
		return types.Invalid
	}
}

func (a *Analyzer) analyzeUnaryOp(e *ast.UnaryOp) types.Type {
	t := a.analyzeExpression(e.Operand)
	switch e.Operator {
	case "not":
		if t.Kind != types.KindBool && t.Kind != types.KindInvalid {
			a.addError(e.Position, "'not' requires a Bool operand, got %s", t.String())
		}
		return types.Bool
	case "-":
		if !t.IsNumeric() && t.Kind != types.KindInvalid {
			a.addError(e.Position, "unary '-' requires a numeric operand, got %s", t.String())
			return types.Invalid
		}
		return t
	default:
		a.addError(e.Position, "unknown unary operator '%s'", e.Operator)
		return types.Invalid
	}
}

func (a *Analyzer) analyzeIndexExpr(e *ast.IndexExpr) types.Type {
	target := a.analyzeExpression(e.Target)
	idx := a.analyzeExpression(e.Index)
	if idx.Kind != types.KindInt && idx.Kind != types.KindInvalid {
		a.addError(e.Index.Pos(), "array index must be Int, got %s", idx.String())
	}
	if target.Kind == types.KindInvalid {
		return types.Invalid
	}
	if target.Kind != types.KindArray {
		a.addError(e.Target.Pos(), "cannot index into %s, expected an array", target.String())
		return types.Invalid
	}
	return *target.Elem
}

func (a *Analyzer) analyzeColumnExpr(e *ast.ColumnExpr) types.Type {
	target := a.analyzeExpression(e.Target)
	if target.Kind == types.KindInvalid {
		return types.Invalid
	}
	switch target.Kind {
	case types.KindRow:
		col, ok := target.Column(e.Column)
		if !ok {
			a.addError(e.Position, "row has no column '%s'", e.Column)
			return types.Invalid
		}
		return col.Type
	case types.KindTable:
		col, ok := target.Column(e.Column)
		if !ok {
			a.addError(e.Position, "table has no column '%s'", e.Column)
			return types.Invalid
		}
		return types.ArrayOf(col.Type)
	default:
		a.addError(e.Position, "column projection requires a Row or Table, got %s", target.String())
		return types.Invalid
	}
}

func (a *Analyzer) analyzeRowLiteral(e *ast.RowLiteral) types.Type {
	seen := make(map[string]bool, len(e.Columns))
	for i, col := range e.Columns {
		if seen[col.Name] {
			a.addError(col.Position, "duplicate column '%s' in row literal", col.Name)
		}
		seen[col.Name] = true

		declared := col.Type.Resolve()
		got := a.analyzeExpression(e.Values[i])
		if !got.AssignableTo(declared) {
			a.addError(e.Values[i].Pos(), "column '%s' declared as %s cannot be initialized with %s", col.Name, declared.String(), got.String())
		}
	}
	return e.Type()
}

func (a *Analyzer) analyzeTableLiteral(e *ast.TableLiteral) types.Type {
	seen := make(map[string]bool, len(e.Columns))
	for _, col := range e.Columns {
		if seen[col.Name] {
			a.addError(col.Position, "duplicate column '%s' in table schema", col.Name)
		}
		seen[col.Name] = true
	}
	return e.Type()
}
