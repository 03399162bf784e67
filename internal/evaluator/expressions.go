package evaluator

import (
	"fmt"
	"math"

	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/env"
	"github.com/AAUP4-Projekt/wrench/internal/types"
	"github.com/AAUP4-Projekt/wrench/internal/values"
)

func (e *Evaluator) eval(expr ast.Expression, en *env.Environment) (values.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return values.Int(n.Value), nil
	case *ast.DoubleLiteral:
		return values.Double(n.Value), nil
	case *ast.BoolLiteral:
		return values.Bool(n.Value), nil
	case *ast.StringLiteral:
		return values.String(n.Value), nil
	case *ast.NullLiteral:
		return values.Null{}, nil
	case *ast.Identifier:
		return e.evalIdentifier(n, en)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, en)
	case *ast.BinaryOp:
		return e.evalBinaryOp(n, en)
	case *ast.UnaryOp:
		return e.evalUnaryOp(n, en)
	case *ast.IndexExpr:
		return e.evalIndexExpr(n, en)
	case *ast.ColumnExpr:
		return e.evalColumnExpr(n, en)
	case *ast.CallExpr:
		return e.evalCallExpr(n, en)
	case *ast.RowLiteral:
		return e.evalRowLiteral(n, en)
	case *ast.TableLiteral:
		return e.evalTableLiteral(n, en)
	case *ast.PipeExpr:
		return e.evalPipeExpr(n, en)
	default:
		return nil, fmt.Errorf("unhandled expression type %T", expr)
	}
}

// widen converts an Int value to Double when target expects Double,
// implementing the language's single widening rule at the point a value
// is bound to a known-typed slot (var/param/column). Narrowing never
// happens — the checker already rejected it.
func widen(v values.Value, target types.Type) values.Value {
	if target.Kind == types.KindDouble {
		if iv, ok := v.(values.Int); ok {
			return iv.AsDouble()
		}
	}
	return v
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier, en *env.Environment) (values.Value, error) {
	b, err := en.Lookup(n.Name)
	if err != nil {
		return nil, err
	}
	if b.IsFunction {
		return b.Closure, nil
	}
	return b.Value, nil
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, en *env.Environment) (values.Value, error) {
	items := make([]values.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.eval(el, en)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	elem := items[0].Type()
	for _, v := range items[1:] {
		if v.Type().Kind == types.KindDouble {
			elem = types.Double
		}
	}
	for i, v := range items {
		items[i] = widen(v, elem)
	}
	return values.NewArray(elem, items), nil
}

func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp, en *env.Environment) (values.Value, error) {
	left, err := e.eval(n.Left, en)
	if err != nil {
		return nil, err
	}

	if n.Operator == "or" || n.Operator == "and" {
		lb, ok := left.(values.Bool)
		if !ok {
			return nil, &values.RuntimeTypeError{Detail: fmt.Sprintf("'%s' requires Bool operands, got %s", n.Operator, left.Type())}
		}
		if n.Operator == "or" && bool(lb) {
			return values.Bool(true), nil
		}
		if n.Operator == "and" && !bool(lb) {
			return values.Bool(false), nil
		}
		right, err := e.eval(n.Right, en)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(values.Bool)
		if !ok {
			return nil, &values.RuntimeTypeError{Detail: fmt.Sprintf("'%s' requires Bool operands, got %s", n.Operator, right.Type())}
		}
		return rb, nil
	}

	right, err := e.eval(n.Right, en)
	if err != nil {
		return nil, err
	}

	if n.Operator == "+" {
		if ls, ok := left.(values.String); ok {
			rs, ok := right.(values.String)
			if !ok {
				return nil, &values.RuntimeTypeError{Detail: "cannot concatenate String with " + right.Type().String()}
			}
			return values.String(string(ls) + string(rs)), nil
		}
	}

	switch n.Operator {
	case "==", "!=":
		return values.Bool(equalityResult(n.Operator, left, right)), nil
	case "<", "<=", ">", ">=":
		return evalOrdering(n.Operator, left, right)
	default:
		return evalArithmetic(n.Operator, left, right)
	}
}

func equalityResult(op string, left, right values.Value) bool {
	eq := valuesEqual(left, right)
	if op == "!=" {
		return !eq
	}
	return eq
}

func valuesEqual(left, right values.Value) bool {
	if isNumeric(left) && isNumeric(right) {
		return values.AsNumeric(left) == values.AsNumeric(right)
	}
	switch l := left.(type) {
	case values.Bool:
		r, ok := right.(values.Bool)
		return ok && l == r
	case values.String:
		r, ok := right.(values.String)
		return ok && l == r
	case values.Null:
		_, ok := right.(values.Null)
		return ok
	default:
		return false
	}
}

func isNumeric(v values.Value) bool {
	switch v.(type) {
	case values.Int, values.Double:
		return true
	default:
		return false
	}
}

// evalOrdering handles `<`,`<=`,`>`,`>=`: numeric only, per spec §4.2's
// explicit text that ordering is numeric while String supports only
// equality.
func evalOrdering(op string, left, right values.Value) (values.Value, error) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, &values.RuntimeTypeError{Detail: fmt.Sprintf("operator '%s' requires numeric operands, got %s and %s", op, left.Type(), right.Type())}
	}
	l, r := values.AsNumeric(left), values.AsNumeric(right)
	cmp := 0
	switch {
	case l < r:
		cmp = -1
	case l > r:
		cmp = 1
	}
	return values.Bool(compareOrdering(op, cmp)), nil
}

func compareOrdering(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

func evalArithmetic(op string, left, right values.Value) (values.Value, error) {
	li, lIsInt := left.(values.Int)
	ri, rIsInt := right.(values.Int)
	if lIsInt && rIsInt {
		return evalIntArithmetic(op, li, ri)
	}
	if !isNumeric(left) || !isNumeric(right) {
		return nil, &values.RuntimeTypeError{Detail: fmt.Sprintf("operator '%s' requires numeric operands, got %s and %s", op, left.Type(), right.Type())}
	}
	l, r := values.AsNumeric(left), values.AsNumeric(right)
	switch op {
	case "+":
		return values.Double(l + r), nil
	case "-":
		return values.Double(l - r), nil
	case "*":
		return values.Double(l * r), nil
	case "/":
		if r == 0 {
			return nil, &values.DivisionByZeroError{}
		}
		return values.Double(l / r), nil
	case "**":
		return values.Double(math.Pow(l, r)), nil
	default:
		return nil, fmt.Errorf("unknown arithmetic operator %q", op)
	}
}

// evalIntArithmetic keeps both operands Int when neither is Double:
// `/` truncates toward zero (Go's integer division already does this),
// and `**` rejects a negative exponent at evaluation time per
// SPEC_FULL.md §C (the original draft's behavior — exponent sign is a
// runtime value, not something the checker can reject statically).
func evalIntArithmetic(op string, l, r values.Int) (values.Value, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, &values.DivisionByZeroError{}
		}
		return l / r, nil
	case "**":
		if r < 0 {
			return nil, &values.RuntimeTypeError{Detail: "negative exponent for integer power"}
		}
		return intPow(l, r), nil
	default:
		return nil, fmt.Errorf("unknown arithmetic operator %q", op)
	}
}

func intPow(base, exp values.Int) values.Int {
	result := values.Int(1)
	for i := values.Int(0); i < exp; i++ {
		result *= base
	}
	return result
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOp, en *env.Environment) (values.Value, error) {
	v, err := e.eval(n.Operand, en)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "not":
		b, ok := v.(values.Bool)
		if !ok {
			return nil, &values.RuntimeTypeError{Detail: "'not' requires a Bool operand, got " + v.Type().String()}
		}
		return values.Bool(!bool(b)), nil
	case "-":
		switch x := v.(type) {
		case values.Int:
			return -x, nil
		case values.Double:
			return -x, nil
		default:
			return nil, &values.RuntimeTypeError{Detail: "unary '-' requires a numeric operand, got " + v.Type().String()}
		}
	default:
		return nil, fmt.Errorf("unknown unary operator %q", n.Operator)
	}
}

func (e *Evaluator) evalIndexExpr(n *ast.IndexExpr, en *env.Environment) (values.Value, error) {
	target, err := e.eval(n.Target, en)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.eval(n.Index, en)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(values.Int)
	if !ok {
		return nil, &values.RuntimeTypeError{Detail: "array index must be Int, got " + idxVal.Type().String()}
	}
	arr, ok := target.(*values.Array)
	if !ok {
		return nil, &values.RuntimeTypeError{Detail: "cannot index into " + target.Type().String()}
	}
	return arr.At(int(idx))
}

func (e *Evaluator) evalColumnExpr(n *ast.ColumnExpr, en *env.Environment) (values.Value, error) {
	target, err := e.eval(n.Target, en)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *values.Row:
		v, ok := t.Get(n.Column)
		if !ok {
			return nil, &values.ColumnNotFoundError{Column: n.Column}
		}
		return v, nil
	case *values.TableRef:
		col, ok := t.Schema().Column(n.Column)
		if !ok {
			return nil, &values.ColumnNotFoundError{Column: n.Column}
		}
		return values.NewArray(col.Type, t.Column(n.Column)), nil
	default:
		return nil, &values.RuntimeTypeError{Detail: "column projection requires a Row or Table, got " + target.Type().String()}
	}
}

func (e *Evaluator) evalRowLiteral(n *ast.RowLiteral, en *env.Environment) (values.Value, error) {
	names := make([]string, len(n.Columns))
	vals := make([]values.Value, len(n.Columns))
	for i, col := range n.Columns {
		v, err := e.eval(n.Values[i], en)
		if err != nil {
			return nil, err
		}
		names[i] = col.Name
		vals[i] = widen(v, col.Type.Resolve())
	}
	return values.NewRow(n.Type(), names, vals), nil
}

func (e *Evaluator) evalTableLiteral(n *ast.TableLiteral, en *env.Environment) (values.Value, error) {
	return values.NewTable(n.Type()), nil
}
