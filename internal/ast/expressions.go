package ast

import (
	"strconv"
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

// IntLiteral is an integer literal.
type IntLiteral struct {
	Position token.Position
	Value    int32
}

func (*IntLiteral) expressionNode()     {}
func (n *IntLiteral) Pos() token.Position { return n.Position }
func (n *IntLiteral) String() string      { return strconv.FormatInt(int64(n.Value), 10) }

// DoubleLiteral is a floating-point literal.
type DoubleLiteral struct {
	Position token.Position
	Value    float64
}

func (*DoubleLiteral) expressionNode()     {}
func (n *DoubleLiteral) Pos() token.Position { return n.Position }
func (n *DoubleLiteral) String() string      { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (*BoolLiteral) expressionNode()     {}
func (n *BoolLiteral) Pos() token.Position { return n.Position }
func (n *BoolLiteral) String() string      { return strconv.FormatBool(n.Value) }

// StringLiteral is a string literal with escapes already resolved by the
// external lexer.
type StringLiteral struct {
	Position token.Position
	Value    string
}

func (*StringLiteral) expressionNode()     {}
func (n *StringLiteral) Pos() token.Position { return n.Position }
func (n *StringLiteral) String() string      { return strconv.Quote(n.Value) }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Position token.Position
}

func (*NullLiteral) expressionNode()     {}
func (n *NullLiteral) Pos() token.Position { return n.Position }
func (n *NullLiteral) String() string      { return "null" }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Position token.Position
	Elements []Expression
}

func (*ArrayLiteral) expressionNode()     {}
func (n *ArrayLiteral) Pos() token.Position { return n.Position }
func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BinaryOp is a binary arithmetic/comparison/logical expression.
type BinaryOp struct {
	Position token.Position
	Operator string // "+","-","*","/","**","==","!=","<","<=",">",">=","or","and"
	Left     Expression
	Right    Expression
}

func (*BinaryOp) expressionNode()     {}
func (n *BinaryOp) Pos() token.Position { return n.Position }
func (n *BinaryOp) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}

// UnaryOp is a prefix unary expression: logical `not` or numeric negation.
type UnaryOp struct {
	Position token.Position
	Operator string // "not", "-"
	Operand  Expression
}

func (*UnaryOp) expressionNode()     {}
func (n *UnaryOp) Pos() token.Position { return n.Position }
func (n *UnaryOp) String() string      { return "(" + n.Operator + " " + n.Operand.String() + ")" }

// IndexExpr is `e[i]`.
type IndexExpr struct {
	Position token.Position
	Target   Expression
	Index    Expression
}

func (*IndexExpr) expressionNode()     {}
func (n *IndexExpr) Pos() token.Position { return n.Position }
func (n *IndexExpr) String() string      { return n.Target.String() + "[" + n.Index.String() + "]" }

// ColumnExpr is `e.col`: projection of a row's cell, or of a table's
// column (producing an Array of the column's values).
type ColumnExpr struct {
	Position token.Position
	Target   Expression
	Column   string
}

func (*ColumnExpr) expressionNode()     {}
func (n *ColumnExpr) Pos() token.Position { return n.Position }
func (n *ColumnExpr) String() string      { return n.Target.String() + "." + n.Column }

// CallExpr is a function call `name(args...)`, including calls to the
// built-ins (print, import, async_import, table_add_row).
type CallExpr struct {
	Position token.Position
	Function string
	Args     []Expression
}

func (*CallExpr) expressionNode()     {}
func (n *CallExpr) Pos() token.Position { return n.Position }
func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Function + "(" + strings.Join(parts, ", ") + ")"
}

// RowLiteral is `row(T a = e, ...)`.
type RowLiteral struct {
	Position token.Position
	Columns  []ColumnDecl // declared types/names, for the checker
	Values   []Expression // initializer expression per column, same order
}

func (*RowLiteral) expressionNode()     {}
func (n *RowLiteral) Pos() token.Position { return n.Position }
func (n *RowLiteral) String() string {
	parts := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		parts[i] = c.Type.String() + " " + c.Name + " = " + n.Values[i].String()
	}
	return "row(" + strings.Join(parts, ", ") + ")"
}

// TableLiteral is `table(T a, T b, ...)`: an empty table of the declared
// schema.
type TableLiteral struct {
	Position token.Position
	Columns  []ColumnDecl
}

func (*TableLiteral) expressionNode()     {}
func (n *TableLiteral) Pos() token.Position { return n.Position }
func (n *TableLiteral) String() string {
	parts := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		parts[i] = c.Type.String() + " " + c.Name
	}
	return "table(" + strings.Join(parts, ", ") + ")"
}

// PipeExpr is one `pipe f(args...)` link in a pipe chain. Per spec §9, the
// parser builds pipe chains right-leaning: each PipeExpr's Left is either
// the chain's initial expression or another, shallower PipeExpr. Args
// never includes the piped-in value itself, only the call's own
// arguments. Flatten walks this structure bottom-up into the ordered
// stage list the pipe engine executes (see PipeStage in this package).
type PipeExpr struct {
	Position token.Position
	Left     Expression // the previous chain (Expression or *PipeExpr)
	Function string
	Args     []Expression
}

func (*PipeExpr) expressionNode()     {}
func (n *PipeExpr) Pos() token.Position { return n.Position }
func (n *PipeExpr) String() string {
	var sb strings.Builder
	sb.WriteString(n.Left.String())
	sb.WriteString(" pipe ")
	sb.WriteString(n.Function)
	sb.WriteString("(")
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	return sb.String()
}

// PipeStage is one flattened stage: a function name plus its own
// arguments (excluding the piped row/table, which is supplied by the
// engine at call time).
type PipeStage struct {
	Position token.Position
	Function string
	Args     []Expression
}

// Flatten walks a right-leaning PipeExpr chain bottom-up and returns the
// chain's initial expression together with the ordered stage list — a
// single pass, as spec §9 requires ("flatten it in a single bottom-up
// walk").
func Flatten(p *PipeExpr) (initial Expression, stages []PipeStage) {
	var walk func(e Expression)
	walk = func(e Expression) {
		if next, ok := e.(*PipeExpr); ok {
			walk(next.Left)
			stages = append(stages, PipeStage{Position: next.Position, Function: next.Function, Args: next.Args})
			return
		}
		initial = e
	}
	walk(p)
	return initial, stages
}
