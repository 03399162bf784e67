package ast

import (
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

// VarDecl is `var T name = e;` or `const T name = e;`.
type VarDecl struct {
	Position   token.Position
	Name       string
	Type       *TypeExpr
	Value      Expression
	IsConstant bool
}

func (*VarDecl) statementNode()     {}
func (n *VarDecl) Pos() token.Position { return n.Position }
func (n *VarDecl) String() string {
	kw := "var"
	if n.IsConstant {
		kw = "const"
	}
	return kw + " " + n.Type.String() + " " + n.Name + " = " + n.Value.String() + ";"
}

// Assignment is `name = e;`.
type Assignment struct {
	Position token.Position
	Name     string
	Value    Expression
}

func (*Assignment) statementNode()     {}
func (n *Assignment) Pos() token.Position { return n.Position }
func (n *Assignment) String() string      { return n.Name + " = " + n.Value.String() + ";" }

// ExprStatement is an expression evaluated for its side effects (a bare
// call, or a pipe chain used as a statement).
type ExprStatement struct {
	Position token.Position
	Value    Expression
}

func (*ExprStatement) statementNode()     {}
func (n *ExprStatement) Pos() token.Position { return n.Position }
func (n *ExprStatement) String() string      { return n.Value.String() + ";" }

// Block is `{ s1 s2 ... }`, a sequence of statements sharing one pushed
// scope.
type Block struct {
	Position   token.Position
	Statements []Statement
}

func (*Block) statementNode()     {}
func (n *Block) Pos() token.Position { return n.Position }
func (n *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range n.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStatement is `if (cond) { ... } else { ... }`; Alternative is nil when
// there is no else branch.
type IfStatement struct {
	Position    token.Position
	Condition   Expression
	Consequence *Block
	Alternative *Block
}

func (*IfStatement) statementNode()     {}
func (n *IfStatement) Pos() token.Position { return n.Position }
func (n *IfStatement) String() string {
	s := "if (" + n.Condition.String() + ") " + n.Consequence.String()
	if n.Alternative != nil {
		s += " else " + n.Alternative.String()
	}
	return s
}

// WhileStatement is `while (cond) { ... }`.
type WhileStatement struct {
	Position  token.Position
	Condition Expression
	Body      *Block
}

func (*WhileStatement) statementNode()     {}
func (n *WhileStatement) Pos() token.Position { return n.Position }
func (n *WhileStatement) String() string {
	return "while (" + n.Condition.String() + ") " + n.Body.String()
}

// ForStatement is `for (T x in e) { ... }`.
type ForStatement struct {
	Position   token.Position
	ElemType   *TypeExpr
	Variable   string
	Collection Expression
	Body       *Block
}

func (*ForStatement) statementNode()     {}
func (n *ForStatement) Pos() token.Position { return n.Position }
func (n *ForStatement) String() string {
	return "for (" + n.ElemType.String() + " " + n.Variable + " in " + n.Collection.String() + ") " + n.Body.String()
}

// ReturnStatement is `return e;`.
type ReturnStatement struct {
	Position token.Position
	Value    Expression
}

func (*ReturnStatement) statementNode()     {}
func (n *ReturnStatement) Pos() token.Position { return n.Position }
func (n *ReturnStatement) String() string {
	if n.Value == nil {
		return "return;"
	}
	return "return " + n.Value.String() + ";"
}
