package ast

import (
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

// FunctionDecl is `fn T name(T1 p1, T2 p2, ...) { body }`.
type FunctionDecl struct {
	Position   token.Position
	Name       string
	ReturnType *TypeExpr
	Params     []ColumnDecl // reused: (type, name) is exactly a Parameter
	Body       *Block
}

func (*FunctionDecl) statementNode()     {}
func (n *FunctionDecl) Pos() token.Position { return n.Position }
func (n *FunctionDecl) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return "fn " + n.ReturnType.String() + " " + n.Name + "(" + strings.Join(parts, ", ") + ") " + n.Body.String()
}
