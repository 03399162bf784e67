// Package ast defines the Abstract Syntax Tree node types the core
// consumes. Per spec §1, the lexical scanner and grammar-driven parser
// that produce this tree are external collaborators not covered here;
// this package is the boundary contract between that front end and the
// type checker / evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	// Pos returns the node's position in the source, for diagnostics.
	Pos() token.Position
	// String renders the node back to Wrench-like source, for debugging
	// and for `debug=true` AST dumps.
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a
// value for its enclosing context (though its evaluation may yield a
// Return sentinel, see internal/evaluator/result.go).
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: a flat, ordered sequence of top-level
// statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a bare name reference: a variable, constant, or function.
type Identifier struct {
	Position token.Position
	Name     string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) Pos() token.Position  { return i.Position }
func (i *Identifier) String() string       { return i.Name }

// TypeExpr is the syntax for a type annotation: a primitive name, an
// array (`[T]`), a table/row schema, or a function type. It mirrors
// internal/types.Type but at the syntax level, before the checker
// resolves it to a concrete types.Type.
type TypeExpr struct {
	Position token.Position

	Name string // "Int", "Double", "Bool", "String", "Null"

	Array *TypeExpr // non-nil for "[T]"

	// Table/Row column declarations, e.g. `table(Int id, String name)`.
	IsTable bool
	IsRow   bool
	Columns []ColumnDecl
}

// ColumnDecl is one `T name` pair inside a table()/row() type syntax or a
// function parameter list.
type ColumnDecl struct {
	Position token.Position
	Type     *TypeExpr
	Name     string
}

func (t *TypeExpr) Pos() token.Position { return t.Position }

func (t *TypeExpr) String() string {
	switch {
	case t.Array != nil:
		return "[" + t.Array.String() + "]"
	case t.IsTable, t.IsRow:
		kw := "row"
		if t.IsTable {
			kw = "table"
		}
		parts := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			parts[i] = c.Type.String() + " " + c.Name
		}
		return kw + "(" + strings.Join(parts, ", ") + ")"
	default:
		return t.Name
	}
}
