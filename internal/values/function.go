package values

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// CapturedConstant is one const variable a closure captures from its
// point of declaration, alongside the functions it captures. Per spec
// §4.3, ordinary variables are invisible inside a function body — only
// functions and const variables survive from the declaration site to
// every call.
type CapturedConstant struct {
	Name  string
	Value Value
}

// Closure is a function value: the declaration it was created from plus
// the other functions and the const variables visible at the point of
// declaration. Ordinary variable bindings are never captured, and there
// is no owning back-pointer between closures, so recursive functions do
// not form a reference cycle.
type Closure struct {
	Decl          *ast.FunctionDecl
	Captured      []*Closure
	CapturedConst []CapturedConstant
}

func (c *Closure) Type() types.Type {
	params := make([]types.Type, len(c.Decl.Params))
	for i, p := range c.Decl.Params {
		params[i] = p.Type.Resolve()
	}
	return types.FunctionOf(c.Decl.ReturnType.Resolve(), params...)
}

func (c *Closure) String() string { return "<function " + c.Decl.Name + ">" }

// Name returns the function's declared name.
func (c *Closure) Name() string { return c.Decl.Name }
