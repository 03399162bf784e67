package semantic

import (
	"github.com/AAUP4-Projekt/wrench/internal/ast"
	"github.com/AAUP4-Projekt/wrench/internal/types"
)

func (a *Analyzer) analyzeFunctionDecl(s *ast.FunctionDecl) {
	sig := functionSignature(s)
	if !a.declareFunction(s.Name, sig) {
		a.addError(s.Position, "identifier '%s' already declared", s.Name)
	}

	// Per spec §4.2/§4.3, a function body sees only the functions and
	// const variables visible at its declaration point — exactly what the
	// evaluator's closures capture (internal/env.CaptureFunctions and
	// CaptureConstants); ordinary variables are not carried into a call. The
	// checker must isolate the same way rather than reusing the ambient
	// scope stack, or it would accept bodies that read outer non-const
	// variables the evaluator can never actually see.
	outerScopes := a.scopes
	isolated := newScope()
	for _, sc := range outerScopes {
		for name, b := range sc.names {
			if b.IsFunction || b.IsConstant {
				isolated.names[name] = b
			}
		}
	}
	a.scopes = []*scope{isolated}

	a.pushScope()
	for _, p := range s.Params {
		if !a.declare(p.Name, p.Type.Resolve(), false) {
			a.addError(p.Position, "duplicate parameter name '%s'", p.Name)
		}
	}

	retType := s.ReturnType.Resolve()
	outerReturn := a.currentReturn
	a.currentReturn = &retType
	a.analyzeStatements(s.Body.Statements)
	a.currentReturn = outerReturn

	a.popScope()
	a.scopes = outerScopes
}

func functionSignature(s *ast.FunctionDecl) types.Type {
	params := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Type.Resolve()
	}
	ret := s.ReturnType.Resolve()
	return types.FunctionOf(ret, params...)
}
