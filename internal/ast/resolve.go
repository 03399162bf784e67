package ast

import "github.com/AAUP4-Projekt/wrench/internal/types"

// Resolve converts the parsed type syntax into the static types.Type it
// denotes. Both the checker and the evaluator call this on the same
// TypeExpr nodes, so a table/row/array's runtime schema always matches
// what the checker validated.
func (t *TypeExpr) Resolve() types.Type {
	switch {
	case t.Array != nil:
		return types.ArrayOf(t.Array.Resolve())
	case t.IsTable:
		return types.TableOf(resolveColumns(t.Columns)...)
	case t.IsRow:
		return types.RowOf(resolveColumns(t.Columns)...)
	default:
		switch t.Name {
		case "Int":
			return types.Int
		case "Double":
			return types.Double
		case "Bool":
			return types.Bool
		case "String":
			return types.String
		case "Null":
			return types.Null
		default:
			return types.Type{}
		}
	}
}

// Type returns the Row(...) schema this literal constructs.
func (n *RowLiteral) Type() types.Type {
	return types.RowOf(resolveColumns(n.Columns)...)
}

// Type returns the Table(...) schema this literal constructs.
func (n *TableLiteral) Type() types.Type {
	return types.TableOf(resolveColumns(n.Columns)...)
}

func resolveColumns(decls []ColumnDecl) []types.Parameter {
	out := make([]types.Parameter, len(decls))
	for i, d := range decls {
		out[i] = types.Parameter{Type: d.Type.Resolve(), Name: d.Name}
	}
	return out
}
