package values

import (
	"strings"

	"github.com/AAUP4-Projekt/wrench/internal/types"
)

// Array is an ordered, homogeneous sequence of values. The element type is
// fixed at construction (per the type checker's "non-empty, single
// element type" rule); an empty array still carries the element type it
// was declared/inferred with so indexing and further type checks work.
type Array struct {
	elem  types.Type
	items []Value
}

// NewArray builds an Array of the given element type from items. The
// caller is responsible for having type-checked that every item matches
// elem (per spec's array typing rule).
func NewArray(elem types.Type, items []Value) *Array {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &Array{elem: elem, items: cp}
}

func (a *Array) Type() types.Type { return types.ArrayOf(a.elem) }

func (a *Array) String() string {
	parts := make([]string, len(a.items))
	for i, v := range a.items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// At returns the element at index i, or an IndexOutOfBoundsError if i is
// outside [0, Len()).
func (a *Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.items) {
		return nil, &IndexOutOfBoundsError{Index: i, Length: len(a.items)}
	}
	return a.items[i], nil
}

// Items returns the underlying slice. Callers must treat it as read-only;
// it is not copied for performance since arrays are not shared across
// pipe-worker boundaries (only Table values are).
func (a *Array) Items() []Value { return a.items }
