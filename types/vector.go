package types

import "strings"

// Vector is an ordered, heterogeneous sequence of Values (spec.md §3),
// used whenever an array literal's elements are not uniformly numeric.
// Uniformly-numeric literals are promoted to TensorVal at construction
// time instead (see parser/eval array-literal handling).
type Vector struct {
	Elements []Value
}

func NewVector(elems []Value) Vector { return Vector{Elements: elems} }

func (v Vector) Type() TypeCode { return TYPE_VECTOR }

func (v Vector) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Vector) Equal(o Value) bool {
	other, ok := o.(Vector)
	if !ok || len(other.Elements) != len(v.Elements) {
		return false
	}
	for i := range v.Elements {
		if !v.Elements[i].Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

func (v Vector) Truthy() bool { return len(v.Elements) > 0 }

// Len, Get (0-based) are convenience accessors used by indexing and the
// HOF handlers (map/filter/reduce).
func (v Vector) Len() int { return len(v.Elements) }

func (v Vector) Get(i int) (Value, bool) {
	if i < 0 || i >= len(v.Elements) {
		return nil, false
	}
	return v.Elements[i], true
}

// Set returns a new Vector (copy-on-write) with index i replaced.
func (v Vector) Set(i int, val Value) Vector {
	elems := make([]Value, len(v.Elements))
	copy(elems, v.Elements)
	elems[i] = val
	return Vector{Elements: elems}
}

// Append returns a new Vector with val appended.
func (v Vector) Append(val Value) Vector {
	elems := make([]Value, len(v.Elements)+1)
	copy(elems, v.Elements)
	elems[len(v.Elements)] = val
	return Vector{Elements: elems}
}
