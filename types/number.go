package types

import (
	"fmt"
	"strconv"
)

// Number is a 64-bit IEEE-754 float (spec.md §3: "a 64-bit IEEE-754
// float"). SOC has no separate integer type; integer literals parse to
// Number and behave exactly like any other float.
type Number struct {
	Val float64
}

func NewNumber(v float64) Number { return Number{Val: v} }

func (n Number) Type() TypeCode { return TYPE_NUMBER }

func (n Number) String() string {
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

func (n Number) Equal(o Value) bool {
	other, ok := o.(Number)
	return ok && other.Val == n.Val
}

// Truthy: by convention, following the comparison operators that
// produce Boolean, a bare Number is truthy unless exactly zero.
func (n Number) Truthy() bool { return n.Val != 0 }

var _ fmt.Stringer = Number{}
