package types

import "strconv"

// String is an immutable UTF-8 sequence (spec.md §3).
type String struct {
	Val string
}

func NewString(v string) String { return String{Val: v} }

func (s String) Type() TypeCode { return TYPE_STRING }

// String returns the quoted source-form representation; use .Val for
// the raw contents.
func (s String) String() string { return strconv.Quote(s.Val) }

func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && other.Val == s.Val
}

func (s String) Truthy() bool { return s.Val != "" }
