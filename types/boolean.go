package types

// Boolean is SOC's true/false value.
type Boolean struct {
	Val bool
}

func NewBoolean(v bool) Boolean { return Boolean{Val: v} }

func (b Boolean) Type() TypeCode { return TYPE_BOOLEAN }

func (b Boolean) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

func (b Boolean) Equal(o Value) bool {
	other, ok := o.(Boolean)
	return ok && other.Val == b.Val
}

func (b Boolean) Truthy() bool { return b.Val }
