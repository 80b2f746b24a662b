package types

// Unit is the sentinel returned by declarations (let/mut/import/export)
// per spec.md §3.
type Unit struct{}

func NewUnit() Unit { return Unit{} }

func (Unit) Type() TypeCode  { return TYPE_UNIT }
func (Unit) String() string  { return "unit" }
func (Unit) Truthy() bool    { return false }
func (u Unit) Equal(o Value) bool {
	_, ok := o.(Unit)
	return ok
}
