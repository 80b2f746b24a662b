package types

import "fmt"

// Complex is an ordered pair of floats (re, im) (spec.md §3).
type Complex struct {
	Re, Im float64
}

func NewComplex(re, im float64) Complex { return Complex{Re: re, Im: im} }

func (c Complex) Type() TypeCode { return TYPE_COMPLEX }

func (c Complex) String() string {
	switch {
	case c.Im == 0:
		return fmt.Sprintf("%g", c.Re)
	case c.Re == 0:
		return fmt.Sprintf("%gi", c.Im)
	case c.Im < 0:
		return fmt.Sprintf("%g%gi", c.Re, c.Im)
	default:
		return fmt.Sprintf("%g+%gi", c.Re, c.Im)
	}
}

func (c Complex) Equal(o Value) bool {
	other, ok := o.(Complex)
	return ok && other.Re == c.Re && other.Im == c.Im
}

func (c Complex) Truthy() bool { return c.Re != 0 || c.Im != 0 }

func (c Complex) AsGo() complex128 { return complex(c.Re, c.Im) }

func FromGoComplex(c complex128) Complex { return Complex{Re: real(c), Im: imag(c)} }
