package types

import "fmt"

// Edge is a triple (from_id, to_id, directed?) plus a properties
// record (spec.md §3). from_id/to_id are bare identifiers captured as
// strings at parse/eval time — the identifiers on either side of `->`
// or `--` are never evaluated as variable references (spec.md §4.6).
type Edge struct {
	From, To string
	Directed bool
	Meta     Record
}

func NewEdge(from, to string, directed bool, meta Record) Edge {
	return Edge{From: from, To: to, Directed: directed, Meta: meta}
}

func (e Edge) Type() TypeCode { return TYPE_EDGE }

func (e Edge) String() string {
	op := "--"
	if e.Directed {
		op = "->"
	}
	if e.Meta.Len() == 0 {
		return fmt.Sprintf("%s %s %s", e.From, op, e.To)
	}
	return fmt.Sprintf("%s %s %s: %s", e.From, op, e.To, e.Meta.String())
}

func (e Edge) Equal(o Value) bool {
	other, ok := o.(Edge)
	return ok && e.From == other.From && e.To == other.To &&
		e.Directed == other.Directed && e.Meta.Equal(other.Meta)
}

func (e Edge) Truthy() bool { return true }
