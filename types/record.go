package types

import "strings"

// Record is an ordered name -> Value mapping (spec.md §3). Insertion
// order is preserved for iteration; lookup is by name. Records are
// structural: equality and field access never consult a declared type.
//
// Construction is copy-on-write, mirroring the teacher's goMap
// (types/map.go in the teacher): every mutating operation returns a
// fresh Record rather than mutating the receiver in place, so a
// closure holding a captured Record is never surprised by a later
// assignment elsewhere.
type Record struct {
	order []string
	pairs map[string]Value
}

// NewRecord builds a Record from fields in the given order, taking
// order and pairs as given (duplicates in order are not collapsed).
// The override rule for later duplicate keys (spec.md §4.2) is applied
// by Set, which keeps the earlier field's position.
func NewRecord(order []string, pairs map[string]Value) Record {
	return Record{order: order, pairs: pairs}
}

func NewEmptyRecord() Record {
	return Record{order: nil, pairs: map[string]Value{}}
}

func (r Record) Type() TypeCode { return TYPE_RECORD }

func (r Record) String() string {
	parts := make([]string, 0, len(r.order))
	for _, k := range r.order {
		parts = append(parts, k+": "+r.pairs[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r Record) Equal(o Value) bool {
	other, ok := o.(Record)
	if !ok || len(r.order) != len(other.order) {
		return false
	}
	for _, k := range r.order {
		v, ok := r.pairs[k]
		if !ok {
			return false
		}
		ov, ok := other.pairs[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (r Record) Truthy() bool { return len(r.order) > 0 }

func (r Record) Len() int { return len(r.order) }

func (r Record) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r Record) Get(name string) (Value, bool) {
	v, ok := r.pairs[name]
	return v, ok
}

// Set returns a new Record (COW) with field name bound to val,
// preserving the existing position of name if it is already present,
// else appending it.
func (r Record) Set(name string, val Value) Record {
	newPairs := make(map[string]Value, len(r.pairs)+1)
	for k, v := range r.pairs {
		newPairs[k] = v
	}
	_, exists := r.pairs[name]
	newPairs[name] = val
	var newOrder []string
	if exists {
		newOrder = r.order
	} else {
		newOrder = make([]string, len(r.order)+1)
		copy(newOrder, r.order)
		newOrder[len(r.order)] = name
	}
	return Record{order: newOrder, pairs: newPairs}
}

// Pairs returns fields in insertion order, for spread expansion and
// Network promotion.
func (r Record) Pairs() []struct {
	Key string
	Val Value
} {
	out := make([]struct {
		Key string
		Val Value
	}, len(r.order))
	for i, k := range r.order {
		out[i] = struct {
			Key string
			Val Value
		}{Key: k, Val: r.pairs[k]}
	}
	return out
}

// ContainsEdge reports whether this record transitively contains an
// Edge value, the trigger for Record -> Network promotion (spec.md
// §4.6 "Edge/Network").
func (r Record) ContainsEdge() bool {
	for _, k := range r.order {
		if containsEdge(r.pairs[k]) {
			return true
		}
	}
	return false
}

func containsEdge(v Value) bool {
	switch val := v.(type) {
	case Edge:
		return true
	case Vector:
		for _, e := range val.Elements {
			if containsEdge(e) {
				return true
			}
		}
		return false
	case Record:
		return val.ContainsEdge()
	default:
		return false
	}
}
