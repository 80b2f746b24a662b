package types

import (
	"sort"
	"strings"
)

// Network is a derived aggregate: a mapping node_id -> record plus an
// ordered sequence of Edges plus a metadata record (spec.md §3). A
// Record literal is promoted to a Network when (and only when) it
// transitively contains at least one Edge value (spec.md §4.6).
type Network struct {
	Nodes    map[string]Value // node_id -> record (or Unit if inferred, never assigned a body)
	NodeKeys []string         // insertion/first-seen order, for deterministic iteration
	Edges    []Edge
	Meta     Record
}

func NewNetwork() Network {
	return Network{Nodes: map[string]Value{}, Meta: NewEmptyRecord()}
}

func (n Network) Type() TypeCode { return TYPE_NETWORK }

func (n Network) String() string {
	var b strings.Builder
	b.WriteString("{nodes: [")
	for i, k := range n.NodeKeys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
	}
	b.WriteString("], edges: [")
	for i, e := range n.Edges {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("]}")
	return b.String()
}

func (n Network) Equal(o Value) bool {
	other, ok := o.(Network)
	if !ok || len(n.Edges) != len(other.Edges) || len(n.NodeKeys) != len(other.NodeKeys) {
		return false
	}
	for i := range n.Edges {
		if !n.Edges[i].Equal(other.Edges[i]) {
			return false
		}
	}
	for _, k := range n.NodeKeys {
		v, ok := n.Nodes[k]
		ov, ook := other.Nodes[k]
		if !ok || !ook || !v.Equal(ov) {
			return false
		}
	}
	return n.Meta.Equal(other.Meta)
}

func (n Network) Truthy() bool { return len(n.NodeKeys) > 0 || len(n.Edges) > 0 }

// AddNode registers a node id if not already present, leaving its
// record value alone if it already exists (explicit `nodes:` entries
// take precedence over ids merely inferred from edge endpoints).
func (n *Network) AddNode(id string, val Value) {
	if _, exists := n.Nodes[id]; !exists {
		n.NodeKeys = append(n.NodeKeys, id)
	}
	if val != nil {
		n.Nodes[id] = val
	} else if _, exists := n.Nodes[id]; !exists {
		n.Nodes[id] = NewUnit()
	}
}

// EnsureNode registers id with a Unit placeholder if it has never been
// seen, used when a node id is only known as an edge endpoint.
func (n *Network) EnsureNode(id string) {
	if _, exists := n.Nodes[id]; !exists {
		n.Nodes[id] = NewUnit()
		n.NodeKeys = append(n.NodeKeys, id)
	}
}

// SortedNodeIDs returns node ids sorted lexicographically, used by the
// nodes() builtin so the result is order-independent of construction
// (spec.md §8 scenario 8 only requires "exactly the node IDs", not a
// particular order).
func (n Network) SortedNodeIDs() []string {
	out := make([]string, len(n.NodeKeys))
	copy(out, n.NodeKeys)
	sort.Strings(out)
	return out
}
