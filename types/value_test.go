package types

import "testing"

func TestRecordInsertionOrderAndOverride(t *testing.T) {
	r := NewEmptyRecord()
	r = r.Set("a", NewNumber(1))
	r = r.Set("b", NewNumber(2))
	r = r.Set("a", NewNumber(3))
	if got := r.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b] (position preserved on override)", got)
	}
	v, ok := r.Get("a")
	if !ok || !v.Equal(NewNumber(3)) {
		t.Fatalf("Get(a) = %v, want 3 (later Set wins)", v)
	}
}

func TestRecordContainsEdgeTransitive(t *testing.T) {
	edge := NewEdge("A", "B", true, NewEmptyRecord())
	inner := NewEmptyRecord().Set("e", edge)
	outer := NewEmptyRecord().Set("nested", inner)
	if !outer.ContainsEdge() {
		t.Fatal("expected transitive edge detection through nested record")
	}
	plain := NewEmptyRecord().Set("x", NewNumber(1))
	if plain.ContainsEdge() {
		t.Fatal("plain record must not report containing an edge")
	}
}

func TestVectorCOW(t *testing.T) {
	v := NewVector([]Value{NewNumber(1), NewNumber(2)})
	v2 := v.Set(0, NewNumber(99))
	if got, _ := v.Get(0); !got.Equal(NewNumber(1)) {
		t.Fatal("original vector must be unaffected by Set (copy-on-write)")
	}
	if got, _ := v2.Get(0); !got.Equal(NewNumber(99)) {
		t.Fatal("new vector must reflect the Set")
	}
}

func TestEdgeIdentifiersAreBareStrings(t *testing.T) {
	e := NewEdge("A", "B", true, NewEmptyRecord())
	if e.From != "A" || e.To != "B" {
		t.Fatalf("edge endpoints must be the bare identifier text, got %q -> %q", e.From, e.To)
	}
}

func TestComplexTruthy(t *testing.T) {
	if NewComplex(0, 0).Truthy() {
		t.Fatal("0+0i must be falsy")
	}
	if !NewComplex(0, 1).Truthy() {
		t.Fatal("0+1i must be truthy")
	}
}
