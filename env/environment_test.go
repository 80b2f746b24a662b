package env

import (
	"testing"

	"github.com/achronyme/soc/types"
)

func TestLexicalShadowing(t *testing.T) {
	root := New()
	root.Define("x", types.NewNumber(1), false)
	child := root.PushScope()
	child.Define("x", types.NewNumber(2), false)

	v, ok := child.Lookup("x")
	if !ok || !v.Equal(types.NewNumber(2)) {
		t.Fatalf("child scope should see its own x, got %v", v)
	}
	v, ok = root.Lookup("x")
	if !ok || !v.Equal(types.NewNumber(1)) {
		t.Fatalf("parent scope must be unaffected by child shadowing, got %v", v)
	}
}

func TestAssignRequiresMutableExistingBinding(t *testing.T) {
	root := New()
	root.Define("immutable", types.NewNumber(1), false)
	root.Define("counter", types.NewNumber(0), true)

	if res := root.Assign("nope", types.NewNumber(1)); res != AssignNotFound {
		t.Fatalf("expected AssignNotFound, got %v", res)
	}
	if res := root.Assign("immutable", types.NewNumber(2)); res != AssignImmutable {
		t.Fatalf("expected AssignImmutable, got %v", res)
	}
	if res := root.Assign("counter", types.NewNumber(5)); res != AssignOK {
		t.Fatalf("expected AssignOK, got %v", res)
	}
	v, _ := root.Lookup("counter")
	if !v.Equal(types.NewNumber(5)) {
		t.Fatalf("expected counter == 5, got %v", v)
	}
}

func TestSnapshotSharesMutableCellAcrossClosure(t *testing.T) {
	root := New()
	root.Define("counter", types.NewNumber(0), true)
	captured := root.Snapshot()

	root.Assign("counter", types.NewNumber(42))
	v, ok := captured.Lookup("counter")
	if !ok || !v.Equal(types.NewNumber(42)) {
		t.Fatalf("snapshot must observe later mutation of a shared mut cell, got %v", v)
	}
}

func TestDefinePlaceholderThenFinalizeRec(t *testing.T) {
	root := New()
	root.DefinePlaceholder("f")
	captured := root.Snapshot()

	root.FinalizeRec("f", types.NewNumber(99))
	v, ok := captured.Lookup("f")
	if !ok || !v.Equal(types.NewNumber(99)) {
		t.Fatalf("closure captured before finalize must see the patched value, got %v", v)
	}
}
