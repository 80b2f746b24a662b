package tensor

import "testing"

func TestBroadcastAdd(t *testing.T) {
	a, err := FromNested([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("FromNested: %v", err)
	}
	b := New([]float64{10, 20, 30}, Shape{3})
	got, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := New([]float64{11, 22, 33, 14, 25, 36}, Shape{2, 3})
	if !got.Equal(want) {
		t.Errorf("Add = %s, want %s", got, want)
	}
}

func TestMatMul(t *testing.T) {
	a := New([]float64{1, 2, 3, 4}, Shape{2, 2})
	b := New([]float64{5, 6, 7, 8}, Shape{2, 2})
	got, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	want := New([]float64{19, 22, 43, 50}, Shape{2, 2})
	if !got.Equal(want) {
		t.Errorf("MatMul = %s, want %s", got, want)
	}
}

func TestElementwiseMulNotMatrix(t *testing.T) {
	a := New([]float64{1, 2, 3}, Shape{3})
	b := New([]float64{4, 5, 6}, Shape{3})
	got, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	want := New([]float64{4, 10, 18}, Shape{3})
	if !got.Equal(want) {
		t.Errorf("elementwise Mul = %s, want %s", got, want)
	}
}

func TestBroadcastShapeMismatch(t *testing.T) {
	a := New([]float64{1, 2, 3}, Shape{3})
	b := New([]float64{1, 2}, Shape{2})
	if _, err := Add(a, b); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestDeterminant(t *testing.T) {
	a := New([]float64{1, 2, 3, 4}, Shape{2, 2})
	d, err := Determinant(a)
	if err != nil {
		t.Fatalf("Determinant: %v", err)
	}
	if d != -2 {
		t.Errorf("Determinant = %v, want -2", d)
	}
}

func TestTranspose(t *testing.T) {
	a := New([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	got, err := a.Transpose()
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	want := New([]float64{1, 4, 2, 5, 3, 6}, Shape{3, 2})
	if !got.Equal(want) {
		t.Errorf("Transpose = %s, want %s", got, want)
	}
}

func TestRaggedLiteralFails(t *testing.T) {
	_, err := FromNested([][]float64{{1, 2}, {3}})
	if err == nil {
		t.Fatal("expected ragged-shape error")
	}
}
