// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

// TestDotIncScalarMode exercises the "DotInc scalar mode" seed scenario: A
// is 1x1, so Y += A*X applies the scalar element-wise across X's shape.
func TestDotIncScalarMode(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 1, []float64{2}); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "x", 1, 3, []float64{1, 2, 3}); err != nil {
		t.Fatalf("RegisterBase x: %v", err)
	}
	if _, err := s.RegisterBase(3, "y", 1, 3, []float64{10, 10, 10}); err != nil {
		t.Fatalf("RegisterBase y: %v", err)
	}
	a, _ := s.NewView(1, 1, 1, 1, 1, 0)
	x, _ := s.NewView(2, 1, 3, 1, 1, 0)
	y, _ := s.NewView(3, 1, 3, 1, 1, 0)

	op, err := NewDotIncOp(a, x, y)
	if err != nil {
		t.Fatalf("NewDotIncOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := y.Flat1D(s)
	want := []float64{12, 14, 16}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("y[%d] = %v, want %v", i, got[i], w)
		}
	}
}

// TestDotIncMatMulMode exercises the matrix-multiply mode: A's columns
// match X's rows, and Y accumulates A*X.
func TestDotIncMatMulMode(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 2, 2, []float64{1, 0, 0, 1}); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "x", 2, 1, []float64{3, 4}); err != nil {
		t.Fatalf("RegisterBase x: %v", err)
	}
	if _, err := s.RegisterBase(3, "y", 2, 1, []float64{1, 1}); err != nil {
		t.Fatalf("RegisterBase y: %v", err)
	}
	a, _ := s.NewView(1, 2, 2, 2, 1, 0)
	x, _ := s.NewView(2, 2, 1, 1, 1, 0)
	y, _ := s.NewView(3, 2, 1, 1, 1, 0)

	op, err := NewDotIncOp(a, x, y)
	if err != nil {
		t.Fatalf("NewDotIncOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := y.Flat1D(s)
	want := []float64{4, 5}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("y[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestDotIncShapeMismatch(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 2, 3, nil); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "x", 2, 1, nil); err != nil {
		t.Fatalf("RegisterBase x: %v", err)
	}
	if _, err := s.RegisterBase(3, "y", 2, 1, nil); err != nil {
		t.Fatalf("RegisterBase y: %v", err)
	}
	a, _ := s.NewView(1, 2, 3, 3, 1, 0)
	x, _ := s.NewView(2, 2, 1, 1, 1, 0)
	y, _ := s.NewView(3, 2, 1, 1, 1, 0)
	if _, err := NewDotIncOp(a, x, y); err == nil {
		t.Fatal("expected ErrShapeMismatch, got nil")
	}
}
