// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

func TestElementwiseIncBroadcastRowVector(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 3, []float64{2, 2, 2}); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "x", 2, 3, []float64{1, 1, 1, 2, 2, 2}); err != nil {
		t.Fatalf("RegisterBase x: %v", err)
	}
	if _, err := s.RegisterBase(3, "y", 2, 3, []float64{0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatalf("RegisterBase y: %v", err)
	}
	a, _ := s.NewView(1, 1, 3, 1, 1, 0)
	x, _ := s.NewView(2, 2, 3, 3, 1, 0)
	y, _ := s.NewView(3, 2, 3, 3, 1, 0)

	op, err := NewElementwiseIncOp(a, x, y)
	if err != nil {
		t.Fatalf("NewElementwiseIncOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := y.Flat1D(s)
	want := []float64{2, 2, 2, 4, 4, 4}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("y[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestElementwiseIncBroadcastMismatch(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 2, nil); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "x", 2, 3, nil); err != nil {
		t.Fatalf("RegisterBase x: %v", err)
	}
	if _, err := s.RegisterBase(3, "y", 2, 3, nil); err != nil {
		t.Fatalf("RegisterBase y: %v", err)
	}
	a, _ := s.NewView(1, 1, 2, 1, 1, 0)
	x, _ := s.NewView(2, 2, 3, 3, 1, 0)
	y, _ := s.NewView(3, 2, 3, 3, 1, 0)
	if _, err := NewElementwiseIncOp(a, x, y); err == nil {
		t.Fatal("expected ErrShapeMismatch, got nil")
	}
}
