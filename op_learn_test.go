// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

func TestBCMAccumulatesDelta(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "pre", 2, 1, []float64{1, 2}); err != nil {
		t.Fatalf("RegisterBase pre: %v", err)
	}
	if _, err := s.RegisterBase(2, "post", 1, 1, []float64{3}); err != nil {
		t.Fatalf("RegisterBase post: %v", err)
	}
	if _, err := s.RegisterBase(3, "theta", 1, 1, []float64{1}); err != nil {
		t.Fatalf("RegisterBase theta: %v", err)
	}
	if _, err := s.RegisterBase(4, "delta", 1, 2, []float64{0, 0}); err != nil {
		t.Fatalf("RegisterBase delta: %v", err)
	}
	pre, _ := s.NewView(1, 2, 1, 1, 1, 0)
	post, _ := s.NewView(2, 1, 1, 1, 1, 0)
	theta, _ := s.NewView(3, 1, 1, 1, 1, 0)
	delta, _ := s.NewView(4, 1, 2, 2, 1, 0)

	op, err := NewBCMOp(pre, post, theta, delta, 0.5)
	if err != nil {
		t.Fatalf("NewBCMOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.01); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// alpha = rate*dt = 0.005; factor = alpha*post*(post-theta) = 0.005*3*2 = 0.03
	// delta[0][j] = factor*pre[j]
	got := delta.Flat1D(s)
	want := []float64{0.03 * 1, 0.03 * 2}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("delta[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestOjaAssignsNotAccumulates(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "pre", 1, 1, []float64{1}); err != nil {
		t.Fatalf("RegisterBase pre: %v", err)
	}
	if _, err := s.RegisterBase(2, "post", 1, 1, []float64{1}); err != nil {
		t.Fatalf("RegisterBase post: %v", err)
	}
	if _, err := s.RegisterBase(3, "w", 1, 1, []float64{2}); err != nil {
		t.Fatalf("RegisterBase w: %v", err)
	}
	if _, err := s.RegisterBase(4, "delta", 1, 1, []float64{99}); err != nil {
		t.Fatalf("RegisterBase delta: %v", err)
	}
	pre, _ := s.NewView(1, 1, 1, 1, 1, 0)
	post, _ := s.NewView(2, 1, 1, 1, 1, 0)
	w, _ := s.NewView(3, 1, 1, 1, 1, 0)
	delta, _ := s.NewView(4, 1, 1, 1, 1, 0)

	op, err := NewOjaOp(pre, post, w, delta, 1, 0.5)
	if err != nil {
		t.Fatalf("NewOjaOp: %v", err)
	}
	if err := op.Apply(s, 0, 1); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// alpha = 1; val = alpha*post*pre - alpha*beta*w*post^2 = 1 - 1*0.5*2*1 = 0
	got := delta.Flat1D(s)[0]
	if got != 0 {
		t.Errorf("delta = %v, want 0 (assignment, not accumulation, of a stale 99)", got)
	}
}

func TestVojaGatedByL(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "pre", 1, 1, []float64{2}); err != nil {
		t.Fatalf("RegisterBase pre: %v", err)
	}
	if _, err := s.RegisterBase(2, "post", 1, 1, []float64{3}); err != nil {
		t.Fatalf("RegisterBase post: %v", err)
	}
	if _, err := s.RegisterBase(3, "e", 1, 1, []float64{1}); err != nil {
		t.Fatalf("RegisterBase e: %v", err)
	}
	if _, err := s.RegisterBase(4, "delta", 1, 1, nil); err != nil {
		t.Fatalf("RegisterBase delta: %v", err)
	}
	if _, err := s.RegisterBase(5, "l", 1, 1, []float64{0}); err != nil {
		t.Fatalf("RegisterBase l: %v", err)
	}
	pre, _ := s.NewView(1, 1, 1, 1, 1, 0)
	post, _ := s.NewView(2, 1, 1, 1, 1, 0)
	e, _ := s.NewView(3, 1, 1, 1, 1, 0)
	delta, _ := s.NewView(4, 1, 1, 1, 1, 0)
	l, _ := s.NewView(5, 1, 1, 1, 1, 0)

	op, err := NewVojaOp(pre, post, e, delta, l, 1, 1)
	if err != nil {
		t.Fatalf("NewVojaOp: %v", err)
	}
	if err := op.Apply(s, 0, 1); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := delta.Flat1D(s)[0]; got != 0 {
		t.Errorf("delta with L=0 = %v, want 0 (learning gate off)", got)
	}
}

func TestBCMRequiresColumnShapes(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "pre", 1, 2, nil); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	pre, _ := s.NewView(1, 1, 2, 1, 1, 0)
	if _, err := NewBCMOp(pre, pre, pre, pre, 1); err == nil {
		t.Fatal("expected ErrShapeMismatch for a row-shaped pre view, got nil")
	}
}
