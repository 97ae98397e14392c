// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

// TestResetThenCopy exercises the "Reset then Copy" seed scenario: Reset
// fills a signal with a constant, then Copy propagates it into another.
func TestResetThenCopy(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 3, nil); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "b", 1, 3, nil); err != nil {
		t.Fatalf("RegisterBase b: %v", err)
	}
	a, err := s.NewView(1, 1, 3, 1, 1, 0)
	if err != nil {
		t.Fatalf("NewView a: %v", err)
	}
	b, err := s.NewView(2, 1, 3, 1, 1, 0)
	if err != nil {
		t.Fatalf("NewView b: %v", err)
	}

	reset := NewResetOp(a, 5)
	if err := reset.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Reset.Apply: %v", err)
	}
	copyOp, err := NewCopyOp(b, a)
	if err != nil {
		t.Fatalf("NewCopyOp: %v", err)
	}
	if err := copyOp.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Copy.Apply: %v", err)
	}

	got := b.Flat1D(s)
	for i, v := range got {
		if v != 5 {
			t.Errorf("b[%d] = %v, want 5", i, v)
		}
	}
}

// TestCopyAliasedViewsSnapshotBeforeWrite exercises property 5 against
// Copy's own documented aliasing contract: an overlapping src/dst window
// reads pre-image values for every element, not a partially-updated view.
func TestCopyAliasedViewsSnapshotBeforeWrite(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 3, []float64{1, 2, 3}); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	// dst covers base[0:2] and src covers base[1:3], so dst := src writes
	// base[i] = old base[i+1] for i = 0, 1, and base[2] lies outside dst and
	// keeps its 3: the result is [2, 3, 3], not something that observes the
	// write to element 0 while computing element 1.
	dst, err := s.NewView(1, 1, 2, 1, 1, 0)
	if err != nil {
		t.Fatalf("NewView dst: %v", err)
	}
	src, err := s.NewView(1, 1, 2, 1, 1, 1)
	if err != nil {
		t.Fatalf("NewView src: %v", err)
	}
	copyOp, err := NewCopyOp(dst, src)
	if err != nil {
		t.Fatalf("NewCopyOp: %v", err)
	}
	if err := copyOp.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Copy.Apply: %v", err)
	}
	base, _ := s.LookupBase(1)
	want := []float64{2, 3, 3}
	for i, w := range want {
		if base.At(0, i) != w {
			t.Errorf("base[%d] = %v, want %v", i, base.At(0, i), w)
		}
	}
}

func TestCopyShapeMismatch(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 3, nil); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	a, _ := s.NewView(1, 1, 3, 1, 1, 0)
	b, _ := s.NewView(1, 1, 2, 1, 1, 0)
	if _, err := NewCopyOp(b, a); err == nil {
		t.Fatal("expected ErrShapeMismatch, got nil")
	}
}

func TestSlicedCopyRangeGrammar(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 4, []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "b", 1, 4, []float64{0, 0, 0, 0}); err != nil {
		t.Fatalf("RegisterBase b: %v", err)
	}
	a, _ := s.NewView(1, 1, 4, 1, 1, 0)
	b, _ := s.NewView(2, 1, 4, 1, 1, 0)

	op, err := NewSlicedCopyOp(SlicedCopyConfig{
		B: b, A: a,
		StartA: 0, StopA: 4, StepA: 1,
		StartB: 3, StopB: -1, StepB: -1,
	})
	if err != nil {
		t.Fatalf("NewSlicedCopyOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := b.Flat1D(s)
	want := []float64{4, 3, 2, 1}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("b[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestSlicedCopyIncMode(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 2, []float64{5, 7}); err != nil {
		t.Fatalf("RegisterBase a: %v", err)
	}
	if _, err := s.RegisterBase(2, "b", 1, 2, []float64{1, 1}); err != nil {
		t.Fatalf("RegisterBase b: %v", err)
	}
	a, _ := s.NewView(1, 1, 2, 1, 1, 0)
	b, _ := s.NewView(2, 1, 2, 1, 1, 0)
	op, err := NewSlicedCopyOp(SlicedCopyConfig{
		B: b, A: a, Inc: true,
		StartA: 0, StopA: 2, StepA: 1,
		StartB: 0, StopB: 2, StepB: 1,
	})
	if err != nil {
		t.Fatalf("NewSlicedCopyOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := b.Flat1D(s)
	want := []float64{6, 8}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("b[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestSlicedCopyMismatchedStreamLengths(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "a", 1, 4, nil); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	a, _ := s.NewView(1, 1, 4, 1, 1, 0)
	_, err := NewSlicedCopyOp(SlicedCopyConfig{
		B: a, A: a,
		StartA: 0, StopA: 4, StepA: 1,
		StartB: 0, StopB: 2, StepB: 1,
	})
	if err == nil {
		t.Fatal("expected ErrShapeMismatch, got nil")
	}
}
