// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

func TestTimeCallback(t *testing.T) {
	var got float64
	op := NewTimeCallback(func(t float64) { got = t })
	if err := op.Apply(NewStore(), 1.5, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 1.5 {
		t.Errorf("got t=%v, want 1.5", got)
	}
}

func TestInputCallback(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "src", 1, 2, []float64{4, 5}); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	src, _ := s.NewView(1, 1, 2, 1, 1, 0)
	var got []float64
	op := NewInputCallback(func(t float64, in []float64) { got = in }, src)
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []float64{4, 5}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("in[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestOutputCallback(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "dst", 1, 2, nil); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	dst, _ := s.NewView(1, 1, 2, 1, 1, 0)
	op := NewOutputCallback(func(t float64) []float64 { return []float64{7, 8} }, dst)
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := dst.Flat1D(s)
	want := []float64{7, 8}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("dst[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestOutputCallbackShapeMismatch(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "dst", 1, 2, nil); err != nil {
		t.Fatalf("RegisterBase: %v", err)
	}
	dst, _ := s.NewView(1, 1, 2, 1, 1, 0)
	op := NewOutputCallback(func(t float64) []float64 { return []float64{1, 2, 3} }, dst)
	if err := op.Apply(s, 0, 0.001); err == nil {
		t.Fatal("expected ErrOutputShape, got nil")
	}
}

func TestInputOutputCallback(t *testing.T) {
	s := NewStore()
	if _, err := s.RegisterBase(1, "src", 1, 2, []float64{1, 2}); err != nil {
		t.Fatalf("RegisterBase src: %v", err)
	}
	if _, err := s.RegisterBase(2, "dst", 1, 2, nil); err != nil {
		t.Fatalf("RegisterBase dst: %v", err)
	}
	src, _ := s.NewView(1, 1, 2, 1, 1, 0)
	dst, _ := s.NewView(2, 1, 2, 1, 1, 0)
	op := NewInputOutputCallback(func(t float64, in []float64) []float64 {
		out := make([]float64, len(in))
		for i, v := range in {
			out[i] = v * 2
		}
		return out
	}, src, dst)
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := dst.Flat1D(s)
	want := []float64{2, 4}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("dst[%d] = %v, want %v", i, got[i], w)
		}
	}
}
