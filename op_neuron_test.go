// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "testing"

func newNeuronViews(t *testing.T, s *Store, keys ...int64) []View {
	t.Helper()
	views := make([]View, len(keys))
	for i, k := range keys {
		if _, err := s.RegisterBase(k, "", 1, 1, nil); err != nil {
			t.Fatalf("RegisterBase %d: %v", k, err)
		}
		v, err := s.NewView(k, 1, 1, 1, 1, 0)
		if err != nil {
			t.Fatalf("NewView %d: %v", k, err)
		}
		views[i] = v
	}
	return views
}

// TestLIFSpikesUnderSustainedDrive exercises the "LIF single neuron spike"
// seed scenario: a constant super-threshold input current eventually drives
// the membrane potential across threshold and produces a non-zero output
// sample, after which V resets to 0 and RefT holds the neuron down.
func TestLIFSpikesUnderSustainedDrive(t *testing.T) {
	s := NewStore()
	views := newNeuronViews(t, s, 1, 2, 3, 4)
	j, out, v, refT := views[0], views[1], views[2], views[3]
	j.SetFlat1D(s, []float64{2})

	op, err := NewLIFOp(0.02, 0.002, 0, j, out, v, refT)
	if err != nil {
		t.Fatalf("NewLIFOp: %v", err)
	}

	spiked := false
	for step := 0; step < 200; step++ {
		if err := op.Apply(s, float64(step)*0.001, 0.001); err != nil {
			t.Fatalf("Apply step %d: %v", step, err)
		}
		if out.Flat1D(s)[0] != 0 {
			spiked = true
			if got := v.Flat1D(s)[0]; got != 0 {
				t.Errorf("V after spike = %v, want 0", got)
			}
			if got := refT.Flat1D(s)[0]; got <= 0 {
				t.Errorf("RefT after spike = %v, want > 0", got)
			}
			break
		}
	}
	if !spiked {
		t.Fatal("LIF neuron never spiked under sustained super-threshold drive")
	}
}

func TestLIFRateZeroBelowThreshold(t *testing.T) {
	s := NewStore()
	views := newNeuronViews(t, s, 1, 2)
	j, out := views[0], views[1]
	j.SetFlat1D(s, []float64{0.5})
	op, err := NewLIFRateOp(0.02, 0.002, j, out)
	if err != nil {
		t.Fatalf("NewLIFRateOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out.Flat1D(s)[0]; got != 0 {
		t.Errorf("rate below threshold = %v, want 0", got)
	}
}

func TestRectifiedLinearClampsNegative(t *testing.T) {
	s := NewStore()
	views := newNeuronViews(t, s, 1, 2)
	j, out := views[0], views[1]
	j.SetFlat1D(s, []float64{-3})
	op, err := NewRectifiedLinearOp(j, out)
	if err != nil {
		t.Fatalf("NewRectifiedLinearOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := out.Flat1D(s)[0]; got != 0 {
		t.Errorf("out = %v, want 0", got)
	}
}

// TestAdaptiveLIFRestoresOriginalJ exercises spec.md §9's sequencing
// contract: after Apply, the inner LIF's J view holds its pre-adaptation
// value, not the adapted one used during the delegated step.
func TestAdaptiveLIFRestoresOriginalJ(t *testing.T) {
	s := NewStore()
	views := newNeuronViews(t, s, 1, 2, 3, 4, 5)
	j, out, v, refT, adapt := views[0], views[1], views[2], views[3], views[4]
	j.SetFlat1D(s, []float64{2})
	adapt.SetFlat1D(s, []float64{0.3})

	inner, err := NewLIFOp(0.02, 0.002, 0, j, out, v, refT)
	if err != nil {
		t.Fatalf("NewLIFOp: %v", err)
	}
	op, err := NewAdaptiveLIFOp(inner, 0.1, 1, adapt)
	if err != nil {
		t.Fatalf("NewAdaptiveLIFOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := j.Flat1D(s)[0]; got != 2 {
		t.Errorf("J after Apply = %v, want restored original 2", got)
	}
}

// TestIzhikevichClampsJInPlace exercises the J = max(J, -30) floor: Apply
// must write the clamped value back into J, not just use it locally for dV.
func TestIzhikevichClampsJInPlace(t *testing.T) {
	s := NewStore()
	views := newNeuronViews(t, s, 1, 2, 3, 4)
	j, out, v, u := views[0], views[1], views[2], views[3]
	j.SetFlat1D(s, []float64{-50})

	op, err := NewIzhikevichOp(0.02, 0.2, -65, 8, j, out, v, u)
	if err != nil {
		t.Fatalf("NewIzhikevichOp: %v", err)
	}
	if err := op.Apply(s, 0, 0.001); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := j.Flat1D(s)[0]; got != izhikevichJFloor {
		t.Errorf("J after Apply = %v, want clamped floor %v", got, izhikevichJFloor)
	}
}
