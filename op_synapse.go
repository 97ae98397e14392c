// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "fmt"

// ring is a fixed-capacity circular buffer that drops its oldest element on
// push-front, per spec.md's DESIGN NOTES on per-row filter state. It is
// implemented as a backing slice plus a head index rather than a linked
// structure.
type ring struct {
	buf  []float64
	head int
}

func newRing(n int) ring {
	return ring{buf: make([]float64, n)}
}

// pushFront inserts v at logical position 0, shifting everything else back
// by one and dropping the oldest (logical position len-1) element.
func (r *ring) pushFront(v float64) {
	n := len(r.buf)
	if n == 0 {
		return
	}
	r.head = (r.head - 1 + n) % n
	r.buf[r.head] = v
}

// at returns the element at logical position j (0 = most recently pushed).
func (r *ring) at(j int) float64 {
	n := len(r.buf)
	return r.buf[(r.head+j)%n]
}

func (r *ring) reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.head = 0
}

func (r *ring) sum() float64 {
	var s float64
	for _, v := range r.buf {
		s += v
	}
	return s
}

// NoDenSynapseOp computes out = b*in, a synapse with no denominator
// dynamics -- a pure gain.
type NoDenSynapseOp struct {
	In, Out View
	B       float64
}

func NewNoDenSynapseOp(in, out View, b float64) (*NoDenSynapseOp, error) {
	if in.RowExtent != out.RowExtent || in.ColExtent != out.ColExtent {
		return nil, ShapeMismatchError("NoDenSynapse", "in/out shape mismatch")
	}
	return &NoDenSynapseOp{In: in, Out: out, B: b}, nil
}

func (op *NoDenSynapseOp) Kind() Kind { return KindNoDenSynapse }
func (op *NoDenSynapseOp) Reset()     {}

func (op *NoDenSynapseOp) Apply(s *Store, t, dt float64) error {
	in := op.In.Flat1D(s)
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = op.B * v
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// SimpleSynapseOp implements the first-order IIR out_{k+1} = -a*out_k +
// b*in_{k+1}, encoded exactly as the source's literal update sequence
// out *= -a; out += b*in (see spec.md's Open Question on this operator:
// the sign of the coefficient is preserved as written, not "corrected").
type SimpleSynapseOp struct {
	In, Out View
	A, B    float64
}

func NewSimpleSynapseOp(in, out View, a, b float64) (*SimpleSynapseOp, error) {
	if in.RowExtent != out.RowExtent || in.ColExtent != out.ColExtent {
		return nil, ShapeMismatchError("SimpleSynapse", "in/out shape mismatch")
	}
	return &SimpleSynapseOp{In: in, Out: out, A: a, B: b}, nil
}

func (op *SimpleSynapseOp) Kind() Kind { return KindSimpleSynapse }
func (op *SimpleSynapseOp) Reset()     {}

func (op *SimpleSynapseOp) Apply(s *Store, t, dt float64) error {
	in := op.In.Flat1D(s)
	out := op.Out.Flat1D(s)
	for i := range out {
		out[i] *= -op.A
		out[i] += op.B * in[i]
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// SynapseOp is a general per-row IIR filter: out = sum(numer[j]*x[j]) -
// sum(denom[j]*y[j]), with x and y independent ring buffers per element of
// the view (spec.md calls this "per row" for the column-vector case this
// operator is normally used with).
type SynapseOp struct {
	In, Out      View
	Numer, Denom []float64
	x, y         []ring
}

// NewSynapseOp allocates the per-element ring buffers sized to len(numer)
// and len(denom).
func NewSynapseOp(in, out View, numer, denom []float64) (*SynapseOp, error) {
	if in.RowExtent != out.RowExtent || in.ColExtent != out.ColExtent {
		return nil, ShapeMismatchError("Synapse", "in/out shape mismatch")
	}
	if len(numer) == 0 || len(denom) == 0 {
		return nil, InvalidParameterError("Synapse", "numer and denom must be non-empty")
	}
	n := in.Len()
	op := &SynapseOp{In: in, Out: out, Numer: numer, Denom: denom, x: make([]ring, n), y: make([]ring, n)}
	for i := 0; i < n; i++ {
		op.x[i] = newRing(len(numer))
		op.y[i] = newRing(len(denom))
	}
	return op, nil
}

func (op *SynapseOp) Kind() Kind { return KindSynapse }

func (op *SynapseOp) Reset() {
	for i := range op.x {
		op.x[i].reset()
		op.y[i].reset()
	}
}

func (op *SynapseOp) Apply(s *Store, t, dt float64) error {
	in := op.In.Flat1D(s)
	out := make([]float64, len(in))
	for i, v := range in {
		op.x[i].pushFront(v)
		var acc float64
		for j, nc := range op.Numer {
			acc += nc * op.x[i].at(j)
		}
		for j, dc := range op.Denom {
			acc -= dc * op.y[i].at(j)
		}
		out[i] = acc
		op.y[i].pushFront(acc)
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// TriangleSynapseOp computes out += n0*in - sum(x), pushing ndiff*in onto a
// per-element circular buffer of capacity n_taps.
type TriangleSynapseOp struct {
	In, Out     View
	N0, NDiff   float64
	NTaps       int
	x           []ring
}

func NewTriangleSynapseOp(in, out View, n0, ndiff float64, nTaps int) (*TriangleSynapseOp, error) {
	if in.RowExtent != out.RowExtent || in.ColExtent != out.ColExtent {
		return nil, ShapeMismatchError("TriangleSynapse", "in/out shape mismatch")
	}
	if nTaps <= 0 {
		return nil, InvalidParameterError("TriangleSynapse", fmt.Sprintf("n_taps must be positive, got %d", nTaps))
	}
	n := in.Len()
	op := &TriangleSynapseOp{In: in, Out: out, N0: n0, NDiff: ndiff, NTaps: nTaps, x: make([]ring, n)}
	for i := 0; i < n; i++ {
		op.x[i] = newRing(nTaps)
	}
	return op, nil
}

func (op *TriangleSynapseOp) Kind() Kind { return KindTriangleSynapse }

func (op *TriangleSynapseOp) Reset() {
	for i := range op.x {
		op.x[i].reset()
	}
}

func (op *TriangleSynapseOp) Apply(s *Store, t, dt float64) error {
	in := op.In.Flat1D(s)
	out := op.Out.Flat1D(s)
	for i, v := range in {
		out[i] += op.N0*v - op.x[i].sum()
		op.x[i].pushFront(op.NDiff * v)
	}
	op.Out.SetFlat1D(s, out)
	return nil
}
