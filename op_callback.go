// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

// CallbackOp stages operator input/output through a 1-D buffer and invokes
// a collaborator-supplied function once per step, the "opaque callable"
// collaborator interface spec.md §6 describes. It supports the four
// documented shapes (time-only, input-only, output-only, input-and-output)
// behind a single operator type, chosen by which fields are non-nil at
// construction.
type CallbackOp struct {
	timeFn   func(t float64)
	inFn     func(t float64, in []float64)
	outFn    func(t float64) []float64
	inOutFn  func(t float64, in []float64) []float64
	Src, Dst View
}

// NewTimeCallback invokes fn with the current simulated time; it reads and
// writes no views.
func NewTimeCallback(fn func(t float64)) *CallbackOp {
	return &CallbackOp{timeFn: fn}
}

// NewInputCallback invokes fn with the current time and src's contents
// staged into a flat buffer.
func NewInputCallback(fn func(t float64, in []float64), src View) *CallbackOp {
	return &CallbackOp{inFn: fn, Src: src}
}

// NewOutputCallback invokes fn with the current time, writing its returned
// slice into dst. A length mismatch is ErrOutputShape, raised at step time.
func NewOutputCallback(fn func(t float64) []float64, dst View) *CallbackOp {
	return &CallbackOp{outFn: fn, Dst: dst}
}

// NewInputOutputCallback invokes fn with the current time and src's
// contents, writing its returned slice into dst.
func NewInputOutputCallback(fn func(t float64, in []float64) []float64, src, dst View) *CallbackOp {
	return &CallbackOp{inOutFn: fn, Src: src, Dst: dst}
}

func (op *CallbackOp) Kind() Kind { return KindCallback }
func (op *CallbackOp) Reset()     {}

func (op *CallbackOp) Apply(s *Store, t, dt float64) error {
	switch {
	case op.timeFn != nil:
		op.timeFn(t)
	case op.inFn != nil:
		op.inFn(t, op.Src.Flat1D(s))
	case op.outFn != nil:
		out := op.outFn(t)
		if len(out) != op.Dst.Len() {
			return OutputShapeError(op.Dst.Len(), len(out))
		}
		op.Dst.SetFlat1D(s, out)
	case op.inOutFn != nil:
		out := op.inOutFn(t, op.Src.Flat1D(s))
		if len(out) != op.Dst.Len() {
			return OutputShapeError(op.Dst.Len(), len(out))
		}
		op.Dst.SetFlat1D(s, out)
	}
	return nil
}
