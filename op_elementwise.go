// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "fmt"

// ElementwiseIncOp computes Y += A ⊙ X with NumPy-style broadcasting: a
// dimension of size 1 in A or X is replicated along the matching dimension
// of Y. The broadcast strides (0 to replicate, 1 to advance) are
// precomputed once at construction.
type ElementwiseIncOp struct {
	A, X, Y            View
	aRowStride, aColStride int
	xRowStride, xColStride int
}

// NewElementwiseIncOp validates that A and X each broadcast cleanly against
// Y's shape, failing with ErrShapeMismatch otherwise.
func NewElementwiseIncOp(a, x, y View) (*ElementwiseIncOp, error) {
	aRowStride, err := broadcastStride(a.RowExtent, y.RowExtent)
	if err != nil {
		return nil, ShapeMismatchError("ElementwiseInc", fmt.Sprintf("A rows %d vs Y rows %d: %v", a.RowExtent, y.RowExtent, err))
	}
	aColStride, err := broadcastStride(a.ColExtent, y.ColExtent)
	if err != nil {
		return nil, ShapeMismatchError("ElementwiseInc", fmt.Sprintf("A cols %d vs Y cols %d: %v", a.ColExtent, y.ColExtent, err))
	}
	xRowStride, err := broadcastStride(x.RowExtent, y.RowExtent)
	if err != nil {
		return nil, ShapeMismatchError("ElementwiseInc", fmt.Sprintf("X rows %d vs Y rows %d: %v", x.RowExtent, y.RowExtent, err))
	}
	xColStride, err := broadcastStride(x.ColExtent, y.ColExtent)
	if err != nil {
		return nil, ShapeMismatchError("ElementwiseInc", fmt.Sprintf("X cols %d vs Y cols %d: %v", x.ColExtent, y.ColExtent, err))
	}
	return &ElementwiseIncOp{
		A: a, X: x, Y: y,
		aRowStride: aRowStride, aColStride: aColStride,
		xRowStride: xRowStride, xColStride: xColStride,
	}, nil
}

// broadcastStride returns 0 if dim is 1 (broadcast against target) and 1
// if dim equals target; any other mismatch is an error.
func broadcastStride(dim, target int) (int, error) {
	switch {
	case dim == target:
		return 1, nil
	case dim == 1:
		return 0, nil
	default:
		return 0, fmt.Errorf("dimension %d cannot broadcast to %d", dim, target)
	}
}

func (op *ElementwiseIncOp) Kind() Kind { return KindElementwiseInc }
func (op *ElementwiseIncOp) Reset()     {}

func (op *ElementwiseIncOp) Apply(s *Store, t, dt float64) error {
	for r := 0; r < op.Y.RowExtent; r++ {
		ar := r * op.aRowStride
		xr := r * op.xRowStride
		for c := 0; c < op.Y.ColExtent; c++ {
			ac := c * op.aColStride
			xc := c * op.xColStride
			av := op.A.At(s, ar, ac)
			xv := op.X.At(s, xr, xc)
			cur := op.Y.At(s, r, c)
			op.Y.Set(s, r, c, cur+av*xv)
		}
	}
	return nil
}
