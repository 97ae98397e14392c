// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// dotIncMode distinguishes DotInc's two numeric contracts.
type dotIncMode int

const (
	dotIncMatMul dotIncMode = iota
	dotIncScalar
)

// DotIncOp computes Y += A*X, either as a matrix multiply (when A's columns
// equal X's rows) or, when A is 1x1, as a scalar-times-elementwise add.
type DotIncOp struct {
	A, X, Y View
	mode    dotIncMode
}

// NewDotIncOp validates shapes at construction per spec.md's DotInc
// contract, failing with ErrShapeMismatch for anything that fits neither
// mode.
func NewDotIncOp(a, x, y View) (*DotIncOp, error) {
	op := &DotIncOp{A: a, X: x, Y: y}
	switch {
	case a.ColExtent == x.RowExtent:
		if y.RowExtent != a.RowExtent || y.ColExtent != x.ColExtent {
			return nil, ShapeMismatchError("DotInc", fmt.Sprintf(
				"matmul mode: Y must be %dx%d, got %dx%d", a.RowExtent, x.ColExtent, y.RowExtent, y.ColExtent))
		}
		op.mode = dotIncMatMul
	case a.RowExtent == 1 && a.ColExtent == 1:
		if x.RowExtent != y.RowExtent || x.ColExtent != y.ColExtent {
			return nil, ShapeMismatchError("DotInc", fmt.Sprintf(
				"scalar mode: X %dx%d must match Y %dx%d", x.RowExtent, x.ColExtent, y.RowExtent, y.ColExtent))
		}
		op.mode = dotIncScalar
	default:
		return nil, ShapeMismatchError("DotInc", fmt.Sprintf(
			"A cols (%d) must equal X rows (%d), or A must be 1x1", a.ColExtent, x.RowExtent))
	}
	return op, nil
}

func (op *DotIncOp) Kind() Kind { return KindDotInc }
func (op *DotIncOp) Reset()     {}

func (op *DotIncOp) Apply(s *Store, t, dt float64) error {
	switch op.mode {
	case dotIncMatMul:
		a := viewToDense(s, op.A)
		x := viewToDense(s, op.X)
		var prod mat.Dense
		prod.Mul(a, x)
		y := viewToDense(s, op.Y)
		var sum mat.Dense
		sum.Add(y, &prod)
		denseToView(s, op.Y, &sum)
	case dotIncScalar:
		aScalar := op.A.At(s, 0, 0)
		for r := 0; r < op.Y.RowExtent; r++ {
			for c := 0; c < op.Y.ColExtent; c++ {
				cur := op.Y.At(s, r, c)
				op.Y.Set(s, r, c, cur+aScalar*op.X.At(s, r, c))
			}
		}
	}
	return nil
}

// viewToDense materializes a view into a freshly allocated *mat.Dense in
// row-major logical order.
func viewToDense(s *Store, v View) *mat.Dense {
	return mat.NewDense(v.RowExtent, v.ColExtent, v.Flat1D(s))
}

// denseToView writes a *mat.Dense of matching shape back through a view.
func denseToView(s *Store, v View, d *mat.Dense) {
	rows, cols := d.Dims()
	flat := make([]float64, rows*cols)
	n := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			flat[n] = d.At(r, c)
			n++
		}
	}
	v.SetFlat1D(s, flat)
}
