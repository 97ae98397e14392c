// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "fmt"

// requireColumn checks a view is a single-column vector of the given
// length; a row-shaped view is rejected.
func requireColumn(name string, v View, n int) error {
	if v.ColExtent != 1 || v.RowExtent != n {
		return ShapeMismatchError(name, fmt.Sprintf("expected %dx1 column, got %dx%d", n, v.RowExtent, v.ColExtent))
	}
	return nil
}

// requireMatrix checks a view has the given row and column extents.
func requireMatrix(name string, v View, rows, cols int) error {
	if v.RowExtent != rows || v.ColExtent != cols {
		return ShapeMismatchError(name, fmt.Sprintf("expected %dx%d, got %dx%d", rows, cols, v.RowExtent, v.ColExtent))
	}
	return nil
}

// BCMOp implements the Bienenstock-Cooper-Munro learning rule:
// Delta += alpha*(post ⊙ (post - theta)) * pre^T, alpha = rate*dt.
type BCMOp struct {
	Pre, Post, Theta, Delta View
	Rate                    float64
}

func NewBCMOp(pre, post, theta, delta View, rate float64) (*BCMOp, error) {
	npre, npost := pre.RowExtent, post.RowExtent
	if err := requireColumn("BCM", pre, npre); err != nil {
		return nil, err
	}
	if err := requireColumn("BCM", post, npost); err != nil {
		return nil, err
	}
	if err := requireColumn("BCM", theta, npost); err != nil {
		return nil, err
	}
	if err := requireMatrix("BCM", delta, npost, npre); err != nil {
		return nil, err
	}
	return &BCMOp{Pre: pre, Post: post, Theta: theta, Delta: delta, Rate: rate}, nil
}

func (op *BCMOp) Kind() Kind { return KindBCM }
func (op *BCMOp) Reset()     {}

func (op *BCMOp) Apply(s *Store, t, dt float64) error {
	alpha := op.Rate * dt
	pre := op.Pre.Flat1D(s)
	post := op.Post.Flat1D(s)
	theta := op.Theta.Flat1D(s)
	for i := range post {
		factor := alpha * post[i] * (post[i] - theta[i])
		for j := range pre {
			cur := op.Delta.At(s, i, j)
			op.Delta.Set(s, i, j, cur+factor*pre[j])
		}
	}
	return nil
}

// OjaOp implements Oja's rule: Delta = alpha*post*pre^T - alpha*beta*W*diag(post^2),
// alpha = rate*dt. Note the assignment, not increment, matching the literal
// source semantics.
type OjaOp struct {
	Pre, Post, W, Delta View
	Rate, Beta          float64
}

func NewOjaOp(pre, post, w, delta View, rate, beta float64) (*OjaOp, error) {
	npre, npost := pre.RowExtent, post.RowExtent
	if err := requireColumn("Oja", pre, npre); err != nil {
		return nil, err
	}
	if err := requireColumn("Oja", post, npost); err != nil {
		return nil, err
	}
	if err := requireMatrix("Oja", w, npost, npre); err != nil {
		return nil, err
	}
	if err := requireMatrix("Oja", delta, npost, npre); err != nil {
		return nil, err
	}
	return &OjaOp{Pre: pre, Post: post, W: w, Delta: delta, Rate: rate, Beta: beta}, nil
}

func (op *OjaOp) Kind() Kind { return KindOja }
func (op *OjaOp) Reset()     {}

func (op *OjaOp) Apply(s *Store, t, dt float64) error {
	alpha := op.Rate * dt
	pre := op.Pre.Flat1D(s)
	post := op.Post.Flat1D(s)
	for i := range post {
		post2 := post[i] * post[i]
		for j := range pre {
			w := op.W.At(s, i, j)
			val := alpha*post[i]*pre[j] - alpha*op.Beta*w*post2
			op.Delta.Set(s, i, j, val)
		}
	}
	return nil
}

// VojaOp implements Voja's rule: Delta = alpha*L0*(scale*post*pre^T - post ⊙ E),
// alpha = rate*dt. L must be a 1-element view holding the learning gate L0.
type VojaOp struct {
	Pre, Post, E, Delta, L View
	Scale, Rate            float64
}

func NewVojaOp(pre, post, e, delta, l View, scale, rate float64) (*VojaOp, error) {
	npre, npost := pre.RowExtent, post.RowExtent
	if err := requireColumn("Voja", pre, npre); err != nil {
		return nil, err
	}
	if err := requireColumn("Voja", post, npost); err != nil {
		return nil, err
	}
	if err := requireMatrix("Voja", e, npost, npre); err != nil {
		return nil, err
	}
	if err := requireMatrix("Voja", delta, npost, npre); err != nil {
		return nil, err
	}
	if l.RowExtent != 1 || l.ColExtent != 1 {
		return nil, ShapeMismatchError("Voja", "L must be a 1-element view")
	}
	return &VojaOp{Pre: pre, Post: post, E: e, Delta: delta, L: l, Scale: scale, Rate: rate}, nil
}

func (op *VojaOp) Kind() Kind { return KindVoja }
func (op *VojaOp) Reset()     {}

func (op *VojaOp) Apply(s *Store, t, dt float64) error {
	alpha := op.Rate * dt * op.L.At(s, 0, 0)
	pre := op.Pre.Flat1D(s)
	post := op.Post.Flat1D(s)
	for i := range post {
		for j := range pre {
			e := op.E.At(s, i, j)
			val := alpha * (op.Scale*post[i]*pre[j] - post[i]*e)
			op.Delta.Set(s, i, j, val)
		}
	}
	return nil
}
