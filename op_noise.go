// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WhiteNoiseOp draws IID Gaussian samples with parameters (Mean, Std),
// optionally scaled by 1/dt, and either adds to or overwrites Out. Each
// operator owns its own generator, seeded from Seed, so that Reset-and-rerun
// determinism (property 1 in spec.md §8) holds independent of any other
// stochastic operator's seeding order.
type WhiteNoiseOp struct {
	Out      View
	Mean     float64
	Std      float64
	DoScale  bool
	Inc      bool
	Seed     int64
	dist     distuv.Normal
}

// NewWhiteNoiseOp constructs a WhiteNoise operator and seeds its generator.
func NewWhiteNoiseOp(out View, mean, std float64, doScale, inc bool, seed int64) *WhiteNoiseOp {
	op := &WhiteNoiseOp{Out: out, Mean: mean, Std: std, DoScale: doScale, Inc: inc, Seed: seed}
	op.seedDist()
	return op
}

func (op *WhiteNoiseOp) seedDist() {
	op.dist = distuv.Normal{Mu: op.Mean, Sigma: op.Std, Src: rand.New(rand.NewSource(uint64(op.Seed)))}
}

func (op *WhiteNoiseOp) Kind() Kind { return KindWhiteNoise }

// Reset reseeds the generator so a fresh run reproduces the same sample
// sequence as any prior run constructed with the same seed.
func (op *WhiteNoiseOp) Reset() { op.seedDist() }

func (op *WhiteNoiseOp) Apply(s *Store, t, dt float64) error {
	for r := 0; r < op.Out.RowExtent; r++ {
		for c := 0; c < op.Out.ColExtent; c++ {
			v := op.dist.Rand()
			if op.DoScale {
				v /= dt
			}
			if op.Inc {
				v += op.Out.At(s, r, c)
			}
			op.Out.Set(s, r, c, v)
		}
	}
	return nil
}

// WhiteSignalOp replays a fixed table of coefficients: at step k, writes
// row (k mod R) of Coefs across Out, where R is the number of rows in
// Coefs.
type WhiteSignalOp struct {
	Out   View
	Coefs *mat.Dense
	step  int
}

// NewWhiteSignalOp constructs a WhiteSignal operator. Coefs must have at
// least as many columns as Out has elements.
func NewWhiteSignalOp(out View, coefs *mat.Dense) (*WhiteSignalOp, error) {
	_, cols := coefs.Dims()
	if cols < out.Len() {
		return nil, ShapeMismatchError("WhiteSignal", "coefs must have at least len(out) columns")
	}
	return &WhiteSignalOp{Out: out, Coefs: coefs}, nil
}

func (op *WhiteSignalOp) Kind() Kind { return KindWhiteSignal }
func (op *WhiteSignalOp) Reset()     { op.step = 0 }

func (op *WhiteSignalOp) Apply(s *Store, t, dt float64) error {
	rows, _ := op.Coefs.Dims()
	row := op.step % rows
	n := op.Out.Len()
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = op.Coefs.At(row, i)
	}
	op.Out.SetFlat1D(s, vals)
	op.step++
	return nil
}
