// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "fmt"

// ResetOp sets every element of Dst to Value on every step.
type ResetOp struct {
	Dst   View
	Value float64
}

// NewResetOp constructs a Reset operator.
func NewResetOp(dst View, value float64) *ResetOp {
	return &ResetOp{Dst: dst, Value: value}
}

func (op *ResetOp) Kind() Kind { return KindReset }
func (op *ResetOp) Reset()     {}

func (op *ResetOp) Apply(s *Store, t, dt float64) error {
	for r := 0; r < op.Dst.RowExtent; r++ {
		for c := 0; c < op.Dst.ColExtent; c++ {
			op.Dst.Set(s, r, c, op.Value)
		}
	}
	return nil
}

// CopyOp element-wise copies Src into Dst. Src and Dst must be the same
// shape; they may alias.
type CopyOp struct {
	Dst View
	Src View
}

// NewCopyOp constructs a Copy operator, failing with ErrShapeMismatch if
// Src and Dst extents differ.
func NewCopyOp(dst, src View) (*CopyOp, error) {
	if dst.RowExtent != src.RowExtent || dst.ColExtent != src.ColExtent {
		return nil, ShapeMismatchError("Copy", fmt.Sprintf("dst %dx%d vs src %dx%d",
			dst.RowExtent, dst.ColExtent, src.RowExtent, src.ColExtent))
	}
	return &CopyOp{Dst: dst, Src: src}, nil
}

func (op *CopyOp) Kind() Kind { return KindCopy }
func (op *CopyOp) Reset()     {}

func (op *CopyOp) Apply(s *Store, t, dt float64) error {
	// Snapshot first so overlapping src/dst windows read pre-image values,
	// matching the "may alias" contract of an element-wise copy.
	vals := op.Src.Flat1D(s)
	op.Dst.SetFlat1D(s, vals)
	return nil
}

// indexRange generates a strided index sequence start:stop:step, matching
// the grammar SlicedCopy accepts when no explicit sequence is supplied.
func indexRange(start, stop, step int) ([]int, error) {
	if step == 0 {
		return nil, InvalidParameterError("SlicedCopy", "step must be non-zero")
	}
	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

// SlicedCopyOp gathers from A and scatters into B using two
// independently generated 1-D index streams, optionally incrementing
// rather than overwriting the destination.
type SlicedCopyOp struct {
	B, A                 View
	Inc                  bool
	StartA, StopA, StepA int
	StartB, StopB, StepB int
	SeqA, SeqB           []int
}

// SlicedCopyConfig groups the constructor parameters for NewSlicedCopyOp.
type SlicedCopyConfig struct {
	B, A                 View
	Inc                  bool
	StartA, StopA, StepA int
	StartB, StopB, StepB int
	SeqA, SeqB           []int
}

// NewSlicedCopyOp validates and builds a SlicedCopy operator. If SeqA is
// non-empty, StartA/StopA/StepA must all be zero and indices come from
// SeqA (modulo len(A)); likewise for B. The resolved index streams must
// have equal length.
func NewSlicedCopyOp(cfg SlicedCopyConfig) (*SlicedCopyOp, error) {
	op := &SlicedCopyOp{
		B: cfg.B, A: cfg.A, Inc: cfg.Inc,
		StartA: cfg.StartA, StopA: cfg.StopA, StepA: cfg.StepA,
		StartB: cfg.StartB, StopB: cfg.StopB, StepB: cfg.StepB,
		SeqA: cfg.SeqA, SeqB: cfg.SeqB,
	}
	idxA, err := op.resolveIndicesA()
	if err != nil {
		return nil, err
	}
	idxB, err := op.resolveIndicesB()
	if err != nil {
		return nil, err
	}
	if len(idxA) != len(idxB) {
		return nil, ShapeMismatchError("SlicedCopy", fmt.Sprintf("index stream lengths differ: A=%d B=%d", len(idxA), len(idxB)))
	}
	return op, nil
}

func (op *SlicedCopyOp) resolveIndicesA() ([]int, error) {
	if len(op.SeqA) > 0 {
		if op.StartA != 0 || op.StopA != 0 || op.StepA != 0 {
			return nil, InvalidParameterError("SlicedCopy", "seq_A given but start/stop/step_A non-zero")
		}
		return modIndices(op.SeqA, op.A.Len()), nil
	}
	return indexRange(op.StartA, op.StopA, op.StepA)
}

func (op *SlicedCopyOp) resolveIndicesB() ([]int, error) {
	if len(op.SeqB) > 0 {
		if op.StartB != 0 || op.StopB != 0 || op.StepB != 0 {
			return nil, InvalidParameterError("SlicedCopy", "seq_B given but start/stop/step_B non-zero")
		}
		return modIndices(op.SeqB, op.B.Len()), nil
	}
	return indexRange(op.StartB, op.StopB, op.StepB)
}

func modIndices(seq []int, n int) []int {
	out := make([]int, len(seq))
	for i, v := range seq {
		m := v % n
		if m < 0 {
			m += n
		}
		out[i] = m
	}
	return out
}

func (op *SlicedCopyOp) Kind() Kind { return KindSlicedCopy }
func (op *SlicedCopyOp) Reset()     {}

func (op *SlicedCopyOp) Apply(s *Store, t, dt float64) error {
	idxA, err := op.resolveIndicesA()
	if err != nil {
		return err
	}
	idxB, err := op.resolveIndicesB()
	if err != nil {
		return err
	}
	aFlat := op.A.Flat1D(s)
	bFlat := op.B.Flat1D(s)
	for i := range idxA {
		v := aFlat[idxA[i]]
		if op.Inc {
			bFlat[idxB[i]] += v
		} else {
			bFlat[idxB[i]] = v
		}
	}
	op.B.SetFlat1D(s, bFlat)
	return nil
}
