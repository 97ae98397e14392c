// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import (
	"fmt"
	"math"
)

// izhikevichJFloor is the magic input-current floor the source clamps J to
// before integrating. It has no cited rationale there; spec.md directs
// implementations to reproduce it as-is rather than second-guess it.
const izhikevichJFloor = -30.0

func sameShape(name string, views ...View) error {
	if len(views) == 0 {
		return nil
	}
	r, c := views[0].RowExtent, views[0].ColExtent
	for _, v := range views[1:] {
		if v.RowExtent != r || v.ColExtent != c {
			return ShapeMismatchError(name, fmt.Sprintf("all views must be %dx%d", r, c))
		}
	}
	return nil
}

// LIFOp implements the leaky integrate-and-fire neuron model of spec.md
// §4.2: membrane potential integration, refractory clamping, and spike
// emission with sub-step overshoot correction.
type LIFOp struct {
	TauRC, TauRef, MinV float64
	J, Out, V, RefT      View
}

func NewLIFOp(tauRC, tauRef, minV float64, j, out, v, refT View) (*LIFOp, error) {
	if err := sameShape("LIF", j, out, v, refT); err != nil {
		return nil, err
	}
	return &LIFOp{TauRC: tauRC, TauRef: tauRef, MinV: minV, J: j, Out: out, V: v, RefT: refT}, nil
}

func (op *LIFOp) Kind() Kind { return KindLIF }
func (op *LIFOp) Reset()     {}

func (op *LIFOp) Apply(s *Store, t, dt float64) error {
	j := op.J.Flat1D(s)
	v := op.V.Flat1D(s)
	refT := op.RefT.Flat1D(s)
	n := len(j)
	dV := make([]float64, n)
	out := make([]float64, n)

	decay := -math.Expm1(-dt / op.TauRC)
	for i := 0; i < n; i++ {
		dV[i] = decay * (j[i] - v[i])
		v[i] += dV[i]
		if v[i] < op.MinV {
			v[i] = op.MinV
		}
		refT[i] -= dt
		mult := 1 - refT[i]/dt
		mult = math.Max(0, math.Min(1, mult))
		v[i] *= mult
	}
	for i := 0; i < n; i++ {
		if v[i] > 1 {
			out[i] = 1 / dt
			overshoot := (v[i] - 1) / dV[i]
			refT[i] = op.TauRef + dt*(1-overshoot)
			v[i] = 0
		} else {
			out[i] = 0
		}
	}
	op.V.SetFlat1D(s, v)
	op.RefT.SetFlat1D(s, refT)
	op.Out.SetFlat1D(s, out)
	return nil
}

// LIFRateOp is the analytical firing-rate equivalent of LIFOp: for inputs
// above threshold it evaluates the closed-form ISI instead of simulating
// membrane dynamics.
type LIFRateOp struct {
	TauRC, TauRef float64
	J, Out        View
}

func NewLIFRateOp(tauRC, tauRef float64, j, out View) (*LIFRateOp, error) {
	if err := sameShape("LIFRate", j, out); err != nil {
		return nil, err
	}
	return &LIFRateOp{TauRC: tauRC, TauRef: tauRef, J: j, Out: out}, nil
}

func (op *LIFRateOp) Kind() Kind { return KindLIFRate }
func (op *LIFRateOp) Reset()     {}

func (op *LIFRateOp) Apply(s *Store, t, dt float64) error {
	j := op.J.Flat1D(s)
	out := make([]float64, len(j))
	for i, ji := range j {
		if ji > 1 {
			out[i] = 1 / (op.TauRef + op.TauRC*math.Log1p(1/(ji-1)))
		} else {
			out[i] = 0
		}
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// AdaptiveLIFOp wraps LIFOp with a spike-rate adaptation current, following
// the exact save-J / subtract-adaptation / delegate / restore-J / update-
// adaptation sequencing spec.md §9 calls out for this pair of operators.
type AdaptiveLIFOp struct {
	Inner      *LIFOp
	TauN       float64
	IncN       float64
	Adaptation View
}

func NewAdaptiveLIFOp(inner *LIFOp, tauN, incN float64, adaptation View) (*AdaptiveLIFOp, error) {
	if err := sameShape("AdaptiveLIF", inner.J, adaptation); err != nil {
		return nil, err
	}
	return &AdaptiveLIFOp{Inner: inner, TauN: tauN, IncN: incN, Adaptation: adaptation}, nil
}

func (op *AdaptiveLIFOp) Kind() Kind { return KindAdaptiveLIF }
func (op *AdaptiveLIFOp) Reset()     { op.Inner.Reset() }

func (op *AdaptiveLIFOp) Apply(s *Store, t, dt float64) error {
	jOrig := op.Inner.J.Flat1D(s)
	adapt := op.Adaptation.Flat1D(s)
	jAdapted := make([]float64, len(jOrig))
	for i := range jOrig {
		jAdapted[i] = jOrig[i] - adapt[i]
	}
	op.Inner.J.SetFlat1D(s, jAdapted)
	if err := op.Inner.Apply(s, t, dt); err != nil {
		return err
	}
	op.Inner.J.SetFlat1D(s, jOrig)

	out := op.Inner.Out.Flat1D(s)
	for i := range adapt {
		adapt[i] += (dt / op.TauN) * (op.IncN*out[i] - adapt[i])
	}
	op.Adaptation.SetFlat1D(s, adapt)
	return nil
}

// AdaptiveLIFRateOp wraps LIFRateOp the same way AdaptiveLIFOp wraps LIFOp.
// Per spec.md §9's Open Question: LIFRate reads J during the window it is
// reduced by adaptation, and that sequencing is reproduced exactly (not
// "fixed" to read the pre-adaptation J).
type AdaptiveLIFRateOp struct {
	Inner      *LIFRateOp
	TauN       float64
	IncN       float64
	Adaptation View
}

func NewAdaptiveLIFRateOp(inner *LIFRateOp, tauN, incN float64, adaptation View) (*AdaptiveLIFRateOp, error) {
	if err := sameShape("AdaptiveLIFRate", inner.J, adaptation); err != nil {
		return nil, err
	}
	return &AdaptiveLIFRateOp{Inner: inner, TauN: tauN, IncN: incN, Adaptation: adaptation}, nil
}

func (op *AdaptiveLIFRateOp) Kind() Kind { return KindAdaptiveLIFRate }
func (op *AdaptiveLIFRateOp) Reset()     {}

func (op *AdaptiveLIFRateOp) Apply(s *Store, t, dt float64) error {
	jOrig := op.Inner.J.Flat1D(s)
	adapt := op.Adaptation.Flat1D(s)
	jAdapted := make([]float64, len(jOrig))
	for i := range jOrig {
		jAdapted[i] = jOrig[i] - adapt[i]
	}
	op.Inner.J.SetFlat1D(s, jAdapted) // LIFRate below reads this reduced J, per spec.md's Open Question.
	if err := op.Inner.Apply(s, t, dt); err != nil {
		return err
	}
	op.Inner.J.SetFlat1D(s, jOrig)

	out := op.Inner.Out.Flat1D(s)
	for i := range adapt {
		adapt[i] += (dt / op.TauN) * (op.IncN*out[i] - adapt[i])
	}
	op.Adaptation.SetFlat1D(s, adapt)
	return nil
}

// RectifiedLinearOp computes out = max(J, 0).
type RectifiedLinearOp struct {
	J, Out View
}

func NewRectifiedLinearOp(j, out View) (*RectifiedLinearOp, error) {
	if err := sameShape("RectifiedLinear", j, out); err != nil {
		return nil, err
	}
	return &RectifiedLinearOp{J: j, Out: out}, nil
}

func (op *RectifiedLinearOp) Kind() Kind { return KindRectifiedLinear }
func (op *RectifiedLinearOp) Reset()     {}

func (op *RectifiedLinearOp) Apply(s *Store, t, dt float64) error {
	j := op.J.Flat1D(s)
	out := make([]float64, len(j))
	for i, v := range j {
		out[i] = math.Max(v, 0)
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// SigmoidOp computes out = (1/TauRef) * sigmoid(J).
type SigmoidOp struct {
	TauRef float64
	J, Out View
}

func NewSigmoidOp(tauRef float64, j, out View) (*SigmoidOp, error) {
	if err := sameShape("Sigmoid", j, out); err != nil {
		return nil, err
	}
	return &SigmoidOp{TauRef: tauRef, J: j, Out: out}, nil
}

func (op *SigmoidOp) Kind() Kind { return KindSigmoid }
func (op *SigmoidOp) Reset()     {}

func (op *SigmoidOp) Apply(s *Store, t, dt float64) error {
	j := op.J.Flat1D(s)
	out := make([]float64, len(j))
	for i, v := range j {
		out[i] = (1 / op.TauRef) * (1 / (1 + math.Exp(-v)))
	}
	op.Out.SetFlat1D(s, out)
	return nil
}

// IzhikevichOp implements the two-variable quadratic integrate-and-fire
// model with the explicit-Euler discretisation spec.md §4.2 specifies.
type IzhikevichOp struct {
	TauRecovery, Coupling, ResetV, ResetU float64
	J, Out, V, U                          View
}

func NewIzhikevichOp(tauRecovery, coupling, resetV, resetU float64, j, out, v, u View) (*IzhikevichOp, error) {
	if err := sameShape("Izhikevich", j, out, v, u); err != nil {
		return nil, err
	}
	return &IzhikevichOp{TauRecovery: tauRecovery, Coupling: coupling, ResetV: resetV, ResetU: resetU, J: j, Out: out, V: v, U: u}, nil
}

func (op *IzhikevichOp) Kind() Kind { return KindIzhikevich }
func (op *IzhikevichOp) Reset()     {}

func (op *IzhikevichOp) Apply(s *Store, t, dt float64) error {
	j := op.J.Flat1D(s)
	v := op.V.Flat1D(s)
	u := op.U.Flat1D(s)
	out := make([]float64, len(j))
	for i := range j {
		ji := math.Max(j[i], izhikevichJFloor)
		j[i] = ji
		dV := 1000 * dt * (0.04*v[i]*v[i] + 5*v[i] + 140 + ji - u[i])
		v[i] += dV
		spiked := v[i] >= 30
		if spiked {
			out[i] = 1 / dt
			v[i] = op.ResetV
		} else {
			out[i] = 0
		}
		dU := 1000 * dt * op.TauRecovery * (op.Coupling*v[i] - u[i])
		u[i] += dU
		if spiked {
			u[i] += op.ResetU
		}
	}
	op.J.SetFlat1D(s, j)
	op.V.SetFlat1D(s, v)
	op.U.SetFlat1D(s, u)
	op.Out.SetFlat1D(s, out)
	return nil
}
