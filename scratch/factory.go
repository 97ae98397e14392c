// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scratch

import (
	"fmt"

	"chunksim"
)

// NewOperator builds an Operator from the "ClassName; arg1; arg2; ..."
// grammar of spec.md §6, resolving view-string arguments against store.
// Callback cannot be built this way -- its contract is a Go closure, which
// has no string encoding -- so it is out of scope for this factory; chunks
// that need a Callback operator register it directly via Chunk.AddOp.
func NewOperator(desc string, store *chunksim.Store) (chunksim.Operator, error) {
	class, args := splitArgs(desc)
	build, ok := builders[class]
	if !ok {
		return nil, chunksim.UnknownOperatorError(class)
	}
	return build(store, args)
}

type builderFunc func(store *chunksim.Store, args []string) (chunksim.Operator, error)

var builders = map[string]builderFunc{
	"Reset":           buildReset,
	"Copy":            buildCopy,
	"SlicedCopy":      buildSlicedCopy,
	"DotInc":          buildDotInc,
	"ElementwiseInc":  buildElementwiseInc,
	"NoDenSynapse":    buildNoDenSynapse,
	"SimpleSynapse":   buildSimpleSynapse,
	"Synapse":         buildSynapse,
	"TriangleSynapse": buildTriangleSynapse,
	"WhiteNoise":      buildWhiteNoise,
	"WhiteSignal":     buildWhiteSignal,
	"LIF":             buildLIF,
	"LIFRate":         buildLIFRate,
	"AdaptiveLIF":     buildAdaptiveLIF,
	"AdaptiveLIFRate": buildAdaptiveLIFRate,
	"RectifiedLinear": buildRectifiedLinear,
	"Sigmoid":         buildSigmoid,
	"Izhikevich":      buildIzhikevich,
	"BCM":             buildBCM,
	"Oja":             buildOja,
	"Voja":            buildVoja,
}

func wantArgs(class string, args []string, n int) error {
	if len(args) != n {
		return chunksim.InvalidParameterError(class, fmt.Sprintf("expected %d arguments, got %d", n, len(args)))
	}
	return nil
}

func buildReset(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Reset", args, 2); err != nil {
		return nil, err
	}
	dst, err := parseView(store, args[0])
	if err != nil {
		return nil, err
	}
	v, err := parseScalar(args[1])
	if err != nil {
		return nil, err
	}
	return chunksim.NewResetOp(dst, v), nil
}

func buildCopy(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Copy", args, 2); err != nil {
		return nil, err
	}
	dst, err := parseView(store, args[0])
	if err != nil {
		return nil, err
	}
	src, err := parseView(store, args[1])
	if err != nil {
		return nil, err
	}
	return chunksim.NewCopyOp(dst, src)
}

// buildSlicedCopy supports the range grammar "B; A; inc; startA; stopA;
// stepA; startB; stopB; stepB". The explicit-sequence form (SeqA/SeqB) has
// no string encoding here; callers needing it build a SlicedCopyOp
// directly and register it with Chunk.AddOp.
func buildSlicedCopy(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("SlicedCopy", args, 9); err != nil {
		return nil, err
	}
	b, err := parseView(store, args[0])
	if err != nil {
		return nil, err
	}
	a, err := parseView(store, args[1])
	if err != nil {
		return nil, err
	}
	inc, err := parseBool(args[2])
	if err != nil {
		return nil, err
	}
	ints := make([]int, 6)
	for i, arg := range args[3:9] {
		v, err := parseInt(arg)
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	return chunksim.NewSlicedCopyOp(chunksim.SlicedCopyConfig{
		B: b, A: a, Inc: inc,
		StartA: ints[0], StopA: ints[1], StepA: ints[2],
		StartB: ints[3], StopB: ints[4], StepB: ints[5],
	})
}

func buildDotInc(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("DotInc", args, 3); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args)
	if err != nil {
		return nil, err
	}
	return chunksim.NewDotIncOp(views[0], views[1], views[2])
}

func buildElementwiseInc(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("ElementwiseInc", args, 3); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args)
	if err != nil {
		return nil, err
	}
	return chunksim.NewElementwiseIncOp(views[0], views[1], views[2])
}

func buildNoDenSynapse(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("NoDenSynapse", args, 3); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:2])
	if err != nil {
		return nil, err
	}
	b, err := parseScalar(args[2])
	if err != nil {
		return nil, err
	}
	return chunksim.NewNoDenSynapseOp(views[0], views[1], b)
}

func buildSimpleSynapse(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("SimpleSynapse", args, 4); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:2])
	if err != nil {
		return nil, err
	}
	a, err := parseScalar(args[2])
	if err != nil {
		return nil, err
	}
	b, err := parseScalar(args[3])
	if err != nil {
		return nil, err
	}
	return chunksim.NewSimpleSynapseOp(views[0], views[1], a, b)
}

func buildSynapse(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Synapse", args, 4); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:2])
	if err != nil {
		return nil, err
	}
	numer, err := parseList(args[2])
	if err != nil {
		return nil, err
	}
	denom, err := parseList(args[3])
	if err != nil {
		return nil, err
	}
	return chunksim.NewSynapseOp(views[0], views[1], numer, denom)
}

func buildTriangleSynapse(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("TriangleSynapse", args, 5); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:2])
	if err != nil {
		return nil, err
	}
	n0, err := parseScalar(args[2])
	if err != nil {
		return nil, err
	}
	ndiff, err := parseScalar(args[3])
	if err != nil {
		return nil, err
	}
	nTaps, err := parseInt(args[4])
	if err != nil {
		return nil, err
	}
	return chunksim.NewTriangleSynapseOp(views[0], views[1], n0, ndiff, nTaps)
}

func buildWhiteNoise(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("WhiteNoise", args, 6); err != nil {
		return nil, err
	}
	out, err := parseView(store, args[0])
	if err != nil {
		return nil, err
	}
	mean, err := parseScalar(args[1])
	if err != nil {
		return nil, err
	}
	std, err := parseScalar(args[2])
	if err != nil {
		return nil, err
	}
	doScale, err := parseBool(args[3])
	if err != nil {
		return nil, err
	}
	inc, err := parseBool(args[4])
	if err != nil {
		return nil, err
	}
	seed, err := parseInt(args[5])
	if err != nil {
		return nil, err
	}
	return chunksim.NewWhiteNoiseOp(out, mean, std, doScale, inc, int64(seed)), nil
}

func buildWhiteSignal(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("WhiteSignal", args, 2); err != nil {
		return nil, err
	}
	out, err := parseView(store, args[0])
	if err != nil {
		return nil, err
	}
	coefs, err := parseMatrix(args[1])
	if err != nil {
		return nil, err
	}
	return chunksim.NewWhiteSignalOp(out, coefs)
}

func buildLIF(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("LIF", args, 7); err != nil {
		return nil, err
	}
	tauRC, tauRef, minV, err := threeScalars(args[0], args[1], args[2])
	if err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[3:7])
	if err != nil {
		return nil, err
	}
	return chunksim.NewLIFOp(tauRC, tauRef, minV, views[0], views[1], views[2], views[3])
}

func buildLIFRate(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("LIFRate", args, 4); err != nil {
		return nil, err
	}
	tauRC, err := parseScalar(args[0])
	if err != nil {
		return nil, err
	}
	tauRef, err := parseScalar(args[1])
	if err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[2:4])
	if err != nil {
		return nil, err
	}
	return chunksim.NewLIFRateOp(tauRC, tauRef, views[0], views[1])
}

func buildAdaptiveLIF(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("AdaptiveLIF", args, 10); err != nil {
		return nil, err
	}
	tauRC, tauRef, minV, err := threeScalars(args[0], args[1], args[2])
	if err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[3:7])
	if err != nil {
		return nil, err
	}
	inner, err := chunksim.NewLIFOp(tauRC, tauRef, minV, views[0], views[1], views[2], views[3])
	if err != nil {
		return nil, err
	}
	tauN, err := parseScalar(args[7])
	if err != nil {
		return nil, err
	}
	incN, err := parseScalar(args[8])
	if err != nil {
		return nil, err
	}
	adaptation, err := parseView(store, args[9])
	if err != nil {
		return nil, err
	}
	return chunksim.NewAdaptiveLIFOp(inner, tauN, incN, adaptation)
}

func buildAdaptiveLIFRate(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("AdaptiveLIFRate", args, 7); err != nil {
		return nil, err
	}
	tauRC, err := parseScalar(args[0])
	if err != nil {
		return nil, err
	}
	tauRef, err := parseScalar(args[1])
	if err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[2:4])
	if err != nil {
		return nil, err
	}
	inner, err := chunksim.NewLIFRateOp(tauRC, tauRef, views[0], views[1])
	if err != nil {
		return nil, err
	}
	tauN, err := parseScalar(args[4])
	if err != nil {
		return nil, err
	}
	incN, err := parseScalar(args[5])
	if err != nil {
		return nil, err
	}
	adaptation, err := parseView(store, args[6])
	if err != nil {
		return nil, err
	}
	return chunksim.NewAdaptiveLIFRateOp(inner, tauN, incN, adaptation)
}

func buildRectifiedLinear(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("RectifiedLinear", args, 2); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args)
	if err != nil {
		return nil, err
	}
	return chunksim.NewRectifiedLinearOp(views[0], views[1])
}

func buildSigmoid(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Sigmoid", args, 3); err != nil {
		return nil, err
	}
	tauRef, err := parseScalar(args[0])
	if err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[1:3])
	if err != nil {
		return nil, err
	}
	return chunksim.NewSigmoidOp(tauRef, views[0], views[1])
}

func buildIzhikevich(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Izhikevich", args, 8); err != nil {
		return nil, err
	}
	scalars := make([]float64, 4)
	for i, arg := range args[:4] {
		v, err := parseScalar(arg)
		if err != nil {
			return nil, err
		}
		scalars[i] = v
	}
	views, err := parseViews(store, args[4:8])
	if err != nil {
		return nil, err
	}
	return chunksim.NewIzhikevichOp(scalars[0], scalars[1], scalars[2], scalars[3], views[0], views[1], views[2], views[3])
}

func buildBCM(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("BCM", args, 5); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:4])
	if err != nil {
		return nil, err
	}
	rate, err := parseScalar(args[4])
	if err != nil {
		return nil, err
	}
	return chunksim.NewBCMOp(views[0], views[1], views[2], views[3], rate)
}

func buildOja(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Oja", args, 6); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:4])
	if err != nil {
		return nil, err
	}
	rate, err := parseScalar(args[4])
	if err != nil {
		return nil, err
	}
	beta, err := parseScalar(args[5])
	if err != nil {
		return nil, err
	}
	return chunksim.NewOjaOp(views[0], views[1], views[2], views[3], rate, beta)
}

func buildVoja(store *chunksim.Store, args []string) (chunksim.Operator, error) {
	if err := wantArgs("Voja", args, 7); err != nil {
		return nil, err
	}
	views, err := parseViews(store, args[:5])
	if err != nil {
		return nil, err
	}
	scale, err := parseScalar(args[5])
	if err != nil {
		return nil, err
	}
	rate, err := parseScalar(args[6])
	if err != nil {
		return nil, err
	}
	return chunksim.NewVojaOp(views[0], views[1], views[2], views[3], views[4], scale, rate)
}

func parseViews(store *chunksim.Store, args []string) ([]chunksim.View, error) {
	out := make([]chunksim.View, len(args))
	for i, a := range args {
		v, err := parseView(store, a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func threeScalars(a, b, c string) (x, y, z float64, err error) {
	if x, err = parseScalar(a); err != nil {
		return
	}
	if y, err = parseScalar(b); err != nil {
		return
	}
	z, err = parseScalar(c)
	return
}
