// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

// Operator is the single contract every numeric operator satisfies: apply
// the one-step update, reading its inputs and writing its outputs, with no
// awareness of other operators in the chunk's list. Operators are
// value-identity objects; only their position in a Chunk's operator list
// matters, never their equality or hash.
type Operator interface {
	// Apply performs one step's update against the given Store, at
	// simulated time t with step size dt.
	Apply(s *Store, t, dt float64) error

	// Kind names the operator's catalogue entry, for logging and for the
	// scratch factory's error messages.
	Kind() Kind

	// Reset returns per-operator state (ring buffers, RNG seeds, step
	// counters) to its construction-time defaults.
	Reset()
}

// Kind identifies an operator's catalogue entry. It follows the teacher's
// lightweight enum style (plain iota constants with a String method)
// rather than pulling in kit.Enums reflection machinery that exists to
// support GUI enum editors -- there is no GUI surface here to register
// with.
type Kind int

const (
	KindReset Kind = iota
	KindCopy
	KindSlicedCopy
	KindDotInc
	KindElementwiseInc
	KindNoDenSynapse
	KindSimpleSynapse
	KindSynapse
	KindTriangleSynapse
	KindWhiteNoise
	KindWhiteSignal
	KindLIF
	KindLIFRate
	KindAdaptiveLIF
	KindAdaptiveLIFRate
	KindRectifiedLinear
	KindSigmoid
	KindIzhikevich
	KindBCM
	KindOja
	KindVoja
	KindCallback
	KindSend
	KindRecv
	KindWait
	KindBarrier
)

var kindNames = [...]string{
	"Reset", "Copy", "SlicedCopy", "DotInc", "ElementwiseInc",
	"NoDenSynapse", "SimpleSynapse", "Synapse", "TriangleSynapse",
	"WhiteNoise", "WhiteSignal", "LIF", "LIFRate", "AdaptiveLIF",
	"AdaptiveLIFRate", "RectifiedLinear", "Sigmoid", "Izhikevich",
	"BCM", "Oja", "Voja", "Callback", "Send", "Recv", "Wait", "Barrier",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}
