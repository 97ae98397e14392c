// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

// Probe periodically samples a target View into an append-only history of
// snapshots, per spec.md §4.3. History preserves insertion order and, after
// a run of N steps with period P, has exactly floor(N/P) entries.
type Probe struct {
	Key     int64
	Target  View
	Period  int
	History []Snapshot

	maxSamples int
}

// Snapshot is one captured sample: the view's flattened contents at the
// step it was taken.
type Snapshot struct {
	Step int
	Data []float64
}

// NewProbe constructs a Probe. Period must be a positive number of steps;
// a non-positive period is ErrInvalidParameter.
func NewProbe(key int64, target View, period int) (*Probe, error) {
	if period <= 0 {
		return nil, InvalidParameterError("Probe", "period must be a positive integer")
	}
	return &Probe{Key: key, Target: target, Period: period}, nil
}

// InitForRun pre-allocates floor(nSteps/period) storage slots and caps
// History at that count, failing with ErrNotEmpty if the probe's history
// already holds snapshots from a prior run that was never harvested. The
// cap matters at the boundary: a run of 10 steps at period 3 lands on step
// indices 0, 3, 6, and 9, but spec.md's testable properties call for
// exactly floor(10/3) = 3 snapshots, so the 4th candidate (step 9) is
// dropped rather than captured.
func (p *Probe) InitForRun(nSteps int) error {
	if len(p.History) != 0 {
		return NotEmptyError(p.Key)
	}
	p.maxSamples = nSteps / p.Period
	p.History = make([]Snapshot, 0, p.maxSamples)
	return nil
}

// Sample snapshots the target view into the next slot if step is a
// multiple of the probe's period and the run's sample cap has not yet
// been reached.
func (p *Probe) Sample(s *Store, step int) {
	if step%p.Period != 0 {
		return
	}
	if len(p.History) >= p.maxSamples {
		return
	}
	p.History = append(p.History, Snapshot{Step: step, Data: p.Target.Flat1D(s)})
}

// Harvest hands back the accumulated snapshots and clears the probe's
// history so it is ready for another InitForRun.
func (p *Probe) Harvest() []Snapshot {
	out := p.History
	p.History = nil
	return out
}
