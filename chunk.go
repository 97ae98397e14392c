// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import "fmt"

// Chunk is one process's slice of the network: a signal store, an ordered
// operator list, a set of probes, and the per-chunk scalars spec.md §4.5
// names. Registration (AddBase/AddOp/AddSend/AddRecv/AddWait and the
// AddProbeFromString/AddProbeFromView/AddExistingProbe methods) is
// single-threaded setup-time activity that must finish before RunSteps;
// once a run starts, the operator list's order is immutable.
type Chunk struct {
	Signals *Store
	Ops     []Operator
	Probes  map[int64]*Probe
	Dt      float64
	Time    float64
	Step    int
	Label   string

	wired bool
}

// NewChunk constructs an empty Chunk at time 0, step 0, with the given time
// step and label.
func NewChunk(label string, dt float64) *Chunk {
	return &Chunk{
		Signals: NewStore(),
		Probes:  make(map[int64]*Probe),
		Dt:      dt,
		Label:   label,
	}
}

// AddBase registers a new base signal directly on the chunk's store.
func (c *Chunk) AddBase(key int64, label string, rows, cols int, initial []float64) (*Base, error) {
	return c.Signals.RegisterBase(key, label, rows, cols, initial)
}

// AddOp appends an already-built operator to the chunk's operator list.
func (c *Chunk) AddOp(op Operator) {
	c.Ops = append(c.Ops, op)
}

// AddSend appends a Send (or any WaitLinker) operator. Its matching Wait is
// located and linked lazily, the first time RunSteps is called, so Send and
// its Wait may be registered in either order.
func (c *Chunk) AddSend(send WaitLinker) {
	c.Ops = append(c.Ops, send)
}

// AddRecv appends a Recv (or any WaitLinker) operator, wired the same way
// AddSend is.
func (c *Chunk) AddRecv(recv WaitLinker) {
	c.Ops = append(c.Ops, recv)
}

// AddWait appends a Wait operator.
func (c *Chunk) AddWait(wait TagOperator) {
	c.Ops = append(c.Ops, wait)
}

// AddProbeFromString registers a new probe sampling the view described by
// signalStr, per the grammar in spec.md §6.
func (c *Chunk) AddProbeFromString(key int64, signalStr string, period int) (*Probe, error) {
	v, err := c.Signals.NewViewFromString(signalStr)
	if err != nil {
		return nil, err
	}
	return c.AddProbeFromView(key, v, period)
}

// AddProbeFromView registers a new probe sampling view, directly.
func (c *Chunk) AddProbeFromView(key int64, v View, period int) (*Probe, error) {
	p, err := NewProbe(key, v, period)
	if err != nil {
		return nil, err
	}
	c.Probes[key] = p
	return p, nil
}

// AddExistingProbe registers an already-constructed probe under key.
func (c *Chunk) AddExistingProbe(key int64, p *Probe) {
	c.Probes[key] = p
}

// wireTransport resolves every pending Send/Recv -> Wait link by tag,
// scanning the full operator list once. It is idempotent and runs
// automatically the first time RunSteps is called.
func (c *Chunk) wireTransport() error {
	if c.wired {
		return nil
	}
	waits := make(map[int32]TagOperator)
	for _, op := range c.Ops {
		if w, ok := op.(TagOperator); ok && op.Kind() == KindWait {
			waits[w.Tag()] = w
		}
	}
	for _, op := range c.Ops {
		linker, ok := op.(WaitLinker)
		if !ok {
			continue
		}
		w, found := waits[linker.Tag()]
		if !found {
			return UnmatchedTagError(linker.Tag())
		}
		linker.LinkWait(w)
	}
	c.wired = true
	return nil
}

// RunSteps advances the chunk n steps: for each step, every operator is
// invoked in insertion order, then every probe samples if its period
// divides the step index, then the step counter and simulated time
// advance by dt.
func (c *Chunk) RunSteps(n int) error {
	if err := c.wireTransport(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		for _, op := range c.Ops {
			if err := op.Apply(c.Signals, c.Time, c.Dt); err != nil {
				return fmt.Errorf("chunk %q step %d operator %s: %w", c.Label, c.Step, op.Kind(), err)
			}
		}
		for _, p := range c.Probes {
			p.Sample(c.Signals, c.Step)
		}
		c.Step++
		c.Time += c.Dt
	}
	return nil
}

// InitProbesForRun calls InitForRun(nSteps) on every registered probe,
// matching spec.md §4.3's pre-allocation contract.
func (c *Chunk) InitProbesForRun(nSteps int) error {
	for key, p := range c.Probes {
		if err := p.InitForRun(nSteps); err != nil {
			return fmt.Errorf("chunk %q probe %d: %w", c.Label, key, err)
		}
	}
	return nil
}

// HarvestProbes returns every probe's accumulated snapshots keyed by probe
// key, clearing each probe's history in the process.
func (c *Chunk) HarvestProbes() map[int64][]Snapshot {
	out := make(map[int64][]Snapshot, len(c.Probes))
	for key, p := range c.Probes {
		out[key] = p.Harvest()
	}
	return out
}
