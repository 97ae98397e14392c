// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"chunksim/transport"
)

// Master implements spec.md §4.6's master side. Opening a built-network
// artifact is out of this package's scope (spec.md's non-goals exclude
// file-format parsing); callers supply each worker's setup records
// already built, typically via the scratch package's operator-from-string
// factory syntax.
type Master struct {
	Link        transport.Link
	WorkerRanks []int
	SetupTag    int32
	ProbeTag    int32
	Comm        Collective
}

// NewMaster returns a Master coordinating the given worker ranks over link.
func NewMaster(link transport.Link, workerRanks []int, setupTag, probeTag int32, comm Collective) *Master {
	return &Master{Link: link, WorkerRanks: workerRanks, SetupTag: setupTag, ProbeTag: probeTag, Comm: comm}
}

// SendSetup implements spec.md §4.6 step 1 for one worker: it transmits
// records in order, terminated by STOP, each send-waited before the next
// so the shared setup tag is free to reuse.
func (m *Master) SendSetup(dst int, records []Record) error {
	for _, rec := range records {
		if err := m.Link.Send(rec, dst, m.SetupTag); err != nil {
			return fmt.Errorf("setup send to worker %d: %w", dst, err)
		}
		if err := m.Link.Wait(dst, m.SetupTag); err != nil {
			return fmt.Errorf("setup wait for worker %d: %w", dst, err)
		}
	}
	if err := m.Link.Send(StopRecord(), dst, m.SetupTag); err != nil {
		return fmt.Errorf("setup stop send to worker %d: %w", dst, err)
	}
	return m.Link.Wait(dst, m.SetupTag)
}

// SendAllSetup sends perWorker[rank]'s records to every rank in
// m.WorkerRanks, in the order m.WorkerRanks lists them.
func (m *Master) SendAllSetup(perWorker map[int][]Record) error {
	for _, dst := range m.WorkerRanks {
		if err := m.SendSetup(dst, perWorker[dst]); err != nil {
			return err
		}
	}
	return nil
}

// Run implements spec.md §4.6 steps 4-7 from the master's side: broadcast
// the step count, join the barrier that the BarrierOp at the end of every
// worker's operator list enters once per step, wait at the end-of-run
// barrier, then gather every worker's harvested probe data keyed by probe
// key.
func (m *Master) Run(n int) (map[int64][]float64, error) {
	if _, err := m.Comm.BroadcastStepCount(n); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := m.Comm.Barrier(); err != nil {
			return nil, err
		}
	}
	if err := m.Comm.Barrier(); err != nil {
		return nil, err
	}
	return m.gatherProbes()
}

// gatherProbes receives point-to-point, not over any empi collective: each
// worker streams its ProbeResults back over m.Link under m.ProbeTag, one
// Receive per result, terminated by a negative Count sentinel. Receive is
// already fully blocking, so there is no matching Wait call here -- Wait is
// the sender's confirmation step, not the receiver's.
func (m *Master) gatherProbes() (map[int64][]float64, error) {
	out := make(map[int64][]float64)
	for _, src := range m.WorkerRanks {
		for {
			var res ProbeResult
			if err := m.Link.Receive(&res, src, m.ProbeTag); err != nil {
				return nil, fmt.Errorf("probe receive from worker %d: %w", src, err)
			}
			if res.Count < 0 {
				break
			}
			out[res.Key] = append(out[res.Key], res.Payload...)
		}
	}
	return out, nil
}
