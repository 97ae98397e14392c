// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"chunksim"
	"chunksim/scratch"
	"chunksim/transport"
)

// Worker implements spec.md §4.6's worker side: it consumes a setup stream
// from the master into a Chunk, runs the broadcast step count, and reports
// probe results back.
type Worker struct {
	Link       transport.Link
	MasterRank int
	SetupTag   int32
	ProbeTag   int32
	Comm       Collective

	Chunk *chunksim.Chunk
}

// NewWorker returns a Worker receiving setup and sending probe results over
// link, addressed to masterRank.
func NewWorker(link transport.Link, masterRank int, setupTag, probeTag int32, comm Collective) *Worker {
	return &Worker{Link: link, MasterRank: masterRank, SetupTag: setupTag, ProbeTag: probeTag, Comm: comm}
}

// RunSetup implements spec.md §4.6 steps 2-3: it builds this worker's chunk
// by consuming ADD_SIGNAL/ADD_OP/ADD_PROBE records until STOP, then appends
// the implicit global-barrier operator. Each record is taken with a plain
// Receive, which already blocks until the transfer lands -- no matching
// Wait follows, since Wait confirms a send completed, not a receive.
func (w *Worker) RunSetup(dt float64) error {
	w.Chunk = chunksim.NewChunk(fmt.Sprintf("worker-%d", w.Comm.Rank()), dt)
	for {
		var rec Record
		if err := w.Link.Receive(&rec, w.MasterRank, w.SetupTag); err != nil {
			return fmt.Errorf("worker %d setup receive: %w", w.Comm.Rank(), err)
		}
		switch rec.Flag {
		case FlagStop:
			w.Chunk.AddOp(NewBarrierOp(w.Comm))
			return nil
		case FlagAddSignal:
			if _, err := w.Chunk.AddBase(rec.Key, rec.Label, rec.Rows, rec.Cols, rec.Payload); err != nil {
				return err
			}
		case FlagAddOp:
			op, err := scratch.NewOperator(rec.OpDesc, w.Chunk.Signals)
			if err != nil {
				return err
			}
			w.Chunk.AddOp(op)
		case FlagAddProbe:
			if _, err := w.Chunk.AddProbeFromString(rec.ProbeKey, rec.SignalStr, rec.Period); err != nil {
				return err
			}
		case FlagAddSend:
			v, err := w.Chunk.Signals.NewViewFromString(rec.ViewStr)
			if err != nil {
				return err
			}
			w.Chunk.AddSend(transport.NewSendOp(rec.Tag, rec.PeerRank, v, w.Link))
		case FlagAddRecv:
			v, err := w.Chunk.Signals.NewViewFromString(rec.ViewStr)
			if err != nil {
				return err
			}
			w.Chunk.AddRecv(transport.NewRecvOp(rec.Tag, rec.PeerRank, v, w.Link))
		case FlagAddWait:
			w.Chunk.AddWait(transport.NewWaitOp(rec.Tag, w.Link))
		default:
			return fmt.Errorf("worker %d setup: unknown record flag %d", w.Comm.Rank(), rec.Flag)
		}
	}
}

// Run implements spec.md §4.6 steps 4-7 from the worker's side: receive the
// broadcast step count, run the chunk, synchronize at the end-of-run
// barrier, then report every probe's harvested snapshots back to master.
func (w *Worker) Run() error {
	n, err := w.Comm.BroadcastStepCount(0)
	if err != nil {
		return err
	}
	if err := w.Chunk.InitProbesForRun(n); err != nil {
		return err
	}
	if err := w.Chunk.RunSteps(n); err != nil {
		return err
	}
	if err := w.Comm.Barrier(); err != nil {
		return err
	}
	return w.sendProbeResults()
}

func (w *Worker) sendProbeResults() error {
	for key, snaps := range w.Chunk.HarvestProbes() {
		var payload []float64
		for _, sn := range snaps {
			payload = append(payload, sn.Data...)
		}
		res := ProbeResult{Key: key, Count: len(payload), Payload: payload}
		if err := w.Link.Send(res, w.MasterRank, w.ProbeTag); err != nil {
			return err
		}
		if err := w.Link.Wait(w.MasterRank, w.ProbeTag); err != nil {
			return err
		}
	}
	term := ProbeResult{Key: -1, Count: -1}
	if err := w.Link.Send(term, w.MasterRank, w.ProbeTag); err != nil {
		return err
	}
	return w.Link.Wait(w.MasterRank, w.ProbeTag)
}
