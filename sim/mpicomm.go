// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/emer/empi/v2/mpi"

	"chunksim"
)

// MPIComm wraps github.com/emer/empi/v2/mpi's world communicator for the
// two collective operations spec.md §4.6 needs: broadcasting the step
// count (step 4) and the end-of-run barrier (step 6). empi exposes
// collectives as reductions (AllReduceF32 summing or maxing a per-rank
// buffer across the world), not a dedicated Bcast/Barrier call, so both are
// built on top of it: a broadcast is an all-reduce-max where only the
// source rank's slot is non-zero, and a barrier is an all-reduce whose
// result every rank discards, which still forces every rank to have
// reached the call before any of them can leave it.
type MPIComm struct {
	comm *mpi.Comm
	rank int
	size int
}

// NewMPIComm initializes empi's world communicator. Call once per process,
// after mpi.Init() has been run by the host program (normally main).
func NewMPIComm() (*MPIComm, error) {
	comm, err := mpi.NewComm(nil)
	if err != nil {
		return nil, err
	}
	return &MPIComm{comm: comm, rank: mpi.WorldRank(), size: mpi.WorldSize()}, nil
}

// Rank returns this process's rank in the world communicator.
func (c *MPIComm) Rank() int { return c.rank }

// Size returns the world communicator's size.
func (c *MPIComm) Size() int { return c.size }

// BroadcastStepCount distributes n, set by the master (rank 0), to every
// worker, per spec.md §4.6 step 4.
func (c *MPIComm) BroadcastStepCount(n int) (int, error) {
	src := make([]float32, 1)
	if c.rank == 0 {
		src[0] = float32(n)
	}
	dst := make([]float32, 1)
	if err := c.comm.AllReduceF32(mpi.OpMax, dst, src); err != nil {
		return 0, err
	}
	return int(dst[0]), nil
}

// Barrier blocks until every process in the world communicator has called
// Barrier, per spec.md §4.6 step 6.
func (c *MPIComm) Barrier() error {
	src := make([]float32, 1)
	dst := make([]float32, 1)
	return c.comm.AllReduceF32(mpi.OpSum, dst, src)
}

// BarrierOp is the implicit global-barrier operator spec.md §4.6 step 3
// says every worker appends to its operator list: a step-loop entry whose
// sole effect is synchronizing with the rest of the world communicator
// before the next operator runs.
type BarrierOp struct {
	comm Collective
}

// NewBarrierOp returns a Barrier operator synchronizing against comm.
func NewBarrierOp(comm Collective) *BarrierOp { return &BarrierOp{comm: comm} }

// Kind implements chunksim.Operator.
func (b *BarrierOp) Kind() chunksim.Kind { return chunksim.KindBarrier }

// Reset implements chunksim.Operator. A barrier carries no state.
func (b *BarrierOp) Reset() {}

// Apply implements chunksim.Operator.
func (b *BarrierOp) Apply(s *chunksim.Store, t, dt float64) error {
	return b.comm.Barrier()
}
