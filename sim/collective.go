// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// Collective is the pair of world-wide synchronization points spec.md
// §4.6 needs: broadcasting the step count (step 4) and the end-of-run
// barrier (step 6), plus this process's position in the world. MPIComm
// implements it over github.com/emer/empi/v2/mpi; localCollective
// implements it in-process with a mutex-and-channel barrier, for
// RunLockstep.
type Collective interface {
	Rank() int
	Size() int
	BroadcastStepCount(n int) (int, error)
	Barrier() error
}
