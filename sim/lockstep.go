// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"sort"
	"sync"

	"chunksim/transport"
)

// lockstepSetupTag and lockstepProbeTag are RunLockstep's fixed setup and
// probe tags. They are private to this harness, not a wire constant the
// rest of the package shares, because each RunLockstep call gets a fresh
// Hub.
const (
	lockstepSetupTag int32 = 900
	lockstepProbeTag int32 = 901
)

// RunLockstep runs one master and len(perWorker) workers as goroutines in
// the current process, wired through an in-memory transport.Hub instead of
// an MPI runtime, and drives n steps. perWorker maps each worker's rank
// to the setup records that rank should receive; the ranks must be exactly
// 1..len(perWorker), since each one indexes the per-rank collectives. It exists so property 6, distributed equivalence, can be
// exercised in a single test binary.
func RunLockstep(dt float64, perWorker map[int][]Record, n int) (map[int64][]float64, error) {
	workerRanks := make([]int, 0, len(perWorker))
	for r := range perWorker {
		workerRanks = append(workerRanks, r)
	}
	sort.Ints(workerRanks)

	size := len(workerRanks) + 1
	hub := transport.NewHub()
	collectives := newLocalCollectives(size)

	var wg sync.WaitGroup
	workerErrs := make([]error, len(workerRanks))
	for i, rank := range workerRanks {
		wg.Add(1)
		go func(i, rank int) {
			defer wg.Done()
			link := transport.NewChannelLink(hub, rank, size)
			w := NewWorker(link, 0, lockstepSetupTag, lockstepProbeTag, collectives[rank])
			if err := w.RunSetup(dt); err != nil {
				workerErrs[i] = fmt.Errorf("worker %d setup: %w", rank, err)
				return
			}
			if err := w.Run(); err != nil {
				workerErrs[i] = fmt.Errorf("worker %d run: %w", rank, err)
			}
		}(i, rank)
	}

	masterLink := transport.NewChannelLink(hub, 0, size)
	master := NewMaster(masterLink, workerRanks, lockstepSetupTag, lockstepProbeTag, collectives[0])

	var results map[int64][]float64
	var runErr error
	if err := master.SendAllSetup(perWorker); err != nil {
		runErr = fmt.Errorf("setup: %w", err)
	} else {
		results, runErr = master.Run(n)
	}

	wg.Wait()
	for _, err := range workerErrs {
		if err != nil {
			return nil, err
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	return results, nil
}
