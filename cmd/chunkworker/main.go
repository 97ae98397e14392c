// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// chunkworker runs one worker-rank process of a distributed chunk
// simulation: it receives its chunk's setup stream from the master, runs
// the broadcast step count, and reports every probe's harvested data back.
package main

import (
	"flag"
	"fmt"
	"os"

	btracempi "github.com/btracey/mpi"
	empi "github.com/emer/empi/v2/mpi"

	"chunksim/sim"
	"chunksim/transport"
)

var (
	masterRank = flag.Int("master", 0, "rank of the master process")
	setupTag   = flag.Int("setup_tag", 1, "transport tag carrying the setup stream")
	probeTag   = flag.Int("probe_tag", 2, "transport tag carrying probe harvest results")
	dt         = flag.Float64("dt", 0.001, "chunk time step")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := btracempi.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "chunkworker: mpi init: %v\n", err)
		os.Exit(1)
	}
	defer btracempi.Finalize()

	comm, err := sim.NewMPIComm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkworker: empi communicator: %v\n", err)
		os.Exit(1)
	}

	w := sim.NewWorker(transport.MPILink{}, *masterRank, int32(*setupTag), int32(*probeTag), comm)

	empi.Printf("chunkworker rank %d of %d: awaiting setup stream\n", comm.Rank(), comm.Size())
	if err := w.RunSetup(*dt); err != nil {
		fmt.Fprintf(os.Stderr, "chunkworker: setup: %v\n", err)
		os.Exit(1)
	}

	empi.Printf("chunkworker rank %d: running\n", comm.Rank())
	if err := w.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chunkworker: run: %v\n", err)
		os.Exit(1)
	}

	empi.Printf("chunkworker rank %d: done\n", comm.Rank())
}
