// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// chunkmaster runs the master-rank process of a distributed chunk
// simulation: it transmits each worker's setup stream, broadcasts the step
// count, waits at the end-of-run barrier, and prints the gathered probe
// results. The demo network it builds (two chunks exchanging one signal
// over tag 42) is spec.md §8's "Cross-chunk send/recv" seed scenario,
// hardcoded the way examples/bench hardcodes its network rather than read
// from a file -- network construction from a description is out of scope.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"

	empi "github.com/emer/empi/v2/mpi"

	btracempi "github.com/btracey/mpi"

	"chunksim/sim"
	"chunksim/transport"
)

var (
	steps    = flag.Int("steps", 1, "number of steps to run")
	setupTag = flag.Int("setup_tag", 1, "transport tag carrying the setup stream")
	probeTag = flag.Int("probe_tag", 2, "transport tag carrying probe harvest results")
)

// demoSetup builds the two-worker setup record streams for the
// cross-chunk send/recv seed scenario: worker 1 sends its signal "X" to
// worker 2 under tag 42; worker 2 receives it into signal "Y" and probes
// it.
const demoTag int32 = 42

func demoSetup() map[int][]sim.Record {
	const view = "1:(1,3):(1,1):0"
	return map[int][]sim.Record{
		1: {
			sim.AddSignalRecord(1, "X", 1, 3, []float64{1, 2, 3}),
			sim.AddSendRecord(view, 2, demoTag),
			sim.AddWaitRecord(demoTag),
			sim.AddProbeRecord(100, view, 1),
		},
		2: {
			sim.AddSignalRecord(1, "Y", 1, 3, []float64{0, 0, 0}),
			sim.AddRecvRecord(view, 1, demoTag),
			sim.AddWaitRecord(demoTag),
			sim.AddProbeRecord(200, view, 1),
		},
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := btracempi.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "chunkmaster: mpi init: %v\n", err)
		os.Exit(1)
	}
	defer btracempi.Finalize()

	comm, err := sim.NewMPIComm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkmaster: empi communicator: %v\n", err)
		os.Exit(1)
	}

	perWorker := demoSetup()
	workerRanks := make([]int, 0, len(perWorker))
	for r := range perWorker {
		workerRanks = append(workerRanks, r)
	}

	master := sim.NewMaster(transport.MPILink{}, workerRanks, int32(*setupTag), int32(*probeTag), comm)

	var sentBytes datasize.ByteSize
	for rank, records := range perWorker {
		for _, rec := range records {
			sentBytes += datasize.ByteSize(8 * len(rec.Payload))
		}
		empi.Printf("chunkmaster: sending setup to worker %d (%v so far)\n", rank, sentBytes.HumanReadable())
	}

	if err := master.SendAllSetup(perWorker); err != nil {
		fmt.Fprintf(os.Stderr, "chunkmaster: setup: %v\n", err)
		os.Exit(1)
	}

	empi.Printf("chunkmaster: running %d steps across %d workers\n", *steps, len(workerRanks))
	results, err := master.Run(*steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkmaster: run: %v\n", err)
		os.Exit(1)
	}

	for key, data := range results {
		fmt.Printf("probe %d: %v\n", key, data)
	}
}
