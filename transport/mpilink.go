// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import "github.com/btracey/mpi"

// MPILink adapts the package-level github.com/btracey/mpi calls to the
// Link interface. mpi.Init must be called (and a concrete mpi.Mpi
// implementation registered via mpi.Register, or the default Network
// implementation left in place) before any Chunk using an MPILink runs.
type MPILink struct{}

// Send implements Link.
func (MPILink) Send(data interface{}, dst int, tag int32) error {
	return mpi.Send(data, dst, int(tag))
}

// Receive implements Link.
func (MPILink) Receive(data interface{}, src int, tag int32) error {
	return mpi.Receive(data, src, int(tag))
}

// Wait implements Link.
func (MPILink) Wait(peer int, tag int32) error {
	return mpi.Wait(peer, int(tag))
}

// Rank implements Topology.
func (MPILink) Rank() int { return mpi.Rank() }

// Size implements Topology.
func (MPILink) Size() int { return mpi.Size() }
