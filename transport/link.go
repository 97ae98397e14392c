// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport implements spec.md §4.4's MPI transport operators --
// Send, Recv, and Wait -- over a pluggable point-to-point Link.
package transport

// Link is the minimal point-to-point transport Send, Recv, and Wait need.
// It is modeled directly on github.com/btracey/mpi's Mpi interface: Send
// and Receive carry an opaque data value addressed by {peer, tag}, exactly
// as that package's package-level Send/Receive/Wait functions do, so
// MPILink below is a near-trivial adapter and a from-scratch in-memory
// implementation (ChannelLink) satisfies it just as easily for
// single-process tests. Carrying data as interface{} rather than []float64
// lets the same Link also carry package sim's setup-protocol records,
// which are not numeric.
type Link interface {
	// Send transmits data to dst under tag. It returns once the data is
	// local-buffer-safe to reuse, without waiting for the peer's Wait to
	// observe it -- the non-blocking post spec.md §4.4 describes.
	Send(data interface{}, dst int, tag int32) error

	// Receive posts a receive from src under tag, deserializing into data
	// (which must be a pointer), blocking until the transfer completes.
	// Recv calls this from a background goroutine so its own Apply can
	// return immediately, with Wait blocking on the result.
	Receive(data interface{}, src int, tag int32) error

	// Wait blocks until peer has confirmed receipt of the data this process
	// sent to it under tag. It is the sender's half of the handshake --
	// github.com/btracey/mpi's Wait is documented as blocking "until
	// confirmation from destination that the data ... has been received" --
	// so callers never call Wait after a Receive; Receive already blocks
	// until its own transfer lands.
	Wait(peer int, tag int32) error
}

// Rank and Size report this process's position among the transport's
// peers. The in-memory ChannelLink reports the rank and size it was
// constructed with.
type Topology interface {
	Rank() int
	Size() int
}
