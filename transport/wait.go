// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"

	"chunksim"
)

// pendingOp is the one outstanding transfer a WaitOp has been told to wait
// for, noted by the paired Send or Recv during its own Apply this step.
// confirmSend marks a transfer posted by a SendOp: github.com/btracey/mpi's
// own doc comment describes Wait(dst, tag) as sender-side only ("blocks
// until confirmation from destination that the data ... has been
// received"), so only a Send's pending entry calls the link's real Wait. A
// Recv's pending entry already blocks on its own background Receive inside
// onComplete, so it leaves confirmSend false and Apply skips the link call.
type pendingOp struct {
	peer        int
	confirmSend bool
	onComplete  func(s *chunksim.Store) error
}

// WaitOp blocks until the transfer posted this step by its paired Send or
// Recv (same TagNum) completes, then runs that operator's completion (for
// Recv, copying the received buffer into its target view). If nothing was
// posted this step -- the pair simply wasn't reached, or the chunk has no
// transport traffic that step -- Apply is a no-op.
type WaitOp struct {
	TagNum int32

	link    Link
	pending *pendingOp
}

// NewWaitOp returns a Wait operator for tagNum over link.
func NewWaitOp(tagNum int32, link Link) *WaitOp {
	return &WaitOp{TagNum: tagNum, link: link}
}

// Tag implements chunksim.TagOperator.
func (w *WaitOp) Tag() int32 { return w.TagNum }

// Kind implements chunksim.Operator.
func (w *WaitOp) Kind() chunksim.Kind { return chunksim.KindWait }

// Reset implements chunksim.Operator. A Wait carries no state of its own
// between steps beyond the pending slot, which Apply always clears.
func (w *WaitOp) Reset() {}

// notePending records the transfer Apply should wait for this step. Called
// by the paired Send or Recv's own Apply. confirmSend is true only for a
// Send's pending entry; see pendingOp.
func (w *WaitOp) notePending(peer int, confirmSend bool, onComplete func(s *chunksim.Store) error) {
	w.pending = &pendingOp{peer: peer, confirmSend: confirmSend, onComplete: onComplete}
}

// Apply implements chunksim.Operator.
func (w *WaitOp) Apply(s *chunksim.Store, t, dt float64) error {
	if w.pending == nil {
		return nil
	}
	p := w.pending
	w.pending = nil
	if p.confirmSend {
		if err := w.link.Wait(p.peer, w.TagNum); err != nil {
			return fmt.Errorf("wait tag %d: %w", w.TagNum, chunksim.TransportFailureError(err.Error()))
		}
	}
	if p.onComplete != nil {
		return p.onComplete(s)
	}
	return nil
}
