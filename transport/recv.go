// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"

	"chunksim"
)

// RecvOp posts a non-blocking receive of Target's length from Src under
// TagNum. github.com/btracey/mpi's Receive call itself blocks until the
// transfer lands, so Apply runs it in a background goroutine to get the
// post-now, observe-later split spec.md §4.4 requires; the paired WaitOp
// blocks on that goroutine's result and copies it into Target.
type RecvOp struct {
	TagNum int32
	Src    int
	Target chunksim.View

	link Link
	wait *WaitOp
}

// NewRecvOp returns a Recv operator posting a receive of target's length
// from src under tagNum over link.
func NewRecvOp(tagNum int32, src int, target chunksim.View, link Link) *RecvOp {
	return &RecvOp{TagNum: tagNum, Src: src, Target: target, link: link}
}

// Tag implements chunksim.WaitLinker.
func (op *RecvOp) Tag() int32 { return op.TagNum }

// Kind implements chunksim.Operator.
func (op *RecvOp) Kind() chunksim.Kind { return chunksim.KindRecv }

// Reset implements chunksim.Operator.
func (op *RecvOp) Reset() {}

// LinkWait implements chunksim.WaitLinker.
func (op *RecvOp) LinkWait(w chunksim.TagOperator) {
	if ww, ok := w.(*WaitOp); ok {
		op.wait = ww
	}
}

// Apply implements chunksim.Operator.
func (op *RecvOp) Apply(s *chunksim.Store, t, dt float64) error {
	if op.wait == nil {
		return fmt.Errorf("recv tag %d: %w", op.TagNum, chunksim.ErrUnmatchedTag)
	}
	n := op.Target.Len()
	result := make(chan error, 1)
	buf := make([]float64, n)
	go func() {
		result <- op.link.Receive(&buf, op.Src, op.TagNum)
	}()
	target := op.Target
	src := op.Src
	tag := op.TagNum
	op.wait.notePending(op.Src, false, func(s *chunksim.Store) error {
		if err := <-result; err != nil {
			return fmt.Errorf("recv tag %d from %d: %w", tag, src, chunksim.TransportFailureError(err.Error()))
		}
		target.SetFlat1D(s, buf)
		return nil
	})
	return nil
}
