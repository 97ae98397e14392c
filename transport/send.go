// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"

	"chunksim"
)

// SendOp posts a non-blocking send of its Source view's flattened contents
// to Dst under TagNum, per spec.md §4.4. Apply returns as soon as the post
// completes, not when Dst has received the data -- the paired WaitOp is
// what the run loop uses to know the transfer is done.
type SendOp struct {
	TagNum int32
	Dst    int
	Source chunksim.View

	link Link
	wait *WaitOp
}

// NewSendOp returns a Send operator posting source to dst under tagNum over
// link.
func NewSendOp(tagNum int32, dst int, source chunksim.View, link Link) *SendOp {
	return &SendOp{TagNum: tagNum, Dst: dst, Source: source, link: link}
}

// Tag implements chunksim.WaitLinker.
func (op *SendOp) Tag() int32 { return op.TagNum }

// Kind implements chunksim.Operator.
func (op *SendOp) Kind() chunksim.Kind { return chunksim.KindSend }

// Reset implements chunksim.Operator. A Send has no state surviving between
// steps; the link itself owns any in-flight buffering.
func (op *SendOp) Reset() {}

// LinkWait implements chunksim.WaitLinker.
func (op *SendOp) LinkWait(w chunksim.TagOperator) {
	if ww, ok := w.(*WaitOp); ok {
		op.wait = ww
	}
}

// Apply implements chunksim.Operator.
func (op *SendOp) Apply(s *chunksim.Store, t, dt float64) error {
	data := op.Source.Flat1D(s)
	if err := op.link.Send(data, op.Dst, op.TagNum); err != nil {
		return fmt.Errorf("send tag %d to %d: %w", op.TagNum, op.Dst, chunksim.TransportFailureError(err.Error()))
	}
	if op.wait != nil {
		op.wait.notePending(op.Dst, true, nil)
	}
	return nil
}
