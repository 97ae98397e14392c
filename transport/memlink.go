// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"
	"reflect"
	"sync"
)

// Hub brokers {src,dst,tag}-addressed in-memory channels among ChannelLinks
// that share it, so several chunks can run as goroutines in one process and
// still exercise spec.md §4.4's Send/Recv/Wait wiring exactly as a real MPI
// run would.
type Hub struct {
	mu    sync.Mutex
	chans map[hubKey]chan interface{}
}

type hubKey struct {
	src, dst int
	tag      int32
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{chans: make(map[hubKey]chan interface{})}
}

func (h *Hub) channel(src, dst int, tag int32) chan interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := hubKey{src, dst, tag}
	ch, ok := h.chans[k]
	if !ok {
		ch = make(chan interface{}, 1)
		h.chans[k] = ch
	}
	return ch
}

// ChannelLink is a Link backed by a shared Hub instead of a network
// connection. Tags are unique per {src,dst} pair, matching spec.md §4.4's
// uniqueness contract, so a capacity-1 channel per key is sufficient.
type ChannelLink struct {
	rank, size int
	hub        *Hub
}

// NewChannelLink returns a Link for rank within a size-peer Hub.
func NewChannelLink(hub *Hub, rank, size int) *ChannelLink {
	return &ChannelLink{rank: rank, size: size, hub: hub}
}

// Send implements Link. data is copied if it is a []float64, matching real
// MPI's copy-on-send semantics; any other value is handed over by
// reference, since the sim package's setup-protocol records are not
// mutated again by their sender after Send returns.
func (c *ChannelLink) Send(data interface{}, dst int, tag int32) error {
	if fs, ok := data.([]float64); ok {
		buf := make([]float64, len(fs))
		copy(buf, fs)
		data = buf
	}
	c.hub.channel(c.rank, dst, tag) <- data
	return nil
}

// Receive implements Link. data must be a non-nil pointer of the same type
// the matching Send transmitted.
func (c *ChannelLink) Receive(data interface{}, src int, tag int32) error {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("transport: Receive requires a non-nil pointer, got %T", data)
	}
	raw := <-c.hub.channel(src, c.rank, tag)
	rawVal := reflect.ValueOf(raw)
	if !rawVal.Type().AssignableTo(rv.Elem().Type()) {
		return fmt.Errorf("transport: Receive type mismatch: sent %T, destination %T", raw, data)
	}
	rv.Elem().Set(rawVal)
	return nil
}

// Wait implements Link. ChannelLink's Send already fully hands its payload
// to the channel before returning, so there is nothing left to wait for.
func (c *ChannelLink) Wait(peer int, tag int32) error { return nil }

// Rank implements Topology.
func (c *ChannelLink) Rank() int { return c.rank }

// Size implements Topology.
func (c *ChannelLink) Size() int { return c.size }
