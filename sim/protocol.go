// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements the master/worker setup and step-loop protocol of
// spec.md §4.6 and §6 over package transport's Link, plus a single-process
// lockstep harness for running it without an MPI runtime.
package sim

// Flag identifies one record's kind in the inter-process control protocol.
type Flag int32

const (
	FlagAddSignal Flag = iota
	FlagAddOp
	FlagAddProbe
	FlagAddSend
	FlagAddRecv
	FlagAddWait
	FlagStop
)

// Record is one tagged setup message, carrying whichever fields its Flag
// needs. It travels over transport.Link the same way a Send/Recv operator's
// numeric payload does, addressed by the shared setup tag.
type Record struct {
	Flag Flag

	// ADD_SIGNAL
	Key     int64
	Label   string
	Rows    int
	Cols    int
	Payload []float64

	// ADD_OP
	OpDesc string

	// ADD_PROBE
	ProbeKey  int64
	SignalStr string
	Period    int

	// ADD_SEND / ADD_RECV / ADD_WAIT
	PeerRank int
	Tag      int32
	ViewStr  string
}

// AddSignalRecord builds an ADD_SIGNAL record.
func AddSignalRecord(key int64, label string, rows, cols int, initial []float64) Record {
	return Record{Flag: FlagAddSignal, Key: key, Label: label, Rows: rows, Cols: cols, Payload: initial}
}

// AddOpRecord builds an ADD_OP record carrying a scratch factory string.
func AddOpRecord(desc string) Record {
	return Record{Flag: FlagAddOp, OpDesc: desc}
}

// AddProbeRecord builds an ADD_PROBE record.
func AddProbeRecord(key int64, signalStr string, period int) Record {
	return Record{Flag: FlagAddProbe, ProbeKey: key, SignalStr: signalStr, Period: period}
}

// AddSendRecord builds an ADD_SEND record: post a send of viewStr's
// contents to dstRank under tag.
func AddSendRecord(viewStr string, dstRank int, tag int32) Record {
	return Record{Flag: FlagAddSend, ViewStr: viewStr, PeerRank: dstRank, Tag: tag}
}

// AddRecvRecord builds an ADD_RECV record: post a receive into viewStr's
// view from srcRank under tag.
func AddRecvRecord(viewStr string, srcRank int, tag int32) Record {
	return Record{Flag: FlagAddRecv, ViewStr: viewStr, PeerRank: srcRank, Tag: tag}
}

// AddWaitRecord builds an ADD_WAIT record for tag.
func AddWaitRecord(tag int32) Record {
	return Record{Flag: FlagAddWait, Tag: tag}
}

// StopRecord builds the terminating STOP record.
func StopRecord() Record {
	return Record{Flag: FlagStop}
}

// ProbeResult is one probe's harvested data, returned worker-to-master on
// the dedicated probe tag as (key, count, payload...).
type ProbeResult struct {
	Key     int64
	Count   int
	Payload []float64
}
