// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

// TagOperator is implemented by the MPI transport operators (package
// transport: Send, Recv, Wait) so Chunk can wire a Send/Recv to its
// matching Wait by tag without the base engine package importing the
// transport package -- transport already imports chunksim for the
// Operator contract, and Go forbids the cycle the other way.
type TagOperator interface {
	Operator
	Tag() int32
}

// WaitLinker is implemented by Send and Recv: the first time RunSteps is
// called, Chunk locates the Wait with the same tag and records the
// back-reference spec.md §4.4 requires.
type WaitLinker interface {
	TagOperator
	LinkWait(w TagOperator)
}
