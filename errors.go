// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every setup-time and step-time failure the engine
// can raise wraps one of these with fmt.Errorf so callers can match with
// errors.Is while still seeing the offending key or string in the message.
var (
	ErrDuplicateKey     = errors.New("duplicate signal key")
	ErrUnknownSignal    = errors.New("unknown signal key")
	ErrViewOutOfBounds  = errors.New("view out of bounds")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnmatchedTag     = errors.New("unmatched transport tag")
	ErrUnknownOperator  = errors.New("unknown operator")
	ErrNotEmpty         = errors.New("history not empty")
	ErrOutputShape      = errors.New("callback output shape mismatch")
	ErrTransportFailure = errors.New("transport failure")
)

// DuplicateKeyError reports a registration against a key already present
// in a Store.
func DuplicateKeyError(key int64) error {
	return fmt.Errorf("%w: key %d", ErrDuplicateKey, key)
}

// UnknownSignalError reports a lookup or view construction against a key
// that has no registered Base.
func UnknownSignalError(key int64) error {
	return fmt.Errorf("%w: key %d", ErrUnknownSignal, key)
}

// ViewOutOfBoundsError reports a view window that does not fit inside its
// base signal.
func ViewOutOfBoundsError(key int64, rowExt, colExt, rowStride, colStride, offset int) error {
	return fmt.Errorf("%w: key %d rows=%d cols=%d rowStride=%d colStride=%d offset=%d",
		ErrViewOutOfBounds, key, rowExt, colExt, rowStride, colStride, offset)
}

// ShapeMismatchError reports an operator construction whose view shapes do
// not fit its numeric contract.
func ShapeMismatchError(op string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrShapeMismatch, op, detail)
}

// InvalidParameterError reports a scalar or list parameter outside an
// operator's contract.
func InvalidParameterError(op string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, op, detail)
}

// UnmatchedTagError reports a Send/Recv registered with no paired Wait of
// the same tag in the same chunk's operator list.
func UnmatchedTagError(tag int32) error {
	return fmt.Errorf("%w: tag %d", ErrUnmatchedTag, tag)
}

// UnknownOperatorError reports an operator-from-string factory call whose
// class name the factory does not recognize.
func UnknownOperatorError(class string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperator, class)
}

// NotEmptyError reports InitForRun called on a probe whose history already
// holds snapshots from a previous run.
func NotEmptyError(key int64) error {
	return fmt.Errorf("%w: probe %d", ErrNotEmpty, key)
}

// OutputShapeError reports a Callback operator whose user function returned
// a slice of the wrong length for its declared output view.
func OutputShapeError(want, got int) error {
	return fmt.Errorf("%w: want %d got %d", ErrOutputShape, want, got)
}

// TransportFailureError reports a failed send, receive, or wait. The
// calling process group is expected to abort; there is no partial-failure
// recovery path.
func TransportFailureError(detail string) error {
	return fmt.Errorf("%w: %s", ErrTransportFailure, detail)
}
