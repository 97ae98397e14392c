// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunksim

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Base is a dense, row-major, double-precision 2-D array owned by exactly
// one chunk. It is created once during setup from an opaque key and never
// resized. The backing store is wrapped as a *mat.Dense, exposed through
// Dense. Operators read and write through Views; DotInc's matrix-multiply
// mode copies its views into gonum matrices, while ElementwiseInc, the
// synapses, and the learning rules index the views directly.
type Base struct {
	Key   int64
	Label string
	Rows  int
	Cols  int
	data  *mat.Dense
}

// NewBase allocates a Base of the given extents, optionally seeded with
// initial row-major data. A nil or short initial slice is zero-filled.
func NewBase(key int64, label string, rows, cols int, initial []float64) *Base {
	buf := make([]float64, rows*cols)
	copy(buf, initial)
	return &Base{
		Key:   key,
		Label: label,
		Rows:  rows,
		Cols:  cols,
		data:  mat.NewDense(rows, cols, buf),
	}
}

// Dense exposes the base array's backing matrix directly.
func (b *Base) Dense() *mat.Dense { return b.data }

// At returns the element at (row, col).
func (b *Base) At(row, col int) float64 { return b.data.At(row, col) }

// Set writes the element at (row, col).
func (b *Base) Set(row, col int, v float64) { b.data.Set(row, col, v) }

// View is a lightweight, value-like descriptor naming a Base signal and a
// rectangular strided window into it. Several views may alias the same
// Base, including overlapping windows. A View never outlives the Base it
// targets and carries no owning reference to it -- the Store resolves the
// key to a *Base each time an operator needs to read or write through the
// view.
type View struct {
	Key        int64
	RowExtent  int
	ColExtent  int
	RowStride  int
	ColStride  int
	Offset     int
}

// Len returns the number of elements described by the view.
func (v View) Len() int { return v.RowExtent * v.ColExtent }

// index computes the flat row-major offset into the base's backing slice
// for logical position (r, c) within the view.
func (v View) index(r, c int) (row, col int) {
	flat := v.Offset + r*v.RowStride + c*v.ColStride
	return flat, 0
}

// resolve returns the Base this view targets, or ErrUnknownSignal.
func (v View) resolve(s *Store) (*Base, error) {
	b, ok := s.bases[v.Key]
	if !ok {
		return nil, UnknownSignalError(v.Key)
	}
	return b, nil
}

// At reads the element at logical (r, c) within the view.
func (v View) At(s *Store, r, c int) float64 {
	b, err := v.resolve(s)
	if err != nil {
		panic(err)
	}
	flat := v.Offset + r*v.RowStride + c*v.ColStride
	row, col := flat/b.Cols, flat%b.Cols
	return b.At(row, col)
}

// Set writes the element at logical (r, c) within the view.
func (v View) Set(s *Store, r, c int, val float64) {
	b, err := v.resolve(s)
	if err != nil {
		panic(err)
	}
	flat := v.Offset + r*v.RowStride + c*v.ColStride
	row, col := flat/b.Cols, flat%b.Cols
	b.Set(row, col, val)
}

// Flat1D returns the view's data as a flat []float64 in row-major logical
// order, snapshotting into a fresh slice. Used by 1-D-oriented operators
// (ring-buffer filters, probes, callbacks) that do not need strided
// in-place access.
func (v View) Flat1D(s *Store) []float64 {
	out := make([]float64, v.Len())
	n := 0
	for r := 0; r < v.RowExtent; r++ {
		for c := 0; c < v.ColExtent; c++ {
			out[n] = v.At(s, r, c)
			n++
		}
	}
	return out
}

// SetFlat1D writes data back into the view in the same row-major logical
// order Flat1D reads it in. len(data) must equal v.Len().
func (v View) SetFlat1D(s *Store, data []float64) {
	n := 0
	for r := 0; r < v.RowExtent; r++ {
		for c := 0; c < v.ColExtent; c++ {
			v.Set(s, r, c, data[n])
			n++
		}
	}
}

// Store owns the registry of Base signals for one chunk and issues Views
// against them. All bounds checking happens here, at build time, so the
// hot step-loop path through operators is index arithmetic only.
type Store struct {
	bases map[int64]*Base
}

// NewStore returns an empty signal store.
func NewStore() *Store {
	return &Store{bases: make(map[int64]*Base)}
}

// RegisterBase adds a new Base under key, failing with ErrDuplicateKey if
// the key is already registered.
func (s *Store) RegisterBase(key int64, label string, rows, cols int, initial []float64) (*Base, error) {
	if _, ok := s.bases[key]; ok {
		return nil, DuplicateKeyError(key)
	}
	b := NewBase(key, label, rows, cols, initial)
	s.bases[key] = b
	return b, nil
}

// LookupBase returns the Base registered under key, or ErrUnknownSignal.
func (s *Store) LookupBase(key int64) (*Base, error) {
	b, ok := s.bases[key]
	if !ok {
		return nil, UnknownSignalError(key)
	}
	return b, nil
}

// NewView constructs and validates a View against an already-registered
// Base, failing with ErrUnknownSignal or ErrViewOutOfBounds.
func (s *Store) NewView(key int64, rowExtent, colExtent, rowStride, colStride, offset int) (View, error) {
	b, err := s.LookupBase(key)
	if err != nil {
		return View{}, err
	}
	v := View{Key: key, RowExtent: rowExtent, ColExtent: colExtent, RowStride: rowStride, ColStride: colStride, Offset: offset}
	if err := validateView(b, v); err != nil {
		return View{}, err
	}
	return v, nil
}

// NewViewFromString constructs a View from the grammar
// "<key>:(<rows>,<cols>):(<row_stride>,<col_stride>):<offset>", whitespace
// insignificant, validating it the same way NewView does.
func (s *Store) NewViewFromString(desc string) (View, error) {
	key, rowExt, colExt, rowStride, colStride, offset, err := ParseViewString(desc)
	if err != nil {
		return View{}, err
	}
	return s.NewView(key, rowExt, colExt, rowStride, colStride, offset)
}

// ParseViewString parses the view-string grammar of spec.md's EXTERNAL
// INTERFACES section into its six integer fields without touching a Store.
func ParseViewString(desc string) (key int64, rowExt, colExt, rowStride, colStride, offset int, err error) {
	s := strings.Join(strings.Fields(desc), "")
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		err = InvalidParameterError("view string", fmt.Sprintf("expected 4 colon-separated fields, got %d in %q", len(parts), desc))
		return
	}
	key, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		err = InvalidParameterError("view string", "key: "+err.Error())
		return
	}
	rowExt, colExt, err = parsePair(parts[1])
	if err != nil {
		return
	}
	rowStride, colStride, err = parsePair(parts[2])
	if err != nil {
		return
	}
	offset, err = strconv.Atoi(parts[3])
	if err != nil {
		err = InvalidParameterError("view string", "offset: "+err.Error())
	}
	return
}

// parsePair parses a "(a,b)" pair of ints.
func parsePair(s string) (a, b int, err error) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return 0, 0, InvalidParameterError("view string", fmt.Sprintf("expected (a,b) pair, got %q", s))
	}
	inner := s[1 : len(s)-1]
	fields := strings.Split(inner, ",")
	if len(fields) != 2 {
		return 0, 0, InvalidParameterError("view string", fmt.Sprintf("expected 2 fields in pair, got %q", s))
	}
	a, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, InvalidParameterError("view string", err.Error())
	}
	b, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, InvalidParameterError("view string", err.Error())
	}
	return a, b, nil
}

// validateView checks that every element the view can address lies within
// base's backing array.
func validateView(b *Base, v View) error {
	n := b.Rows * b.Cols
	minFlat, maxFlat := v.Offset, v.Offset
	if v.RowExtent > 0 {
		if d := (v.RowExtent - 1) * v.RowStride; d < 0 {
			minFlat += d
		} else {
			maxFlat += d
		}
	}
	if v.ColExtent > 0 {
		if d := (v.ColExtent - 1) * v.ColStride; d < 0 {
			minFlat += d
		} else {
			maxFlat += d
		}
	}
	if v.Offset < 0 || v.Offset >= n && n > 0 {
		return ViewOutOfBoundsError(v.Key, v.RowExtent, v.ColExtent, v.RowStride, v.ColStride, v.Offset)
	}
	if minFlat < 0 || maxFlat >= n {
		return ViewOutOfBoundsError(v.Key, v.RowExtent, v.ColExtent, v.RowStride, v.ColStride, v.Offset)
	}
	return nil
}
