// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scratch implements spec.md §6's operator-from-string factory and
// the small argument grammars it accepts, grounded on the teacher's
// convention of a "tiny helper subpackage consumed by the core engine"
// (nxx1, chans).
package scratch

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"chunksim"
)

// splitArgs splits "ClassName; arg1; arg2; ..." into its class name and
// trimmed argument list.
func splitArgs(desc string) (class string, args []string) {
	parts := strings.Split(desc, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func parseScalar(arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, chunksim.InvalidParameterError("scratch", "scalar literal: "+err.Error())
	}
	return v, nil
}

func parseInt(arg string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, chunksim.InvalidParameterError("scratch", "integer literal: "+err.Error())
	}
	return v, nil
}

func parseBool(arg string) (bool, error) {
	v, err := parseScalar(arg)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// parseList parses a Python-style "[a, b, c]" list of scalars.
func parseList(arg string) ([]float64, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) < 2 || arg[0] != '[' || arg[len(arg)-1] != ']' {
		return nil, chunksim.InvalidParameterError("scratch", "expected [a,b,...] list, got "+arg)
	}
	inner := strings.TrimSpace(arg[1 : len(arg)-1])
	if inner == "" {
		return nil, nil
	}
	fields := strings.Split(inner, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseScalar(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseMatrix parses the "rows,cols,a,b,c,..." grammar into a *mat.Dense.
func parseMatrix(arg string) (*mat.Dense, error) {
	fields := strings.Split(arg, ",")
	if len(fields) < 2 {
		return nil, chunksim.InvalidParameterError("scratch", "expected rows,cols,data... matrix literal")
	}
	rows, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, chunksim.InvalidParameterError("scratch", "matrix rows: "+err.Error())
	}
	cols, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, chunksim.InvalidParameterError("scratch", "matrix cols: "+err.Error())
	}
	data := make([]float64, rows*cols)
	rest := fields[2:]
	if len(rest) != len(data) {
		return nil, chunksim.InvalidParameterError("scratch", "matrix literal element count mismatch")
	}
	for i, f := range rest {
		v, err := parseScalar(f)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return mat.NewDense(rows, cols, data), nil
}

func parseView(store *chunksim.Store, arg string) (chunksim.View, error) {
	return store.NewViewFromString(arg)
}
