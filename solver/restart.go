// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// RestartState is the persisted Gauss-Newton checkpoint of spec.md §6:
// "restart files store (k, u[:]) and optionally (x_g[:])".
type RestartState struct {
	K  int
	U  []float64
	Xg []float64
}

// SaveRestart gob-encodes state to path through the utl.Encoder interface,
// the same (enc utl.Encoder)/(dec utl.Decoder) seam ele.Element.Encode and
// Decode are built on. Not bit-exact across endianness changes, as gob
// itself is not.
func SaveRestart(path string, state RestartState) error {
	var buf bytes.Buffer
	var enc utl.Encoder = gob.NewEncoder(&buf)
	if err := enc.Encode(state.K); err != nil {
		return chk.Err("solver: cannot encode restart k: %v", err)
	}
	if err := enc.Encode(state.U); err != nil {
		return chk.Err("solver: cannot encode restart u: %v", err)
	}
	if err := enc.Encode(state.Xg); err != nil {
		return chk.Err("solver: cannot encode restart xg: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return chk.Err("solver: cannot write restart file %q: %v", path, err)
	}
	return nil
}

// LoadRestart decodes a restart file written by SaveRestart.
func LoadRestart(path string) (state RestartState, err error) {
	b, rerr := os.ReadFile(path)
	if rerr != nil {
		return state, chk.Err("solver: cannot read restart file %q: %v", path, rerr)
	}
	var dec utl.Decoder = gob.NewDecoder(bytes.NewReader(b))
	if err = dec.Decode(&state.K); err != nil {
		return state, chk.Err("solver: cannot decode restart k: %v", err)
	}
	if err = dec.Decode(&state.U); err != nil {
		return state, chk.Err("solver: cannot decode restart u: %v", err)
	}
	if err = dec.Decode(&state.Xg); err != nil {
		return state, chk.Err("solver: cannot decode restart xg: %v", err)
	}
	return state, nil
}

// maybeCheckpoint writes a restart file every RestartEvery iterations when
// s.RestartPath is set, printing a warning with io.PfRed instead of failing
// the solve if the write itself errors.
func (s *GaussNewton) maybeCheckpoint(k int, U, xg []float64) {
	if s.RestartPath == "" || s.RestartEvery <= 0 || k%s.RestartEvery != 0 {
		return
	}
	if err := SaveRestart(s.RestartPath, RestartState{K: k, U: U, Xg: xg}); err != nil {
		io.PfRed("restart checkpoint failed: %v\n", err)
	}
}
