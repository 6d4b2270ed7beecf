// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_restart01 checks that SaveRestart/LoadRestart round-trip (k, u, xg)
// exactly, the write/read pair fem.SaveSol/ReadSol exercises for Domain.Sol.
func Test_restart01(tst *testing.T) {

	chk.PrintTitle("restart01")

	state := RestartState{K: 7, U: []float64{1, 2, 3, 4}, Xg: []float64{0.1, -0.2}}
	fn := filepath.Join(tst.TempDir(), "restart.gob")

	if err := SaveRestart(fn, state); err != nil {
		tst.Fatalf("SaveRestart failed: %v", err)
	}
	got, err := LoadRestart(fn)
	if err != nil {
		tst.Fatalf("LoadRestart failed: %v", err)
	}
	if got.K != state.K {
		tst.Errorf("K=%d want %d", got.K, state.K)
	}
	chk.Vector(tst, "U", 1e-17, got.U, state.U)
	chk.Vector(tst, "Xg", 1e-17, got.Xg, state.Xg)
}

// Test_restart02 checks LoadRestart reports an error for a missing file
// rather than panicking.
func Test_restart02(tst *testing.T) {

	chk.PrintTitle("restart02")

	_, err := LoadRestart(filepath.Join(os.TempDir(), "does-not-exist-iceicle.gob"))
	if err == nil {
		tst.Errorf("expected an error for a missing restart file")
	}
}
