// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_registry01 checks the model factory allocates registered models and
// errors on an unknown name.
func Test_registry01(tst *testing.T) {

	chk.PrintTitle("registry01")

	m, err := New("scalar_adv_diff")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*ScalarAdvectionDiffusion); !ok {
		tst.Errorf("New returned %T, want *ScalarAdvectionDiffusion", m)
	}
	if _, err := New("not_a_model"); err == nil {
		tst.Errorf("expected error for unknown model name")
	}
}

// Test_scalaradvdiff01 checks the physical flux and the upwind convective
// flux agree on the sign of a·n.
func Test_scalaradvdiff01(tst *testing.T) {

	chk.PrintTitle("scalaradvdiff01")

	m := &ScalarAdvectionDiffusion{Ndim: 2, A: []float64{2, 0}, K: 0.1}

	u := []float64{3}
	gradU := [][]float64{{1, -1}}
	fOut := [][]float64{{0, 0}}
	m.Eval(u, gradU, fOut)
	if math.Abs(fOut[0][0]-(6-0.1*1)) > 1e-12 {
		tst.Errorf("F[0][0]=%v want %v", fOut[0][0], 6-0.1)
	}

	conv := &Convective{Model: m}
	out := []float64{0}
	// a·n = 2 > 0: upwind picks uL
	conv.Eval([]float64{5}, []float64{-5}, []float64{1, 0}, out)
	if math.Abs(out[0]-10) > 1e-12 {
		tst.Errorf("upwind flux=%v want 10 (uses uL)", out[0])
	}
	// a·n = -2 < 0: upwind picks uR
	conv.Eval([]float64{5}, []float64{-5}, []float64{-1, 0}, out)
	if math.Abs(out[0]-10) > 1e-12 {
		tst.Errorf("upwind flux=%v want 10 (uses uR)", out[0])
	}
}

// Test_scalaradvdiff02 checks the diffusion flux and homogeneity tensor are
// consistent with an isotropic diffusivity k.
func Test_scalaradvdiff02(tst *testing.T) {

	chk.PrintTitle("scalaradvdiff02")

	m := &ScalarAdvectionDiffusion{Ndim: 2, A: []float64{0, 0}, K: 0.5}
	diff := &Diffusion{Model: m}

	out := []float64{0}
	diff.Eval([]float64{0}, [][]float64{{2, 4}}, []float64{1, 0}, out)
	if math.Abs(out[0]-(-1)) > 1e-12 {
		tst.Errorf("diffusion flux=%v want -1", out[0])
	}

	g := make([][][][]float64, 1)
	g[0] = make([][][]float64, 2)
	for k := range g[0] {
		g[0][k] = make([][]float64, 1)
		g[0][k][0] = make([]float64, 2)
	}
	diff.HomogeneityTensor([]float64{0}, g)
	if g[0][0][0][0] != 0.5 || g[0][1][0][1] != 0.5 || g[0][0][0][1] != 0 {
		tst.Errorf("homogeneity tensor not k*delta: %v", g)
	}
}

// Test_burgers01 checks the Lax-Friedrichs flux reduces to the exact flux
// when there is no jump (uL==uR), and that the physical flux matches the
// u²/2 formula.
func Test_burgers01(tst *testing.T) {

	chk.PrintTitle("burgers01")

	m := &Burgers{Ndim: 1, Dir: []float64{1}, Nu: 0}
	u := []float64{4}
	fOut := [][]float64{{0}}
	m.Eval(u, [][]float64{{0}}, fOut)
	if math.Abs(fOut[0][0]-8) > 1e-12 {
		tst.Errorf("F(4)=%v want 8", fOut[0][0])
	}

	conv := &BurgersConvective{Model: m}
	out := []float64{0}
	conv.Eval([]float64{3}, []float64{3}, []float64{1}, out)
	want := 0.5 * 3 * 3
	if math.Abs(out[0]-want) > 1e-12 {
		tst.Errorf("LF flux with no jump=%v want %v", out[0], want)
	}
}
