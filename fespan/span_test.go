// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fespan

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/basis"
)

// Test_layout01 checks that both layout policies produce a bijection onto
// [0, ndof*ncomp).
func Test_layout01(tst *testing.T) {

	chk.PrintTitle("layout01")

	for _, pol := range []Policy{LayoutRight, LayoutLeft} {
		l := NewLayout(5, 3, pol)
		seen := make(map[int]bool)
		for d := 0; d < l.NDof; d++ {
			for c := 0; c < l.NComp; c++ {
				idx := l.Index(d, c)
				if idx < 0 || idx >= l.Size() {
					tst.Errorf("policy %v: index(%d,%d)=%d out of range", pol, d, c, idx)
				}
				if seen[idx] {
					tst.Errorf("policy %v: index(%d,%d)=%d collides", pol, d, c, idx)
				}
				seen[idx] = true
			}
		}
	}
}

// Test_span01 checks an extract-then-scatter-into-zero round trip recovers
// the original global data exactly when no two elements share a dof (as in
// a DG layout).
func Test_span01(tst *testing.T) {

	chk.PrintTitle("span01")

	globalLayout := NewLayout(6, 2, LayoutRight)
	global := make([]float64, globalLayout.Size())
	for i := range global {
		global[i] = float64(i) * 1.5
	}

	umap := []int{2, 3, 4}
	span := NewSpan(2, LayoutRight, umap)
	local := span.ExtractElspan(global, globalLayout)

	out := make([]float64, globalLayout.Size())
	span.ScatterElspan(local, out, globalLayout)

	for _, gdof := range umap {
		for c := 0; c < 2; c++ {
			want := global[globalLayout.Index(gdof, c)]
			got := out[globalLayout.Index(gdof, c)]
			if math.Abs(got-want) > 1e-12 {
				tst.Errorf("dof %d comp %d: got %v want %v", gdof, c, got, want)
			}
		}
	}
}

// Test_contract01 checks that contracting basis values reproduces a linear
// field exactly (property: a degree-1 Lagrange basis reproduces degree-1
// polynomials) and that contracting basis gradients gives that field's
// reference gradient [3,-1].
func Test_contract01(tst *testing.T) {

	chk.PrintTitle("contract01")

	tb := basis.NewTensorBasis(2, 1)
	xi := []float64{0.3, -0.6}
	vals := make([]float64, tb.Nbasis)
	tb.FillShp(xi, vals)

	// nodal values of the linear field f(x,y) = 2 + 3x - y, sampled at the
	// element's corner nodes in TensorBasis multi-index order (node d has
	// xi_d = -1 or 1 per its multi-index bit).
	local := make([]float64, tb.Nbasis)
	alpha := make([]int, 2)
	for b := 0; b < tb.Nbasis; b++ {
		tb.MultiIndex(b, alpha)
		x := -1.0
		if alpha[0] == 1 {
			x = 1
		}
		y := -1.0
		if alpha[1] == 1 {
			y = 1
		}
		local[b] = 2 + 3*x - y
	}

	layout := NewLayout(tb.Nbasis, 1, LayoutRight)
	out := ContractValues(vals, local, layout)
	want := 2 + 3*xi[0] - xi[1]
	if math.Abs(out[0]-want) > 1e-10 {
		tst.Errorf("contracted value=%v want %v", out[0], want)
	}

	grads := make([][]float64, tb.Nbasis)
	for b := range grads {
		grads[b] = make([]float64, 2)
	}
	tb.FillDeriv(xi, grads)
	g := ContractGrad(grads, local, layout)
	if math.Abs(g[0][0]-3) > 1e-10 || math.Abs(g[0][1]-(-1)) > 1e-10 {
		tst.Errorf("contracted grad=%v want [3,-1]", g[0])
	}
}
