// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_simplexbasis01 checks the Kronecker property B_i(node_j) == delta_ij
// for a 2D Pn=2 triangle basis (6 nodes: 3 vertices, 3 edge midpoints).
func Test_simplexbasis01(tst *testing.T) {

	chk.PrintTitle("simplexbasis01")

	sb := NewSimplexBasis(2, 2)
	if sb.Nbasis != 6 {
		tst.Errorf("Nbasis=%d want 6", sb.Nbasis)
	}
	nodes := simplexLatticeNodes(2, 2)
	B := make([]float64, sb.Nbasis)
	for j, node := range nodes {
		sb.FillShp(node, B)
		for i := 0; i < sb.Nbasis; i++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(B[i]-want) > 1e-10 {
				tst.Errorf("kronecker failed @ node %d: B[%d]=%v", j, i, B[i])
			}
		}
	}
}

// Test_simplexbasis02 checks partition of unity away from the nodes, for
// orders 0 through 3 in 2D and 3D.
func Test_simplexbasis02(tst *testing.T) {

	chk.PrintTitle("simplexbasis02")

	pts := map[int][][]float64{
		2: {{0.2, 0.3}, {0.1, 0.1}, {0.05, 0.6}},
		3: {{0.2, 0.3, 0.1}, {0.1, 0.1, 0.1}},
	}
	for ndim := 2; ndim <= 3; ndim++ {
		for pn := 0; pn <= 3; pn++ {
			sb := NewSimplexBasis(ndim, pn)
			B := make([]float64, sb.Nbasis)
			for _, xi := range pts[ndim] {
				sb.FillShp(xi, B)
				sum := 0.0
				for _, v := range B {
					sum += v
				}
				if math.Abs(sum-1.0) > 1e-8 {
					tst.Errorf("ndim=%d Pn=%d xi=%v: partition of unity sum=%v", ndim, pn, xi, sum)
				}
			}
		}
	}
}

// Test_simplexbasis03 checks polynomial reproduction (property 2): a
// degree<=Pn polynomial interpolated from its nodal values is recovered
// exactly at arbitrary points, for a 2D Pn=2 basis.
func Test_simplexbasis03(tst *testing.T) {

	chk.PrintTitle("simplexbasis03")

	pn := 2
	sb := NewSimplexBasis(2, pn)
	p := func(x, y float64) float64 { return 1 + 2*x - 3*y + 4*x*y - x*x }

	nodes := simplexLatticeNodes(2, pn)
	nodal := make([]float64, sb.Nbasis)
	for j, node := range nodes {
		nodal[j] = p(node[0], node[1])
	}

	B := make([]float64, sb.Nbasis)
	for _, pt := range [][2]float64{{0.1, 0.2}, {0.3, 0.3}, {0.05, 0.1}} {
		sb.FillShp([]float64{pt[0], pt[1]}, B)
		interp := 0.0
		for j := range B {
			interp += B[j] * nodal[j]
		}
		exact := p(pt[0], pt[1])
		if math.Abs(interp-exact) > 1e-8 {
			tst.Errorf("pt=%v: interp=%v exact=%v", pt, interp, exact)
		}
	}
}

// Test_simplexbasis04 checks Hessian symmetry for a 3D Pn=2 basis.
func Test_simplexbasis04(tst *testing.T) {

	chk.PrintTitle("simplexbasis04")

	sb := NewSimplexBasis(3, 2)
	xi := []float64{0.1, 0.15, 0.2}
	Hess := make([][][]float64, sb.Nbasis)
	for i := range Hess {
		Hess[i] = alloc2(3, 3)
	}
	sb.FillHess(xi, Hess)
	for b := 0; b < sb.Nbasis; b++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(Hess[b][i][j]-Hess[b][j][i]) > 1e-10 {
					tst.Errorf("basis %d: Hess[%d][%d]=%v != Hess[%d][%d]=%v",
						b, i, j, Hess[b][i][j], j, i, Hess[b][j][i])
				}
			}
		}
	}
}
