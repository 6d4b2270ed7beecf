// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_lagrange1d01 checks the Pn=3 basis of S1 for partition of unity and
// the Kronecker property at the nodes.
func Test_lagrange1d01(tst *testing.T) {

	chk.PrintTitle("lagrange1d01")

	b := NewLagrange1D(3)
	Nj := make([]float64, 4)
	b.EvalAll(0.25, Nj)

	sum := 0.0
	for _, v := range Nj {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-12 {
		tst.Errorf("partition of unity failed: sum=%v", sum)
	}

	// Kronecker property: B_i(xi_j) = delta_ij
	for j := 0; j < b.Nbasis; j++ {
		b.EvalAll(b.XiNodes[j], Nj)
		for i := 0; i < b.Nbasis; i++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(Nj[i]-want) > 1e-12 {
				tst.Errorf("kronecker failed @ node %d: N[%d]=%v", j, i, Nj[i])
			}
		}
	}
}

// Test_lagrange1d02 checks Pn=1 closed forms and Pn=0 degeneracy.
func Test_lagrange1d02(tst *testing.T) {

	chk.PrintTitle("lagrange1d02")

	b1 := NewLagrange1D(1)
	Nj, dNj := make([]float64, 2), make([]float64, 2)
	b1.DerivAll(0.3, Nj, dNj)
	chk.Float64(tst, "N0", 1e-15, Nj[0], 0.5*(1-0.3))
	chk.Float64(tst, "N1", 1e-15, Nj[1], 0.5*(1+0.3))
	chk.Float64(tst, "dN0", 1e-15, dNj[0], -0.5)
	chk.Float64(tst, "dN1", 1e-15, dNj[1], 0.5)

	b0 := NewLagrange1D(0)
	N0, dN0 := make([]float64, 1), make([]float64, 1)
	b0.DerivAll(0.123, N0, dN0)
	chk.Float64(tst, "N (Pn=0)", 1e-15, N0[0], 1.0)
	chk.Float64(tst, "dN (Pn=0)", 1e-15, dN0[0], 0.0)
}

// Test_lagrange1d03 checks property 2 (polynomial reproduction) for
// derivatives via a centered finite difference, for Pn up to 5.
func Test_lagrange1d03(tst *testing.T) {

	chk.PrintTitle("lagrange1d03")

	for pn := 2; pn <= 5; pn++ {
		b := NewLagrange1D(pn)
		xi := 0.137
		h := 1e-6
		Nj, dNj := make([]float64, pn+1), make([]float64, pn+1)
		b.DerivAll(xi, Nj, dNj)

		Np, Nm := make([]float64, pn+1), make([]float64, pn+1)
		b.EvalAll(xi+h, Np)
		b.EvalAll(xi-h, Nm)
		for j := 0; j <= pn; j++ {
			fd := (Np[j] - Nm[j]) / (2 * h)
			if math.Abs(fd-dNj[j]) > 1e-6 {
				tst.Errorf("Pn=%d j=%d: analytic dN=%v fd=%v", pn, j, dNj[j], fd)
			}
		}
	}
}

// Test_lagrange1d04 checks partition of unity across Pn<=8 at many points.
func Test_lagrange1d04(tst *testing.T) {

	chk.PrintTitle("lagrange1d04")

	for pn := 0; pn <= 8; pn++ {
		b := NewLagrange1D(pn)
		Nj := make([]float64, pn+1)
		for k := 0; k <= 20; k++ {
			xi := -1.0 + 2.0*float64(k)/20.0
			b.EvalAll(xi, Nj)
			sum := 0.0
			for _, v := range Nj {
				sum += v
			}
			if math.Abs(sum-1.0) > 1e-12 {
				tst.Errorf("Pn=%d xi=%v: partition of unity sum=%v", pn, xi, sum)
			}
		}
	}
}

// Test_lagrange1d05 checks D2All's second derivatives at Pn=4, xi=0.21
// against a centred finite difference of DerivAll.
func Test_lagrange1d05(tst *testing.T) {

	chk.PrintTitle("lagrange1d05")

	b := NewLagrange1D(4)
	xi := 0.21
	h := 1e-4
	Nj, dNj, d2Nj := make([]float64, 5), make([]float64, 5), make([]float64, 5)
	b.D2All(xi, Nj, dNj, d2Nj)

	dp, dm := make([]float64, 5), make([]float64, 5)
	Np, Nm := make([]float64, 5), make([]float64, 5)
	b.DerivAll(xi+h, Np, dp)
	b.DerivAll(xi-h, Nm, dm)
	for j := 0; j < 5; j++ {
		fd := (dp[j] - dm[j]) / (2 * h)
		if math.Abs(fd-d2Nj[j]) > 1e-4 {
			tst.Errorf("j=%d: analytic d2N=%v fd=%v", j, d2Nj[j], fd)
		}
	}
}
