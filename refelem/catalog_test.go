// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refelem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/geometry"
)

// Test_quad01 checks that the weights of a Gauss-Legendre hypercube rule
// sum to the reference hypercube's volume (2^ndim), and that the rule
// integrates the odd monomial x_0^(2n-1) to its exact value 0.
func Test_quad01(tst *testing.T) {

	chk.PrintTitle("quad01")

	for ndim := 1; ndim <= 3; ndim++ {
		for npts := 1; npts <= 4; npts++ {
			q := NewHypercubeQuadrature(ndim, npts)
			sum := 0.0
			for _, w := range q.Wts {
				sum += w
			}
			vol := math.Pow(2, float64(ndim))
			if math.Abs(sum-vol) > 1e-12 {
				tst.Errorf("ndim=%d npts=%d: sum(w)=%v want %v", ndim, npts, sum, vol)
			}
			// integral of x_0^(2npts-1) over [-1,1] is 0 (odd power)
			deg := 2*npts - 1
			integral := 0.0
			for g, pt := range q.Pts {
				integral += q.Wts[g] * math.Pow(pt[0], float64(deg))
			}
			if math.Abs(integral) > 1e-10 {
				tst.Errorf("ndim=%d npts=%d: odd-degree integral=%v want 0", ndim, npts, integral)
			}
		}
	}
}

// Test_catalog01 checks that the catalog caches by key (identical lookups
// return the same pointer) and that the basis values at each quadrature
// point sum to one (partition of unity, property 2).
func Test_catalog01(tst *testing.T) {

	chk.PrintTitle("catalog01")

	key := Key{Domain: geometry.HYPERCUBE, Ndim: 2, BasisOrder: 3, GeomOrder: 1, QuadType: GAUSS_LEGENDRE, BasisType: NODAL_LAGRANGE}
	r1 := Get(key, false)
	r2 := Get(key, false)
	if r1 != r2 {
		tst.Errorf("expected cached record to be reused")
	}
	for g, qp := range r1.Evals {
		sum := 0.0
		for _, v := range qp.Values {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			tst.Errorf("qp %d: sum of basis values=%v want 1", g, sum)
		}
	}
}

// Test_catalog02 checks that requesting Hessians rebuilds the record with
// non-nil Hessian data, and that the Hessian is symmetric at each qp.
func Test_catalog02(tst *testing.T) {

	chk.PrintTitle("catalog02")

	key := Key{Domain: geometry.HYPERCUBE, Ndim: 2, BasisOrder: 2, GeomOrder: 2, QuadType: GAUSS_LEGENDRE, BasisType: NODAL_LAGRANGE}
	c := NewCatalog()
	r := c.Get(key, false)
	if r.Evals[0].Hess != nil {
		tst.Errorf("expected no Hessian on first build")
	}
	r2 := c.Get(key, true)
	if r2.Evals[0].Hess == nil {
		tst.Fatalf("expected Hessian after rebuild")
	}
	for _, qp := range r2.Evals {
		for b := range qp.Hess {
			for i := 0; i < key.Ndim; i++ {
				for j := 0; j < key.Ndim; j++ {
					if math.Abs(qp.Hess[b][i][j]-qp.Hess[b][j][i]) > 1e-12 {
						tst.Errorf("basis %d: Hess[%d][%d]=%v != Hess[%d][%d]=%v",
							b, i, j, qp.Hess[b][i][j], j, i, qp.Hess[b][j][i])
					}
				}
			}
		}
	}
}

// Test_catalog03 checks that a SIMPLEX catalog entry with BasisOrder>0
// builds a simplex nodal Lagrange basis (not the hypercube tensor basis)
// and that its values still form a partition of unity at every quadrature
// point, property 2 applied to the SIMPLEX domain.
func Test_catalog03(tst *testing.T) {

	chk.PrintTitle("catalog03")

	key := Key{Domain: geometry.SIMPLEX, Ndim: 2, BasisOrder: 2, GeomOrder: 1, QuadType: GAUSS_LEGENDRE, BasisType: NODAL_LAGRANGE}
	r := Get(key, false)
	if r.NBasis() != 6 {
		tst.Errorf("NBasis()=%d want 6 (P2 triangle)", r.NBasis())
	}
	for g, qp := range r.Evals {
		sum := 0.0
		for _, v := range qp.Values {
			sum += v
		}
		if math.Abs(sum-1) > 1e-10 {
			tst.Errorf("qp %d: sum of basis values=%v want 1", g, sum)
		}
	}
	if r.GeoBasis.NBasis() != 3 {
		tst.Errorf("GeoBasis.NBasis()=%d want 3 (P1 triangle geometry)", r.GeoBasis.NBasis())
	}
}

// Test_simplexquad01 checks that the simplex quadrature integrates the
// constant function 1 to the reference simplex's volume (1/ndim!).
func Test_simplexquad01(tst *testing.T) {

	chk.PrintTitle("simplexquad01")

	fact := 1.0
	for ndim := 1; ndim <= 3; ndim++ {
		fact *= float64(ndim)
		q := NewSimplexQuadrature(ndim, 4)
		sum := 0.0
		for _, w := range q.Wts {
			sum += w
		}
		want := 1.0 / fact
		if math.Abs(sum-want) > 1e-9 {
			tst.Errorf("ndim=%d: sum(w)=%v want %v", ndim, sum, want)
		}
	}
}
