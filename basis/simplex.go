// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import "github.com/cpmech/gosl/la"

// SimplexBasis is the order-Pn nodal Lagrange basis on the standard unit
// simplex in ndim dimensions (vertices at the origin and the ndim unit
// vectors, barycentric coordinate lambda[0] = 1 - sum(xi), lambda[d+1] =
// xi[d], matching geometry.Element's affine simplex transform). Nodes sit
// on the equispaced barycentric lattice alpha/Pn, alpha a multi-index of
// length ndim+1 summing to Pn; the basis functions are the corresponding
// degree-Pn polynomials built by inverting the monomial Vandermonde matrix
// at those nodes, so (unlike the tensor-product basis) there is no closed
// nodal form above order 1.
type SimplexBasis struct {
	Ndim   int
	Pn     int
	Nbasis int

	monos  [][]int     // [Nbasis][ndim] monomial exponents
	coeffs [][]float64 // [Nbasis][Nbasis] coeffs[i][k]: phi_i = sum_k coeffs[i][k]*mono_k
}

// NewSimplexBasis builds the nodal basis of order pn in ndim dimensions.
func NewSimplexBasis(ndim, pn int) *SimplexBasis {
	o := &SimplexBasis{Ndim: ndim, Pn: pn}
	o.monos = simplexMultiIndices(ndim, pn)
	o.Nbasis = len(o.monos)
	nodes := simplexLatticeNodes(ndim, pn)

	V := la.MatAlloc(o.Nbasis, o.Nbasis)
	for j, node := range nodes {
		for k, beta := range o.monos {
			V[j][k] = evalMono(beta, node)
		}
	}
	Vinv := la.MatAlloc(o.Nbasis, o.Nbasis)
	_, err := la.MatInv(Vinv, V, 1e-14)
	if err != nil {
		panic("basis: singular simplex Vandermonde matrix: " + err.Error())
	}
	// coeffs[i][k] = Vinv[k][i]: phi_i(node_j) = sum_k coeffs[i][k]*mono_k(node_j)
	// = sum_k Vinv[k][i]*V[j][k] = (V*Vinv)[j][i] = delta_ij.
	o.coeffs = la.MatAlloc(o.Nbasis, o.Nbasis)
	for i := 0; i < o.Nbasis; i++ {
		for k := 0; k < o.Nbasis; k++ {
			o.coeffs[i][k] = Vinv[k][i]
		}
	}
	return o
}

// NBasis returns the number of basis functions, satisfying the Basis interface.
func (o *SimplexBasis) NBasis() int { return o.Nbasis }

// FillShp fills Bout[0..Nbasis-1] with the basis values at xi.
func (o *SimplexBasis) FillShp(xi []float64, Bout []float64) {
	for i := 0; i < o.Nbasis; i++ {
		v := 0.0
		for k, beta := range o.monos {
			v += o.coeffs[i][k] * evalMono(beta, xi)
		}
		Bout[i] = v
	}
}

// FillDeriv fills dBij[ibasis][j] with d B_ibasis / d xi_j at xi.
func (o *SimplexBasis) FillDeriv(xi []float64, dBij [][]float64) {
	for i := 0; i < o.Nbasis; i++ {
		for j := 0; j < o.Ndim; j++ {
			v := 0.0
			for k, beta := range o.monos {
				v += o.coeffs[i][k] * evalMonoDeriv(beta, xi, j)
			}
			dBij[i][j] = v
		}
	}
}

// FillHess fills Hess[ibasis][i][j] with d2 B_ibasis / d xi_i d xi_j at xi.
func (o *SimplexBasis) FillHess(xi []float64, Hess [][][]float64) {
	for b := 0; b < o.Nbasis; b++ {
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				v := 0.0
				for k, beta := range o.monos {
					v += o.coeffs[b][k] * evalMonoDeriv2(beta, xi, i, j)
				}
				Hess[b][i][j] = v
			}
		}
	}
}

// evalMono evaluates x^beta = prod_d x[d]^beta[d].
func evalMono(beta []int, x []float64) float64 {
	v := 1.0
	for d, e := range beta {
		for p := 0; p < e; p++ {
			v *= x[d]
		}
	}
	return v
}

// evalMonoDeriv evaluates d(x^beta)/dx_j.
func evalMonoDeriv(beta []int, x []float64, j int) float64 {
	if beta[j] == 0 {
		return 0
	}
	v := float64(beta[j])
	for d, e := range beta {
		p := e
		if d == j {
			p--
		}
		for ; p > 0; p-- {
			v *= x[d]
		}
	}
	return v
}

// evalMonoDeriv2 evaluates d2(x^beta)/dx_i dx_j.
func evalMonoDeriv2(beta []int, x []float64, i, j int) float64 {
	if i == j {
		if beta[i] < 2 {
			return 0
		}
		v := float64(beta[i] * (beta[i] - 1))
		for d, e := range beta {
			p := e
			if d == i {
				p -= 2
			}
			for ; p > 0; p-- {
				v *= x[d]
			}
		}
		return v
	}
	if beta[i] == 0 || beta[j] == 0 {
		return 0
	}
	v := float64(beta[i] * beta[j])
	for d, e := range beta {
		p := e
		if d == i || d == j {
			p--
		}
		for ; p > 0; p-- {
			v *= x[d]
		}
	}
	return v
}

// simplexMultiIndices enumerates every ndim-length exponent vector with
// total degree at most pn, the monomial basis for degree-pn polynomials
// in ndim variables (size C(pn+ndim, ndim), matching the lattice node count).
func simplexMultiIndices(ndim, pn int) [][]int {
	var out [][]int
	var rec func(d int, remaining int, cur []int)
	rec = func(d int, remaining int, cur []int) {
		if d == ndim {
			out = append(out, append([]int{}, cur...))
			return
		}
		for e := 0; e <= remaining; e++ {
			cur[d] = e
			rec(d+1, remaining-e, cur)
		}
	}
	rec(0, pn, make([]int, ndim))
	return out
}

// simplexLatticeNodes returns the equispaced barycentric lattice node
// coordinates in reference xi-space: for each multi-index alpha of length
// ndim+1 summing to pn, xi[d] = alpha[d+1]/pn (alpha[0] is lambda_0's
// numerator and is dropped, matching geometry.simplexBarycentric).
func simplexLatticeNodes(ndim, pn int) [][]float64 {
	var out [][]float64
	var rec func(d int, remaining int, cur []int)
	rec = func(d int, remaining int, cur []int) {
		if d == ndim {
			cur[ndim] = remaining
			xi := make([]float64, ndim)
			if pn == 0 {
				for k := range xi {
					xi[k] = 1.0 / float64(ndim+1)
				}
			} else {
				for k := 0; k < ndim; k++ {
					xi[k] = float64(cur[k+1]) / float64(pn)
				}
			}
			out = append(out, xi)
			return
		}
		for e := 0; e <= remaining; e++ {
			cur[d] = e
			rec(d+1, remaining-e, cur)
		}
	}
	rec(0, pn, make([]int, ndim+1))
	return out
}
