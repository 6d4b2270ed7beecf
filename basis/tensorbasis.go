// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

// Basis is implemented by every basis family in this package (TensorBasis
// for HYPERCUBE, SimplexBasis for SIMPLEX), letting refelem cache and
// evaluate either behind one interface.
type Basis interface {
	NBasis() int
	FillShp(xi []float64, Bout []float64)
	FillDeriv(xi []float64, dBij [][]float64)
	FillHess(xi []float64, Hess [][][]float64)
}

// TensorBasis is the ndim-dimensional tensor-product (Q-type) basis built
// from ndim copies of a 1D Lagrange basis. Multi-indices alpha in
// {0..Pn}^ndim are enumerated lexicographically with the last dimension
// fastest; Stride[d] = Nbasis1d^(ndim-1-d).
type TensorBasis struct {
	Ndim    int
	B1d     *Lagrange1D
	Nbasis1d int
	Nbasis  int // Nbasis1d^ndim
	Stride  []int

	// scratch reused across calls to avoid per-qp allocation
	e    [][]float64 // [ndim][nbasis1d] values
	de   [][]float64 // [ndim][nbasis1d] first derivatives
	d2e  [][]float64 // [ndim][nbasis1d] second derivatives
}

// NewTensorBasis builds a tensor-product basis of order Pn in ndim dimensions.
func NewTensorBasis(ndim, pn int) *TensorBasis {
	b1d := NewLagrange1D(pn)
	o := &TensorBasis{
		Ndim:     ndim,
		B1d:      b1d,
		Nbasis1d: b1d.Nbasis,
	}
	o.Nbasis = 1
	for d := 0; d < ndim; d++ {
		o.Nbasis *= o.Nbasis1d
	}
	o.Stride = make([]int, maxInt(ndim, 1))
	stride := 1
	for d := ndim - 1; d >= 0; d-- {
		o.Stride[d] = stride
		stride *= o.Nbasis1d
	}
	o.e = alloc2(ndim, o.Nbasis1d)
	o.de = alloc2(ndim, o.Nbasis1d)
	o.d2e = alloc2(ndim, o.Nbasis1d)
	return o
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func alloc2(n, m int) [][]float64 {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, m)
	}
	return a
}

// NBasis returns the number of basis functions, satisfying the Basis interface.
func (o *TensorBasis) NBasis() int { return o.Nbasis }

// MultiIndex returns the per-axis 1D node index for basis function ibasis,
// decoding the lexicographic (last-dimension-fastest) enumeration.
func (o *TensorBasis) MultiIndex(ibasis int, alpha []int) {
	rem := ibasis
	for d := 0; d < o.Ndim; d++ {
		alpha[d] = rem / o.Stride[d]
		rem -= alpha[d] * o.Stride[d]
	}
}

// FillShp fills Bout[0..Nbasis-1] with the tensor-product basis values at
// reference point xi[0..ndim-1].
func (o *TensorBasis) FillShp(xi []float64, Bout []float64) {
	if o.Ndim == 0 {
		Bout[0] = 1
		return
	}
	for d := 0; d < o.Ndim; d++ {
		o.B1d.EvalAll(xi[d], o.e[d])
	}
	alpha := make([]int, o.Ndim)
	for ibasis := 0; ibasis < o.Nbasis; ibasis++ {
		o.MultiIndex(ibasis, alpha)
		v := 1.0
		for d := 0; d < o.Ndim; d++ {
			v *= o.e[d][alpha[d]]
		}
		Bout[ibasis] = v
	}
}

// FillDeriv fills dBij[ibasis][j] with d B_ibasis / d xi_j at xi.
func (o *TensorBasis) FillDeriv(xi []float64, dBij [][]float64) {
	for d := 0; d < o.Ndim; d++ {
		o.B1d.DerivAll(xi[d], o.e[d], o.de[d])
	}
	alpha := make([]int, o.Ndim)
	for ibasis := 0; ibasis < o.Nbasis; ibasis++ {
		o.MultiIndex(ibasis, alpha)
		for j := 0; j < o.Ndim; j++ {
			v := 1.0
			for d := 0; d < o.Ndim; d++ {
				if d == j {
					v *= o.de[d][alpha[d]]
				} else {
					v *= o.e[d][alpha[d]]
				}
			}
			dBij[ibasis][j] = v
		}
	}
}

// FillHess fills Hess[ibasis][i][j] with d2 B_ibasis / d xi_i d xi_j at xi.
// The result is symmetric; the lower triangle is mirrored from the upper.
func (o *TensorBasis) FillHess(xi []float64, Hess [][][]float64) {
	for d := 0; d < o.Ndim; d++ {
		o.B1d.D2All(xi[d], o.e[d], o.de[d], o.d2e[d])
	}
	alpha := make([]int, o.Ndim)
	for ibasis := 0; ibasis < o.Nbasis; ibasis++ {
		o.MultiIndex(ibasis, alpha)
		for i := 0; i < o.Ndim; i++ {
			for j := i; j < o.Ndim; j++ {
				v := 1.0
				for d := 0; d < o.Ndim; d++ {
					switch {
					case i == j && d == i:
						v *= o.d2e[d][alpha[d]]
					case d == i || d == j:
						v *= o.de[d][alpha[d]]
					default:
						v *= o.e[d][alpha[d]]
					}
				}
				Hess[ibasis][i][j] = v
				Hess[ibasis][j][i] = v
			}
		}
	}
}
