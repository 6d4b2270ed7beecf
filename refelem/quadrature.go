// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refelem

import (
	"math"

	"github.com/gabsillis/ICEicle/geometry"
)

// QuadRule holds quadrature points (in reference coordinates) and weights.
type QuadRule struct {
	Pts [][]float64 // [nqp][ndim]
	Wts []float64   // [nqp]
}

// NPoints returns the number of quadrature points.
func (q *QuadRule) NPoints() int { return len(q.Wts) }

// gaussLegendre1D returns the n-point Gauss-Legendre nodes/weights on
// [-1,1], computed by Newton's method on the Legendre polynomial recurrence
// (the standard textbook algorithm; no ecosystem library in the example
// pack implements 1D Gauss-Legendre quadrature directly, see DESIGN.md).
func gaussLegendre1D(n int) (x, w []float64) {
	if n == 1 {
		return []float64{0}, []float64{2}
	}
	x = make([]float64, n)
	w = make([]float64, n)
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, 0.0
			for j := 0; j < n; j++ {
				p2 := p1
				p1 = p0
				p0 = ((2*float64(j)+1)*z*p1 - float64(j)*p2) / (float64(j) + 1)
			}
			pp = float64(n) * (z*p0 - p1) / (z*z - 1)
			z1 := z
			z = z1 - p0/pp
			if math.Abs(z-z1) < 1e-15 {
				break
			}
		}
		x[i] = -z
		x[n-1-i] = z
		wi := 2 / ((1 - z*z) * pp * pp)
		w[i] = wi
		w[n-1-i] = wi
	}
	return
}

// NewHypercubeQuadrature builds an ndim-dimensional tensor-product
// Gauss-Legendre rule with npts1d points per axis.
func NewHypercubeQuadrature(ndim, npts1d int) *QuadRule {
	x1, w1 := gaussLegendre1D(npts1d)
	nqp := 1
	for d := 0; d < ndim; d++ {
		nqp *= npts1d
	}
	q := &QuadRule{Pts: make([][]float64, nqp), Wts: make([]float64, nqp)}
	stride := make([]int, maxInt(ndim, 1))
	s := 1
	for d := ndim - 1; d >= 0; d-- {
		stride[d] = s
		s *= npts1d
	}
	for g := 0; g < nqp; g++ {
		pt := make([]float64, ndim)
		wt := 1.0
		rem := g
		for d := 0; d < ndim; d++ {
			idx := rem / stride[d]
			rem -= idx * stride[d]
			pt[d] = x1[idx]
			wt *= w1[idx]
		}
		q.Pts[g] = pt
		q.Wts[g] = wt
	}
	return q
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NewSimplexQuadrature builds an ndim-dimensional quadrature rule on the
// standard unit simplex via the Duffy (collapsed-coordinate) transform of a
// tensor-product Gauss-Legendre rule on [-1,1]^ndim, with the transform's
// Jacobian folded into the weights.
func NewSimplexQuadrature(ndim, npts1d int) *QuadRule {
	hc := NewHypercubeQuadrature(ndim, npts1d)
	q := &QuadRule{Pts: make([][]float64, hc.NPoints()), Wts: make([]float64, hc.NPoints())}
	for g, pt := range hc.Pts {
		// map each axis from [-1,1] to [0,1]
		u := make([]float64, ndim)
		for d := 0; d < ndim; d++ {
			u[d] = 0.5 * (pt[d] + 1)
		}
		xi := make([]float64, ndim)
		jac := 1.0
		scale := 1.0
		for d := 0; d < ndim; d++ {
			xi[d] = u[d] * scale
			jac *= scale
			scale *= 1 - u[d]
		}
		q.Pts[g] = xi
		// factor of 0.5^ndim from the [-1,1]->[0,1] rescale per axis
		q.Wts[g] = hc.Wts[g] * jac * math.Pow(0.5, float64(ndim))
	}
	return q
}

// NewQuadrature dispatches on domain type.
func NewQuadrature(domain geometry.DomainType, ndim, npts1d int) *QuadRule {
	if domain == geometry.SIMPLEX {
		return NewSimplexQuadrature(ndim, npts1d)
	}
	return NewHypercubeQuadrature(ndim, npts1d)
}
