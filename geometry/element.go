// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/gabsillis/ICEicle/basis"
)

// Element is the geometric element: a tagged variant over DomainType
// carrying the minimum state needed to evaluate the reference-to-physical
// transform and its derivatives, resolving spec.md's "two GeometricElement
// signatures" open question on the value-returning convention.
type Element struct {
	Domain      DomainType
	GeomOrder   int
	Ndim        int
	NodeIndices []int       // global node indices, in local (tensor/simplex) order
	Coord       [][]float64 // [ndim][nnode] physical coordinates of the local nodes

	tbasis *basis.TensorBasis // non-nil for HYPERCUBE
}

// NewElement builds a geometric element. coord must be [ndim][nnode].
func NewElement(domain DomainType, geomOrder, ndim int, nodeIndices []int, coord [][]float64) *Element {
	o := &Element{Domain: domain, GeomOrder: geomOrder, Ndim: ndim, NodeIndices: nodeIndices, Coord: coord}
	if domain == HYPERCUBE {
		o.tbasis = basis.NewTensorBasis(ndim, geomOrder)
	}
	return o
}

// NVerts returns the number of nodes (control points) of the element.
func (o *Element) NVerts() int {
	return len(o.NodeIndices)
}

// NFaces returns the number of faces of the element's reference domain.
func (o *Element) NFaces() int {
	switch o.Domain {
	case HYPERCUBE:
		return NFacesHypercube(o.Ndim)
	case SIMPLEX:
		return o.Ndim + 1
	}
	return 0
}

// Centroid returns the reference-domain centroid (xi_c).
func (o *Element) Centroid() []float64 {
	xi := make([]float64, o.Ndim)
	if o.Domain == SIMPLEX {
		for d := range xi {
			xi[d] = 1.0 / 3.0
		}
	}
	return xi
}

// PhysicalCentroid returns transform(xi_c).
func (o *Element) PhysicalCentroid() []float64 {
	return o.Transform(o.Centroid())
}

// Transform maps a reference point xi to the physical point x.
func (o *Element) Transform(xi []float64) []float64 {
	x := make([]float64, o.Ndim)
	switch o.Domain {
	case HYPERCUBE:
		B := make([]float64, o.tbasis.Nbasis)
		o.tbasis.FillShp(xi, B)
		for i := 0; i < o.Ndim; i++ {
			for n := 0; n < o.NVerts(); n++ {
				x[i] += o.Coord[i][n] * B[n]
			}
		}
	case SIMPLEX:
		// affine (order-1) simplex transform: barycentric combination of vertices.
		lambda := simplexBarycentric(o.Ndim, xi)
		for i := 0; i < o.Ndim; i++ {
			for n := 0; n < o.NVerts(); n++ {
				x[i] += o.Coord[i][n] * lambda[n]
			}
		}
	default:
		chk.Panic("unknown domain type %v", o.Domain)
	}
	return x
}

// Jacobian returns J[i][j] = dx_i/dxi_j at the reference point xi.
func (o *Element) Jacobian(xi []float64) [][]float64 {
	J := la.MatAlloc(o.Ndim, o.Ndim)
	switch o.Domain {
	case HYPERCUBE:
		dB := make([][]float64, o.tbasis.Nbasis)
		for i := range dB {
			dB[i] = make([]float64, o.Ndim)
		}
		o.tbasis.FillDeriv(xi, dB)
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				for n := 0; n < o.NVerts(); n++ {
					J[i][j] += o.Coord[i][n] * dB[n][j]
				}
			}
		}
	case SIMPLEX:
		dlambda := simplexBarycentricDeriv(o.Ndim)
		for i := 0; i < o.Ndim; i++ {
			for j := 0; j < o.Ndim; j++ {
				for n := 0; n < o.NVerts(); n++ {
					J[i][j] += o.Coord[i][n] * dlambda[n][j]
				}
			}
		}
	}
	return J
}

// Hessian returns H[i][j][k] = d2 x_i / dxi_j dxi_k at the reference point xi.
// For affine SIMPLEX elements this is identically zero.
func (o *Element) Hessian(xi []float64) [][][]float64 {
	H := make([][][]float64, o.Ndim)
	for i := range H {
		H[i] = make([][]float64, o.Ndim)
		for j := range H[i] {
			H[i][j] = make([]float64, o.Ndim)
		}
	}
	if o.Domain != HYPERCUBE {
		return H
	}
	Hb := make([][][]float64, o.tbasis.Nbasis)
	for i := range Hb {
		Hb[i] = make([][]float64, o.Ndim)
		for j := range Hb[i] {
			Hb[i][j] = make([]float64, o.Ndim)
		}
	}
	o.tbasis.FillHess(xi, Hb)
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			for k := 0; k < o.Ndim; k++ {
				for n := 0; n < o.NVerts(); n++ {
					H[i][j][k] += o.Coord[i][n] * Hb[n][j][k]
				}
			}
		}
	}
	return H
}

// simplexBarycentric returns the ndim+1 barycentric coordinates of a point
// xi in the standard unit simplex (vertices at the origin and the ndim unit
// vectors), with vertex-0 = origin first in the node-ordering convention
// lambda[0]=1-sum(xi), lambda[d+1]=xi[d].
func simplexBarycentric(ndim int, xi []float64) []float64 {
	lambda := make([]float64, ndim+1)
	s := 0.0
	for d := 0; d < ndim; d++ {
		lambda[d+1] = xi[d]
		s += xi[d]
	}
	lambda[0] = 1 - s
	return lambda
}

// simplexBarycentricDeriv returns dlambda[n][j] = d(lambda_n)/d(xi_j).
func simplexBarycentricDeriv(ndim int) [][]float64 {
	d := la.MatAlloc(ndim+1, ndim)
	for j := 0; j < ndim; j++ {
		d[0][j] = -1
		d[j+1][j] = 1
	}
	return d
}
