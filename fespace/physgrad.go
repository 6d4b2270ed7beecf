// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fespace

import (
	"github.com/cpmech/gosl/la"
)

// PhysicalGrad pulls a [nbasis][ndim] table of reference-space basis
// gradients back to physical space through the inverse element Jacobian,
// mirroring shp/algos.go's InvMap use of la.MatInv for the same J -> Jinv
// step. Jinv[j][d] = d(xi_j)/d(x_d).
func PhysicalGrad(gradXi [][]float64, Jinv [][]float64) [][]float64 {
	ndim := len(Jinv)
	out := make([][]float64, len(gradXi))
	for b := range gradXi {
		out[b] = make([]float64, ndim)
		for d := 0; d < ndim; d++ {
			for j := 0; j < ndim; j++ {
				out[b][d] += gradXi[b][j] * Jinv[j][d]
			}
		}
	}
	return out
}

// PhysicalHess pulls a [nbasis][ndim][ndim] table of reference-space basis
// Hessians back to physical space via the pullback term
// d2phi/dx_a dx_d = sum_jk Jinv[j][a] Jinv[k][d] d2phi/dxi_j dxi_k.
// This omits the geometric curvature correction term (which needs the
// element's own reference-to-physical Hessian); it is exact for affine
// (straight-sided) elements and is the approximation this discretization
// uses uniformly, since the retrieval pack does not carry the header that
// defines the fully curved version.
func PhysicalHess(hessXi [][][]float64, Jinv [][]float64) [][][]float64 {
	ndim := len(Jinv)
	out := make([][][]float64, len(hessXi))
	for b := range hessXi {
		out[b] = make([][]float64, ndim)
		for a := range out[b] {
			out[b][a] = make([]float64, ndim)
		}
		for a := 0; a < ndim; a++ {
			for d := 0; d < ndim; d++ {
				v := 0.0
				for j := 0; j < ndim; j++ {
					for k := 0; k < ndim; k++ {
						v += Jinv[j][a] * Jinv[k][d] * hessXi[b][j][k]
					}
				}
				out[b][a][d] = v
			}
		}
	}
	return out
}

// InvertJacobian inverts an ndim x ndim Jacobian matrix via la.MatInv,
// mirroring shp/algos.go's `o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)`.
func InvertJacobian(J [][]float64, minDet float64) (Jinv [][]float64, det float64, err error) {
	ndim := len(J)
	Jinv = la.MatAlloc(ndim, ndim)
	det, err = la.MatInv(Jinv, J, minDet)
	return
}
