// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/gosl/la"

// matInvDet inverts the small dense matrix J (element geometry Jacobian,
// ndim x ndim) via la.MatInv, the same dense-inverse routine shp/algos.go
// uses for its own Jacobian inversion, returning the determinant alongside.
func matInvDet(J [][]float64) (Jinv [][]float64, det float64, err error) {
	n := len(J)
	Jinv = la.MatAlloc(n, n)
	det, err = la.MatInv(Jinv, J, 1e-14)
	return
}

// solveDense solves A x = b for the dense regularized normal-equation
// matrix A (n x n, n == PDE dofs + geometry dofs) via la.MatInv, acceptable
// at the scale of the MDG-ICE geometry-selection subproblem this solver
// targets (see DESIGN.md for why a dense inverse was chosen over gosl's
// sparse la.LinSol path used by fem/s_implicit.go's Newton loop).
func solveDense(A [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	Ainv := la.MatAlloc(n, n)
	_, err := la.MatInv(Ainv, A, 1e-14)
	if err != nil {
		return nil, err
	}
	x := make([]float64, n)
	la.MatVecMul(x, 1, Ainv, b)
	return x, nil
}
