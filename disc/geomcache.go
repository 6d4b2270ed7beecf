// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
)

// invertAt inverts element el's Jacobian at reference point xi.
func invertAt(el *geometry.Element, xi []float64, minDet float64) (Jinv [][]float64, det float64, err error) {
	J := el.Jacobian(xi)
	return fespace.InvertJacobian(J, minDet)
}

func physicalGrad(gradXi [][]float64, Jinv [][]float64) [][]float64 {
	return fespace.PhysicalGrad(gradXi, Jinv)
}

func physicalHess(hessXi [][][]float64, Jinv [][]float64) [][][]float64 {
	return fespace.PhysicalHess(hessXi, Jinv)
}
