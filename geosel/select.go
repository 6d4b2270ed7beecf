// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geosel

import (
	"math"

	"github.com/gabsillis/ICEicle/disc"
	"github.com/gabsillis/ICEicle/geometry"
)

// SelectFaces returns the indices of every interior trace whose
// interface-conservation residual norm meets or exceeds threshold, the
// MDG-ICE geometry-selection rule: a face only earns a geometry unknown if
// its current mesh fails to resolve the solution's flux continuity there.
func SelectFaces(d *disc.Discretization, U []float64, threshold float64) []int {
	gl := d.FES.GlobalLayout()
	var selected []int
	for ti, t := range d.FES.Traces {
		if t.IsBoundary() {
			continue
		}
		eL := indexOfElement(d, t.Face.ElemL)
		eR := indexOfElement(d, t.Face.ElemR)
		spanL := d.FES.ElemSpan(eL)
		spanR := d.FES.ElemSpan(eR)
		unkelL := spanL.ExtractElspan(U, gl)
		unkelR := spanR.ExtractElspan(U, gl)

		rIC := d.InterfaceConservationResidual(ti, unkelL, unkelR)
		norm := 0.0
		for _, v := range rIC {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm >= threshold {
			selected = append(selected, ti)
		}
	}
	return selected
}

// indexOfElement resolves a *geometry.Element back to its mesh position by
// linear scan: SelectFaces runs once per geometry-selection pass (not per
// residual evaluation), so it does not need disc.Discretization's cached
// map, which is private to that package.
func indexOfElement(d *disc.Discretization, el *geometry.Element) int {
	for i, e := range d.FES.Mesh.Elements {
		if e == el {
			return i
		}
	}
	return -1
}
