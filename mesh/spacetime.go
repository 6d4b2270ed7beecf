// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "math"

// ComputeSpacetimeNodeConnectivity matches nodes on the SPACETIME_PAST
// boundary of `future` to nodes on the SPACETIME_FUTURE boundary of `past` by
// comparing their coordinates with the time axis excluded, returning a map
// from future-mesh node id to past-mesh node id. This is how two time slabs
// of a space-time mesh are stitched for the boundary-trace branch that
// reads the adjoining slab's solution (see disc.boundaryTraceSpacetimePast).
func ComputeSpacetimeNodeConnectivity(past, future *Mesh, timeAxis int, tol float64) map[int]int {
	pastNodes := boundaryNodeSet(past, timeAxisBC(true))
	futureNodes := boundaryNodeSet(future, timeAxisBC(false))

	conn := make(map[int]int, len(pastNodes))
	for _, pn := range pastNodes {
		for _, fn := range futureNodes {
			if spaceCoordsMatch(past, future, pn, fn, timeAxis, tol) {
				conn[fn] = pn
				break
			}
		}
	}
	return conn
}

// timeAxisBC is a marker distinguishing which slab's boundary faces are
// being scanned; kept as a named type rather than a bare bool so the call
// sites above read clearly.
type timeAxisBC bool

// boundaryNodeSet collects the distinct node ids touched by a mesh's
// SPACETIME_FUTURE faces (future==false side of the temporal interface) or
// SPACETIME_PAST faces, deduplicated.
func boundaryNodeSet(m *Mesh, wantFuture timeAxisBC) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range m.Cells {
		for faceNr, bc := range c.FaceBC {
			isFuture := bc.String() == "spacetime_future"
			isPast := bc.String() == "spacetime_past"
			if (bool(wantFuture) && !isFuture) || (!bool(wantFuture) && !isPast) {
				continue
			}
			locals := faceCornerLocalIndices(c, m.Ndim, faceNr)
			for _, li := range locals {
				v := c.Verts[li]
				if !seen[v] {
					seen[v] = true
					out = append(out, v)
				}
			}
		}
	}
	return out
}

func spaceCoordsMatch(mA, mB *Mesh, a, b, timeAxis int, tol float64) bool {
	for d := 0; d < mA.Ndim; d++ {
		if d == timeAxis {
			continue
		}
		if math.Abs(mA.Coord[d][a]-mB.Coord[d][b]) > tol {
			return false
		}
	}
	return true
}
