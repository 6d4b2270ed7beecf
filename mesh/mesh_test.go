// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/geometry"
)

// buildGridMesh builds a ncols x nrows grid of unit quads (a structured
// quadrilateral mesh), returning the Mesh together with its (ncols+1) x
// (nrows+1) node id convention id(i,j) = j*(ncols+1) + i. Each cell lists
// its vertices in TensorBasis order (last axis fastest), so reference axis0
// runs along x and axis1 along y.
func buildGridMesh(ncols, nrows int) *Mesh {
	nx := ncols + 1
	ny := nrows + 1
	coord := [][]float64{make([]float64, nx*ny), make([]float64, nx*ny)}
	id := func(i, j int) int { return j*nx + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			coord[0][id(i, j)] = float64(i)
			coord[1][id(i, j)] = float64(j)
		}
	}
	var cells []*Cell
	cid := 0
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			verts := []int{id(c, r), id(c, r+1), id(c+1, r), id(c+1, r+1)}
			cells = append(cells, &Cell{
				Id: cid, Domain: geometry.HYPERCUBE, BasisOrder: 1, GeomOrder: 1,
				Verts: verts, FaceBC: map[int]geometry.BCType{},
			})
			cid++
		}
	}
	return NewMesh(2, coord, cells)
}

// Test_mesh01 checks property: a 3x2 structured quad mesh (S4: 12 nodes, 6
// elements) has 7 interior faces and 10 boundary faces, consistent with
// Euler's formula 4F = 2*Ei + Eb.
func Test_mesh01(tst *testing.T) {

	chk.PrintTitle("mesh01")

	m := buildGridMesh(3, 2)
	if m.NNodes() != 12 {
		tst.Errorf("NNodes=%d want 12", m.NNodes())
	}
	if len(m.Cells) != 6 {
		tst.Errorf("ncells=%d want 6", len(m.Cells))
	}
	m.BuildFaces()
	if len(m.InteriorFaces) != 7 {
		tst.Errorf("ninterior=%d want 7", len(m.InteriorFaces))
	}
	if len(m.BoundaryFaces) != 10 {
		tst.Errorf("nboundary=%d want 10", len(m.BoundaryFaces))
	}
}

// Test_mesh02 checks property 6 holds across every interior face of the
// structured grid: the outward normal from elemL points away from elemL's
// centroid and toward elemR's.
func Test_mesh02(tst *testing.T) {

	chk.PrintTitle("mesh02")

	m := buildGridMesh(3, 2)
	m.BuildFaces()
	s := []float64{0}
	for fi, f := range m.InteriorFaces {
		n := f.Normal(s)
		xGamma := f.Transform(s)
		cL := f.ElemL.PhysicalCentroid()
		cR := f.ElemR.PhysicalCentroid()
		dotL, dotR := 0.0, 0.0
		for i := range n {
			dotL += n[i] * (cL[i] - xGamma[i])
			dotR += n[i] * (cR[i] - xGamma[i])
		}
		if dotL >= 0 {
			tst.Errorf("face %d: n.(cL-xGamma)=%v want <0", fi, dotL)
		}
		if dotR <= 0 {
			tst.Errorf("face %d: n.(cR-xGamma)=%v want >0", fi, dotR)
		}
	}
}

// Test_mesh03 checks the elements-surrounding-node CRS: an interior node of
// the 3x2 grid touches 4 cells, and a corner node touches exactly 1.
func Test_mesh03(tst *testing.T) {

	chk.PrintTitle("mesh03")

	m := buildGridMesh(3, 2)
	nx := 4
	interior := 1*nx + 1 // node (1,1): interior of the grid
	if len(m.NodeElems(interior)) != 4 {
		tst.Errorf("interior node %d touches %d cells, want 4", interior, len(m.NodeElems(interior)))
	}
	corner := 0 // node (0,0)
	if len(m.NodeElems(corner)) != 1 {
		tst.Errorf("corner node %d touches %d cells, want 1", corner, len(m.NodeElems(corner)))
	}
}

// Test_spacetime01 checks a stacked-slab scenario in the shape of the
// spacetime connectivity example: two 4x4-element slabs, one directly above
// the other along axis 1 (the time axis), connect each node on the future
// slab's past boundary (its bottom row, local ids 0..4) to the past slab's
// matching future-boundary node (its top row, ids 20..24).
func Test_spacetime01(tst *testing.T) {

	chk.PrintTitle("spacetime01")

	past := buildGridMesh(4, 4)   // 5x5=25 nodes, ids 0..24
	future := buildGridMesh(4, 4) // also 25 nodes ids 0..24, shifted in time below
	for i := range future.Coord[1] {
		future.Coord[1][i] += 4 // stack the future slab directly above the past slab
	}

	// tag the top row of `past` (y==4) as SPACETIME_FUTURE, and the bottom
	// row of `future` (y==4, its own local y==0 shifted by +4) as
	// SPACETIME_PAST, on face_nr=3 (axis1,side1) / face_nr=2 (axis1,side0).
	for _, c := range past.Cells {
		// row index 3 (topmost row of a 4-row grid) has local node y==4
		if maxCoordOnFace(past, c, 3, 1) == 4 {
			c.FaceBC[3] = geometry.SPACETIME_FUTURE
		}
	}
	for _, c := range future.Cells {
		if minCoordOnFace(future, c, 2, 1) == 4 {
			c.FaceBC[2] = geometry.SPACETIME_PAST
		}
	}

	conn := ComputeSpacetimeNodeConnectivity(past, future, 1, 1e-9)
	for i := 0; i <= 4; i++ {
		want := i + 20     // node ids 20..24 are the past slab's top row (y=4)
		got, ok := conn[i] // node ids 0..4 are the future slab's bottom row (y=4)
		if !ok {
			tst.Errorf("node %d: no connectivity entry", i)
			continue
		}
		if got != want {
			tst.Errorf("node %d -> %d, want %d", i, got, want)
		}
	}
}

func maxCoordOnFace(m *Mesh, c *Cell, faceNr, axis int) float64 {
	best := math.Inf(-1)
	for _, li := range faceCornerLocalIndices(c, m.Ndim, faceNr) {
		v := m.Coord[axis][c.Verts[li]]
		if v > best {
			best = v
		}
	}
	return best
}

func minCoordOnFace(m *Mesh, c *Cell, faceNr, axis int) float64 {
	best := math.Inf(1)
	for _, li := range faceCornerLocalIndices(c, m.Ndim, faceNr) {
		v := m.Coord[axis][c.Verts[li]]
		if v < best {
			best = v
		}
	}
	return best
}
