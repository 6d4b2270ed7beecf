// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geosel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/disc"
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/mesh"
	"github.com/gabsillis/ICEicle/physics"
)

// buildGridMesh mirrors disc.buildGridMesh for a ncols x nrows structured
// quad mesh with no boundary tags (every face defaults to EXTRAPOLATION).
func buildGridMesh(ncols, nrows int) *mesh.Mesh {
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
	var cells []*mesh.Cell
	cid := 0
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			verts := []int{id(c, r), id(c+1, r), id(c, r+1), id(c+1, r+1)}
			cells = append(cells, &mesh.Cell{
				Id: cid, Domain: geometry.HYPERCUBE, BasisOrder: 1, GeomOrder: 1, Verts: verts,
			})
			cid++
		}
	}
	return mesh.NewMesh(2, coord, cells)
}

func constU(fs *fespace.FESpace, c float64) []float64 {
	n := fs.DG.NDof()
	u := make([]float64, n)
	for i := range u {
		u[i] = c
	}
	return u
}

// Test_geosel01 checks that a spatially constant state (no jump, no
// gradient on either side of any interior trace) drives
// InterfaceConservationResidual to zero.
func Test_geosel01(tst *testing.T) {

	chk.PrintTitle("geosel01")

	m := buildGridMesh(2, 1)
	fs := fespace.NewFESpace(m, 1, 1, false)
	model := &physics.ScalarAdvectionDiffusion{Ndim: 2, A: []float64{1, -1}, K: 0.4}
	d := disc.NewDiscretization(fs, model, &physics.Convective{Model: model}, &physics.Diffusion{Model: model})

	U := constU(fs, 3.5)
	gl := fs.GlobalLayout()
	for ti, t := range fs.Traces {
		if t.IsBoundary() {
			continue
		}
		eL := elemIndexFor(fs, t.Face.ElemL)
		eR := elemIndexFor(fs, t.Face.ElemR)
		unkelL := fs.ElemSpan(eL).ExtractElspan(U, gl)
		unkelR := fs.ElemSpan(eR).ExtractElspan(U, gl)
		rIC := d.InterfaceConservationResidual(ti, unkelL, unkelR)
		for i, v := range rIC {
			if math.Abs(v) > 1e-10 {
				tst.Errorf("trace %d rIC[%d]=%v want 0 for a constant state", ti, i, v)
			}
		}
	}
}

// Test_geosel02 checks that a state with a jump across the single interior
// trace of a 2x1 grid produces a nonzero residual, and that SelectFaces
// picks that trace up once the threshold is below its norm but not once
// it's above.
func Test_geosel02(tst *testing.T) {

	chk.PrintTitle("geosel02")

	m := buildGridMesh(2, 1)
	fs := fespace.NewFESpace(m, 1, 1, false)
	model := &physics.ScalarAdvectionDiffusion{Ndim: 2, A: []float64{1, 0}, K: 0}
	d := disc.NewDiscretization(fs, model, &physics.Convective{Model: model}, &physics.Diffusion{Model: model})

	U := constU(fs, 1.0)
	for _, dof := range fs.DG.ElemDofs(1) {
		U[dof] = 4.0
	}

	var interior int
	for ti, t := range fs.Traces {
		if !t.IsBoundary() {
			interior = ti
		}
	}

	gl := fs.GlobalLayout()
	t := fs.Traces[interior]
	eL := elemIndexFor(fs, t.Face.ElemL)
	eR := elemIndexFor(fs, t.Face.ElemR)
	unkelL := fs.ElemSpan(eL).ExtractElspan(U, gl)
	unkelR := fs.ElemSpan(eR).ExtractElspan(U, gl)
	rIC := d.InterfaceConservationResidual(interior, unkelL, unkelR)

	norm := 0.0
	for _, v := range rIC {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm < 1e-8 {
		tst.Errorf("norm=%v want nonzero for a jump state", norm)
	}

	low := SelectFaces(d, U, norm*0.5)
	found := false
	for _, ti := range low {
		if ti == interior {
			found = true
		}
	}
	if !found {
		tst.Errorf("SelectFaces(threshold=%v) should have picked trace %d, got %v", norm*0.5, interior, low)
	}

	high := SelectFaces(d, U, norm*2)
	for _, ti := range high {
		if ti == interior {
			tst.Errorf("SelectFaces(threshold=%v) should not have picked trace %d", norm*2, interior)
		}
	}
}

// Test_geosel03 checks Constraint.M()/Map() for Fixed and Free, and the
// GeoDofMap length of a Fixed/Slide1D/Free mix.
func Test_geosel03(tst *testing.T) {

	chk.PrintTitle("geosel03")

	fixed := &Fixed{Ndim: 2}
	if fixed.M() != 0 {
		tst.Errorf("Fixed.M()=%d want 0", fixed.M())
	}
	if v := fixed.Map(0, nil); v[0] != 0 || v[1] != 0 {
		tst.Errorf("Fixed.Map()=%v want zero", v)
	}

	free := &Free{Ndim: 2}
	if free.M() != 2 {
		tst.Errorf("Free.M()=%d want 2", free.M())
	}
	if v := free.Map(0, []float64{1.5, -2.5}); v[0] != 1.5 || v[1] != -2.5 {
		tst.Errorf("Free.Map()=%v want passthrough", v)
	}

	g := NewGeoDofMap([]int{0, 1, 2}, []Constraint{fixed, &Slide1D{Phi: nil}, free})
	if g.NGeoDof() != 0+1+2 {
		tst.Errorf("NGeoDof()=%d want 3", g.NGeoDof())
	}
}

func elemIndexFor(fs *fespace.FESpace, el *geometry.Element) int {
	for i, e := range fs.Mesh.Elements {
		if e == el {
			return i
		}
	}
	return -1
}
