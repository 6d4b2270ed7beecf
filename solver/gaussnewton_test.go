// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/disc"
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/geosel"
	"github.com/gabsillis/ICEicle/mesh"
	"github.com/gabsillis/ICEicle/physics"
)

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

// Test_solver01 checks that a GaussNewton with no selected geometry dofs
// reports immediate convergence from an already-zero-residual state
// (constant field, zero advection/diffusion jump at every trace).
func Test_solver01(tst *testing.T) {

	chk.PrintTitle("solver01")

	m := buildGridMesh(2, 1)
	fs := fespace.NewFESpace(m, 1, 1, false)
	model := &physics.ScalarAdvectionDiffusion{Ndim: 2, A: []float64{0, 0}, K: 0.5}
	d := disc.NewDiscretization(fs, model, &physics.Convective{Model: model}, &physics.Diffusion{Model: model})

	geo := geosel.NewGeoDofMap(nil, nil)
	gn := NewGaussNewton(d, geo, nil)

	n := fs.DG.NDof()
	U0 := make([]float64, n)
	for i := range U0 {
		U0[i] = 2.0
	}

	U, xg, iters, err := gn.Solve(U0, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if iters != 0 {
		tst.Errorf("iters=%d want 0 (already converged)", iters)
	}
	if len(xg) != 0 {
		tst.Errorf("len(xg)=%d want 0", len(xg))
	}
	for i, u := range U {
		if u != U0[i] {
			tst.Errorf("U[%d]=%v changed from an already-converged start", i, u)
		}
	}
}

// Test_solver02 checks minElemDetJ returns a positive, sane determinant
// scale for a unit-square grid cell (det J should be 0.25 for a unit-cell
// bilinear map in [-1,1]^2 reference coordinates: area 1 maps from a
// reference cell of area 4).
func Test_solver02(tst *testing.T) {

	chk.PrintTitle("solver02")

	m := buildGridMesh(1, 1)
	fs := fespace.NewFESpace(m, 1, 1, false)
	model := &physics.ScalarAdvectionDiffusion{Ndim: 2, A: []float64{0, 0}, K: 1}
	d := disc.NewDiscretization(fs, model, &physics.Convective{Model: model}, &physics.Diffusion{Model: model})

	geo := geosel.NewGeoDofMap(nil, nil)
	gn := NewGaussNewton(d, geo, nil)

	detJ := gn.minElemDetJ(0)
	if detJ <= 0 {
		tst.Errorf("minElemDetJ=%v want positive", detJ)
	}
}
