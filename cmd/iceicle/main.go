// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command iceicle drives a structured-grid scalar advection-diffusion
// problem through discretization, MDG-ICE geometry selection, and the
// regularized Gauss-Newton solve, the way gofem's own main.go drives one
// .sim file through fem.NewFEM/Run. Mesh-file parsing is out of scope
// (spec.md §1's "mesh I/O" external collaborator), so the grid here is
// built in-process from command-line dimensions instead of read from disk.
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/gabsillis/ICEicle/config"
	"github.com/gabsillis/ICEicle/disc"
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/geosel"
	"github.com/gabsillis/ICEicle/mesh"
	"github.com/gabsillis/ICEicle/physics"
	"github.com/gabsillis/ICEicle/solver"
)

// main mirrors gofem's own main.go: mpi.Start/mpi.Stop bracket the run and
// the top-level recover only prints on rank 0, even though this driver
// itself runs the grid build and Gauss-Newton solve single-rank (no mesh
// partitioning is implemented, see DESIGN.md).
func main() {

	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("\nERROR: %v\n", err)
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	cfgPath := io.ArgToString(0, "")
	ncols := io.ArgToInt(1, 4)
	nrows := io.ArgToInt(2, 4)
	order := io.ArgToInt(3, 1)
	diffusivity := io.ArgToFloat(4, 0.1)
	verbose := io.ArgToBool(5, true)
	restartPath := io.ArgToString(6, "")
	restartEvery := io.ArgToInt(7, 0)

	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nICEicle -- discontinuous Galerkin / MDG-ICE driver\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"config file path (empty: use defaults)", "cfgPath", cfgPath,
			"grid columns", "ncols", ncols,
			"grid rows", "nrows", nrows,
			"solution basis order", "order", order,
			"isotropic diffusivity", "diffusivity", diffusivity,
			"show messages", "verbose", verbose,
			"restart file path (empty: disabled)", "restartPath", restartPath,
			"restart checkpoint interval (iterations)", "restartEvery", restartEvery,
		))
	}

	cfg := config.NewDefault()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			chk.Panic("%v", err)
		}
	}

	m := buildGridMesh(ncols, nrows)
	fs := fespace.NewFESpace(m, order, 1, true)

	model := &physics.ScalarAdvectionDiffusion{Ndim: 2, A: []float64{1, 0.5}, K: diffusivity}
	d := disc.NewDiscretization(fs, model, &physics.Convective{Model: model}, &physics.Diffusion{Model: model})
	d.InteriorPenalty = cfg.Disc.InteriorPenalty
	d.SigmaIC = cfg.Disc.SigmaIC

	U := make([]float64, fs.DG.NDof())

	selected := geosel.SelectFaces(d, U, cfg.Disc.ICSelectionThreshold)
	if mpi.Rank() == 0 && verbose {
		io.Pfyel("selected %d of %d interior traces for geometry freedom\n", len(selected), len(fs.Traces))
	}

	geo := geosel.NewGeoDofMap(nil, nil)
	gn := solver.NewGaussNewton(d, geo, selected)
	gn.LambdaU = cfg.Solver.Reg.LambdaU
	gn.LambdaLag = cfg.Solver.Reg.LambdaLag
	gn.Lambda1 = cfg.Solver.Reg.Lambda1
	gn.LambdaB = cfg.Solver.Reg.LambdaB
	gn.JMin = cfg.Solver.Reg.JMin
	gn.Conv = solver.ConvergenceCriteria{AbsTol: cfg.Solver.TauAbs, RelTol: cfg.Solver.TauRel, MaxIt: cfg.Solver.KMax}
	gn.LSParams = solver.LineSearchParams{
		KMax:     cfg.Solver.LineSearch.KMax,
		AlphaMin: cfg.Solver.LineSearch.AlphaMin,
		C1:       cfg.Solver.LineSearch.C1,
	}
	if cfg.Solver.LineSearch.Type == config.LineSearchCorrigan {
		gn.LineSearch = solver.Backtracking
	}
	gn.RestartPath = restartPath
	gn.RestartEvery = restartEvery

	// gn.Solve only returns a non-nil err on the fatal non-finite-residual
	// case (spec.md §7); a singular normal-equation system or exhausting
	// MaxIt instead returns the best iterate with a disc.Anomaly logged
	// below, so this panic is reserved for the genuinely fatal path.
	Uf, _, iters, err := gn.Solve(U, nil)
	if err != nil {
		chk.Panic("solve failed: %v", err)
	}

	if mpi.Rank() == 0 && verbose {
		io.Pfgreen("finished after %d iterations\n", iters)
		io.Pf("ndof=%d\n", len(Uf))
	}

	if mpi.Rank() == 0 && !d.Anomalies.Empty() {
		for _, a := range d.Anomalies.Drain() {
			io.PfRed("anomaly: %s elem=%d face=%d: %v\n", a.Kind, a.ElemID, a.FaceID, a.Err)
		}
	}
}

// buildGridMesh assembles a structured ncols x nrows unit-square quad grid,
// the same fixture convention disc_test.go/geosel_test.go's buildGridMesh
// uses, with every boundary face left at its default (extrapolation) tag.
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
