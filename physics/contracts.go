// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics defines the pluggable flux contracts the discretization
// evaluates at quadrature points, plus a small factory of concrete fixture
// models registered the way mdl/diffusion/model.go registers its models.
package physics

import "github.com/gabsillis/ICEicle/geometry"

// PhysicalFlux evaluates the conservation law's flux F(u,∇u) and, for
// physics with characteristic boundary behavior, its own BC closure.
type PhysicalFlux interface {
	NumVars() int
	NumDim() int
	Eval(u []float64, gradU [][]float64, fOut [][]float64)
}

// BCPhysicalFlux is implemented by physics that can synthesize a ghost
// state for a general boundary condition (spec.md's "General BC" branch).
type BCPhysicalFlux interface {
	ApplyBC(uL []float64, gradUL [][]float64, n []float64, bctype geometry.BCType, bcflag int) (uR []float64, gradUR [][]float64)
}

// CFLPhysicalFlux is implemented by physics that can bound a stable time
// step from a CFL number and a cell length scale.
type CFLPhysicalFlux interface {
	DtFromCFL(cfl, h float64) float64
}

// ConvectiveNumericalFlux evaluates a trace's numerical advective flux
// H(uL,uR,n)·n (Riemann solver or upwind rule).
type ConvectiveNumericalFlux interface {
	Eval(uL, uR, n []float64, out []float64)
}

// DiffusionFlux evaluates a trace's viscous/diffusive normal flux from the
// averaged state and the DDG single-valued gradient.
type DiffusionFlux interface {
	Eval(uAvg []float64, gradUGamma [][]float64, n []float64, out []float64)
}

// NeumannDiffusionFlux is implemented by diffusion fluxes that support a
// user-specified normal-gradient (Neumann) boundary flux.
type NeumannDiffusionFlux interface {
	NeumannFlux(gradN []float64, out []float64)
}

// HomogeneityFlux is implemented by diffusion fluxes that can supply the
// homogeneity tensor G[ieq][k][req][s] enabling the DDGIC interface
// correction term; its absence is detected by a type assertion and the
// correction term is simply skipped (spec.md §9's "homogeneity tensor
// optionality").
type HomogeneityFlux interface {
	HomogeneityTensor(u []float64, g [][][][]float64)
}
