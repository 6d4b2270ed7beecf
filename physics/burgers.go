// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// Burgers implements the scalar (viscous) Burgers conservation law
//
//   ∂u/∂t + ∇·(½u² e − ν ∇u) = s
//
// with the flux pointed along a fixed unit direction e (so a 1D Burgers
// equation generalizes to higher ndim by advecting along one axis), and an
// optional viscosity ν. Grounded on the scalar Burgers flux/Lax-Friedrichs
// numerical flux shape used throughout the pack's DG solver examples.
type Burgers struct {
	Ndim int
	Dir  []float64 // unit advection direction, len==ndim
	Nu   float64   // viscosity
}

func init() {
	allocators["burgers"] = func() Model { return new(Burgers) }
}

// Init connects nu; the advection direction defaults to axis 0 unless dir0..dir3 are given.
func (o *Burgers) Init(ndim int, prms fun.Prms) (err error) {
	o.Ndim = ndim
	o.Dir = make([]float64, ndim)
	o.Dir[0] = 1
	names := []string{"dir0", "dir1", "dir2", "dir3"}
	for d := 0; d < ndim && d < len(names); d++ {
		prms.Connect(&o.Dir[d], names[d], "burgers advection direction component "+names[d])
	}
	prms.Connect(&o.Nu, "nu", "burgers viscosity")
	return
}

// NumVars is 1: scalar Burgers.
func (o *Burgers) NumVars() int { return 1 }

// NumDim returns the configured spatial dimension.
func (o *Burgers) NumDim() int { return o.Ndim }

// Eval fills fOut[0][d] = 0.5*u[0]^2*dir[d] - nu*gradU[0][d].
func (o *Burgers) Eval(u []float64, gradU [][]float64, fOut [][]float64) {
	half := 0.5 * u[0] * u[0]
	for d := 0; d < o.Ndim; d++ {
		fOut[0][d] = half*o.Dir[d] - o.Nu*gradU[0][d]
	}
}

// maxSpeed returns the local characteristic speed |u*dir·dir| = |u| (dir is
// a unit vector), used by the Lax-Friedrichs flux below.
func (o *Burgers) maxSpeed(uL, uR float64) float64 {
	a := math.Abs(uL)
	b := math.Abs(uR)
	if b > a {
		return b
	}
	return a
}

// BurgersConvective implements ConvectiveNumericalFlux as Lax-Friedrichs.
type BurgersConvective struct{ Model *Burgers }

// Eval fills out[0] = 0.5*(F(uL)·n + F(uR)·n) - 0.5*alpha*(uR-uL), with
// alpha the local maximum wave speed.
func (c *BurgersConvective) Eval(uL, uR, n []float64, out []float64) {
	m := c.Model
	dotn := 0.0
	for d := 0; d < m.Ndim; d++ {
		dotn += m.Dir[d] * n[d]
	}
	fL := 0.5 * uL[0] * uL[0] * dotn
	fR := 0.5 * uR[0] * uR[0] * dotn
	alpha := m.maxSpeed(uL[0], uR[0]) * math.Abs(dotn)
	out[0] = 0.5*(fL+fR) - 0.5*alpha*(uR[0]-uL[0])
}

// BurgersDiffusion implements DiffusionFlux for Burgers' optional viscosity.
type BurgersDiffusion struct{ Model *Burgers }

// Eval fills out[0] = -nu * (∇u·n).
func (d *BurgersDiffusion) Eval(uAvg []float64, gradUGamma [][]float64, n []float64, out []float64) {
	v := 0.0
	for i := 0; i < d.Model.Ndim; i++ {
		v += gradUGamma[0][i] * n[i]
	}
	out[0] = -d.Model.Nu * v
}
