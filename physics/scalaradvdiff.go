// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// ScalarAdvectionDiffusion implements a single scalar conservation law
//
//   ∂u/∂t + ∇·(a u − k ∇u) = s
//
// with a constant advection velocity a (connected component-wise, mirroring
// mdl/diffusion.M1's a0..a3 connection idiom) and an isotropic diffusivity
// k. It is a PhysicalFlux and a CFLPhysicalFlux directly; its convective
// and diffusive numerical fluxes are separate small types (Convective,
// Diffusion below) since Go forbids one type from exposing two same-named
// Eval methods of different signature, so each contract gets its own
// lightweight wrapper sharing this model's state.
type ScalarAdvectionDiffusion struct {
	Ndim int
	A    []float64 // advection velocity, len==ndim
	K    float64   // isotropic diffusivity
}

func init() {
	allocators["scalar_adv_diff"] = func() Model { return new(ScalarAdvectionDiffusion) }
}

// Init connects a0..a(ndim-1) and k from the material parameter database.
func (o *ScalarAdvectionDiffusion) Init(ndim int, prms fun.Prms) (err error) {
	o.Ndim = ndim
	o.A = make([]float64, ndim)
	names := []string{"a0", "a1", "a2", "a3"}
	for d := 0; d < ndim && d < len(names); d++ {
		prms.Connect(&o.A[d], names[d], "advection velocity component "+names[d])
	}
	prms.Connect(&o.K, "k", "isotropic diffusivity")
	return
}

// NumVars is 1: this is a scalar conservation law.
func (o *ScalarAdvectionDiffusion) NumVars() int { return 1 }

// NumDim returns the configured spatial dimension.
func (o *ScalarAdvectionDiffusion) NumDim() int { return o.Ndim }

// Eval fills fOut[0][d] = a[d]*u[0] - k*gradU[0][d].
func (o *ScalarAdvectionDiffusion) Eval(u []float64, gradU [][]float64, fOut [][]float64) {
	for d := 0; d < o.Ndim; d++ {
		fOut[0][d] = o.A[d]*u[0] - o.K*gradU[0][d]
	}
}

// DtFromCFL bounds a stable explicit time step from the advection speed.
func (o *ScalarAdvectionDiffusion) DtFromCFL(cfl, h float64) float64 {
	speed := 0.0
	for _, a := range o.A {
		speed += a * a
	}
	speed = math.Sqrt(speed)
	if speed < 1e-300 {
		return math.Inf(1)
	}
	return cfl * h / speed
}

// Convective implements ConvectiveNumericalFlux as upwinding on sign(a·n).
type Convective struct{ Model *ScalarAdvectionDiffusion }

// Eval fills out[0] = (a·n) * (upwind of uL,uR).
func (c *Convective) Eval(uL, uR, n []float64, out []float64) {
	an := 0.0
	for d := 0; d < c.Model.Ndim; d++ {
		an += c.Model.A[d] * n[d]
	}
	if an >= 0 {
		out[0] = an * uL[0]
	} else {
		out[0] = an * uR[0]
	}
}

// Diffusion implements DiffusionFlux and HomogeneityFlux for the model's
// isotropic diffusivity.
type Diffusion struct{ Model *ScalarAdvectionDiffusion }

// Eval fills out[0] = -k * (∇u·n).
func (d *Diffusion) Eval(uAvg []float64, gradUGamma [][]float64, n []float64, out []float64) {
	v := 0.0
	for i := 0; i < d.Model.Ndim; i++ {
		v += gradUGamma[0][i] * n[i]
	}
	out[0] = -d.Model.K * v
}

// NeumannFlux fills out[0] = -k * gradN[0], the diffusive normal flux for a
// user-specified normal gradient gradN (spec.md §4's Neumann BC).
func (d *Diffusion) NeumannFlux(gradN []float64, out []float64) {
	out[0] = -d.Model.K * gradN[0]
}

// HomogeneityTensor fills G[0][k][0][s] = k * delta(k,s).
func (d *Diffusion) HomogeneityTensor(u []float64, g [][][][]float64) {
	for k := 0; k < d.Model.Ndim; k++ {
		for s := 0; s < d.Model.Ndim; s++ {
			v := 0.0
			if k == s {
				v = d.Model.K
			}
			g[0][k][0][s] = v
		}
	}
}
