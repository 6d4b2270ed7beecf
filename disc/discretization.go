// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"math"

	"github.com/gabsillis/ICEicle/fespan"
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/physics"
)

// BCFunc evaluates a Dirichlet/Neumann boundary value at a physical point,
// mirroring the teacher's per-bcflag function-callback convention
// (dirichlet_callbacks/neumann_callbacks in conservation_law.hpp, realized
// in Go without std::function as a plain func value).
type BCFunc func(x []float64) []float64

// Discretization assembles the DDG/DDGIC residual (and, via Jacobian, its
// finite-difference linearization) over one fespace.FESpace for one
// physics.PhysicalFlux/ConvectiveNumericalFlux/DiffusionFlux triple.
// HomogeneityFlux and BCPhysicalFlux are detected with a type assertion on
// Diff/Phys respectively, per spec.md's "homogeneity tensor optionality".
type Discretization struct {
	FES  *fespace.FESpace
	Phys physics.PhysicalFlux
	Conv physics.ConvectiveNumericalFlux
	Diff physics.DiffusionFlux

	NComp int
	Ndim  int

	InteriorPenalty bool
	SigmaIC         float64

	// MinDetJ is the clamp/anomaly threshold for a degenerate element
	// Jacobian determinant (spec.md §7's geometry-error class).
	MinDetJ float64

	Dirichlet map[int]BCFunc
	Neumann   map[int]BCFunc
	Source    BCFunc

	Spacetime *SpacetimePastConnection

	Anomalies *AnomalyLog

	elemIndex map[*geometry.Element]int
}

// NewDiscretization builds a Discretization over fs for the given physics
// triple. sigmaIC==0 is standard DDG; sigmaIC==1 is DDGIC (Danis & Yan 2023).
func NewDiscretization(fs *fespace.FESpace, phys physics.PhysicalFlux, conv physics.ConvectiveNumericalFlux, diff physics.DiffusionFlux) *Discretization {
	return &Discretization{
		FES:       fs,
		Phys:      phys,
		Conv:      conv,
		Diff:      diff,
		NComp:     phys.NumVars(),
		Ndim:      phys.NumDim(),
		MinDetJ:   1e-10,
		Dirichlet: map[int]BCFunc{},
		Neumann:   map[int]BCFunc{},
		Anomalies: NewAnomalyLog(),
	}
}

func (d *Discretization) localLayout(nbasis int) *fespan.Layout {
	return fespan.NewLayout(nbasis, d.NComp, fespan.LayoutRight)
}

// elemOrder returns the polynomial order of element e's solution basis.
func (d *Discretization) elemOrder(e int) int {
	return d.FES.BasisOrder
}

// indexOf returns el's position in d.FES.Mesh.Elements, building the lookup
// on first use. Traces only carry *geometry.Element pointers (Face.ElemL/R),
// not element indices, so Assemble needs this to find each side's dofs.
func (d *Discretization) indexOf(el *geometry.Element) int {
	if d.elemIndex == nil {
		d.elemIndex = make(map[*geometry.Element]int, len(d.FES.Mesh.Elements))
		for i, e := range d.FES.Mesh.Elements {
			d.elemIndex[e] = i
		}
	}
	return d.elemIndex[el]
}

// Domain computes element e's domain-integral residual contribution
//
//	r_i,eq = int_e F(u,gradu):grad(phi_i) detJ dxi  -  int_e s . phi_i detJ dxi
//
// into res (sized nbasis*NComp, LayoutRight), given unkel (same layout/size)
// holding element e's current solution coefficients.
func (d *Discretization) Domain(e int, unkel, res []float64) {
	ref := d.FES.Refs[e]
	el := d.FES.Mesh.Elements[e]
	layout := d.localLayout(ref.NBasis())

	fOut := make([][]float64, d.NComp)
	for i := range fOut {
		fOut[i] = make([]float64, d.Ndim)
	}

	for iqp, qp := range ref.Evals {
		xi := ref.Quad.Pts[iqp]
		w := ref.Quad.Wts[iqp]

		J := el.Jacobian(xi)
		Jinv, det, err := fespace.InvertJacobian(J, d.MinDetJ)
		if err != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: e, FaceID: -1, Err: err})
			continue
		}
		// prevent duplicate contribution of overlapping range in concave elements
		detJ := math.Max(0, det)

		gradPhys := fespace.PhysicalGrad(qp.Grads, Jinv)

		u := fespan.ContractValues(qp.Values, unkel, layout)
		gradU := fespan.ContractGrad(gradPhys, unkel, layout)

		for i := range fOut {
			for j := range fOut[i] {
				fOut[i][j] = 0
			}
		}
		d.Phys.Eval(u, gradU, fOut)

		for itest := 0; itest < ref.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				acc := 0.0
				for jdim := 0; jdim < d.Ndim; jdim++ {
					acc += fOut[ieq][jdim] * gradPhys[itest][jdim]
				}
				res[layout.Index(itest, ieq)] += acc * detJ * w
			}
		}

		if d.Source != nil {
			x := el.Transform(xi)
			s := d.Source(x)
			for itest := 0; itest < ref.NBasis(); itest++ {
				for ieq := 0; ieq < d.NComp; ieq++ {
					res[layout.Index(itest, ieq)] -= s[ieq] * qp.Values[itest] * detJ * w
				}
			}
		}
	}
}
