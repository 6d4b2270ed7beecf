// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/fespan"
)

// DisableLinearDiffusionIC gates the "HACK: disable diffusion IC for p=1"
// note: when true and both sides of a trace use basis order 1, the gradient
// contribution to F(u,∇u) is zeroed before computing InterfaceConservation.
// The rationale (stabilization vs. consistency fix) is not documented
// upstream; this flag exists so the behavior stays visible and named rather
// than silently baked into the flux evaluation.
const DisableLinearDiffusionIC = true

// InterfaceConservationResidual computes, for interior trace ti,
//
//	r_IC(Γ) = int_Γ (F(uR,∇uR)·n − F(uL,∇uL)·n) φ^trace dS
//
// scattered into the trace's left-side basis, sized RefL.NBasis()*NComp in
// the same LayoutRight convention as every other per-trace buffer in this
// package. On a boundary trace (no right state to compare against) it logs
// an anomaly and returns a zero vector.
func (d *Discretization) InterfaceConservationResidual(ti int, unkelL, unkelR []float64) []float64 {
	t := d.FES.Traces[ti]
	layoutL := d.localLayout(t.RefL.NBasis())
	res := make([]float64, t.RefL.NBasis()*d.NComp)

	if t.IsBoundary() {
		d.Anomalies.Add(Anomaly{Kind: "interface_residual_on_boundary_trace", ElemID: -1, FaceID: ti,
			Err: chk.Err("InterfaceConservationResidual requires an interior trace")})
		return res
	}

	elL, elR := t.Face.ElemL, t.Face.ElemR
	layoutR := d.localLayout(t.RefR.NBasis())
	suppressGrad := DisableLinearDiffusionIC && d.FES.BasisOrder == 1

	fL := make([][]float64, d.NComp)
	fR := make([][]float64, d.NComp)
	for i := range fL {
		fL[i] = make([]float64, d.Ndim)
		fR[i] = make([]float64, d.Ndim)
	}

	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		uR := fespan.ContractValues(e.ValsR, unkelR, layoutR)

		JinvL, _, errL := invertAt(elL, e.XiL, d.MinDetJ)
		JinvR, _, errR := invertAt(elR, e.XiR, d.MinDetJ)
		if errL != nil || errR != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: chk.Err("interface residual jacobian")})
			continue
		}

		var graduL, graduR [][]float64
		if suppressGrad {
			graduL = make([][]float64, d.NComp)
			graduR = make([][]float64, d.NComp)
			for i := range graduL {
				graduL[i] = make([]float64, d.Ndim)
				graduR[i] = make([]float64, d.Ndim)
			}
		} else {
			gradPhysL := physicalGrad(e.GradsL, JinvL)
			gradPhysR := physicalGrad(e.GradsR, JinvR)
			graduL = fespan.ContractGrad(gradPhysL, unkelL, layoutL)
			graduR = fespan.ContractGrad(gradPhysR, unkelR, layoutR)
		}

		for i := range fL {
			for j := range fL[i] {
				fL[i][j] = 0
				fR[i][j] = 0
			}
		}
		d.Phys.Eval(uL, graduL, fL)
		d.Phys.Eval(uR, graduR, fR)

		sw := w * e.RootDet
		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				jump := 0.0
				for jdim := 0; jdim < d.Ndim; jdim++ {
					jump += (fR[ieq][jdim] - fL[ieq][jdim]) * e.Normal[jdim]
				}
				res[layoutL.Index(itest, ieq)] += jump * e.ValsL[itest] * sw
			}
		}
	}
	return res
}
