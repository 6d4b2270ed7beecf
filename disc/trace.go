// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/fespan"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/physics"
)

// InteriorTrace accumulates trace ti's contribution (convective + DDG
// diffusive flux, plus the optional DDGIC interface correction) into resL
// and resR, given the current element-local solution coefficients on each
// side.
func (d *Discretization) InteriorTrace(ti int, unkelL, unkelR, resL, resR []float64) {
	t := d.FES.Traces[ti]
	elL, elR := t.Face.ElemL, t.Face.ElemR
	layoutL := d.localLayout(t.RefL.NBasis())
	layoutR := d.localLayout(t.RefR.NBasis())

	centroidL := elL.PhysicalCentroid()
	centroidR := elR.PhysicalCentroid()
	order := d.FES.BasisOrder
	beta0, beta1 := ddgBetas(order, d.InteriorPenalty)

	homog, hasHomog := d.Diff.(physics.HomogeneityFlux)

	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		uR := fespan.ContractValues(e.ValsR, unkelR, layoutR)

		JinvL, _, errL := invertAt(elL, e.XiL, d.MinDetJ)
		JinvR, _, errR := invertAt(elR, e.XiR, d.MinDetJ)
		if errL != nil || errR != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: chk.Err("trace jacobian")})
			continue
		}
		gradPhysL := physicalGrad(e.GradsL, JinvL)
		gradPhysR := physicalGrad(e.GradsR, JinvR)
		graduL := fespan.ContractGrad(gradPhysL, unkelL, layoutL)
		graduR := fespan.ContractGrad(gradPhysR, unkelR, layoutR)

		var hessuL, hessuR [][][]float64
		if e.HessL != nil && e.HessR != nil {
			hessPhysL := physicalHess(e.HessL, JinvL)
			hessPhysR := physicalHess(e.HessR, JinvR)
			hessuL = fespan.ContractHess(hessPhysL, unkelL, layoutL)
			hessuR = fespan.ContractHess(hessPhysR, unkelR, layoutR)
		}

		fadvn := make([]float64, d.NComp)
		d.Conv.Eval(uL, uR, e.Normal, fadvn)

		hddg := 0.0
		for idim := range e.Normal {
			hddg += e.Normal[idim] * ((e.X[idim] - centroidL[idim]) + (centroidR[idim] - e.X[idim]))
		}
		hddg = signedFloor(hddg)

		gradDDG := ddgGradientTwoSided(uL, uR, graduL, graduR, hessuL, hessuR, e.Normal, hddg, beta0, beta1)
		avg := uAvg(uL, uR)
		fviscn := make([]float64, d.NComp)
		d.Diff.Eval(avg, gradDDG, e.Normal, fviscn)

		sw := w * e.RootDet
		for ieq := 0; ieq < d.NComp; ieq++ {
			fadvn[ieq] *= sw
			fviscn[ieq] *= sw
		}

		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resL[layoutL.Index(itest, ieq)] += (fviscn[ieq] - fadvn[ieq]) * e.ValsL[itest]
			}
		}
		for itest := 0; itest < t.RefR.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resR[layoutR.Index(itest, ieq)] -= (fviscn[ieq] - fadvn[ieq]) * e.ValsR[itest]
			}
		}

		if hasHomog && d.SigmaIC != 0 {
			G := make([][][][]float64, d.NComp)
			for i := range G {
				G[i] = make([][][]float64, d.Ndim)
				for k := range G[i] {
					G[i][k] = make([][]float64, d.NComp)
					for r := range G[i][k] {
						G[i][k][r] = make([]float64, d.Ndim)
					}
				}
			}
			homog.HomogeneityTensor(avg, G)
			jumpuR := make([]float64, d.NComp)
			for i := range jumpuR {
				jumpuR[i] = uR[i] - uL[i]
			}
			for itest := 0; itest < t.RefL.NBasis(); itest++ {
				for ieq := 0; ieq < d.NComp; ieq++ {
					v := icCorrectionScalar(ieq, G, e.Normal, jumpuR, gradPhysL[itest], 0.5) * w * e.RootDet
					resL[layoutL.Index(itest, ieq)] -= d.SigmaIC * v
				}
			}
			for itest := 0; itest < t.RefR.NBasis(); itest++ {
				for ieq := 0; ieq < d.NComp; ieq++ {
					v := icCorrectionScalar(ieq, G, e.Normal, jumpuR, gradPhysR[itest], 0.5) * w * e.RootDet
					resR[layoutR.Index(itest, ieq)] -= d.SigmaIC * v
				}
			}
		}
	}
}

// BoundaryTrace dispatches trace ti (a boundary face) to the branch named by
// its geometry.BCType, accumulating into resL.
func (d *Discretization) BoundaryTrace(ti int, unkelL, resL []float64) {
	t := d.FES.Traces[ti]
	switch t.Face.BCType {
	case geometry.DIRICHLET:
		d.boundaryDirichlet(ti, unkelL, resL)
	case geometry.NEUMANN:
		d.boundaryNeumann(ti, resL)
	case geometry.EXTRAPOLATION, geometry.SPACETIME_FUTURE:
		d.boundaryExtrapolation(ti, unkelL, resL)
	case geometry.SPACETIME_PAST:
		d.boundarySpacetimePast(ti, unkelL, resL)
	case geometry.PERIODIC, geometry.PARALLEL_COM:
		d.Anomalies.Add(Anomaly{Kind: "unsupported_bc_without_ghost_exchange", ElemID: -1, FaceID: ti,
			Err: chk.Err("bc %v needs a partner element not available to a single-rank Discretization", t.Face.BCType)})
	default:
		d.boundaryGeneral(ti, unkelL, resL)
	}
}

func (d *Discretization) boundaryDirichlet(ti int, unkelL, resL []float64) {
	t := d.FES.Traces[ti]
	elL := t.Face.ElemL
	layoutL := d.localLayout(t.RefL.NBasis())
	centroidL := elL.PhysicalCentroid()
	order := d.FES.BasisOrder
	beta0, _ := ddgBetas(order, d.InteriorPenalty)
	g := d.Dirichlet[t.Face.BCFlag]
	if g == nil {
		d.Anomalies.Add(Anomaly{Kind: "missing_dirichlet_callback", ElemID: -1, FaceID: ti, Err: chk.Err("no dirichlet callback for bcflag %d", t.Face.BCFlag)})
		return
	}
	homog, hasHomog := d.Diff.(physics.HomogeneityFlux)

	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		JinvL, _, err := invertAt(elL, e.XiL, d.MinDetJ)
		if err != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: err})
			continue
		}
		gradPhysL := physicalGrad(e.GradsL, JinvL)
		graduL := fespan.ContractGrad(gradPhysL, unkelL, layoutL)

		uR := g(e.X)

		fadvn := make([]float64, d.NComp)
		d.Conv.Eval(uL, uR, e.Normal, fadvn)

		hddg := 0.0
		for idim := range e.Normal {
			hddg += abs(e.Normal[idim] * (e.X[idim] - centroidL[idim]))
		}
		hddg = signedFloor(hddg)

		gradDDG := ddgGradientOneSided(uL, uR, graduL, e.Normal, hddg, beta0)
		avg := uAvg(uL, uR)
		fviscn := make([]float64, d.NComp)
		d.Diff.Eval(avg, gradDDG, e.Normal, fviscn)

		sw := w * e.RootDet
		for ieq := 0; ieq < d.NComp; ieq++ {
			fadvn[ieq] *= sw
			fviscn[ieq] *= sw
		}
		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resL[layoutL.Index(itest, ieq)] += (fviscn[ieq] - fadvn[ieq]) * e.ValsL[itest]
			}
		}

		if hasHomog && d.SigmaIC != 0 {
			G := allocG(d.NComp, d.Ndim)
			homog.HomogeneityTensor(avg, G)
			jumpuR := make([]float64, d.NComp)
			for i := range jumpuR {
				jumpuR[i] = uR[i] - uL[i]
			}
			for itest := 0; itest < t.RefL.NBasis(); itest++ {
				for ieq := 0; ieq < d.NComp; ieq++ {
					v := icCorrectionScalar(ieq, G, e.Normal, jumpuR, gradPhysL[itest], 1.0) * w * e.RootDet
					resL[layoutL.Index(itest, ieq)] -= d.SigmaIC * v
				}
			}
		}
	}
}

func (d *Discretization) boundaryNeumann(ti int, resL []float64) {
	t := d.FES.Traces[ti]
	layoutL := d.localLayout(t.RefL.NBasis())
	g := d.Neumann[t.Face.BCFlag]
	if g == nil {
		d.Anomalies.Add(Anomaly{Kind: "missing_neumann_callback", ElemID: -1, FaceID: ti, Err: chk.Err("no neumann callback for bcflag %d", t.Face.BCFlag)})
		return
	}
	nflux, ok := d.Diff.(physics.NeumannDiffusionFlux)
	if !ok {
		d.Anomalies.Add(Anomaly{Kind: "diffusion_flux_lacks_neumann", ElemID: -1, FaceID: ti, Err: chk.Err("diffusion flux does not implement NeumannFlux")})
		return
	}
	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]
		gradN := g(e.X)
		fviscn := make([]float64, d.NComp)
		nflux.NeumannFlux(gradN, fviscn)
		sw := w * e.RootDet
		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resL[layoutL.Index(itest, ieq)] += fviscn[ieq] * sw * e.ValsL[itest]
			}
		}
	}
}

func (d *Discretization) boundaryExtrapolation(ti int, unkelL, resL []float64) {
	t := d.FES.Traces[ti]
	elL := t.Face.ElemL
	layoutL := d.localLayout(t.RefL.NBasis())
	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		JinvL, _, err := invertAt(elL, e.XiL, d.MinDetJ)
		if err != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: err})
			continue
		}
		gradPhysL := physicalGrad(e.GradsL, JinvL)
		graduL := fespan.ContractGrad(gradPhysL, unkelL, layoutL)

		fadvn := make([]float64, d.NComp)
		d.Conv.Eval(uL, uL, e.Normal, fadvn)
		fviscn := make([]float64, d.NComp)
		d.Diff.Eval(uL, graduL, e.Normal, fviscn)

		sw := w * e.RootDet
		for ieq := 0; ieq < d.NComp; ieq++ {
			fadvn[ieq] *= sw
			fviscn[ieq] *= sw
		}
		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resL[layoutL.Index(itest, ieq)] += (fviscn[ieq] - fadvn[ieq]) * e.ValsL[itest]
			}
		}
	}
}

func (d *Discretization) boundaryGeneral(ti int, unkelL, resL []float64) {
	t := d.FES.Traces[ti]
	elL := t.Face.ElemL
	layoutL := d.localLayout(t.RefL.NBasis())
	centroidL := elL.PhysicalCentroid()
	order := d.FES.BasisOrder
	beta0, _ := ddgBetas(order, d.InteriorPenalty)

	bcflux, ok := d.Phys.(physics.BCPhysicalFlux)
	if !ok {
		d.Anomalies.Add(Anomaly{Kind: "unimplemented_bc", ElemID: -1, FaceID: ti,
			Err: chk.Err("bc %v has no general-BC handler and the physical flux does not implement ApplyBC", t.Face.BCType)})
		return
	}
	homog, hasHomog := d.Diff.(physics.HomogeneityFlux)

	for iqp := range t.Quad.Pts {
		e := d.FES.EvalTrace(t, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		JinvL, _, err := invertAt(elL, e.XiL, d.MinDetJ)
		if err != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: err})
			continue
		}
		gradPhysL := physicalGrad(e.GradsL, JinvL)
		graduL := fespan.ContractGrad(gradPhysL, unkelL, layoutL)

		uR, graduR := bcflux.ApplyBC(uL, graduL, e.Normal, t.Face.BCType, t.Face.BCFlag)

		hddg := 0.0
		for idim := range e.Normal {
			hddg += abs(e.Normal[idim] * (e.X[idim] - centroidL[idim]))
		}
		hddg = signedFloor(hddg)

		gradDDG := ddgGradientOneSided(uL, uR, graduL, e.Normal, hddg, beta0)
		_ = graduR // graduR is returned by the PDE's own BC closure but the
		// boundary branch's DDG formula uses graduL only, mirroring the
		// teacher's general-BC branch exactly.

		fadvn := make([]float64, d.NComp)
		d.Conv.Eval(uL, uR, e.Normal, fadvn)
		avg := uAvg(uL, uR)
		fviscn := make([]float64, d.NComp)
		d.Diff.Eval(avg, gradDDG, e.Normal, fviscn)

		sw := w * e.RootDet
		for ieq := 0; ieq < d.NComp; ieq++ {
			fadvn[ieq] *= sw
			fviscn[ieq] *= sw
		}
		for itest := 0; itest < t.RefL.NBasis(); itest++ {
			for ieq := 0; ieq < d.NComp; ieq++ {
				resL[layoutL.Index(itest, ieq)] += (fviscn[ieq] - fadvn[ieq]) * e.ValsL[itest]
			}
		}

		if hasHomog && d.SigmaIC != 0 {
			G := allocG(d.NComp, d.Ndim)
			homog.HomogeneityTensor(avg, G)
			jumpuR := make([]float64, d.NComp)
			for i := range jumpuR {
				jumpuR[i] = uR[i] - uL[i]
			}
			for itest := 0; itest < t.RefL.NBasis(); itest++ {
				for ieq := 0; ieq < d.NComp; ieq++ {
					v := icCorrectionScalar(ieq, G, e.Normal, jumpuR, gradPhysL[itest], 1.0) * w * e.RootDet
					resL[layoutL.Index(itest, ieq)] -= d.SigmaIC * v
				}
			}
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func allocG(neq, ndim int) [][][][]float64 {
	G := make([][][][]float64, neq)
	for i := range G {
		G[i] = make([][][]float64, ndim)
		for k := range G[i] {
			G[i][k] = make([][]float64, neq)
			for r := range G[i][k] {
				G[i][k][r] = make([]float64, ndim)
			}
		}
	}
	return G
}
