// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/gabsillis/ICEicle/fespan"
	"github.com/gabsillis/ICEicle/fespace"
)

// elementFDEps picks one finite-difference step for every column of element
// e's Jacobian, scaled by the element's own flux magnitude at its centroid so
// a solution with large F(u,gradu) does not lose precision to a step sized
// for an O(1) state:
//
//	eps = max(sqrt(machEps), sqrt(machEps)*||F(u_c,gradu_c)||_F)
func (d *Discretization) elementFDEps(e int, unkel []float64) float64 {
	ref := d.FES.Refs[e]
	el := d.FES.Mesh.Elements[e]
	layout := d.localLayout(ref.NBasis())

	xi := el.Centroid()
	vals := make([]float64, ref.NBasis())
	ref.Basis.FillShp(xi, vals)
	gradsXi := make([][]float64, ref.NBasis())
	for i := range gradsXi {
		gradsXi[i] = make([]float64, d.Ndim)
	}
	ref.Basis.FillDeriv(xi, gradsXi)

	sq := math.Sqrt(machEps)
	Jinv, _, err := fespace.InvertJacobian(el.Jacobian(xi), d.MinDetJ)
	if err != nil {
		return sq
	}
	gradPhys := fespace.PhysicalGrad(gradsXi, Jinv)

	u := fespan.ContractValues(vals, unkel, layout)
	gradU := fespan.ContractGrad(gradPhys, unkel, layout)

	fOut := make([][]float64, d.NComp)
	for i := range fOut {
		fOut[i] = make([]float64, d.Ndim)
	}
	d.Phys.Eval(u, gradU, fOut)

	normF := 0.0
	for i := range fOut {
		for j := range fOut[i] {
			normF += fOut[i][j] * fOut[i][j]
		}
	}
	normF = math.Sqrt(normF)

	return math.Max(sq, sq*normF)
}

// DomainJacobian adds element e's finite-difference domain-integral Jacobian
// block dRes_e/dUnkel_e into dRdu, given the element's current residual
// res0 (computed by a prior Domain call) and its dof map gdofs.
func (d *Discretization) DomainJacobian(e int, unkel, res0 []float64, gdofs []int, dRdu *la.Triplet) {
	n := len(unkel)
	eps := d.elementFDEps(e, unkel)

	perturbed := make([]float64, n)
	resP := make([]float64, n)
	copy(perturbed, unkel)

	for j := 0; j < n; j++ {
		saved := perturbed[j]
		perturbed[j] = saved + eps
		for k := range resP {
			resP[k] = 0
		}
		d.Domain(e, perturbed, resP)
		perturbed[j] = saved

		for i := 0; i < n; i++ {
			dRdu.Put(gdofs[i], gdofs[j], (resP[i]-res0[i])/eps)
		}
	}
}

// interiorTraceJacobian adds trace ti's four finite-difference blocks
// (dResL/dUnkelL, dResL/dUnkelR, dResR/dUnkelL, dResR/dUnkelR) into dRdu.
func (d *Discretization) interiorTraceJacobian(ti int, unkelL, unkelR, resL0, resR0 []float64, gdofsL, gdofsR []int, dRdu *la.Triplet) {
	nL, nR := len(unkelL), len(unkelR)
	epsL := d.elementFDEps(d.indexOf(d.FES.Traces[ti].Face.ElemL), unkelL)
	epsR := d.elementFDEps(d.indexOf(d.FES.Traces[ti].Face.ElemR), unkelR)

	pL := append([]float64(nil), unkelL...)
	pR := append([]float64(nil), unkelR...)
	rL := make([]float64, nL)
	rR := make([]float64, nR)

	for j := 0; j < nL; j++ {
		saved := pL[j]
		pL[j] = saved + epsL
		for k := range rL {
			rL[k] = 0
		}
		for k := range rR {
			rR[k] = 0
		}
		d.InteriorTrace(ti, pL, unkelR, rL, rR)
		pL[j] = saved
		for i := 0; i < nL; i++ {
			dRdu.Put(gdofsL[i], gdofsL[j], (rL[i]-resL0[i])/epsL)
		}
		for i := 0; i < nR; i++ {
			dRdu.Put(gdofsR[i], gdofsL[j], (rR[i]-resR0[i])/epsL)
		}
	}

	for j := 0; j < nR; j++ {
		saved := pR[j]
		pR[j] = saved + epsR
		for k := range rL {
			rL[k] = 0
		}
		for k := range rR {
			rR[k] = 0
		}
		d.InteriorTrace(ti, unkelL, pR, rL, rR)
		pR[j] = saved
		for i := 0; i < nL; i++ {
			dRdu.Put(gdofsL[i], gdofsR[j], (rL[i]-resL0[i])/epsR)
		}
		for i := 0; i < nR; i++ {
			dRdu.Put(gdofsR[i], gdofsR[j], (rR[i]-resR0[i])/epsR)
		}
	}
}

// boundaryTraceJacobian adds trace ti's dResL/dUnkelL block into dRdu.
func (d *Discretization) boundaryTraceJacobian(ti int, unkelL, resL0 []float64, gdofsL []int, dRdu *la.Triplet) {
	nL := len(unkelL)
	epsL := d.elementFDEps(d.indexOf(d.FES.Traces[ti].Face.ElemL), unkelL)

	pL := append([]float64(nil), unkelL...)
	rL := make([]float64, nL)

	for j := 0; j < nL; j++ {
		saved := pL[j]
		pL[j] = saved + epsL
		for k := range rL {
			rL[k] = 0
		}
		d.BoundaryTrace(ti, pL, rL)
		pL[j] = saved
		for i := 0; i < nL; i++ {
			dRdu.Put(gdofsL[i], gdofsL[j], (rL[i]-resL0[i])/epsL)
		}
	}
}
