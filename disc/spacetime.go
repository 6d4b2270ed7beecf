// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/fespan"
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
)

// SpacetimePastConnection binds the current time slab's SPACETIME_PAST
// boundary traces to the matching SPACETIME_FUTURE boundary traces of the
// previous slab's FESpace, so boundarySpacetimePast can read the adjoining
// slab's converged solution the way conservation_law.hpp's
// spacetime_info.connection_traces[trace.facidx] does.
type SpacetimePastConnection struct {
	PastFES *fespace.FESpace
	PastU   []float64 // flat solution vector over PastFES.GlobalLayout()

	traceOfCurr map[int]spConnEntry
}

type spConnEntry struct {
	pastTraceIdx int
	pastElemIdx  int
}

// faceRefCentroid returns the center of a trace's own face-reference
// domain ([-1,1]^ndimFace for hypercube faces), used as a cheap
// representative point for matching two traces' physical locations.
func faceRefCentroid(ndimFace int) []float64 {
	return make([]float64, ndimFace)
}

// BuildSpacetimePastConnection matches every SPACETIME_PAST trace of curr to
// the SPACETIME_FUTURE trace of past whose face centroid agrees in every
// coordinate except timeAxis, to tolerance tol. This mirrors
// mesh.ComputeSpacetimeNodeConnectivity's coordinate-matching rule but
// operates at trace (not node) granularity, since the discretization needs
// a whole matching element to gather a solution from, not just a node.
func BuildSpacetimePastConnection(curr, past *fespace.FESpace, pastU []float64, timeAxis int, tol float64) *SpacetimePastConnection {
	sp := &SpacetimePastConnection{PastFES: past, PastU: pastU, traceOfCurr: map[int]spConnEntry{}}

	pastElemIndex := make(map[*geometry.Element]int, len(past.Mesh.Elements))
	for i, el := range past.Mesh.Elements {
		pastElemIndex[el] = i
	}

	type pastEntry struct {
		idx int
		x   []float64
	}
	var pastFuture []pastEntry
	for i, t := range past.Traces {
		if t.Face.BCType == geometry.SPACETIME_FUTURE {
			x := t.Face.Transform(faceRefCentroid(t.Face.NdimFace()))
			pastFuture = append(pastFuture, pastEntry{i, x})
		}
	}

	for i, t := range curr.Traces {
		if t.Face.BCType != geometry.SPACETIME_PAST {
			continue
		}
		x := t.Face.Transform(faceRefCentroid(t.Face.NdimFace()))
		for _, pe := range pastFuture {
			if spaceMatch(x, pe.x, timeAxis, tol) {
				pastTrace := past.Traces[pe.idx]
				sp.traceOfCurr[i] = spConnEntry{
					pastTraceIdx: pe.idx,
					pastElemIdx:  pastElemIndex[pastTrace.Face.ElemL],
				}
				break
			}
		}
	}
	return sp
}

func spaceMatch(a, b []float64, timeAxis int, tol float64) bool {
	for d := range a {
		if d == timeAxis {
			continue
		}
		if math.Abs(a[d]-b[d]) > tol {
			return false
		}
	}
	return true
}

func (d *Discretization) boundarySpacetimePast(ti int, unkelL, resL []float64) {
	t := d.FES.Traces[ti]
	if d.Spacetime == nil {
		d.Anomalies.Add(Anomaly{Kind: "missing_spacetime_connection", ElemID: -1, FaceID: ti, Err: chk.Err("SPACETIME_PAST trace with no SpacetimePastConnection configured")})
		return
	}
	entry, ok := d.Spacetime.traceOfCurr[ti]
	if !ok {
		d.Anomalies.Add(Anomaly{Kind: "unmatched_spacetime_trace", ElemID: -1, FaceID: ti, Err: chk.Err("no matching past-slab trace found")})
		return
	}
	past := d.Spacetime.PastFES
	tPast := past.Traces[entry.pastTraceIdx]

	elL := t.Face.ElemL
	elR := tPast.Face.ElemL
	layoutL := d.localLayout(t.RefL.NBasis())
	refR := past.RefByElement(elR)
	layoutR := d.localLayout(refR.NBasis())

	span := past.ElemSpan(entry.pastElemIdx)
	unkelR := span.ExtractElspan(d.Spacetime.PastU, past.GlobalLayout())

	centroidL := elL.PhysicalCentroid()
	order := d.FES.BasisOrder
	beta0, beta1 := ddgBetas(order, d.InteriorPenalty)

	npts := len(t.Quad.Pts)
	if len(tPast.Quad.Pts) < npts {
		npts = len(tPast.Quad.Pts)
	}

	for iqp := 0; iqp < npts; iqp++ {
		e := d.FES.EvalTrace(t, iqp)
		ePast := past.EvalTrace(tPast, iqp)
		w := t.Quad.Wts[iqp]

		uL := fespan.ContractValues(e.ValsL, unkelL, layoutL)
		uR := fespan.ContractValues(ePast.ValsL, unkelR, layoutR)

		JinvL, _, errL := invertAt(elL, e.XiL, d.MinDetJ)
		JinvR, _, errR := invertAt(elR, ePast.XiL, d.MinDetJ)
		if errL != nil || errR != nil {
			d.Anomalies.Add(Anomaly{Kind: "degenerate_jacobian", ElemID: -1, FaceID: ti, Err: chk.Err("spacetime trace jacobian")})
			continue
		}
		gradPhysL := physicalGrad(e.GradsL, JinvL)
		gradPhysR := physicalGrad(ePast.GradsL, JinvR)
		graduL := fespan.ContractGrad(gradPhysL, unkelL, layoutL)
		graduR := fespan.ContractGrad(gradPhysR, unkelR, layoutR)

		var hessuL, hessuR [][][]float64
		if e.HessL != nil && ePast.HessL != nil {
			hessuL = fespan.ContractHess(physicalHess(e.HessL, JinvL), unkelL, layoutL)
			hessuR = fespan.ContractHess(physicalHess(ePast.HessL, JinvR), unkelR, layoutR)
		}

		fadvn := make([]float64, d.NComp)
		d.Conv.Eval(uL, uR, e.Normal, fadvn)

		hddg := 0.0
		for idim := range e.Normal {
			hddg += e.Normal[idim] * 2 * (e.X[idim] - centroidL[idim])
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
	}
}
