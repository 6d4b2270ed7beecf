// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"sync"

	"github.com/cpmech/gosl/la"
)

// Assemble computes the global residual vector over the whole fespace for
// the current flat solution U (addressed by d.FES.GlobalLayout), visiting
// every element's Domain integral and every trace's Interior/BoundaryTrace
// integral in sequence. Mirrors fem/domain.go's serial CalcRandKb pass.
func (d *Discretization) Assemble(U []float64) []float64 {
	res := make([]float64, d.FES.DG.NDof())
	gl := d.FES.GlobalLayout()

	for e := range d.FES.Mesh.Cells {
		span := d.FES.ElemSpan(e)
		unkel := span.ExtractElspan(U, gl)
		local := make([]float64, len(unkel))
		d.Domain(e, unkel, local)
		span.ScatterElspan(local, res, gl)
	}

	for ti, t := range d.FES.Traces {
		if t.IsBoundary() {
			eL := d.indexOf(t.Face.ElemL)
			spanL := d.FES.ElemSpan(eL)
			unkelL := spanL.ExtractElspan(U, gl)
			localL := make([]float64, len(unkelL))
			d.BoundaryTrace(ti, unkelL, localL)
			spanL.ScatterElspan(localL, res, gl)
			continue
		}
		eL := d.indexOf(t.Face.ElemL)
		eR := d.indexOf(t.Face.ElemR)
		spanL := d.FES.ElemSpan(eL)
		spanR := d.FES.ElemSpan(eR)
		unkelL := spanL.ExtractElspan(U, gl)
		unkelR := spanR.ExtractElspan(U, gl)
		localL := make([]float64, len(unkelL))
		localR := make([]float64, len(unkelR))
		d.InteriorTrace(ti, unkelL, unkelR, localL, localR)
		spanL.ScatterElspan(localL, res, gl)
		spanR.ScatterElspan(localR, res, gl)
	}
	return res
}

// AssembleParallel computes the same residual as Assemble but fans domain
// integrals out one goroutine per element (always safe: DG blocks never
// overlap) and trace integrals out one goroutine batch per colors.Colors
// entry, synchronizing between colors so no two concurrently running traces
// ever scatter into the same element's slice. This is the "simple coloring
// of the face graph" concurrency model: colors, not elements, are the unit
// of a parallel batch for trace work.
func (d *Discretization) AssembleParallel(U []float64, colors *ColorSet) []float64 {
	res := make([]float64, d.FES.DG.NDof())
	gl := d.FES.GlobalLayout()

	var wg sync.WaitGroup
	for e := range d.FES.Mesh.Cells {
		wg.Add(1)
		go func(e int) {
			defer wg.Done()
			span := d.FES.ElemSpan(e)
			unkel := span.ExtractElspan(U, gl)
			local := make([]float64, len(unkel))
			d.Domain(e, unkel, local)
			span.ScatterElspan(local, res, gl)
		}(e)
	}
	wg.Wait()

	for _, color := range colors.Colors {
		var cwg sync.WaitGroup
		for _, ti := range color {
			cwg.Add(1)
			go func(ti int) {
				defer cwg.Done()
				t := d.FES.Traces[ti]
				if t.IsBoundary() {
					eL := d.indexOf(t.Face.ElemL)
					spanL := d.FES.ElemSpan(eL)
					unkelL := spanL.ExtractElspan(U, gl)
					localL := make([]float64, len(unkelL))
					d.BoundaryTrace(ti, unkelL, localL)
					spanL.ScatterElspan(localL, res, gl)
					return
				}
				eL := d.indexOf(t.Face.ElemL)
				eR := d.indexOf(t.Face.ElemR)
				spanL := d.FES.ElemSpan(eL)
				spanR := d.FES.ElemSpan(eR)
				unkelL := spanL.ExtractElspan(U, gl)
				unkelR := spanR.ExtractElspan(U, gl)
				localL := make([]float64, len(unkelL))
				localR := make([]float64, len(unkelR))
				d.InteriorTrace(ti, unkelL, unkelR, localL, localR)
				spanL.ScatterElspan(localL, res, gl)
				spanR.ScatterElspan(localR, res, gl)
			}(ti)
		}
		cwg.Wait()
	}
	return res
}

// Jacobian assembles the global finite-difference Jacobian dRes/dU as a
// sparse triplet, reusing the same element/trace loop structure as Assemble
// but routing each block through Domain/InteriorTrace/BoundaryTrace's FD
// wrappers instead of scattering residuals directly.
func (d *Discretization) Jacobian(U []float64) *la.Triplet {
	n := d.FES.DG.NDof()
	nnz := 0
	for e := range d.FES.Mesh.Cells {
		ne := len(d.FES.DG.ElemDofs(e))
		nnz += ne * ne
	}
	for _, t := range d.FES.Traces {
		nL := t.RefL.NBasis() * d.NComp
		nR := t.RefR.NBasis() * d.NComp
		if t.IsBoundary() {
			nnz += nL * nL
		} else {
			nnz += (nL + nR) * (nL + nR)
		}
	}

	dRdu := new(la.Triplet)
	dRdu.Init(n, n, nnz)
	gl := d.FES.GlobalLayout()

	for e := range d.FES.Mesh.Cells {
		span := d.FES.ElemSpan(e)
		unkel := span.ExtractElspan(U, gl)
		res0 := make([]float64, len(unkel))
		d.Domain(e, unkel, res0)
		d.DomainJacobian(e, unkel, res0, d.FES.DG.ElemDofs(e), dRdu)
	}

	for ti, t := range d.FES.Traces {
		if t.IsBoundary() {
			eL := d.indexOf(t.Face.ElemL)
			spanL := d.FES.ElemSpan(eL)
			unkelL := spanL.ExtractElspan(U, gl)
			resL0 := make([]float64, len(unkelL))
			d.BoundaryTrace(ti, unkelL, resL0)
			d.boundaryTraceJacobian(ti, unkelL, resL0, d.FES.DG.ElemDofs(eL), dRdu)
			continue
		}
		eL := d.indexOf(t.Face.ElemL)
		eR := d.indexOf(t.Face.ElemR)
		spanL := d.FES.ElemSpan(eL)
		spanR := d.FES.ElemSpan(eR)
		unkelL := spanL.ExtractElspan(U, gl)
		unkelR := spanR.ExtractElspan(U, gl)
		resL0 := make([]float64, len(unkelL))
		resR0 := make([]float64, len(unkelR))
		d.InteriorTrace(ti, unkelL, unkelR, resL0, resR0)
		d.interiorTraceJacobian(ti, unkelL, unkelR, resL0, resR0, d.FES.DG.ElemDofs(eL), d.FES.DG.ElemDofs(eR), dRdu)
	}

	return dRdu
}
