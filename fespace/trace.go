// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fespace

import (
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/refelem"
)

// Trace binds one mesh face to a quadrature rule over the face's own
// reference domain. RefL/RefR let the discretization evaluate each side's
// basis at the face quadrature points without a second catalog lookup per
// evaluation.
type Trace struct {
	Face *geometry.Face
	RefL *refelem.Record
	RefR *refelem.Record
	Quad *refelem.QuadRule
}

// IsBoundary reports whether this trace's face has no distinct neighbor.
func (t *Trace) IsBoundary() bool { return t.Face.IsBoundary() }

func (fs *FESpace) buildTraces() {
	var all []*geometry.Face
	all = append(all, fs.Mesh.InteriorFaces...)
	all = append(all, fs.Mesh.BoundaryFaces...)
	all = append(all, fs.Mesh.ParallelFaces...)

	fs.Traces = make([]*Trace, len(all))
	for i, f := range all {
		ndimFace := f.NdimFace()
		npts1d := fs.BasisOrder + 1
		quad := refelem.NewQuadrature(f.ElemL.Domain, ndimFace, npts1d)
		fs.Traces[i] = &Trace{
			Face: f,
			RefL: fs.RefByElement(f.ElemL),
			RefR: fs.RefByElement(f.ElemR),
			Quad: quad,
		}
	}
}

// TraceEval holds everything the discretization needs at one trace
// quadrature point: geometry (embedded reference points, physical point,
// surface measure, outward normal) and each side's basis data there.
type TraceEval struct {
	SFace   []float64
	XiL     []float64
	XiR     []float64
	X       []float64
	RootDet float64
	Normal  []float64

	ValsL, ValsR   []float64
	GradsL, GradsR [][]float64
	HessL, HessR   [][][]float64
}

// EvalTrace evaluates trace t at its qp-th quadrature point.
func (fs *FESpace) EvalTrace(t *Trace, qp int) *TraceEval {
	sFace := t.Quad.Pts[qp]
	e := &TraceEval{
		SFace:   sFace,
		XiL:     t.Face.TransformXiL(sFace),
		XiR:     t.Face.TransformXiR(sFace),
		X:       t.Face.Transform(sFace),
		RootDet: t.Face.RootDet(sFace),
		Normal:  t.Face.Normal(sFace),
	}

	e.ValsL = make([]float64, t.RefL.NBasis())
	t.RefL.Basis.FillShp(e.XiL, e.ValsL)
	e.GradsL = allocGrad(t.RefL.NBasis(), fs.Mesh.Ndim)
	t.RefL.Basis.FillDeriv(e.XiL, e.GradsL)

	e.ValsR = make([]float64, t.RefR.NBasis())
	t.RefR.Basis.FillShp(e.XiR, e.ValsR)
	e.GradsR = allocGrad(t.RefR.NBasis(), fs.Mesh.Ndim)
	t.RefR.Basis.FillDeriv(e.XiR, e.GradsR)

	if fs.WithHess {
		e.HessL = allocHess(t.RefL.NBasis(), fs.Mesh.Ndim)
		t.RefL.Basis.FillHess(e.XiL, e.HessL)
		e.HessR = allocHess(t.RefR.NBasis(), fs.Mesh.Ndim)
		t.RefR.Basis.FillHess(e.XiR, e.HessR)
	}

	return e
}

func allocGrad(nbasis, ndim int) [][]float64 {
	g := make([][]float64, nbasis)
	for b := range g {
		g[b] = make([]float64, ndim)
	}
	return g
}

func allocHess(nbasis, ndim int) [][][]float64 {
	h := make([][][]float64, nbasis)
	for b := range h {
		h[b] = make([][]float64, ndim)
		for i := range h[b] {
			h[b][i] = make([]float64, ndim)
		}
	}
	return h
}
