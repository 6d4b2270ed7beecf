// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fespace binds a mesh, a reference-element catalog, a DG dof map,
// and the derived trace list into one object the discretization iterates
// over. Mirrors fem/domain.go's Domain struct, which is the analogous
// single pinned object binding mesh, elements, and equation maps for one
// simulation stage.
package fespace

import (
	"github.com/gabsillis/ICEicle/dofmap"
	"github.com/gabsillis/ICEicle/fespan"
	"github.com/gabsillis/ICEicle/geometry"
	"github.com/gabsillis/ICEicle/mesh"
	"github.com/gabsillis/ICEicle/refelem"
)

// FESpace is built once per mesh/basis-order combination and not moved
// afterward: Trace.RefL/RefR and Refs entries are refelem.Record pointers
// owned by the package-level catalog, and Refs is indexed in lockstep
// with fs.Mesh.Cells/Elements, so callers should treat a
// *FESpace as pinned for the lifetime of the stage it was built for.
type FESpace struct {
	Mesh       *mesh.Mesh
	BasisOrder int
	NComp      int
	WithHess   bool

	Refs []*refelem.Record // parallel to Mesh.Cells/Elements
	DG   *dofmap.DGDofMap

	Traces []*Trace
}

// NewFESpace builds a FESpace over mesh m with a uniform solution basis
// order and ncomp solution components per basis function. withHess
// requests Hessian data on every reference element and trace evaluation
// (needed by DDG's diffusion flux).
func NewFESpace(m *mesh.Mesh, basisOrder, ncomp int, withHess bool) *FESpace {
	fs := &FESpace{Mesh: m, BasisOrder: basisOrder, NComp: ncomp, WithHess: withHess}

	fs.Refs = make([]*refelem.Record, len(m.Cells))
	nbasisPerElem := make([]int, len(m.Cells))
	for i, c := range m.Cells {
		fs.Refs[i] = fs.refOf(c.Domain, c.GeomOrder)
		nbasisPerElem[i] = fs.Refs[i].NBasis()
	}
	fs.DG = dofmap.NewDGDofMap(nbasisPerElem, ncomp)

	if len(m.InteriorFaces) == 0 && len(m.BoundaryFaces) == 0 && len(m.ParallelFaces) == 0 {
		m.BuildFaces()
	}
	fs.buildTraces()
	return fs
}

// refOf returns (building if absent) the catalog record for a basis of
// fs.BasisOrder on the given domain/geometry order.
func (fs *FESpace) refOf(domain geometry.DomainType, geomOrder int) *refelem.Record {
	key := refelem.Key{
		Domain:     domain,
		Ndim:       fs.Mesh.Ndim,
		BasisOrder: fs.BasisOrder,
		GeomOrder:  geomOrder,
		QuadType:   refelem.GAUSS_LEGENDRE,
		BasisType:  refelem.NODAL_LAGRANGE,
	}
	return refelem.Get(key, fs.WithHess)
}

// RefByElement returns the cached reference element record matching a
// geometry.Element's own domain/geometry order (used when only the Element
// pointer is at hand, e.g. from a Face).
func (fs *FESpace) RefByElement(el *geometry.Element) *refelem.Record {
	return fs.refOf(el.Domain, el.GeomOrder)
}

// CellDofs returns the global dof indices element e owns.
func (fs *FESpace) CellDofs(e int) []int {
	return fs.DG.ElemDofs(e)
}

// GlobalLayout returns the fespan.Layout addressing this FESpace's DG
// solution vector at basis-dof granularity (DG.NDof()/NComp dofs), the
// layout fespan.Span.ExtractElspan/ScatterElspan expect.
func (fs *FESpace) GlobalLayout() *fespan.Layout {
	return fespan.NewLayout(fs.DG.NDof()/fs.NComp, fs.NComp, fespan.LayoutRight)
}

// ElemSpan returns a Span over element e's basis-granularity dofs, ready to
// gather/scatter against this FESpace's GlobalLayout.
func (fs *FESpace) ElemSpan(e int) *fespan.Span {
	return fespan.NewSpan(fs.NComp, fespan.LayoutRight, fs.DG.ElemBasisDofs(e))
}
