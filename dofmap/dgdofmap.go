// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dofmap assigns global equation numbers to element-local degrees
// of freedom, generalizing the per-node equation numbering pass in
// fem/domain.go to two schemes: DG (a contiguous, non-shared block per
// element) and CG (node-identity, shared across neighboring elements). The
// selected-node geometry map for MDG-ICE's mesh-coordinate unknowns is
// geosel.GeoDofMap, not part of this package.
package dofmap

import "github.com/cpmech/gosl/chk"

// DGDofMap gives each element a private, contiguous block of equations
// (no dof is shared between elements), ncomp scalar components per basis
// function, basis-major within a block (dof = base + ibasis*ncomp + icomp).
type DGDofMap struct {
	NComp       int
	NDofPerElem []int // len==ncells
	Offset      []int // len==ncells+1, prefix sum of NDofPerElem
}

// NewDGDofMap builds a DG map from the basis count of every element.
func NewDGDofMap(nbasisPerElem []int, ncomp int) *DGDofMap {
	n := len(nbasisPerElem)
	m := &DGDofMap{NComp: ncomp, NDofPerElem: make([]int, n), Offset: make([]int, n+1)}
	for e, nb := range nbasisPerElem {
		m.NDofPerElem[e] = nb * ncomp
		m.Offset[e+1] = m.Offset[e] + m.NDofPerElem[e]
	}
	return m
}

// NDof returns the total number of scalar degrees of freedom.
func (m *DGDofMap) NDof() int {
	return m.Offset[len(m.Offset)-1]
}

// Dof returns the global equation number of basis function ibasis,
// component icomp, on element e.
func (m *DGDofMap) Dof(e, ibasis, icomp int) int {
	if icomp < 0 || icomp >= m.NComp {
		chk.Panic("dofmap: component %d out of range [0,%d)", icomp, m.NComp)
	}
	return m.Offset[e] + ibasis*m.NComp + icomp
}

// ElemDofs returns the full list of global scalar dof indices owned by
// element e, in basis-major order.
func (m *DGDofMap) ElemDofs(e int) []int {
	n := m.NDofPerElem[e]
	out := make([]int, n)
	base := m.Offset[e]
	for i := range out {
		out[i] = base + i
	}
	return out
}

// ElemBasisDofs returns element e's basis-granularity dof ids (one per
// basis function, not multiplied by NComp), suitable as a fespan.Span.Umap
// against a fespan.Layout built over NDof()/NComp basis dofs. Since every
// element's scalar block is ncomp-contiguous and offsets are always
// multiples of NComp, this is just Offset[e]/NComp + local basis index.
func (m *DGDofMap) ElemBasisDofs(e int) []int {
	nbasis := m.NDofPerElem[e] / m.NComp
	base := m.Offset[e] / m.NComp
	out := make([]int, nbasis)
	for i := range out {
		out[i] = base + i
	}
	return out
}
