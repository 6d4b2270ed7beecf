// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dofmap

// CGDofMap gives every global node a fixed block of ncomp equations shared
// by every element that touches it (isoparametric/node-identity numbering),
// mirroring fem/domain.go's Node.AddDofAndEq for a single-key field.
type CGDofMap struct {
	NComp  int
	NNodes int
}

// NewCGDofMap builds a CG map over nnodes global nodes.
func NewCGDofMap(nnodes, ncomp int) *CGDofMap {
	return &CGDofMap{NComp: ncomp, NNodes: nnodes}
}

// NDof returns the total number of scalar degrees of freedom.
func (m *CGDofMap) NDof() int {
	return m.NNodes * m.NComp
}

// Dof returns the global equation number of component icomp at global node.
func (m *CGDofMap) Dof(node, icomp int) int {
	return node*m.NComp + icomp
}
