// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fespan provides strided views (spans) over flat solution vectors,
// addressed by (dof index, field component) through a Layout policy, and
// the gather/scatter/contraction operations the discretization uses to move
// data between the global solution vector and an element's local buffer.
package fespan

// Policy names the two index orders a (dof, component) pair can be
// flattened with, matching the layout_left/layout_right naming of mdspan
// policies: Right varies the trailing index (component) fastest, Left
// varies the leading index (dof) fastest.
type Policy int

const (
	LayoutRight Policy = iota // idx = idof*ncomp + icomp  (component-contiguous)
	LayoutLeft                // idx = icomp*ndof + idof   (dof-contiguous)
)

// Layout describes how a flat []float64 buffer over NDof dofs and NComp
// components per dof is indexed.
type Layout struct {
	NDof   int
	NComp  int
	Policy Policy
}

// NewLayout builds a Layout.
func NewLayout(ndof, ncomp int, policy Policy) *Layout {
	return &Layout{NDof: ndof, NComp: ncomp, Policy: policy}
}

// Size returns the flat buffer length this layout addresses.
func (l *Layout) Size() int {
	return l.NDof * l.NComp
}

// Index returns the flat offset of (idof, icomp).
func (l *Layout) Index(idof, icomp int) int {
	if l.Policy == LayoutLeft {
		return icomp*l.NDof + idof
	}
	return idof*l.NComp + icomp
}
