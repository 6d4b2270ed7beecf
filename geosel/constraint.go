// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geosel builds the reduced MDG-ICE geometry dof map: selecting
// which interior faces' node coordinates become solver unknowns (by
// interface-conservation residual magnitude) and the per-node parametric
// constraint narrowing each selected node's freedom to m<=ndim parameters.
package geosel

import "github.com/cpmech/gosl/fun"

// Constraint maps a node's m free parameters to an ndim physical
// displacement via phi: R^m -> R^ndim, relative to that node's position in
// the mesh the GaussNewton solver started from (so Map(t, zero-vector) is
// always the zero displacement, regardless of constraint kind). Mirrors the
// per-face condition-record/callback convention of ele/naturalbcs.go's
// NaturalBc.Fcn.
type Constraint interface {
	M() int
	Map(t float64, params []float64) []float64
}

// Fixed is the m=0 constraint: the node's position is never perturbed by
// the solver. spec.md §4.8 registers every boundary node of a Dirichlet
// face with this constraint.
type Fixed struct {
	Ndim int
}

func (c *Fixed) M() int { return 0 }

// Map always returns the zero displacement; params is ignored (len 0).
func (c *Fixed) Map(t float64, params []float64) []float64 {
	return make([]float64, c.Ndim)
}

// Slide1D constrains a node to move along a parametric curve phi(t) in
// physical space, one fun.Func per coordinate (the scalar-callback
// convention fem/e_beam.go's Qt/Gfcn use), giving m=1 free parameter. Phi[d]
// gives coordinate d's displacement from the node's starting position as a
// function of the curve parameter, so Phi[d].F(0, nil) must be 0.
type Slide1D struct {
	Phi []fun.Func // len==ndim, Phi[d].F(t, nil) gives displacement along coordinate d
}

func (c *Slide1D) M() int { return 1 }

// Map evaluates the curve's displacement at parameter params[0].
func (c *Slide1D) Map(t float64, params []float64) []float64 {
	out := make([]float64, len(c.Phi))
	for d, f := range c.Phi {
		out[d] = f.F(params[0], nil)
	}
	return out
}

// Free leaves a node's full ndim coordinates as independent unknowns
// (phi is the identity map, m=ndim).
type Free struct {
	Ndim int
}

func (c *Free) M() int { return c.Ndim }

// Map returns params unchanged (params has length c.Ndim).
func (c *Free) Map(t float64, params []float64) []float64 {
	out := make([]float64, len(params))
	copy(out, params)
	return out
}

// GeoDofMap is the reduced geometry unknown vector's layout: one
// Constraint per selected node, in the order nodes were added, with Offset
// giving each node's starting position in the flat x_g vector (length
// Offset[len(Nodes)]).
type GeoDofMap struct {
	Nodes       []int
	Constraints []Constraint
	Offset      []int // len==len(Nodes)+1, prefix sum of each constraint's M()
}

// NewGeoDofMap builds the prefix-sum offsets for a set of (node,
// constraint) pairs, in the order given.
func NewGeoDofMap(nodes []int, constraints []Constraint) *GeoDofMap {
	g := &GeoDofMap{Nodes: nodes, Constraints: constraints, Offset: make([]int, len(nodes)+1)}
	for i, c := range constraints {
		g.Offset[i+1] = g.Offset[i] + c.M()
	}
	return g
}

// NGeoDof returns the total length of the reduced geometry unknown vector
// x_g (spec.md §4.8's "Σ m_k").
func (g *GeoDofMap) NGeoDof() int {
	return g.Offset[len(g.Offset)-1]
}

// ApplyTo returns node i's physical coordinate update from its slice of xg
// (spec.md §4.9 step 5, "update mesh coordinates from x_g via each selected
// node's phi_k").
func (g *GeoDofMap) ApplyTo(i int, t float64, xg []float64) []float64 {
	params := xg[g.Offset[i]:g.Offset[i+1]]
	return g.Constraints[i].Map(t, params)
}
