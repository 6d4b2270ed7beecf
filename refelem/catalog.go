// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refelem implements the content-addressable reference element
// catalog: a cache of precomputed basis/quadrature evaluations keyed by
// (domain, basis order, geometry order, quadrature type, basis type), so
// that every element sharing a signature reuses one evaluation record
// instead of recomputing shape functions at every quadrature point.
package refelem

import (
	"fmt"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/basis"
	"github.com/gabsillis/ICEicle/geometry"
)

// QuadType enumerates the supported quadrature families.
type QuadType int

const (
	GAUSS_LEGENDRE QuadType = iota
)

func (q QuadType) String() string {
	switch q {
	case GAUSS_LEGENDRE:
		return "gauss_legendre"
	}
	return "unknown"
}

// BasisType enumerates the supported basis families. Only nodal Lagrange is
// implemented; the field exists so the catalog key has a place for future
// modal/hierarchical bases without changing the key shape.
type BasisType int

const (
	NODAL_LAGRANGE BasisType = iota
)

func (b BasisType) String() string {
	switch b {
	case NODAL_LAGRANGE:
		return "nodal_lagrange"
	}
	return "unknown"
}

// Key identifies one reference element signature.
type Key struct {
	Domain     geometry.DomainType
	Ndim       int
	BasisOrder int
	GeomOrder  int
	QuadType   QuadType
	BasisType  BasisType
}

func (k Key) String() string {
	return fmt.Sprintf("%s/ndim=%d/p=%d/pgeo=%d/%s/%s",
		k.Domain, k.Ndim, k.BasisOrder, k.GeomOrder, k.QuadType, k.BasisType)
}

// QPEval holds precomputed basis data at one quadrature point: function
// values, gradients (w.r.t. reference coordinates), and optionally Hessians.
type QPEval struct {
	Values []float64   // [nbasis]
	Grads  [][]float64 // [nbasis][ndim]
	Hess   [][][]float64 // [nbasis][ndim][ndim], nil unless requested
}

// Record is one cached reference element: a basis, a quadrature rule, and
// the basis evaluated at every quadrature point.
type Record struct {
	Key     Key
	Basis   basis.Basis
	GeoBasis basis.Basis // basis of the geometry order, for curved maps
	Quad    *QuadRule
	Evals   []QPEval
}

// NBasis returns the number of basis functions on this reference element.
func (r *Record) NBasis() int { return r.Basis.NBasis() }

// newBasis builds the nodal basis for domain at the given order: a
// tensor-product Lagrange basis for HYPERCUBE, a simplex Lagrange basis
// (equispaced barycentric lattice nodes) for SIMPLEX.
func newBasis(domain geometry.DomainType, ndim, order int) basis.Basis {
	switch domain {
	case geometry.HYPERCUBE:
		return basis.NewTensorBasis(ndim, order)
	case geometry.SIMPLEX:
		return basis.NewSimplexBasis(ndim, order)
	}
	chk.Panic("refelem: unsupported domain %v", domain)
	return nil
}

// Catalog is a process-wide cache of Records, safe for concurrent use.
type Catalog struct {
	mu      sync.Mutex
	records map[Key]*Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[Key]*Record)}
}

// defaultCatalog is the package-level catalog used by Get, mirroring the
// teacher's package-level allocator/info registries (ele.allocators).
var defaultCatalog = NewCatalog()

// Get returns the cached Record for key, building and storing one if absent.
// withHess requests Hessian evaluation; once a record is built without
// Hessians a later call requesting them rebuilds and replaces it.
func Get(key Key, withHess bool) *Record {
	return defaultCatalog.Get(key, withHess)
}

// Get is the Catalog method backing the package-level Get.
func (c *Catalog) Get(key Key, withHess bool) *Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.records[key]; ok {
		if !withHess || rec.Evals[0].Hess != nil {
			return rec
		}
	}
	rec := c.build(key, withHess)
	c.records[key] = rec
	return rec
}

// npts1d picks the number of 1D Gauss points needed to integrate a tensor
// product of two basis-order-p polynomials exactly: 2p+1 degree needs
// ceil((2p+2)/2) points, i.e. p+1; when the geometry order q exceeds p,
// q+1 points are used instead.
func npts1d(basisOrder, geomOrder int) int {
	n := basisOrder + 1
	if geomOrder > basisOrder {
		n = geomOrder + 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Catalog) build(key Key, withHess bool) *Record {
	if key.BasisType != NODAL_LAGRANGE {
		chk.Panic("refelem: unsupported basis type %v", key.BasisType)
	}
	if key.QuadType != GAUSS_LEGENDRE {
		chk.Panic("refelem: unsupported quadrature type %v", key.QuadType)
	}

	tb := newBasis(key.Domain, key.Ndim, key.BasisOrder)
	var geoBasis basis.Basis
	if key.GeomOrder == key.BasisOrder {
		geoBasis = tb
	} else {
		geoBasis = newBasis(key.Domain, key.Ndim, key.GeomOrder)
	}

	quad := NewQuadrature(key.Domain, key.Ndim, npts1d(key.BasisOrder, key.GeomOrder))

	nb := tb.NBasis()
	evals := make([]QPEval, quad.NPoints())
	for g, xi := range quad.Pts {
		vals := make([]float64, nb)
		tb.FillShp(xi, vals)
		grads := make([][]float64, nb)
		for b := range grads {
			grads[b] = make([]float64, key.Ndim)
		}
		tb.FillDeriv(xi, grads)
		qp := QPEval{Values: vals, Grads: grads}
		if withHess {
			hess := make([][][]float64, nb)
			for b := range hess {
				hess[b] = make([][]float64, key.Ndim)
				for a := range hess[b] {
					hess[b][a] = make([]float64, key.Ndim)
				}
			}
			tb.FillHess(xi, hess)
			qp.Hess = hess
		}
		evals[g] = qp
	}

	return &Record{Key: key, Basis: tb, GeoBasis: geoBasis, Quad: quad, Evals: evals}
}
