// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dofmap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_dgdofmap01 checks property 7: DG offsets are strictly increasing and
// total to the sum of per-element dof counts, with no element sharing a dof
// with another.
func Test_dgdofmap01(tst *testing.T) {

	chk.PrintTitle("dgdofmap01")

	nbasis := []int{4, 9, 4, 16, 9}
	ncomp := 3
	m := NewDGDofMap(nbasis, ncomp)

	total := 0
	for e, nb := range nbasis {
		if m.NDofPerElem[e] != nb*ncomp {
			tst.Errorf("elem %d: NDofPerElem=%d want %d", e, m.NDofPerElem[e], nb*ncomp)
		}
		total += nb * ncomp
	}
	if m.NDof() != total {
		tst.Errorf("NDof()=%d want %d", m.NDof(), total)
	}
	for e := 1; e < len(m.Offset); e++ {
		if m.Offset[e] <= m.Offset[e-1] && nbasis[e-1] > 0 {
			tst.Errorf("offset[%d]=%d not > offset[%d]=%d", e, m.Offset[e], e-1, m.Offset[e-1])
		}
	}

	seen := make(map[int]bool)
	for e := range nbasis {
		for _, d := range m.ElemDofs(e) {
			if seen[d] {
				tst.Errorf("dof %d aliased across elements", d)
			}
			seen[d] = true
		}
	}
	if len(seen) != total {
		tst.Errorf("distinct dofs=%d want %d", len(seen), total)
	}
}

// Test_dgdofmap02 checks the basis-major indexing convention directly.
func Test_dgdofmap02(tst *testing.T) {

	chk.PrintTitle("dgdofmap02")

	m := NewDGDofMap([]int{2, 3}, 2)
	if m.Dof(0, 0, 0) != 0 || m.Dof(0, 0, 1) != 1 || m.Dof(0, 1, 0) != 2 || m.Dof(0, 1, 1) != 3 {
		tst.Errorf("elem 0 dof layout mismatch")
	}
	if m.Dof(1, 0, 0) != 4 {
		tst.Errorf("elem 1 base dof=%d want 4", m.Dof(1, 0, 0))
	}
}

// Test_cgdofmap01 checks that CG dofs are unique per (node,comp) pair and
// that neighboring elements sharing a node share its dofs (identity map).
func Test_cgdofmap01(tst *testing.T) {

	chk.PrintTitle("cgdofmap01")

	m := NewCGDofMap(5, 2)
	if m.NDof() != 10 {
		tst.Errorf("NDof()=%d want 10", m.NDof())
	}
	seen := make(map[int]bool)
	for n := 0; n < 5; n++ {
		for c := 0; c < 2; c++ {
			d := m.Dof(n, c)
			if seen[d] {
				tst.Errorf("dof %d aliased", d)
			}
			seen[d] = true
		}
	}
	// two "elements" sharing node 2 see the same dof for that node
	if m.Dof(2, 0) != m.Dof(2, 0) {
		tst.Errorf("shared node dof mismatch")
	}
}

