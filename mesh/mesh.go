// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh holds the Mesh/Cell connectivity types: vertex coordinates,
// cell-to-node lists, the elements-surrounding-node CRS, and the
// interior/boundary/parallel face ranges built by vertex matching.
package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/gabsillis/ICEicle/geometry"
)

// Cell is one mesh cell: a reference domain, orders, and the global node
// indices that define its geometry. FaceBC tags the BCType of any face that
// is not purely interior (boundary faces, and spacetime/periodic/parallel
// faces that need a tag before BuildFaces can classify them).
type Cell struct {
	Id         int
	Domain     geometry.DomainType
	BasisOrder int
	GeomOrder  int
	Verts      []int // global node indices, in this cell's local face/vertex ordering
	Part       int   // partition (rank) owning this cell
	FaceBC     map[int]geometry.BCType
}

// Mesh is the mesh-wide connectivity: global coordinates shared by all
// cells, the cell list, and (once built) derived connectivity used by the
// rest of the pipeline.
type Mesh struct {
	Ndim  int
	Coord [][]float64 // [ndim][nnode]
	Cells []*Cell

	Elements []*geometry.Element // parallel to Cells

	nodeElemPtr []int // CRS pointer, len==nnode+1
	nodeElemVal []int // CRS values: cell ids

	InteriorFaces []*geometry.Face
	BoundaryFaces []*geometry.Face
	ParallelFaces []*geometry.Face
}

// NewMesh builds a Mesh and its geometry.Element list. coord is shared
// column-major-by-dimension storage: coord[d][node].
func NewMesh(ndim int, coord [][]float64, cells []*Cell) *Mesh {
	if len(coord) != ndim {
		chk.Panic("mesh: coord has %d rows, want ndim=%d", len(coord), ndim)
	}
	m := &Mesh{Ndim: ndim, Coord: coord, Cells: cells}
	m.buildElements()
	m.buildNodeElemCRS()
	return m
}

// NNodes returns the number of global nodes in the shared coordinate array.
func (m *Mesh) NNodes() int {
	if m.Ndim == 0 {
		return 0
	}
	return len(m.Coord[0])
}

func (m *Mesh) buildElements() {
	m.Elements = make([]*geometry.Element, len(m.Cells))
	for i, c := range m.Cells {
		coord := make([][]float64, m.Ndim)
		for d := 0; d < m.Ndim; d++ {
			coord[d] = make([]float64, len(c.Verts))
			for k, v := range c.Verts {
				coord[d][k] = m.Coord[d][v]
			}
		}
		m.Elements[i] = geometry.NewElement(c.Domain, c.GeomOrder, m.Ndim, c.Verts, coord)
	}
}

// buildNodeElemCRS builds the elements-surrounding-node compressed row
// storage: nodeElemVal[nodeElemPtr[n]:nodeElemPtr[n+1]] lists the cell ids
// touching node n.
func (m *Mesh) buildNodeElemCRS() {
	nnode := m.NNodes()
	count := make([]int, nnode+1)
	for _, c := range m.Cells {
		seen := make(map[int]bool, len(c.Verts))
		for _, v := range c.Verts {
			if !seen[v] {
				seen[v] = true
				count[v+1]++
			}
		}
	}
	for n := 0; n < nnode; n++ {
		count[n+1] += count[n]
	}
	m.nodeElemPtr = count
	m.nodeElemVal = make([]int, count[nnode])
	fill := make([]int, nnode+1)
	copy(fill, count)
	for _, c := range m.Cells {
		seen := make(map[int]bool, len(c.Verts))
		for _, v := range c.Verts {
			if !seen[v] {
				seen[v] = true
				m.nodeElemVal[fill[v]] = c.Id
				fill[v]++
			}
		}
	}
}

// NodeElems returns the ids of cells that touch global node n.
func (m *Mesh) NodeElems(n int) []int {
	return m.nodeElemVal[m.nodeElemPtr[n]:m.nodeElemPtr[n+1]]
}
