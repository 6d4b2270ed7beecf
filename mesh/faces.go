// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gabsillis/ICEicle/geometry"
)

// faceCornerLocalIndices returns, for a cell's face faceNr, the local node
// indices of the face's corner vertices, ordered by the face's own raw
// corner-bit index (0..2^ndimFace-1) so two cells sharing a face can compare
// orientation by bit-permutation rather than just as a set.
func faceCornerLocalIndices(c *Cell, ndim int, faceNr int) []int {
	if c.Domain == geometry.SIMPLEX {
		n := ndim + 1
		out := make([]int, 0, n-1)
		for v := 0; v < n; v++ {
			if v != faceNr {
				out = append(out, v)
			}
		}
		return out
	}
	axis, side := geometry.HypercubeFaceAxis(faceNr)
	verts := geometry.HypercubeVertexIndices(ndim, c.GeomOrder)
	out := make([]int, 0, len(verts)/2)
	for v, idx := range verts {
		bit := (v >> uint(axis)) & 1
		want := 0
		if side == 1 {
			want = 1
		}
		if bit == want {
			out = append(out, idx)
		}
	}
	return out
}

func sortedKey(ids []int) string {
	s := append([]int{}, ids...)
	sort.Ints(s)
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

type faceOccurrence struct {
	cellIdx int
	faceNr  int
	ids     []int // global ids in raw corner-bit order
}

// BuildFaces classifies every cell face into InteriorFaces, BoundaryFaces,
// or ParallelFaces by matching corner vertex sets across cells. A face
// tagged in Cell.FaceBC with PARALLEL_COM, or any boundary-looking BCType,
// takes that tag; an untagged face matched to exactly one other cell is
// INTERIOR; an untagged face matched to no other cell defaults to
// EXTRAPOLATION (an open/unset boundary, left for the caller to retag).
func (m *Mesh) BuildFaces() {
	occ := make(map[string][]faceOccurrence)
	for ci, c := range m.Cells {
		nfaces := geometry.NFacesHypercube(m.Ndim)
		if c.Domain == geometry.SIMPLEX {
			nfaces = m.Ndim + 1
		}
		for f := 0; f < nfaces; f++ {
			locals := faceCornerLocalIndices(c, m.Ndim, f)
			ids := make([]int, len(locals))
			for i, li := range locals {
				ids[i] = c.Verts[li]
			}
			key := sortedKey(ids)
			occ[key] = append(occ[key], faceOccurrence{cellIdx: ci, faceNr: f, ids: ids})
		}
	}

	m.InteriorFaces = nil
	m.BoundaryFaces = nil
	m.ParallelFaces = nil

	for _, occs := range occ {
		if len(occs) == 1 {
			o := occs[0]
			c := m.Cells[o.cellIdx]
			bc := geometry.EXTRAPOLATION
			if tagged, ok := c.FaceBC[o.faceNr]; ok {
				bc = tagged
			}
			face := &geometry.Face{
				ElemL:     m.Elements[o.cellIdx],
				ElemR:     m.Elements[o.cellIdx],
				FaceInfoL: geometry.PackFaceInfo(o.faceNr, 0),
				FaceInfoR: 0,
				BCType:    bc,
			}
			if bc == geometry.PARALLEL_COM {
				m.ParallelFaces = append(m.ParallelFaces, face)
			} else {
				m.BoundaryFaces = append(m.BoundaryFaces, face)
			}
			continue
		}
		// interior face between occs[0] and occs[1] (a manifold mesh never
		// has more than two cells sharing one face).
		l, r := occs[0], occs[1]
		ndimFace := m.Ndim - 1
		orientation := matchOrientation(ndimFace, l.ids, r.ids)
		face := &geometry.Face{
			ElemL:     m.Elements[l.cellIdx],
			ElemR:     m.Elements[r.cellIdx],
			FaceInfoL: geometry.PackFaceInfo(l.faceNr, 0),
			FaceInfoR: geometry.PackFaceInfo(r.faceNr, orientation),
			BCType:    geometry.INTERIOR,
		}
		m.InteriorFaces = append(m.InteriorFaces, face)
	}
}

// matchOrientation searches the recognized orientation group for the value
// o such that otherIds[CornerOrientationApply(ndimFace,o,c)] == refIds[c]
// for every raw corner index c, returning 0 (identity) if none matches
// exactly (which should not happen for a well-formed conforming mesh).
func matchOrientation(ndimFace int, refIds, otherIds []int) int {
	n := geometry.NOrientations(ndimFace)
	for o := 0; o < n; o++ {
		ok := true
		for c := range refIds {
			oc := geometry.CornerOrientationApply(ndimFace, o, c)
			if oc >= len(otherIds) || otherIds[oc] != refIds[c] {
				ok = false
				break
			}
		}
		if ok {
			return o
		}
	}
	return 0
}
