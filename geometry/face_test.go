// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_faceinfo01 checks the face_info packing round-trip.
func Test_faceinfo01(tst *testing.T) {

	chk.PrintTitle("faceinfo01")

	for faceNr := 0; faceNr < 6; faceNr++ {
		for orientation := 0; orientation < 8; orientation++ {
			packed := PackFaceInfo(faceNr, orientation)
			f2, o2 := UnpackFaceInfo(packed)
			if f2 != faceNr || o2 != orientation {
				tst.Errorf("roundtrip failed: faceNr=%d orientation=%d -> %d -> (%d,%d)",
					faceNr, orientation, packed, f2, o2)
			}
		}
	}
}

// unitQuad builds a unit square element [0,1]^2 (used as elemL or elemR
// below), with the given physical offset added. Its nodes are listed in
// TensorBasis order (last axis fastest), so reference axis0 runs along x.
func unitQuad(ox, oy float64) *Element {
	coord := [][]float64{
		{ox + 0, ox + 0, ox + 1, ox + 1},
		{oy + 0, oy + 1, oy + 0, oy + 1},
	}
	nodeIdx := HypercubeVertexIndices(2, 1)
	return NewElement(HYPERCUBE, 1, 2, nodeIdx, coord)
}

// Test_face01 checks property 6: outward normals for a boundary face and
// for both sides of an interior face between two adjacent unit squares.
func Test_face01(tst *testing.T) {

	chk.PrintTitle("face01")

	left := unitQuad(0, 0)
	right := unitQuad(1, 0)

	// interior face: left's face 1 (axis0,side1, x=1) meets right's face 0 (axis0,side0, x=0)
	face := &Face{
		ElemL:     left,
		ElemR:     right,
		FaceInfoL: PackFaceInfo(1, 0),
		FaceInfoR: PackFaceInfo(0, 0),
		BCType:    INTERIOR,
	}

	s := []float64{0.0}
	n := face.Normal(s)
	xGamma := face.Transform(s)
	cL := left.PhysicalCentroid()
	cR := right.PhysicalCentroid()

	dotL := 0.0
	dotR := 0.0
	for i := range n {
		dotL += n[i] * (cL[i] - xGamma[i])
		dotR += n[i] * (cR[i] - xGamma[i])
	}
	if dotL >= 0 {
		tst.Errorf("n.(cL-xGamma) should be < 0, got %v", dotL)
	}
	if dotR <= 0 {
		tst.Errorf("n.(cR-xGamma) should be > 0 for interior face, got %v", dotR)
	}

	// boundary face: right edge of `right` element, elemR==elemL
	bnd := &Face{
		ElemL:     right,
		ElemR:     right,
		FaceInfoL: PackFaceInfo(1, 0),
		FaceInfoR: 0,
		BCType:    DIRICHLET,
	}
	nb := bnd.Normal(s)
	xb := bnd.Transform(s)
	cb := right.PhysicalCentroid()
	dotB := 0.0
	for i := range nb {
		dotB += nb[i] * (cb[i] - xb[i])
	}
	if dotB >= 0 {
		tst.Errorf("boundary n.(cL-xGamma) should be < 0, got %v", dotB)
	}
}

// Test_mpibcflag01 checks the PARALLEL_COM bcflag encode/decode round trip.
func Test_mpibcflag01(tst *testing.T) {

	chk.PrintTitle("mpibcflag01")

	nranks := 4
	for rank := 0; rank < nranks; rank++ {
		for _, imLeft := range []bool{true, false} {
			flag := PackMPIBcflag(rank, nranks, imLeft)
			r2, l2 := UnpackMPIBcflag(flag, nranks)
			if r2 != rank || l2 != imLeft {
				tst.Errorf("roundtrip failed: rank=%d imLeft=%v -> %d -> (%d,%v)", rank, imLeft, flag, r2, l2)
			}
		}
	}
}
