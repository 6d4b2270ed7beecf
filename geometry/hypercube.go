// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

// NFacesHypercube returns the number of faces of an ndim-dimensional
// hypercube (2 per axis).
func NFacesHypercube(ndim int) int {
	if ndim == 0 {
		return 0
	}
	return 2 * ndim
}

// HypercubeFaceAxis decodes face_nr = 2*axis + side into its axis and side
// (side 0 => xi_axis = -1, side 1 => xi_axis = +1).
func HypercubeFaceAxis(faceNr int) (axis, side int) {
	return faceNr / 2, faceNr % 2
}

// remainingAxes returns the ndim-1 axes other than `axis`, in increasing order.
func remainingAxes(ndim, axis int) []int {
	out := make([]int, 0, ndim-1)
	for d := 0; d < ndim; d++ {
		if d != axis {
			out = append(out, d)
		}
	}
	return out
}

// orientationTransform returns the permutation and sign flips applied to a
// face-local reference coordinate for the given orientation integer. It
// covers the symmetry group of the (ndimFace)-cube reference domain for
// ndimFace in {0,1,2}, which covers all faces of hypercubes up to ndim=3.
func orientationTransform(ndimFace, orientation int) (perm []int, sign []float64) {
	switch ndimFace {
	case 0:
		return nil, nil
	case 1:
		switch orientation {
		case 0:
			return []int{0}, []float64{1}
		default: // 1: flip
			return []int{0}, []float64{-1}
		}
	case 2:
		// dihedral group of the square, 8 elements
		table := []struct {
			perm []int
			sign []float64
		}{
			{[]int{0, 1}, []float64{1, 1}},
			{[]int{0, 1}, []float64{-1, 1}},
			{[]int{0, 1}, []float64{1, -1}},
			{[]int{0, 1}, []float64{-1, -1}},
			{[]int{1, 0}, []float64{1, 1}},
			{[]int{1, 0}, []float64{-1, 1}},
			{[]int{1, 0}, []float64{1, -1}},
			{[]int{1, 0}, []float64{-1, -1}},
		}
		t := table[orientation%8]
		return t.perm, t.sign
	default:
		// higher-dimensional face symmetry groups are not required by this
		// spec (ndim<=3 hypercube meshes); fall back to identity.
		perm = make([]int, ndimFace)
		sign = make([]float64, ndimFace)
		for i := range perm {
			perm[i] = i
			sign[i] = 1
		}
		return
	}
}

// CornerOrientationApply maps a face-local corner index (bit d of corner
// selects side 0/1 along the d-th remaining axis) through the given
// orientation, returning the corner index it lands on. This is the discrete
// (vertex-matching) analogue of the continuous sFace transform applied by
// HypercubeEmbedFace/orientationTransform, used by mesh construction to
// determine a face's orientation integer from corner vertex correspondence.
func CornerOrientationApply(ndimFace, orientation, corner int) int {
	perm, sign := orientationTransform(ndimFace, orientation)
	if perm == nil {
		return corner
	}
	newCorner := 0
	for i := 0; i < ndimFace; i++ {
		bit := (corner >> uint(perm[i])) & 1
		coord := -1.0
		if bit == 1 {
			coord = 1.0
		}
		newCoord := sign[i] * coord
		newBit := 0
		if newCoord > 0 {
			newBit = 1
		}
		newCorner |= newBit << uint(i)
	}
	return newCorner
}

// NOrientations returns the number of distinct orientations recognized for
// an ndimFace-dimensional hypercube face (1, 2, or 8).
func NOrientations(ndimFace int) int {
	switch ndimFace {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 8
	}
}

// HypercubeEmbedFace maps a face-reference point sFace (length ndim-1) into
// the ndim-dimensional element reference domain, for the face identified by
// faceNr under the given orientation.
func HypercubeEmbedFace(ndim, faceNr, orientation int, sFace []float64) []float64 {
	axis, side := HypercubeFaceAxis(faceNr)
	xi := make([]float64, ndim)
	if side == 0 {
		xi[axis] = -1
	} else {
		xi[axis] = 1
	}
	others := remainingAxes(ndim, axis)
	ndimFace := len(others)
	perm, sign := orientationTransform(ndimFace, orientation)
	for i, d := range others {
		src := i
		if perm != nil {
			src = perm[i]
		}
		s := 1.0
		if sign != nil {
			s = sign[i]
		}
		xi[d] = s * sFace[src]
	}
	return xi
}

// HypercubeFaceNodes returns, for a tensor-product Lagrange element of
// order pn on an ndim-dimensional hypercube (local node numbering following
// basis.TensorBasis's lexicographic multi-index order), the local node
// indices lying on face faceNr, in the face's own lexicographic order over
// the remaining axes.
func HypercubeFaceNodes(ndim, pn, faceNr int) []int {
	axis, side := HypercubeFaceAxis(faceNr)
	fixed := 0
	if side == 1 {
		fixed = pn
	}
	nbasis1d := pn + 1
	others := remainingAxes(ndim, axis)
	nOnFace := 1
	for range others {
		nOnFace *= nbasis1d
	}
	stride := make([]int, ndim)
	s := 1
	for d := ndim - 1; d >= 0; d-- {
		stride[d] = s
		s *= nbasis1d
	}
	out := make([]int, nOnFace)
	alpha := make([]int, len(others))
	for k := 0; k < nOnFace; k++ {
		rem := k
		faceStride := 1
		faceStrides := make([]int, len(others))
		for i := len(others) - 1; i >= 0; i-- {
			faceStrides[i] = faceStride
			faceStride *= nbasis1d
		}
		for i := 0; i < len(others); i++ {
			alpha[i] = rem / faceStrides[i]
			rem -= alpha[i] * faceStrides[i]
		}
		idx := fixed * stride[axis]
		for i, d := range others {
			idx += alpha[i] * stride[d]
		}
		out[k] = idx
	}
	return out
}

// HypercubeVertexIndices returns the local node indices of the 2^ndim
// corner vertices of a tensor-product element of order pn, in the standard
// corner-enumeration order (bit b of the vertex index selects side 0/1 of
// axis b).
func HypercubeVertexIndices(ndim, pn int) []int {
	nbasis1d := pn + 1
	stride := make([]int, ndim)
	s := 1
	for d := ndim - 1; d >= 0; d-- {
		stride[d] = s
		s *= nbasis1d
	}
	nverts := 1 << uint(ndim)
	out := make([]int, nverts)
	for v := 0; v < nverts; v++ {
		idx := 0
		for d := 0; d < ndim; d++ {
			if v&(1<<uint(d)) != 0 {
				idx += pn * stride[d]
			}
		}
		out[v] = idx
	}
	return out
}
