// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "math"

// Face owns the two adjacent geometric elements (or the same element twice
// for a boundary face), the packed face_info for each side, and the
// boundary condition tag. For a boundary face, ElemR==ElemL and
// FaceInfoR==0, per spec.md §3.
type Face struct {
	ElemL, ElemR       *Element
	FaceInfoL, FaceInfoR int
	BCType             BCType
	BCFlag             int
}

// IsBoundary reports whether this face has no distinct right element.
func (f *Face) IsBoundary() bool {
	return f.ElemR == f.ElemL
}

// NdimFace returns the dimension of the face's own reference domain.
func (f *Face) NdimFace() int {
	return f.ElemL.Ndim - 1
}

// embed maps a face-reference point into the given element's reference
// domain, given that element's packed face_info.
func embed(el *Element, faceInfo int, sFace []float64) []float64 {
	faceNr, orientation := UnpackFaceInfo(faceInfo)
	switch el.Domain {
	case HYPERCUBE:
		return HypercubeEmbedFace(el.Ndim, faceNr, orientation, sFace)
	default:
		// SIMPLEX faces: affine, orientation-insensitive embedding (the
		// mesh construction in this spec only needs hypercube traces —
		// see DESIGN.md).
		return simplexEmbedFace(el.Ndim, faceNr, sFace)
	}
}

func simplexEmbedFace(ndim, faceNr int, sFace []float64) []float64 {
	// face `faceNr` is the simplex face opposite vertex `faceNr`; build a
	// point on that face via the barycentric coords of the ndim-1 simplex
	// then lift into the ndim-dim reference simplex.
	lambdaFace := simplexBarycentric(ndim-1, sFace)
	xi := make([]float64, ndim)
	verts := simplexVertices(ndim)
	k := 0
	for v := 0; v <= ndim; v++ {
		if v == faceNr {
			continue
		}
		for d := 0; d < ndim; d++ {
			xi[d] += lambdaFace[k] * verts[v][d]
		}
		k++
	}
	return xi
}

func simplexVertices(ndim int) [][]float64 {
	verts := make([][]float64, ndim+1)
	verts[0] = make([]float64, ndim)
	for v := 1; v <= ndim; v++ {
		verts[v] = make([]float64, ndim)
		verts[v][v-1] = 1
	}
	return verts
}

// TransformXiL embeds the face-reference point into elemL's reference domain.
func (f *Face) TransformXiL(sFace []float64) []float64 {
	return embed(f.ElemL, f.FaceInfoL, sFace)
}

// TransformXiR embeds the face-reference point into elemR's reference
// domain, applying the orientation correction carried by FaceInfoR.
func (f *Face) TransformXiR(sFace []float64) []float64 {
	return embed(f.ElemR, f.FaceInfoR, sFace)
}

// Transform returns the physical point corresponding to a face-reference
// point, computed through elemL's transform.
func (f *Face) Transform(sFace []float64) []float64 {
	return f.ElemL.Transform(f.TransformXiL(sFace))
}

// Jacobian returns the ndim x (ndim-1) tangent frame dx/ds at the face
// reference point sFace, obtained by the chain rule through elemL's
// element Jacobian and the face embedding's own (affine) Jacobian.
func (f *Face) Jacobian(sFace []float64) [][]float64 {
	xiL := f.TransformXiL(sFace)
	Jel := f.ElemL.Jacobian(xiL) // ndim x ndim, dx/dxi
	dxids := faceEmbedJacobian(f.ElemL, f.FaceInfoL)
	ndim := f.ElemL.Ndim
	ndimFace := ndim - 1
	Jf := make([][]float64, ndim)
	for i := 0; i < ndim; i++ {
		Jf[i] = make([]float64, ndimFace)
		for a := 0; a < ndimFace; a++ {
			for j := 0; j < ndim; j++ {
				Jf[i][a] += Jel[i][j] * dxids[j][a]
			}
		}
	}
	return Jf
}

// faceEmbedJacobian returns d(xi_elem)/d(s_face) for the affine face
// embedding (constant for hypercube faces; for simplex faces it is affine
// too since the barycentric face map is linear in sFace).
func faceEmbedJacobian(el *Element, faceInfo int) [][]float64 {
	faceNr, orientation := UnpackFaceInfo(faceInfo)
	ndim := el.Ndim
	ndimFace := ndim - 1
	out := make([][]float64, ndim)
	for i := range out {
		out[i] = make([]float64, ndimFace)
	}
	switch el.Domain {
	case HYPERCUBE:
		axis, _ := HypercubeFaceAxis(faceNr)
		others := remainingAxes(ndim, axis)
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
			out[d][src] = s
		}
	default:
		verts := simplexVertices(ndim)
		k := 0
		dlambda := simplexBarycentricDeriv(ndimFace)
		for v := 0; v <= ndim; v++ {
			if v == faceNr {
				continue
			}
			for d := 0; d < ndim; d++ {
				for a := 0; a < ndimFace; a++ {
					out[d][a] += dlambda[k][a] * verts[v][d]
				}
			}
			k++
		}
	}
	return out
}

// RootDet returns the Riemannian root determinant sqrt(det(J^T J)), the
// surface measure scale factor at the face reference point.
func (f *Face) RootDet(sFace []float64) float64 {
	J := f.Jacobian(sFace)
	ndim := len(J)
	ndimFace := 0
	if ndim > 0 {
		ndimFace = len(J[0])
	}
	G := make([][]float64, ndimFace)
	for a := range G {
		G[a] = make([]float64, ndimFace)
		for b := range G[a] {
			for i := 0; i < ndim; i++ {
				G[a][b] += J[i][a] * J[i][b]
			}
		}
	}
	return math.Sqrt(detSmall(G))
}

// Normal returns the (non-unit) outward normal vector at sFace, obtained
// from the tangent frame by the generalized cross product, oriented so
// that n.(cL - xGamma) < 0 (property 6). The returned vector has magnitude
// equal to RootDet(sFace).
func (f *Face) Normal(sFace []float64) []float64 {
	J := f.Jacobian(sFace) // ndim x (ndim-1)
	n := generalizedCross(J)
	xGamma := f.Transform(sFace)
	cL := f.ElemL.PhysicalCentroid()
	// orient outward from elemL
	dot := 0.0
	for i := range n {
		dot += n[i] * (cL[i] - xGamma[i])
	}
	if dot > 0 {
		for i := range n {
			n[i] = -n[i]
		}
	}
	return n
}

// generalizedCross computes a vector orthogonal to every column of the
// ndim x (ndim-1) tangent matrix J, with magnitude sqrt(det(J^T J))
// (consistent with RootDet), using the cofactor expansion for ndim<=3 and
// the wedge-of-columns construction in general.
func generalizedCross(J [][]float64) []float64 {
	ndim := len(J)
	switch ndim {
	case 1:
		return []float64{1}
	case 2:
		return []float64{J[1][0], -J[0][0]}
	case 3:
		a := []float64{J[0][0], J[1][0], J[2][0]}
		b := []float64{J[0][1], J[1][1], J[2][1]}
		return []float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}
	default:
		// generic n-dim case via cofactor expansion along the missing column.
		n := make([]float64, ndim)
		for k := 0; k < ndim; k++ {
			minor := make([][]float64, ndim-1)
			r := 0
			for i := 0; i < ndim; i++ {
				if i == k {
					continue
				}
				minor[r] = J[i]
				r++
			}
			sign := 1.0
			if k%2 == 1 {
				sign = -1.0
			}
			n[k] = sign * detSmall(minor)
		}
		return n
	}
}

// detSmall computes the determinant of a small square matrix via Laplace
// expansion (sizes encountered here are <=3).
func detSmall(a [][]float64) float64 {
	n := len(a)
	switch n {
	case 0:
		return 1
	case 1:
		return a[0][0]
	case 2:
		return a[0][0]*a[1][1] - a[0][1]*a[1][0]
	case 3:
		return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
			a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
			a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	default:
		det := 0.0
		sign := 1.0
		for j := 0; j < n; j++ {
			minor := make([][]float64, n-1)
			for i := 1; i < n; i++ {
				row := make([]float64, 0, n-1)
				for k := 0; k < n; k++ {
					if k != j {
						row = append(row, a[i][k])
					}
				}
				minor[i-1] = row
			}
			det += sign * a[0][j] * detSmall(minor)
			sign = -sign
		}
		return det
	}
}
