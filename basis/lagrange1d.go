// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package basis implements the 1D nodal Lagrange interpolation and the
// tensor-product hypercube basis built from it.
package basis

// Lagrange1D holds the precomputed uniform nodes and barycentric weights
// for degree-Pn Lagrange interpolation on [-1,1].
type Lagrange1D struct {
	Pn      int       // polynomial order
	Nbasis  int        // Pn + 1
	XiNodes []float64 // uniform nodes in [-1,1]
	Wj      []float64 // barycentric weights
}

// NewLagrange1D builds the node/weight tables for order Pn.
func NewLagrange1D(pn int) *Lagrange1D {
	o := &Lagrange1D{Pn: pn, Nbasis: pn + 1}
	o.XiNodes = make([]float64, pn+1)
	if pn == 0 {
		o.XiNodes[0] = 0.0 // finite-volume case: recover the cell center
	} else {
		dx := 2.0 / float64(pn)
		o.XiNodes[0] = -1.0
		for j := 1; j < pn+1; j++ {
			o.XiNodes[j] = o.XiNodes[j-1] + dx
		}
	}
	o.Wj = make([]float64, pn+1)
	for j := 0; j < pn+1; j++ {
		w := 1.0
		for k := 0; k < pn+1; k++ {
			if k != j {
				w *= o.XiNodes[j] - o.XiNodes[k]
			}
		}
		o.Wj[j] = 1.0 / w
	}
	return o
}

// pivot finds the index k of the node nearest xi using the bisector test,
// and returns lskip = the product of (xi - xi_i) over every node except k,
// and lprod = lskip * (xi - xi_k) (the full nodal product).
func (o *Lagrange1D) pivot(xi float64) (k int, lskip, lprod float64) {
	lskip = 1.0
	for k = 0; k < o.Pn; k++ {
		if xi >= (o.XiNodes[k]+o.XiNodes[k+1])/2 {
			lskip *= xi - o.XiNodes[k]
		} else {
			break
		}
	}
	for i := k + 1; i < o.Pn+1; i++ {
		lskip *= xi - o.XiNodes[i]
	}
	lprod = lskip * (xi - o.XiNodes[k])
	return
}

// EvalAll fills Nj[0..Pn] with the value of every Lagrange basis function
// at xi, using the second barycentric form. len(Nj) must be Pn+1.
func (o *Lagrange1D) EvalAll(xi float64, Nj []float64) {
	switch o.Pn {
	case 0:
		Nj[0] = 1.0
		return
	case 1:
		Nj[0] = 0.5 * (1 - xi)
		Nj[1] = 1.0 - Nj[0]
		return
	}
	k, lskip, lprod := o.pivot(xi)
	var j int
	for j = 0; j < k; j++ {
		Nj[j] = lprod * o.Wj[j] / (xi - o.XiNodes[j])
	}
	Nj[k] = lskip * o.Wj[k]
	for j = k + 1; j < o.Pn+1; j++ {
		Nj[j] = lprod * o.Wj[j] / (xi - o.XiNodes[j])
	}
}

// DerivAll fills Nj and dNj with the value and first derivative of every
// Lagrange basis function at xi.
func (o *Lagrange1D) DerivAll(xi float64, Nj, dNj []float64) {
	switch o.Pn {
	case 0:
		Nj[0] = 1.0
		dNj[0] = 0.0
		return
	case 1:
		Nj[0] = 0.5 * (1 - xi)
		Nj[1] = 1.0 - Nj[0]
		dNj[0] = -0.5
		dNj[1] = 0.5
		return
	}
	k, lskip, lprod := o.pivot(xi)

	s := 0.0
	var j int
	for j = 0; j < k; j++ {
		invDiff := 1.0 / (xi - o.XiNodes[j])
		s += invDiff
		Nj[j] = lprod * invDiff * o.Wj[j]
	}
	Nj[k] = lskip * o.Wj[k]
	for j = k + 1; j < o.Pn+1; j++ {
		invDiff := 1.0 / (xi - o.XiNodes[j])
		s += invDiff
		Nj[j] = lprod * invDiff * o.Wj[j]
	}

	lprime := lprod*s + lskip

	for j = 0; j < k; j++ {
		dNj[j] = (lprime*o.Wj[j] - Nj[j]) / (xi - o.XiNodes[j])
	}
	dNj[k] = s * Nj[k]
	for j = k + 1; j < o.Pn+1; j++ {
		dNj[j] = (lprime*o.Wj[j] - Nj[j]) / (xi - o.XiNodes[j])
	}
}

// D2All fills Nj, dNj and d2Nj with the value, first and second derivative
// of every Lagrange basis function at xi.
//
// The second derivative is obtained by differentiating the nodal product
// L_j(x) = wj * prod_{k!=j}(x-xk) twice:
//
//	L_j''(x) = wj * sum_{k!=j} sum_{m!=j,k} prod_{l!=j,k,m} (x-xl)
//
// which has no division and so stays finite at the nodes themselves (trace
// points at xi=+-1 and the midpoint of odd Gauss rules coincide with nodes).
func (o *Lagrange1D) D2All(xi float64, Nj, dNj, d2Nj []float64) {
	o.DerivAll(xi, Nj, dNj)
	if o.Pn == 0 {
		d2Nj[0] = 0.0
		return
	}
	for j := 0; j < o.Pn+1; j++ {
		v := 0.0
		for k := 0; k < o.Pn+1; k++ {
			for m := 0; m < o.Pn+1; m++ {
				if k == j || m == j || m == k {
					continue
				}
				p := 1.0
				for l := 0; l < o.Pn+1; l++ {
					if l != j && l != k && l != m {
						p *= xi - o.XiNodes[l]
					}
				}
				v += p
			}
		}
		d2Nj[j] = o.Wj[j] * v
	}
}
