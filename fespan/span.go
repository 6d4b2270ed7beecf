// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fespan

// Span pairs a Layout with a location array (the teacher's Umap: element-
// local dof index -> global dof index) so an element can gather its own
// data out of, and scatter its own contributions into, the global vector.
type Span struct {
	Layout *Layout
	Umap   []int
}

// NewSpan builds a Span over a local layout sized len(umap) dofs.
func NewSpan(ncomp int, policy Policy, umap []int) *Span {
	return &Span{Layout: NewLayout(len(umap), ncomp, policy), Umap: umap}
}

// ExtractElspan gathers this span's element-local data out of a global flat
// vector addressed by globalLayout, mirroring ele/diffusion/diffusion.go's
// `sol.Psi[o.Umap[m]]` gather.
func (s *Span) ExtractElspan(global []float64, globalLayout *Layout) []float64 {
	local := make([]float64, s.Layout.Size())
	for i, gdof := range s.Umap {
		for c := 0; c < s.Layout.NComp; c++ {
			local[s.Layout.Index(i, c)] = global[globalLayout.Index(gdof, c)]
		}
	}
	return local
}

// ScatterElspan adds this span's local residual/Jacobian-row contribution
// into the global flat vector, mirroring `fb[o.Umap[m]] -= ...`.
func (s *Span) ScatterElspan(local []float64, global []float64, globalLayout *Layout) {
	for i, gdof := range s.Umap {
		for c := 0; c < s.Layout.NComp; c++ {
			global[globalLayout.Index(gdof, c)] += local[s.Layout.Index(i, c)]
		}
	}
}

// ContractValues contracts a [nbasis] table of basis values against this
// span's local dof buffer, producing the field's [ncomp] value at the
// evaluation point the basis values were computed at.
func ContractValues(values []float64, local []float64, layout *Layout) []float64 {
	out := make([]float64, layout.NComp)
	for b, v := range values {
		for c := 0; c < layout.NComp; c++ {
			out[c] += v * local[layout.Index(b, c)]
		}
	}
	return out
}

// ContractGrad contracts a [nbasis][ndim] table of basis gradients against
// this span's local dof buffer, producing the field's [ncomp][ndim]
// physical-space gradient at the evaluation point.
func ContractGrad(grad [][]float64, local []float64, layout *Layout) [][]float64 {
	ndim := 0
	if len(grad) > 0 {
		ndim = len(grad[0])
	}
	out := make([][]float64, layout.NComp)
	for c := range out {
		out[c] = make([]float64, ndim)
	}
	for b := range grad {
		for c := 0; c < layout.NComp; c++ {
			coef := local[layout.Index(b, c)]
			for d := 0; d < ndim; d++ {
				out[c][d] += coef * grad[b][d]
			}
		}
	}
	return out
}

// ContractHess contracts a [nbasis][ndim][ndim] table of basis Hessians
// against this span's local dof buffer, producing the field's
// [ncomp][ndim][ndim] physical-space Hessian at the evaluation point (used
// by the DDG single-valued gradient's second-order correction term).
func ContractHess(hess [][][]float64, local []float64, layout *Layout) [][][]float64 {
	ndim := 0
	if len(hess) > 0 {
		ndim = len(hess[0])
	}
	out := make([][][]float64, layout.NComp)
	for c := range out {
		out[c] = make([][]float64, ndim)
		for i := range out[c] {
			out[c][i] = make([]float64, ndim)
		}
	}
	for b := range hess {
		for c := 0; c < layout.NComp; c++ {
			coef := local[layout.Index(b, c)]
			for i := 0; i < ndim; i++ {
				for j := 0; j < ndim; j++ {
					out[c][i][j] += coef * hess[b][i][j]
				}
			}
		}
	}
	return out
}
