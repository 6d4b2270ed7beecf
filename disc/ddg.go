// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import "math"

// machEps mirrors std::numeric_limits<T>::epsilon() used to floor |h_ddg|
// away from zero without flipping its sign.
const machEps = 2.220446049250313e-16

// signedFloor returns h with |h| floored at machEps, preserving sign.
func signedFloor(h float64) float64 {
	return math.Copysign(math.Max(math.Abs(h), machEps), h)
}

// ddgBetas returns the Danis & Yan (2023) DDG constants for a trace whose
// polynomial order is order (the max of the two adjacent elements' orders).
// interiorPenalty forces beta1 to zero, degrading DDG to the interior
// penalty method.
func ddgBetas(order int, interiorPenalty bool) (beta0, beta1 float64) {
	beta0 = math.Pow(float64(order+1), 2)
	beta1 = 1 / math.Max(float64(2*order*(order+1)), 1.0)
	if interiorPenalty {
		beta1 = 0
	}
	return
}

// ddgGradientTwoSided builds the single-valued gradient
//
//	(grad u)_Gamma = beta0*(uR-uL)/h * n + 0.5*(graduL+graduR) + beta1*h*((HessuR-HessuL).n)
//
// used by the interior-trace integral and the SPACETIME_PAST boundary
// branch (both have a genuine "R" state with its own gradient/Hessian).
func ddgGradientTwoSided(uL, uR []float64, graduL, graduR [][]float64, hessuL, hessuR [][][]float64, normal []float64, hddg, beta0, beta1 float64) [][]float64 {
	neq := len(uL)
	ndim := len(normal)
	out := make([][]float64, neq)
	for ieq := 0; ieq < neq; ieq++ {
		out[ieq] = make([]float64, ndim)
		jumpu := uR[ieq] - uL[ieq]
		for idim := 0; idim < ndim; idim++ {
			v := beta0*jumpu/hddg*normal[idim] + 0.5*(graduL[ieq][idim]+graduR[ieq][idim])
			if hessuL != nil && hessuR != nil {
				hessTerm := 0.0
				for jdim := 0; jdim < ndim; jdim++ {
					hessTerm += (hessuR[ieq][jdim][idim] - hessuL[ieq][jdim][idim]) * normal[jdim]
				}
				v += beta1 * hddg * hessTerm
			}
			out[ieq][idim] = v
		}
	}
	return out
}

// ddgGradientOneSided builds the single-valued gradient used by boundary
// branches that only have the interior element's own gradient available
// (Dirichlet, SPACETIME_PAST-less general BC): no Hessian correction term,
// and the average-gradient coefficient on graduL is 1 (not 0.5), matching
// the boundary branch of the formula.
func ddgGradientOneSided(uL, uR []float64, graduL [][]float64, normal []float64, hddg, beta0 float64) [][]float64 {
	neq := len(uL)
	ndim := len(normal)
	out := make([][]float64, neq)
	for ieq := 0; ieq < neq; ieq++ {
		out[ieq] = make([]float64, ndim)
		jumpu := uR[ieq] - uL[ieq]
		for idim := 0; idim < ndim; idim++ {
			out[ieq][idim] = beta0*jumpu/hddg*normal[idim] + graduL[ieq][idim]
		}
	}
	return out
}

// uAvg returns 0.5*(uL+uR).
func uAvg(uL, uR []float64) []float64 {
	out := make([]float64, len(uL))
	for i := range out {
		out[i] = 0.5 * (uL[i] + uR[i])
	}
	return out
}

// icCorrectionScalar computes, for one (itest, ieq) pair, the DDGIC
// correction contribution
//
//	sigma_ic * sum_{kdim,req,sdim} G[ieq][kdim][req][sdim] * n[kdim] * jumpuR[req] * scale * gradTest[sdim]
//
// scale is 0.5 on an interior trace (the two-sided average-gradient
// operator) or 1 on a boundary trace (one-sided).
func icCorrectionScalar(ieq int, G [][][][]float64, normal, jumpuR, gradTest []float64, scale float64) float64 {
	ndim := len(normal)
	neq := len(jumpuR)
	v := 0.0
	for kdim := 0; kdim < ndim; kdim++ {
		nk := normal[kdim]
		if nk == 0 {
			continue
		}
		for req := 0; req < neq; req++ {
			jr := jumpuR[req]
			if jr == 0 {
				continue
			}
			for sdim := 0; sdim < ndim; sdim++ {
				v += G[ieq][kdim][req][sdim] * nk * jr * scale * gradTest[sdim]
			}
		}
	}
	return v
}
