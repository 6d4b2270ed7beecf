// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

// BCType enumerates the fixed set of boundary/face condition types a Face
// may carry.
type BCType int

const (
	INTERIOR BCType = iota
	PERIODIC
	PARALLEL_COM
	NEUMANN
	DIRICHLET
	EXTRAPOLATION
	RIEMANN
	NO_SLIP_ISOTHERMAL
	SLIP_WALL
	WALL_GENERAL
	INLET
	OUTLET
	SPACETIME_PAST
	SPACETIME_FUTURE
)

func (b BCType) String() string {
	names := [...]string{
		"interior", "periodic", "parallel_com", "neumann", "dirichlet",
		"extrapolation", "riemann", "no_slip_isothermal", "slip_wall",
		"wall_general", "inlet", "outlet", "spacetime_past", "spacetime_future",
	}
	if int(b) < 0 || int(b) >= len(names) {
		return "unknown"
	}
	return names[b]
}

// PackMPIBcflag encodes a PARALLEL_COM boundary's rank and side.
func PackMPIBcflag(rank, nranks int, imLeft bool) int {
	if imLeft {
		return rank
	}
	return rank + nranks
}

// UnpackMPIBcflag decodes a PARALLEL_COM bcflag into (rank, imLeft). nranks
// must be the same value used to encode it.
func UnpackMPIBcflag(bcflag, nranks int) (rank int, imLeft bool) {
	if bcflag < nranks {
		return bcflag, true
	}
	return bcflag - nranks, false
}
