// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disc

import (
	"github.com/gabsillis/ICEicle/fespace"
	"github.com/gabsillis/ICEicle/geometry"
)

// ColorSet groups trace indices into colors such that no two traces in the
// same color target the same element (elL or elR), so a color's traces can
// scatter their residual contributions from concurrent goroutines without a
// data race on any one element's residual slice. This is the direct analogue
// of the simple coloring of the face graph the discretization needs for
// intra-rank parallel assembly.
type ColorSet struct {
	Colors [][]int // Colors[c] is a list of trace indices into fs.Traces
}

// BuildColorSet greedily colors fs.Traces by the elements they touch: trace
// t is assigned the lowest color not already used by another trace sharing
// its elL or elR.
func BuildColorSet(fs *fespace.FESpace) *ColorSet {
	usedColors := make(map[*geometry.Element]map[int]bool)

	colorOf := make([]int, len(fs.Traces))
	for i, t := range fs.Traces {
		blocked := map[int]bool{}
		for c := range usedColors[t.Face.ElemL] {
			blocked[c] = true
		}
		for c := range usedColors[t.Face.ElemR] {
			blocked[c] = true
		}
		c := 0
		for blocked[c] {
			c++
		}
		colorOf[i] = c

		if usedColors[t.Face.ElemL] == nil {
			usedColors[t.Face.ElemL] = map[int]bool{}
		}
		usedColors[t.Face.ElemL][c] = true
		if usedColors[t.Face.ElemR] == nil {
			usedColors[t.Face.ElemR] = map[int]bool{}
		}
		usedColors[t.Face.ElemR][c] = true
	}

	ncolors := 0
	for _, c := range colorOf {
		if c+1 > ncolors {
			ncolors = c + 1
		}
	}
	cs := &ColorSet{Colors: make([][]int, ncolors)}
	for i, c := range colorOf {
		cs.Colors[c] = append(cs.Colors[c], i)
	}
	return cs
}
