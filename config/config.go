// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the plain-Go, JSON-tagged configuration surface
// consumed by the solver front-end: convergence thresholds, Gauss-Newton
// regularization constants, line search selection, MDG-ICE face-selection
// threshold, and discretization switches. It intentionally has no notion of
// a scripting language; any such front end parses its own surface syntax
// and fills in a Config before handing it to disc/geosel/solver.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// LineSearchType enumerates the line search kinds named in spec.md §6.
// Only "none" and "corrigan" (backtracking) are implemented; "wolfe" and
// "cubic" are accepted by Unmarshal for compatibility with saved config
// files, but SetDefault never selects them and Validate rejects them (see
// DESIGN.md for why those two are unimplemented).
type LineSearchType string

const (
	LineSearchNone     LineSearchType = "none"
	LineSearchWolfe    LineSearchType = "wolfe"
	LineSearchCubic    LineSearchType = "cubic"
	LineSearchCorrigan LineSearchType = "corrigan"
)

// LineSearch holds the line-search sub-configuration of spec.md §6's
// `linesearch` block.
type LineSearch struct {
	Type      LineSearchType `json:"type"`
	KMax      int            `json:"kmax"`
	AlphaInit float64        `json:"alpha_initial"`
	AlphaMax  float64        `json:"alpha_max"`
	AlphaMin  float64        `json:"alpha_min"`
	C1        float64        `json:"c1"`
	C2        float64        `json:"c2"`
}

// SetDefault sets the no-op line search: a single full Newton step.
func (o *LineSearch) SetDefault() {
	o.Type = LineSearchNone
	o.KMax = 20
	o.AlphaInit = 1.0
	o.AlphaMax = 1.0
	o.AlphaMin = 1.0 / 1024
	o.C1 = 1e-4
	o.C2 = 0.9
}

// Regularization holds the Gauss-Newton/Levenberg-Marquardt constants of
// spec.md §6's `{lambda_u, lambda_lag, lambda_1, lambda_b, alpha, beta,
// J_min}`, defaulted from corrigan_lm.hpp's GNSubproblemCtx.
type Regularization struct {
	LambdaU   float64 `json:"lambda_u"`
	LambdaLag float64 `json:"lambda_lag"`
	Lambda1   float64 `json:"lambda_1"`
	LambdaB   float64 `json:"lambda_b"`
	Alpha     float64 `json:"alpha"`
	Beta      float64 `json:"beta"`
	JMin      float64 `json:"j_min"`
}

// SetDefault fills in the corrigan_lm.hpp constants.
func (o *Regularization) SetDefault() {
	o.LambdaU = 1e-7
	o.LambdaLag = 1e-5
	o.Lambda1 = 1e-3
	o.LambdaB = 1e-2
	o.Alpha = -1
	o.Beta = 3
	o.JMin = 1e-10
}

// SolverConfig holds the combined-residual Gauss-Newton loop's tunables,
// spec.md §6's `{tau_abs, tau_rel, kmax}` plus the regularization and line
// search sub-blocks.
type SolverConfig struct {
	TauAbs float64 `json:"tau_abs"`
	TauRel float64 `json:"tau_rel"`
	KMax   int     `json:"kmax"`

	Reg        Regularization `json:"regularization"`
	LineSearch LineSearch     `json:"linesearch"`
}

// SetDefault fills in the convergence defaults, the same values
// solver.NewGaussNewton puts into its ConvergenceCriteria.
func (o *SolverConfig) SetDefault() {
	o.TauAbs = 1e-10
	o.TauRel = 1e-8
	o.KMax = 50
	o.Reg.SetDefault()
	o.LineSearch.SetDefault()
}

// DiscConfig holds the discretization-level switches of spec.md §6's
// `{interior_penalty, sigma_ic}`, plus the MDG-ICE face-selection threshold.
type DiscConfig struct {
	InteriorPenalty      bool    `json:"interior_penalty"`
	SigmaIC              float64 `json:"sigma_ic"`
	ICSelectionThreshold float64 `json:"ic_selection_threshold"`
}

// SetDefault turns interior penalty off and sets a small selection
// threshold (an interior trace is a geometry-selection candidate once its
// interface-conservation residual norm reaches it).
func (o *DiscConfig) SetDefault() {
	o.InteriorPenalty = false
	o.SigmaIC = 0
	o.ICSelectionThreshold = 1e-6
}

// Config is the top-level, pure-Go configuration struct: no dependency on
// any scripting surface, loaded with encoding/json the way inp.Simulation
// is loaded from a .sim file.
type Config struct {
	Desc   string       `json:"desc"`
	Solver SolverConfig `json:"solver"`
	Disc   DiscConfig   `json:"disc"`
}

// NewDefault returns a Config with every sub-block's SetDefault applied,
// mirroring inp.ReadSim's "set default values" step before unmarshalling.
func NewDefault() *Config {
	c := &Config{}
	c.Solver.SetDefault()
	c.Disc.SetDefault()
	return c
}

// Load reads and unmarshals a JSON config file, starting from the defaults
// so a file only needs to override what it changes.
func Load(path string) (*Config, error) {
	c := NewDefault()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("config.Load: cannot read %q: %v", path, err)
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, chk.Err("config.Load: cannot unmarshal %q: %v", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports configuration errors, spec.md §7's "Configuration
// errors ... reported before any assembly; fatal" category.
func (c *Config) Validate() error {
	if c.Solver.TauAbs < 0 || c.Solver.TauRel < 0 {
		return chk.Err("config: tau_abs and tau_rel must be non-negative")
	}
	if c.Solver.KMax <= 0 {
		return chk.Err("config: solver.kmax must be positive")
	}
	switch c.Solver.LineSearch.Type {
	case LineSearchNone, LineSearchCorrigan:
	case LineSearchWolfe, LineSearchCubic:
		return chk.Err("config: linesearch type %q is not implemented", c.Solver.LineSearch.Type)
	default:
		return chk.Err("config: unknown linesearch type %q", c.Solver.LineSearch.Type)
	}
	if c.Disc.ICSelectionThreshold < 0 {
		return chk.Err("config: disc.ic_selection_threshold must be non-negative")
	}
	return nil
}
