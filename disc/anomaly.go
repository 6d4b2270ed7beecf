// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disc assembles the DDG/DDGIC residual and its finite-difference
// Jacobian over a fespace.FESpace, dispatching boundary traces by
// geometry.BCType the way ele/naturalbcs.go dispatches natural boundary
// conditions, and the domain/trace integrals the way
// ele/diffusion/diffusion.go's AddToRhs/AddToKb build an element-local
// residual and stiffness.
package disc

import "sync"

// Anomaly records one recoverable error encountered during assembly: a
// degenerate Jacobian, a BC implementation that could not be applied, or
// similar. ElemID/FaceID are -1 when not applicable.
type Anomaly struct {
	Kind   string
	ElemID int
	FaceID int
	Err    error
}

// AnomalyLog is a mutex-guarded sink for Anomalies accumulated during one
// assembly pass. Replacing gofem's package-level panic/recover boundary (see
// ele/factory.go's chk.Panic-on-duplicate idiom) with an explicit,
// per-assembly value lets a caller finish the pass and report every anomaly
// at once instead of aborting at the first one.
type AnomalyLog struct {
	mu      sync.Mutex
	entries []Anomaly
}

// NewAnomalyLog returns an empty log.
func NewAnomalyLog() *AnomalyLog {
	return &AnomalyLog{}
}

// Add appends an anomaly, safe for concurrent callers (one per assembly
// color/goroutine).
func (l *AnomalyLog) Add(a Anomaly) {
	l.mu.Lock()
	l.entries = append(l.entries, a)
	l.mu.Unlock()
}

// Empty reports whether no anomalies have been recorded.
func (l *AnomalyLog) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries) == 0
}

// Drain returns and clears all recorded anomalies.
func (l *AnomalyLog) Drain() []Anomaly {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.entries
	l.entries = nil
	return out
}
