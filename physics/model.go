// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Model is any physics fixture that can be parameterized from a material
// database and then used as (at least) a PhysicalFlux.
type Model interface {
	Init(ndim int, prms fun.Prms) error
}

// New allocates a registered model by name, mirroring
// mdl/diffusion/model.go's New/allocators idiom.
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'physics' database", name)
	}
	return allocator(), nil
}

var allocators = map[string]func() Model{}
