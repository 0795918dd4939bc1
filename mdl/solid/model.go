// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/lobatto/gofes/scalar"
)

// Model defines the construct-by-name interface for constitutive models
type Model interface {
	Init(prms dbf.Params) error // initialises the model from parameters
}

// New returns a new constitutive model from the factory
func New(name string) (Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available constitutive models; name => allocator
var allocators = map[string]func() Model{}

func init() {
	allocators["plane-stress"] = func() Model { return new(PlaneStress) }
}

// Init initialises a plane-stress model from parameters. In addition to the
// material properties, "t" sets the thickness (default 1) and "tNum" its
// design variable number (default -1, disabled)
func (o *PlaneStress) Init(prms dbf.Params) error {
	prp, err := NewProperties(prms)
	if err != nil {
		return err
	}
	t, tNum := 1.0, -1.0
	if p := prms.Find("t"); p != nil {
		t = p.V
	}
	if p := prms.Find("tNum"); p != nil {
		tNum = p.V
	}
	if t <= 0 {
		return chk.Err("invalid property: thickness t=%g must be positive", t)
	}
	o.prp = prp
	o.t = scalar.FromFloat(t)
	o.tNum = int(tNum)
	return nil
}
