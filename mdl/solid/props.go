// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements constitutive models mapping material design
// variables and strain state to stress, stiffness, mass and failure data
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Properties holds isotropic material properties
type Properties struct {
	Rho   float64 // density
	Cp    float64 // specific heat
	E     float64 // Young's modulus
	Nu    float64 // Poisson's ratio
	Ys    float64 // yield stress
	Alpha float64 // coefficient of thermal expansion
	Kappa float64 // thermal conductivity
}

// NewProperties builds material properties from parameters and validates
// them. Malformed input fails here, never later as a NaN
func NewProperties(prms dbf.Params) (*Properties, error) {
	var o Properties
	for _, p := range prms {
		switch p.N {
		case "rho":
			o.Rho = p.V
		case "cp":
			o.Cp = p.V
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "ys":
			o.Ys = p.V
		case "alpha":
			o.Alpha = p.V
		case "kappa":
			o.Kappa = p.V
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks the properties
func (o *Properties) Validate() error {
	if o.Rho <= 0 {
		return chk.Err("invalid property: rho=%g must be positive", o.Rho)
	}
	if o.E <= 0 {
		return chk.Err("invalid property: E=%g must be positive", o.E)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("invalid property: nu=%g must be within (-1, 0.5)", o.Nu)
	}
	if o.Ys <= 0 {
		return chk.Err("invalid property: ys=%g must be positive", o.Ys)
	}
	if o.Cp < 0 {
		return chk.Err("invalid property: cp=%g must be non-negative", o.Cp)
	}
	if o.Kappa < 0 {
		return chk.Err("invalid property: kappa=%g must be non-negative", o.Kappa)
	}
	return nil
}
