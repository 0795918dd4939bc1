// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"

	"github.com/lobatto/gofes/scalar"
)

// PlaneStress implements the plane-stress constitutive model with the
// membrane thickness as the (optional) design variable.
//
// Stress and strain use Voigt storage {xx, yy, xy} with engineering shear;
// all quantities are integrated through the thickness, i.e. stress,
// density, heat capacity and heat flux carry a factor t
type PlaneStress struct {
	prp  *Properties   // material properties
	t    scalar.Scalar // thickness
	tNum int           // design variable number of t; -1 disables
}

// NewPlaneStress returns a new plane-stress constitutive model
func NewPlaneStress(prp *Properties, t float64, tNum int) (*PlaneStress, error) {
	if t <= 0 {
		return nil, chk.Err("invalid property: thickness t=%g must be positive", t)
	}
	return &PlaneStress{prp: prp, t: scalar.FromFloat(t), tNum: tNum}, nil
}

// Properties returns the material properties
func (o *PlaneStress) Properties() *Properties { return o.prp }

// design variables /////////////////////////////////////////////////////////

// NumDesignVars returns the number of design variables
func (o *PlaneStress) NumDesignVars() int {
	if o.tNum >= 0 {
		return 1
	}
	return 0
}

// DesignVarNums returns the design variable numbers
func (o *PlaneStress) DesignVarNums(elemIndex int) []int {
	if o.tNum >= 0 {
		return []int{o.tNum}
	}
	return nil
}

// GetDesignVars retrieves the design variable values
func (o *PlaneStress) GetDesignVars(dvs []scalar.Scalar) {
	if o.tNum >= 0 {
		dvs[0] = o.t
	}
}

// SetDesignVars updates the design variable values
func (o *PlaneStress) SetDesignVars(dvs []scalar.Scalar) {
	if o.tNum >= 0 {
		o.t = dvs[0]
	}
}

// density and thermal coefficients /////////////////////////////////////////

// EvalDensity returns the area density rho*t
func (o *PlaneStress) EvalDensity() scalar.Scalar {
	return o.t * scalar.FromFloat(o.prp.Rho)
}

// AddDensityDVSens adds scale * d(rho*t)/dx to dfdx
func (o *PlaneStress) AddDensityDVSens(scale scalar.Scalar, dfdx []scalar.Scalar) {
	if o.tNum >= 0 {
		dfdx[0] += scale * scalar.FromFloat(o.prp.Rho)
	}
}

// EvalHeatCapacity returns the area heat capacity rho*cp*t
func (o *PlaneStress) EvalHeatCapacity() scalar.Scalar {
	return o.t * scalar.FromFloat(o.prp.Rho*o.prp.Cp)
}

// AddHeatCapacityDVSens adds scale * d(rho*cp*t)/dx to dfdx
func (o *PlaneStress) AddHeatCapacityDVSens(scale scalar.Scalar, dfdx []scalar.Scalar) {
	if o.tNum >= 0 {
		dfdx[0] += scale * scalar.FromFloat(o.prp.Rho*o.prp.Cp)
	}
}

// EvalConductivity returns the through-thickness conductivity kappa*t
func (o *PlaneStress) EvalConductivity() scalar.Scalar {
	return o.t * scalar.FromFloat(o.prp.Kappa)
}

// AddHeatFluxDVSens adds scale * psi . d(kappa*t*grad)/dx to dfdx
func (o *PlaneStress) AddHeatFluxDVSens(scale scalar.Scalar, grad, psi []scalar.Scalar, dfdx []scalar.Scalar) {
	if o.tNum >= 0 {
		k := scalar.FromFloat(o.prp.Kappa)
		dfdx[0] += scale * k * (grad[0]*psi[0] + grad[1]*psi[1])
	}
}

// ThermalExpansion returns the coefficient of thermal expansion
func (o *PlaneStress) ThermalExpansion() scalar.Scalar {
	return scalar.FromFloat(o.prp.Alpha)
}

// EvalThermalStrain computes the isotropic thermal strain alpha*T*{1,1,0}
func (o *PlaneStress) EvalThermalStrain(T scalar.Scalar, eps []scalar.Scalar) {
	aT := scalar.FromFloat(o.prp.Alpha) * T
	eps[0], eps[1], eps[2] = aT, aT, 0
}

// stress and tangent ///////////////////////////////////////////////////////

// dbar computes the unit-thickness plane-stress moduli
//   d0 = E/(1-nu^2):  [ d0     nu*d0  0            ]
//                     [ nu*d0  d0     0            ]
//                     [ 0      0      d0*(1-nu)/2  ]
func (o *PlaneStress) dbar() (d0, d1, d2 float64) {
	d0 = o.prp.E / (1.0 - o.prp.Nu*o.prp.Nu)
	d1 = o.prp.Nu * d0
	d2 = 0.5 * (1.0 - o.prp.Nu) * d0
	return
}

// EvalTangent fills the 3x3 tangent stiffness C = t*Dbar
func (o *PlaneStress) EvalTangent(C [][]scalar.Scalar) {
	d0, d1, d2 := o.dbar()
	C[0][0], C[0][1], C[0][2] = o.t*scalar.FromFloat(d0), o.t*scalar.FromFloat(d1), 0
	C[1][0], C[1][1], C[1][2] = o.t*scalar.FromFloat(d1), o.t*scalar.FromFloat(d0), 0
	C[2][0], C[2][1], C[2][2] = 0, 0, o.t*scalar.FromFloat(d2)
}

// EvalStress computes sig = t*Dbar*eps
func (o *PlaneStress) EvalStress(eps, sig []scalar.Scalar) {
	d0, d1, d2 := o.dbar()
	sig[0] = o.t * (scalar.FromFloat(d0)*eps[0] + scalar.FromFloat(d1)*eps[1])
	sig[1] = o.t * (scalar.FromFloat(d1)*eps[0] + scalar.FromFloat(d0)*eps[1])
	sig[2] = o.t * scalar.FromFloat(d2) * eps[2]
}

// AddStressDVSens adds scale * psi . d(t*Dbar*eps)/dx to dfdx
func (o *PlaneStress) AddStressDVSens(scale scalar.Scalar, eps, psi []scalar.Scalar, dfdx []scalar.Scalar) {
	if o.tNum >= 0 {
		d0, d1, d2 := o.dbar()
		s0 := scalar.FromFloat(d0)*eps[0] + scalar.FromFloat(d1)*eps[1]
		s1 := scalar.FromFloat(d1)*eps[0] + scalar.FromFloat(d0)*eps[1]
		s2 := scalar.FromFloat(d2) * eps[2]
		dfdx[0] += scale * (psi[0]*s0 + psi[1]*s1 + psi[2]*s2)
	}
}

// failure //////////////////////////////////////////////////////////////////

// FailureIndex returns the von Mises stress of the unit-thickness stress
// state divided by the yield stress
func (o *PlaneStress) FailureIndex(eps []scalar.Scalar) scalar.Scalar {
	d0, d1, d2 := o.dbar()
	s0 := scalar.FromFloat(d0)*eps[0] + scalar.FromFloat(d1)*eps[1]
	s1 := scalar.FromFloat(d1)*eps[0] + scalar.FromFloat(d0)*eps[1]
	s2 := scalar.FromFloat(d2) * eps[2]
	vm := scalar.Sqrt(s0*s0 - s0*s1 + s1*s1 + 3.0*s2*s2)
	return vm / scalar.FromFloat(o.prp.Ys)
}
