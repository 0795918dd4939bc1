// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/lobatto/gofes/scalar"
)

// InertialForce decorates a physics model with a constant body force from a
// gravity vector. Only the load term of the residual survives; the state
// Jacobian and all matrix coefficients vanish, while the design variable
// sensitivity of the load keeps flowing through the constitutive model
type InertialForce struct {
	base Model
	g    []float64
}

// NewInertialForce returns a new inertial force model wrapping base
func NewInertialForce(base Model, g []float64) *InertialForce {
	return &InertialForce{base: base, g: g}
}

// NumVars returns the number of variables per node
func (o *InertialForce) NumVars() int { return o.base.NumVars() }

// Constitutive returns the underlying constitutive model
func (o *InertialForce) Constitutive() Constitutive { return o.base.Constitutive() }

// EvalWeakRes computes the load coefficients @ a quadrature point
func (o *InertialForce) EvalWeakRes(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar) {
	rhot := o.base.Constitutive().EvalDensity()
	for k := 0; k < len(o.g); k++ {
		ft[k] = -rhot * scalar.FromFloat(o.g[k])
	}
}

// EvalWeakJac computes the load coefficients; the state Jacobian is zero
func (o *InertialForce) EvalWeakJac(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar, jac [][]scalar.Scalar) {
	o.EvalWeakRes(tm, xq, u, ut, utt, ux, ft, fx)
}

// EvalMatCoefs leaves all matrix coefficients zero
func (o *InertialForce) EvalMatCoefs(kind MatrixKind, tm float64, xq, u, ux []scalar.Scalar, mc [][]scalar.Scalar) error {
	return nil
}

// AddWeakResDVSens adds the design variable sensitivity of the contracted
// load integrand
func (o *InertialForce) AddWeakResDVSens(scale scalar.Scalar, tm float64, xq, u, ut, utt, ux, adj, dfdx []scalar.Scalar) {
	var sum scalar.Scalar
	for k := 0; k < len(o.g); k++ {
		sum += scalar.FromFloat(o.g[k]) * adj[3*k]
	}
	o.base.Constitutive().AddDensityDVSens(-scale*sum, dfdx)
}

// AddMatCoefsDVSens has nothing to add; all matrix coefficients are zero
func (o *InertialForce) AddMatCoefsDVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdx []scalar.Scalar) error {
	return nil
}

// EvalMatCoefsSVSens has nothing to add; all matrix coefficients are zero
func (o *InertialForce) EvalMatCoefsSVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdz []scalar.Scalar) error {
	return nil
}

// NumDesignVars returns the number of design variables
func (o *InertialForce) NumDesignVars() int { return o.base.NumDesignVars() }

// DesignVarNums returns the design variable numbers
func (o *InertialForce) DesignVarNums(elemIndex int) []int { return o.base.DesignVarNums(elemIndex) }

// GetDesignVars retrieves the design variable values
func (o *InertialForce) GetDesignVars(dvs []scalar.Scalar) { o.base.GetDesignVars(dvs) }

// SetDesignVars updates the design variable values
func (o *InertialForce) SetDesignVars(dvs []scalar.Scalar) { o.base.SetDesignVars(dvs) }
