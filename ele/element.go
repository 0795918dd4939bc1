// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements element-local residuals, Jacobians and adjoint
// sensitivity products by combining a physics model with a basis
package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/lobatto/gofes/scalar"
	"github.com/lobatto/gofes/shp"
)

// limits
const (
	MaxNodes = 64 // maximum number of nodes per element
	MaxVars  = 8  // maximum number of variables per node
)

// MatrixKind selects which element matrix GetMatrix assembles
type MatrixKind int

const (
	StiffnessMatrix MatrixKind = iota
	MassMatrix
	GeometricStiffnessMatrix
)

// String returns the name of the matrix kind
func (o MatrixKind) String() string {
	switch o {
	case StiffnessMatrix:
		return "stiffness"
	case MassMatrix:
		return "mass"
	case GeometricStiffnessMatrix:
		return "geometric-stiffness"
	}
	return "unknown"
}

// Constitutive defines the material capabilities the physics models draw
// on. mdl/solid.PlaneStress implements it; stresses and the thermal
// quantities are integrated through the thickness
type Constitutive interface {
	EvalStress(eps, sig []scalar.Scalar)
	EvalTangent(C [][]scalar.Scalar)
	EvalDensity() scalar.Scalar
	EvalHeatCapacity() scalar.Scalar
	EvalConductivity() scalar.Scalar
	ThermalExpansion() scalar.Scalar
	EvalThermalStrain(T scalar.Scalar, eps []scalar.Scalar)
	AddStressDVSens(scale scalar.Scalar, eps, psi, dfdx []scalar.Scalar)
	AddDensityDVSens(scale scalar.Scalar, dfdx []scalar.Scalar)
	AddHeatCapacityDVSens(scale scalar.Scalar, dfdx []scalar.Scalar)
	AddHeatFluxDVSens(scale scalar.Scalar, grad, psi, dfdx []scalar.Scalar)
	NumDesignVars() int
	DesignVarNums(elemIndex int) []int
	GetDesignVars(dvs []scalar.Scalar)
	SetDesignVars(dvs []scalar.Scalar)
}

// Model defines the weak-form integrand of a physics model at one
// quadrature point.
//
// Slot layouts, with v = NumVars():
//
//	u, ut, utt -- interpolated variables and time derivatives; length v
//	ux         -- spatial gradients; ux[2*l+a] = d(u_l)/d(x_a); length 2*v
//	ft         -- coefficients pairing with test values; length v
//	fx         -- coefficients pairing with test gradients; fx[2*k+a]; length 2*v
//	jac        -- d(coefficient)/d(state); rows 3*v with r = 3*k + {ft, fx0, fx1},
//	              columns 5*v with s = 5*l + {u, ut, utt, ux, uy}
//	mc         -- matrix coefficients; rows and columns 3*v with slots {u, ux, uy}
//	adj        -- contracted adjoint; adj[3*k+r] pairs with coefficient row r of
//	              variable k; length 3*v
//
// Models must not keep state between calls and must never discard imaginary
// parts when built with the complexstep tag
type Model interface {

	// description
	NumVars() int               // number of variables per node
	Constitutive() Constitutive // underlying constitutive model

	// weak form
	EvalWeakRes(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar)
	EvalWeakJac(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar, jac [][]scalar.Scalar)
	EvalMatCoefs(kind MatrixKind, tm float64, xq, u, ux []scalar.Scalar, mc [][]scalar.Scalar) error

	// design variable sensitivities
	AddWeakResDVSens(scale scalar.Scalar, tm float64, xq, u, ut, utt, ux, adj, dfdx []scalar.Scalar)
	AddMatCoefsDVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdx []scalar.Scalar) error
	EvalMatCoefsSVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdz []scalar.Scalar) error

	// design variable plumbing
	NumDesignVars() int
	DesignVarNums(elemIndex int) []int
	GetDesignVars(dvs []scalar.Scalar)
	SetDesignVars(dvs []scalar.Scalar)
}

// Element defines the element-local evaluation interface. Coordinates use 3
// components per node (z is carried but unused by 2D elements); variables use
// NumVars components per node. Add* methods accumulate into their outputs;
// GetMatrix overwrites. Oversized buffers are accepted
type Element interface {
	NumNodes() int
	NumVars() int
	NumDesignVars() int
	DesignVarNums(elemIndex int) []int
	GetDesignVars(dvs []scalar.Scalar)
	SetDesignVars(dvs []scalar.Scalar)
	AddResidual(elemIndex int, tm float64, xpts, vars, dvars, ddvars, res []scalar.Scalar) error
	AddJacobian(elemIndex int, tm float64, alpha, beta, gamma scalar.Scalar, xpts, vars, dvars, ddvars, res []scalar.Scalar, jac [][]scalar.Scalar) error
	GetMatrix(kind MatrixKind, elemIndex int, tm float64, xpts, vars []scalar.Scalar, mat [][]scalar.Scalar) error
	AddAdjResProduct(elemIndex int, tm float64, scale scalar.Scalar, psi, xpts, vars, dvars, ddvars, dfdx []scalar.Scalar) error
	AddAdjResXptProduct(elemIndex int, tm float64, scale scalar.Scalar, psi, xpts, vars, dvars, ddvars, dfdXpts []scalar.Scalar) error
	AddMatDVSens(kind MatrixKind, elemIndex int, tm float64, scale scalar.Scalar, psi1, psi2, xpts, vars, dfdx []scalar.Scalar) error
	AddMatSVSens(kind MatrixKind, elemIndex int, tm float64, scale scalar.Scalar, psi1, psi2, xpts, vars, dfdu []scalar.Scalar) error
}

// checkLen checks a buffer length; longer buffers are fine
func checkLen(name string, n, min int) error {
	if n < min {
		return chk.Err("dimension mismatch: len(%s)=%d must be at least %d", name, n, min)
	}
	return nil
}

// checkBasisFit checks that a basis fits within the element limits
func checkBasisFit(b shp.Basis, nvars int) error {
	if b.NumNodes() > MaxNodes {
		return chk.Err("dimension mismatch: basis %q has %d nodes; limit is %d", b.Type(), b.NumNodes(), MaxNodes)
	}
	if nvars > MaxVars {
		return chk.Err("dimension mismatch: %d variables per node; limit is %d", nvars, MaxVars)
	}
	return nil
}
