// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/lobatto/gofes/scalar"
)

// LinearThermoelasticity2D implements plane linear thermoelasticity with
// three variables per node: two displacements and the temperature.
//
// The mechanical stress uses the thermal strain offset
// eps_mech = eps - alpha*T*{1,1,0}; the temperature equation carries the heat
// capacity term rho*cp*t*Tdot and Fourier conduction kappa*t*grad(T)
type LinearThermoelasticity2D struct {
	cst Constitutive
}

// NewLinearThermoelasticity2D returns a new linear thermoelasticity model
func NewLinearThermoelasticity2D(cst Constitutive) *LinearThermoelasticity2D {
	return &LinearThermoelasticity2D{cst: cst}
}

// NumVars returns the number of variables per node
func (o *LinearThermoelasticity2D) NumVars() int { return 3 }

// Constitutive returns the underlying constitutive model
func (o *LinearThermoelasticity2D) Constitutive() Constitutive { return o.cst }

// mechStrain computes the mechanical strain eps - alpha*T*{1,1,0}
func (o *LinearThermoelasticity2D) mechStrain(ux []scalar.Scalar, T scalar.Scalar, eps []scalar.Scalar) {
	strainFromGrad(ux, eps)
	var et [3]scalar.Scalar
	o.cst.EvalThermalStrain(T, et[:])
	eps[0] -= et[0]
	eps[1] -= et[1]
	eps[2] -= et[2]
}

// EvalWeakRes computes the weak-form coefficients @ a quadrature point
func (o *LinearThermoelasticity2D) EvalWeakRes(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar) {
	rhot := o.cst.EvalDensity()
	ft[0] = rhot * utt[0]
	ft[1] = rhot * utt[1]
	ft[2] = o.cst.EvalHeatCapacity() * ut[2]
	var eps, sig [3]scalar.Scalar
	o.mechStrain(ux, u[2], eps[:])
	o.cst.EvalStress(eps[:], sig[:])
	fx[0], fx[1] = sig[0], sig[2]
	fx[2], fx[3] = sig[2], sig[1]
	kt := o.cst.EvalConductivity()
	fx[4] = kt * ux[4]
	fx[5] = kt * ux[5]
}

// EvalWeakJac computes the weak-form coefficients and their state derivatives
func (o *LinearThermoelasticity2D) EvalWeakJac(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar, jac [][]scalar.Scalar) {
	o.EvalWeakRes(tm, xq, u, ut, utt, ux, ft, fx)
	rhot := o.cst.EvalDensity()
	alpha := o.cst.ThermalExpansion()
	C := tangent3(o.cst)
	jac[0][2] = rhot
	jac[3][7] = rhot
	jac[6][11] = o.cst.EvalHeatCapacity()
	for k := 0; k < 2; k++ {
		for a := 0; a < 2; a++ {
			row := k*3 + 1 + a
			for l := 0; l < 2; l++ {
				for b := 0; b < 2; b++ {
					jac[row][l*5+3+b] = C[voigt[k][a]][voigt[l][b]]
				}
			}
			jac[row][10] = -alpha * (C[voigt[k][a]][0] + C[voigt[k][a]][1])
		}
	}
	kt := o.cst.EvalConductivity()
	jac[7][13] = kt
	jac[8][14] = kt
}

// EvalMatCoefs computes the matrix coefficients @ a quadrature point. The
// mass matrix carries the second time derivative block only, so the
// temperature rows stay empty
func (o *LinearThermoelasticity2D) EvalMatCoefs(kind MatrixKind, tm float64, xq, u, ux []scalar.Scalar, mc [][]scalar.Scalar) error {
	switch kind {

	case MassMatrix:
		rhot := o.cst.EvalDensity()
		mc[0][0] = rhot
		mc[3][3] = rhot

	case StiffnessMatrix:
		alpha := o.cst.ThermalExpansion()
		C := tangent3(o.cst)
		for k := 0; k < 2; k++ {
			for a := 0; a < 2; a++ {
				row := k*3 + 1 + a
				for l := 0; l < 2; l++ {
					for b := 0; b < 2; b++ {
						mc[row][l*3+1+b] = C[voigt[k][a]][voigt[l][b]]
					}
				}
				mc[row][6] = -alpha * (C[voigt[k][a]][0] + C[voigt[k][a]][1])
			}
		}
		kt := o.cst.EvalConductivity()
		mc[7][7] = kt
		mc[8][8] = kt

	case GeometricStiffnessMatrix:
		var eps, sig [3]scalar.Scalar
		o.mechStrain(ux, u[2], eps[:])
		o.cst.EvalStress(eps[:], sig[:])
		smat := [2][2]scalar.Scalar{{sig[0], sig[2]}, {sig[2], sig[1]}}
		for k := 0; k < 2; k++ {
			for m := 0; m < 2; m++ {
				for n := 0; n < 2; n++ {
					mc[k*3+1+m][k*3+1+n] = smat[m][n]
				}
			}
		}

	default:
		return chk.Err("matrix kind %q is not available in linear thermoelasticity", kind)
	}
	return nil
}

// AddWeakResDVSens adds the design variable sensitivity of the contracted
// residual integrand
func (o *LinearThermoelasticity2D) AddWeakResDVSens(scale scalar.Scalar, tm float64, xq, u, ut, utt, ux, adj, dfdx []scalar.Scalar) {
	o.cst.AddDensityDVSens(scale*(utt[0]*adj[0]+utt[1]*adj[3]), dfdx)
	o.cst.AddHeatCapacityDVSens(scale*ut[2]*adj[6], dfdx)
	var eps [3]scalar.Scalar
	o.mechStrain(ux, u[2], eps[:])
	psiV := []scalar.Scalar{adj[1], adj[5], adj[2] + adj[4]}
	o.cst.AddStressDVSens(scale, eps[:], psiV, dfdx)
	o.cst.AddHeatFluxDVSens(scale, ux[4:6], adj[7:9], dfdx)
}

// AddMatCoefsDVSens adds the design variable sensitivity of the contracted
// matrix coefficients
func (o *LinearThermoelasticity2D) AddMatCoefsDVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdx []scalar.Scalar) error {
	switch kind {

	case MassMatrix:
		o.cst.AddDensityDVSens(scale*(phi1[0]*phi2[0]+phi1[3]*phi2[3]), dfdx)

	case StiffnessMatrix:
		alpha := o.cst.ThermalExpansion()
		aT := alpha * phi2[6]
		eps2 := []scalar.Scalar{phi2[1] - aT, phi2[5] - aT, phi2[2] + phi2[4]}
		psi1 := []scalar.Scalar{phi1[1], phi1[5], phi1[2] + phi1[4]}
		o.cst.AddStressDVSens(scale, eps2, psi1, dfdx)
		o.cst.AddHeatFluxDVSens(scale, phi2[7:9], phi1[7:9], dfdx)

	case GeometricStiffnessMatrix:
		var eps [3]scalar.Scalar
		o.mechStrain(ux, u[2], eps[:])
		psiV := contractGradPair(phi1, phi2, 2)
		o.cst.AddStressDVSens(scale, eps[:], psiV, dfdx)

	default:
		return chk.Err("matrix kind %q is not available in linear thermoelasticity", kind)
	}
	return nil
}

// EvalMatCoefsSVSens adds the state sensitivity of the contracted matrix
// coefficients; only the geometric stiffness depends on the state
func (o *LinearThermoelasticity2D) EvalMatCoefsSVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdz []scalar.Scalar) error {
	switch kind {
	case MassMatrix, StiffnessMatrix:
		// constant coefficients
	case GeometricStiffnessMatrix:
		psiV := contractGradPair(phi1, phi2, 2)
		C := tangent3(o.cst)
		var cp [3]scalar.Scalar
		for m := 0; m < 3; m++ {
			cp[m] = C[m][0]*psiV[0] + C[m][1]*psiV[1] + C[m][2]*psiV[2]
		}
		dfdz[1] += scale * cp[0]
		dfdz[2] += scale * cp[2]
		dfdz[4] += scale * cp[2]
		dfdz[5] += scale * cp[1]
		dfdz[6] -= scale * o.cst.ThermalExpansion() * (cp[0] + cp[1])
	default:
		return chk.Err("matrix kind %q is not available in linear thermoelasticity", kind)
	}
	return nil
}

// NumDesignVars returns the number of design variables
func (o *LinearThermoelasticity2D) NumDesignVars() int { return o.cst.NumDesignVars() }

// DesignVarNums returns the design variable numbers
func (o *LinearThermoelasticity2D) DesignVarNums(elemIndex int) []int {
	return o.cst.DesignVarNums(elemIndex)
}

// GetDesignVars retrieves the design variable values
func (o *LinearThermoelasticity2D) GetDesignVars(dvs []scalar.Scalar) { o.cst.GetDesignVars(dvs) }

// SetDesignVars updates the design variable values
func (o *LinearThermoelasticity2D) SetDesignVars(dvs []scalar.Scalar) { o.cst.SetDesignVars(dvs) }
