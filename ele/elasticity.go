// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/lobatto/gofes/scalar"
)

// voigt maps tensor indices to Voigt storage {xx, yy, xy}
var voigt = [2][2]int{{0, 2}, {2, 1}}

// strainFromGrad computes engineering strain from the displacement gradient.
// ux uses the gradient layout ux[2*l+a]; shear is engineering shear
func strainFromGrad(ux, eps []scalar.Scalar) {
	eps[0] = ux[0]
	eps[1] = ux[3]
	eps[2] = ux[1] + ux[2]
}

// tangent3 allocates and fills the 3x3 Voigt tangent of a constitutive model
func tangent3(cst Constitutive) [][]scalar.Scalar {
	C := scalar.MatAlloc(3, 3)
	cst.EvalTangent(C)
	return C
}

// LinearElasticity2D implements plane linear elasticity with two
// displacement variables per node.
//
// Weak form: ft[k] = rho*t*utt[k] and fx holds the stress resultants, so the
// residual integrand is psi_k*rho*t*utt_k + grad(psi_k) . sigma_k
type LinearElasticity2D struct {
	cst Constitutive
}

// NewLinearElasticity2D returns a new linear elasticity model
func NewLinearElasticity2D(cst Constitutive) *LinearElasticity2D {
	return &LinearElasticity2D{cst: cst}
}

// NumVars returns the number of variables per node
func (o *LinearElasticity2D) NumVars() int { return 2 }

// Constitutive returns the underlying constitutive model
func (o *LinearElasticity2D) Constitutive() Constitutive { return o.cst }

// EvalWeakRes computes the weak-form coefficients @ a quadrature point
func (o *LinearElasticity2D) EvalWeakRes(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar) {
	rhot := o.cst.EvalDensity()
	ft[0] = rhot * utt[0]
	ft[1] = rhot * utt[1]
	var eps, sig [3]scalar.Scalar
	strainFromGrad(ux, eps[:])
	o.cst.EvalStress(eps[:], sig[:])
	fx[0], fx[1] = sig[0], sig[2]
	fx[2], fx[3] = sig[2], sig[1]
}

// EvalWeakJac computes the weak-form coefficients and their state derivatives
func (o *LinearElasticity2D) EvalWeakJac(tm float64, xq, u, ut, utt, ux, ft, fx []scalar.Scalar, jac [][]scalar.Scalar) {
	o.EvalWeakRes(tm, xq, u, ut, utt, ux, ft, fx)
	rhot := o.cst.EvalDensity()
	C := tangent3(o.cst)
	jac[0][2] = rhot
	jac[3][7] = rhot
	for k := 0; k < 2; k++ {
		for a := 0; a < 2; a++ {
			for l := 0; l < 2; l++ {
				for b := 0; b < 2; b++ {
					jac[k*3+1+a][l*5+3+b] = C[voigt[k][a]][voigt[l][b]]
				}
			}
		}
	}
}

// EvalMatCoefs computes the matrix coefficients @ a quadrature point
func (o *LinearElasticity2D) EvalMatCoefs(kind MatrixKind, tm float64, xq, u, ux []scalar.Scalar, mc [][]scalar.Scalar) error {
	switch kind {

	case MassMatrix:
		rhot := o.cst.EvalDensity()
		mc[0][0] = rhot
		mc[3][3] = rhot

	case StiffnessMatrix:
		C := tangent3(o.cst)
		for k := 0; k < 2; k++ {
			for a := 0; a < 2; a++ {
				for l := 0; l < 2; l++ {
					for b := 0; b < 2; b++ {
						mc[k*3+1+a][l*3+1+b] = C[voigt[k][a]][voigt[l][b]]
					}
				}
			}
		}

	case GeometricStiffnessMatrix:
		var eps, sig [3]scalar.Scalar
		strainFromGrad(ux, eps[:])
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
		return chk.Err("matrix kind %q is not available in linear elasticity", kind)
	}
	return nil
}

// AddWeakResDVSens adds the design variable sensitivity of the contracted
// residual integrand
func (o *LinearElasticity2D) AddWeakResDVSens(scale scalar.Scalar, tm float64, xq, u, ut, utt, ux, adj, dfdx []scalar.Scalar) {
	o.cst.AddDensityDVSens(scale*(utt[0]*adj[0]+utt[1]*adj[3]), dfdx)
	var eps [3]scalar.Scalar
	strainFromGrad(ux, eps[:])
	psiV := []scalar.Scalar{adj[1], adj[5], adj[2] + adj[4]}
	o.cst.AddStressDVSens(scale, eps[:], psiV, dfdx)
}

// AddMatCoefsDVSens adds the design variable sensitivity of the contracted
// matrix coefficients
func (o *LinearElasticity2D) AddMatCoefsDVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdx []scalar.Scalar) error {
	switch kind {

	case MassMatrix:
		o.cst.AddDensityDVSens(scale*(phi1[0]*phi2[0]+phi1[3]*phi2[3]), dfdx)

	case StiffnessMatrix:
		eps2 := []scalar.Scalar{phi2[1], phi2[5], phi2[2] + phi2[4]}
		psi1 := []scalar.Scalar{phi1[1], phi1[5], phi1[2] + phi1[4]}
		o.cst.AddStressDVSens(scale, eps2, psi1, dfdx)

	case GeometricStiffnessMatrix:
		var eps [3]scalar.Scalar
		strainFromGrad(ux, eps[:])
		psiV := contractGradPair(phi1, phi2, 2)
		o.cst.AddStressDVSens(scale, eps[:], psiV, dfdx)

	default:
		return chk.Err("matrix kind %q is not available in linear elasticity", kind)
	}
	return nil
}

// EvalMatCoefsSVSens adds the state sensitivity of the contracted matrix
// coefficients; only the geometric stiffness depends on the state
func (o *LinearElasticity2D) EvalMatCoefsSVSens(kind MatrixKind, scale scalar.Scalar, tm float64, xq, u, ux, phi1, phi2, dfdz []scalar.Scalar) error {
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
	default:
		return chk.Err("matrix kind %q is not available in linear elasticity", kind)
	}
	return nil
}

// contractGradPair contracts the gradient slots of two adjoint vectors over
// ndisp displacement variables into a symmetric Voigt weighting
func contractGradPair(phi1, phi2 []scalar.Scalar, ndisp int) []scalar.Scalar {
	psiV := make([]scalar.Scalar, 3)
	for k := 0; k < ndisp; k++ {
		psiV[0] += phi1[3*k+1] * phi2[3*k+1]
		psiV[1] += phi1[3*k+2] * phi2[3*k+2]
		psiV[2] += phi1[3*k+1]*phi2[3*k+2] + phi1[3*k+2]*phi2[3*k+1]
	}
	return psiV
}

// NumDesignVars returns the number of design variables
func (o *LinearElasticity2D) NumDesignVars() int { return o.cst.NumDesignVars() }

// DesignVarNums returns the design variable numbers
func (o *LinearElasticity2D) DesignVarNums(elemIndex int) []int { return o.cst.DesignVarNums(elemIndex) }

// GetDesignVars retrieves the design variable values
func (o *LinearElasticity2D) GetDesignVars(dvs []scalar.Scalar) { o.cst.GetDesignVars(dvs) }

// SetDesignVars updates the design variable values
func (o *LinearElasticity2D) SetDesignVars(dvs []scalar.Scalar) { o.cst.SetDesignVars(dvs) }
