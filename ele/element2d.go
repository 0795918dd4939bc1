// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/lobatto/gofes/scalar"
	"github.com/lobatto/gofes/shp"
)

// jacTol flags a degenerate element mapping
const jacTol = 1e-14

// Element2D combines a physics model with a 2D basis. It holds no mutable
// evaluation state; all working memory is scoped per call so one instance is
// safe for concurrent use on independent buffers
type Element2D struct {
	mdl Model
	bas shp.Basis
}

// NewElement2D returns a new element from a physics model and a basis
func NewElement2D(mdl Model, bas shp.Basis) (*Element2D, error) {
	if err := checkBasisFit(bas, mdl.NumVars()); err != nil {
		return nil, err
	}
	return &Element2D{mdl: mdl, bas: bas}, nil
}

// CreateElementInertialForce returns a companion element carrying the body
// force from a constant gravity vector. It shares the basis and the
// constitutive model, so all sensitivity products flow through the same
// machinery as the base element
func (o *Element2D) CreateElementInertialForce(g []float64) *Element2D {
	return &Element2D{mdl: NewInertialForce(o.mdl, g), bas: o.bas}
}

// NumNodes returns the number of nodes
func (o *Element2D) NumNodes() int { return o.bas.NumNodes() }

// NumVars returns the number of variables per node
func (o *Element2D) NumVars() int { return o.mdl.NumVars() }

// Model returns the physics model
func (o *Element2D) Model() Model { return o.mdl }

// Basis returns the basis
func (o *Element2D) Basis() shp.Basis { return o.bas }

// NumDesignVars returns the number of design variables
func (o *Element2D) NumDesignVars() int { return o.mdl.NumDesignVars() }

// DesignVarNums returns the design variable numbers
func (o *Element2D) DesignVarNums(elemIndex int) []int { return o.mdl.DesignVarNums(elemIndex) }

// GetDesignVars retrieves the design variable values
func (o *Element2D) GetDesignVars(dvs []scalar.Scalar) { o.mdl.GetDesignVars(dvs) }

// SetDesignVars updates the design variable values
func (o *Element2D) SetDesignVars(dvs []scalar.Scalar) { o.mdl.SetDesignVars(dvs) }

// qpoint holds the per-call working memory of one quadrature point
type qpoint struct {
	S    []float64         // shape functions
	dSdR [][]float64       // natural derivatives
	B    [][]scalar.Scalar // cartesian derivatives; [node][2]
	xq   []scalar.Scalar   // interpolated coordinates; [3]
	u    []scalar.Scalar   // interpolated variables; [v]
	ut   []scalar.Scalar   // interpolated first time derivatives; [v]
	utt  []scalar.Scalar   // interpolated second time derivatives; [v]
	ux   []scalar.Scalar   // interpolated gradients; [2v]
	detJ scalar.Scalar     // determinant of the mapping jacobian
	c    scalar.Scalar     // quadrature coefficient w*detJ
}

// newQpoint allocates quadrature point working memory
func (o *Element2D) newQpoint() *qpoint {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	return &qpoint{
		S:    make([]float64, nn),
		dSdR: utl.Alloc(nn, 2),
		B:    scalar.MatAlloc(nn, 2),
		xq:   scalar.VecAlloc(3),
		u:    scalar.VecAlloc(v),
		ut:   scalar.VecAlloc(v),
		utt:  scalar.VecAlloc(v),
		ux:   scalar.VecAlloc(2 * v),
	}
}

// eval computes the basis data, mapping jacobian, cartesian derivatives and
// interpolated state @ one integration point. dvars and ddvars may be nil
func (o *Element2D) eval(q *qpoint, ip shp.Ipoint, xpts, vars, dvars, ddvars []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	o.bas.EvalBasis(ip[:3], q.S, q.dSdR, true)

	// mapping jacobian xd[a][m] = d(x_a)/d(xi_m)
	var xd [2][2]scalar.Scalar
	for i := 0; i < nn; i++ {
		for a := 0; a < 2; a++ {
			x := xpts[3*i+a]
			xd[a][0] += x * scalar.FromFloat(q.dSdR[i][0])
			xd[a][1] += x * scalar.FromFloat(q.dSdR[i][1])
		}
	}
	q.detJ = xd[0][0]*xd[1][1] - xd[0][1]*xd[1][0]
	if math.Abs(scalar.Re(q.detJ)) < jacTol {
		return chk.Err("degenerate jacobian: |det(J)|=%g @ ip (%g,%g)", math.Abs(scalar.Re(q.detJ)), ip[0], ip[1])
	}
	q.c = scalar.FromFloat(ip[3]) * q.detJ

	// cartesian derivatives B[i][a] = dS_i/dx_a
	ji := [2][2]scalar.Scalar{
		{xd[1][1] / q.detJ, -xd[0][1] / q.detJ},
		{-xd[1][0] / q.detJ, xd[0][0] / q.detJ},
	}
	for i := 0; i < nn; i++ {
		d0, d1 := scalar.FromFloat(q.dSdR[i][0]), scalar.FromFloat(q.dSdR[i][1])
		q.B[i][0] = d0*ji[0][0] + d1*ji[1][0]
		q.B[i][1] = d0*ji[0][1] + d1*ji[1][1]
	}

	// interpolate coordinates and state
	scalar.VecFill(q.xq, 0)
	scalar.VecFill(q.u, 0)
	scalar.VecFill(q.ut, 0)
	scalar.VecFill(q.utt, 0)
	scalar.VecFill(q.ux, 0)
	for i := 0; i < nn; i++ {
		N := scalar.FromFloat(q.S[i])
		for a := 0; a < 3; a++ {
			q.xq[a] += N * xpts[3*i+a]
		}
		for l := 0; l < v; l++ {
			q.u[l] += N * vars[i*v+l]
			if dvars != nil {
				q.ut[l] += N * dvars[i*v+l]
			}
			if ddvars != nil {
				q.utt[l] += N * ddvars[i*v+l]
			}
			q.ux[2*l] += q.B[i][0] * vars[i*v+l]
			q.ux[2*l+1] += q.B[i][1] * vars[i*v+l]
		}
	}
	return nil
}

// contractAdjoint contracts a nodal adjoint vector against the test value and
// test gradient slots; adj[3*k+r] with r = {value, ddx, ddy}
func (o *Element2D) contractAdjoint(q *qpoint, psi, adj []scalar.Scalar) {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	scalar.VecFill(adj, 0)
	for i := 0; i < nn; i++ {
		N := scalar.FromFloat(q.S[i])
		for k := 0; k < v; k++ {
			p := psi[i*v+k]
			adj[3*k] += p * N
			adj[3*k+1] += p * q.B[i][0]
			adj[3*k+2] += p * q.B[i][1]
		}
	}
}

// checkState checks the coordinate and state buffer lengths
func (o *Element2D) checkState(xpts, vars, dvars, ddvars []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := checkLen("xpts", len(xpts), 3*nn); err != nil {
		return err
	}
	if err := checkLen("vars", len(vars), nn*v); err != nil {
		return err
	}
	if dvars != nil {
		if err := checkLen("dvars", len(dvars), nn*v); err != nil {
			return err
		}
	}
	if ddvars != nil {
		if err := checkLen("ddvars", len(ddvars), nn*v); err != nil {
			return err
		}
	}
	return nil
}

// AddResidual adds the element residual to res
func (o *Element2D) AddResidual(elemIndex int, tm float64, xpts, vars, dvars, ddvars, res []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, dvars, ddvars); err != nil {
		return err
	}
	if err := checkLen("res", len(res), nn*v); err != nil {
		return err
	}
	q := o.newQpoint()
	ft := scalar.VecAlloc(v)
	fx := scalar.VecAlloc(2 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, dvars, ddvars); err != nil {
			return err
		}
		scalar.VecFill(ft, 0)
		scalar.VecFill(fx, 0)
		o.mdl.EvalWeakRes(tm, q.xq, q.u, q.ut, q.utt, q.ux, ft, fx)
		for i := 0; i < nn; i++ {
			N := scalar.FromFloat(q.S[i])
			for k := 0; k < v; k++ {
				res[i*v+k] += q.c * (ft[k]*N + fx[2*k]*q.B[i][0] + fx[2*k+1]*q.B[i][1])
			}
		}
	}
	return nil
}

// AddJacobian adds the element residual to res and the transient Jacobian
// alpha*dR/du + beta*dR/dudot + gamma*dR/duddot to jac
func (o *Element2D) AddJacobian(elemIndex int, tm float64, alpha, beta, gamma scalar.Scalar, xpts, vars, dvars, ddvars, res []scalar.Scalar, jac [][]scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, dvars, ddvars); err != nil {
		return err
	}
	if err := checkLen("res", len(res), nn*v); err != nil {
		return err
	}
	if err := checkLen("jac", len(jac), nn*v); err != nil {
		return err
	}
	if err := checkLen("jac[0]", len(jac[0]), nn*v); err != nil {
		return err
	}
	q := o.newQpoint()
	ft := scalar.VecAlloc(v)
	fx := scalar.VecAlloc(2 * v)
	jacIp := scalar.MatAlloc(3*v, 5*v)
	w := scalar.VecAlloc(3 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, dvars, ddvars); err != nil {
			return err
		}
		scalar.VecFill(ft, 0)
		scalar.VecFill(fx, 0)
		scalar.MatFill(jacIp, 0)
		o.mdl.EvalWeakJac(tm, q.xq, q.u, q.ut, q.utt, q.ux, ft, fx, jacIp)

		// residual
		for i := 0; i < nn; i++ {
			N := scalar.FromFloat(q.S[i])
			for k := 0; k < v; k++ {
				res[i*v+k] += q.c * (ft[k]*N + fx[2*k]*q.B[i][0] + fx[2*k+1]*q.B[i][1])
			}
		}

		// jacobian: contract trial slots per column, then spread over rows
		for j := 0; j < nn; j++ {
			N := scalar.FromFloat(q.S[j])
			for l := 0; l < v; l++ {
				sv := [5]scalar.Scalar{alpha * N, beta * N, gamma * N, alpha * q.B[j][0], alpha * q.B[j][1]}
				for kr := 0; kr < 3*v; kr++ {
					row := jacIp[kr]
					var sum scalar.Scalar
					for s := 0; s < 5; s++ {
						if d := row[5*l+s]; d != 0 {
							sum += d * sv[s]
						}
					}
					w[kr] = sum
				}
				for i := 0; i < nn; i++ {
					Ni := scalar.FromFloat(q.S[i])
					for k := 0; k < v; k++ {
						if t := Ni*w[3*k] + q.B[i][0]*w[3*k+1] + q.B[i][1]*w[3*k+2]; t != 0 {
							jac[i*v+k][j*v+l] += q.c * t
						}
					}
				}
			}
		}
	}
	return nil
}

// GetMatrix overwrites mat with the element matrix of the given kind,
// evaluated about the current state
func (o *Element2D) GetMatrix(kind MatrixKind, elemIndex int, tm float64, xpts, vars []scalar.Scalar, mat [][]scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, nil, nil); err != nil {
		return err
	}
	if err := checkLen("mat", len(mat), nn*v); err != nil {
		return err
	}
	if err := checkLen("mat[0]", len(mat[0]), nn*v); err != nil {
		return err
	}
	scalar.MatFill(mat, 0)
	q := o.newQpoint()
	mc := scalar.MatAlloc(3*v, 3*v)
	w := scalar.VecAlloc(3 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, nil, nil); err != nil {
			return err
		}
		scalar.MatFill(mc, 0)
		if err := o.mdl.EvalMatCoefs(kind, tm, q.xq, q.u, q.ux, mc); err != nil {
			return err
		}
		for j := 0; j < nn; j++ {
			N := scalar.FromFloat(q.S[j])
			for l := 0; l < v; l++ {
				tv := [3]scalar.Scalar{N, q.B[j][0], q.B[j][1]}
				for kr := 0; kr < 3*v; kr++ {
					row := mc[kr]
					var sum scalar.Scalar
					for s := 0; s < 3; s++ {
						if d := row[3*l+s]; d != 0 {
							sum += d * tv[s]
						}
					}
					w[kr] = sum
				}
				for i := 0; i < nn; i++ {
					Ni := scalar.FromFloat(q.S[i])
					for k := 0; k < v; k++ {
						if t := Ni*w[3*k] + q.B[i][0]*w[3*k+1] + q.B[i][1]*w[3*k+2]; t != 0 {
							mat[i*v+k][j*v+l] += q.c * t
						}
					}
				}
			}
		}
	}
	return nil
}

// AddAdjResProduct adds scale * psi^T dR/dx to dfdx, the derivative of the
// adjoint-residual product with respect to the design variables
func (o *Element2D) AddAdjResProduct(elemIndex int, tm float64, scale scalar.Scalar, psi, xpts, vars, dvars, ddvars, dfdx []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, dvars, ddvars); err != nil {
		return err
	}
	if err := checkLen("psi", len(psi), nn*v); err != nil {
		return err
	}
	if err := checkLen("dfdx", len(dfdx), o.mdl.NumDesignVars()); err != nil {
		return err
	}
	q := o.newQpoint()
	adj := scalar.VecAlloc(3 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, dvars, ddvars); err != nil {
			return err
		}
		o.contractAdjoint(q, psi, adj)
		o.mdl.AddWeakResDVSens(scale*q.c, tm, q.xq, q.u, q.ut, q.utt, q.ux, adj, dfdx)
	}
	return nil
}

// AddAdjResXptProduct adds scale * psi^T dR/dXpts to dfdXpts, the derivative
// of the adjoint-residual product with respect to the nodal coordinates.
//
// Three closed forms drive the accumulation: d(detJ)/dX_jb = detJ*B_jb,
// dB_ia/dX_jb = -B_ib*B_ja and d(ux_lb')/dX_jb = -B_jb'*ux_lb. The latter two
// feed the test-gradient and the state-gradient chains respectively
func (o *Element2D) AddAdjResXptProduct(elemIndex int, tm float64, scale scalar.Scalar, psi, xpts, vars, dvars, ddvars, dfdXpts []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, dvars, ddvars); err != nil {
		return err
	}
	if err := checkLen("psi", len(psi), nn*v); err != nil {
		return err
	}
	if err := checkLen("dfdXpts", len(dfdXpts), 3*nn); err != nil {
		return err
	}
	q := o.newQpoint()
	ft := scalar.VecAlloc(v)
	fx := scalar.VecAlloc(2 * v)
	jacIp := scalar.MatAlloc(3*v, 5*v)
	adj := scalar.VecAlloc(3 * v)
	av := scalar.VecAlloc(2 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, dvars, ddvars); err != nil {
			return err
		}
		scalar.VecFill(ft, 0)
		scalar.VecFill(fx, 0)
		scalar.MatFill(jacIp, 0)
		o.mdl.EvalWeakJac(tm, q.xq, q.u, q.ut, q.utt, q.ux, ft, fx, jacIp)
		o.contractAdjoint(q, psi, adj)

		// contracted integrand
		var phi scalar.Scalar
		for k := 0; k < v; k++ {
			phi += ft[k]*adj[3*k] + fx[2*k]*adj[3*k+1] + fx[2*k+1]*adj[3*k+2]
		}

		// test-gradient chain
		var f1 [2][2]scalar.Scalar
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				for k := 0; k < v; k++ {
					f1[a][b] += fx[2*k+a] * adj[3*k+1+b]
				}
			}
		}

		// state-gradient chain
		scalar.VecFill(av, 0)
		for l := 0; l < v; l++ {
			for a := 0; a < 2; a++ {
				for kr := 0; kr < 3*v; kr++ {
					if d := jacIp[kr][5*l+3+a]; d != 0 {
						av[2*l+a] += adj[kr] * d
					}
				}
			}
		}
		var cm [2][2]scalar.Scalar
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				for l := 0; l < v; l++ {
					cm[a][b] += av[2*l+a] * q.ux[2*l+b]
				}
			}
		}

		for j := 0; j < nn; j++ {
			for b := 0; b < 2; b++ {
				t := q.B[j][b]*phi - q.B[j][0]*(f1[0][b]+cm[0][b]) - q.B[j][1]*(f1[1][b]+cm[1][b])
				dfdXpts[3*j+b] += scale * q.c * t
			}
		}
	}
	return nil
}

// AddMatDVSens adds scale * d(psi1^T M psi2)/dx to dfdx for the matrix of
// the given kind
func (o *Element2D) AddMatDVSens(kind MatrixKind, elemIndex int, tm float64, scale scalar.Scalar, psi1, psi2, xpts, vars, dfdx []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, nil, nil); err != nil {
		return err
	}
	if err := checkLen("psi1", len(psi1), nn*v); err != nil {
		return err
	}
	if err := checkLen("psi2", len(psi2), nn*v); err != nil {
		return err
	}
	if err := checkLen("dfdx", len(dfdx), o.mdl.NumDesignVars()); err != nil {
		return err
	}
	q := o.newQpoint()
	phi1 := scalar.VecAlloc(3 * v)
	phi2 := scalar.VecAlloc(3 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, nil, nil); err != nil {
			return err
		}
		o.contractAdjoint(q, psi1, phi1)
		o.contractAdjoint(q, psi2, phi2)
		if err := o.mdl.AddMatCoefsDVSens(kind, scale*q.c, tm, q.xq, q.u, q.ux, phi1, phi2, dfdx); err != nil {
			return err
		}
	}
	return nil
}

// AddMatSVSens adds scale * d(psi1^T M psi2)/du to dfdu for the matrix of
// the given kind, evaluated about the current state
func (o *Element2D) AddMatSVSens(kind MatrixKind, elemIndex int, tm float64, scale scalar.Scalar, psi1, psi2, xpts, vars, dfdu []scalar.Scalar) error {
	nn, v := o.bas.NumNodes(), o.mdl.NumVars()
	if err := o.checkState(xpts, vars, nil, nil); err != nil {
		return err
	}
	if err := checkLen("psi1", len(psi1), nn*v); err != nil {
		return err
	}
	if err := checkLen("psi2", len(psi2), nn*v); err != nil {
		return err
	}
	if err := checkLen("dfdu", len(dfdu), nn*v); err != nil {
		return err
	}
	q := o.newQpoint()
	phi1 := scalar.VecAlloc(3 * v)
	phi2 := scalar.VecAlloc(3 * v)
	dfdz := scalar.VecAlloc(3 * v)
	for _, ip := range o.bas.IntPoints() {
		if err := o.eval(q, ip, xpts, vars, nil, nil); err != nil {
			return err
		}
		o.contractAdjoint(q, psi1, phi1)
		o.contractAdjoint(q, psi2, phi2)
		scalar.VecFill(dfdz, 0)
		if err := o.mdl.EvalMatCoefsSVSens(kind, scale*q.c, tm, q.xq, q.u, q.ux, phi1, phi2, dfdz); err != nil {
			return err
		}
		for j := 0; j < nn; j++ {
			N := scalar.FromFloat(q.S[j])
			for l := 0; l < v; l++ {
				dfdu[j*v+l] += dfdz[3*l]*N + dfdz[3*l+1]*q.B[j][0] + dfdz[3*l+2]*q.B[j][1]
			}
		}
	}
	return nil
}
