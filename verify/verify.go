// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package verify checks analytic element derivatives against numerical
// differentiation. The default build uses forward differences; building with
// -tags complexstep switches every check to the complex-step method without
// touching the code here
package verify

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/io"

	"github.com/lobatto/gofes/ele"
	"github.com/lobatto/gofes/scalar"
)

// NewGenerator returns a seeded deterministic generator. Re-seeding with the
// same value reproduces every perturbation direction and default state
func NewGenerator(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandVec draws a vector with entries uniform in [-0.5, 0.5)
func RandVec(gen *rand.Rand, n int) []scalar.Scalar {
	res := scalar.VecAlloc(n)
	for i := range res {
		res[i] = scalar.FromFloat(gen.Float64() - 0.5)
	}
	return res
}

// Compare checks analytic versus numerical values entry by entry with a
// combined absolute/relative tolerance. A mismatch is reported, not fatal;
// the failure flag lets a caller aggregate many checks per run
func Compare(name string, ana, num []float64, atol, rtol float64, verb int) (fail bool) {
	for i := range ana {
		d := math.Abs(ana[i] - num[i])
		m := math.Max(math.Abs(ana[i]), math.Abs(num[i]))
		ok := d <= atol || d <= rtol*m
		if !ok {
			fail = true
		}
		if verb > 0 {
			if ok {
				io.Pf("%s[%3d]: ana=%23.15e num=%23.15e diff=%v\n", name, i, ana[i], num[i], d)
			} else {
				io.Pforan("%s[%3d]: ana=%23.15e num=%23.15e diff=%v <<< FAIL\n", name, i, ana[i], num[i], d)
			}
		}
	}
	return
}

// dot contracts two vectors over n entries
func dot(a, b []scalar.Scalar, n int) (res scalar.Scalar) {
	for i := 0; i < n; i++ {
		res += a[i] * b[i]
	}
	return
}

// perturb computes base + step*coef*dir; base may be longer than dir
func perturb(base, dir []scalar.Scalar, step, coef scalar.Scalar) []scalar.Scalar {
	res := scalar.VecAlloc(len(base))
	copy(res, base)
	for i := range dir {
		res[i] += step * coef * dir[i]
	}
	return res
}

// CheckElementJacobian verifies the transient Jacobian against the
// directional derivative of the residual. Random coefficients alpha, beta,
// gamma and a random direction p are drawn from gen; the residual is then
// differentiated along the simultaneous perturbation
// (vars, dvars, ddvars) + h*(alpha, beta, gamma)*p
func CheckElementJacobian(elm ele.Element, gen *rand.Rand, elemIndex int, tm float64, xpts, vars, dvars, ddvars []scalar.Scalar, dh float64, verb int, atol, rtol float64) (fail bool, err error) {
	n := elm.NumNodes() * elm.NumVars()
	alpha := scalar.FromFloat(gen.Float64())
	beta := scalar.FromFloat(gen.Float64())
	gamma := scalar.FromFloat(gen.Float64())
	p := RandVec(gen, n)

	// analytic: directional product of the Jacobian
	res0 := scalar.VecAlloc(n)
	jac := scalar.MatAlloc(n, n)
	err = elm.AddJacobian(elemIndex, tm, alpha, beta, gamma, xpts, vars, dvars, ddvars, res0, jac)
	if err != nil {
		return
	}
	ana := make([]float64, n)
	for i := 0; i < n; i++ {
		ana[i] = scalar.Re(dot(jac[i], p, n))
	}

	// numerical: perturbed residual
	step := scalar.Step(dh)
	resP := scalar.VecAlloc(n)
	err = elm.AddResidual(elemIndex, tm, xpts,
		perturb(vars, p, step, alpha),
		perturb(dvars, p, step, beta),
		perturb(ddvars, p, step, gamma), resP)
	if err != nil {
		return
	}
	num := make([]float64, n)
	for i := 0; i < n; i++ {
		num[i] = scalar.Deriv(resP[i], res0[i], dh)
	}

	fail = Compare("dR/du . p", ana, num, atol, rtol, verb)
	return
}

// CheckAdjResProduct verifies the adjoint-residual design sensitivity
// against differentiation with respect to each design variable in turn
func CheckAdjResProduct(elm ele.Element, gen *rand.Rand, elemIndex int, tm float64, xpts, vars, dvars, ddvars []scalar.Scalar, dh float64, verb int, atol, rtol float64) (fail bool, err error) {
	n := elm.NumNodes() * elm.NumVars()
	ndv := elm.NumDesignVars()
	if ndv == 0 {
		return
	}
	psi := RandVec(gen, n)

	// analytic
	dfdx := scalar.VecAlloc(ndv)
	err = elm.AddAdjResProduct(elemIndex, tm, 1, psi, xpts, vars, dvars, ddvars, dfdx)
	if err != nil {
		return
	}
	ana := make([]float64, ndv)
	for j := 0; j < ndv; j++ {
		ana[j] = scalar.Re(dfdx[j])
	}

	// baseline product
	x0 := scalar.VecAlloc(ndv)
	elm.GetDesignVars(x0)
	res0 := scalar.VecAlloc(n)
	err = elm.AddResidual(elemIndex, tm, xpts, vars, dvars, ddvars, res0)
	if err != nil {
		return
	}
	f0 := dot(psi, res0, n)

	// numerical: perturb each design variable
	step := scalar.Step(dh)
	num := make([]float64, ndv)
	xP := scalar.VecAlloc(ndv)
	for j := 0; j < ndv; j++ {
		copy(xP, x0)
		xP[j] += step
		elm.SetDesignVars(xP)
		resP := scalar.VecAlloc(n)
		err = elm.AddResidual(elemIndex, tm, xpts, vars, dvars, ddvars, resP)
		if err != nil {
			elm.SetDesignVars(x0)
			return
		}
		num[j] = scalar.Deriv(dot(psi, resP, n), f0, dh)
	}
	elm.SetDesignVars(x0)

	fail = Compare("psi.dR/dx", ana, num, atol, rtol, verb)
	return
}

// CheckAdjResXptProduct verifies the adjoint-residual coordinate sensitivity
// against differentiation with respect to each nodal coordinate in turn
func CheckAdjResXptProduct(elm ele.Element, gen *rand.Rand, elemIndex int, tm float64, xpts, vars, dvars, ddvars []scalar.Scalar, dh float64, verb int, atol, rtol float64) (fail bool, err error) {
	n := elm.NumNodes() * elm.NumVars()
	nx := 3 * elm.NumNodes()
	psi := RandVec(gen, n)

	// analytic
	dfdXpts := scalar.VecAlloc(nx)
	err = elm.AddAdjResXptProduct(elemIndex, tm, 1, psi, xpts, vars, dvars, ddvars, dfdXpts)
	if err != nil {
		return
	}
	ana := make([]float64, nx)
	for c := 0; c < nx; c++ {
		ana[c] = scalar.Re(dfdXpts[c])
	}

	// baseline product
	res0 := scalar.VecAlloc(n)
	err = elm.AddResidual(elemIndex, tm, xpts, vars, dvars, ddvars, res0)
	if err != nil {
		return
	}
	f0 := dot(psi, res0, n)

	// numerical: perturb each coordinate
	step := scalar.Step(dh)
	num := make([]float64, nx)
	xptsP := scalar.VecAlloc(len(xpts))
	for c := 0; c < nx; c++ {
		copy(xptsP, xpts)
		xptsP[c] += step
		resP := scalar.VecAlloc(n)
		err = elm.AddResidual(elemIndex, tm, xptsP, vars, dvars, ddvars, resP)
		if err != nil {
			return
		}
		num[c] = scalar.Deriv(dot(psi, resP, n), f0, dh)
	}

	fail = Compare("psi.dR/dX", ana, num, atol, rtol, verb)
	return
}

// matProduct evaluates psi1^T M(kind) psi2 about the given state
func matProduct(elm ele.Element, kind ele.MatrixKind, elemIndex int, tm float64, xpts, vars, psi1, psi2 []scalar.Scalar) (scalar.Scalar, error) {
	n := elm.NumNodes() * elm.NumVars()
	mat := scalar.MatAlloc(n, n)
	if err := elm.GetMatrix(kind, elemIndex, tm, xpts, vars, mat); err != nil {
		return 0, err
	}
	var res scalar.Scalar
	for i := 0; i < n; i++ {
		res += psi1[i] * dot(mat[i], psi2, n)
	}
	return res, nil
}

// CheckElementMatDVSens verifies the design sensitivity of the quadratic
// form psi1^T M psi2 for the matrix of the given kind
func CheckElementMatDVSens(elm ele.Element, kind ele.MatrixKind, gen *rand.Rand, elemIndex int, tm float64, xpts, vars []scalar.Scalar, dh float64, verb int, atol, rtol float64) (fail bool, err error) {
	n := elm.NumNodes() * elm.NumVars()
	ndv := elm.NumDesignVars()
	if ndv == 0 {
		return
	}
	psi1 := RandVec(gen, n)
	psi2 := RandVec(gen, n)

	// analytic
	dfdx := scalar.VecAlloc(ndv)
	err = elm.AddMatDVSens(kind, elemIndex, tm, 1, psi1, psi2, xpts, vars, dfdx)
	if err != nil {
		return
	}
	ana := make([]float64, ndv)
	for j := 0; j < ndv; j++ {
		ana[j] = scalar.Re(dfdx[j])
	}

	// numerical
	f0, err := matProduct(elm, kind, elemIndex, tm, xpts, vars, psi1, psi2)
	if err != nil {
		return
	}
	x0 := scalar.VecAlloc(ndv)
	elm.GetDesignVars(x0)
	step := scalar.Step(dh)
	num := make([]float64, ndv)
	xP := scalar.VecAlloc(ndv)
	for j := 0; j < ndv; j++ {
		copy(xP, x0)
		xP[j] += step
		elm.SetDesignVars(xP)
		fP, e := matProduct(elm, kind, elemIndex, tm, xpts, vars, psi1, psi2)
		if e != nil {
			elm.SetDesignVars(x0)
			err = e
			return
		}
		num[j] = scalar.Deriv(fP, f0, dh)
	}
	elm.SetDesignVars(x0)

	fail = Compare(io.Sf("d(p1.%v.p2)/dx", kind), ana, num, atol, rtol, verb)
	return
}

// CheckElementMatSVSens verifies the state sensitivity of the quadratic form
// psi1^T M psi2 along a random state direction
func CheckElementMatSVSens(elm ele.Element, kind ele.MatrixKind, gen *rand.Rand, elemIndex int, tm float64, xpts, vars []scalar.Scalar, dh float64, verb int, atol, rtol float64) (fail bool, err error) {
	n := elm.NumNodes() * elm.NumVars()
	psi1 := RandVec(gen, n)
	psi2 := RandVec(gen, n)
	p := RandVec(gen, n)

	// analytic: directional derivative
	dfdu := scalar.VecAlloc(n)
	err = elm.AddMatSVSens(kind, elemIndex, tm, 1, psi1, psi2, xpts, vars, dfdu)
	if err != nil {
		return
	}
	ana := []float64{scalar.Re(dot(dfdu, p, n))}

	// numerical
	f0, err := matProduct(elm, kind, elemIndex, tm, xpts, vars, psi1, psi2)
	if err != nil {
		return
	}
	fP, err := matProduct(elm, kind, elemIndex, tm, xpts, perturb(vars, p, scalar.Step(dh), 1), psi1, psi2)
	if err != nil {
		return
	}
	num := []float64{scalar.Deriv(fP, f0, dh)}

	fail = Compare(io.Sf("d(p1.%v.p2)/du", kind), ana, num, atol, rtol, verb)
	return
}
