// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build complexstep
// +build complexstep

package scalar

import "math/cmplx"

// Scalar is the numeric type of all residual/Jacobian/sensitivity arithmetic
type Scalar = complex128

// FromFloat converts a float64 constant into a Scalar
func FromFloat(v float64) Scalar { return complex(v, 0) }

// Re returns the real part
func Re(v Scalar) float64 { return real(v) }

// Im returns the imaginary part
func Im(v Scalar) float64 { return imag(v) }

// Sqrt computes the square root
func Sqrt(v Scalar) Scalar { return cmplx.Sqrt(v) }

// Step returns the perturbation used for numerical differentiation with
// step size h: an imaginary (complex-step) perturbation in this build
func Step(h float64) Scalar { return complex(0, h) }

// Deriv extracts the derivative estimate from f(x+Step(h)) and f(x). The
// complex-step formula needs the perturbed value only and is exact to
// machine precision for analytic evaluation paths
func Deriv(fph, f Scalar, h float64) float64 { return imag(fph) / h }

// VecAlloc allocates a vector of Scalars
func VecAlloc(n int) []Scalar { return make([]Scalar, n) }

// VecFill fills a vector with a constant
func VecFill(v []Scalar, s Scalar) {
	for i := range v {
		v[i] = s
	}
}

// MatAlloc allocates a matrix of Scalars
func MatAlloc(m, n int) [][]Scalar {
	a := make([][]Scalar, m)
	for i := 0; i < m; i++ {
		a[i] = make([]Scalar, n)
	}
	return a
}

// MatFill fills a matrix with a constant
func MatFill(a [][]Scalar, s Scalar) {
	for i := range a {
		VecFill(a[i], s)
	}
}
