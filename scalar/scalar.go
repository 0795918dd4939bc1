// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !complexstep
// +build !complexstep

// package scalar selects the arithmetic type of the evaluation path. The
// default build uses float64; building with -tags complexstep switches the
// whole kernel to complex128 so that derivatives can be verified with the
// complex-step method.
package scalar

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// Scalar is the numeric type of all residual/Jacobian/sensitivity arithmetic
type Scalar = float64

// FromFloat converts a float64 constant into a Scalar
func FromFloat(v float64) Scalar { return v }

// Re returns the real part
func Re(v Scalar) float64 { return v }

// Im returns the imaginary part; always zero in the real build
func Im(v Scalar) float64 { return 0 }

// Sqrt computes the square root
func Sqrt(v Scalar) Scalar { return math.Sqrt(v) }

// Step returns the perturbation used for numerical differentiation with
// step size h: a real forward-difference step in this build
func Step(h float64) Scalar { return h }

// Deriv extracts the derivative estimate from f(x+Step(h)) and f(x)
func Deriv(fph, f Scalar, h float64) float64 { return (fph - f) / h }

// VecAlloc allocates a vector of Scalars
func VecAlloc(n int) []Scalar { return make([]Scalar, n) }

// VecFill fills a vector with a constant
func VecFill(v []Scalar, s Scalar) { utl.Fill(v, s) }

// MatAlloc allocates a matrix of Scalars
func MatAlloc(m, n int) [][]Scalar { return utl.Alloc(m, n) }

// MatFill fills a matrix with a constant
func MatFill(a [][]Scalar, s Scalar) {
	for i := range a {
		utl.Fill(a[i], s)
	}
}
