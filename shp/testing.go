// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, b Basis, tol float64, verbose bool) {

	// allocate
	nn := b.NumNodes()
	S := make([]float64, nn)
	r := []float64{0, 0, 0}

	// loop over all nodes
	errS := 0.0
	nat := b.NatCoords()
	for n := 0; n < nn; n++ {

		// natural coordinates @ node
		for i := 0; i < b.NumParams(); i++ {
			r[i] = nat[i][n]
		}

		// compute function
		b.EvalBasis(r, S, nil, false)

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < nn; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", b.Type(), errS)
	}
}

// CheckPartitionOfUnity checks sum(S)==1 and sum(dSdR)==0 @ all
// integration points
func CheckPartitionOfUnity(tst *testing.T, b Basis, tol float64, verbose bool) {

	// allocate
	nn := b.NumNodes()
	S := make([]float64, nn)
	dSdR := make([][]float64, nn)
	for m := 0; m < nn; m++ {
		dSdR[m] = make([]float64, b.NumParams())
	}

	// loop over integration points
	for idx, ip := range b.IntPoints() {
		b.EvalBasis(ip[:2], S, dSdR, true)
		sumS, sumR, sumT := 0.0, 0.0, 0.0
		for m := 0; m < nn; m++ {
			sumS += S[m]
			sumR += dSdR[m][0]
			sumT += dSdR[m][1]
		}
		if verbose {
			io.Pforan("%s ip=%d: sumS=%.15f sumdR=(%g, %g)\n", b.Type(), idx, sumS, sumR, sumT)
		}
		if math.Abs(sumS-1.0) > tol {
			tst.Errorf("%s: sum(S) != 1 @ ip %d: err = %g\n", b.Type(), idx, math.Abs(sumS-1.0))
		}
		if math.Abs(sumR) > tol || math.Abs(sumT) > tol {
			tst.Errorf("%s: sum(dSdR) != 0 @ ip %d: err = (%g, %g)\n", b.Type(), idx, sumR, sumT)
		}
	}
}

// CheckDSdR checks dSdR derivatives against numerical differentiation
func CheckDSdR(tst *testing.T, b Basis, r []float64, tol float64, verbose bool) {

	// allocate
	nn := b.NumNodes()
	S := make([]float64, nn)
	dSdR := make([][]float64, nn)
	for m := 0; m < nn; m++ {
		dSdR[m] = make([]float64, b.NumParams())
	}

	// analytical
	b.EvalBasis(r, S, dSdR, true)

	// numerical
	chk.DerivVecVec(tst, "dS/dR", tol, dSdR, r[:b.NumParams()], 1e-1, verbose, func(f, x []float64) {
		b.EvalBasis(x, f, nil, false)
	})
}
