// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/lobatto/gofes/ele"
	"github.com/lobatto/gofes/mdl/solid"
	"github.com/lobatto/gofes/scalar"
	"github.com/lobatto/gofes/shp"
)

const (
	testSeed = 30
	testDh   = 1e-6

	// linear checks: forward differences are exact up to cancellation
	linAtol = 1e-3
	linRtol = 1e-6

	// coordinate sensitivities are nonlinear in the coordinates, so the
	// forward-difference estimate carries a truncation error
	xptAtol = 1e-1
	xptRtol = 1e-3
)

var (
	testModels = []string{"elasticity", "thermoelasticity"}
	testBases  = []string{"tri3", "tri6", "qua4", "qua9", "qua16"}
	testKinds  = []ele.MatrixKind{ele.StiffnessMatrix, ele.MassMatrix, ele.GeometricStiffnessMatrix}
)

func testPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "rho", V: 2700},
		&dbf.P{N: "cp", V: 921.096},
		&dbf.P{N: "E", V: 70e3},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "ys", V: 270},
		&dbf.P{N: "alpha", V: 24e-6},
		&dbf.P{N: "kappa", V: 230},
	}
}

func newTestElement(tst *testing.T, model, basis string) *ele.Element2D {
	prp, err := solid.NewProperties(testPrms())
	if err != nil {
		tst.Fatalf("NewProperties failed:\n%v", err)
	}
	cst, err := solid.NewPlaneStress(prp, 1.0, 0)
	if err != nil {
		tst.Fatalf("NewPlaneStress failed:\n%v", err)
	}
	var mdl ele.Model
	switch model {
	case "elasticity":
		mdl = ele.NewLinearElasticity2D(cst)
	case "thermoelasticity":
		mdl = ele.NewLinearThermoelasticity2D(cst)
	default:
		tst.Fatalf("unknown model %q", model)
	}
	bas, err := shp.Get(basis)
	if err != nil {
		tst.Fatalf("Get failed:\n%v", err)
	}
	elm, err := ele.NewElement2D(mdl, bas)
	if err != nil {
		tst.Fatalf("NewElement2D failed:\n%v", err)
	}
	return elm
}

// testGeometry jitters the reference coordinates of the basis so that the
// mapping stays well conditioned while exercising a non-trivial jacobian
func testGeometry(gen *rand.Rand, bas shp.Basis) []scalar.Scalar {
	nn := bas.NumNodes()
	nat := bas.NatCoords()
	xpts := scalar.VecAlloc(3 * nn)
	for i := 0; i < nn; i++ {
		xpts[3*i] = scalar.FromFloat(nat[0][i] + 0.05*(gen.Float64()-0.5))
		xpts[3*i+1] = scalar.FromFloat(nat[1][i] + 0.05*(gen.Float64()-0.5))
	}
	return xpts
}

func Test_verify01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify01. jacobian versus directional differences")

	for _, model := range testModels {
		for _, basis := range testBases {
			elm := newTestElement(tst, model, basis)
			gen := NewGenerator(testSeed)
			xpts := testGeometry(gen, elm.Basis())
			n := elm.NumNodes() * elm.NumVars()
			vars := RandVec(gen, n)
			dvars := RandVec(gen, n)
			ddvars := RandVec(gen, n)
			fail, err := CheckElementJacobian(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckElementJacobian failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: jacobian mismatch\n", model, basis)
				return
			}
			io.Pf("%-18s %-6s jacobian ok\n", model, basis)
		}
	}
}

func Test_verify02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify02. adjoint-residual design sensitivity")

	for _, model := range testModels {
		for _, basis := range testBases {
			elm := newTestElement(tst, model, basis)
			gen := NewGenerator(testSeed)
			xpts := testGeometry(gen, elm.Basis())
			n := elm.NumNodes() * elm.NumVars()
			vars := RandVec(gen, n)
			dvars := RandVec(gen, n)
			ddvars := RandVec(gen, n)
			fail, err := CheckAdjResProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckAdjResProduct failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: design sensitivity mismatch\n", model, basis)
				return
			}
			io.Pf("%-18s %-6s adjres ok\n", model, basis)
		}
	}
}

func Test_verify03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify03. adjoint-residual coordinate sensitivity")

	for _, model := range testModels {
		for _, basis := range testBases {
			elm := newTestElement(tst, model, basis)
			gen := NewGenerator(testSeed)
			xpts := testGeometry(gen, elm.Basis())
			n := elm.NumNodes() * elm.NumVars()
			vars := RandVec(gen, n)
			dvars := RandVec(gen, n)
			ddvars := RandVec(gen, n)
			fail, err := CheckAdjResXptProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, xptAtol, xptRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckAdjResXptProduct failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: coordinate sensitivity mismatch\n", model, basis)
				return
			}
			io.Pf("%-18s %-6s xptres ok\n", model, basis)
		}
	}
}

func Test_verify04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify04. matrix design sensitivity")

	for _, model := range testModels {
		for _, basis := range testBases {
			for _, kind := range testKinds {
				elm := newTestElement(tst, model, basis)
				gen := NewGenerator(testSeed)
				xpts := testGeometry(gen, elm.Basis())
				vars := RandVec(gen, elm.NumNodes()*elm.NumVars())
				fail, err := CheckElementMatDVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
				if err != nil {
					tst.Errorf("%s/%s/%v: CheckElementMatDVSens failed:\n%v", model, basis, kind, err)
					return
				}
				if fail {
					tst.Errorf("%s/%s/%v: matrix design sensitivity mismatch\n", model, basis, kind)
					return
				}
			}
			io.Pf("%-18s %-6s matdv ok\n", model, basis)
		}
	}
}

func Test_verify05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify05. matrix state sensitivity")

	for _, model := range testModels {
		for _, basis := range testBases {
			for _, kind := range testKinds {
				elm := newTestElement(tst, model, basis)
				gen := NewGenerator(testSeed)
				xpts := testGeometry(gen, elm.Basis())
				vars := RandVec(gen, elm.NumNodes()*elm.NumVars())
				fail, err := CheckElementMatSVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
				if err != nil {
					tst.Errorf("%s/%s/%v: CheckElementMatSVSens failed:\n%v", model, basis, kind, err)
					return
				}
				if fail {
					tst.Errorf("%s/%s/%v: matrix state sensitivity mismatch\n", model, basis, kind)
					return
				}
			}
			io.Pf("%-18s %-6s matsv ok\n", model, basis)
		}
	}
}

func Test_verify06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify06. inertial force element sensitivities")

	g := []float64{-9.81, -9.81}
	for _, model := range testModels {
		for _, basis := range testBases {
			elm := newTestElement(tst, model, basis).CreateElementInertialForce(g)
			gen := NewGenerator(testSeed)
			xpts := testGeometry(gen, elm.Basis())
			n := elm.NumNodes() * elm.NumVars()
			vars := RandVec(gen, n)
			dvars := RandVec(gen, n)
			ddvars := RandVec(gen, n)

			fail, err := CheckElementJacobian(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckElementJacobian failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: inertial jacobian mismatch\n", model, basis)
				return
			}

			fail, err = CheckAdjResProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckAdjResProduct failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: inertial design sensitivity mismatch\n", model, basis)
				return
			}

			fail, err = CheckAdjResXptProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, xptAtol, xptRtol)
			if err != nil {
				tst.Errorf("%s/%s: CheckAdjResXptProduct failed:\n%v", model, basis, err)
				return
			}
			if fail {
				tst.Errorf("%s/%s: inertial coordinate sensitivity mismatch\n", model, basis)
				return
			}

			// the load-only integrand has zero matrix coefficients, so the
			// matrix sensitivities must verify as exact zeros for every kind
			for _, kind := range testKinds {
				fail, err = CheckElementMatDVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
				if err != nil {
					tst.Errorf("%s/%s/%v: CheckElementMatDVSens failed:\n%v", model, basis, kind, err)
					return
				}
				if fail {
					tst.Errorf("%s/%s/%v: inertial matrix design sensitivity mismatch\n", model, basis, kind)
					return
				}
				fail, err = CheckElementMatSVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
				if err != nil {
					tst.Errorf("%s/%s/%v: CheckElementMatSVSens failed:\n%v", model, basis, kind, err)
					return
				}
				if fail {
					tst.Errorf("%s/%s/%v: inertial matrix state sensitivity mismatch\n", model, basis, kind)
					return
				}
			}
			io.Pf("%-18s %-6s inertial ok\n", model, basis)
		}
	}
}

func Test_verify07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify07. reproducible generator")

	g1 := NewGenerator(testSeed)
	g2 := NewGenerator(testSeed)
	v1 := RandVec(g1, 100)
	v2 := RandVec(g2, 100)
	for i := range v1 {
		if v1[i] != v2[i] {
			tst.Errorf("generators with the same seed diverged @ %d\n", i)
			return
		}
	}

	// re-running a check with a re-seeded generator reproduces the outcome
	elm := newTestElement(tst, "elasticity", "qua9")
	gen := NewGenerator(testSeed)
	xpts := testGeometry(gen, elm.Basis())
	n := elm.NumNodes() * elm.NumVars()
	vars := RandVec(gen, n)
	dvars := RandVec(gen, n)
	ddvars := RandVec(gen, n)
	fail1, err := CheckElementJacobian(elm, NewGenerator(7), 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
	if err != nil {
		tst.Errorf("CheckElementJacobian failed:\n%v", err)
		return
	}
	fail2, err := CheckElementJacobian(elm, NewGenerator(7), 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
	if err != nil {
		tst.Errorf("CheckElementJacobian failed:\n%v", err)
		return
	}
	if fail1 != fail2 {
		tst.Errorf("re-seeded check is not reproducible\n")
	}
}

func Test_verify08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify08. oversized buffers")

	elm := newTestElement(tst, "thermoelasticity", "qua4")
	gen := NewGenerator(testSeed)

	// allocate at the framework-wide limits and fill the leading entries
	xpts := scalar.VecAlloc(3 * ele.MaxNodes)
	copy(xpts, testGeometry(gen, elm.Basis()))
	nbig := ele.MaxNodes * ele.MaxVars
	vars := RandVec(gen, nbig)
	dvars := RandVec(gen, nbig)
	ddvars := RandVec(gen, nbig)

	fail, err := CheckElementJacobian(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
	if err != nil {
		tst.Errorf("CheckElementJacobian failed:\n%v", err)
		return
	}
	if fail {
		tst.Errorf("jacobian mismatch with oversized buffers\n")
		return
	}

	fail, err = CheckAdjResProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, linAtol, linRtol)
	if err != nil {
		tst.Errorf("CheckAdjResProduct failed:\n%v", err)
		return
	}
	if fail {
		tst.Errorf("design sensitivity mismatch with oversized buffers\n")
		return
	}

	fail, err = CheckAdjResXptProduct(elm, gen, 0, 0, xpts, vars, dvars, ddvars, testDh, 0, xptAtol, xptRtol)
	if err != nil {
		tst.Errorf("CheckAdjResXptProduct failed:\n%v", err)
		return
	}
	if fail {
		tst.Errorf("coordinate sensitivity mismatch with oversized buffers\n")
		return
	}

	for _, kind := range testKinds {
		fail, err = CheckElementMatDVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
		if err != nil {
			tst.Errorf("CheckElementMatDVSens failed:\n%v", err)
			return
		}
		if fail {
			tst.Errorf("%v design sensitivity mismatch with oversized buffers\n", kind)
			return
		}
		fail, err = CheckElementMatSVSens(elm, kind, gen, 0, 0, xpts, vars, testDh, 0, linAtol, linRtol)
		if err != nil {
			tst.Errorf("CheckElementMatSVSens failed:\n%v", err)
			return
		}
		if fail {
			tst.Errorf("%v state sensitivity mismatch with oversized buffers\n", kind)
			return
		}
	}
}
