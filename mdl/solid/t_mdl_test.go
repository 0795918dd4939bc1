// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/lobatto/gofes/scalar"
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

func withPrm(prms dbf.Params, name string, val float64) dbf.Params {
	res := dbf.Params{&dbf.P{N: name, V: val}}
	for _, p := range prms {
		if p.N != name {
			res = append(res, p)
		}
	}
	return res
}

func Test_mdl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl01. property validation")

	if _, err := NewProperties(testPrms()); err != nil {
		tst.Errorf("NewProperties failed:\n%v", err)
		return
	}
	for _, bad := range []struct {
		name string
		val  float64
	}{
		{"rho", 0},
		{"rho", -1},
		{"E", 0},
		{"nu", 0.5},
		{"nu", -1},
		{"ys", 0},
		{"cp", -1},
		{"kappa", -1},
	} {
		_, err := NewProperties(withPrm(testPrms(), bad.name, bad.val))
		if err == nil {
			tst.Errorf("NewProperties should have failed with %s=%g\n", bad.name, bad.val)
			return
		}
		io.Pf("%s=%g: %v\n", bad.name, bad.val, err)
	}
}

func Test_mdl02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl02. model factory")

	mdl, err := New("plane-stress")
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	prms := append(testPrms(), &dbf.P{N: "t", V: 2.5}, &dbf.P{N: "tNum", V: 3})
	if err = mdl.Init(prms); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	ps := mdl.(*PlaneStress)
	chk.IntAssert(ps.NumDesignVars(), 1)
	chk.Ints(tst, "dv nums", ps.DesignVarNums(0), []int{3})
	dvs := scalar.VecAlloc(1)
	ps.GetDesignVars(dvs)
	chk.Float64(tst, "t", 1e-15, scalar.Re(dvs[0]), 2.5)

	if _, err = New("mooney-rivlin"); err == nil {
		tst.Errorf("New should have failed for an unknown model\n")
		return
	}

	mdl, _ = New("plane-stress")
	if err = mdl.Init(append(testPrms(), &dbf.P{N: "t", V: -1})); err == nil {
		tst.Errorf("Init should have failed with a negative thickness\n")
	}
}

func Test_mdl03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl03. stress versus tangent consistency")

	prp, _ := NewProperties(testPrms())
	cst, err := NewPlaneStress(prp, 2.0, 0)
	if err != nil {
		tst.Errorf("NewPlaneStress failed:\n%v", err)
		return
	}
	eps := []scalar.Scalar{1e-3, -2e-3, 5e-4}
	sig := scalar.VecAlloc(3)
	cst.EvalStress(eps, sig)
	C := scalar.MatAlloc(3, 3)
	cst.EvalTangent(C)
	for i := 0; i < 3; i++ {
		var s scalar.Scalar
		for j := 0; j < 3; j++ {
			s += C[i][j] * eps[j]
		}
		chk.Float64(tst, io.Sf("sig[%d]", i), 1e-10, scalar.Re(sig[i]), scalar.Re(s))
	}
}

func Test_mdl04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl04. thickness sensitivities versus differences")

	prp, _ := NewProperties(testPrms())
	t0, h := 1.3, 1e-7
	cstA, _ := NewPlaneStress(prp, t0, 0)
	cstB, _ := NewPlaneStress(prp, t0+h, 0)

	num := (scalar.Re(cstB.EvalDensity()) - scalar.Re(cstA.EvalDensity())) / h
	dfdx := scalar.VecAlloc(1)
	cstA.AddDensityDVSens(1, dfdx)
	chk.Float64(tst, "d(rho*t)/dt", 1e-4, scalar.Re(dfdx[0]), num)

	num = (scalar.Re(cstB.EvalHeatCapacity()) - scalar.Re(cstA.EvalHeatCapacity())) / h
	scalar.VecFill(dfdx, 0)
	cstA.AddHeatCapacityDVSens(1, dfdx)
	chk.Float64(tst, "d(rho*cp*t)/dt", 1e-1, scalar.Re(dfdx[0]), num)

	eps := []scalar.Scalar{1e-3, -2e-3, 5e-4}
	psi := []scalar.Scalar{0.3, -0.2, 0.7}
	sigA := scalar.VecAlloc(3)
	sigB := scalar.VecAlloc(3)
	cstA.EvalStress(eps, sigA)
	cstB.EvalStress(eps, sigB)
	numS := 0.0
	for i := 0; i < 3; i++ {
		numS += scalar.Re(psi[i]) * (scalar.Re(sigB[i]) - scalar.Re(sigA[i])) / h
	}
	scalar.VecFill(dfdx, 0)
	cstA.AddStressDVSens(1, eps, psi, dfdx)
	chk.Float64(tst, "psi.d(sig)/dt", 1e-4, scalar.Re(dfdx[0]), numS)
}

func Test_mdl05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mdl05. von Mises failure index")

	prp, _ := NewProperties(testPrms())
	cst, _ := NewPlaneStress(prp, 4.0, -1)

	// uniaxial stress: eps chosen so that sig = {s, 0, 0} per unit thickness
	s := 135.0
	d0 := 70e3 / (1.0 - 0.3*0.3)
	e0 := s / (d0 * (1.0 - 0.3*0.3))
	eps := []scalar.Scalar{scalar.FromFloat(e0), scalar.FromFloat(-0.3 * e0), 0}
	idx := cst.FailureIndex(eps)
	chk.Float64(tst, "failure index", 1e-12, scalar.Re(idx), s/270.0)

	// thickness must not change the failure index
	cst2, _ := NewPlaneStress(prp, 1.0, -1)
	chk.Float64(tst, "failure index t=1", 1e-12, scalar.Re(cst2.FailureIndex(eps)), scalar.Re(idx))
}
