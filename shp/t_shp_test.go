// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

var testBases = []string{"tri3", "tri6", "qua4", "qua9", "qua16"}

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. shape functions @ nodes")

	for _, name := range testBases {
		b, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		io.Pf("%s\n", String(b))
		CheckShape(tst, b, 1e-13, chk.Verbose)
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. partition of unity @ integration points")

	for _, name := range testBases {
		b, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		CheckPartitionOfUnity(tst, b, 1e-10, chk.Verbose)
	}
}

func Test_shp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp03. dSdR versus numerical derivatives")

	for _, name := range testBases {
		b, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		r := []float64{0.21, 0.17, 0}
		if b.Type() == "qua4" || b.Type() == "qua9" || b.Type() == "qua16" {
			r = []float64{-0.3, 0.55, 0}
		}
		CheckDSdR(tst, b, r, 1e-7, chk.Verbose)
	}
}

func Test_shp04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp04. quadrature weights sum to reference area")

	for _, name := range testBases {
		b, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed:\n%v", err)
			return
		}
		area := 4.0 // quads: [-1,1] x [-1,1]
		if name == "tri3" || name == "tri6" {
			area = 0.5
		}
		sum := 0.0
		for _, ip := range b.IntPoints() {
			sum += ip[3]
		}
		chk.Float64(tst, io.Sf("%s: sum(w)", name), 1e-14, sum, area)
	}
}

func Test_shp05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp05. factory errors")

	_, err := Get("hex20")
	if err == nil {
		tst.Errorf("Get should have failed for unknown basis\n")
	}
}
