// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// integration points for triangles. weights include the 1/2 area factor
var (
	// 3-point rule; degree 2
	ipsTri3 = []Ipoint{
		{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
	}

	// 7-point rule; degree 5
	ipsTri7 = []Ipoint{
		{1.0 / 3.0, 1.0 / 3.0, 0, 0.112500000000000},
		{0.470142064105115, 0.470142064105115, 0, 0.066197076394253},
		{0.059715871789770, 0.470142064105115, 0, 0.066197076394253},
		{0.470142064105115, 0.059715871789770, 0, 0.066197076394253},
		{0.101286507323456, 0.101286507323456, 0, 0.062969590272414},
		{0.797426985353087, 0.101286507323456, 0, 0.062969590272414},
		{0.101286507323456, 0.797426985353087, 0, 0.062969590272414},
	}
)

func init() {
	allocators["tri3"] = func() Basis { return &Tri3{} }
	allocators["tri6"] = func() Basis { return &Tri6{} }
}

// Tri3 implements the linear 3-node triangle
//
//      2
//      | \
//      |   \
//      0 --- 1
//
type Tri3 struct{}

var natCoordsTri3 = [][]float64{
	{0, 1, 0},
	{0, 0, 1},
}

// Type returns the type name
func (o *Tri3) Type() string { return "tri3" }

// NumNodes returns the number of nodes
func (o *Tri3) NumNodes() int { return 3 }

// NumParams returns the number of natural coordinates
func (o *Tri3) NumParams() int { return 2 }

// NatCoords returns the natural coordinates of nodes
func (o *Tri3) NatCoords() [][]float64 { return natCoordsTri3 }

// IntPoints returns the quadrature scheme
func (o *Tri3) IntPoints() []Ipoint { return ipsTri3 }

// EvalBasis computes shape functions and derivatives @ r
func (o *Tri3) EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) {
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// Tri6 implements the quadratic 6-node triangle
//
//      2
//      | \
//      5   4
//      |     \
//      0 - 3 - 1
//
type Tri6 struct{}

var natCoordsTri6 = [][]float64{
	{0, 1, 0, 0.5, 0.5, 0},
	{0, 0, 1, 0, 0.5, 0.5},
}

// Type returns the type name
func (o *Tri6) Type() string { return "tri6" }

// NumNodes returns the number of nodes
func (o *Tri6) NumNodes() int { return 6 }

// NumParams returns the number of natural coordinates
func (o *Tri6) NumParams() int { return 2 }

// NatCoords returns the natural coordinates of nodes
func (o *Tri6) NatCoords() [][]float64 { return natCoordsTri6 }

// IntPoints returns the quadrature scheme
func (o *Tri6) IntPoints() []Ipoint { return ipsTri7 }

// EvalBasis computes shape functions and derivatives @ r
func (o *Tri6) EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) {

	// barycentric coordinates
	l0 := 1.0 - r[0] - r[1]
	l1 := r[0]
	l2 := r[1]

	S[0] = l0 * (2.0*l0 - 1.0)
	S[1] = l1 * (2.0*l1 - 1.0)
	S[2] = l2 * (2.0*l2 - 1.0)
	S[3] = 4.0 * l0 * l1
	S[4] = 4.0 * l1 * l2
	S[5] = 4.0 * l2 * l0
	if !derivs {
		return
	}

	// dl0/dr = dl0/ds = -1, dl1/dr = 1, dl2/ds = 1
	dSdR[0][0] = -(4.0*l0 - 1.0)
	dSdR[0][1] = -(4.0*l0 - 1.0)
	dSdR[1][0] = 4.0*l1 - 1.0
	dSdR[1][1] = 0.0
	dSdR[2][0] = 0.0
	dSdR[2][1] = 4.0*l2 - 1.0
	dSdR[3][0] = 4.0 * (l0 - l1)
	dSdR[3][1] = -4.0 * l1
	dSdR[4][0] = 4.0 * l2
	dSdR[4][1] = 4.0 * l1
	dSdR[5][0] = -4.0 * l2
	dSdR[5][1] = 4.0 * (l0 - l2)
}
