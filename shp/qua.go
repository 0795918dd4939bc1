// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/utl"

// Gauss-Legendre abscissae and weights
var (
	gauss2pt = []float64{-0.5773502691896257, 0.5773502691896257}
	gauss2wt = []float64{1.0, 1.0}

	gauss3pt = []float64{-0.7745966692414834, 0, 0.7745966692414834}
	gauss3wt = []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}

	gauss4pt = []float64{-0.8611363115940526, -0.3399810435848563, 0.3399810435848563, 0.8611363115940526}
	gauss4wt = []float64{0.3478548451374538, 0.6521451548625461, 0.6521451548625461, 0.3478548451374538}
)

// tensorIps builds a tensor-product quadrature scheme on [-1,1]x[-1,1]
func tensorIps(pt, wt []float64) (ips []Ipoint) {
	for j := 0; j < len(pt); j++ {
		for i := 0; i < len(pt); i++ {
			ips = append(ips, Ipoint{pt[i], pt[j], 0, wt[i] * wt[j]})
		}
	}
	return
}

var (
	ipsQua4  = tensorIps(gauss2pt, gauss2wt)
	ipsQua9  = tensorIps(gauss3pt, gauss3wt)
	ipsQua16 = tensorIps(gauss4pt, gauss4wt)
)

func init() {
	allocators["qua4"] = func() Basis { return &Qua4{} }
	allocators["qua9"] = func() Basis { return &Qua9{} }
	allocators["qua16"] = func() Basis { return &Qua16{} }
}

// lagrange1d3 evaluates the 1D quadratic Lagrange polynomials on {-1,0,1}
func lagrange1d3(x float64, n, dn []float64) {
	n[0] = 0.5 * x * (x - 1.0)
	n[1] = 1.0 - x*x
	n[2] = 0.5 * x * (x + 1.0)
	dn[0] = x - 0.5
	dn[1] = -2.0 * x
	dn[2] = x + 0.5
}

// lagrange1d4 evaluates the 1D cubic Lagrange polynomials on {-1,-1/3,1/3,1}
func lagrange1d4(x float64, n, dn []float64) {
	x2 := x * x
	n[0] = -(9.0 / 16.0) * (x2*x - x2 - x/9.0 + 1.0/9.0)
	n[1] = (27.0 / 16.0) * (x2*x - x2/3.0 - x + 1.0/3.0)
	n[2] = -(27.0 / 16.0) * (x2*x + x2/3.0 - x - 1.0/3.0)
	n[3] = (9.0 / 16.0) * (x2*x + x2 - x/9.0 - 1.0/9.0)
	dn[0] = -(9.0 / 16.0) * (3.0*x2 - 2.0*x - 1.0/9.0)
	dn[1] = (27.0 / 16.0) * (3.0*x2 - 2.0*x/3.0 - 1.0)
	dn[2] = -(27.0 / 16.0) * (3.0*x2 + 2.0*x/3.0 - 1.0)
	dn[3] = (9.0 / 16.0) * (3.0*x2 + 2.0*x - 1.0/9.0)
}

// Qua4 implements the bilinear 4-node quadrilateral
//
//      3 ------- 2
//      |         |
//      |         |
//      0 ------- 1
//
type Qua4 struct{}

var natCoordsQua4 = [][]float64{
	{-1, 1, 1, -1},
	{-1, -1, 1, 1},
}

// Type returns the type name
func (o *Qua4) Type() string { return "qua4" }

// NumNodes returns the number of nodes
func (o *Qua4) NumNodes() int { return 4 }

// NumParams returns the number of natural coordinates
func (o *Qua4) NumParams() int { return 2 }

// NatCoords returns the natural coordinates of nodes
func (o *Qua4) NatCoords() [][]float64 { return natCoordsQua4 }

// IntPoints returns the quadrature scheme
func (o *Qua4) IntPoints() []Ipoint { return ipsQua4 }

// EvalBasis computes shape functions and derivatives @ r
func (o *Qua4) EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) {
	for m := 0; m < 4; m++ {
		a := natCoordsQua4[0][m]
		b := natCoordsQua4[1][m]
		S[m] = 0.25 * (1.0 + a*r[0]) * (1.0 + b*r[1])
		if derivs {
			dSdR[m][0] = 0.25 * a * (1.0 + b*r[1])
			dSdR[m][1] = 0.25 * b * (1.0 + a*r[0])
		}
	}
}

// Qua9 implements the biquadratic 9-node quadrilateral with tensor-product
// Lagrange ordering (node m = j*3+i over the {-1,0,1} grid)
type Qua9 struct{}

var natCoordsQua9 = tensorNatCoords(3)

// Type returns the type name
func (o *Qua9) Type() string { return "qua9" }

// NumNodes returns the number of nodes
func (o *Qua9) NumNodes() int { return 9 }

// NumParams returns the number of natural coordinates
func (o *Qua9) NumParams() int { return 2 }

// NatCoords returns the natural coordinates of nodes
func (o *Qua9) NatCoords() [][]float64 { return natCoordsQua9 }

// IntPoints returns the quadrature scheme
func (o *Qua9) IntPoints() []Ipoint { return ipsQua9 }

// EvalBasis computes shape functions and derivatives @ r
func (o *Qua9) EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) {
	var na, nb, da, db [3]float64
	lagrange1d3(r[0], na[:], da[:])
	lagrange1d3(r[1], nb[:], db[:])
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			m := j*3 + i
			S[m] = na[i] * nb[j]
			if derivs {
				dSdR[m][0] = da[i] * nb[j]
				dSdR[m][1] = na[i] * db[j]
			}
		}
	}
}

// Qua16 implements the bicubic 16-node quadrilateral with tensor-product
// Lagrange ordering (node m = j*4+i over the {-1,-1/3,1/3,1} grid)
type Qua16 struct{}

var natCoordsQua16 = tensorNatCoords(4)

// Type returns the type name
func (o *Qua16) Type() string { return "qua16" }

// NumNodes returns the number of nodes
func (o *Qua16) NumNodes() int { return 16 }

// NumParams returns the number of natural coordinates
func (o *Qua16) NumParams() int { return 2 }

// NatCoords returns the natural coordinates of nodes
func (o *Qua16) NatCoords() [][]float64 { return natCoordsQua16 }

// IntPoints returns the quadrature scheme
func (o *Qua16) IntPoints() []Ipoint { return ipsQua16 }

// EvalBasis computes shape functions and derivatives @ r
func (o *Qua16) EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) {
	var na, nb, da, db [4]float64
	lagrange1d4(r[0], na[:], da[:])
	lagrange1d4(r[1], nb[:], db[:])
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			m := j*4 + i
			S[m] = na[i] * nb[j]
			if derivs {
				dSdR[m][0] = da[i] * nb[j]
				dSdR[m][1] = na[i] * db[j]
			}
		}
	}
}

// tensorNatCoords builds [2][n*n] nodal natural coordinates for an n x n
// tensor-product Lagrange grid on [-1,1]
func tensorNatCoords(n int) [][]float64 {
	grid := utl.LinSpace(-1, 1, n)
	nc := [][]float64{make([]float64, n*n), make([]float64, n*n)}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			nc[0][j*n+i] = grid[i]
			nc[1][j*n+i] = grid[j]
		}
	}
	return nc
}
