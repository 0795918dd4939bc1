// Copyright 2017 The Gofes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements nodal interpolation (shape) functions and
// quadrature schemes for 2D reference elements
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Ipoint holds integration point data: natural coordinates and weight
//  ip[0]=r, ip[1]=s, ip[2]=t, ip[3]=weight
type Ipoint []float64

// Basis defines the interpolation and quadrature capabilities of a
// reference element geometry. Implementations are stateless: EvalBasis
// writes into caller-owned slices and may be called concurrently
type Basis interface {
	Type() string                                            // type name; e.g. "tri6"
	NumNodes() int                                           // number of nodes
	NumParams() int                                          // number of natural coordinates (2 for 2D)
	EvalBasis(r []float64, S []float64, dSdR [][]float64, derivs bool) // shape functions and derivatives @ r
	IntPoints() []Ipoint                                     // quadrature scheme; immutable
	NatCoords() [][]float64                                  // [nparams][nnodes] natural coordinates of nodes
}

// allocators holds all available basis functions; typename => allocator
var allocators = map[string]func() Basis{}

// Get returns a basis from the factory
func Get(typename string) (Basis, error) {
	allocator, ok := allocators[typename]
	if !ok {
		return nil, chk.Err("basis %q is not available in 'shp' database; available are %v", typename, Available())
	}
	return allocator(), nil
}

// Available returns the typenames of all available bases
func Available() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// String returns a short description of a basis
func String(b Basis) string {
	return io.Sf("%s{nnodes=%d, nip=%d}", b.Type(), b.NumNodes(), len(b.IntPoints()))
}
