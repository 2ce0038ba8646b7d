// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package data defines the narrow contracts through which numeric backends ("representation types")
// are consumed when testing polymorphic operations:
//
//   - Data: an instance of a backend, exposing its dimensions and its conversion to the canonical
//     dense array (a gonum *mat.CDense), used only to compute the expected values.
//   - Type: an opaque tag naming one backend (or a scalar output type), registered once during
//     package initialization and used as a key of the case catalogs.
//   - ShapeError: the error backend operations return for incompatible operand shapes.
package data

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Data is an instance of a matrix backend.
type Data interface {
	// Dims returns the number of rows and columns, in the same order as gonum's mat.Matrix.
	Dims() (rows, cols int)

	// ToArray converts the instance to a newly allocated canonical dense array.
	ToArray() *mat.CDense
}

// ErrNotImplemented is returned by backends for operations they don't support.
var ErrNotImplemented = errors.New("not implemented")

// RandomArray returns a dense array with real and imaginary parts of each element
// drawn uniformly from [0, 1).
//
// It uses the global random source, so every call returns different values.
func RandomArray(rows, cols int) *mat.CDense {
	values := make([]complex128, rows*cols)
	for ii := range values {
		values[ii] = complex(rand.Float64(), rand.Float64())
	}
	return mat.NewCDense(rows, cols, values)
}
