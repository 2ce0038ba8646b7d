// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dense implements the Dense representation type: a complex128 matrix stored in row-major order.
//
// It registers itself in the case catalogs (with one random case per shape) during initialization.
package dense

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"gonum.org/v1/gonum/mat"
)

// Dense is a complex128 matrix stored in row-major order.
type Dense struct {
	rows, cols int
	values     []complex128
}

// Type of Dense.
var Type = data.Register[*Dense]("Dense", dtypes.Complex128)

func init() {
	catalog.All.Register(Type, catalog.Single(func(s shapes.Shape) data.Data { return Random(s) }))
	catalog.Random.Register(Type, catalog.Single(func(s shapes.Shape) data.Data { return Random(s) }))
}

// New returns a Dense matrix with the given values in row-major order. If values is nil, a zero matrix
// is created. It panics if the dimensions are not positive or don't match the number of values.
func New(rows, cols int, values []complex128) *Dense {
	if rows <= 0 || cols <= 0 {
		exceptions.Panicf("dense.New(%d, %d): dimensions must be > 0", rows, cols)
	}
	if values == nil {
		values = make([]complex128, rows*cols)
	} else if len(values) != rows*cols {
		exceptions.Panicf("dense.New(%d, %d): %d values given, wanted %d", rows, cols, len(values), rows*cols)
	}
	return &Dense{rows: rows, cols: cols, values: values}
}

// FromArray copies any complex matrix into a new Dense.
func FromArray(a mat.CMatrix) *Dense {
	rows, cols := a.Dims()
	d := New(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			d.values[i*cols+j] = a.At(i, j)
		}
	}
	return d
}

// Random returns a new Dense matrix of the given shape, with random real and imaginary parts in [0, 1).
func Random(shape shapes.Shape) *Dense {
	return FromArray(data.RandomArray(shape.Rows, shape.Cols))
}

// Dims implements data.Data.
func (d *Dense) Dims() (rows, cols int) { return d.rows, d.cols }

// At returns the element at row i and column j.
func (d *Dense) At(i, j int) complex128 { return d.values[i*d.cols+j] }

// Values returns the underlying row-major values, not a copy.
func (d *Dense) Values() []complex128 { return d.values }

// ToArray implements data.Data.
func (d *Dense) ToArray() *mat.CDense {
	values := make([]complex128, len(d.values))
	copy(values, d.values)
	return mat.NewCDense(d.rows, d.cols, values)
}
