// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package split implements the Split representation type: a complex matrix stored as two real gonum
// matrices, one for the real part and one for the imaginary part.
//
// Its kernels are written with gonum's real linear algebra. Dimension mismatches, which gonum reports
// by panicking with mat.ErrShape, are converted to *data.ShapeError.
package split

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"gonum.org/v1/gonum/mat"
)

// Split is a complex matrix stored as separate real and imaginary parts.
type Split struct {
	re, im *mat.Dense
}

// Type of Split. Its elements are pairs of float64, but the represented values are complex128.
var Type = data.Register[*Split]("Split", dtypes.Complex128)

func init() {
	catalog.All.Register(Type, func(s shapes.Shape) []catalog.Variant {
		return []catalog.Variant{
			{Factory: func() data.Data { return Random(s) }},
			{ID: "real", Factory: func() data.Data { return RandomReal(s) }},
		}
	})
	catalog.Random.Register(Type, catalog.Single(func(s shapes.Shape) data.Data { return Random(s) }))
}

// New returns a Split matrix from its real and imaginary parts, which are not copied.
// If im is nil, it is set to zero. It panics if the parts have different dimensions.
func New(re, im *mat.Dense) *Split {
	rows, cols := re.Dims()
	if im == nil {
		im = mat.NewDense(rows, cols, nil)
	}
	if imRows, imCols := im.Dims(); imRows != rows || imCols != cols {
		exceptions.Panicf("split.New: real part is (%d,%d) but imaginary part is (%d,%d)", rows, cols, imRows, imCols)
	}
	return &Split{re: re, im: im}
}

// Zeros returns a zero Split matrix.
func Zeros(rows, cols int) *Split {
	return New(mat.NewDense(rows, cols, nil), nil)
}

// FromArray copies any complex matrix into a new Split.
func FromArray(a mat.CMatrix) *Split {
	rows, cols := a.Dims()
	s := Zeros(rows, cols)
	for i := range rows {
		for j := range cols {
			v := a.At(i, j)
			s.re.Set(i, j, real(v))
			s.im.Set(i, j, imag(v))
		}
	}
	return s
}

// Random returns a new Split matrix of the given shape, with random real and imaginary parts in [0, 1).
func Random(shape shapes.Shape) *Split {
	return FromArray(data.RandomArray(shape.Rows, shape.Cols))
}

// RandomReal returns a new Split matrix of the given shape, with random real parts in [0, 1) and
// zero imaginary parts.
func RandomReal(shape shapes.Shape) *Split {
	s := Random(shape)
	s.im.Zero()
	return s
}

// Dims implements data.Data.
func (s *Split) Dims() (rows, cols int) { return s.re.Dims() }

// Real returns the real part, not a copy.
func (s *Split) Real() *mat.Dense { return s.re }

// Imag returns the imaginary part, not a copy.
func (s *Split) Imag() *mat.Dense { return s.im }

// At returns the element at row i and column j.
func (s *Split) At(i, j int) complex128 { return complex(s.re.At(i, j), s.im.At(i, j)) }

// ToArray implements data.Data.
func (s *Split) ToArray() *mat.CDense {
	rows, cols := s.Dims()
	a := mat.NewCDense(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			a.Set(i, j, s.At(i, j))
		}
	}
	return a
}
