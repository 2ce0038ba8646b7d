// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package csr implements the CSR representation type: a sparse complex matrix in compressed sparse
// row format.
//
// Besides the kernels between CSR matrices, it provides mixed kernels with dense.Dense operands,
// which return dense results.
package csr

import (
	"math/rand/v2"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"gonum.org/v1/gonum/mat"
)

// DefaultDensity is the fraction of non-zero elements of random CSR matrices.
const DefaultDensity = 0.3

// CSR is a complex matrix in compressed sparse row format: the non-zero elements of row i are
// values[rowPtr[i]:rowPtr[i+1]], in the columns colIndices[rowPtr[i]:rowPtr[i+1]], sorted.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIndices []int
	values     []complex128
}

// Type of CSR.
var Type = data.Register[*CSR]("CSR", dtypes.Complex128)

func init() {
	catalog.All.Register(Type, func(s shapes.Shape) []catalog.Variant {
		return []catalog.Variant{
			{ID: "sparse", Factory: func() data.Data { return Random(s, DefaultDensity) }},
			{ID: "full", Factory: func() data.Data { return Random(s, 1) }},
		}
	})
	catalog.Random.Register(Type, catalog.Single(func(s shapes.Shape) data.Data { return Random(s, DefaultDensity) }))
}

// Zeros returns an empty (all zeros) CSR matrix.
func Zeros(rows, cols int) *CSR {
	if rows <= 0 || cols <= 0 {
		exceptions.Panicf("csr.Zeros(%d, %d): dimensions must be > 0", rows, cols)
	}
	return &CSR{rows: rows, cols: cols, rowPtr: make([]int, rows+1)}
}

// FromArray converts any complex matrix to CSR, keeping only its non-zero elements.
func FromArray(a mat.CMatrix) *CSR {
	rows, cols := a.Dims()
	m := Zeros(rows, cols)
	for i := range rows {
		for j := range cols {
			if v := a.At(i, j); v != 0 {
				m.colIndices = append(m.colIndices, j)
				m.values = append(m.values, v)
			}
		}
		m.rowPtr[i+1] = len(m.values)
	}
	return m
}

// Random returns a CSR matrix of the given shape, where each element is non-zero with probability
// density, with random real and imaginary parts in [0, 1).
func Random(shape shapes.Shape, density float64) *CSR {
	m := Zeros(shape.Rows, shape.Cols)
	for i := range shape.Rows {
		for j := range shape.Cols {
			if rand.Float64() < density {
				m.colIndices = append(m.colIndices, j)
				m.values = append(m.values, complex(rand.Float64(), rand.Float64()))
			}
		}
		m.rowPtr[i+1] = len(m.values)
	}
	return m
}

// Dims implements data.Data.
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored (non-zero) elements.
func (m *CSR) NNZ() int { return len(m.values) }

// Density returns the fraction of stored elements.
func (m *CSR) Density() float64 { return float64(m.NNZ()) / float64(m.rows*m.cols) }

// row returns the column indices and values of row i.
func (m *CSR) row(i int) ([]int, []complex128) {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIndices[start:end], m.values[start:end]
}

// At returns the element at row i and column j.
func (m *CSR) At(i, j int) complex128 {
	cols, values := m.row(i)
	for k, col := range cols {
		if col == j {
			return values[k]
		}
		if col > j {
			break
		}
	}
	return 0
}

// ToArray implements data.Data.
func (m *CSR) ToArray() *mat.CDense {
	a := mat.NewCDense(m.rows, m.cols, nil)
	for i := range m.rows {
		cols, values := m.row(i)
		for k, j := range cols {
			a.Set(i, j, values[k])
		}
	}
	return a
}
