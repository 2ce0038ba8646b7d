// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package csr

import (
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/repr/dense"
)

func scaleOf(scale []complex128) complex128 {
	if len(scale) > 0 {
		return scale[0]
	}
	return 1
}

// mergeRows returns `left + s*right` by merging the sorted rows of both matrices.
// Zeros resulting from cancellation are kept as explicit entries.
func mergeRows(left, right *CSR, s complex128) *CSR {
	out := Zeros(left.rows, left.cols)
	for i := range left.rows {
		lCols, lValues := left.row(i)
		rCols, rValues := right.row(i)
		li, ri := 0, 0
		for li < len(lCols) || ri < len(rCols) {
			switch {
			case ri >= len(rCols) || (li < len(lCols) && lCols[li] < rCols[ri]):
				out.colIndices = append(out.colIndices, lCols[li])
				out.values = append(out.values, lValues[li])
				li++
			case li >= len(lCols) || rCols[ri] < lCols[li]:
				out.colIndices = append(out.colIndices, rCols[ri])
				out.values = append(out.values, s*rValues[ri])
				ri++
			default:
				out.colIndices = append(out.colIndices, lCols[li])
				out.values = append(out.values, lValues[li]+s*rValues[ri])
				li++
				ri++
			}
		}
		out.rowPtr[i+1] = len(out.values)
	}
	return out
}

// Add returns `left + scale*right`. The scale is optional, and defaults to 1.
func Add(left, right *CSR, scale ...complex128) (*CSR, error) {
	if left.rows != right.rows || left.cols != right.cols {
		return nil, data.NewShapeError("csr.Add", "operands must have the same shape", left, right)
	}
	return mergeRows(left, right, scaleOf(scale)), nil
}

// Sub returns `left - right`.
func Sub(left, right *CSR) (*CSR, error) {
	if left.rows != right.rows || left.cols != right.cols {
		return nil, data.NewShapeError("csr.Sub", "operands must have the same shape", left, right)
	}
	return mergeRows(left, right, -1), nil
}

// Neg returns `-x`.
func Neg(x *CSR) (*CSR, error) {
	out := &CSR{
		rows:       x.rows,
		cols:       x.cols,
		rowPtr:     append([]int(nil), x.rowPtr...),
		colIndices: append([]int(nil), x.colIndices...),
		values:     make([]complex128, len(x.values)),
	}
	for ii, v := range x.values {
		out.values[ii] = -v
	}
	return out, nil
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(x *CSR) (complex128, error) {
	if x.rows != x.cols {
		return 0, data.NewShapeError("csr.Trace", "operand must be square", x)
	}
	var sum complex128
	for i := range x.rows {
		sum += x.At(i, i)
	}
	return sum, nil
}

// Matmul returns the sparse matrix product `left @ right`.
func Matmul(left, right *CSR) (*CSR, error) {
	if left.cols != right.rows {
		return nil, data.NewShapeError("csr.Matmul", "left columns must match right rows", left, right)
	}
	out := Zeros(left.rows, right.cols)
	// Dense accumulator for one output row, and the marker of which columns were touched.
	acc := make([]complex128, right.cols)
	touched := make([]bool, right.cols)
	for i := range left.rows {
		lCols, lValues := left.row(i)
		for k, col := range lCols {
			rCols, rValues := right.row(col)
			for kk, j := range rCols {
				acc[j] += lValues[k] * rValues[kk]
				touched[j] = true
			}
		}
		for j := range right.cols {
			if touched[j] {
				out.colIndices = append(out.colIndices, j)
				out.values = append(out.values, acc[j])
				acc[j], touched[j] = 0, false
			}
		}
		out.rowPtr[i+1] = len(out.values)
	}
	return out, nil
}

// AddDense returns the dense result of `left + scale*right`. The scale is optional, and defaults to 1.
func AddDense(left *CSR, right *dense.Dense, scale ...complex128) (*dense.Dense, error) {
	rows, cols := right.Dims()
	if left.rows != rows || left.cols != cols {
		return nil, data.NewShapeError("csr.AddDense", "operands must have the same shape", left, right)
	}
	s := scaleOf(scale)
	values := make([]complex128, rows*cols)
	for ii, v := range right.Values() {
		values[ii] = s * v
	}
	for i := range left.rows {
		lCols, lValues := left.row(i)
		for k, j := range lCols {
			values[i*cols+j] += lValues[k]
		}
	}
	return dense.New(rows, cols, values), nil
}

// MatmulDense returns the dense result of `left @ right`.
func MatmulDense(left *CSR, right *dense.Dense) (*dense.Dense, error) {
	rows, cols := right.Dims()
	if left.cols != rows {
		return nil, data.NewShapeError("csr.MatmulDense", "left columns must match right rows", left, right)
	}
	out := dense.New(left.rows, cols, nil)
	outValues, rightValues := out.Values(), right.Values()
	for i := range left.rows {
		lCols, lValues := left.row(i)
		outRow := outValues[i*cols : (i+1)*cols]
		for k, col := range lCols {
			for j, rv := range rightValues[col*cols : (col+1)*cols] {
				outRow[j] += lValues[k] * rv
			}
		}
	}
	return out, nil
}
