// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"github.com/gomlx/opcheck/pkg/core/data"
)

func checkSameShape(op string, l, r *Dense) error {
	if l.rows != r.rows || l.cols != r.cols {
		return data.NewShapeError(op, "operands must have the same shape", l, r)
	}
	return nil
}

// Add returns `left + scale*right`. The scale is optional, and defaults to 1.
func Add(left, right *Dense, scale ...complex128) (*Dense, error) {
	if err := checkSameShape("dense.Add", left, right); err != nil {
		return nil, err
	}
	s := complex(1, 0)
	if len(scale) > 0 {
		s = scale[0]
	}
	out := New(left.rows, left.cols, nil)
	for ii, v := range left.values {
		out.values[ii] = v + s*right.values[ii]
	}
	return out, nil
}

// Sub returns `left - right`.
func Sub(left, right *Dense) (*Dense, error) {
	if err := checkSameShape("dense.Sub", left, right); err != nil {
		return nil, err
	}
	out := New(left.rows, left.cols, nil)
	for ii, v := range left.values {
		out.values[ii] = v - right.values[ii]
	}
	return out, nil
}

// Neg returns `-x`.
func Neg(x *Dense) (*Dense, error) {
	out := New(x.rows, x.cols, nil)
	for ii, v := range x.values {
		out.values[ii] = -v
	}
	return out, nil
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(x *Dense) (complex128, error) {
	if x.rows != x.cols {
		return 0, data.NewShapeError("dense.Trace", "operand must be square", x)
	}
	var sum complex128
	for i := range x.rows {
		sum += x.values[i*x.cols+i]
	}
	return sum, nil
}

// Matmul returns the matrix product `left @ right`.
func Matmul(left, right *Dense) (*Dense, error) {
	if left.cols != right.rows {
		return nil, data.NewShapeError("dense.Matmul", "left columns must match right rows", left, right)
	}
	out := New(left.rows, right.cols, nil)
	for i := range left.rows {
		outRow := out.values[i*right.cols : (i+1)*right.cols]
		for k := range left.cols {
			lv := left.values[i*left.cols+k]
			if lv == 0 {
				continue
			}
			rightRow := right.values[k*right.cols : (k+1)*right.cols]
			for j, rv := range rightRow {
				outRow[j] += lv * rv
			}
		}
	}
	return out, nil
}
