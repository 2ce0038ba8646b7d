// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mathtest

import (
	"gonum.org/v1/gonum/mat"
)

// elementwise applies fn to the elements of operands, which must have the same dimensions.
func elementwise(operands []*mat.CDense, fn func(values ...complex128) complex128) *mat.CDense {
	rows, cols := operands[0].Dims()
	out := mat.NewCDense(rows, cols, nil)
	values := make([]complex128, len(operands))
	for i := range rows {
		for j := range cols {
			for k, operand := range operands {
				values[k] = operand.At(i, j)
			}
			out.Set(i, j, fn(values...))
		}
	}
	return out
}

func addOracle(operands []*mat.CDense, scale complex128) any {
	return elementwise(operands, func(v ...complex128) complex128 { return v[0] + scale*v[1] })
}

func subOracle(operands []*mat.CDense, _ complex128) any {
	return elementwise(operands, func(v ...complex128) complex128 { return v[0] - v[1] })
}

func negOracle(operands []*mat.CDense, _ complex128) any {
	return elementwise(operands, func(v ...complex128) complex128 { return -v[0] })
}

func traceOracle(operands []*mat.CDense, _ complex128) any {
	x := operands[0]
	rows, _ := x.Dims()
	var sum complex128
	for i := range rows {
		sum += x.At(i, i)
	}
	return sum
}

func matmulOracle(operands []*mat.CDense, _ complex128) any {
	left, right := operands[0], operands[1]
	rows, inner := left.Dims()
	_, cols := right.Dims()
	out := mat.NewCDense(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			var sum complex128
			for k := range inner {
				sum += left.At(i, k) * right.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}
