// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mathtest

import (
	"testing"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/gomlx/opcheck/pkg/opcheck/opchecktest"
	"github.com/gomlx/opcheck/pkg/repr/dense"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAdd(t *testing.T) {
	opchecktest.Run(t, Add(opchecktest.Config(t).Dim))
}

func TestSub(t *testing.T) {
	opchecktest.Run(t, Sub(opchecktest.Config(t).Dim))
}

func TestNeg(t *testing.T) {
	opchecktest.Run(t, Neg(opchecktest.Config(t).Dim))
}

func TestTrace(t *testing.T) {
	opchecktest.Run(t, Trace(opchecktest.Config(t).Dim))
}

func TestMatmul(t *testing.T) {
	opchecktest.Run(t, Matmul(opchecktest.Config(t).Dim))
}

func TestNumCases(t *testing.T) {
	// Variants in catalog.All: Dense has 1, Split and CSR have 2 each.
	for _, tc := range []struct {
		unit            *opcheck.Unit
		correct, raises int
	}{
		{Add(5), 5 * (1 + 4 + 4 + 2), 20 * 4},
		{Sub(5), 5 * (1 + 4 + 4), 20 * 3},
		{Neg(5), 5 * (1 + 2 + 2), 1},
		{Trace(5), 2 * (1 + 2 + 2), 3 * 3},
		{Matmul(5), 10 * (1 + 4 + 4 + 2), 15 * 4},
	} {
		t.Run(tc.unit.Name, func(t *testing.T) {
			c := must.M1(opcheck.Collect(tc.unit, opcheck.TestMathematicallyCorrect))
			assert.Len(t, c.Cases(), tc.correct)
			assert.Zero(t, c.NumSkipped())
			c = must.M1(opcheck.Collect(tc.unit, opcheck.TestIncorrectShapeRaises))
			assert.Len(t, c.Cases(), tc.raises)
		})
	}

	c := must.M1(opcheck.Collect(Neg(5), opcheck.TestIncorrectShapeRaises))
	require.Equal(t, 1, c.NumSkipped())
	assert.Equal(t, "no shapes are 'incorrect' for Neg::incorrect_shape_raises", c.Cases()[0].Reason)
}

func TestAddScaledDense(t *testing.T) {
	square := shapes.Make(shapes.DefaultDim, shapes.DefaultDim)
	testCases, err := cases.Product(catalog.All, DenseAdd, []*data.Type{dense.Type, dense.Type},
		[]shapes.Tuple{{square, square}}, dense.Type)
	require.NoError(t, err)
	require.Len(t, testCases, 1)
	tc := testCases[0]
	require.Equal(t, "Dense,Dense->Dense", tc.ID)

	operands := tc.Materialize()
	got, err := tc.Op.Call(operands[0], operands[1], 0.5i)
	require.NoError(t, err)
	require.True(t, dense.Type.Is(got))

	left, right := operands[0].ToArray(), operands[1].ToArray()
	want := mat.NewCDense(shapes.DefaultDim, shapes.DefaultDim, nil)
	for i := range shapes.DefaultDim {
		for j := range shapes.DefaultDim {
			want.Set(i, j, left.At(i, j)+0.5i*right.At(i, j))
		}
	}
	opchecktest.RequireClose(t, want, got.(data.Data).ToArray(), opcheck.DefaultTol)
}

func TestOracles(t *testing.T) {
	l := mat.NewCDense(2, 2, []complex128{1, 2, 3, 4})
	r := mat.NewCDense(2, 2, []complex128{1i, 0, 0, 1i})
	operands := []*mat.CDense{l, r}

	assert.True(t, mat.CEqual(mat.NewCDense(2, 2, []complex128{1 - 2, 2, 3, 4 - 2}), addOracle(operands, 2i).(*mat.CDense)))
	assert.True(t, mat.CEqual(mat.NewCDense(2, 2, []complex128{1 - 1i, 2, 3, 4 - 1i}), subOracle(operands, 1).(*mat.CDense)))
	assert.True(t, mat.CEqual(mat.NewCDense(2, 2, []complex128{-1, -2, -3, -4}), negOracle(operands, 1).(*mat.CDense)))
	assert.Equal(t, complex(5, 0), traceOracle(operands, 1))
	assert.True(t, mat.CEqual(mat.NewCDense(2, 2, []complex128{1i, 2i, 3i, 4i}), matmulOracle(operands, 1).(*mat.CDense)))
}
