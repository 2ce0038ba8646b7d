// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package csr

import (
	"testing"

	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/repr/dense"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func fromValues(rows, cols int, values ...complex128) *CSR {
	return FromArray(mat.NewCDense(rows, cols, values))
}

func requireValues(t *testing.T, want []complex128, got data.Data) {
	rows, cols := got.Dims()
	require.True(t, mat.CEqual(mat.NewCDense(rows, cols, want), got.ToArray()),
		"got %v, wanted %v", got.ToArray().RawCMatrix().Data, want)
}

func TestCSR(t *testing.T) {
	m := fromValues(2, 3, 0, 1i, 0, 2, 0, 3)
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, []int{0, 1, 3}, m.rowPtr)
	assert.Equal(t, []int{1, 0, 2}, m.colIndices)
	assert.Equal(t, 1i, m.At(0, 1))
	assert.Equal(t, complex(0, 0), m.At(0, 2))
	assert.Equal(t, complex(3, 0), m.At(1, 2))
	requireValues(t, []complex128{0, 1i, 0, 2, 0, 3}, m)
	assert.InDelta(t, 0.5, m.Density(), 1e-12)

	require.Zero(t, Random(shapes.Make(10, 10), 0).NNZ())
	require.Equal(t, 100, Random(shapes.Make(10, 10), 1).NNZ())
	require.Panics(t, func() { Zeros(0, 1) })
}

func TestRegistration(t *testing.T) {
	shape := shapes.MakeLabeled(shapes.LabelKet, 4, 1)
	variants, err := catalog.All.Lookup(Type, shape)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "CSR[ket,sparse]", catalog.Label(Type, shape, variants[0]))
	assert.Equal(t, 4, variants[1].Factory().(*CSR).NNZ())
}

func TestOps(t *testing.T) {
	l := fromValues(2, 2, 1, 0, 0, 4)
	r := fromValues(2, 2, 0, 2i, 0, -4)

	sum, err := Add(l, r)
	require.NoError(t, err)
	requireValues(t, []complex128{1, 2i, 0, 0}, sum)

	sum, err = Add(l, r, 0.5i)
	require.NoError(t, err)
	requireValues(t, []complex128{1, -1, 0, 4 - 2i}, sum)

	diff, err := Sub(l, r)
	require.NoError(t, err)
	requireValues(t, []complex128{1, -2i, 0, 8}, diff)

	neg, err := Neg(r)
	require.NoError(t, err)
	requireValues(t, []complex128{0, -2i, 0, 4}, neg)

	trace, err := Trace(r)
	require.NoError(t, err)
	assert.Equal(t, complex(-4, 0), trace)

	prod, err := Matmul(l, r)
	require.NoError(t, err)
	requireValues(t, []complex128{0, 2i, 0, -16}, prod)

	d := dense.New(2, 2, []complex128{1, 1, 1, 1})
	mixed, err := AddDense(l, d, 2)
	require.NoError(t, err)
	requireValues(t, []complex128{3, 2, 2, 6}, mixed)

	mixed, err = MatmulDense(r, d)
	require.NoError(t, err)
	requireValues(t, []complex128{2i, 2i, -4, -4}, mixed)
}

func TestShapeErrors(t *testing.T) {
	ket, bra := Zeros(3, 1), Zeros(1, 3)
	var shapeErr *data.ShapeError

	_, err := Add(ket, bra)
	require.True(t, errors.As(err, &shapeErr))
	_, err = Sub(ket, bra)
	require.True(t, errors.As(err, &shapeErr))
	_, err = Trace(bra)
	require.True(t, errors.As(err, &shapeErr))
	_, err = Matmul(bra, bra)
	require.True(t, errors.As(err, &shapeErr))
	_, err = AddDense(ket, dense.New(1, 3, nil))
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "csr.AddDense", shapeErr.Op)
	_, err = MatmulDense(ket, dense.New(3, 1, nil))
	require.True(t, errors.As(err, &shapeErr))
}
