// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dense

import (
	"testing"

	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d := New(2, 3, []complex128{1, 2, 3, 4, 5, 6i})
	rows, cols := d.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, complex(4, 0), d.At(1, 0))
	assert.Equal(t, 6i, d.ToArray().At(1, 2))
	require.Panics(t, func() { New(0, 3, nil) })
	require.Panics(t, func() { New(2, 2, []complex128{1}) })

	// ToArray must return a copy.
	a := d.ToArray()
	a.Set(0, 0, 100)
	assert.Equal(t, complex(1, 0), d.At(0, 0))
	assert.Equal(t, d.Values(), FromArray(d.ToArray()).Values())
}

func TestRegistration(t *testing.T) {
	require.True(t, Type.Is(&Dense{}))
	require.False(t, Type.Is(complex128(0)))
	byName, err := data.ByName("Dense")
	require.NoError(t, err)
	require.Same(t, Type, byName)

	for _, cat := range []*catalog.Catalog{catalog.All, catalog.Random} {
		variants, err := cat.Lookup(Type, shapes.Make(3, 4))
		require.NoError(t, err)
		require.Len(t, variants, 1)
		x := variants[0].Factory()
		rows, cols := x.Dims()
		require.Equal(t, [2]int{3, 4}, [2]int{rows, cols})
	}
}

func TestOps(t *testing.T) {
	l := New(2, 2, []complex128{1, 2, 3, 4})
	r := New(2, 2, []complex128{1i, 0, 0, 1i})

	sum, err := Add(l, r)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 1i, 2, 3, 4 + 1i}, sum.Values())

	sum, err = Add(l, r, 2i)
	require.NoError(t, err)
	assert.Equal(t, []complex128{-1, 2, 3, 2}, sum.Values())

	diff, err := Sub(l, r)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 - 1i, 2, 3, 4 - 1i}, diff.Values())

	neg, err := Neg(l)
	require.NoError(t, err)
	assert.Equal(t, []complex128{-1, -2, -3, -4}, neg.Values())

	trace, err := Trace(l)
	require.NoError(t, err)
	assert.Equal(t, complex(5, 0), trace)

	prod, err := Matmul(l, r)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1i, 2i, 3i, 4i}, prod.Values())

	prod, err = Matmul(New(1, 2, []complex128{1, 2}), New(2, 1, []complex128{3, 4}))
	require.NoError(t, err)
	assert.Equal(t, []complex128{11}, prod.Values())
}

func TestShapeErrors(t *testing.T) {
	ket, bra := New(3, 1, nil), New(1, 3, nil)
	var shapeErr *data.ShapeError

	_, err := Add(ket, bra)
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "dense.Add", shapeErr.Op)

	_, err = Sub(ket, bra)
	require.True(t, errors.As(err, &shapeErr))

	_, err = Trace(ket)
	require.True(t, errors.As(err, &shapeErr))

	_, err = Matmul(ket, ket)
	require.True(t, errors.As(err, &shapeErr))
	_, err = Matmul(ket, bra)
	require.NoError(t, err)
}
