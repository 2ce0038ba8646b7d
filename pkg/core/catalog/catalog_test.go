// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type counter struct {
	rows, cols int
	id         int
}

func (c *counter) Dims() (int, int)     { return c.rows, c.cols }
func (c *counter) ToArray() *mat.CDense { return mat.NewCDense(c.rows, c.cols, nil) }

var counterType = data.Register[*counter]("catalogCounter", dtypes.Complex128)

func TestCatalog(t *testing.T) {
	numCalls := 0
	cat := New("test")
	cat.Register(counterType, Single(func(shape shapes.Shape) data.Data {
		numCalls++
		return &counter{rows: shape.Rows, cols: shape.Cols, id: numCalls}
	}))
	require.True(t, cat.Has(counterType))
	require.Panics(t, func() { cat.Register(counterType, nil) })
	require.Panics(t, func() { cat.Register(data.Complex128, nil) })

	ket := shapes.MakeLabeled(shapes.LabelKet, 4, 1)
	variants, err := cat.Lookup(counterType, ket)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	require.Equal(t, 0, numCalls, "factories must not be invoked at lookup time")

	// Every invocation creates a fresh instance.
	first := variants[0].Factory().(*counter)
	second := variants[0].Factory().(*counter)
	require.NotSame(t, first, second)
	require.Equal(t, 2, numCalls)
	rows, cols := first.Dims()
	require.Equal(t, [2]int{4, 1}, [2]int{rows, cols})

	_, err = New("empty").Lookup(counterType, ket)
	require.ErrorContains(t, err, "catalogCounter")
}

func TestLabel(t *testing.T) {
	square := shapes.MakeLabeled(shapes.LabelSquare, 3, 3)
	unlabeled := shapes.Make(3, 3)
	require.Equal(t, "catalogCounter[square]", Label(counterType, square, Variant{}))
	require.Equal(t, "catalogCounter[square,identity]", Label(counterType, square, Variant{ID: "identity"}))
	require.Equal(t, "catalogCounter[zero]", Label(counterType, unlabeled, Variant{ID: "zero"}))
	require.Equal(t, "catalogCounter", Label(counterType, unlabeled, Variant{}))
}
