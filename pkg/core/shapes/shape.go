// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines the 2D Shape of the operands used to test numeric operations, and
// the ShapeSpace: the enumeration of labeled base shapes and the derived sets of compatible and
// incompatible operand shape tuples.
//
// ## Glossary
//
//   - Shape: (rows, cols) descriptor, optionally carrying a symbolic label (e.g.: "ket").
//   - Tuple: one Shape per operand of an operation.
//   - Compatibility: a predicate telling whether two operand shapes can be combined by an operation.
//
// Example: the unary base shapes for dimension 100 are
// `scalar=(1,1)`, `bra=(1,100)`, `ket=(100,1)`, `square=(100,100)` and `nonsquare=(2,100)`.
package shapes

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Shape of a 2D operand. It is immutable and can be compared with `==`.
//
// Use Make or MakeLabeled to create a new shape.
type Shape struct {
	Rows, Cols int

	// Label is a symbolic name for the shape, used to build test case identifiers.
	// It may be empty.
	Label string
}

// Make returns an unlabeled Shape with the given dimensions. It panics if any dimension is <= 0.
func Make(rows, cols int) Shape {
	return MakeLabeled("", rows, cols)
}

// MakeLabeled returns a Shape with the given label and dimensions. It panics if any dimension is <= 0.
func MakeLabeled(label string, rows, cols int) Shape {
	s := Shape{Rows: rows, Cols: cols, Label: label}
	if rows <= 0 || cols <= 0 {
		exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension <= 0", s)
	}
	return s
}

// Dims returns rows and cols, in the same order as gonum's mat.Matrix.Dims.
func (s Shape) Dims() (rows, cols int) { return s.Rows, s.Cols }

// Size returns the number of elements: rows*cols.
func (s Shape) Size() int { return s.Rows * s.Cols }

// Memory returns the number of bytes used to store an operand of this shape with the given dtype.
func (s Shape) Memory(dtype dtypes.DType) uintptr {
	return dtype.Memory() * uintptr(s.Size())
}

// IsSquare returns whether rows == cols.
func (s Shape) IsSquare() bool { return s.Rows == s.Cols }

// EqualDims compares only the dimensions of the shapes, ignoring the labels.
func (s Shape) EqualDims(s2 Shape) bool {
	return s.Rows == s2.Rows && s.Cols == s2.Cols
}

// WithLabel returns a copy of the shape with the label replaced.
func (s Shape) WithLabel(label string) Shape {
	s.Label = label
	return s
}

// String implements fmt.Stringer. E.g.: "ket(100,1)", or "(3,4)" for an unlabeled shape.
func (s Shape) String() string {
	return fmt.Sprintf("%s(%d,%d)", s.Label, s.Rows, s.Cols)
}

// Tuple holds one Shape per operand of an operation.
type Tuple []Shape

// Pair returns a Tuple of 2 shapes.
func Pair(left, right Shape) Tuple { return Tuple{left, right} }

// Labels returns the labels of the shapes in the tuple.
func (t Tuple) Labels() []string {
	labels := make([]string, len(t))
	for ii, s := range t {
		labels[ii] = s.Label
	}
	return labels
}

// String implements fmt.Stringer.
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for ii, s := range t {
		parts[ii] = s.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
