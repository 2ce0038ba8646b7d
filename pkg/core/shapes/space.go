// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

// DefaultDim is the dimension used to build the base shapes if none is configured.
//
// Keep it sensible: the same shapes are reused to build the shape tuples of higher-order operations,
// and the number of test cases grows multiplicatively with the number of operands.
const DefaultDim = 100

// Labels of the base shapes returned by Unary.
const (
	LabelScalar    = "scalar"
	LabelBra       = "bra"
	LabelKet       = "ket"
	LabelSquare    = "square"
	LabelNonSquare = "nonsquare"
)

// Unary returns the base shapes to test for unary operations: a degenerate scalar,
// a bra (row vector), a ket (column vector), a square and a non-square operator.
func Unary(dim int) []Shape {
	return []Shape{
		MakeLabeled(LabelScalar, 1, 1),
		MakeLabeled(LabelBra, 1, dim),
		MakeLabeled(LabelKet, dim, 1),
		MakeLabeled(LabelSquare, dim, dim),
		MakeLabeled(LabelNonSquare, 2, dim),
	}
}

// UnaryTuples wraps each of the shapes in a single element Tuple, optionally filtering them with keep.
func UnaryTuples(shapes []Shape, keep func(s Shape) bool) []Tuple {
	tuples := make([]Tuple, 0, len(shapes))
	for _, s := range shapes {
		if keep == nil || keep(s) {
			tuples = append(tuples, Tuple{s})
		}
	}
	return tuples
}

// Compatibility tells whether left and right operand shapes are valid for a binary operation.
type Compatibility func(left, right Shape) bool

// SameRows requires only the first (row) dimension to match.
func SameRows(left, right Shape) bool { return left.Rows == right.Rows }

// SameShape requires both dimensions to match. It is the compatibility of elementwise operations.
func SameShape(left, right Shape) bool { return left.EqualDims(right) }

// Contractible is the compatibility of matrix multiplication: left cols must match right rows.
func Contractible(left, right Shape) bool { return left.Cols == right.Rows }

// BinaryIdentical returns the allowed shapes for binary operators that need both operands
// to have the same shape (e.g.: addition): each unary shape paired with itself.
func BinaryIdentical(dim int) []Tuple {
	unary := Unary(dim)
	tuples := make([]Tuple, 0, len(unary))
	for _, s := range unary {
		tuples = append(tuples, Pair(s, s))
	}
	return tuples
}

// BinaryBadIdentical returns the disallowed shapes for binary operators that need both operands
// to have the same shape: the 20 pairs of distinct unary shapes.
//
// Notice that some of these pairs (e.g. scalar and bra) share the row dimension, and only differ
// in the columns.
func BinaryBadIdentical(dim int) []Tuple {
	return BinaryIncompatible(dim, SameShape)
}

// BinaryCompatible returns the pairs of the product of Unary(dim) with itself for which compatible holds.
func BinaryCompatible(dim int, compatible Compatibility) []Tuple {
	return binaryFilter(dim, func(left, right Shape) bool { return compatible(left, right) })
}

// BinaryIncompatible returns the pairs of the product of Unary(dim) with itself for which compatible fails.
func BinaryIncompatible(dim int, compatible Compatibility) []Tuple {
	return binaryFilter(dim, func(left, right Shape) bool { return !compatible(left, right) })
}

func binaryFilter(dim int, keep func(left, right Shape) bool) []Tuple {
	unary := Unary(dim)
	var tuples []Tuple
	for _, left := range unary {
		for _, right := range unary {
			if keep(left, right) {
				tuples = append(tuples, Pair(left, right))
			}
		}
	}
	return tuples
}
