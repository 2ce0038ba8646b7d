// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide missing functionality to the slices package.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) (out Out)) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// Product returns the Cartesian product of the given lists: one combination per output element,
// taking one element of each list.
//
// The order is the same as Python's itertools.product: lexicographic in the position of the
// elements in each list, with the last list varying fastest. If any list is empty, or if no list
// is given, the result is empty.
func Product[T any](lists ...[]T) [][]T {
	if len(lists) == 0 {
		return nil
	}
	total := 1
	for _, list := range lists {
		total *= len(list)
	}
	if total == 0 {
		return nil
	}
	combinations := make([][]T, 0, total)
	indices := make([]int, len(lists))
	for {
		combination := make([]T, len(lists))
		for ii, idx := range indices {
			combination[ii] = lists[ii][idx]
		}
		combinations = append(combinations, combination)

		// Increment indices, last one first.
		pos := len(lists) - 1
		for ; pos >= 0; pos-- {
			indices[pos]++
			if indices[pos] < len(lists[pos]) {
				break
			}
			indices[pos] = 0
		}
		if pos < 0 {
			return combinations
		}
	}
}

// ProductSize returns the number of elements Product would return for lists of the given sizes.
func ProductSize[I constraints.Integer](sizes ...I) I {
	if len(sizes) == 0 {
		return 0
	}
	var total I = 1
	for _, size := range sizes {
		total *= size
	}
	return total
}

// Sum of the values.
func Sum[T constraints.Integer | constraints.Float](values []T) (sum T) {
	for _, v := range values {
		sum += v
	}
	return
}
