// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package sets implement a set type as a `map[T]struct{}` with some ergonomics.
package sets

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Set of keys of type T. A nil Set is a valid empty set for reading.
type Set[T comparable] map[T]struct{}

// MakeWith creates a Set[T] with the given elements inserted.
func MakeWith[T comparable](elements ...T) Set[T] {
	s := make(Set[T], len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if Set s has the given key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert keys into set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

// Sub returns the elements of s that are not in s2.
func (s Set[T]) Sub(s2 Set[T]) Set[T] {
	sub := make(Set[T])
	for key := range s {
		if !s2.Has(key) {
			sub.Insert(key)
		}
	}
	return sub
}

// Sorted returns the elements of the set in increasing order.
func Sorted[T constraints.Ordered](s Set[T]) []T {
	keys := make([]T, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
