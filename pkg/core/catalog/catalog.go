// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package catalog maps (representation type, shape) to the ordered list of data factories to test.
//
// There is a layer of indirection: cases are stored as zero-argument factories, not values, so:
//
//  1. No data is held at collection time: operands are only generated, and released, within
//     each individual test case.
//  2. Each test case can be repeated, and new random data is generated on each repetition.
//
// Two catalogs are provided, filled by the backend packages during initialization:
//
//   - All: every special case worth testing exhaustively, for tests of mathematical correctness.
//   - Random: exactly one representative case, for tests where exhaustiveness would inflate
//     runtime without adding coverage (e.g. error paths).
//
// Keep the number of cases per entry low: operations test the Cartesian product of the cases
// of each of their operands, which can get very large very fast.
package catalog

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Factory returns a fresh, independently randomized, data instance. Factories are never cached:
// they are invoked once for each execution of a test case.
type Factory func() data.Data

// Variant is one labeled Factory of a catalog entry. ID is optional and may be empty.
type Variant struct {
	ID      string
	Factory Factory
}

// Generator returns the variants to test for a given shape.
type Generator func(shape shapes.Shape) []Variant

// Catalog maps representation types to the Generator of their variants.
//
// It must only be modified during initialization, after that it is safe for concurrent use.
type Catalog struct {
	name       string
	generators map[*data.Type]Generator
}

// New creates an empty Catalog.
func New(name string) *Catalog {
	return &Catalog{name: name, generators: make(map[*data.Type]Generator)}
}

var (
	// All is the catalog of all special cases to test for mathematical correctness.
	All = New("ALL")

	// Random is the catalog with a single representative case per type and shape.
	Random = New("RANDOM")
)

// Name of the catalog.
func (c *Catalog) Name() string { return c.name }

// Register the generator of variants for the representation type t.
//
// It panics if t is not tensor-like or if it was already registered.
func (c *Catalog) Register(t *data.Type, generator Generator) {
	if !t.IsData() {
		exceptions.Panicf("catalog %s: cannot register type %s, it doesn't implement data.Data", c.name, t)
	}
	if _, found := c.generators[t]; found {
		exceptions.Panicf("catalog %s: type %s already registered", c.name, t)
	}
	c.generators[t] = generator
}

// Has returns whether the type t has been registered in the catalog.
func (c *Catalog) Has(t *data.Type) bool {
	_, found := c.generators[t]
	return found
}

// Lookup returns the ordered variants for type t and the given shape.
func (c *Catalog) Lookup(t *data.Type, shape shapes.Shape) ([]Variant, error) {
	generator, found := c.generators[t]
	if !found {
		return nil, errors.Errorf("catalog %s has no cases for type %s", c.name, t)
	}
	variants := generator(shape)
	if len(variants) == 0 {
		return nil, errors.Errorf("catalog %s has no cases for type %s with shape %s", c.name, t, shape)
	}
	return variants, nil
}

// Single returns a Generator of exactly one unlabeled variant, that calls newFn with the requested shape.
func Single(newFn func(shape shapes.Shape) data.Data) Generator {
	return func(shape shapes.Shape) []Variant {
		return []Variant{{Factory: func() data.Data { return newFn(shape) }}}
	}
}

// Label builds the identifier of one case: the type name, followed by the shape label and
// variant id in brackets, if any of them is set. E.g.: "Dense[square]", "CSR[ket,identity]" or "Dense".
func Label(t *data.Type, shape shapes.Shape, variant Variant) string {
	var inner []string
	for _, extra := range []string{shape.Label, variant.ID} {
		if extra != "" {
			inner = append(inner, extra)
		}
	}
	if len(inner) == 0 {
		return t.Name()
	}
	return t.Name() + "[" + strings.Join(inner, ",") + "]"
}
