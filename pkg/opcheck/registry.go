// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"maps"
	"slices"

	"github.com/gomlx/exceptions"
)

// Generator computes the parametrization of one test of the unit, and registers it in the collection.
type Generator func(unit *Unit, c *Collection) error

// Registry maps test names to the Generator of their parametrization.
//
// It must only be modified during initialization, after that it is safe for concurrent use.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// DefaultRegistry holds the generators of the standard tests.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(TestMathematicallyCorrect, GenerateMathematicallyCorrect)
	DefaultRegistry.Register(TestIncorrectShapeRaises, GenerateIncorrectShapeRaises)
}

// Register the generator for the test name. It panics if the name is already registered.
func (r *Registry) Register(testName string, generator Generator) {
	if _, found := r.generators[testName]; found {
		exceptions.Panicf("opcheck.Registry: generator for test %q already registered", testName)
	}
	r.generators[testName] = generator
}

// Lookup returns the generator for the test name, if one is registered.
func (r *Registry) Lookup(testName string) (Generator, bool) {
	generator, found := r.generators[testName]
	return generator, found
}

// With returns a new Registry with the generators of r, overridden or extended by the given ones.
func (r *Registry) With(overrides map[string]Generator) *Registry {
	if len(overrides) == 0 {
		return r
	}
	merged := &Registry{generators: maps.Clone(r.generators)}
	maps.Copy(merged.generators, overrides)
	return merged
}

// TestNames returns the names of the tests with a registered generator, sorted.
func (r *Registry) TestNames() []string {
	return slices.Sorted(maps.Keys(r.generators))
}
