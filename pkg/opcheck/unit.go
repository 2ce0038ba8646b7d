// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package opcheck turns the declarative configuration of a numeric operation under test (a Unit)
// into concrete test parametrizations.
//
// Each test declared for a Unit (see Unit.Tests) is looked up by name in a Registry of Generators.
// The generator computes the test's cases from the Unit configuration, using the case catalogs
// and the Cartesian-product case builder of package cases, and registers them on a Collection.
// Tests without a generator get no parametrization injected.
//
// The driver that executes the registered cases as Go sub-tests is in package opchecktest.
//
// Generation only reads the Unit and the catalogs, both immutable after initialization, so it is
// safe to collect concurrently, see CollectAll.
package opcheck

import (
	"fmt"
	"slices"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"gonum.org/v1/gonum/mat"
)

// Arity is the number of data operands of the operation under test.
// It selects which standard tests, and their bodies, apply to a Unit.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// OperandPrefix is the prefix of the test parameters that are data operands.
const OperandPrefix = "data_"

// Names of the standard tests.
const (
	TestMathematicallyCorrect = "mathematically_correct"
	TestIncorrectShapeRaises  = "incorrect_shape_raises"
)

// Names of the standard non-operand parameters.
const (
	ParamOp      = "op"
	ParamOutType = "out_type"
	ParamScale   = "scale"
)

// OperandParams returns the names of the data operand parameters for the arity.
func (a Arity) OperandParams() []string {
	switch a {
	case Unary:
		return []string{OperandPrefix + "x"}
	case Binary:
		return []string{OperandPrefix + "l", OperandPrefix + "r"}
	default:
		params := make([]string, 0, int(a))
		for ii := range int(a) {
			params = append(params, OperandPrefix+string(rune('a'+ii)))
		}
		return params
	}
}

// String implements fmt.Stringer.
func (a Arity) String() string {
	switch a {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("%d-ary", int(a))
}

// Oracle computes the expected result of an operation from the dense arrays of its operands.
// It returns a *mat.CDense for tensor-like outputs or a complex128 for scalar outputs.
//
// scale is the value of the optional scalar parameter of the operation (see Unit.Scales), 1 if omitted.
type Oracle func(operands []*mat.CDense, scale complex128) any

// Scale is one value of the extra scalar parameter axis of operations like `left + scale*right`.
type Scale struct {
	// ID of the scale in the test name, e.g. "scale[complex]".
	ID string

	// Omitted means the operation is called without the scale parameter, and the oracle with scale=1.
	Omitted bool
	Value   complex128
}

// DefaultScales are the standard values of the scale axis: omitted, a real and a complex value.
var DefaultScales = []Scale{
	{ID: "unscaled", Omitted: true},
	{ID: "scale[real]", Value: 0.2},
	{ID: "scale[complex]", Value: 0.5i},
}

// DefaultTol is the default absolute tolerance when comparing results to the oracle.
//
// With dimensions around 100, floating-point addition is not associative: the oracle on dense arrays
// often produces slightly different results from backends that sum in a different order.
const DefaultTol = 1e-10

// TestDecl declares one test of a Unit by its name and parameter names.
type TestDecl struct {
	Name   string
	Params []string
}

// Unit is the declarative configuration of the tests of one polymorphic operation.
type Unit struct {
	// Name of the unit, e.g. "Add".
	Name string

	// Arity is the number of data operands.
	Arity Arity

	// Oracle computes the expected result.
	Oracle Oracle

	// Tol is the absolute tolerance, per element for tensor-like results. Defaults to DefaultTol if 0.
	Tol float64

	// Shapes are the valid shape tuples, used by the tests of mathematical correctness.
	Shapes []shapes.Tuple

	// BadShapes are the shape tuples for which the operation must return a shape error.
	// If empty, the negative test is registered as skipped.
	BadShapes []shapes.Tuple

	// Specializations of the operation to test.
	Specializations []cases.Specialization

	// Scales, if not empty, adds the scale parameter axis to the test of mathematical correctness.
	Scales []Scale

	// Extra tests declared by the unit, on top of the standard ones for its arity.
	Extra []TestDecl

	// Generators overrides or extends the default Registry for this unit, by test name.
	Generators map[string]Generator
}

// Tolerance returns the absolute tolerance of the unit.
func (u *Unit) Tolerance() float64 {
	if u.Tol <= 0 {
		return DefaultTol
	}
	return u.Tol
}

// Tests returns the declaration of the standard tests for the unit's arity, followed by its extra tests.
func (u *Unit) Tests() []TestDecl {
	operands := u.Arity.OperandParams()
	correct := append(append([]string{ParamOp}, operands...), ParamOutType)
	if len(u.Scales) > 0 {
		correct = append(correct, ParamScale)
	}
	raises := append([]string{ParamOp}, operands...)
	tests := []TestDecl{
		{Name: TestMathematicallyCorrect, Params: correct},
		{Name: TestIncorrectShapeRaises, Params: raises},
	}
	return append(tests, u.Extra...)
}

// Test returns the declaration of the test with the given name.
func (u *Unit) Test(name string) (TestDecl, bool) {
	for _, decl := range u.Tests() {
		if decl.Name == name {
			return decl, true
		}
	}
	return TestDecl{}, false
}

// Filter returns a shallow copy of the unit keeping only the specializations for which keep returns true.
func (u *Unit) Filter(keep func(spec cases.Specialization) bool) *Unit {
	filtered := *u
	filtered.Specializations = slices.DeleteFunc(slices.Clone(u.Specializations),
		func(spec cases.Specialization) bool { return !keep(spec) })
	return &filtered
}

// OperandTypes returns all types used by the specializations of the unit, including output types.
func (u *Unit) OperandTypes() []*data.Type {
	var types []*data.Type
	for _, spec := range u.Specializations {
		for _, t := range append(slices.Clone(spec.Types), spec.Out) {
			if t != nil && !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}
