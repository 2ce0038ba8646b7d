// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cases builds the flat list of test cases for a specialization of an operation: the
// Cartesian product, across operands, of the catalog entries for each tuple of operand shapes.
package cases

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Specialization is one concrete instantiation of a polymorphic operation: the Op, the types of its
// data operands and its output type. For example add(CSR, Dense) -> Dense.
type Specialization struct {
	Op    Op
	Types []*data.Type

	// Out is the type of the result. It may be nil if not relevant.
	Out *data.Type
}

// Specialize creates a Specialization from the op and its types, where the last type
// given is the output type. E.g.: `Specialize(addCSRDense, csr.Type, dense.Type, dense.Type)`.
func Specialize(op Op, typesAndOut ...*data.Type) Specialization {
	if len(typesAndOut) == 0 {
		return Specialization{Op: op}
	}
	n := len(typesAndOut) - 1
	return Specialization{Op: op, Types: typesAndOut[:n:n], Out: typesAndOut[n]}
}

// String implements fmt.Stringer. E.g.: "add(Dense,CSR)->Dense".
func (s Specialization) String() string {
	str := fmt.Sprintf("%s(%s)", s.Op.Name, strings.Join(xslices.Map(s.Types, (*data.Type).Name), ","))
	if s.Out != nil {
		str += "->" + s.Out.Name()
	}
	return str
}

// TestCase is one fully resolved parametrization of a test: the op, one factory per data operand
// and the optional output type.
//
// Operands are factories, not values: they are only materialized by the test that runs the case.
type TestCase struct {
	Op       Op
	Operands []catalog.Factory
	Out      *data.Type

	// ID is the human-readable identifier of the case, e.g. "Dense[ket],CSR[ket]->Dense".
	ID string

	// Skip marks an inert case that must not be run, for the given Reason.
	Skip   bool
	Reason string
}

// NumParams returns the number of parameter values of the case: op, operands and, if set, the output type.
func (tc *TestCase) NumParams() int {
	n := 1 + len(tc.Operands)
	if tc.Out != nil {
		n++
	}
	return n
}

// Materialize invokes each of the operand factories once, returning freshly created operands.
func (tc *TestCase) Materialize() []data.Data {
	return xslices.Map(tc.Operands, func(factory catalog.Factory) data.Data { return factory() })
}

// ConfigurationError is returned when a specialization is paired with shape tuples of a different
// length than its number of operand types.
type ConfigurationError struct {
	Op       string
	NumTypes int
	Tuple    shapes.Tuple
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: specialization has %d operand types, but it is paired with %d shapes %s",
		e.Op, e.NumTypes, len(e.Tuple), e.Tuple)
}

type labeledFactory struct {
	label   string
	factory catalog.Factory
}

// Product returns the flat list of all the cases to test for the specialization of op with the given
// operand types, where the operands have shapes taken from shapeSets.
//
// For each tuple in shapeSets, the variants of each operand are looked up in cat, and their Cartesian
// product is taken, in catalog order. Each combination becomes one TestCase, whose ID is the
// comma-separated labels of the operands, followed by "->"+out.Name() if out is not nil.
// The output type is not otherwise used.
//
// The number of cases for a tuple is the product of the number of variants of each operand, and
// the total is the sum across tuples.
func Product(cat *catalog.Catalog, op Op, types []*data.Type, shapeSets []shapes.Tuple, out *data.Type) ([]TestCase, error) {
	var testCases []TestCase
	for _, tuple := range shapeSets {
		if len(tuple) != len(types) {
			return nil, errors.WithStack(&ConfigurationError{Op: op.Name, NumTypes: len(types), Tuple: tuple})
		}
		perOperand := make([][]labeledFactory, len(types))
		for ii, t := range types {
			variants, err := cat.Lookup(t, tuple[ii])
			if err != nil {
				return nil, errors.WithMessagef(err, "building cases for %s, operand #%d", op.Name, ii)
			}
			perOperand[ii] = xslices.Map(variants, func(v catalog.Variant) labeledFactory {
				return labeledFactory{label: catalog.Label(t, tuple[ii], v), factory: v.Factory}
			})
		}
		numVariants := xslices.Map(perOperand, func(lfs []labeledFactory) int { return len(lfs) })
		testCases = slices.Grow(testCases, xslices.ProductSize(numVariants...))
		for _, combination := range xslices.Product(perOperand...) {
			tc := TestCase{
				Op:       op,
				Out:      out,
				Operands: xslices.Map(combination, func(lf labeledFactory) catalog.Factory { return lf.factory }),
			}
			tc.ID = strings.Join(xslices.Map(combination, func(lf labeledFactory) string { return lf.label }), ",")
			if out != nil {
				tc.ID += "->" + out.Name()
			}
			testCases = append(testCases, tc)
		}
	}
	return testCases, nil
}

// ProductSpecialization calls Product for the specialization, optionally ignoring its output type.
func ProductSpecialization(cat *catalog.Catalog, spec Specialization, shapeSets []shapes.Tuple, withOut bool) ([]TestCase, error) {
	var out *data.Type
	if withOut {
		out = spec.Out
	}
	return Product(cat, spec.Op, spec.Types, shapeSets, out)
}
