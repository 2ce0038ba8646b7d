// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"fmt"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/pkg/errors"
)

// GenerateMathematicallyCorrect parametrizes the test of mathematical correctness over
// ["op", <operands>..., "out_type"]: for every specialization of the unit, the product of the
// catalog.All cases for the unit's valid shapes.
func GenerateMathematicallyCorrect(unit *Unit, c *Collection) error {
	names := append(append([]string{ParamOp}, c.OperandParams()...), ParamOutType)
	var testCases []cases.TestCase
	for _, spec := range unit.Specializations {
		specCases, err := cases.ProductSpecialization(catalog.All, spec, unit.Shapes, true)
		if err != nil {
			return errors.WithMessagef(err, "specialization %s", spec)
		}
		testCases = append(testCases, specCases...)
	}
	return parametrizeOrSkip(c, names, testCases, len(unit.Shapes), len(unit.Specializations))
}

// parametrizeOrSkip registers the cases, or a single skipped case if there are none, so that
// the missing coverage is reported.
func parametrizeOrSkip(c *Collection, names []string, testCases []cases.TestCase, numShapes, numSpecs int) error {
	if len(testCases) == 0 {
		return c.ParametrizeSkipped(names, fmt.Sprintf("no cases for %s::%s (%d shapes, %d specializations)",
			c.UnitName(), c.TestName(), numShapes, numSpecs))
	}
	return c.Parametrize(names, testCases)
}

// GenerateIncorrectShapeRaises parametrizes the negative test over ["op", <operands>...]: for every
// specialization of the unit, the product of the catalog.Random cases for the unit's bad shapes.
//
// If the unit declares no bad shapes, exactly one skipped case is registered instead.
func GenerateIncorrectShapeRaises(unit *Unit, c *Collection) error {
	names := append([]string{ParamOp}, c.OperandParams()...)
	if len(unit.BadShapes) == 0 {
		reason := "no shapes are 'incorrect' for " + c.UnitName() + "::" + c.TestName()
		return c.ParametrizeSkipped(names, reason)
	}
	var testCases []cases.TestCase
	for _, spec := range unit.Specializations {
		specCases, err := cases.ProductSpecialization(catalog.Random, spec, unit.BadShapes, false)
		if err != nil {
			return errors.WithMessagef(err, "specialization %s", spec)
		}
		testCases = append(testCases, specCases...)
	}
	return parametrizeOrSkip(c, names, testCases, len(unit.BadShapes), len(unit.Specializations))
}
