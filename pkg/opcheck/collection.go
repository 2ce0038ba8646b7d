// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"strings"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/pkg/errors"
)

// NoTestID is the identifier of the inert case registered with ParametrizeSkipped.
const NoTestID = "no test"

// Collection is the context given to a Generator, for one test of one Unit.
//
// It exposes the declared parameter names of the test, the names of the unit and the test
// for diagnostics, and receives the final list of cases with Parametrize.
type Collection struct {
	session  string
	unitName string
	decl     TestDecl

	names        []string
	cases        []cases.TestCase
	parametrized bool
}

func newCollection(session string, unit *Unit, decl TestDecl) *Collection {
	return &Collection{session: session, unitName: unit.Name, decl: decl}
}

// Session returns the identifier of the collection session, used for logging.
func (c *Collection) Session() string { return c.session }

// UnitName returns the name of the unit being collected.
func (c *Collection) UnitName() string { return c.unitName }

// TestName returns the name of the test being collected.
func (c *Collection) TestName() string { return c.decl.Name }

// ParamNames returns the declared parameter names of the test.
func (c *Collection) ParamNames() []string { return c.decl.Params }

// OperandParams returns the declared parameters that are data operands, by the OperandPrefix convention.
func (c *Collection) OperandParams() []string {
	var operands []string
	for _, name := range c.decl.Params {
		if strings.HasPrefix(name, OperandPrefix) {
			operands = append(operands, name)
		}
	}
	return operands
}

// Parametrize registers the final ordered list of cases of the test, for the given parameter names.
//
// Every non-skipped case must hold exactly one value per name: the op, its operands and its output
// type if set. It can only be called once.
func (c *Collection) Parametrize(names []string, testCases []cases.TestCase) error {
	if c.parametrized {
		return errors.Errorf("%s::%s: parametrized twice", c.unitName, c.decl.Name)
	}
	for _, name := range names {
		if !c.declares(name) {
			return errors.Errorf("%s::%s: parameter %q not declared by the test (parameters: %v)",
				c.unitName, c.decl.Name, name, c.decl.Params)
		}
	}
	for ii := range testCases {
		tc := &testCases[ii]
		if tc.Skip {
			continue
		}
		if tc.NumParams() != len(names) {
			return errors.Errorf("%s::%s: case #%d %q has %d values for %d parameters %v",
				c.unitName, c.decl.Name, ii, tc.ID, tc.NumParams(), len(names), names)
		}
	}
	c.names = names
	c.cases = testCases
	c.parametrized = true
	return nil
}

// ParametrizeSkipped registers exactly one inert case, marked as skipped for the given reason,
// so that the missing coverage is reported instead of silently absent.
func (c *Collection) ParametrizeSkipped(names []string, reason string) error {
	return c.Parametrize(names, []cases.TestCase{{ID: NoTestID, Skip: true, Reason: reason}})
}

func (c *Collection) declares(name string) bool {
	for _, param := range c.decl.Params {
		if param == name {
			return true
		}
	}
	return false
}

// Parametrized returns whether a generator registered cases for the test.
// If false, the test is run once, without parameters.
func (c *Collection) Parametrized() bool { return c.parametrized }

// Names returns the parameter names given to Parametrize.
func (c *Collection) Names() []string { return c.names }

// Cases returns the registered cases.
func (c *Collection) Cases() []cases.TestCase { return c.cases }

// NumSkipped returns the number of registered cases marked as skipped.
func (c *Collection) NumSkipped() (n int) {
	for _, tc := range c.cases {
		if tc.Skip {
			n++
		}
	}
	return
}
