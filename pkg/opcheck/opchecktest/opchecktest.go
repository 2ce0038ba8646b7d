// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package opchecktest runs the tests of an opcheck.Unit as Go sub-tests.
//
// Example:
//
//	func TestAdd(t *testing.T) {
//		opchecktest.Run(t, mathtest.Add(opchecktest.Config(t).Dim))
//	}
//
// This creates one sub-test per declared test of the unit (e.g. "mathematically_correct"), and
// within it one sub-test per case, named by the case ID (e.g. "Dense[ket],Dense[ket]->Dense").
// Operands are only materialized inside the sub-test of their case.
package opchecktest

import (
	"testing"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/stretchr/testify/require"
)

// Body of a test, run once per registered case. tc is nil if the test was not parametrized.
type Body func(t *testing.T, unit *opcheck.Unit, tc *cases.TestCase)

// Runner holds the test bodies, by test name.
type Runner struct {
	bodies map[string]Body
}

// NewRunner returns a Runner with the bodies of the standard tests.
func NewRunner() *Runner {
	return &Runner{bodies: map[string]Body{
		opcheck.TestMathematicallyCorrect: MathematicallyCorrect,
		opcheck.TestIncorrectShapeRaises:  IncorrectShapeRaises,
	}}
}

// WithBody returns a copy of the Runner with the body for the test name set. Use it for the extra
// tests declared in opcheck.Unit.Extra, or to override a standard body.
func (r *Runner) WithBody(testName string, body Body) *Runner {
	r2 := &Runner{bodies: make(map[string]Body, len(r.bodies)+1)}
	for name, b := range r.bodies {
		r2.bodies[name] = b
	}
	r2.bodies[testName] = body
	return r2
}

// Config returns the configuration of the tests, see opcheck.OPCHECK_CONFIG. It fails the test if the
// configuration is invalid.
func Config(t testing.TB) opcheck.Config {
	config, err := opcheck.LoadConfig()
	require.NoErrorf(t, err, "invalid %s", opcheck.OPCHECK_CONFIG)
	return config
}

// Run all the tests of the unit with the standard bodies, filtered by the configuration.
func Run(t *testing.T, unit *opcheck.Unit) {
	NewRunner().Run(t, unit)
}

// Run all the tests declared by the unit, as sub-tests of t.
//
// Collection errors fail only the sub-test of the affected test. Each case is run in its own sub-test,
// and skipped cases are reported as skipped.
func (r *Runner) Run(t *testing.T, unit *opcheck.Unit) {
	unit = Config(t).Apply(unit)
	t.Run(unit.Name, func(t *testing.T) {
		for _, decl := range unit.Tests() {
			t.Run(decl.Name, func(t *testing.T) {
				body, found := r.bodies[decl.Name]
				require.Truef(t, found, "no body for test %s::%s", unit.Name, decl.Name)
				c, err := opcheck.Collect(unit, decl.Name)
				require.NoErrorf(t, err, "collection of %s::%s failed", unit.Name, decl.Name)
				if !c.Parametrized() {
					body(t, unit, nil)
					return
				}
				for ii := range c.Cases() {
					tc := &c.Cases()[ii]
					t.Run(tc.ID, func(t *testing.T) {
						if tc.Skip {
							t.Skip(tc.Reason)
						}
						body(t, unit, tc)
					})
				}
			})
		}
	})
}
