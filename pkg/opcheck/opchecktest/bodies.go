// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opchecktest

import (
	"math/cmplx"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/gomlx/opcheck/pkg/support/xslices"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs/cscalar"
	"gonum.org/v1/gonum/mat"
)

// MathematicallyCorrect tests that the operation is mathematically correct for the case, see CheckCorrect.
//
// If the unit declares Scales, it runs once per scale in its own sub-test, each with freshly
// materialized operands.
func MathematicallyCorrect(t *testing.T, unit *opcheck.Unit, tc *cases.TestCase) {
	require.NotNil(t, tc, "test %s requires parameters", opcheck.TestMathematicallyCorrect)
	if len(unit.Scales) == 0 {
		require.NoError(t, CheckCorrect(unit, tc, nil))
		return
	}
	for _, scale := range unit.Scales {
		t.Run(scale.ID, func(t *testing.T) {
			require.NoError(t, CheckCorrect(unit, tc, &scale))
		})
	}
}

// CheckCorrect materializes the operands of the case and calls its op, with the scale appended
// if not nil and not omitted. The result must have exactly the runtime type tc.Out, and match
// the unit's oracle within the unit's tolerance.
//
// It returns an error describing the first failed condition, including a panic of the op.
func CheckCorrect(unit *opcheck.Unit, tc *cases.TestCase, scale *opcheck.Scale) error {
	operands := tc.Materialize()
	arrays := xslices.Map(operands, data.Data.ToArray)
	args := xslices.Map(operands, func(d data.Data) any { return d })
	scaleValue := complex(1, 0)
	if scale != nil && !scale.Omitted {
		scaleValue = scale.Value
		args = append(args, scale.Value)
	}
	want := unit.Oracle(arrays, scaleValue)
	got, err := callOp(tc, args)
	if err != nil {
		return err
	}
	if !tc.Out.Is(got) {
		return errors.Errorf("%s returned %T, wanted type %s (%s)", tc.Op, got, tc.Out, tc.Out.GoType())
	}
	if tc.Out.IsData() {
		wantArray, ok := want.(*mat.CDense)
		if !ok {
			return errors.Errorf("oracle of %s returned %T, wanted *mat.CDense", unit.Name, want)
		}
		return errors.WithMessagef(CheckClose(wantArray, got.(data.Data).ToArray(), unit.Tolerance()),
			"%s", tc.Op)
	}
	wantScalar, ok := want.(complex128)
	if !ok {
		return errors.Errorf("oracle of %s returned %T, wanted complex128", unit.Name, want)
	}
	gotScalar := got.(complex128)
	if cmplx.Abs(gotScalar-wantScalar) > unit.Tolerance() {
		return errors.Errorf("%s returned %v, wanted %v (tolerance %g)", tc.Op, gotScalar, wantScalar, unit.Tolerance())
	}
	return nil
}

// callOp calls the op of the test case, converting a panic into an error.
func callOp(tc *cases.TestCase, args []any) (result any, err error) {
	exception := exceptions.Try(func() { result, err = tc.Op.Call(args...) })
	if exception != nil {
		return nil, errors.Errorf("%s panicked: %v", tc.Op, exception)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "%s failed", tc.Op)
	}
	return result, nil
}

// IncorrectShapeRaises tests that the operation returns a *data.ShapeError for the incompatible
// operands of the case, see CheckRaises.
func IncorrectShapeRaises(t *testing.T, unit *opcheck.Unit, tc *cases.TestCase) {
	require.NotNil(t, tc, "test %s requires parameters", opcheck.TestIncorrectShapeRaises)
	require.NoError(t, CheckRaises(tc))
}

// CheckRaises materializes the operands of the case and calls its op, which must return an error
// wrapping a *data.ShapeError. Any other error, no error, or a panic, is reported as an error.
func CheckRaises(tc *cases.TestCase) error {
	args := xslices.Map(tc.Materialize(), func(d data.Data) any { return d })
	var err error
	exception := exceptions.Try(func() { _, err = tc.Op.Call(args...) })
	if exception != nil {
		return errors.Errorf("%s panicked instead of returning a shape error: %v", tc.Op, exception)
	}
	if err == nil {
		return errors.Errorf("%s should have failed for operands with incompatible shapes", tc.Op)
	}
	var shapeErr *data.ShapeError
	if !errors.As(err, &shapeErr) {
		return errors.Errorf("%s returned an error that is not a shape error: %+v", tc.Op, err)
	}
	return nil
}

// RequireClose fails the test if CheckClose reports a difference.
func RequireClose(t testing.TB, want, got *mat.CDense, tol float64) {
	require.NoError(t, CheckClose(want, got, tol))
}

// CheckClose checks that got has the same dimensions as want, and that all its elements are
// within the absolute tolerance tol.
func CheckClose(want, got *mat.CDense, tol float64) error {
	wantRows, wantCols := want.Dims()
	gotRows, gotCols := got.Dims()
	if wantRows != gotRows || wantCols != gotCols {
		return errors.Errorf("dimensions differ: got %dx%d, wanted %dx%d", gotRows, gotCols, wantRows, wantCols)
	}
	var numMismatches int
	var firstRow, firstCol int
	for i := range wantRows {
		for j := range wantCols {
			if !cscalar.EqualWithinAbs(want.At(i, j), got.At(i, j), tol) {
				if numMismatches == 0 {
					firstRow, firstCol = i, j
				}
				numMismatches++
			}
		}
	}
	if numMismatches > 0 {
		return errors.Errorf("%d of %d elements differ by more than %g, first at (%d,%d): got %v, wanted %v",
			numMismatches, wantRows*wantCols, tol, firstRow, firstCol,
			got.At(firstRow, firstCol), want.At(firstRow, firstCol))
	}
	return nil
}
