// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/opcheck/internal/workerspool"
	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/catalog"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type fakeMatrix struct{ rows, cols int }

func (f *fakeMatrix) Dims() (int, int)     { return f.rows, f.cols }
func (f *fakeMatrix) ToArray() *mat.CDense { return mat.NewCDense(f.rows, f.cols, nil) }

type otherMatrix struct{ fakeMatrix }

var (
	fakeType  = data.Register[*fakeMatrix]("Fake", dtypes.Complex128)
	otherType = data.Register[*otherMatrix]("Other", dtypes.Complex128)

	numFactoryCalls int
)

func init() {
	newFake := func(s shapes.Shape) data.Data {
		numFactoryCalls++
		return &fakeMatrix{s.Rows, s.Cols}
	}
	catalog.All.Register(fakeType, func(s shapes.Shape) []catalog.Variant {
		return []catalog.Variant{
			{ID: "a", Factory: func() data.Data { return newFake(s) }},
			{ID: "b", Factory: func() data.Data { return newFake(s) }},
		}
	})
	catalog.Random.Register(fakeType, catalog.Single(newFake))
	newOther := func(s shapes.Shape) data.Data { return &otherMatrix{fakeMatrix{s.Rows, s.Cols}} }
	catalog.All.Register(otherType, catalog.Single(newOther))
	catalog.Random.Register(otherType, catalog.Single(newOther))
}

var (
	fakeAdd = cases.Binary("fake_add", func(l, r *fakeMatrix) (*fakeMatrix, error) { return l, nil })
	fakeNeg = cases.Unary("fake_neg", func(x *fakeMatrix) (*fakeMatrix, error) { return x, nil })
)

func binaryUnit() *Unit {
	return &Unit{
		Name:      "FakeAdd",
		Arity:     Binary,
		Shapes:    shapes.BinaryIdentical(3),
		BadShapes: shapes.BinaryBadIdentical(3),
		Specializations: []cases.Specialization{
			cases.Specialize(fakeAdd, fakeType, fakeType, fakeType),
			cases.Specialize(fakeAdd, otherType, fakeType, otherType),
		},
	}
}

func TestTests(t *testing.T) {
	unit := binaryUnit()
	tests := unit.Tests()
	require.Len(t, tests, 2)
	require.Equal(t, []string{"op", "data_l", "data_r", "out_type"}, tests[0].Params)
	require.Equal(t, []string{"op", "data_l", "data_r"}, tests[1].Params)

	unit.Scales = DefaultScales
	decl, found := unit.Test(TestMathematicallyCorrect)
	require.True(t, found)
	require.Equal(t, []string{"op", "data_l", "data_r", "out_type", "scale"}, decl.Params)

	require.Equal(t, []string{"data_x"}, Unary.OperandParams())
	require.Equal(t, []string{"data_a", "data_b", "data_c"}, Arity(3).OperandParams())
	require.Equal(t, "3-ary", Arity(3).String())
	require.Equal(t, DefaultTol, unit.Tolerance())
	require.Equal(t, []*data.Type{fakeType, otherType}, unit.OperandTypes())
}

func TestGenerateMathematicallyCorrect(t *testing.T) {
	numFactoryCalls = 0
	unit := binaryUnit()
	unit.Scales = DefaultScales
	c, err := Collect(unit, TestMathematicallyCorrect)
	require.NoError(t, err)
	require.True(t, c.Parametrized())
	require.NotEmpty(t, c.Session())
	// The scale parameter is not an operand: it is parametrized by the driver.
	require.Equal(t, []string{"op", "data_l", "data_r", "out_type"}, c.Names())

	// First specialization: 2x2 variants per shape; second: 1x2.
	got := c.Cases()
	require.Len(t, got, 5*4+5*2)
	require.Equal(t, "Fake[scalar,a],Fake[scalar,a]->Fake", got[0].ID)
	require.Equal(t, "Fake[scalar,a],Fake[scalar,b]->Fake", got[1].ID)
	require.Equal(t, "Other[scalar],Fake[scalar,a]->Other", got[20].ID)
	for _, tc := range got {
		require.False(t, tc.Skip)
		require.Equal(t, "fake_add", tc.Op.Name)
	}
	require.Zero(t, numFactoryCalls, "generation must not materialize operands")
}

func TestGenerateIncorrectShapeRaises(t *testing.T) {
	unit := binaryUnit()
	c, err := Collect(unit, TestIncorrectShapeRaises)
	require.NoError(t, err)
	require.Equal(t, []string{"op", "data_l", "data_r"}, c.Names())
	got := c.Cases()
	require.Len(t, got, 2*20)
	require.Equal(t, "Fake[scalar],Fake[bra]", got[0].ID)
	require.Nil(t, got[0].Out)
	require.Zero(t, c.NumSkipped())
}

func TestGenerateIncorrectShapeRaisesSkipped(t *testing.T) {
	unit := &Unit{
		Name:            "FakeNeg",
		Arity:           Unary,
		Shapes:          shapes.UnaryTuples(shapes.Unary(3), nil),
		Specializations: []cases.Specialization{cases.Specialize(fakeNeg, fakeType, fakeType)},
	}
	c, err := Collect(unit, TestIncorrectShapeRaises)
	require.NoError(t, err)
	require.Equal(t, []string{"op", "data_x"}, c.Names())
	got := c.Cases()
	require.Len(t, got, 1)
	require.True(t, got[0].Skip)
	require.Equal(t, NoTestID, got[0].ID)
	require.Equal(t, "no shapes are 'incorrect' for FakeNeg::incorrect_shape_raises", got[0].Reason)
	require.Nil(t, got[0].Op.Fn)
	require.Empty(t, got[0].Operands)
	require.Equal(t, 1, c.NumSkipped())
}

func TestGenerateEmptySkipped(t *testing.T) {
	// No valid shapes: only the mathematical correctness test is empty.
	unit := binaryUnit()
	unit.Shapes = nil
	c, err := Collect(unit, TestMathematicallyCorrect)
	require.NoError(t, err)
	got := c.Cases()
	require.Len(t, got, 1)
	require.True(t, got[0].Skip)
	require.Equal(t, NoTestID, got[0].ID)
	require.Equal(t, "no cases for FakeAdd::mathematically_correct (0 shapes, 2 specializations)", got[0].Reason)
	require.Equal(t, 1, c.NumSkipped())

	c, err = Collect(unit, TestIncorrectShapeRaises)
	require.NoError(t, err)
	require.Len(t, c.Cases(), 2*20)
	require.Zero(t, c.NumSkipped())

	// No specializations, e.g. after every operand type was filtered out: both tests are empty.
	unit = binaryUnit()
	unit.Specializations = nil
	for _, testName := range []string{TestMathematicallyCorrect, TestIncorrectShapeRaises} {
		c, err = Collect(unit, testName)
		require.NoError(t, err)
		got = c.Cases()
		require.Len(t, got, 1, testName)
		require.True(t, got[0].Skip)
		require.Contains(t, got[0].Reason, "no cases for FakeAdd::"+testName)
		require.Contains(t, got[0].Reason, "0 specializations")
	}

	// Same through the configuration filter.
	config, err := ParseConfig("types=Other")
	require.NoError(t, err)
	c, err = Collect(config.Apply(binaryUnit()), TestMathematicallyCorrect)
	require.NoError(t, err)
	require.Equal(t, 1, c.NumSkipped())
}

func TestCollectConfigurationError(t *testing.T) {
	unit := binaryUnit()
	// Unary shapes paired with binary specializations.
	unit.Shapes = shapes.UnaryTuples(shapes.Unary(3), nil)
	_, err := Collect(unit, TestMathematicallyCorrect)
	require.Error(t, err)
	var configErr *cases.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	require.ErrorContains(t, err, "FakeAdd::mathematically_correct")

	// Only the affected test fails.
	_, err = Collect(unit, TestIncorrectShapeRaises)
	require.NoError(t, err)

	_, err = Collect(unit, "unknown_test")
	require.Error(t, err)
}

func TestRegistryOverride(t *testing.T) {
	unit := binaryUnit()
	unit.Extra = []TestDecl{
		{Name: "only_square", Params: []string{"op", "data_l", "data_r"}},
		{Name: "no_generator", Params: []string{"x"}},
	}
	unit.Generators = map[string]Generator{
		"only_square": func(unit *Unit, c *Collection) error {
			square := shapes.MakeLabeled(shapes.LabelSquare, 3, 3)
			testCases, err := cases.Product(catalog.Random, fakeAdd, []*data.Type{fakeType, fakeType},
				[]shapes.Tuple{shapes.Pair(square, square)}, nil)
			if err != nil {
				return err
			}
			return c.Parametrize([]string{"op", "data_l", "data_r"}, testCases)
		},
		TestIncorrectShapeRaises: func(unit *Unit, c *Collection) error {
			return c.ParametrizeSkipped(c.ParamNames(), "overridden")
		},
	}

	c, err := Collect(unit, "only_square")
	require.NoError(t, err)
	require.Len(t, c.Cases(), 1)
	require.Equal(t, "Fake[square],Fake[square]", c.Cases()[0].ID)

	c, err = Collect(unit, TestIncorrectShapeRaises)
	require.NoError(t, err)
	require.Equal(t, "overridden", c.Cases()[0].Reason)

	c, err = Collect(unit, "no_generator")
	require.NoError(t, err)
	require.False(t, c.Parametrized())

	// The default registry is not modified.
	_, found := DefaultRegistry.Lookup("only_square")
	require.False(t, found)
	require.Equal(t, []string{TestIncorrectShapeRaises, TestMathematicallyCorrect}, DefaultRegistry.TestNames())
	require.Panics(t, func() { DefaultRegistry.Register(TestMathematicallyCorrect, nil) })
}

func TestParametrizeErrors(t *testing.T) {
	unit := binaryUnit()
	decl, _ := unit.Test(TestIncorrectShapeRaises)
	c := newCollection("test", unit, decl)
	tc := cases.TestCase{Op: fakeAdd, Operands: []catalog.Factory{nil, nil}}
	require.Error(t, c.Parametrize([]string{"op", "data_l", "out_type"}, nil))
	require.Error(t, c.Parametrize([]string{"op", "data_l"}, []cases.TestCase{tc}))
	require.NoError(t, c.Parametrize([]string{"op", "data_l", "data_r"}, []cases.TestCase{tc}))
	require.Error(t, c.Parametrize([]string{"op", "data_l", "data_r"}, []cases.TestCase{tc}))
}

func TestCollectAll(t *testing.T) {
	units := []*Unit{binaryUnit(), binaryUnit(), binaryUnit()}
	units[1].Name = "Broken"
	units[1].Shapes = shapes.UnaryTuples(shapes.Unary(3), nil)
	results := CollectAll(workerspool.NewWithParallelism(4), units)
	require.Len(t, results, 6)
	for ii, r := range results {
		require.Same(t, units[ii/2], r.Unit)
		if ii == 2 {
			require.Error(t, r.Err)
			continue
		}
		require.NoErrorf(t, r.Err, "%s::%s", r.Unit.Name, r.Test.Name)
		require.Equal(t, r.Test.Name, r.Collection.TestName())
	}
	require.Equal(t, results[0].Collection.Session(), results[5].Collection.Session())
}

func TestConfig(t *testing.T) {
	c, err := ParseConfig("")
	require.NoError(t, err)
	require.Equal(t, shapes.DefaultDim, c.Dim)
	require.True(t, c.Enabled(fakeType))

	c, err = ParseConfig("dim=7, types=Other")
	require.NoError(t, err)
	require.Equal(t, 7, c.Dim)
	require.False(t, c.Enabled(fakeType))
	require.True(t, c.Enabled(otherType))
	require.True(t, c.Enabled(data.Complex128))

	// Only the specialization using exclusively "Other" types would survive: none does.
	filtered := c.Apply(binaryUnit())
	require.Empty(t, filtered.Specializations)
	require.Len(t, binaryUnit().Specializations, 2)

	c, err = ParseConfig("types=Fake|Other")
	require.NoError(t, err)
	require.Len(t, c.Apply(binaryUnit()).Specializations, 2)

	for _, bad := range []string{"dim", "dim=x", "dim=0", "types=Unknown", "color=red"} {
		_, err = ParseConfig(bad)
		require.Errorf(t, err, "config %q should fail", bad)
	}

	t.Setenv(OPCHECK_CONFIG, "dim=3")
	c, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 3, c.Dim)
}
