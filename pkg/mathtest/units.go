// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package mathtest declares the opcheck units of the linear-algebra operations implemented by
// the representation types in pkg/repr.
//
// Each function returns a fresh *opcheck.Unit for the given base dimension (see
// shapes.DefaultDim), to be run with opchecktest.Run or listed by the opcheck CLI.
package mathtest

import (
	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/gomlx/opcheck/pkg/repr/csr"
	"github.com/gomlx/opcheck/pkg/repr/dense"
	"github.com/gomlx/opcheck/pkg/repr/split"
)

// MatmulTol is the tolerance of Matmul, whose results accumulate sums of dim terms.
const MatmulTol = 1e-9

// Operations, adapted from the kernels of each representation.
var (
	DenseAdd    = cases.ScaledBinary("dense.Add", dense.Add)
	SplitAdd    = cases.ScaledBinary("split.Add", split.Add)
	CSRAdd      = cases.ScaledBinary("csr.Add", csr.Add)
	CSRAddDense = cases.ScaledBinary("csr.AddDense", csr.AddDense)

	DenseSub = cases.Binary("dense.Sub", dense.Sub)
	SplitSub = cases.Binary("split.Sub", split.Sub)
	CSRSub   = cases.Binary("csr.Sub", csr.Sub)

	DenseNeg = cases.Unary("dense.Neg", dense.Neg)
	SplitNeg = cases.Unary("split.Neg", split.Neg)
	CSRNeg   = cases.Unary("csr.Neg", csr.Neg)

	DenseTrace = cases.Unary("dense.Trace", dense.Trace)
	SplitTrace = cases.Unary("split.Trace", split.Trace)
	CSRTrace   = cases.Unary("csr.Trace", csr.Trace)

	DenseMatmul    = cases.Binary("dense.Matmul", dense.Matmul)
	SplitMatmul    = cases.Binary("split.Matmul", split.Matmul)
	CSRMatmul      = cases.Binary("csr.Matmul", csr.Matmul)
	CSRMatmulDense = cases.Binary("csr.MatmulDense", csr.MatmulDense)

	// Only the split representation implements these, used by the benchmarks.
	SplitExpm    = cases.Unary("split.Expm", split.Expm)
	SplitEigvals = cases.Unary("split.Eigvals", split.Eigvals)
)

// Add returns the unit of `left + scale*right`, with an optional scale.
func Add(dim int) *opcheck.Unit {
	return &opcheck.Unit{
		Name:      "Add",
		Arity:     opcheck.Binary,
		Oracle:    addOracle,
		Shapes:    shapes.BinaryIdentical(dim),
		BadShapes: shapes.BinaryBadIdentical(dim),
		Scales:    opcheck.DefaultScales,
		Specializations: []cases.Specialization{
			cases.Specialize(DenseAdd, dense.Type, dense.Type, dense.Type),
			cases.Specialize(SplitAdd, split.Type, split.Type, split.Type),
			cases.Specialize(CSRAdd, csr.Type, csr.Type, csr.Type),
			cases.Specialize(CSRAddDense, csr.Type, dense.Type, dense.Type),
		},
	}
}

// Sub returns the unit of `left - right`.
func Sub(dim int) *opcheck.Unit {
	return &opcheck.Unit{
		Name:      "Sub",
		Arity:     opcheck.Binary,
		Oracle:    subOracle,
		Shapes:    shapes.BinaryIdentical(dim),
		BadShapes: shapes.BinaryBadIdentical(dim),
		Specializations: []cases.Specialization{
			cases.Specialize(DenseSub, dense.Type, dense.Type, dense.Type),
			cases.Specialize(SplitSub, split.Type, split.Type, split.Type),
			cases.Specialize(CSRSub, csr.Type, csr.Type, csr.Type),
		},
	}
}

// Neg returns the unit of `-x`. It accepts every shape, so it has no negative test cases.
func Neg(dim int) *opcheck.Unit {
	return &opcheck.Unit{
		Name:   "Neg",
		Arity:  opcheck.Unary,
		Oracle: negOracle,
		Shapes: shapes.UnaryTuples(shapes.Unary(dim), nil),
		Specializations: []cases.Specialization{
			cases.Specialize(DenseNeg, dense.Type, dense.Type),
			cases.Specialize(SplitNeg, split.Type, split.Type),
			cases.Specialize(CSRNeg, csr.Type, csr.Type),
		},
	}
}

// Trace returns the unit of the trace of square matrices, a complex128 scalar.
func Trace(dim int) *opcheck.Unit {
	base := shapes.Unary(dim)
	return &opcheck.Unit{
		Name:      "Trace",
		Arity:     opcheck.Unary,
		Oracle:    traceOracle,
		Shapes:    shapes.UnaryTuples(base, shapes.Shape.IsSquare),
		BadShapes: shapes.UnaryTuples(base, func(s shapes.Shape) bool { return !s.IsSquare() }),
		Specializations: []cases.Specialization{
			cases.Specialize(DenseTrace, dense.Type, data.Complex128),
			cases.Specialize(SplitTrace, split.Type, data.Complex128),
			cases.Specialize(CSRTrace, csr.Type, data.Complex128),
		},
	}
}

// Matmul returns the unit of the matrix product `left @ right`.
func Matmul(dim int) *opcheck.Unit {
	return &opcheck.Unit{
		Name:      "Matmul",
		Arity:     opcheck.Binary,
		Oracle:    matmulOracle,
		Tol:       MatmulTol,
		Shapes:    shapes.BinaryCompatible(dim, shapes.Contractible),
		BadShapes: shapes.BinaryIncompatible(dim, shapes.Contractible),
		Specializations: []cases.Specialization{
			cases.Specialize(DenseMatmul, dense.Type, dense.Type, dense.Type),
			cases.Specialize(SplitMatmul, split.Type, split.Type, split.Type),
			cases.Specialize(CSRMatmul, csr.Type, csr.Type, csr.Type),
			cases.Specialize(CSRMatmulDense, csr.Type, dense.Type, dense.Type),
		},
	}
}

// All returns the units of all operations.
func All(dim int) []*opcheck.Unit {
	return []*opcheck.Unit{Add(dim), Sub(dim), Neg(dim), Trace(dim), Matmul(dim)}
}
