// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package bench measures the linear-algebra operations of the representation types over a grid
// of matrix sizes and densities.
//
// Results are collected in a gota DataFrame, which can be saved as CSV or plotted with SavePlots.
package bench

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"time"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/mathtest"
	"github.com/gomlx/opcheck/pkg/repr/csr"
	"github.com/gomlx/opcheck/pkg/repr/dense"
	"github.com/gomlx/opcheck/pkg/repr/split"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"
)

// Densities of the benchmarked matrices.
const (
	// Sparse matrices are tridiagonal.
	Sparse = "sparse"

	// Dense matrices are Hermitian, built as H+Hᴴ from a random H.
	Dense = "dense"
)

// Operations benchmarked.
const (
	OpAdd    = "add"
	OpMatmul = "matmul"

	// OpExpm is the matrix exponential.
	OpExpm = "expm"

	// OpEigvals are the eigenvalues of a Hermitian matrix. Backends return data.ErrNotImplemented
	// for the non-Hermitian sparse matrices.
	OpEigvals = "eigvals"
)

// unaryOps take only the left operand.
var unaryOps = map[string]bool{OpExpm: true, OpEigvals: true}

// DefaultMaxSize is the largest matrix dimension of the default grid.
const DefaultMaxSize = 1 << 10

// DefaultSeed of the random number generator used to build the benchmarked matrices.
const DefaultSeed = 1

// Backend is a representation type to benchmark.
type Backend struct {
	Type *data.Type

	// FromArray converts a dense array to the representation.
	FromArray func(a mat.CMatrix) data.Data

	// Ops by name (OpAdd, OpMatmul, OpExpm, OpEigvals). Missing ops are reported as skipped results.
	Ops map[string]cases.Op
}

// Call the operation with the given operands. It returns data.ErrNotImplemented if the backend
// doesn't implement it.
func (b *Backend) Call(op string, operands ...data.Data) (any, error) {
	fn, found := b.Ops[op]
	if !found {
		return nil, errors.Wrapf(data.ErrNotImplemented, "%s doesn't implement %q", b.Type, op)
	}
	args := make([]any, len(operands))
	for ii, operand := range operands {
		args[ii] = operand
	}
	return fn.Call(args...)
}

// DefaultBackends returns the backends of the representation types in pkg/repr.
func DefaultBackends() []*Backend {
	return []*Backend{
		{
			Type:      dense.Type,
			FromArray: func(a mat.CMatrix) data.Data { return dense.FromArray(a) },
			Ops:       map[string]cases.Op{OpAdd: mathtest.DenseAdd, OpMatmul: mathtest.DenseMatmul},
		},
		{
			Type:      split.Type,
			FromArray: func(a mat.CMatrix) data.Data { return split.FromArray(a) },
			Ops: map[string]cases.Op{
				OpAdd:     mathtest.SplitAdd,
				OpMatmul:  mathtest.SplitMatmul,
				OpExpm:    mathtest.SplitExpm,
				OpEigvals: mathtest.SplitEigvals,
			},
		},
		{
			Type:      csr.Type,
			FromArray: func(a mat.CMatrix) data.Data { return csr.FromArray(a) },
			Ops:       map[string]cases.Op{OpAdd: mathtest.CSRAdd, OpMatmul: mathtest.CSRMatmul},
		},
	}
}

// Sizes returns the powers of 2 from 2 up to maxSize (inclusive).
func Sizes(maxSize int) []int {
	var sizes []int
	for size := 2; size <= maxSize; size *= 2 {
		sizes = append(sizes, size)
	}
	return sizes
}

// Matrix returns a random complex matrix of the given density ("sparse" or "dense") and size.
func Matrix(rng *rand.Rand, density string, size int) (*mat.CDense, error) {
	randomValue := func() complex128 { return complex(rng.Float64(), rng.Float64()) }
	m := mat.NewCDense(size, size, nil)
	switch density {
	case Sparse:
		for i := range size {
			for j := max(i-1, 0); j <= min(i+1, size-1); j++ {
				m.Set(i, j, randomValue())
			}
		}
	case Dense:
		for i := range size {
			for j := range size {
				m.Set(i, j, randomValue())
			}
		}
		for i := range size {
			for j := i; j < size; j++ {
				hermitian := m.At(i, j) + cmplx.Conj(m.At(j, i))
				m.Set(i, j, hermitian)
				m.Set(j, i, cmplx.Conj(hermitian))
			}
		}
	default:
		return nil, errors.Errorf("unknown density %q, valid values are %q and %q", density, Sparse, Dense)
	}
	return m, nil
}

// Grid of benchmarks: every backend, operation, density and size combination is measured Reps times.
type Grid struct {
	Backends  []*Backend
	Ops       []string
	Densities []string
	Sizes     []int
	Reps      int
	Seed      uint64
}

// NewGrid returns the default grid, up to matrices of maxSize, with reps repetitions.
func NewGrid(maxSize, reps int) *Grid {
	return &Grid{
		Backends:  DefaultBackends(),
		Ops:       []string{OpMatmul, OpAdd, OpExpm, OpEigvals},
		Densities: []string{Sparse, Dense},
		Sizes:     Sizes(maxSize),
		Reps:      reps,
		Seed:      DefaultSeed,
	}
}

// Len returns the number of measurements of the grid.
func (g *Grid) Len() int {
	return len(g.Backends) * len(g.Ops) * len(g.Densities) * len(g.Sizes) * g.Reps
}

// Result of one measurement.
type Result struct {
	Type    string  `dataframe:"type"`
	Op      string  `dataframe:"op"`
	Density string  `dataframe:"density"`
	Size    int     `dataframe:"size"`
	Rep     int     `dataframe:"rep"`
	Seconds float64 `dataframe:"seconds"`
	Skipped bool    `dataframe:"skipped"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s.%s(%s, %d)", r.Type, r.Op, r.Density, r.Size)
}

// Run all the measurements of the grid, calling onResult (if not nil) after each of them.
//
// Operands are generated once per density and size, from a generator seeded with g.Seed, so every
// backend measures the same matrices.
func (g *Grid) Run(onResult func(r Result)) ([]Result, error) {
	rng := rand.New(rand.NewPCG(g.Seed, g.Seed))
	results := make([]Result, 0, g.Len())
	for _, density := range g.Densities {
		for _, size := range g.Sizes {
			left, err := Matrix(rng, density, size)
			if err != nil {
				return nil, err
			}
			right, err := Matrix(rng, density, size)
			if err != nil {
				return nil, err
			}
			for _, backend := range g.Backends {
				operands := []data.Data{backend.FromArray(left), backend.FromArray(right)}
				for _, op := range g.Ops {
					opOperands := operands
					if unaryOps[op] {
						opOperands = operands[:1]
					}
					for rep := range g.Reps {
						result := Result{Type: backend.Type.Name(), Op: op, Density: density, Size: size, Rep: rep}
						start := time.Now()
						_, err := backend.Call(op, opOperands...)
						result.Seconds = time.Since(start).Seconds()
						if err != nil {
							if !errors.Is(err, data.ErrNotImplemented) {
								return nil, errors.WithMessagef(err, "benchmark %s failed", result)
							}
							klog.V(1).Infof("skipping %s: %v", result, err)
							result.Seconds, result.Skipped = 0, true
						}
						results = append(results, result)
						if onResult != nil {
							onResult(result)
						}
					}
				}
			}
		}
	}
	return results, nil
}
