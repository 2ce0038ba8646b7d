// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package split

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// catchShape runs fn and converts gonum's dimension panics to a *data.ShapeError for op.
// Other panics are propagated.
func catchShape(op string, fn func(), operands ...data.Data) error {
	matErr := exceptions.TryCatch[mat.Error](fn)
	if matErr.Error() == "" {
		return nil
	}
	return data.NewShapeError(op, matErr.Error(), operands...)
}

// Add returns `left + scale*right`. The scale is optional, and defaults to 1.
func Add(left, right *Split, scale ...complex128) (*Split, error) {
	s := complex(1, 0)
	if len(scale) > 0 {
		s = scale[0]
	}
	var out *Split
	err := catchShape("split.Add", func() {
		scaled := scaleBy(right, s)
		var re, im mat.Dense
		re.Add(left.re, scaled.re)
		im.Add(left.im, scaled.im)
		out = New(&re, &im)
	}, left, right)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scaleBy returns `s*x`, as (a+bi)(c+di) = (ac-bd) + (ad+bc)i.
func scaleBy(x *Split, s complex128) *Split {
	if s == 1 {
		return x
	}
	var re, im, tmp mat.Dense
	re.Scale(real(s), x.re)
	tmp.Scale(imag(s), x.im)
	re.Sub(&re, &tmp)
	im.Scale(real(s), x.im)
	tmp.Scale(imag(s), x.re)
	im.Add(&im, &tmp)
	return New(&re, &im)
}

// Sub returns `left - right`.
func Sub(left, right *Split) (*Split, error) {
	var out *Split
	err := catchShape("split.Sub", func() {
		var re, im mat.Dense
		re.Sub(left.re, right.re)
		im.Sub(left.im, right.im)
		out = New(&re, &im)
	}, left, right)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Neg returns `-x`.
func Neg(x *Split) (*Split, error) {
	return scaleBy(x, -1), nil
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(x *Split) (complex128, error) {
	var trace complex128
	err := catchShape("split.Trace", func() {
		trace = complex(mat.Trace(x.re), mat.Trace(x.im))
	}, x)
	if err != nil {
		return 0, err
	}
	return trace, nil
}

// Matmul returns the matrix product `left @ right`, using
// (A+Bi)(C+Di) = (AC-BD) + (AD+BC)i.
func Matmul(left, right *Split) (*Split, error) {
	var out *Split
	err := catchShape("split.Matmul", func() {
		var re, im, tmp mat.Dense
		re.Mul(left.re, right.re)
		tmp.Mul(left.im, right.im)
		re.Sub(&re, &tmp)
		im.Mul(left.re, right.im)
		tmp.Mul(left.im, right.re)
		im.Add(&im, &tmp)
		out = New(&re, &im)
	}, left, right)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// embed returns the real representation of x, the 2n×2m matrix [[Re, -Im], [Im, Re]].
//
// It maps complex products to real products, so functions of x are read back from the
// blocks of the same function of the embedding.
func embed(x *Split) *mat.Dense {
	rows, cols := x.Dims()
	e := mat.NewDense(2*rows, 2*cols, nil)
	e.Slice(0, rows, 0, cols).(*mat.Dense).Copy(x.re)
	e.Slice(0, rows, cols, 2*cols).(*mat.Dense).Scale(-1, x.im)
	e.Slice(rows, 2*rows, 0, cols).(*mat.Dense).Copy(x.im)
	e.Slice(rows, 2*rows, cols, 2*cols).(*mat.Dense).Copy(x.re)
	return e
}

// Expm returns the matrix exponential of a square matrix, computed on its real embedding.
func Expm(x *Split) (*Split, error) {
	var out *Split
	err := catchShape("split.Expm", func() {
		rows, _ := x.Dims()
		var exp, re, im mat.Dense
		exp.Exp(embed(x))
		re.CloneFrom(exp.Slice(0, rows, 0, rows))
		im.CloneFrom(exp.Slice(rows, 2*rows, 0, rows))
		out = New(&re, &im)
	}, x)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// isHermitian returns whether x is exactly equal to its conjugate transpose.
func isHermitian(x *Split) bool {
	rows, cols := x.Dims()
	if rows != cols {
		return false
	}
	for i := range rows {
		for j := i; j < cols; j++ {
			if x.re.At(i, j) != x.re.At(j, i) || x.im.At(i, j) != -x.im.At(j, i) {
				return false
			}
		}
	}
	return true
}

// Eigvals returns the eigenvalues of a Hermitian matrix, in ascending order.
//
// Each eigenvalue of x appears twice in its real embedding, which is symmetric.
// Non-Hermitian matrices are not supported, and return data.ErrNotImplemented.
func Eigvals(x *Split) ([]float64, error) {
	rows, cols := x.Dims()
	if rows != cols {
		return nil, data.NewShapeError("split.Eigvals", "operand must be square", x)
	}
	if !isHermitian(x) {
		return nil, errors.Wrap(data.ErrNotImplemented, "split.Eigvals of a non-Hermitian matrix")
	}
	e := embed(x)
	var eigen mat.EigenSym
	if !eigen.Factorize(mat.NewSymDense(2*rows, e.RawMatrix().Data), false) {
		return nil, errors.Errorf("split.Eigvals: eigendecomposition of the %dx%d matrix failed", rows, cols)
	}
	doubled := eigen.Values(nil)
	values := make([]float64, rows)
	for ii := range values {
		values[ii] = doubled[2*ii]
	}
	return values, nil
}
