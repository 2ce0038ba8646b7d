// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cases

import (
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/pkg/errors"
)

// Op is one monomorphic specialization of a polymorphic operation under test.
//
// Fn takes the data operands, possibly followed by scalar parameters, and returns a data instance
// or a scalar. It must return a *data.ShapeError for incompatible operand shapes.
//
// Use the adapters Unary, Binary and ScaledBinary to build an Op from typed kernels.
type Op struct {
	Name string
	Fn   func(args ...any) (any, error)
}

// Call the operation with the given arguments.
func (op Op) Call(args ...any) (any, error) {
	return op.Fn(args...)
}

// String implements fmt.Stringer.
func (op Op) String() string { return op.Name }

func argAs[T any](opName string, args []any, idx int) (value T, err error) {
	if idx >= len(args) {
		err = errors.Errorf("%s: missing argument #%d", opName, idx)
		return
	}
	var ok bool
	value, ok = args[idx].(T)
	if !ok {
		err = errors.Errorf("%s: argument #%d has type %T, wanted %T", opName, idx, args[idx], value)
	}
	return
}

func checkNumArgs(opName string, args []any, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		if minArgs == maxArgs {
			return errors.Errorf("%s: takes %d arguments, %d given", opName, minArgs, len(args))
		}
		return errors.Errorf("%s: takes %d to %d arguments, %d given", opName, minArgs, maxArgs, len(args))
	}
	return nil
}

// Unary adapts a typed unary kernel to an Op.
func Unary[X data.Data, Out any](name string, fn func(x X) (Out, error)) Op {
	return Op{Name: name, Fn: func(args ...any) (any, error) {
		if err := checkNumArgs(name, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := argAs[X](name, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(x)
	}}
}

// Binary adapts a typed binary kernel to an Op.
func Binary[L, R data.Data, Out any](name string, fn func(left L, right R) (Out, error)) Op {
	return Op{Name: name, Fn: func(args ...any) (any, error) {
		if err := checkNumArgs(name, args, 2, 2); err != nil {
			return nil, err
		}
		left, err := argAs[L](name, args, 0)
		if err != nil {
			return nil, err
		}
		right, err := argAs[R](name, args, 1)
		if err != nil {
			return nil, err
		}
		return fn(left, right)
	}}
}

// ScaledBinary adapts a typed binary kernel with an optional scalar parameter (e.g. `left + scale*right`) to an Op.
//
// The Op accepts 2 arguments (the kernel is called without scale) or 3, where the
// third argument is a complex128 or a float64.
func ScaledBinary[L, R data.Data, Out any](name string, fn func(left L, right R, scale ...complex128) (Out, error)) Op {
	return Op{Name: name, Fn: func(args ...any) (any, error) {
		if err := checkNumArgs(name, args, 2, 3); err != nil {
			return nil, err
		}
		left, err := argAs[L](name, args, 0)
		if err != nil {
			return nil, err
		}
		right, err := argAs[R](name, args, 1)
		if err != nil {
			return nil, err
		}
		if len(args) == 2 {
			return fn(left, right)
		}
		var scale complex128
		switch s := args[2].(type) {
		case complex128:
			scale = s
		case float64:
			scale = complex(s, 0)
		default:
			return nil, errors.Errorf("%s: scale has type %T, wanted complex128 or float64", name, args[2])
		}
		return fn(left, right, scale)
	}}
}
