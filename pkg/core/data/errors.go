// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package data

import (
	"fmt"
	"strings"
)

// ShapeError is returned by operations when the shapes of the operands are not compatible.
//
// Tests for the negative path check for it with errors.As: any other error is a failure.
type ShapeError struct {
	// Op is the name of the operation that failed.
	Op string

	// Dims of each of the operands, as (rows, cols).
	Dims [][2]int

	// Reason is an optional explanation.
	Reason string
}

// NewShapeError creates a ShapeError for the given operation and operands.
func NewShapeError(op, reason string, operands ...Data) *ShapeError {
	e := &ShapeError{Op: op, Reason: reason, Dims: make([][2]int, len(operands))}
	for ii, operand := range operands {
		rows, cols := operand.Dims()
		e.Dims[ii] = [2]int{rows, cols}
	}
	return e
}

// Error implements error.
func (e *ShapeError) Error() string {
	parts := make([]string, len(e.Dims))
	for ii, dims := range e.Dims {
		parts[ii] = dimsString(dims[0], dims[1])
	}
	msg := fmt.Sprintf("%s: incompatible operand shapes %s", e.Op, strings.Join(parts, " and "))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func dimsString(rows, cols int) string {
	return fmt.Sprintf("(%d,%d)", rows, cols)
}
