// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/gomlx/opcheck/pkg/support/xslices"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newTable(headers ...string) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers(headers...).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row == lgtable.HeaderRow:
				return headerRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

// typesTable lists the registered representation types.
func typesTable() *lgtable.Table {
	table := newTable("Type", "Go type", "DType", "Tensor-like")
	for _, t := range data.Types() {
		table.Row(t.Name(), t.GoType().String(), t.DType().String(), fmt.Sprint(t.IsData()))
	}
	return table
}

// specializationsTable lists the specializations of each unit.
func specializationsTable(units []*opcheck.Unit) *lgtable.Table {
	table := newTable("Unit", "Arity", "Specialization", "Scales")
	for _, unit := range units {
		var scales []string
		for _, scale := range unit.Scales {
			scales = append(scales, scale.ID)
		}
		for _, spec := range unit.Specializations {
			table.Row(unit.Name, unit.Arity.String(), spec.String(), strings.Join(scales, ", "))
		}
	}
	return table
}

// maxOperandsMemory returns the largest memory used by the operands of one shape tuple of the unit.
func maxOperandsMemory(unit *opcheck.Unit) uint64 {
	var maxMemory uint64
	for _, t := range unit.OperandTypes() {
		if !t.IsData() {
			continue
		}
		for _, tuple := range append(append([]shapes.Tuple(nil), unit.Shapes...), unit.BadShapes...) {
			var memory uint64
			for _, s := range tuple {
				memory += uint64(s.Memory(t.DType()))
			}
			maxMemory = max(maxMemory, memory)
		}
	}
	return maxMemory
}

// casesTable summarizes the collected cases of every test.
func casesTable(units []*opcheck.Unit, results []opcheck.CollectionResult) *lgtable.Table {
	table := newTable("Unit", "Test", "Parameters", "# cases", "# skipped", "Max operands memory")
	var numCases []int
	for _, result := range results {
		row := []string{result.Unit.Name, result.Test.Name, strings.Join(result.Test.Params, ", ")}
		switch {
		case result.Err != nil:
			row = append(row, "error", "", "")
		case !result.Collection.Parametrized():
			row = append(row, "not parametrized", "", "")
		default:
			n := len(result.Collection.Cases())
			numCases = append(numCases, n)
			row = append(row, humanize.Comma(int64(n)),
				humanize.Comma(int64(result.Collection.NumSkipped())),
				humanize.Bytes(maxOperandsMemory(result.Unit)))
		}
		table.Row(row...)
	}
	table.Row(fmt.Sprintf("%d units", len(units)), "", "", humanize.Comma(int64(xslices.Sum(numCases))), "", "")
	return table
}

// printIDs prints the IDs of the cases of every test.
func printIDs(results []opcheck.CollectionResult) {
	for _, result := range results {
		if result.Err != nil || !result.Collection.Parametrized() {
			continue
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s::%s", result.Unit.Name, result.Test.Name)))
		for _, tc := range result.Collection.Cases() {
			if tc.Skip {
				fmt.Printf("  %s (skipped: %s)\n", tc.ID, tc.Reason)
			} else {
				fmt.Printf("  %s\n", tc.ID)
			}
		}
	}
}
