// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Column names of the results and summary DataFrames.
const (
	ColType    = "type"
	ColOp      = "op"
	ColDensity = "density"
	ColSize    = "size"
	ColSeconds = "seconds"
	ColSkipped = "skipped"
	ColReps    = "reps"
)

// ToDataFrame converts the results to a DataFrame, one row per measurement.
func ToDataFrame(results []Result) dataframe.DataFrame {
	return dataframe.LoadStructs(results)
}

// Summary is the mean time of the non-skipped repetitions of one grid cell.
type Summary struct {
	Type    string  `dataframe:"type"`
	Op      string  `dataframe:"op"`
	Density string  `dataframe:"density"`
	Size    int     `dataframe:"size"`
	Reps    int     `dataframe:"reps"`
	Seconds float64 `dataframe:"seconds"`
}

// Summarize the results in a DataFrame with the mean time per type, op, density and size, in the
// order they were measured. Cells where all repetitions were skipped are omitted.
func Summarize(results []Result) dataframe.DataFrame {
	type key struct {
		typeName, op, density string
		size                  int
	}
	var keys []key
	sums := make(map[key]*Summary)
	for _, r := range results {
		if r.Skipped {
			continue
		}
		k := key{r.Type, r.Op, r.Density, r.Size}
		s, found := sums[k]
		if !found {
			s = &Summary{Type: r.Type, Op: r.Op, Density: r.Density, Size: r.Size}
			sums[k] = s
			keys = append(keys, k)
		}
		s.Reps++
		s.Seconds += r.Seconds
	}
	summaries := make([]Summary, 0, len(keys))
	for _, k := range keys {
		s := sums[k]
		s.Seconds /= float64(s.Reps)
		summaries = append(summaries, *s)
	}
	return dataframe.LoadStructs(summaries)
}

// WriteCSV writes the DataFrame as CSV, with a header.
func WriteCSV(df dataframe.DataFrame, w io.Writer) error {
	if df.Err != nil {
		return errors.Wrap(df.Err, "invalid benchmark results")
	}
	return errors.Wrap(df.WriteCSV(w), "failed to write benchmark results")
}

// unique returns the distinct values of a string column, in order of appearance.
func unique(df dataframe.DataFrame, col string) []string {
	var values []string
	for _, v := range df.Col(col).Records() {
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values
}

// filter the DataFrame to the rows whose columns are equal to the given values.
func filter(df dataframe.DataFrame, colsAndValues ...string) dataframe.DataFrame {
	for ii := 0; ii+1 < len(colsAndValues); ii += 2 {
		df = df.Filter(dataframe.F{Colname: colsAndValues[ii], Comparator: series.Eq, Comparando: colsAndValues[ii+1]})
	}
	return df
}

// Plot returns a log-log plot of the time per size of each type, for one op and density of the
// summary DataFrame (see Summarize).
func Plot(summary dataframe.DataFrame, op, density string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", op, density)
	p.X.Label.Text = "size"
	p.Y.Label.Text = "seconds"
	p.X.Scale, p.Y.Scale = plot.LogScale{}, plot.LogScale{}
	p.X.Tick.Marker, p.Y.Tick.Marker = plot.LogTicks{Prec: -1}, plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	var lines []any
	cell := filter(summary, ColOp, op, ColDensity, density)
	for _, typeName := range unique(cell, ColType) {
		rows := filter(cell, ColType, typeName)
		sizes, seconds := rows.Col(ColSize).Float(), rows.Col(ColSeconds).Float()
		xys := make(plotter.XYs, 0, len(sizes))
		for ii := range sizes {
			// Log scales can't represent 0.
			if seconds[ii] > 0 {
				xys = append(xys, plotter.XY{X: sizes[ii], Y: seconds[ii]})
			}
		}
		if len(xys) > 0 {
			lines = append(lines, typeName, xys)
		}
	}
	if len(lines) == 0 {
		return nil, errors.Errorf("no results to plot for %s (%s)", op, density)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, errors.Wrapf(err, "failed to plot %s (%s)", op, density)
	}
	return p, nil
}

// SavePlots saves one png plot per op and density of the summary DataFrame in dir, and returns
// the paths of the files written.
func SavePlots(summary dataframe.DataFrame, dir string) ([]string, error) {
	var paths []string
	for _, op := range unique(summary, ColOp) {
		for _, density := range unique(summary, ColDensity) {
			if filter(summary, ColOp, op, ColDensity, density).Nrow() == 0 {
				continue
			}
			p, err := Plot(summary, op, density)
			if err != nil {
				return nil, err
			}
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", op, density))
			if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
				return nil, errors.Wrapf(err, "failed to save plot to %q", path)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
