// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/opcheck/pkg/bench"
	"github.com/gomlx/opcheck/pkg/support/fsutil"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// runBenchmarks runs the benchmark grid with a progress bar, and reports the results.
func runBenchmarks() {
	grid := bench.NewGrid(*flagBenchMaxSize, *flagBenchReps)
	if len(grid.Sizes) == 0 || grid.Reps <= 0 {
		klog.Fatalf("Empty benchmark grid: -bench_max_size must be >= 2 and -bench_reps must be > 0")
	}
	output := termenv.NewOutput(os.Stdout)
	useColors := output.Profile != termenv.Ascii
	bar := progressbar.NewOptions(grid.Len(),
		progressbar.OptionSetDescription("Benchmarks: "),
		progressbar.OptionUseANSICodes(useColors),
		progressbar.OptionEnableColorCodes(useColors),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.ThemeUnicode),
		progressbar.OptionClearOnFinish(),
	)
	results := must.M1(grid.Run(func(r bench.Result) {
		bar.Describe(fmt.Sprintf("Benchmarks %-24s", r.String()+":"))
		_ = bar.Add(1)
	}))
	_ = bar.Finish()
	if useColors {
		output.ClearLine()
	}

	summary := bench.Summarize(results)
	if summary.Err != nil {
		klog.Fatalf("No benchmark results: %+v", summary.Err)
	}
	table := newTable("Type", "Op", "Density", "Size", "Time")
	types, ops := summary.Col(bench.ColType).Records(), summary.Col(bench.ColOp).Records()
	densities, sizes := summary.Col(bench.ColDensity).Records(), summary.Col(bench.ColSize).Records()
	seconds := summary.Col(bench.ColSeconds).Float()
	for ii := range summary.Nrow() {
		elapsed := time.Duration(seconds[ii] * float64(time.Second))
		table.Row(types[ii], ops[ii], densities[ii], sizes[ii], elapsed.String())
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Benchmarks (%s measurements)", humanize.Comma(int64(len(results))))))
	fmt.Println(table.Render())

	if *flagBenchCSV != "" {
		path := must.M1(fsutil.OutputFile(*flagBenchCSV))
		f := must.M1(os.Create(path))
		must.M(bench.WriteCSV(bench.ToDataFrame(results), f))
		must.M(f.Close())
		fmt.Printf("Results saved to %q\n", path)
	}
	if *flagBenchPlot != "" {
		dir := must.M1(fsutil.OutputDir(*flagBenchPlot))
		for _, path := range must.M1(bench.SavePlots(summary, dir)) {
			fmt.Printf("Plot saved to %q\n", path)
		}
	}
}
