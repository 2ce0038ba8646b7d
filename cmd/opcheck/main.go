// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// opcheck lists the test cases generated for the linear-algebra units, and runs the benchmark grid
// of the representation types.
//
// Examples:
//
//	opcheck -dim=10 -types="Dense|CSR"   # Summary of the cases of every unit.
//	opcheck -ids -unit=Add               # IDs of the cases of the Add unit.
//	opcheck -bench -bench_csv=bench.csv -bench_plot=/tmp/plots
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gomlx/opcheck/internal/workerspool"
	"github.com/gomlx/opcheck/pkg/mathtest"
	"github.com/gomlx/opcheck/pkg/opcheck"
	"github.com/gomlx/opcheck/pkg/support/sets"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagDim   = flag.Int("dim", 0, "Base dimension of the shapes. If 0, the value from $"+opcheck.OPCHECK_CONFIG+" is used.")
	flagTypes = flag.String("types", "", "List of data types to include, separated by '|'. If empty, the value from $"+
		opcheck.OPCHECK_CONFIG+" is used, and if that is not set, all types are included.")
	flagUnit = flag.String("unit", "", "Comma-separated list of units to report. If empty, all units are reported.")
	flagList = flag.Bool("list", false, "Lists the specializations of each unit.")
	flagIDs  = flag.Bool("ids", false, "Lists the IDs of every generated test case.")

	flagBench        = flag.Bool("bench", false, "Run the benchmark grid instead of listing test cases.")
	flagBenchMaxSize = flag.Int("bench_max_size", 1<<8, "Largest matrix dimension of the benchmark grid, sizes are powers of 2.")
	flagBenchReps    = flag.Int("bench_reps", 3, "Number of repetitions of each benchmark.")
	flagBenchCSV     = flag.String("bench_csv", "", "If set, save the benchmark results to the given CSV file.")
	flagBenchPlot    = flag.String("bench_plot", "", "If set, save the plots of the benchmark results to the given directory.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %q. See 'opcheck -help'.", flag.Args())
		os.Exit(1)
	}
	if *flagBench {
		runBenchmarks()
		return
	}

	config := loadConfig()
	units := selectUnits(mathtest.All(config.Dim))
	for ii, unit := range units {
		units[ii] = config.Apply(unit)
	}
	if unused := unusedTypes(config, units); len(unused) > 0 {
		klog.Warningf("Types %q are not used by any specialization of the selected units", unused)
	}
	if *flagList {
		fmt.Println(typesTable().Render())
		fmt.Println(specializationsTable(units).Render())
	}
	results := opcheck.CollectAll(workerspool.New(), units)
	var failed bool
	for _, result := range results {
		if result.Err != nil {
			klog.Errorf("%+v", result.Err)
			failed = true
		}
	}
	types := "all types"
	if len(config.Types) > 0 {
		types = strings.Join(sets.Sorted(config.Types), ", ")
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Test cases (dim=%d, %s)", config.Dim, types)))
	fmt.Println(casesTable(units, results).Render())
	if *flagIDs {
		printIDs(results)
	}
	if failed {
		os.Exit(1)
	}
}

// loadConfig from the environment, overridden by the flags.
func loadConfig() opcheck.Config {
	config := must.M1(opcheck.LoadConfig())
	if *flagDim != 0 || *flagTypes != "" {
		var parts []string
		if *flagDim != 0 {
			parts = append(parts, fmt.Sprintf("dim=%d", *flagDim))
		} else {
			parts = append(parts, fmt.Sprintf("dim=%d", config.Dim))
		}
		if *flagTypes != "" {
			parts = append(parts, "types="+*flagTypes)
		}
		flagsConfig, err := opcheck.ParseConfig(strings.Join(parts, ","))
		if err != nil {
			klog.Fatalf("Invalid -dim or -types: %+v", err)
		}
		if *flagTypes == "" {
			flagsConfig.Types = config.Types
		}
		config = flagsConfig
	}
	return config
}

// unusedTypes returns the sorted names of the configured types that no specialization of the units uses.
func unusedTypes(config opcheck.Config, units []*opcheck.Unit) []string {
	used := make(sets.Set[string])
	for _, unit := range units {
		for _, t := range unit.OperandTypes() {
			used.Insert(t.Name())
		}
	}
	return sets.Sorted(config.Types.Sub(used))
}

// selectUnits filters the units by the -unit flag.
func selectUnits(units []*opcheck.Unit) []*opcheck.Unit {
	if *flagUnit == "" {
		return units
	}
	var selected []*opcheck.Unit
	for _, name := range strings.Split(*flagUnit, ",") {
		var found bool
		for _, unit := range units {
			if strings.EqualFold(unit.Name, strings.TrimSpace(name)) {
				selected = append(selected, unit)
				found = true
			}
		}
		if !found {
			klog.Fatalf("Unknown unit %q in -unit", name)
		}
	}
	return selected
}
