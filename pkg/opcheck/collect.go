// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"github.com/gomlx/opcheck/internal/workerspool"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Collect the parametrization of the test testName of unit.
//
// The generator is looked up in DefaultRegistry, overridden by unit.Generators. If none is found,
// the returned Collection is not parametrized. Generation errors are returned wrapped with the unit
// and test names: they affect only this one test.
func Collect(unit *Unit, testName string) (*Collection, error) {
	return collect(uuid.NewString(), unit, testName)
}

func collect(session string, unit *Unit, testName string) (*Collection, error) {
	decl, found := unit.Test(testName)
	if !found {
		return nil, errors.Errorf("unit %s has no test %q", unit.Name, testName)
	}
	c := newCollection(session, unit, decl)
	generator, found := DefaultRegistry.With(unit.Generators).Lookup(testName)
	if !found {
		klog.V(1).Infof("session %s: %s::%s has no generator, no parametrization injected", session, unit.Name, testName)
		return c, nil
	}
	if err := generator(unit, c); err != nil {
		return nil, errors.WithMessagef(err, "failed to collect %s::%s", unit.Name, testName)
	}
	klog.V(1).Infof("session %s: collected %s::%s: %d cases (%d skipped)",
		session, unit.Name, testName, len(c.Cases()), c.NumSkipped())
	return c, nil
}

// CollectionResult holds the result of collecting one test of one unit with CollectAll.
type CollectionResult struct {
	Unit       *Unit
	Test       TestDecl
	Collection *Collection
	Err        error
}

// CollectAll collects every test of every unit concurrently, using the given pool (if nil a default
// pool is used). Results are returned in unit order, then test order.
//
// Errors are reported per test in CollectionResult.Err, they don't interrupt the collection of other tests.
func CollectAll(pool *workerspool.Pool, units []*Unit) []CollectionResult {
	if pool == nil {
		pool = workerspool.New()
	}
	session := uuid.NewString()
	var results []CollectionResult
	for _, unit := range units {
		for _, decl := range unit.Tests() {
			results = append(results, CollectionResult{Unit: unit, Test: decl})
		}
	}
	klog.V(1).Infof("session %s: collecting %d tests of %d units, parallelism %d",
		session, len(results), len(units), pool.MaxParallelism())
	for ii := range results {
		// Each task writes only to its own element of results.
		pool.Go(func() {
			r := &results[ii]
			r.Collection, r.Err = collect(session, r.Unit, r.Test.Name)
		})
	}
	pool.Wait()
	return results
}
