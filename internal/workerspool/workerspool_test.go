// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package workerspool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	for _, parallelism := range []int{0, 1, 3, -1} {
		pool := NewWithParallelism(parallelism)
		var running, maxRunning, done atomic.Int32
		var mu sync.Mutex
		for range 20 {
			pool.Go(func() {
				current := running.Add(1)
				mu.Lock()
				if current > maxRunning.Load() {
					maxRunning.Store(current)
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				running.Add(-1)
				done.Add(1)
			})
		}
		pool.Wait()
		require.Equal(t, int32(20), done.Load())
		if parallelism > 0 {
			require.LessOrEqual(t, maxRunning.Load(), int32(parallelism))
		}
		if parallelism == 0 {
			require.Equal(t, int32(1), maxRunning.Load())
		}
	}
}
