// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package tstest contains helpers shared by this module's tests.
package tstest

import (
	"fmt"
	"runtime"
	"testing"
	"time"
)

// MinAllocsPerRun reports whether f can run with no more than target
// allocations. It runs f up to 1000 times or 5s, whichever happens
// first, and succeeds as soon as one run stays within target, so a
// stray allocation from the runtime doesn't fail the check.
//
// MinAllocsPerRun sets GOMAXPROCS to 1 during its measurement and
// restores it before returning.
func MinAllocsPerRun(target uint64, f func()) error {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	var memstats runtime.MemStats
	var lo, hi, sum uint64
	start := time.Now()
	var iters int
	for {
		runtime.ReadMemStats(&memstats)
		startMallocs := memstats.Mallocs
		f()
		runtime.ReadMemStats(&memstats)
		mallocs := memstats.Mallocs - startMallocs
		if mallocs <= target {
			return nil
		}
		if lo == 0 || mallocs < lo {
			lo = mallocs
		}
		hi = max(hi, mallocs)
		sum += mallocs
		iters++
		if iters == 1000 || time.Since(start) > 5*time.Second {
			break
		}
	}

	return fmt.Errorf("min allocs = %d, max allocs = %d, avg allocs/run = %f, want run with <= %d allocs", lo, hi, float64(sum)/float64(iters), target)
}

// CheckAllocs fails t if f cannot run within target allocations.
func CheckAllocs(t testing.TB, name string, target uint64, f func()) {
	t.Helper()
	if err := MinAllocsPerRun(target, f); err != nil {
		t.Errorf("%s: %v", name, err)
	}
}
