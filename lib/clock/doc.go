// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock instead of calling time.Now,
// time.After, time.NewTicker, or time.Sleep directly. Real() provides
// standard library behavior; Fake() provides a deterministic clock
// that advances only when Advance is called. The watchdog's polling
// loop and the bridge's dial backoff are both timed through this
// interface, so their tests run in microseconds instead of real
// multi-second intervals.
//
// # Wiring pattern
//
// Add a Clock field to structs that use time:
//
//	w := &Watchdog{Clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	w := &Watchdog{Clock: c}
//	// ... start goroutines ...
//	c.WaitForTimers(1)            // goroutine registered its ticker
//	c.Advance(3 * time.Second)    // fire one poll deterministically
//
// When a goroutine calls Sleep, After, or NewTicker on a FakeClock it
// registers a pending waiter. WaitForTimers blocks until a given
// number of waiters exist, eliminating the race between timer
// registration and time advancement.
package clock
