// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package watchdog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wox-launcher/shell/lib/clock"
	"github.com/wox-launcher/shell/lib/process"
)

// DefaultInterval is the polling interval between liveness probes.
const DefaultInterval = 3 * time.Second

// Watchdog ties the shell's lifetime to the backend process. It probes
// the backend PID on a fixed interval and calls Terminate the moment
// the PID no longer resolves to a live process. A probe failure counts
// as "gone" — an orphaned UI with no backend is worse than a spurious
// shutdown.
//
// Configure the fields before calling Run; they are read-only
// afterwards.
type Watchdog struct {
	// PID is the backend process identifier. Zero or negative means
	// no backend was supplied (standalone development): Run logs once
	// and returns without monitoring.
	PID int

	// Interval between probes. Zero means DefaultInterval.
	Interval time.Duration

	// Probe reports whether a PID is alive. Nil means process.Alive.
	Probe func(pid int) bool

	// Terminate ends the application when the backend disappears.
	// Required when PID is set.
	Terminate func()

	// Logger receives per-poll observations. Nil means slog.Default().
	Logger *slog.Logger

	// Clock drives the polling loop. Nil means clock.Real().
	Clock clock.Clock
}

// Run polls until the backend disappears (then calls Terminate and
// returns) or ctx is cancelled. The first probe happens immediately,
// so a backend that died before the shell finished starting is caught
// within one interval, not two.
//
// Run blocks; callers start it on its own goroutine.
func (w *Watchdog) Run(ctx context.Context) {
	logger := w.logger()
	if w.PID <= 0 {
		logger.Info("no backend PID supplied, liveness monitoring disabled")
		return
	}

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	probe := w.Probe
	if probe == nil {
		probe = process.Alive
	}
	clk := w.Clock
	if clk == nil {
		clk = clock.Real()
	}

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !probe(w.PID) {
			logger.Info("backend process is not alive, exiting UI shell", "pid", w.PID)
			w.Terminate()
			return
		}
		logger.Info("backend process is alive", "pid", w.PID)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watchdog) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
