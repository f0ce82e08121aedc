// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package watchdog ends the UI shell when its backend process dies.
//
// The shell is a front-end for a separate backend process and has no
// purpose without it. Rather than a shutdown handshake, the backend's
// PID is handed to the shell at launch and [Watchdog.Run] polls the
// process table every few seconds. When the PID stops resolving the
// watchdog terminates the whole application — this is the only
// cleanup path the bridge relies on after its connection drops, so
// there is exactly one place where lifecycle decisions happen.
//
// The probe, clock, and termination action are injectable, which keeps
// the multi-second polling loop testable in microseconds with
// lib/clock's FakeClock.
package watchdog
