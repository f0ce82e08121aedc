// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging creates the UI shell's log file and the slog handler
// that writes it.
//
// The shell logs to a plain-text file at <home>/.wox/log/ui.log, one
// line per record:
//
//	2026-08-30 12:34:56.789 info backend process is alive pid=12345
//
// Timestamps are local time with millisecond precision; levels are
// lowercase. The file is truncated on every launch — each run of the
// shell owns exactly one log, and the backend collects or rotates
// nothing here.
//
// [Open] returns an explicitly owned *slog.Logger that the composition
// root injects into every component, rather than components reaching
// for an ambient global. [Discard] covers the degraded mode where the
// user's home directory cannot be resolved: the failure is printed
// once and the shell runs unlogged.
package logging
