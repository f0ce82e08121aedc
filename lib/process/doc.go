// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides OS process helpers for the UI shell.
//
// [Alive] is the liveness probe behind the backend watchdog: it asks
// the kernel whether a PID still resolves to a running process, using
// signal 0 (no signal is delivered, only the permission and existence
// checks run). EPERM counts as alive — the process exists, we merely
// may not signal it.
//
// [Fatal] is the standard entrypoint error handler: main() calls it
// for errors returned by run(), where the file logger may not be
// initialized yet.
package process
