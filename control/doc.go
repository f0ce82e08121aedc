// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package control serves the shell's UI-invokable operations.
//
// The windowed front-end needs a handful of synchronous calls into
// native code: asking which port the backend listens on, appending to
// the shell's log file, and checking which build it is talking to.
// These are served over a local Unix socket as CBOR request/response —
// one cycle per connection, 30 second deadline, no state between
// calls.
//
// [Server] holds the handler registry; the supervisor registers
// "get_server_port", "log_ui", and "status" at composition time.
// [Invoke] is the matching single-shot client used by the toolkit
// binding and by tests. The socket trusts its filesystem permissions:
// anything that can connect may invoke, which matches the threat model
// of a per-user launcher on a local machine.
package control
