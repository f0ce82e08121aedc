// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Command wox-shell is the native UI shell of the Wox launcher. The
// backend spawns it with the backend's streaming port and PID as
// positional arguments:
//
//	wox-shell [flags] [port] [pid]
//
// The shell connects to the backend on localhost:<port>, relays
// messages between the backend and the UI surface, serves UI-invokable
// operations on a Unix control socket, and exits the moment the
// backend process disappears.
package main
