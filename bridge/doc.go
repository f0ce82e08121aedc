// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge carries UI traffic between the windowed front-end and
// the backend's local socket.
//
// The backend serves the UI protocol on a localhost stream socket; the
// webview cannot speak to it directly, so the shell opens one outbound
// connection at UI-ready time and relays in both directions: messages
// arriving on the connection go to the surface unmodified, messages
// the UI emits go onto the connection unmodified. Payloads are opaque
// — the bridge frames with newlines and never parses contents.
//
// [Bridge] is the single type. Start dials with bounded exponential
// backoff (the backend may still be binding its listener when the UI
// process starts) and launches the two relay goroutines; Wait blocks
// until both stop. There is deliberately no reconnect path: a dropped
// connection means the backend is dying or dead, and the watchdog —
// not the bridge — owns that decision, so lifecycle logic lives in
// exactly one place.
package bridge
