// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package surface defines the messaging boundary between the UI shell
// and its windowed front-end.
//
// The shell never interprets UI traffic: backend messages go in
// through [Surface.Deliver], UI messages come out of
// [Surface.Outgoing], and payload contents are opaque bytes whose
// schema belongs to the UI and the backend. [Channel] is the concrete
// implementation the window adapter plugs the toolkit into; tests use
// it directly as an in-memory UI.
package surface
