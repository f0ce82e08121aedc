// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell is the composition root of the Wox UI shell. It wires
// the window, the backend process watchdog, the message bridge, and
// the control socket together and supervises their shared lifetime:
// the shell lives exactly as long as the backend does.
package shell
