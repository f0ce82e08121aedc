// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package window isolates the windowing toolkit behind a small
// capability interface.
//
// The shell supports two variants, chosen once at composition time:
// [Standard], a plain application window, and [Panel], a launcher
// overlay raised above the menu bar and allowed over fullscreen
// applications. Platform-specific presentation calls are confined to
// the Panel variant's [PanelHooks], so nothing else in the shell
// branches on the operating system.
//
// The toolkit itself (window creation, event loop, webview) is an
// external collaborator. This package only carries the shell's side:
// the variant selection, the presentation hook calls, and the
// [surface.Surface] the bridge relays against.
package window
