// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional shell configuration file.
//
// Configuration is read from a single YAML file, by default
// <home>/.wox/ui.yaml, overridable with the --config flag. There is no
// search path and no environment merging: one file, explicit location,
// deterministic result. A missing file means built-in defaults; a
// malformed file is a startup error rather than a silent fallback.
//
// Launch arguments always win over file values — the backend spawns
// the shell with the port and PID on the command line, and a stale
// config file must not override what the backend just said.
package config
