// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package control

// Request is a CBOR-encoded operation invocation from the UI, sent
// over the shell's control socket. One request/response cycle per
// connection.
type Request struct {
	// ID correlates the response in UI-side logs. Opaque to the shell.
	ID string `cbor:"id,omitempty"`

	// Method is the operation name: "get_server_port", "log_ui", or
	// "status".
	Method string `cbor:"method"`

	// Params carries the operation's string arguments. log_ui expects
	// "msg"; the other operations take none.
	Params map[string]string `cbor:"params,omitempty"`
}

// Response is the CBOR-encoded result of a Request.
type Response struct {
	// ID echoes the request's ID.
	ID string `cbor:"id,omitempty"`

	// OK indicates whether the operation succeeded.
	OK bool `cbor:"ok"`

	// Error contains the failure message when OK is false.
	Error string `cbor:"error,omitempty"`

	// Data is the operation's result text, when it has one (the port
	// for get_server_port, version and digest lines for status).
	Data string `cbor:"data,omitempty"`
}
