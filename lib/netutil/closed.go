// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies connection errors for the UI bridge.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal connection
// termination: EOF, closed connection, broken pipe, or connection
// reset. These occur during bridge teardown when one side disconnects
// and the other side's in-flight read or write fails as a result.
//
// The bridge uses full-close (closing the entire connection rather
// than half-close), which produces ECONNRESET and EPIPE instead of
// EOF on the surviving side. All four are expected and are logged at
// debug level rather than as errors.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}
