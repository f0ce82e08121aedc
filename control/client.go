// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"context"
	"fmt"
	"net"

	"github.com/wox-launcher/shell/lib/codec"
)

// Invoke performs one operation against a control socket: dial,
// request, response, close. The UI-side toolkit binding uses this to
// implement its invoke primitive; tests use it to drive the server.
func Invoke(ctx context.Context, socketPath string, request Request) (Response, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return Response{}, fmt.Errorf("control: dialing %s: %w", socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return Response{}, fmt.Errorf("control: sending %s request: %w", request.Method, err)
	}

	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("control: reading %s response: %w", request.Method, err)
	}
	return response, nil
}
