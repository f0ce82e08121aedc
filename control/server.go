// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/wox-launcher/shell/lib/codec"
)

// requestDeadline bounds one request/response cycle. Control
// operations are synchronous and cheap; anything slower than this is
// a wedged client.
const requestDeadline = 30 * time.Second

// Handler implements one UI-invokable operation. It receives the
// request's string params and returns result text (possibly empty) or
// an error that is reported to the caller verbatim.
type Handler func(params map[string]string) (string, error)

// Server serves UI-invokable operations on a Unix socket, one CBOR
// request/response cycle per connection. Register all handlers before
// Start; the handler map is read-only while serving.
type Server struct {
	// SocketPath is the Unix socket to listen on. A stale socket file
	// from a previous launch is removed before binding.
	SocketPath string

	// Logger receives serve-loop events. Nil means slog.Default().
	Logger *slog.Logger

	handlers map[string]Handler
	listener net.Listener
	done     chan struct{}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Register installs the handler for a method name. Must be called
// before Start.
func (s *Server) Register(method string, handler Handler) {
	if s.handlers == nil {
		s.handlers = make(map[string]Handler)
	}
	s.handlers[method] = handler
}

// Start binds the socket and begins serving in a background
// goroutine. The server runs until ctx is cancelled; Wait blocks
// until the serve loop has exited.
func (s *Server) Start(ctx context.Context) error {
	if s.SocketPath == "" {
		return fmt.Errorf("control: SocketPath is required")
	}

	// A previous launch that was killed (rather than shut down) leaves
	// its socket file behind; remove it or the bind fails.
	if err := os.Remove(s.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("control: removing stale socket %s: %w", s.SocketPath, err)
	}

	listener, err := net.Listen("unix", s.SocketPath)
	if err != nil {
		return fmt.Errorf("control: listening on %s: %w", s.SocketPath, err)
	}
	s.listener = listener
	s.done = make(chan struct{})

	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	go func() {
		defer close(s.done)
		s.serve(ctx)
	}()

	s.logger().Info("control socket ready", "path", s.SocketPath)
	return nil
}

// Wait blocks until the serve loop has exited. Must not be called
// before a successful Start.
func (s *Server) Wait() {
	<-s.done
}

// serve accepts connections until the listener closes.
func (s *Server) serve(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.logger().Error("control accept failed", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection processes a single request/response cycle.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(requestDeadline))

	decoder := codec.NewDecoder(conn)
	encoder := codec.NewEncoder(conn)

	var request Request
	if err := decoder.Decode(&request); err != nil {
		s.logger().Error("decoding control request", "error", err)
		return
	}

	response := Response{ID: request.ID}
	handler, known := s.handlers[request.Method]
	if !known {
		response.Error = fmt.Sprintf("unknown method %q", request.Method)
	} else if data, err := handler(request.Params); err != nil {
		response.Error = err.Error()
	} else {
		response.OK = true
		response.Data = data
	}

	if err := encoder.Encode(response); err != nil {
		s.logger().Error("encoding control response", "method", request.Method, "error", err)
	}
}
