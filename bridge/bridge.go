// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/wox-launcher/shell/lib/clock"
	"github.com/wox-launcher/shell/lib/netutil"
	"github.com/wox-launcher/shell/surface"
)

// Dial retry defaults. The backend may still be binding its listener
// when the UI process starts, so the first dial frequently loses the
// race; a few doubling retries cover multi-second backend startups
// without masking a backend that is genuinely absent.
const (
	DefaultDialAttempts   = 8
	DefaultDialBackoff    = 250 * time.Millisecond
	DefaultDialBackoffCap = 4 * time.Second
)

// Bridge relays messages between the UI surface and the backend's
// streaming socket, in both directions, without touching payload
// contents. Messages are newline-delimited on the wire; the bridge
// preserves per-direction ordering and makes no guarantee between
// directions. A blank line carries no message: the inbound relay
// skips it rather than delivering an empty payload.
//
// One Bridge owns one connection for the life of the process. There is
// no reconnect: a dropped connection means the backend is going or
// gone, and the watchdog handles that by terminating the whole shell.
type Bridge struct {
	// Addr is the backend endpoint, e.g. "localhost:34987".
	Addr string

	// Surface is the UI surface to relay against. Borrowed, never
	// owned.
	Surface surface.Surface

	// Logger receives lifecycle and relay events. Per-message events
	// are logged at debug level. Nil means slog.Default().
	Logger *slog.Logger

	// Clock times the dial backoff. Nil means clock.Real().
	Clock clock.Clock

	// DialAttempts, DialBackoff, and DialBackoffCap bound the
	// connection retry loop. Zero values mean the defaults above.
	DialAttempts   int
	DialBackoff    time.Duration
	DialBackoffCap time.Duration

	conn net.Conn
	done chan struct{}
}

func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bridge) clock() clock.Clock {
	if b.Clock != nil {
		return b.Clock
	}
	return clock.Real()
}

// Start dials the backend and launches both relays. It returns once
// the connection is up, or an error when every dial attempt failed.
// The relays run until the connection drops or ctx is cancelled; Wait
// blocks until both have stopped.
func (b *Bridge) Start(ctx context.Context) error {
	if b.Addr == "" {
		return fmt.Errorf("bridge: Addr is required")
	}
	if b.Surface == nil {
		return fmt.Errorf("bridge: Surface is required")
	}

	conn, err := b.dial(ctx)
	if err != nil {
		return err
	}
	b.conn = conn
	b.done = make(chan struct{})

	// Closing the connection on cancellation unblocks both the
	// inbound read and any in-flight outbound write.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	var relays sync.WaitGroup
	relays.Add(2)
	go func() {
		defer relays.Done()
		b.relayInbound(conn)
	}()
	go func() {
		defer relays.Done()
		b.relayOutbound(ctx, conn)
	}()
	go func() {
		relays.Wait()
		close(b.done)
	}()

	b.logger().Info("bridge connected", "addr", b.Addr)
	return nil
}

// Wait blocks until both relays have stopped. Must not be called
// before a successful Start.
func (b *Bridge) Wait() {
	<-b.done
}

// dial connects to the backend with bounded exponential backoff.
func (b *Bridge) dial(ctx context.Context) (net.Conn, error) {
	attempts := b.DialAttempts
	if attempts <= 0 {
		attempts = DefaultDialAttempts
	}
	backoff := b.DialBackoff
	if backoff <= 0 {
		backoff = DefaultDialBackoff
	}
	backoffCap := b.DialBackoffCap
	if backoffCap <= 0 {
		backoffCap = DefaultDialBackoffCap
	}

	var dialer net.Dialer
	var lastError error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := dialer.DialContext(ctx, "tcp", b.Addr)
		if err == nil {
			return conn, nil
		}
		lastError = err

		if attempt == attempts {
			break
		}
		b.logger().Warn("backend not reachable yet, retrying",
			"addr", b.Addr,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-b.clock().After(backoff):
		}
		backoff *= 2
		if backoff > backoffCap {
			backoff = backoffCap
		}
	}
	return nil, fmt.Errorf("bridge: connecting to backend at %s: %w", b.Addr, lastError)
}

// relayInbound reads newline-delimited messages from the connection
// and delivers each, unmodified and in order, to the UI surface.
// Blank lines are skipped. Returns when the connection drops; it
// closes the connection so the outbound relay unblocks too.
func (b *Bridge) relayInbound(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			// ReadBytes hands back its own allocation, so the payload
			// can go to the surface without copying.
			payload := trimNewline(line)
			if len(payload) > 0 {
				if deliverErr := b.Surface.Deliver(payload); deliverErr != nil {
					b.logger().Warn("dropping backend message, surface closed", "error", deliverErr)
					return
				}
				b.logger().Debug("relayed backend message", "bytes", len(payload))
			}
		}
		if err != nil {
			if netutil.IsExpectedCloseError(err) {
				b.logger().Debug("backend connection closed", "error", err)
			} else {
				b.logger().Error("reading from backend", "error", err)
			}
			return
		}
	}
}

// relayOutbound writes UI-emitted messages to the connection,
// unmodified and in order, newline terminated. Returns on write
// failure (connection gone) or ctx cancellation; it closes the
// connection so the inbound relay unblocks too.
func (b *Bridge) relayOutbound(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-b.Surface.Outgoing():
			if !ok {
				return
			}
			// Single framed write; appending to the payload in place
			// could scribble on the emitter's buffer.
			framed := make([]byte, 0, len(payload)+1)
			framed = append(framed, payload...)
			framed = append(framed, '\n')
			if _, err := conn.Write(framed); err != nil {
				if netutil.IsExpectedCloseError(err) {
					b.logger().Debug("backend connection closed during write", "error", err)
				} else {
					b.logger().Error("writing to backend", "error", err)
				}
				return
			}
			b.logger().Debug("relayed UI message", "bytes", len(payload))
		}
	}
}

// trimNewline strips one trailing "\n" or "\r\n".
func trimNewline(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}
