// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Deliver after Close.
var ErrClosed = errors.New("surface: closed")

// Surface is the messaging boundary of the windowed UI. The bridge
// pushes backend messages in through Deliver and drains UI messages
// from Outgoing; what the payloads mean is entirely the UI's business.
//
// A Surface is always borrowed: the window owns it, the supervisor and
// the bridge hold references for the window's lifetime.
type Surface interface {
	// Deliver hands one backend message to the UI. Messages are
	// delivered in arrival order; Deliver may block when the UI is
	// slow to consume.
	Deliver(payload []byte) error

	// Outgoing yields messages the UI wants sent to the backend, in
	// emission order.
	Outgoing() <-chan []byte
}

// Channel is a buffered, channel-backed Surface. The window adapter
// sits on the UI side (Emit/Incoming); the bridge sits on the backend
// side (Deliver/Outgoing). Both directions preserve order and are safe
// for concurrent use.
type Channel struct {
	incoming chan []byte
	outgoing chan []byte

	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// NewChannel returns a Channel with the given per-direction buffer
// size. A buffer of zero makes both directions fully synchronous.
func NewChannel(buffer int) *Channel {
	return &Channel{
		incoming: make(chan []byte, buffer),
		outgoing: make(chan []byte, buffer),
		done:     make(chan struct{}),
	}
}

// Deliver enqueues one backend message for the UI. Blocks when the
// buffer is full. Returns ErrClosed after Close, including for a
// Deliver already blocked on a full buffer when Close happens.
func (c *Channel) Deliver(payload []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.incoming <- payload:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// Outgoing yields UI-emitted messages in emission order.
func (c *Channel) Outgoing() <-chan []byte {
	return c.outgoing
}

// Emit enqueues one UI message for the backend. Called by the window
// adapter from the UI's event thread; safe to call concurrently with
// the bridge draining Outgoing.
func (c *Channel) Emit(payload []byte) {
	c.outgoing <- payload
}

// Incoming yields backend messages in delivery order. The window
// adapter consumes this and forwards each payload to the UI toolkit's
// event channel.
func (c *Channel) Incoming() <-chan []byte {
	return c.incoming
}

// Close marks the surface closed. Subsequent Deliver calls fail with
// ErrClosed, and any Deliver blocked on a full buffer unblocks with
// ErrClosed. The message channels themselves stay open so in-flight
// messages remain readable; the shell's lifetime ends by process
// termination, not by draining.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}
