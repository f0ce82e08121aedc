// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wox-launcher/shell/lib/testutil"
)

func TestChannel_DeliverPreservesOrder(t *testing.T) {
	channel := NewChannel(8)

	for i := 0; i < 8; i++ {
		if err := channel.Deliver([]byte(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Deliver: %v", err)
		}
	}
	for i := 0; i < 8; i++ {
		got := testutil.RequireReceive(t, channel.Incoming(), time.Second, "incoming message %d", i)
		if want := fmt.Sprintf("msg-%d", i); string(got) != want {
			t.Fatalf("incoming[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestChannel_EmitPreservesOrder(t *testing.T) {
	channel := NewChannel(8)

	for i := 0; i < 8; i++ {
		channel.Emit([]byte(fmt.Sprintf("out-%d", i)))
	}
	for i := 0; i < 8; i++ {
		got := testutil.RequireReceive(t, channel.Outgoing(), time.Second, "outgoing message %d", i)
		if want := fmt.Sprintf("out-%d", i); string(got) != want {
			t.Fatalf("outgoing[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestChannel_ConcurrentEmit(t *testing.T) {
	channel := NewChannel(64)

	var emitters sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		emitters.Add(1)
		go func() {
			defer emitters.Done()
			for i := 0; i < 16; i++ {
				channel.Emit([]byte("m"))
			}
		}()
	}
	emitters.Wait()

	for i := 0; i < 64; i++ {
		testutil.RequireReceive(t, channel.Outgoing(), time.Second, "message %d", i)
	}
}

func TestChannel_DeliverAfterClose(t *testing.T) {
	channel := NewChannel(1)
	channel.Close()
	if err := channel.Deliver([]byte("late")); err != ErrClosed {
		t.Fatalf("Deliver after Close = %v, want ErrClosed", err)
	}
}

func TestChannel_CloseUnblocksDeliver(t *testing.T) {
	channel := NewChannel(1)
	if err := channel.Deliver([]byte("fills the buffer")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	// The second Deliver blocks on the full buffer with nobody
	// consuming; Close must release it.
	blocked := make(chan error, 1)
	go func() {
		blocked <- channel.Deliver([]byte("stuck"))
	}()

	select {
	case err := <-blocked:
		t.Fatalf("Deliver returned %v before Close", err)
	case <-time.After(50 * time.Millisecond):
	}

	channel.Close()
	if err := testutil.RequireReceive(t, blocked, 5*time.Second, "blocked Deliver"); err != ErrClosed {
		t.Fatalf("Deliver unblocked with %v, want ErrClosed", err)
	}
}

func TestChannel_CloseIsIdempotent(t *testing.T) {
	channel := NewChannel(1)
	channel.Close()
	channel.Close()
	if err := channel.Deliver([]byte("late")); err != ErrClosed {
		t.Fatalf("Deliver after double Close = %v, want ErrClosed", err)
	}
}
