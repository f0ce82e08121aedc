// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFake_NowStandsStill(t *testing.T) {
	c := Fake(testEpoch)
	if got := c.Now(); !got.Equal(testEpoch) {
		t.Fatalf("Now() = %v, want %v", got, testEpoch)
	}
	c.Advance(time.Minute)
	if got := c.Now(); !got.Equal(testEpoch.Add(time.Minute)) {
		t.Fatalf("Now() after Advance = %v, want %v", got, testEpoch.Add(time.Minute))
	}
}

func TestFake_AfterFiresOnAdvance(t *testing.T) {
	c := Fake(testEpoch)
	ch := c.After(5 * time.Second)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	c.Advance(5 * time.Second)
	select {
	case got := <-ch:
		if !got.Equal(testEpoch.Add(5 * time.Second)) {
			t.Fatalf("fire time = %v, want %v", got, testEpoch.Add(5*time.Second))
		}
	default:
		t.Fatal("After did not fire after Advance past deadline")
	}
}

func TestFake_AfterNonPositiveFiresImmediately(t *testing.T) {
	c := Fake(testEpoch)
	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFake_TickerFiresPerInterval(t *testing.T) {
	c := Fake(testEpoch)
	ticker := c.NewTicker(3 * time.Second)
	defer ticker.Stop()

	// One advance spanning three intervals fires three times, but the
	// channel has capacity 1 so at most one tick is buffered at a
	// time. Drain between advances to observe each tick.
	for i := 0; i < 3; i++ {
		c.Advance(3 * time.Second)
		select {
		case <-ticker.C:
		default:
			t.Fatalf("tick %d not delivered", i+1)
		}
	}
}

func TestFake_StoppedTickerDoesNotFire(t *testing.T) {
	c := Fake(testEpoch)
	ticker := c.NewTicker(time.Second)
	ticker.Stop()

	c.Advance(10 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker fired")
	default:
	}
	if got := c.PendingCount(); got != 0 {
		t.Fatalf("PendingCount() = %d after Stop, want 0", got)
	}
}

func TestFake_WaitForTimers(t *testing.T) {
	c := Fake(testEpoch)

	slept := make(chan struct{})
	go func() {
		c.Sleep(time.Second)
		close(slept)
	}()

	c.WaitForTimers(1)
	c.Advance(time.Second)

	select {
	case <-slept:
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep did not return after Advance")
	}
}
