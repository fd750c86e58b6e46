// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package countdown implements the one-second countdown behind both
// the inactivity monitor and the post-transaction auto-logout.
package countdown

import "testing"

func TestCountdown_FiresOnceAndRewinds(t *testing.T) {
	c := New(15)

	fired := 0
	for i := 0; i < 15; i++ {
		if c.Tick() {
			fired++
		}
	}

	if fired != 1 {
		t.Errorf("15 ticks fired %d times, want exactly 1", fired)
	}
	if c.Remaining() != 15 {
		t.Errorf("remaining after firing = %d, want rewind to 15", c.Remaining())
	}
}

func TestCountdown_ActivityResets(t *testing.T) {
	c := New(15)

	for i := 0; i < 14; i++ {
		if c.Tick() {
			t.Fatalf("fired early at tick %d", i+1)
		}
	}
	c.Reset()

	if c.Remaining() != 15 {
		t.Errorf("remaining after reset = %d, want 15", c.Remaining())
	}

	// The full count restarts: 14 more ticks must not fire.
	for i := 0; i < 14; i++ {
		if c.Tick() {
			t.Fatalf("fired at tick %d after reset", i+1)
		}
	}
	if !c.Tick() {
		t.Error("tick 15 after reset should fire")
	}
}

func TestCountdown_KeepsFiringWhenNotStopped(t *testing.T) {
	// If the timeout action does not tear the screen down, counting
	// continues and the deadline fires once per full period.
	c := New(3)

	fired := 0
	for i := 0; i < 9; i++ {
		if c.Tick() {
			fired++
		}
	}
	if fired != 3 {
		t.Errorf("9 ticks at timeout 3 fired %d times, want 3", fired)
	}
}

func TestCountdown_DisableRewinds(t *testing.T) {
	c := New(10)

	for i := 0; i < 7; i++ {
		c.Tick()
	}
	c.SetEnabled(false)

	if c.Remaining() != 10 {
		t.Errorf("remaining after disable = %d, want 10", c.Remaining())
	}
	if c.Tick() {
		t.Error("tick while disabled must not fire")
	}
	if c.Remaining() != 10 {
		t.Error("tick while disabled must not decrement")
	}

	c.SetEnabled(true)
	if c.Remaining() != 10 {
		t.Errorf("remaining after re-enable = %d, want fresh 10", c.Remaining())
	}
}

func TestCountdown_RedundantToggleKeepsProgress(t *testing.T) {
	c := New(10)
	c.Tick()
	c.Tick()

	// Setting enabled to its current value is a no-op, not a reset.
	c.SetEnabled(true)
	if c.Remaining() != 8 {
		t.Errorf("remaining after redundant enable = %d, want 8", c.Remaining())
	}
}

func TestCountdown_MinimumTimeout(t *testing.T) {
	c := New(0)
	if c.TimeoutSeconds() != 1 {
		t.Errorf("timeout clamped to %d, want 1", c.TimeoutSeconds())
	}
	if !c.Tick() {
		t.Error("one-second countdown should fire on first tick")
	}
}
