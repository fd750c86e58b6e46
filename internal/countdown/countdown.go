// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package countdown implements the one-second countdown behind both
// the inactivity monitor and the post-transaction auto-logout.
package countdown

// Countdown counts seconds toward a deadline. It is not safe for
// concurrent use; the TUI event loop is single-threaded.
type Countdown struct {
	timeoutSeconds int
	remaining      int
	enabled        bool
}

// New creates an enabled countdown with remaining time at full.
func New(timeoutSeconds int) *Countdown {
	if timeoutSeconds < 1 {
		timeoutSeconds = 1
	}
	return &Countdown{
		timeoutSeconds: timeoutSeconds,
		remaining:      timeoutSeconds,
		enabled:        true,
	}
}

// Tick advances the countdown by one second. It reports true when the
// deadline fires; the remaining time rewinds to full at that moment,
// so if the caller's timeout action does not tear the screen down the
// count simply starts over instead of going negative. Ticks while
// disabled do nothing.
func (c *Countdown) Tick() bool {
	if !c.enabled {
		return false
	}
	if c.remaining <= 1 {
		c.remaining = c.timeoutSeconds
		return true
	}
	c.remaining--
	return false
}

// Reset rewinds remaining time to full without firing. Called on every
// user-activity signal.
func (c *Countdown) Reset() {
	c.remaining = c.timeoutSeconds
}

// SetEnabled toggles the countdown. Disabling rewinds remaining time
// so a later re-enable starts fresh rather than from a stale value.
func (c *Countdown) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.remaining = c.timeoutSeconds
}

// Enabled reports whether ticks currently count down.
func (c *Countdown) Enabled() bool {
	return c.enabled
}

// Remaining returns the seconds left before the deadline fires.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// TimeoutSeconds returns the configured full duration.
func (c *Countdown) TimeoutSeconds() int {
	return c.timeoutSeconds
}
