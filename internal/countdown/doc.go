// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package countdown implements the one-second countdown behind both
// the inactivity monitor and the post-transaction auto-logout.
//
// The countdown holds no timer of its own: the bubbletea layer feeds
// it Tick calls from a single per-second tea.Tick chain and reads back
// whether the deadline fired. That keeps the semantics - decrement,
// fire exactly once at zero, rewind, reset on activity - fully
// deterministic under test, with no wall-clock sleeps.
package countdown
