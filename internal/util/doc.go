// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the teller TUI:
// currency formatting in minor units, digit filtering for account and
// PIN entry, rune-safe truncation, and atomic file writes.
package util
