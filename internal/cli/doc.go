// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution
// for the teller TUI. The default command launches the TUI; the rest
// are small one-shot utilities (status, config, version) that print
// and exit.
package cli
