// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the teller
// TUI: the header bar, the balance card, PIN entry dots, the amount
// input with quick-select buttons, the transaction success view, and
// the error banner.
//
// Components hold only presentation state. They never talk to the
// network; the root model feeds them data and renders their View
// output into the frame.
package components
