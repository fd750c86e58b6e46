// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the two-step login flow: account-number
// entry, then PIN entry with auto-submit on the fourth digit.
//
// Each submission is an Attempt carrying its own ID and cancellable
// context. Completing the PIN again while an attempt is in flight
// supersedes it: the old context is cancelled and whatever the old
// request eventually returns - success or failure - is discarded
// without touching state. Only the newest attempt may win.
//
// The flow itself performs no I/O; the TUI layer runs the login call
// and feeds the outcome back through Apply.
package auth
