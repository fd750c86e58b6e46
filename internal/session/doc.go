// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the persisted credential slot: the bearer token
// and account identifier of the current session.
//
// Nothing else in the program reads or writes this slot. Load runs the
// token-expiry check once, at startup, and clears stale or incomplete
// state rather than surfacing it; callers only ever see a whole
// session or none.
//
// Two backends exist: MemoryStore for the default ephemeral mode, and
// SQLiteStore when the session should survive a restart.
package session
