// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transaction validates and submits money movement.
//
// Validation runs entirely client-side, in a fixed order with the
// first failure winning, and nothing invalid ever reaches the wire.
// The service re-checks everything anyway; the client rules only
// exist for instant feedback.
//
// Submission treats the transaction and the follow-up balance refresh
// as separate concerns: a refresh failure never turns a successful
// transaction into an error, it only flags the success state so the
// screen can warn that the displayed balance may be stale.
package transaction
