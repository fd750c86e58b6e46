// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the teller service.
//
// The client owns the request/response contracts for login, balance,
// withdraw and deposit, attaches the current bearer token to
// authenticated calls, and folds every failure into a typed
// ClientError so callers can branch on the failure class without
// string matching.
//
// Unauthorized responses are special: the first one per session fires
// the configured callback (the app's logout funnel) exactly once, even
// when several in-flight calls hit 401 together.
package api
