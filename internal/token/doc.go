// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package token decodes and inspects the bearer tokens issued by the
// teller service.
//
// The client never verifies signatures - that is the server's job. It
// only needs to read the embedded expiry so a dead token can be thrown
// away without a round trip. A token that cannot be decoded is treated
// the same as an expired one.
package token
