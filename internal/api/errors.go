// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the teller service.
package api

import (
	"context"
	"errors"
)

// User-facing fallback strings. Every error surfaced to the screen
// funnels through Message, so the wording lives in one place.
const (
	msgTimeout     = "Request timed out. Please try again."
	msgUnreachable = "Network error. Please check your connection."
	msgGeneric     = "An error occurred. Please try again."
	msgFallback    = "An unexpected error occurred."
)

// Message extracts a user-friendly message from any error produced by
// this package (or elsewhere). Precedence: structured service message,
// timeout, unreachable network, the error's own text, then a fixed
// fallback. Returns "" for nil so callers can show nothing.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case ErrTypeAPI, ErrTypeUnauthorized:
			if clientErr.Message != "" {
				return clientErr.Message
			}
			return msgGeneric
		case ErrTypeTimeout:
			return msgTimeout
		case ErrTypeConnection:
			return msgUnreachable
		default:
			return msgGeneric
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgFallback
}
