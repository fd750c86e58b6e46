// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the teller service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the teller client.
type ClientError struct {
	Type    ErrorType
	Message string
	Code    string // machine code from the service ("INSUFFICIENT_FUNDS", ...)
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeUnauthorized
	ErrTypeAPI
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnreachable  = &ClientError{Type: ErrTypeConnection, Message: "teller service is unreachable"}
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "session is no longer valid"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return false
}

// IsUnreachable checks if an error indicates the service could not be
// reached at all.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return false
}

// IsUnauthorized checks if an error is a rejected-credential response.
func IsUnauthorized(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnauthorized
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the teller client.
type ClientConfig struct {
	// BaseURL is the teller service base URL (default: http://127.0.0.1:8000)
	// Explicit IPv4 instead of localhost avoids IPv6 resolution issues on Windows.
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the current bearer token, or "" when no session
// exists. Injected so the client never owns credential state.
type TokenSource func() string

// Client handles communication with the teller service.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	tokenSource TokenSource

	// Unauthorized single-flight: several authenticated calls can fail
	// together, the logout callback must run once per session.
	unauthorizedMu    sync.Mutex
	unauthorizedFired bool
	onUnauthorized    func()
}

// NewClient creates a teller client with custom configuration, filling
// defaults for zero values.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: config.Timeout},
		tokenSource: tokens,
	}
}

// SetUnauthorizedHandler registers the callback fired on the first
// unauthorized response of a session.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.unauthorizedMu.Lock()
	defer c.unauthorizedMu.Unlock()
	c.onUnauthorized = fn
}

// ResetUnauthorized re-arms the unauthorized callback. Called after a
// fresh login so the next expired session can log out again.
func (c *Client) ResetUnauthorized() {
	c.unauthorizedMu.Lock()
	defer c.unauthorizedMu.Unlock()
	c.unauthorizedFired = false
}

func (c *Client) fireUnauthorized() {
	c.unauthorizedMu.Lock()
	fired := c.unauthorizedFired
	c.unauthorizedFired = true
	fn := c.onUnauthorized
	c.unauthorizedMu.Unlock()

	if !fired && fn != nil {
		fn()
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the teller service is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from teller service: " + resp.Status,
		}
	}
	return nil
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login exchanges an account number and PIN for a bearer token.
func (c *Client) Login(ctx context.Context, accountNumber, pin string) (*LoginResponse, error) {
	var result LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{
		AccountNumber: accountNumber,
		PIN:           pin,
	}, &result, false)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// ACCOUNT OPERATIONS
// =============================================================================

// Balance fetches the current balance and daily limit state.
func (c *Client) Balance(ctx context.Context) (*BalanceResponse, error) {
	var result BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/account/balance", nil, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// Withdraw removes amountCents from the account. The service enforces
// minimum, increment, balance and daily-limit rules even though the
// client pre-validates.
func (c *Client) Withdraw(ctx context.Context, amountCents int64) (*WithdrawResponse, error) {
	var result WithdrawResponse
	if err := c.do(ctx, http.MethodPost, "/account/withdraw", AmountRequest{Amount: amountCents}, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// Deposit adds amountCents to the account.
func (c *Client) Deposit(ctx context.Context, amountCents int64) (*DepositResponse, error) {
	var result DepositResponse
	if err := c.do(ctx, http.MethodPost, "/account/deposit", AmountRequest{Amount: amountCents}, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs one request/response cycle and maps every failure onto
// the ClientError taxonomy. authenticated calls carry the current
// bearer token; a 401 on such a call fires the logout callback.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated && c.tokenSource != nil {
		if tok := c.tokenSource(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			if ctx.Err() == context.Canceled {
				return ctx.Err()
			}
			return ErrTimeout
		}
		// net/http wraps its own client timeout without the context
		// sentinel; treat any timeout-flagged error the same way.
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		detail := decodeErrorDetail(resp)
		if authenticated {
			c.fireUnauthorized()
		}
		msg := detail.Message
		if msg == "" {
			msg = ErrUnauthorized.Message
		}
		return &ClientError{Type: ErrTypeUnauthorized, Message: msg, Code: detail.Code}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := decodeErrorDetail(resp)
		msg := detail.Message
		if msg == "" {
			msg = "request failed: " + resp.Status
		}
		return &ClientError{Type: ErrTypeAPI, Message: msg, Code: detail.Code}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}

// decodeErrorDetail reads a structured error envelope off a non-2xx
// response, returning zero detail when the body is not parseable.
func decodeErrorDetail(resp *http.Response) ErrorDetail {
	var envelope errorBody
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return ErrorDetail{}
	}
	return envelope.detail()
}
