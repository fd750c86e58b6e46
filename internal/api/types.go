// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the teller service.
package api

import "encoding/json"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

// AmountRequest is the body for POST /account/withdraw and
// /account/deposit. Amount is in cents.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse is the response from POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// BalanceResponse is the response from GET /account/balance.
// All fields are in cents.
type BalanceResponse struct {
	Balance        int64 `json:"balance"`
	DailyLimit     int64 `json:"daily_limit"`
	DailyWithdrawn int64 `json:"daily_withdrawn"`
}

// Available returns the withdrawal ceiling: the lesser of the current
// balance and what remains of the daily limit. Never negative.
func (b *BalanceResponse) Available() int64 {
	remaining := b.DailyLimit - b.DailyWithdrawn
	if remaining < 0 {
		remaining = 0
	}
	if b.Balance < remaining {
		return b.Balance
	}
	return remaining
}

// WithdrawResponse is the response from POST /account/withdraw.
type WithdrawResponse struct {
	NewBalance int64 `json:"new_balance"`
	Withdrawn  int64 `json:"withdrawn"`
}

// DepositResponse is the response from POST /account/deposit.
type DepositResponse struct {
	NewBalance int64 `json:"new_balance"`
	Deposited  int64 `json:"deposited"`
}

// =============================================================================
// ERROR BODY
// =============================================================================

// ErrorDetail is the structured error the service puts under "detail".
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorBody is the error envelope. The detail field is usually an
// object but the framework emits a bare string for some failures, so
// it is decoded in two steps.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detail extracts the structured detail, tolerating the string form.
func (e *errorBody) detail() ErrorDetail {
	if len(e.Detail) == 0 {
		return ErrorDetail{}
	}
	var d ErrorDetail
	if err := json.Unmarshal(e.Detail, &d); err == nil && (d.Code != "" || d.Message != "") {
		return d
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return ErrorDetail{Message: s}
	}
	return ErrorDetail{}
}
