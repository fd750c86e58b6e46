// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transaction

import (
	"context"
	"fmt"

	"github.com/jeranaias/teller-tui/internal/api"
)

// AccountAPI is the slice of the teller client that submission needs.
// *api.Client satisfies it.
type AccountAPI interface {
	Withdraw(ctx context.Context, amountCents int64) (*api.WithdrawResponse, error)
	Deposit(ctx context.Context, amountCents int64) (*api.DepositResponse, error)
	Balance(ctx context.Context) (*api.BalanceResponse, error)
}

// Result is a completed transaction. Balance is the post-transaction
// refresh and is nil when BalanceRefreshFailed is set; NewBalance comes
// from the transaction response itself and is always present.
type Result struct {
	Kind        Kind
	AmountCents int64
	NewBalance  int64

	Balance              *api.BalanceResponse
	BalanceRefreshFailed bool
}

// Submitter runs validated intents against the teller service.
type Submitter struct {
	client AccountAPI
}

// NewSubmitter creates a submitter backed by client.
func NewSubmitter(client AccountAPI) *Submitter {
	return &Submitter{client: client}
}

// Submit executes the intent, then refreshes the balance snapshot.
//
// The two calls are deliberately decoupled: once the transaction call
// succeeds the money has moved, and a failing refresh must not be
// reported as a failed transaction. The result carries
// BalanceRefreshFailed instead so the caller can flag a stale display.
func (s *Submitter) Submit(ctx context.Context, intent *Intent) (*Result, error) {
	result := &Result{Kind: intent.Kind, AmountCents: intent.AmountCents}

	switch intent.Kind {
	case KindWithdraw:
		resp, err := s.client.Withdraw(ctx, intent.AmountCents)
		if err != nil {
			return nil, err
		}
		result.NewBalance = resp.NewBalance
	case KindDeposit:
		resp, err := s.client.Deposit(ctx, intent.AmountCents)
		if err != nil {
			return nil, err
		}
		result.NewBalance = resp.NewBalance
	default:
		return nil, fmt.Errorf("unknown transaction kind %d", intent.Kind)
	}

	balance, err := s.client.Balance(ctx)
	if err != nil {
		result.BalanceRefreshFailed = true
		return result, nil
	}
	result.Balance = balance
	return result, nil
}
