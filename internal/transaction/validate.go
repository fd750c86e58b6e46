// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transaction

import (
	"math"
	"strconv"
	"strings"

	"github.com/jeranaias/teller-tui/internal/util"
)

// Withdrawal rules, fixed by the teller service: minimum $20, in $20
// steps. Deposits have no minimum or step.
const (
	WithdrawUnitDollars = 20
	MinorUnitFactor     = 100
)

// NoCeiling disables the available-funds check when the caller has no
// balance to check against (it is a pre-check only; the server stays
// authoritative).
const NoCeiling int64 = -1

// Quick-select presets, in whole dollars. They only populate the
// amount field and pass through Validate like typed input.
var (
	QuickWithdrawDollars   = []int64{20, 40, 60, 100, 200}
	QuickDepositDollars    = []int64{50, 100, 200, 500}
	DashboardQuickWithdraw = []int64{20, 40, 60, 100}
)

// Kind distinguishes the two money movements.
type Kind int

const (
	KindWithdraw Kind = iota
	KindDeposit
)

// String returns the lower-case verb for the kind.
func (k Kind) String() string {
	if k == KindDeposit {
		return "deposit"
	}
	return "withdraw"
}

// PastTense returns the verb for the success screen.
func (k Kind) PastTense() string {
	if k == KindDeposit {
		return "deposited"
	}
	return "withdrew"
}

// =============================================================================
// VALIDATION
// =============================================================================

// Reason identifies which validation rule rejected an amount.
type Reason int

const (
	ReasonInvalidAmount Reason = iota
	ReasonBelowMinimum
	ReasonNotMultiple
	ReasonExceedsAvailable
)

// ValidationError is a local, pre-submission rejection. It never
// reaches the network and never touches session or balance state.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Intent is a validated transaction, immutable once built. AmountCents
// is in minor units.
type Intent struct {
	Kind        Kind
	AmountCents int64
}

// Validate checks raw amount text against the rules for kind, in
// order, first failure winning:
//
//  1. must parse as a positive number
//  2. withdraw only: at least $20
//  3. withdraw only: a multiple of $20
//  4. withdraw only, when availableCents >= 0: within the ceiling
//
// On success the amount is converted to cents. Deposits skip rules
// 2-4 entirely.
func Validate(kind Kind, raw string, availableCents int64) (*Intent, *ValidationError) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, &ValidationError{
			Reason:  ReasonInvalidAmount,
			Message: "Please enter a valid amount",
		}
	}

	cents := int64(math.Round(amount * MinorUnitFactor))

	if kind == KindWithdraw {
		if amount < WithdrawUnitDollars {
			return nil, &ValidationError{
				Reason:  ReasonBelowMinimum,
				Message: "Minimum withdrawal is $" + strconv.Itoa(WithdrawUnitDollars),
			}
		}
		if math.Mod(amount, WithdrawUnitDollars) != 0 {
			return nil, &ValidationError{
				Reason:  ReasonNotMultiple,
				Message: "Amount must be in multiples of $" + strconv.Itoa(WithdrawUnitDollars),
			}
		}
		if availableCents >= 0 && cents > availableCents {
			return nil, &ValidationError{
				Reason:  ReasonExceedsAvailable,
				Message: "Maximum available: " + util.FormatCents(availableCents),
			}
		}
	}

	return &Intent{Kind: kind, AmountCents: cents}, nil
}
