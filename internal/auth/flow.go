// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jeranaias/teller-tui/internal/util"
)

// Required entry lengths, fixed by the teller service.
const (
	AccountNumberLength = 10
	PINLength           = 4
)

// Demo accounts seeded by the service, offered as shortcuts on the
// account-number step. Selecting one only fills the digits; the PIN
// step is never bypassed.
var DemoAccounts = []string{"1234567890", "0987654321"}

// Step identifies where the user is in the login flow.
type Step int

const (
	// StepAccountNumber is the initial step: entering the 10-digit
	// account number.
	StepAccountNumber Step = iota
	// StepPIN is the second step: entering the 4-digit PIN.
	StepPIN
)

// Attempt is one login submission. Ctx is cancelled when a newer
// attempt supersedes this one or the user leaves the PIN step.
type Attempt struct {
	ID            string
	AccountNumber string
	PIN           string
	Ctx           context.Context
}

// Outcome classifies a finished login call relative to flow state.
type Outcome int

const (
	// OutcomeStale means the attempt was superseded or cancelled; its
	// result must not be surfaced or applied.
	OutcomeStale Outcome = iota
	// OutcomeSuccess means the newest attempt authenticated.
	OutcomeSuccess
	// OutcomeFailure means the newest attempt was rejected; the PIN
	// has been cleared and the flow stays on the PIN step.
	OutcomeFailure
)

// Flow is the login state machine. Not safe for concurrent use; it
// lives inside the single-threaded TUI event loop.
type Flow struct {
	step          Step
	accountDigits string
	pinDigits     string

	// In-flight attempt, if any.
	attemptID string
	cancel    context.CancelFunc
}

// NewFlow creates a flow at the account-number step.
func NewFlow() *Flow {
	return &Flow{step: StepAccountNumber}
}

// =============================================================================
// ACCOUNT NUMBER STEP
// =============================================================================

// Step returns the current step.
func (f *Flow) Step() Step {
	return f.step
}

// AccountNumber returns the digits entered so far.
func (f *Flow) AccountNumber() string {
	return f.accountDigits
}

// SetAccountNumber replaces the account digits from raw input,
// stripping non-digits and capping at the required length.
func (f *Flow) SetAccountNumber(raw string) {
	if f.step != StepAccountNumber {
		return
	}
	f.accountDigits = util.Digits(raw, AccountNumberLength)
}

// AccountNumberComplete reports whether the account number has the
// required digit count.
func (f *Flow) AccountNumberComplete() bool {
	return len(f.accountDigits) == AccountNumberLength
}

// SubmitAccountNumber advances to the PIN step. The transition is
// refused (no state change, no error) unless exactly the required
// digit count has been entered - this is a disabled action, not a
// failure.
func (f *Flow) SubmitAccountNumber() bool {
	if f.step != StepAccountNumber || !f.AccountNumberComplete() {
		return false
	}
	f.step = StepPIN
	return true
}

// Back returns to the account-number step, discarding the PIN and
// abandoning any in-flight attempt. The account number is kept.
func (f *Flow) Back() {
	if f.step != StepPIN {
		return
	}
	f.abandonAttempt()
	f.pinDigits = ""
	f.step = StepAccountNumber
}

// =============================================================================
// PIN STEP
// =============================================================================

// PINCount returns how many PIN digits are entered, for the masked
// dot display.
func (f *Flow) PINCount() int {
	return len(f.pinDigits)
}

// AppendPINDigit adds one digit. Appending beyond the PIN length is a
// no-op. When the digit completes the PIN the flow auto-submits:
// any in-flight attempt is superseded and the new Attempt is returned
// for the caller to execute.
func (f *Flow) AppendPINDigit(d rune) *Attempt {
	if f.step != StepPIN || d < '0' || d > '9' {
		return nil
	}
	if len(f.pinDigits) >= PINLength {
		return nil
	}

	f.pinDigits += string(d)
	if len(f.pinDigits) < PINLength {
		return nil
	}
	return f.beginAttempt()
}

// BackspacePIN removes the last PIN digit.
func (f *Flow) BackspacePIN() {
	if f.step != StepPIN || len(f.pinDigits) == 0 {
		return
	}
	f.pinDigits = f.pinDigits[:len(f.pinDigits)-1]
}

// ClearPIN removes all PIN digits.
func (f *Flow) ClearPIN() {
	if f.step != StepPIN {
		return
	}
	f.pinDigits = ""
}

// InFlight reports whether a login attempt is currently pending.
func (f *Flow) InFlight() bool {
	return f.attemptID != ""
}

// beginAttempt supersedes any pending attempt and issues a new one.
func (f *Flow) beginAttempt() *Attempt {
	f.abandonAttempt()

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	f.attemptID = id
	f.cancel = cancel

	return &Attempt{
		ID:            id,
		AccountNumber: f.accountDigits,
		PIN:           f.pinDigits,
		Ctx:           ctx,
	}
}

// abandonAttempt cancels the pending attempt so its result resolves as
// stale.
func (f *Flow) abandonAttempt() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.attemptID = ""
}

// =============================================================================
// OUTCOME
// =============================================================================

// Apply folds a finished login call back into the flow. Results from
// superseded attempts - and results that are just the cancellation
// itself - resolve as OutcomeStale and leave all state untouched.
// A failure clears the PIN and keeps the account number so the user
// can retry immediately.
func (f *Flow) Apply(attemptID string, err error) Outcome {
	if attemptID != f.attemptID || errors.Is(err, context.Canceled) {
		return OutcomeStale
	}

	f.abandonAttempt()
	if err == nil {
		return OutcomeSuccess
	}

	f.pinDigits = ""
	return OutcomeFailure
}
