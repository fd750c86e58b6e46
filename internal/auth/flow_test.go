// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func enterPIN(f *Flow, pin string) *Attempt {
	var attempt *Attempt
	for _, d := range pin {
		if a := f.AppendPINDigit(d); a != nil {
			attempt = a
		}
	}
	return attempt
}

func flowAtPINStep(t *testing.T) *Flow {
	t.Helper()
	f := NewFlow()
	f.SetAccountNumber("1234567890")
	require.True(t, f.SubmitAccountNumber())
	return f
}

func TestFlow_AccountNumberStep(t *testing.T) {
	f := NewFlow()
	require.Equal(t, StepAccountNumber, f.Step())

	// Raw input is filtered and capped.
	f.SetAccountNumber("12-34 5678901234")
	require.Equal(t, "1234567890", f.AccountNumber())

	// Short numbers refuse the transition silently.
	f.SetAccountNumber("12345")
	require.False(t, f.SubmitAccountNumber())
	require.Equal(t, StepAccountNumber, f.Step())

	f.SetAccountNumber("1234567890")
	require.True(t, f.SubmitAccountNumber())
	require.Equal(t, StepPIN, f.Step())
}

func TestFlow_PINEntry(t *testing.T) {
	f := flowAtPINStep(t)

	require.Nil(t, f.AppendPINDigit('1'))
	require.Nil(t, f.AppendPINDigit('2'))
	require.Equal(t, 2, f.PINCount())

	f.BackspacePIN()
	require.Equal(t, 1, f.PINCount())

	f.ClearPIN()
	require.Equal(t, 0, f.PINCount())

	// Non-digits are ignored.
	require.Nil(t, f.AppendPINDigit('x'))
	require.Equal(t, 0, f.PINCount())
}

func TestFlow_AutoSubmitOnFourthDigit(t *testing.T) {
	f := flowAtPINStep(t)

	attempt := enterPIN(f, "1234")
	require.NotNil(t, attempt)
	require.Equal(t, "1234567890", attempt.AccountNumber)
	require.Equal(t, "1234", attempt.PIN)
	require.NoError(t, attempt.Ctx.Err())
	require.True(t, f.InFlight())

	// A fifth digit while the PIN is full is a no-op.
	require.Nil(t, f.AppendPINDigit('5'))
	require.Equal(t, 4, f.PINCount())
}

func TestFlow_RapidReentrySupersedes(t *testing.T) {
	f := flowAtPINStep(t)

	attemptA := enterPIN(f, "1234")
	require.NotNil(t, attemptA)

	// User clears and re-enters before A resolves.
	f.ClearPIN()
	attemptB := enterPIN(f, "4321")
	require.NotNil(t, attemptB)
	require.NotEqual(t, attemptA.ID, attemptB.ID)

	// A's context is cancelled the moment B is issued.
	require.ErrorIs(t, attemptA.Ctx.Err(), context.Canceled)
	require.NoError(t, attemptB.Ctx.Err())

	// A's eventual result - success or failure - is a no-op.
	require.Equal(t, OutcomeStale, f.Apply(attemptA.ID, nil))
	require.Equal(t, 4, f.PINCount(), "stale failure must not clear the PIN")
	require.Equal(t, OutcomeStale, f.Apply(attemptA.ID, errors.New("bad pin")))

	// Only B's outcome may mutate state.
	require.Equal(t, OutcomeSuccess, f.Apply(attemptB.ID, nil))
	require.False(t, f.InFlight())
}

func TestFlow_FailureClearsPINKeepsAccount(t *testing.T) {
	f := flowAtPINStep(t)

	attempt := enterPIN(f, "0000")
	require.NotNil(t, attempt)

	outcome := f.Apply(attempt.ID, errors.New("Wrong account number or PIN"))
	require.Equal(t, OutcomeFailure, outcome)
	require.Equal(t, 0, f.PINCount())
	require.Equal(t, StepPIN, f.Step())
	require.Equal(t, "1234567890", f.AccountNumber())
	require.False(t, f.InFlight())
}

func TestFlow_CancellationErrorIsStale(t *testing.T) {
	f := flowAtPINStep(t)
	attempt := enterPIN(f, "1234")
	require.NotNil(t, attempt)

	// The transport reporting the cancellation itself must be
	// swallowed, even for the current attempt ID.
	require.Equal(t, OutcomeStale, f.Apply(attempt.ID, context.Canceled))
}

func TestFlow_BackAbandonsAttempt(t *testing.T) {
	f := flowAtPINStep(t)
	attempt := enterPIN(f, "1234")
	require.NotNil(t, attempt)

	f.Back()
	require.Equal(t, StepAccountNumber, f.Step())
	require.Equal(t, 0, f.PINCount())
	require.Equal(t, "1234567890", f.AccountNumber(), "back keeps the account number")
	require.ErrorIs(t, attempt.Ctx.Err(), context.Canceled)
	require.Equal(t, OutcomeStale, f.Apply(attempt.ID, nil))
}

func TestFlow_DemoAccountsFillDigitsOnly(t *testing.T) {
	f := NewFlow()
	f.SetAccountNumber(DemoAccounts[0])
	require.Equal(t, "1234567890", f.AccountNumber())
	require.Equal(t, StepAccountNumber, f.Step(), "shortcut must not bypass PIN entry")
}
