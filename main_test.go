// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/logging"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/transaction"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

func testModel(t *testing.T) *Model {
	t.Helper()

	cfg := config.Default()
	cfg.Session.InactivityTimeoutSecs = 5

	tokens := &tokenSource{}
	client := api.NewClient(&api.ClientConfig{BaseURL: "http://127.0.0.1:1"}, tokens.Get)
	store := session.NewMemoryStore(nil)

	m := NewModel(styles.NewTheme(), cfg, client, tokens, store, logging.Nop())
	m.width = 80
	m.height = 24
	return m
}

// authenticate drops the model into the dashboard state the way a
// successful login would, without a network round trip.
func authenticate(t *testing.T, m *Model) {
	t.Helper()
	m.establishSession("tok-test", "1234567890", true)
	if m.state != StateDashboard {
		t.Fatalf("state = %v, want dashboard", m.state)
	}
}

func TestCountdowns_DisarmedBeforeLogin(t *testing.T) {
	m := testModel(t)

	if m.inactivity.Enabled() || m.successCountdown.Enabled() {
		t.Fatal("countdowns must start disarmed")
	}

	// Ticks well past the timeout while no one is logged in must not
	// surface a logout banner - on the loading screen or after it.
	for i := 0; i < 12; i++ {
		m.Update(tickMsg{})
	}
	if m.state != StateLoading {
		t.Errorf("state = %v, want loading", m.state)
	}
	if m.banner.Visible() {
		t.Errorf("banner = %q on the loading screen", m.banner.View())
	}

	m.Update(sessionRestoredMsg{sess: nil})
	for i := 0; i < 12; i++ {
		m.Update(tickMsg{})
	}
	if m.banner.Visible() {
		t.Errorf("banner = %q on the login screen", m.banner.View())
	}
}

func TestRestore_NoSessionLandsOnLogin(t *testing.T) {
	m := testModel(t)

	m.Update(sessionRestoredMsg{sess: nil})
	if m.state != StateLogin {
		t.Errorf("state = %v, want login", m.state)
	}
	if m.inactivity.Enabled() {
		t.Error("inactivity countdown must stay disabled on the login screen")
	}
}

func TestEstablishSession(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	if got := m.tokens.Get(); got != "tok-test" {
		t.Errorf("token = %q, want tok-test", got)
	}
	if !m.inactivity.Enabled() {
		t.Error("inactivity countdown should arm on login")
	}
	if m.loggedOut {
		t.Error("loggedOut must clear on login")
	}
}

func TestLogout_IsIdempotent(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	m.logout("manual")
	if m.state != StateLogin {
		t.Fatalf("state = %v, want login", m.state)
	}
	if m.tokens.Get() != "" {
		t.Error("token must be dropped on logout")
	}
	if m.inactivity.Enabled() {
		t.Error("inactivity countdown must disarm on logout")
	}

	// A second trigger (e.g. a 401 racing a manual logout) is a no-op.
	m.logout("inactivity")
	if m.state != StateLogin {
		t.Errorf("state = %v after double logout, want login", m.state)
	}
}

func TestInactivity_TimeoutLogsOut(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	for i := 0; i < 5; i++ {
		if m.state != StateDashboard {
			t.Fatalf("logged out after %d ticks, want 5", i)
		}
		m.Update(tickMsg{})
	}
	if m.state != StateLogin {
		t.Errorf("state = %v after timeout, want login", m.state)
	}
	if !m.banner.Visible() {
		t.Error("inactivity logout should show a banner")
	}
}

func TestInactivity_KeyPressResets(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	for i := 0; i < 4; i++ {
		m.Update(tickMsg{})
	}
	// Activity one second before the deadline rewinds the clock.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	for i := 0; i < 4; i++ {
		m.Update(tickMsg{})
		if m.state != StateDashboard {
			t.Fatalf("logged out %d ticks after activity, want 5", i+1)
		}
	}
}

func TestUnauthorized_FunnelsToLogin(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	m.Update(unauthorizedMsg{})
	if m.state != StateLogin {
		t.Errorf("state = %v, want login", m.state)
	}
	if !strings.Contains(m.banner.View(), "expired") {
		t.Error("expired-session banner missing")
	}
}

func TestTxResult_SuccessCountdownLogsOut(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	m.Update(txResultMsg{result: &transaction.Result{
		Kind:        transaction.KindWithdraw,
		AmountCents: 4000,
		NewBalance:  96000,
		Balance:     &api.BalanceResponse{Balance: 96000},
	}})

	if m.state != StateSuccess {
		t.Fatalf("state = %v, want success", m.state)
	}
	if m.inactivity.Enabled() {
		t.Error("inactivity countdown must pause on the success screen")
	}
	if !m.successCountdown.Enabled() {
		t.Error("success countdown should be running")
	}

	// Letting the success countdown expire ends the session, exactly
	// like the inactivity timeout would.
	for i := 0; i < 5; i++ {
		m.Update(tickMsg{})
	}
	if m.state != StateLogin {
		t.Errorf("state = %v after countdown, want login", m.state)
	}
	if m.tokens.Get() != "" {
		t.Error("token must be dropped on auto logout")
	}
}

func TestSuccessScreen_Choices(t *testing.T) {
	result := &transaction.Result{
		Kind:        transaction.KindDeposit,
		AmountCents: 5000,
		NewBalance:  105000,
		Balance:     &api.BalanceResponse{Balance: 105000},
	}

	m := testModel(t)
	authenticate(t, m)
	m.Update(txResultMsg{result: result})

	// "a" starts another transaction and resumes inactivity tracking.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.state != StateDashboard {
		t.Fatalf("state = %v after 'a', want dashboard", m.state)
	}
	if !m.inactivity.Enabled() || m.successCountdown.Enabled() {
		t.Error("inactivity must re-arm and the success countdown must stop")
	}

	// "q" on the success screen exits the session immediately.
	m.Update(txResultMsg{result: result})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.state != StateLogin {
		t.Errorf("state = %v after 'q', want login", m.state)
	}
}

func TestTxResult_RefreshFailureMarksBalanceStale(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)
	m.balanceCard.SetBalance(&api.BalanceResponse{Balance: 100000})

	m.Update(txResultMsg{result: &transaction.Result{
		Kind:                 transaction.KindWithdraw,
		AmountCents:          2000,
		NewBalance:           98000,
		BalanceRefreshFailed: true,
	}})

	if m.state != StateSuccess {
		t.Fatalf("refresh failure must still reach the success screen")
	}
	if !strings.Contains(m.balanceCard.View(), "out of date") {
		t.Error("balance card should be flagged stale")
	}
}

func TestTxResult_ErrorStaysOnScreenWithBanner(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)
	m.openAmount(transaction.KindWithdraw)

	m.txBusy = true
	m.Update(txResultMsg{err: errors.New("insufficient funds")})

	if m.state != StateAmount {
		t.Errorf("state = %v, want amount entry", m.state)
	}
	if m.txBusy {
		t.Error("txBusy must clear after a result")
	}
	if !m.banner.Visible() {
		t.Error("failed transaction should show a banner")
	}
}

func TestValidateAndSubmit_FailureShowsBannerAndSendsNothing(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)
	m.balanceCard.SetBalance(&api.BalanceResponse{Balance: 3000})

	cmd := m.validateAndSubmit(transaction.KindWithdraw, "40")
	if cmd != nil {
		t.Error("validation failure must not issue a request")
	}
	if m.txBusy {
		t.Error("txBusy must stay false on validation failure")
	}
	if !strings.Contains(m.banner.View(), "Maximum available: $30.00") {
		t.Errorf("banner = %q, want ceiling message", m.banner.View())
	}
}

func TestDashboard_KeysRouteActions(t *testing.T) {
	m := testModel(t)
	authenticate(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if m.state != StateAmount || m.txKind != transaction.KindWithdraw {
		t.Errorf("state = %v kind = %v, want amount/withdraw", m.state, m.txKind)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateDashboard {
		t.Fatalf("esc should return to the dashboard")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if m.state != StateAmount || m.txKind != transaction.KindDeposit {
		t.Errorf("state = %v kind = %v, want amount/deposit", m.state, m.txKind)
	}
}

func TestLoginScreen_DemoShortcuts(t *testing.T) {
	m := testModel(t)
	m.Update(sessionRestoredMsg{sess: nil})

	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	if got := m.flow.AccountNumber(); got != "1234567890" {
		t.Errorf("account = %q, want demo account 1", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	if got := m.flow.AccountNumber(); got != "0987654321" {
		t.Errorf("account = %q, want demo account 2", got)
	}
}

func TestLoginScreen_LeadingDigitsAreNeverShortcuts(t *testing.T) {
	m := testModel(t)
	m.Update(sessionRestoredMsg{sess: nil})

	// An account number starting with a demo-adjacent digit must type
	// through verbatim.
	for _, r := range "2223334445" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := m.flow.AccountNumber(); got != "2223334445" {
		t.Errorf("account = %q, want 2223334445", got)
	}

	if !m.flow.SubmitAccountNumber() {
		t.Error("complete account number must advance to the PIN step")
	}
}

func TestView_RendersPerState(t *testing.T) {
	m := testModel(t)

	if !strings.Contains(m.View(), "Restoring") {
		t.Error("loading view missing")
	}

	m.Update(sessionRestoredMsg{sess: nil})
	if !strings.Contains(m.View(), "Account number") {
		t.Error("login view missing")
	}

	authenticate(t, m)
	view := m.View()
	if !strings.Contains(view, "****7890") {
		t.Error("dashboard header missing masked account")
	}
	if !strings.Contains(view, "Auto logout in 5s") {
		t.Error("dashboard missing inactivity countdown")
	}
	if !strings.Contains(view, "[1] $20") {
		t.Error("dashboard missing quick-withdraw buttons")
	}
}
