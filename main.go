// teller-tui - a terminal client for the teller service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/auth"
	"github.com/jeranaias/teller-tui/internal/cli"
	"github.com/jeranaias/teller-tui/internal/config"
	"github.com/jeranaias/teller-tui/internal/countdown"
	"github.com/jeranaias/teller-tui/internal/logging"
	"github.com/jeranaias/teller-tui/internal/session"
	"github.com/jeranaias/teller-tui/internal/token"
	"github.com/jeranaias/teller-tui/internal/transaction"
	"github.com/jeranaias/teller-tui/internal/ui/components"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for messages originating outside the event
// loop (the 401 handler fires from request goroutines).
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if args.ServerURL != "" {
		cfg.Server.BaseURL = args.ServerURL
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(cfg)
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(cfg, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(cfg, args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(cfg)
	}
}

// tokenSource hands the current bearer token to the API client. It is
// read from request goroutines, so access is locked.
type tokenSource struct {
	mu    sync.RWMutex
	token string
}

func (t *tokenSource) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *tokenSource) Set(tok string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = tok
}

// runTUI starts the TUI interface.
func runTUI(cfg *config.Config) {
	theme := styles.NewTheme()

	logger := logging.Nop()
	if logPath, err := config.DefaultLogPath(); err == nil {
		if l, err := logging.Open(logPath); err == nil {
			logger = l
		}
	}
	defer logger.Close()
	logger.Startup(Version)

	codec := token.NewCodec()

	// The TUI owns the terminal, so storage problems fall back to the
	// in-memory store instead of aborting.
	var store session.Store = session.NewMemoryStore(codec)
	if cfg.Session.Persistence == config.PersistenceDurable {
		dbPath := cfg.Session.DBPath
		if dbPath == "" {
			if p, err := config.DefaultDBPath(); err == nil {
				dbPath = p
			}
		}
		if dbPath != "" {
			if s, err := session.NewSQLiteStore(dbPath, codec); err == nil {
				store = s
				defer s.Close()
			} else {
				logger.Error("session store", err)
			}
		}
	}

	tokens := &tokenSource{}
	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
	}, tokens.Get)

	m := NewModel(theme, cfg, client, tokens, store, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// A 401 on any authenticated call funnels into the logout path.
	// The client guarantees the handler fires once per session.
	client.SetUnauthorizedHandler(func() {
		programMu.Lock()
		ref := programRef
		programMu.Unlock()
		if ref != nil {
			ref.Send(unauthorizedMsg{})
		}
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running teller-tui: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application state.
type State int

const (
	StateLoading State = iota // Restoring a stored session at startup
	StateLogin                // Account number / PIN entry
	StateDashboard            // Balance and quick actions
	StateAmount               // Withdraw/deposit amount entry
	StateSuccess              // Completed transaction, auto-logout countdown
)

// Model is the main Bubble Tea model for the application.
type Model struct {
	// State
	state State

	// Theme and styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Configuration and wiring
	config *config.Config
	client *api.Client
	tokens *tokenSource
	store  session.Store
	logger *logging.Logger

	// Login flow
	flow *auth.Flow

	// Current session ("" account when logged out)
	accountNumber string

	// Inactivity logout countdown; enabled only on authenticated
	// screens. The success screen substitutes its own auto-logout
	// countdown - the two are never enabled together.
	inactivity       *countdown.Countdown
	successCountdown *countdown.Countdown

	// Transaction state
	txKind transaction.Kind
	txBusy bool

	// Login request in flight (distinct from txBusy; both gate input)
	loginBusy bool

	// Logout funnel guard: every path to the login screen goes
	// through logout(), which no-ops once the session is gone.
	loggedOut bool

	// Components
	header      *components.Header
	balanceCard *components.BalanceCard
	pinDisplay  *components.PINDisplay
	amountInput *components.AmountInput
	successView *components.SuccessView
	banner      *components.ErrorBanner

	submitter *transaction.Submitter
}

// NewModel creates the application model. Both countdowns start
// disarmed; establishSession arms the inactivity one, and the success
// screen swaps in the other.
func NewModel(theme *styles.Theme, cfg *config.Config, client *api.Client, tokens *tokenSource, store session.Store, logger *logging.Logger) *Model {
	inactivity := countdown.New(cfg.Session.InactivityTimeoutSecs)
	inactivity.SetEnabled(false)
	successCountdown := countdown.New(cfg.Session.InactivityTimeoutSecs)
	successCountdown.SetEnabled(false)

	return &Model{
		state:            StateLoading,
		theme:            theme,
		config:           cfg,
		client:           client,
		tokens:           tokens,
		store:            store,
		logger:           logger,
		flow:             auth.NewFlow(),
		inactivity:       inactivity,
		successCountdown: successCountdown,
		header:           components.NewHeader(theme),
		balanceCard:      components.NewBalanceCard(theme),
		pinDisplay:       components.NewPINDisplay(theme, auth.PINLength),
		banner:           components.NewErrorBanner(theme),
		submitter:        transaction.NewSubmitter(client),
		loggedOut:        true,
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg is the shared per-second heartbeat. Only one countdown is
// enabled at a time, so a single tick chain drives both.
type tickMsg time.Time

// sessionRestoredMsg carries the result of the startup session load.
type sessionRestoredMsg struct {
	sess *session.Session
	err  error
}

// loginResultMsg carries a finished login call, tagged with the
// attempt that issued it.
type loginResultMsg struct {
	attemptID     string
	accountNumber string
	resp          *api.LoginResponse
	err           error
}

// balanceMsg carries a balance fetch result.
type balanceMsg struct {
	balance *api.BalanceResponse
	err     error
}

// txResultMsg carries a finished transaction.
type txResultMsg struct {
	result *transaction.Result
	err    error
}

// unauthorizedMsg is sent by the API client's single-fire 401 handler.
type unauthorizedMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) restoreSession() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		sess, err := store.Load()
		return sessionRestoredMsg{sess: sess, err: err}
	}
}

func (m *Model) login(attempt *auth.Attempt) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Login(attempt.Ctx, attempt.AccountNumber, attempt.PIN)
		return loginResultMsg{
			attemptID:     attempt.ID,
			accountNumber: attempt.AccountNumber,
			resp:          resp,
			err:           err,
		}
	}
}

func (m *Model) fetchBalance() tea.Cmd {
	client := m.client
	timeout := time.Duration(m.config.Server.TimeoutSecs) * time.Second
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		balance, err := client.Balance(ctx)
		return balanceMsg{balance: balance, err: err}
	}
}

func (m *Model) submitTransaction(intent *transaction.Intent) tea.Cmd {
	submitter := m.submitter
	timeout := time.Duration(m.config.Server.TimeoutSecs) * time.Second
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
		defer cancel()
		result, err := submitter.Submit(ctx, intent)
		return txResultMsg{result: result, err: err}
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.restoreSession(),
		tick(),
	)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		return m.handleTick()

	case sessionRestoredMsg:
		return m.handleSessionRestored(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case balanceMsg:
		return m.handleBalance(msg)

	case txResultMsg:
		return m.handleTxResult(msg)

	case unauthorizedMsg:
		m.logger.SessionExpired()
		m.logout("session expired")
		m.banner.Show("Your session has expired. Please log in again.")
		return m, nil
	}

	// Everything else (cursor blinks and the like) belongs to the
	// amount input when it is on screen.
	if m.state == StateAmount && m.amountInput != nil {
		return m, m.amountInput.Update(msg)
	}
	return m, nil
}

// =============================================================================
// TICKS AND COUNTDOWNS
// =============================================================================

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inactivity.Tick() {
		m.logout("inactivity")
		m.banner.Show("You were logged out due to inactivity.")
	}
	if m.successCountdown.Tick() {
		m.logout("auto")
	}
	return m, tick()
}

// returnToDashboard leaves the success screen for another transaction
// and re-arms the inactivity countdown.
func (m *Model) returnToDashboard() {
	if m.state != StateSuccess {
		return
	}
	m.state = StateDashboard
	m.successView = nil
	m.successCountdown.SetEnabled(false)
	m.inactivity.SetEnabled(true)
	m.inactivity.Reset()
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

func (m *Model) handleSessionRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("session restore", msg.err)
	}
	if msg.sess == nil {
		m.state = StateLogin
		return m, nil
	}
	return m, m.establishSession(msg.sess.Token, msg.sess.AccountID, false)
}

// establishSession is the single entry point to the authenticated
// state, shared by login and startup restore.
func (m *Model) establishSession(tok, accountNumber string, persist bool) tea.Cmd {
	m.tokens.Set(tok)
	m.accountNumber = accountNumber
	m.loggedOut = false
	m.client.ResetUnauthorized()

	if persist {
		if err := m.store.Save(tok, accountNumber); err != nil {
			m.logger.Error("session save", err)
		}
	}

	m.header.SetAccount(accountNumber)
	m.banner.Clear()
	m.state = StateDashboard
	m.inactivity.SetEnabled(true)
	m.inactivity.Reset()
	m.successCountdown.SetEnabled(false)

	return m.fetchBalance()
}

// logout tears the session down and returns to the login screen. It
// is the only path out of the authenticated states, and calling it
// again while logged out is a no-op, so the four triggers (manual,
// inactivity, 401, success-screen timeout) can all funnel through
// without stepping on each other.
func (m *Model) logout(reason string) {
	if m.loggedOut {
		return
	}
	m.loggedOut = true

	if err := m.store.Clear(); err != nil {
		m.logger.Error("session clear", err)
	}
	m.tokens.Set("")
	m.accountNumber = ""
	m.logger.LoggedOut(reason)

	m.flow = auth.NewFlow()
	m.header.SetAccount("")
	m.balanceCard = components.NewBalanceCard(m.theme)
	m.amountInput = nil
	m.successView = nil
	m.txBusy = false
	m.loginBusy = false
	m.banner.Clear()

	m.inactivity.SetEnabled(false)
	m.successCountdown.SetEnabled(false)
	m.state = StateLogin
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any keystroke on an authenticated screen counts as activity.
	if m.inactivity.Enabled() {
		m.inactivity.Reset()
	}

	switch m.state {
	case StateLogin:
		return m.handleLoginKeys(msg)
	case StateDashboard:
		return m.handleDashboardKeys(msg)
	case StateAmount:
		return m.handleAmountKeys(msg)
	case StateSuccess:
		return m.handleSuccessKeys(msg)
	}
	return m, nil
}

func (m *Model) handleSuccessKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a", "enter":
		m.returnToDashboard()
	case "q", "x", "esc":
		m.logout("manual")
	}
	return m, nil
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.flow.Step() == auth.StepAccountNumber {
		switch key {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			m.banner.Clear()
			m.flow.SubmitAccountNumber()
			return m, nil
		case "backspace":
			digits := m.flow.AccountNumber()
			if len(digits) > 0 {
				m.flow.SetAccountNumber(digits[:len(digits)-1])
			}
			return m, nil
		// Function keys fill a demo account; bare digits always belong
		// to the field, since real account numbers start with any digit.
		case "f1":
			m.flow.SetAccountNumber(auth.DemoAccounts[0])
			return m, nil
		case "f2":
			m.flow.SetAccountNumber(auth.DemoAccounts[1])
			return m, nil
		}
		if msg.Type == tea.KeyRunes {
			m.flow.SetAccountNumber(m.flow.AccountNumber() + string(msg.Runes))
		}
		return m, nil
	}

	// PIN step.
	switch key {
	case "esc":
		m.flow.Back()
		m.loginBusy = false
		return m, nil
	case "backspace":
		m.flow.BackspacePIN()
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			if attempt := m.flow.AppendPINDigit(r); attempt != nil {
				// Fourth digit: auto-submit. Re-entry supersedes any
				// attempt still in flight.
				m.banner.Clear()
				m.loginBusy = true
				cmds = append(cmds, m.login(attempt))
			}
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.txBusy {
		return m, nil
	}

	switch msg.String() {
	case "w":
		m.openAmount(transaction.KindWithdraw)
		return m, nil
	case "d":
		m.openAmount(transaction.KindDeposit)
		return m, nil
	case "r":
		return m, m.fetchBalance()
	case "q", "l", "esc":
		m.logout("manual")
		return m, nil
	case "1", "2", "3", "4":
		// Quick withdraw straight from the dashboard.
		idx := int(msg.String()[0] - '1')
		if idx < len(transaction.DashboardQuickWithdraw) {
			raw := strconv.FormatInt(transaction.DashboardQuickWithdraw[idx], 10)
			return m, m.validateAndSubmit(transaction.KindWithdraw, raw)
		}
	}
	return m, nil
}

func (m *Model) openAmount(kind transaction.Kind) {
	m.txKind = kind
	m.amountInput = components.NewAmountInput(m.theme, kind)
	m.banner.Clear()
	m.state = StateAmount
}

func (m *Model) handleAmountKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.txBusy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.amountInput = nil
		m.state = StateDashboard
		m.banner.Clear()
		return m, nil
	case "enter":
		if m.amountInput.QuickActive() {
			return m, m.amountInput.Update(msg)
		}
		return m, m.validateAndSubmit(m.txKind, m.amountInput.Value())
	}
	return m, m.amountInput.Update(msg)
}

// validateAndSubmit runs the local checks and, when they pass, fires
// the request. Validation failures surface on the banner and nothing
// leaves the client.
func (m *Model) validateAndSubmit(kind transaction.Kind, raw string) tea.Cmd {
	ceiling := transaction.NoCeiling
	if kind == transaction.KindWithdraw && m.balanceCard.Balance != nil {
		ceiling = m.balanceCard.Balance.Available()
	}

	intent, verr := transaction.Validate(kind, raw, ceiling)
	if verr != nil {
		m.banner.Show(verr.Message)
		return nil
	}

	m.banner.Clear()
	m.txBusy = true
	return m.submitTransaction(intent)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	outcome := m.flow.Apply(msg.attemptID, msg.err)
	switch outcome {
	case auth.OutcomeStale:
		// Superseded or cancelled; a newer attempt owns the screen.
		return m, nil
	case auth.OutcomeFailure:
		m.loginBusy = false
		m.logger.LoginFailed(msg.accountNumber, msg.err)
		m.banner.Show(api.Message(msg.err))
		return m, nil
	}

	m.loginBusy = false
	m.logger.LoginSucceeded(msg.accountNumber)
	return m, m.establishSession(msg.resp.AccessToken, msg.accountNumber, true)
}

func (m *Model) handleBalance(msg balanceMsg) (tea.Model, tea.Cmd) {
	if m.loggedOut {
		return m, nil
	}
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			// The 401 handler is already funnelling to logout.
			return m, nil
		}
		m.banner.Show(api.Message(msg.err))
		return m, nil
	}
	m.balanceCard.SetBalance(msg.balance)
	return m, nil
}

func (m *Model) handleTxResult(msg txResultMsg) (tea.Model, tea.Cmd) {
	m.txBusy = false
	if m.loggedOut {
		return m, nil
	}

	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			return m, nil
		}
		m.logger.TransactionFailed(m.txKind.String(), 0, msg.err)
		m.banner.Show(api.Message(msg.err))
		return m, nil
	}

	result := msg.result
	m.logger.Transaction(result.Kind.String(), result.AmountCents, result.BalanceRefreshFailed)

	if result.BalanceRefreshFailed {
		m.balanceCard.MarkStale()
	} else {
		m.balanceCard.SetBalance(result.Balance)
	}

	m.amountInput = nil
	m.successView = components.NewSuccessView(m.theme, result)
	m.state = StateSuccess

	// Swap countdowns: the success screen owns the clock until the
	// user picks another transaction or the countdown logs them out.
	m.inactivity.SetEnabled(false)
	m.successCountdown.SetEnabled(true)
	m.successCountdown.Reset()

	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the current state.
func (m *Model) View() string {
	var content string
	switch m.state {
	case StateLoading:
		content = m.theme.LoginHint.Render("Restoring session...")
	case StateLogin:
		content = m.viewLogin()
	case StateDashboard:
		content = m.viewDashboard()
	case StateAmount:
		content = m.viewAmount()
	case StateSuccess:
		content = m.successView.View(m.successCountdown.Remaining())
	}

	frame := m.header.View() + "\n\n" + content
	if m.banner.Visible() {
		frame += "\n\n" + m.banner.View()
	}
	return m.theme.Container.Render(frame)
}

func (m *Model) viewLogin() string {
	var body string
	if m.flow.Step() == auth.StepAccountNumber {
		digits := m.flow.AccountNumber()
		display := digits
		for i := len(digits); i < auth.AccountNumberLength; i++ {
			display += "_"
		}
		body = m.theme.LoginLabel.Render("Account number") + "\n\n" +
			m.theme.LoginDigits.Render(display) + "\n\n" +
			m.theme.DemoAccountItem.Render("demo: [F1] "+auth.DemoAccounts[0]+"  [F2] "+auth.DemoAccounts[1]) + "\n" +
			m.keyHelp("enter", "continue", "q", "quit")
	} else {
		status := m.keyHelp("esc", "back")
		if m.loginBusy {
			status = m.theme.LoginHint.Render("Checking PIN...")
		}
		body = m.theme.LoginLabel.Render("PIN for "+m.flow.AccountNumber()) + "\n\n" +
			m.pinDisplay.View(m.flow.PINCount()) + "\n\n" +
			status
	}
	return m.theme.LoginBox.Render(body)
}

func (m *Model) viewDashboard() string {
	body := m.balanceCard.View() + "\n\n"

	quick := ""
	for i, dollars := range transaction.DashboardQuickWithdraw {
		quick += m.theme.QuickButton.Render(
			"[" + strconv.Itoa(i+1) + "] " + util.FormatWholeDollars(dollars*transaction.MinorUnitFactor))
	}
	body += quick + "\n\n"

	if m.txBusy {
		body += m.theme.Spinner.Render("Working...") + "\n\n"
	}

	body += m.keyHelp("w", "withdraw", "d", "deposit", "r", "refresh", "q", "log out")
	body += "\n" + m.viewCountdown()
	return body
}

func (m *Model) viewAmount() string {
	body := m.amountInput.View() + "\n\n"
	if m.txBusy {
		body += m.theme.Spinner.Render("Working...") + "\n\n"
	}
	body += m.keyHelp("enter", "confirm", "tab", "quick amounts", "esc", "cancel")
	body += "\n" + m.viewCountdown()
	return body
}

// viewCountdown renders the inactivity line, amber for the last five
// seconds.
func (m *Model) viewCountdown() string {
	if !m.inactivity.Enabled() {
		return ""
	}
	remaining := m.inactivity.Remaining()
	text := fmt.Sprintf("Auto logout in %ds", remaining)
	if remaining <= 5 {
		return m.theme.CountdownUrgent.Render(text)
	}
	return m.theme.CountdownCalm.Render(text)
}

// keyHelp renders alternating key/description pairs.
func (m *Model) keyHelp(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			out += m.theme.KeyHelp.Render("  ")
		}
		out += m.theme.KeyHelpKey.Render(pairs[i]) + m.theme.KeyHelp.Render(" "+pairs[i+1])
	}
	return out
}
