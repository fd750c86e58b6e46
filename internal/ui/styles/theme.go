// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	SessionBadge   lipgloss.Style

	// ==========================================================================
	// LOGIN SCREEN STYLES
	// ==========================================================================

	LoginBox        lipgloss.Style
	LoginLabel      lipgloss.Style
	LoginDigits     lipgloss.Style
	LoginPINDot     lipgloss.Style
	LoginPINEmpty   lipgloss.Style
	LoginHint       lipgloss.Style
	DemoAccountItem lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	BalanceCard     lipgloss.Style
	BalanceLabel    lipgloss.Style
	BalanceAmount   lipgloss.Style
	BalanceDetail   lipgloss.Style
	QuickButton     lipgloss.Style
	QuickSelected   lipgloss.Style
	CountdownCalm   lipgloss.Style
	CountdownUrgent lipgloss.Style

	// ==========================================================================
	// TRANSACTION STYLES
	// ==========================================================================

	AmountBox     lipgloss.Style
	SuccessBox    lipgloss.Style
	SuccessTitle  lipgloss.Style
	SuccessDetail lipgloss.Style

	// ==========================================================================
	// ERROR AND STATUS STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorMessage lipgloss.Style
	WarningText  lipgloss.Style
	Spinner      lipgloss.Style
	KeyHelp      lipgloss.Style
	KeyHelpKey   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SessionBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true).
		Padding(0, 1)

	// Login screen
	t.LoginBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.LoginLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LoginDigits = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.LoginPINDot = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.LoginPINEmpty = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.LoginHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.DemoAccountItem = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Dashboard
	t.BalanceCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(1, 3)

	t.BalanceLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.BalanceAmount = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.BalanceDetail = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.QuickButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.QuickSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.CountdownCalm = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CountdownUrgent = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Transactions
	t.AmountBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.SuccessBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Emerald).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.SuccessTitle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.SuccessDetail = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Errors and status
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		BorderLeft(true).
		PaddingLeft(2)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarningText = lipgloss.NewStyle().
		Foreground(Amber)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.KeyHelp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.KeyHelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutWide                     // >= 60 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	return LayoutWide
}
