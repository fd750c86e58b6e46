// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// BALANCE CARD COMPONENT
// =============================================================================

// BalanceCard shows the current balance with the daily-limit detail
// lines underneath.
type BalanceCard struct {
	Balance *api.BalanceResponse // nil while the first fetch is in flight
	Stale   bool                 // a post-transaction refresh failed
	theme   *styles.Theme
}

// NewBalanceCard creates an empty balance card.
func NewBalanceCard(theme *styles.Theme) *BalanceCard {
	return &BalanceCard{theme: theme}
}

// SetBalance replaces the snapshot and clears the stale flag.
func (b *BalanceCard) SetBalance(balance *api.BalanceResponse) {
	b.Balance = balance
	b.Stale = false
}

// MarkStale flags the displayed balance as possibly out of date.
func (b *BalanceCard) MarkStale() {
	b.Stale = true
}

// View renders the card.
func (b *BalanceCard) View() string {
	if b.Balance == nil {
		return b.theme.BalanceCard.Render(
			b.theme.BalanceLabel.Render("Available Balance") + "\n" +
				b.theme.BalanceDetail.Render("loading..."))
	}

	var sb strings.Builder
	sb.WriteString(b.theme.BalanceLabel.Render("Available Balance"))
	sb.WriteString("\n")
	sb.WriteString(b.theme.BalanceAmount.Render(util.FormatCents(b.Balance.Balance)))
	if b.Stale {
		sb.WriteString(" " + b.theme.WarningText.Render(styles.StatusIndicators.Warning+" may be out of date"))
	}
	sb.WriteString("\n\n")

	remaining := b.Balance.DailyLimit - b.Balance.DailyWithdrawn
	if remaining < 0 {
		remaining = 0
	}
	detail := b.theme.BalanceDetail
	sb.WriteString(detail.Render(detailLine("Daily limit", util.FormatCents(b.Balance.DailyLimit))))
	sb.WriteString("\n")
	sb.WriteString(detail.Render(detailLine("Withdrawn today", util.FormatCents(b.Balance.DailyWithdrawn))))
	sb.WriteString("\n")
	sb.WriteString(detail.Render(detailLine("Remaining today", util.FormatCents(remaining))))

	return b.theme.BalanceCard.Render(sb.String())
}

// detailLine right-aligns the value against a fixed label column.
func detailLine(label, value string) string {
	const lineWidth = 34
	pad := lineWidth - runewidth.StringWidth(label) - runewidth.StringWidth(value)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + value
}
