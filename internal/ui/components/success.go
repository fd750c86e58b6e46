// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/teller-tui/internal/transaction"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// SUCCESS VIEW COMPONENT
// =============================================================================

// SuccessView shows a completed transaction with the
// another-transaction/exit choices and the auto-logout countdown.
type SuccessView struct {
	Result *transaction.Result
	theme  *styles.Theme
}

// NewSuccessView creates a success view for result.
func NewSuccessView(theme *styles.Theme, result *transaction.Result) *SuccessView {
	return &SuccessView{Result: result, theme: theme}
}

// View renders the box. secondsLeft is the auto-logout countdown.
func (s *SuccessView) View(secondsLeft int) string {
	const innerWidth = 38
	var sb strings.Builder

	title := styles.StatusIndicators.Success + " Transaction complete"
	sb.WriteString(centerLine(s.theme.SuccessTitle.Render(title), innerWidth))
	sb.WriteString("\n\n")

	line := fmt.Sprintf("You %s %s", s.Result.Kind.PastTense(), util.FormatCents(s.Result.AmountCents))
	sb.WriteString(s.theme.SuccessDetail.Render(line))
	sb.WriteString("\n")

	sb.WriteString(s.theme.SuccessDetail.Render("New balance: " + util.FormatCents(s.Result.NewBalance)))
	sb.WriteString("\n")

	if s.Result.BalanceRefreshFailed {
		warn := styles.StatusIndicators.Warning + " Displayed balance may be out of date"
		sb.WriteString(s.theme.WarningText.Render(warn))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	choices := s.theme.KeyHelpKey.Render("a") + s.theme.KeyHelp.Render(" another transaction  ") +
		s.theme.KeyHelpKey.Render("q") + s.theme.KeyHelp.Render(" exit")
	sb.WriteString(choices)
	sb.WriteString("\n")

	countdown := fmt.Sprintf("Auto logout in %ds", secondsLeft)
	if secondsLeft <= 5 {
		sb.WriteString(s.theme.CountdownUrgent.Render(countdown))
	} else {
		sb.WriteString(s.theme.CountdownCalm.Render(countdown))
	}

	return s.theme.SuccessBox.Render(sb.String())
}
