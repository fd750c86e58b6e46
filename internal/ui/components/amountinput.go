// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/teller-tui/internal/transaction"
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// AMOUNT INPUT COMPONENT
// =============================================================================

// AmountInput is the free-form amount field plus the quick-select row
// for a withdraw or deposit. Quick selects only populate the field;
// validation happens on submit like any typed amount.
type AmountInput struct {
	Kind  transaction.Kind
	input textinput.Model
	quick []int64
	// quickIndex is the highlighted quick button, -1 when the text
	// field has focus.
	quickIndex int
	theme      *styles.Theme
}

// NewAmountInput creates a focused amount input for kind.
func NewAmountInput(theme *styles.Theme, kind transaction.Kind) *AmountInput {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.Prompt = "$ "
	ti.CharLimit = 10
	ti.Width = 12
	ti.Focus()

	quick := transaction.QuickWithdrawDollars
	if kind == transaction.KindDeposit {
		quick = transaction.QuickDepositDollars
	}

	return &AmountInput{
		Kind:       kind,
		input:      ti,
		quick:      quick,
		quickIndex: -1,
		theme:      theme,
	}
}

// QuickActive reports whether a quick-select button is highlighted;
// enter then fills the field instead of submitting.
func (a *AmountInput) QuickActive() bool {
	return a.quickIndex >= 0
}

// Value returns the raw amount text.
func (a *AmountInput) Value() string {
	return a.input.Value()
}

// SetValue replaces the field contents.
func (a *AmountInput) SetValue(v string) {
	a.input.SetValue(v)
	a.input.CursorEnd()
}

// Update handles key input. Left/right and tab move across the quick
// buttons; enter on a button fills the field and refocuses it.
// Everything else goes to the text field, filtered to amount
// characters.
func (a *AmountInput) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "tab", "right":
		if a.quickIndex < len(a.quick)-1 {
			a.quickIndex++
		}
		return nil
	case "shift+tab", "left":
		if a.quickIndex >= 0 {
			a.quickIndex--
		}
		return nil
	case "enter":
		if a.quickIndex >= 0 {
			a.SetValue(strconv.FormatInt(a.quick[a.quickIndex], 10))
			a.quickIndex = -1
		}
		return nil
	}

	if !amountKey(keyMsg) {
		return nil
	}
	a.quickIndex = -1
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// amountKey reports whether the key may reach the text field: digits,
// one decimal point, and editing keys.
func amountKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// View renders the field and the quick-select row.
func (a *AmountInput) View() string {
	var sb strings.Builder

	title := "Withdraw"
	if a.Kind == transaction.KindDeposit {
		title = "Deposit"
	}
	sb.WriteString(a.theme.LoginLabel.Render(title + " amount"))
	sb.WriteString("\n\n")
	sb.WriteString(a.input.View())
	sb.WriteString("\n\n")

	for i, dollars := range a.quick {
		label := util.FormatWholeDollars(dollars * transaction.MinorUnitFactor)
		if i == a.quickIndex {
			sb.WriteString(a.theme.QuickSelected.Render(label))
		} else {
			sb.WriteString(a.theme.QuickButton.Render(label))
		}
	}

	return a.theme.AmountBox.Render(sb.String())
}
