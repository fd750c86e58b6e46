// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand on the left, session info on the
// right when someone is logged in.
type Header struct {
	Title         string
	AccountNumber string // empty when logged out
	Width         int
	theme         *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "teller",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetAccount sets the logged-in account number; pass "" on logout.
func (h *Header) SetAccount(accountNumber string) {
	h.AccountNumber = accountNumber
}

// View renders the header line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brand := h.theme.HeaderTitle.Render("< " + h.Title + " >")

	right := ""
	if h.AccountNumber != "" {
		right = h.theme.SessionBadge.Render(util.MaskAccount(h.AccountNumber))
	}

	gap := width - lipgloss.Width(brand) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	line := " " + brand + strings.Repeat(" ", gap) + right
	return h.theme.Header.Width(width).Render(line)
}

// centerLine pads s to width using display cells, not bytes, so wide
// runes line up.
func centerLine(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s
}
