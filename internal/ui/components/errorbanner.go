// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/teller-tui/internal/ui/styles"
	"github.com/jeranaias/teller-tui/internal/util"
)

// =============================================================================
// ERROR BANNER COMPONENT
// =============================================================================

// ErrorBanner shows the most recent user-facing error. It clears on
// the next successful action rather than on a timer; an unread error
// should not vanish while the user is away from the keyboard.
type ErrorBanner struct {
	message string
	theme   *styles.Theme
}

// Server-provided messages can be arbitrarily long; the banner caps
// them so the box never dominates the screen.
const maxMessageRunes = 120

// NewErrorBanner creates an empty banner.
func NewErrorBanner(theme *styles.Theme) *ErrorBanner {
	return &ErrorBanner{theme: theme}
}

// Show replaces the displayed message.
func (e *ErrorBanner) Show(message string) {
	e.message = util.TruncateRunes(message, maxMessageRunes)
}

// Clear hides the banner.
func (e *ErrorBanner) Clear() {
	e.message = ""
}

// Visible reports whether there is a message to show.
func (e *ErrorBanner) Visible() bool {
	return e.message != ""
}

// View renders the banner, or "" when there is nothing to show.
func (e *ErrorBanner) View() string {
	if e.message == "" {
		return ""
	}
	return e.theme.ErrorBox.Render(
		e.theme.ErrorMessage.Render(styles.StatusIndicators.Error + " " + e.message))
}
