// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/teller-tui/internal/ui/styles"
)

// =============================================================================
// PIN DISPLAY COMPONENT
// =============================================================================

// PINDisplay renders the masked PIN entry as filled and empty dots.
// The digits themselves never appear on screen.
type PINDisplay struct {
	Length int // total slots
	theme  *styles.Theme
}

// NewPINDisplay creates a display with the given slot count.
func NewPINDisplay(theme *styles.Theme, length int) *PINDisplay {
	return &PINDisplay{Length: length, theme: theme}
}

// View renders filled dots for entered digits and hollow ones for the
// rest.
func (p *PINDisplay) View(entered int) string {
	if entered > p.Length {
		entered = p.Length
	}

	var parts []string
	for i := 0; i < p.Length; i++ {
		if i < entered {
			parts = append(parts, p.theme.LoginPINDot.Render("*"))
		} else {
			parts = append(parts, p.theme.LoginPINEmpty.Render("_"))
		}
	}
	return strings.Join(parts, " ")
}
