// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the teller TUI.
package util

// Digits returns only the decimal digit characters of s, capped at max
// runes (max <= 0 means no cap). Account and PIN fields accept paste
// input, so everything else is stripped before it reaches the flow.
func Digits(s string, max int) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		out = append(out, r)
		if max > 0 && len(out) == max {
			break
		}
	}
	return string(out)
}

// MaskAccount hides all but the last four digits of an account number,
// e.g. "1234567890" -> "****7890". Short inputs are fully masked.
func MaskAccount(account string) string {
	if len(account) <= 4 {
		return "****"
	}
	return "****" + account[len(account)-4:]
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending "..." when something was cut. Safe for UTF-8: it counts
// characters, not bytes.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
