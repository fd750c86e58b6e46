// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the teller TUI.
package util

import "strconv"

// All monetary arithmetic in this program happens in integer cents.
// Formatting is the only place a decimal point appears.

// FormatCents renders an amount of cents as a dollar string, e.g.
// 123456 -> "$1,234.56". Negative amounts keep the sign before the $.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	dollars := cents / 100
	remainder := cents % 100

	whole := strconv.FormatInt(dollars, 10)

	// Insert thousands separators right-to-left.
	var grouped []byte
	for i, c := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}

	frac := strconv.FormatInt(remainder, 10)
	if remainder < 10 {
		frac = "0" + frac
	}

	return sign + "$" + string(grouped) + "." + frac
}

// FormatWholeDollars renders cents as a bare dollar figure without the
// fractional part, e.g. 4000 -> "$40". Used for quick-amount buttons.
func FormatWholeDollars(cents int64) string {
	return "$" + strconv.FormatInt(cents/100, 10)
}
