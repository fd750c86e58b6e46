// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the teller TUI.
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"cents only", 5, "$0.05"},
		{"whole dollars", 4000, "$40.00"},
		{"thousands grouping", 123456, "$1,234.56"},
		{"millions grouping", 100000000, "$1,000,000.00"},
		{"negative", -2050, "-$20.50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCents(tc.cents); got != tc.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tc.cents, got, tc.want)
			}
		})
	}
}

func TestFormatWholeDollars(t *testing.T) {
	if got := FormatWholeDollars(2000); got != "$20" {
		t.Errorf("FormatWholeDollars(2000) = %q, want $20", got)
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"passthrough", "1234567890", 10, "1234567890"},
		{"strips non-digits", "12-34 ab56", 0, "123456"},
		{"caps at max", "123456789012", 10, "1234567890"},
		{"empty", "", 4, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Digits(tc.in, tc.max); got != tc.want {
				t.Errorf("Digits(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestMaskAccount(t *testing.T) {
	if got := MaskAccount("1234567890"); got != "****7890" {
		t.Errorf("MaskAccount = %q, want ****7890", got)
	}
	if got := MaskAccount("123"); got != "****" {
		t.Errorf("MaskAccount short = %q, want ****", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello world", 8); got != "hello..." {
		t.Errorf("TruncateRunes = %q, want hello...", got)
	}
	if got := TruncateRunes("short", 10); got != "short" {
		t.Errorf("TruncateRunes short = %q, want short", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	if err := AtomicWriteFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}
