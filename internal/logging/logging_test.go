// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func TestLogger_MasksAccountNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teller.log")
	logger, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	logger.LoginSucceeded("1234567890")
	logger.LoginFailed("0987654321", errors.New("Wrong account number or PIN"))
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	events := readEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := events[0]["account"]; got != "****7890" {
		t.Errorf("account = %v, want masked", got)
	}
	if got := events[1]["account"]; got != "****4321" {
		t.Errorf("account = %v, want masked", got)
	}
	for _, ev := range events {
		for _, full := range []string{"1234567890", "0987654321"} {
			if containsValue(ev, full) {
				t.Errorf("full account number %s leaked into log", full)
			}
		}
	}
}

func containsValue(ev map[string]any, needle string) bool {
	for _, v := range ev {
		if s, ok := v.(string); ok && s == needle {
			return true
		}
	}
	return false
}

func TestLogger_TransactionEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teller.log")
	logger, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	logger.Transaction("withdraw", 4000, true)
	logger.LoggedOut("inactivity")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	events := readEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := events[0]["amount_cents"]; got != float64(4000) {
		t.Errorf("amount_cents = %v", got)
	}
	if got := events[0]["balance_refresh_failed"]; got != true {
		t.Errorf("balance_refresh_failed = %v", got)
	}
	if got := events[1]["reason"]; got != "inactivity" {
		t.Errorf("logout reason = %v", got)
	}
}

func TestLogger_NopIsSafe(t *testing.T) {
	logger := Nop()
	logger.LoginSucceeded("1234567890")
	logger.LoggedOut("manual")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}

func TestLogger_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teller.log")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	first.LoggedOut("manual")
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	second.LoggedOut("inactivity")
	second.Close()

	if got := len(readEvents(t, path)); got != 2 {
		t.Errorf("got %d events after reopen, want 2", got)
	}
}
