// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the structured activity log.
//
// The TUI owns the terminal, so nothing is ever written to stdout or
// stderr; events go to a JSON log file under the config directory.
// Account numbers are masked before they reach the log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/teller-tui/internal/util"
)

// Logger wraps the activity log. The zero value is a disabled logger
// that discards everything, so callers never nil-check.
type Logger struct {
	log  zerolog.Logger
	file *os.File
}

// Nop returns a logger that discards all events.
func Nop() *Logger {
	return &Logger{log: zerolog.Nop()}
}

// Open creates or appends to the JSON activity log at path. The parent
// directory is created if needed.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := zerolog.New(file).With().Timestamp().Logger()
	return &Logger{log: log, file: file}, nil
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// LoginSucceeded records a successful authentication.
func (l *Logger) LoginSucceeded(accountNumber string) {
	l.log.Info().
		Str("event", "login").
		Str("account", util.MaskAccount(accountNumber)).
		Msg("login succeeded")
}

// LoginFailed records a rejected or errored login attempt.
func (l *Logger) LoginFailed(accountNumber string, err error) {
	l.log.Warn().
		Str("event", "login").
		Str("account", util.MaskAccount(accountNumber)).
		Err(err).
		Msg("login failed")
}

// LoggedOut records the end of a session and why it ended.
func (l *Logger) LoggedOut(reason string) {
	l.log.Info().
		Str("event", "logout").
		Str("reason", reason).
		Msg("session ended")
}

// Transaction records a completed withdrawal or deposit.
func (l *Logger) Transaction(kind string, amountCents int64, refreshFailed bool) {
	l.log.Info().
		Str("event", "transaction").
		Str("kind", kind).
		Int64("amount_cents", amountCents).
		Bool("balance_refresh_failed", refreshFailed).
		Msg("transaction completed")
}

// TransactionFailed records a transaction the service rejected.
func (l *Logger) TransactionFailed(kind string, amountCents int64, err error) {
	l.log.Warn().
		Str("event", "transaction").
		Str("kind", kind).
		Int64("amount_cents", amountCents).
		Err(err).
		Msg("transaction failed")
}

// SessionExpired records a load-time or server-side session expiry.
func (l *Logger) SessionExpired() {
	l.log.Info().
		Str("event", "session").
		Msg("stored session expired")
}

// Error records an unexpected client-side failure.
func (l *Logger) Error(context string, err error) {
	l.log.Error().
		Str("context", context).
		Err(err).
		Msg("client error")
}

// Startup records process start with version information.
func (l *Logger) Startup(version string) {
	l.log.Info().
		Str("event", "startup").
		Str("version", version).
		Time("started_at", time.Now()).
		Msg("teller tui starting")
}
