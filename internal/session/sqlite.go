// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the persisted credential slot for the teller TUI.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/teller-tui/internal/token"
)

// Credential fields are stored as separate rows, written one statement
// at a time. Load therefore cannot assume both rows exist - a crash
// between the two writes leaves half a pair behind, which resolve()
// treats as no session.
const (
	keyToken     = "token"
	keyAccountID = "account_id"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	key      TEXT PRIMARY KEY,
	value    TEXT NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
`

// SQLiteStore persists the session in a SQLite file under the state
// directory. This is the durable mode: a saved session survives a
// restart (until the token expires).
type SQLiteStore struct {
	mu    sync.Mutex
	db    *sql.DB
	codec *token.Codec
}

// NewSQLiteStore opens (creating if needed) the credential database at
// path and ensures the schema exists.
func NewSQLiteStore(path string, codec *token.Codec) (*SQLiteStore, error) {
	if codec == nil {
		codec = token.NewCodec()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create credential schema: %w", err)
	}

	return &SQLiteStore{db: db, codec: codec}, nil
}

// Load reads both credential rows, clearing expired or partial state.
func (s *SQLiteStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.get(keyToken)
	if err != nil {
		return nil, err
	}
	accountID, err := s.get(keyAccountID)
	if err != nil {
		return nil, err
	}

	sess := resolve(s.codec, tok, accountID)
	if sess == nil && (tok != "" || accountID != "") {
		if err := s.clearLocked(); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// Save writes both credential fields.
func (s *SQLiteStore) Save(tok, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.put(keyToken, tok); err != nil {
		return err
	}
	return s.put(keyAccountID, accountID)
}

// Clear removes both rows. Idempotent.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (key, value, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, saved_at = excluded.saved_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write credential %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) clearLocked() error {
	if _, err := s.db.Exec(`DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
