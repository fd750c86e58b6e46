// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the persisted credential slot for the teller TUI.
package session

import (
	"sync"

	"github.com/jeranaias/teller-tui/internal/token"
)

// Session is the authenticated state: both fields are always set
// together. A session with either field empty does not exist.
type Session struct {
	Token     string
	AccountID string
}

// Store is the credential slot contract. Implementations must make
// Clear idempotent and must never return a partial session from Load.
type Store interface {
	// Load returns the stored session, or nil when there is none.
	// Expired tokens and incomplete pairs are cleared and reported as
	// no session. Intended to be called once at startup.
	Load() (*Session, error)

	// Save persists both fields of the session.
	Save(tok, accountID string) error

	// Clear removes the session. Safe to call when already empty.
	Clear() error
}

// resolve applies the load-time rules shared by all backends: an
// incomplete pair (a crash can leave one field behind) or an expired
// token counts as no session.
func resolve(codec *token.Codec, tok, accountID string) *Session {
	if tok == "" || accountID == "" {
		return nil
	}
	if codec.IsExpired(tok) {
		return nil
	}
	return &Session{Token: tok, AccountID: accountID}
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore keeps the session in process memory. This is the
// ephemeral mode: the session dies with the process, the closest
// analogue to session-scoped browser storage.
type MemoryStore struct {
	mu        sync.Mutex
	codec     *token.Codec
	token     string
	accountID string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(codec *token.Codec) *MemoryStore {
	if codec == nil {
		codec = token.NewCodec()
	}
	return &MemoryStore{codec: codec}
}

// Load returns the stored session, clearing expired or partial state.
func (s *MemoryStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := resolve(s.codec, s.token, s.accountID)
	if sess == nil {
		s.token = ""
		s.accountID = ""
	}
	return sess, nil
}

// Save stores both credential fields.
func (s *MemoryStore) Save(tok, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
	s.accountID = accountID
	return nil
}

// Clear removes both fields. Idempotent.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.accountID = ""
	return nil
}
