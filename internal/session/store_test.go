// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the persisted credential slot for the teller TUI.
package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/teller-tui/internal/token"
)

// fixedClock pins the codec to a known instant so expiry is
// deterministic in tests.
var testNow = time.Unix(1700000000, 0)

func testCodec() *token.Codec {
	return &token.Codec{Now: func() time.Time { return testNow }}
}

func tokenExpiringAt(t *testing.T, exp int64) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": float64(exp),
		"sub": "1",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

// storeUnderTest runs the same contract checks against any backend.
func storeUnderTest(t *testing.T, store Store) {
	live := tokenExpiringAt(t, testNow.Unix()+3600)
	dead := tokenExpiringAt(t, testNow.Unix()-1)

	t.Run("empty load", func(t *testing.T) {
		sess, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, sess)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(live, "1234567890"))
		sess, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, sess)
		require.Equal(t, live, sess.Token)
		require.Equal(t, "1234567890", sess.AccountID)
	})

	t.Run("expired token cleared on load", func(t *testing.T) {
		require.NoError(t, store.Save(dead, "1234567890"))
		sess, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, sess)

		// The stale pair must actually be gone, not just hidden.
		sess, err = store.Load()
		require.NoError(t, err)
		require.Nil(t, sess)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, store.Save(live, "1234567890"))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
		sess, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, sess)
	})
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore(testCodec()))
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "credentials.db")
	store, err := NewSQLiteStore(path, testCodec())
	require.NoError(t, err)
	defer store.Close()

	storeUnderTest(t, store)
}

func TestSQLiteStore_IncompletePair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	store, err := NewSQLiteStore(path, testCodec())
	require.NoError(t, err)
	defer store.Close()

	// Simulate a crash between the two credential writes: only the
	// token row exists.
	live := tokenExpiringAt(t, testNow.Unix()+3600)
	store.mu.Lock()
	require.NoError(t, store.put(keyToken, live))
	store.mu.Unlock()

	sess, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, sess, "half a credential pair must read as no session")

	// And the half-pair is cleared so it cannot linger.
	store.mu.Lock()
	tok, err := store.get(keyToken)
	store.mu.Unlock()
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	live := tokenExpiringAt(t, testNow.Unix()+3600)

	store, err := NewSQLiteStore(path, testCodec())
	require.NoError(t, err)
	require.NoError(t, store.Save(live, "0987654321"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, testCodec())
	require.NoError(t, err)
	defer reopened.Close()

	sess, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "0987654321", sess.AccountID)
}

func TestMemoryStore_IncompletePair(t *testing.T) {
	store := NewMemoryStore(testCodec())
	store.token = tokenExpiringAt(t, testNow.Unix()+3600)
	// accountID deliberately left empty.

	sess, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, sess)
	require.Empty(t, store.token)
}
