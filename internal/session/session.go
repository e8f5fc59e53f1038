// Package session holds the current auth token. The token is the single gate
// other components consult before making authenticated calls.
package session

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wholefoodlabs/larder/internal/keystore"
)

const tokenKey = "auth_token"

// Store keeps the session token in memory, mirrored to the keystore so it
// survives restarts. The zero token means logged out.
type Store struct {
	mu    sync.RWMutex
	token string

	keys keystore.Store
	log  zerolog.Logger
}

// New builds a Store backed by keys.
func New(keys keystore.Store, log zerolog.Logger) *Store {
	return &Store{keys: keys, log: log.With().Str("component", "session").Logger()}
}

// Load performs the one-shot startup read of the persisted token. Any
// keystore failure leaves the logged-out state; it never propagates, so a
// broken keystore degrades to "sign in again" rather than a crash.
func (s *Store) Load() {
	value, ok, err := s.keys.Get(tokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("token load failed; starting logged out")
		return
	}
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	s.mu.Lock()
	s.token = value
	s.mu.Unlock()
}

// Token reports the current token. ok is false when logged out.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken records a fresh login. Memory is updated first so the session is
// usable immediately; a persistence failure only costs durability across
// restarts and is logged, never surfaced.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.keys.Set(tokenKey, token); err != nil {
		s.log.Warn().Err(err).Msg("token persist failed; session will not survive restart")
	}
}

// Logout clears the token in memory and in the keystore. Subsequent Token
// reads report logged out even if the keystore delete fails.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.keys.Delete(tokenKey); err != nil {
		s.log.Warn().Err(err).Msg("token delete failed")
	}
}
