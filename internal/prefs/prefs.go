// Package prefs handles Larder user preferences.
// The theme mode is mirrored to the keystore so it survives restarts.
package prefs

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/wholefoodlabs/larder/internal/keystore"
)

// Mode selects how the UI resolves its color theme.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// DefaultMode applies when nothing valid is persisted.
const DefaultMode = ModeSystem

const modeKey = "theme_mode"

var modeOrder = []Mode{ModeSystem, ModeLight, ModeDark}

// ParseMode validates a raw persisted value against the known modes.
func ParseMode(raw string) (Mode, bool) {
	for _, m := range modeOrder {
		if string(m) == raw {
			return m, true
		}
	}
	return DefaultMode, false
}

// NextMode returns the next mode in the cycle.
func NextMode(current Mode) Mode {
	for i, m := range modeOrder {
		if m == current {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return modeOrder[0]
}

// Store holds the in-memory theme mode and writes changes through to the
// keystore. The in-memory value is authoritative for the running session; a
// lost write only means the preference is forgotten on the next cold start.
type Store struct {
	mu   sync.RWMutex
	mode Mode

	keys keystore.Store
	log  zerolog.Logger

	writes sync.WaitGroup
}

// New builds a Store starting at DefaultMode.
func New(keys keystore.Store, log zerolog.Logger) *Store {
	return &Store{
		mode: DefaultMode,
		keys: keys,
		log:  log.With().Str("component", "prefs").Logger(),
	}
}

// Load reads the persisted mode. An absent, invalid, or unreadable value
// leaves the current mode untouched. Safe to call repeatedly.
func (s *Store) Load() {
	raw, ok, err := s.keys.Get(modeKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("theme mode load failed; keeping default")
		return
	}
	if !ok {
		return
	}
	mode, valid := ParseMode(raw)
	if !valid {
		s.log.Debug().Str("value", raw).Msg("persisted theme mode not recognized; keeping default")
		return
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// Mode returns the current theme mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set updates the mode synchronously so the UI reflects it immediately, then
// persists in the background. Writes are not coalesced; the storage layer
// keeps whichever write lands last. A failed write never reverts memory.
func (s *Store) Set(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.keys.Set(modeKey, string(mode)); err != nil {
			s.log.Warn().Err(err).Str("mode", string(mode)).Msg("theme mode persist failed")
		}
	}()
}

// Flush blocks until all background persistence writes have settled. Called
// at shutdown so a just-changed preference isn't lost to process exit.
func (s *Store) Flush() {
	s.writes.Wait()
}
