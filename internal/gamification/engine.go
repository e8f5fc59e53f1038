// Package gamification mirrors the user's XP and day-streak counters and
// keeps them fresh via best-effort server syncs.
package gamification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wholefoodlabs/larder/internal/api"
)

// XPPerLevel matches the server's level curve.
const XPPerLevel = 1000

// Award reasons understood by the server.
const (
	ReasonBrowseRecipe = "browse_recipe"
	ReasonSaveRecipe   = "save_recipe"
	ReasonCookRecipe   = "cook_recipe"
)

// Level is 1-based: a brand-new user with 0 XP sits at level 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPInLevel is the XP accumulated inside the current level, in [0, XPPerLevel).
func XPInLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp % XPPerLevel
}

// Progress is the fraction of the current level completed, in [0, 1).
func Progress(xp int) float64 {
	return float64(XPInLevel(xp)) / float64(XPPerLevel)
}

// State is the locally cached gamification snapshot. Level and progress are
// derived from XP on read, never stored, so they can't go stale.
type State struct {
	XP            int
	StreakDays    int
	LongestStreak int
	LastSyncedAt  time.Time
}

// Level derives the current level from the cached XP.
func (s State) Level() int { return Level(s.XP) }

// XPInLevel derives the in-level XP from the cached XP.
func (s State) XPInLevel() int { return XPInLevel(s.XP) }

// Progress derives the in-level completion fraction from the cached XP.
func (s State) Progress() float64 { return Progress(s.XP) }

// Engine coordinates streak syncs and XP awards against the server. All of
// its operations are best-effort: errors are returned so the discard is a
// visible choice at the call site, and a failed call leaves the cached state
// exactly as it was.
type Engine struct {
	mu    sync.RWMutex
	state State

	client api.ProfileAPI
	log    zerolog.Logger
}

// NewEngine builds an Engine over the given API surface.
func NewEngine(client api.ProfileAPI, log zerolog.Logger) *Engine {
	return &Engine{
		client: client,
		log:    log.With().Str("component", "gamification").Logger(),
	}
}

// State returns a copy of the current snapshot.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// SyncStreak asks the server to recompute the day streak as of now and
// replaces the cached state with the result. On failure nothing changes; the
// state simply does not advance until the next successful sync.
func (e *Engine) SyncStreak(ctx context.Context) error {
	profile, err := e.client.FetchProfile(ctx)
	if err != nil {
		return fmt.Errorf("sync streak: %w", err)
	}

	e.mu.Lock()
	e.state = State{
		XP:            profile.XPPoints,
		StreakDays:    profile.CurrentStreak,
		LongestStreak: profile.LongestStreak,
		LastSyncedAt:  time.Now(),
	}
	e.mu.Unlock()
	return nil
}

// AwardXP reports a completed action. On success the cached XP total is
// refreshed from the server's receipt. amount must be positive and reason one
// of the fixed vocabulary tags.
func (e *Engine) AwardXP(ctx context.Context, amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("award xp: amount %d not positive", amount)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("award xp: reason required")
	}

	gain, err := e.client.AwardXP(ctx, amount, reason)
	if err != nil {
		return fmt.Errorf("award xp: %w", err)
	}

	e.mu.Lock()
	e.state.XP = gain.TotalXP
	e.mu.Unlock()

	if gain.NewLevel != nil {
		e.log.Info().Int("level", *gain.NewLevel).Msg("level up")
	}
	return nil
}
