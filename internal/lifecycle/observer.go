// Package lifecycle watches foreground/background transitions and triggers
// streak resyncs at the moments the server-side day streak can go stale.
package lifecycle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Phase is the coarse application state as reported by the terminal.
type Phase int

const (
	PhaseBackground Phase = iota
	PhaseForeground
)

func (p Phase) String() string {
	if p == PhaseForeground {
		return "foreground"
	}
	return "background"
}

// SessionGate reports whether an authenticated session exists. Implemented
// by *session.Store.
type SessionGate interface {
	Token() (string, bool)
}

// Syncer performs the streak resync. Implemented by *gamification.Engine.
type Syncer interface {
	SyncStreak(ctx context.Context) error
}

// Observer tracks the current phase and fires exactly one streak sync per
// background-to-foreground transition, and one at process start. Syncs run
// in the background and their failures are logged and suppressed; the streak
// simply does not advance until the next successful attempt.
type Observer struct {
	mu    sync.Mutex
	phase Phase

	sessions SessionGate
	syncer   Syncer
	log      zerolog.Logger

	pending sync.WaitGroup
}

// NewObserver builds an Observer starting in the given phase.
func NewObserver(initial Phase, sessions SessionGate, syncer Syncer, log zerolog.Logger) *Observer {
	return &Observer{
		phase:    initial,
		sessions: sessions,
		syncer:   syncer,
		log:      log.With().Str("component", "lifecycle").Logger(),
	}
}

// Phase returns the currently tracked phase.
func (o *Observer) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Start covers app-launch freshness: it fires one sync independent of any
// transition, gated only on a session being present.
func (o *Observer) Start(ctx context.Context) {
	o.maybeSync(ctx)
}

// Observe records a phase change. Only the background-to-foreground edge has
// a side effect, and it fires once per transition regardless of how often
// the terminal reports the foreground state afterwards.
func (o *Observer) Observe(ctx context.Context, next Phase) {
	o.mu.Lock()
	prev := o.phase
	o.phase = next
	o.mu.Unlock()

	if prev == PhaseBackground && next == PhaseForeground {
		o.maybeSync(ctx)
	}
}

// Settle blocks until all background syncs have resolved.
func (o *Observer) Settle() {
	o.pending.Wait()
}

func (o *Observer) maybeSync(ctx context.Context) {
	if _, ok := o.sessions.Token(); !ok {
		return
	}
	o.pending.Add(1)
	go func() {
		defer o.pending.Done()
		if err := o.syncer.SyncStreak(ctx); err != nil {
			o.log.Debug().Err(err).Msg("streak sync failed")
		}
	}()
}
