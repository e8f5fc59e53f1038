package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type fakeGate struct {
	token string
}

func (f fakeGate) Token() (string, bool) { return f.token, f.token != "" }

type countingSyncer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingSyncer) SyncStreak(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingSyncer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestObserver_ForegroundTransitionSyncsOnce(t *testing.T) {
	syncer := &countingSyncer{}
	o := NewObserver(PhaseBackground, fakeGate{token: "tok"}, syncer, zerolog.Nop())

	o.Observe(context.Background(), PhaseForeground)
	o.Settle()
	if got := syncer.count(); got != 1 {
		t.Fatalf("sync calls = %d, want 1 after background→foreground", got)
	}

	// Repeated foreground reports are not transitions.
	o.Observe(context.Background(), PhaseForeground)
	o.Observe(context.Background(), PhaseForeground)
	o.Settle()
	if got := syncer.count(); got != 1 {
		t.Fatalf("sync calls = %d, want still 1 without a new transition", got)
	}
}

func TestObserver_NoSessionMeansNoSync(t *testing.T) {
	syncer := &countingSyncer{}
	o := NewObserver(PhaseBackground, fakeGate{}, syncer, zerolog.Nop())

	o.Observe(context.Background(), PhaseForeground)
	o.Start(context.Background())
	o.Settle()
	if got := syncer.count(); got != 0 {
		t.Fatalf("sync calls = %d, want 0 without a session", got)
	}
}

func TestObserver_BackgroundTransitionHasNoSideEffect(t *testing.T) {
	syncer := &countingSyncer{}
	o := NewObserver(PhaseForeground, fakeGate{token: "tok"}, syncer, zerolog.Nop())

	o.Observe(context.Background(), PhaseBackground)
	o.Settle()
	if got := syncer.count(); got != 0 {
		t.Fatalf("sync calls = %d, want 0 on foreground→background", got)
	}
	if o.Phase() != PhaseBackground {
		t.Fatalf("phase = %v, want background", o.Phase())
	}

	// But the state was tracked, so regaining focus is a real transition.
	o.Observe(context.Background(), PhaseForeground)
	o.Settle()
	if got := syncer.count(); got != 1 {
		t.Fatalf("sync calls = %d, want 1 after regaining focus", got)
	}
}

func TestObserver_StartSyncsIndependentOfTransitions(t *testing.T) {
	syncer := &countingSyncer{}
	o := NewObserver(PhaseForeground, fakeGate{token: "tok"}, syncer, zerolog.Nop())

	o.Start(context.Background())
	o.Settle()
	if got := syncer.count(); got != 1 {
		t.Fatalf("sync calls = %d, want 1 at process start", got)
	}
}

func TestObserver_SyncFailureIsSuppressed(t *testing.T) {
	syncer := &countingSyncer{err: errors.New("offline")}
	o := NewObserver(PhaseBackground, fakeGate{token: "tok"}, syncer, zerolog.Nop())

	// Must not panic or propagate; each transition still attempts a sync.
	o.Observe(context.Background(), PhaseForeground)
	o.Observe(context.Background(), PhaseBackground)
	o.Observe(context.Background(), PhaseForeground)
	o.Settle()
	if got := syncer.count(); got != 2 {
		t.Fatalf("sync calls = %d, want 2", got)
	}
}
