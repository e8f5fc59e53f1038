package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wholefoodlabs/larder/internal/api"
	"github.com/wholefoodlabs/larder/internal/config"
	"github.com/wholefoodlabs/larder/internal/gamification"
	"github.com/wholefoodlabs/larder/internal/keystore"
	"github.com/wholefoodlabs/larder/internal/lifecycle"
	"github.com/wholefoodlabs/larder/internal/prefs"
	"github.com/wholefoodlabs/larder/internal/saved"
	"github.com/wholefoodlabs/larder/internal/session"
	"github.com/wholefoodlabs/larder/internal/ui"
)

// Options configure the Larder application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/larder/config.toml
}

// Run boots the Larder TUI until the context is cancelled. All stores are
// constructed here and passed down explicitly; there is no ambient state,
// and everything is torn down when this function returns.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.LogPath())

	keys := keystore.Open()
	sessions := session.New(keys, logger)
	userPrefs := prefs.New(keys, logger)

	client, err := api.NewClient(cfg.APIBase, sessions)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	engine := gamification.NewEngine(client, logger)
	store := saved.New(client, engine, logger)
	observer := lifecycle.NewObserver(lifecycle.PhaseForeground, sessions, engine, logger)

	// The two keystore reads are independent one-shot loads; neither can
	// fail the startup, so the group exists only to await both.
	var g errgroup.Group
	g.Go(func() error { sessions.Load(); return nil })
	g.Go(func() error { userPrefs.Load(); return nil })
	_ = g.Wait()

	// Launch-time freshness: streak sync plus the initial collection fetch.
	observer.Start(ctx)
	if _, ok := sessions.Token(); ok {
		if err := store.FetchAll(ctx); err != nil {
			logger.Warn().Err(err).Msg("initial fetch failed; starting from empty mirror")
		}
	}

	uiErr := ui.Run(ctx, ui.Options{
		Context:  ctx,
		Saved:    store,
		Prefs:    userPrefs,
		Engine:   engine,
		Observer: observer,
	})

	// Drain background work so a just-tapped mutation or preference change
	// is not abandoned by process exit.
	userPrefs.Flush()
	store.Settle()
	observer.Settle()

	return uiErr
}

// newLogger writes structured logs to the configured file. The TUI owns the
// terminal, so a broken log path degrades to a no-op logger rather than
// writing over the interface.
func newLogger(path string) zerolog.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(file).With().Timestamp().Logger()
}
