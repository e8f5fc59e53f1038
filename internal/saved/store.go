package saved

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wholefoodlabs/larder/internal/api"
)

// XP awarded for saving a recipe, reported best-effort after a confirmed save.
const saveRewardXP = 10

// Rewards is the best-effort notification surface for completed actions.
// Implemented by *gamification.Engine. Callers are allowed to discard the
// returned error; the store logs and drops it.
type Rewards interface {
	AwardXP(ctx context.Context, amount int, reason string) error
}

// Snapshot is an immutable view of the saved-recipes mirror. MemberIDs
// reflects the latest optimistic state; Items lags until the next
// reconciliation, so the two may disagree while a save is in flight.
type Snapshot struct {
	Items      []api.RecipeCard
	MemberIDs  map[string]struct{}
	Loading    bool
	LastSynced time.Time
	LastError  error
}

// Store mirrors the server's saved-recipes collection. Mutations apply
// locally first and are confirmed or rolled back when the server answers;
// the server remains the source of truth and a full fetch always replaces
// local state wholesale.
type Store struct {
	mu         sync.RWMutex
	items      []api.RecipeCard
	members    map[string]struct{}
	fetching   int
	lastSynced time.Time
	lastErr    error

	client  api.SavedAPI
	rewards Rewards
	log     zerolog.Logger

	inflight sync.WaitGroup
}

// New builds a Store over the given API surface. rewards may be nil when no
// gamification engine is wired.
func New(client api.SavedAPI, rewards Rewards, log zerolog.Logger) *Store {
	return &Store{
		members: make(map[string]struct{}),
		client:  client,
		rewards: rewards,
		log:     log.With().Str("component", "saved").Logger(),
	}
}

// FetchAll replaces the local mirror with the server's current collection.
// On failure the previous state is kept untouched and the error recorded.
// The loading flag clears on every path. Fetching twice with no intervening
// server change yields identical state, so redundant reconciliations are
// harmless.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.fetching++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.fetching--
		s.mu.Unlock()
	}()

	list, err := s.client.FetchSaved(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return fmt.Errorf("fetch saved recipes: %w", err)
	}

	members := make(map[string]struct{}, len(list.SavedIDs))
	for _, id := range list.SavedIDs {
		members[id] = struct{}{}
	}

	s.mu.Lock()
	s.items = cloneItems(list.Items)
	s.members = members
	s.lastErr = nil
	s.lastSynced = time.Now()
	s.mu.Unlock()
	return nil
}

// Add optimistically marks id as saved and confirms with the server in the
// background. The membership set updates before this function returns; the
// item list catches up on the reconciling fetch. A rejected save rolls the
// membership back. A confirmed save also reports reward XP, decoupled so a
// failed award can never affect the save.
func (s *Store) Add(ctx context.Context, id string) {
	s.mu.Lock()
	s.members[id] = struct{}{}
	s.mu.Unlock()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		if _, err := s.client.SaveRecipe(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("recipe", id).Msg("save rejected; rolling back")
			s.mu.Lock()
			delete(s.members, id)
			s.mu.Unlock()
			return
		}

		if err := s.FetchAll(ctx); err != nil {
			s.log.Debug().Err(err).Msg("post-save reconcile failed")
		}

		if s.rewards != nil {
			s.inflight.Add(1)
			go func() {
				defer s.inflight.Done()
				if err := s.rewards.AwardXP(ctx, saveRewardXP, "save_recipe"); err != nil {
					s.log.Debug().Err(err).Msg("save reward dropped")
				}
			}()
		}
	}()
}

// Remove optimistically evicts id from both the membership set and the item
// list, then confirms with the server. Removal is stronger than Add because
// the user expects the entry to vanish instantly. On rejection the evicted
// payload is already gone, so the store resynchronizes from the server
// instead of re-inserting a guess.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.members, id)
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		if err := s.client.UnsaveRecipe(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("recipe", id).Msg("unsave rejected; resyncing")
			if err := s.FetchAll(ctx); err != nil {
				s.log.Debug().Err(err).Msg("post-unsave resync failed")
			}
		}
	}()
}

// SaveNew submits a recipe that has no server identifier yet. On success the
// mirror is reconciled so the new entry appears with its server-assigned id,
// which is returned. Failure is reported as ok == false, never a panic or an
// error the UI must handle.
func (s *Store) SaveNew(ctx context.Context, recipe api.NewRecipe) (id string, ok bool) {
	id, err := s.client.CreateSavedRecipe(ctx, recipe)
	if err != nil {
		s.log.Warn().Err(err).Msg("create recipe failed")
		return "", false
	}
	if err := s.FetchAll(ctx); err != nil {
		s.log.Debug().Err(err).Msg("post-create reconcile failed")
	}
	return id, true
}

// IsMember reports whether id is currently considered saved, reflecting the
// latest optimistic state rather than the last confirmed server state.
func (s *Store) IsMember(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// Snapshot returns a copy of the current mirror.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Items:      cloneItems(s.items),
		MemberIDs:  make(map[string]struct{}, len(s.members)),
		Loading:    s.fetching > 0,
		LastSynced: s.lastSynced,
	}
	for id := range s.members {
		snap.MemberIDs[id] = struct{}{}
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

// Settle blocks until all in-flight confirmations have resolved. Used at
// shutdown so a just-tapped save is not abandoned mid-flight.
func (s *Store) Settle() {
	s.inflight.Wait()
}

func cloneItems(items []api.RecipeCard) []api.RecipeCard {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.RecipeCard, len(items))
	copy(dup, items)
	return dup
}
