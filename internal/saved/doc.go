// Package saved maintains the local mirror of the user's saved-recipes
// collection.
//
// # Overview
//
// This package implements the optimistic store at the heart of Larder: a
// thread-safe mirror of server-side collection membership that updates
// locally first and converges on server truth asynchronously. It is the
// coordination point where UI actions meet network confirmations.
//
// # State Shape
//
// The store tracks two substructures plus bookkeeping:
//
//   - Items: the ordered recipe cards, as of the last full fetch
//   - MemberIDs: the set of saved identifiers, including optimistic changes
//   - Loading / LastSynced / LastError: fetch bookkeeping for the UI
//
// After every settled operation MemberIDs equals the ids of Items. While a
// save is in flight the two intentionally diverge: Add updates only the
// membership set (the full card payload isn't known locally), and the item
// list catches up on the reconciling fetch. Remove updates both, because an
// eviction is visually expected to be instant.
//
// # Mutation Protocol
//
//	Add(id):     members += id             (synchronous)
//	             server save               (background)
//	             ok  → FetchAll reconcile + best-effort reward
//	             err → members -= id       (full rollback)
//
//	Remove(id):  members -= id, items -= id (synchronous)
//	             server unsave             (background)
//	             err → FetchAll resync     (payload no longer held locally)
//
//	SaveNew(p):  server create             (synchronous)
//	             ok  → FetchAll, return server-assigned id
//	             err → ("", false); never an error the UI must handle
//
// FetchAll always replaces local state wholesale - the last full fetch wins
// and optimistic-only differences are discarded. Redundant reconciliations
// are tolerated rather than deduplicated; fetching twice with no server-side
// change yields identical state.
//
// # Concurrency Model
//
// A single RWMutex guards the mirror; snapshots are defensive copies. State
// mutations happen between network calls, never across them, so a slow
// server cannot hold the lock. Competing Add/Remove calls for the same id
// are deliberately not serialized: each applies its optimistic step
// independently and whichever server resolution lands last wins. This
// mirrors how the product behaves under a double-tap and keeps the store
// free of per-key queues.
//
// # Error Handling
//
// No operation surfaces an error to the UI beyond the Snapshot's LastError
// field. Rejected saves roll back, rejected removals resync, failed rewards
// are logged and dropped. The server remains the source of truth; local
// state is a cache that is never authoritative beyond the current session.
package saved
