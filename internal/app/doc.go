// Package app provides the orchestration layer for the Larder application.
//
// # Overview
//
// This package wires together configuration, the secure keystore, the API
// client, the reactive stores, and the UI to create the complete Larder
// experience. It serves as the composition root where all dependencies are
// initialized and connected. No package-level state exists anywhere in the
// program: every store is constructed once here, handed to the components
// that need it, and torn down when Run returns.
//
// # Startup Sequence
//
//  1. Load Larder configuration from ~/.config/larder/config.toml
//  2. Open the structured log file (the TUI owns the terminal)
//  3. Open the platform keystore and construct the session and prefs stores
//  4. Initialize the HTTP client, gamification engine, saved-recipes store,
//     and lifecycle observer
//  5. Run the one-shot keystore loads concurrently and await both
//  6. Fire the launch-time streak sync and initial collection fetch
//  7. Start the TUI and block until the user exits or the context cancels
//  8. Drain in-flight background work (pending preference writes, mutation
//     confirmations, streak syncs) before returning
//
// # Resynchronization Triggers
//
// Larder does not poll. Local mirrors resynchronize with the server at three
// defined moments: process start (step 6 above), terminal focus regained
// (lifecycle observer, fed by the UI), and after a confirmed mutation
// (reconciling fetch inside the saved store). Between those moments the
// local state stands, optimistic changes included.
//
// # Error Handling
//
// Fatal errors (returned from Run): config parse failures and API client
// construction failures. Everything else degrades: a broken keystore starts
// the app logged out with default preferences, a failed initial fetch starts
// from an empty mirror, and a broken log path disables logging.
package app
