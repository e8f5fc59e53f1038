// Package api provides an HTTP client for the WholeFood Labs API.
//
// # Overview
//
// This package defines the API client the stores use to converge on server
// truth. It handles HTTP communication, JSON serialization, bearer-token
// auth, and type-safe representation of the payloads Larder consumes.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the relevant API schema
//
// The client surface is sliced into small interfaces (SavedAPI, ProfileAPI)
// so each store depends only on the calls it makes and tests can substitute
// fakes without a network.
//
// # Request Conventions
//
// Every request carries a fresh X-Request-ID. Mutating requests additionally
// carry an X-Idempotency-Key so a retried save/unsave cannot double-apply
// server-side. When a TokenSource reports a session, requests carry an
// Authorization bearer header; otherwise they are sent anonymously and the
// server rejects the calls that need auth.
//
// # Timeouts
//
// The underlying http.Client enforces a 10 second per-request timeout, and
// every method takes a context for caller-driven cancellation. A hung server
// therefore cannot pin a store in its optimistic state indefinitely.
package api
