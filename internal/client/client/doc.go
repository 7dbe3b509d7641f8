// Package client talks to the project registry REST backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, role-scoped project listings, project mutations,
//     approve/reject decisions, the originality check and the weather feed.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer credential to authenticated calls, tags every request with an
//     X-Request-ID and maps responses to typed outcomes.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session store and applies embedded goose migrations.
//
// # Error Handling
//
// Outcomes are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (network failure), ErrUnauthorized (credential expired,
// rejected or absent), ErrValidation, ErrNotFound, ErrRequestFailed.
// The last three arrive wrapped in *APIError, which carries the backend's
// message verbatim. ErrUnauthorized is never folded into APIError so that
// callers can tear the session down uniformly.
//
// # Credentials
//
// HTTPClient keeps no session. Every authenticated call receives the token
// explicitly; an empty token yields ErrUnauthorized without any request.
//
// All operations accept context.Context and honor cancellation. No timeout is
// applied unless configured with WithTimeout.
package client
