// Package client contains client-side building blocks for GigLine.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) used by
//     the resource services: a generic request dispatcher plus token
//     management (SaveTokens/ClearTokens/IsAuthenticated).
//  2. A concrete HTTP implementation (see HTTPClient) that prefixes
//     endpoints with the versioned API root, attaches the Authorization
//     header, enforces per-request timeouts, and on a 401 performs exactly
//     one token-refresh-and-retry cycle before surfacing an error.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     for the CLI, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Every request failure is an *APIError carrying the status code, a message
// extracted from the response body, and the raw body. Timeouts are reported
// as status 408, transport failures as status 0. The sentinels
// ErrUnauthorized, ErrTimeout and ErrUnavailable can be matched with
// errors.Is.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. The credential pair is the only
// shared mutable state; concurrent 401s share a single refresh call. All
// operations accept context.Context and honor cancellation.
package client
