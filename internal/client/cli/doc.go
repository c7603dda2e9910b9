// Package cli provides the interactive GigLine command-line client.
//
// It wires configuration, local storage, API services, and an interactive
// REPL that keeps working against a flaky connection. Typical flow: restore
// the saved session, start a background connectivity watcher, and execute
// user commands.
//
// Key features:
//   - Register / Login / Logout (token pair persisted locally, encrypted)
//   - Browse and post jobs, apply to jobs (listings cached for offline reads)
//   - Browse workers, send and answer hire requests
//   - Earnings summary and payout history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
