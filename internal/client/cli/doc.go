// Package cli provides the interactive projectdesk command-line client.
//
// It wires configuration, the local session store, the API client and
// services into a REPL. Typical flow: restore the saved session, probe the
// backend, start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout, whoami
//   - Role-scoped dashboard: refresh and list
//   - Add, edit and delete projects; approve or reject them as a teacher
//   - Originality check and weather
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
