// Package cli provides the interactive freelancehub command-line client.
//
// It wires configuration, the local response cache, API services, and an
// interactive REPL that keeps working while the server is unreachable:
// category counts, featured jobs and a client's own jobs are answered from
// the cache, and login falls back to the last cached session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
