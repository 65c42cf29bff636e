// Package cli provides the interactive tasklist command-line client.
//
// It wires configuration and the HTTP API client into a REPL. The session
// token lives only in memory: logging out or exiting forgets it.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
