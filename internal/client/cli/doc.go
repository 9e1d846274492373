// Package cli provides the interactive notekeeper command-line client.
//
// It wires configuration, session storage, the authenticated HTTP client and
// the router into a REPL. Every location change goes through the router, so
// a screen only renders when the session allows it.
//
// Key features:
//   - Login / Register / Activate / password reset / Logout
//   - Notes and Categories: list, filter, paginate, add, edit, delete, show
//   - Users (admins only): list, filter by text and role
//   - Profile and password change
//   - Session changes made by other processes sharing the store are picked
//     up before the next prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the Navigator methods for details.
package cli
