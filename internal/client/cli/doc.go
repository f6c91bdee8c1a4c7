// Package cli provides the interactive ticketapp terminal client.
//
// Views of the client are reached by path, as in a browser: the landing
// page, login, signup, the dashboard and the ticket list. Every navigation
// passes through the auth guard, so the dashboard and ticket views send a
// logged-out user to /auth/login.
//
// Key commands:
//   - signup / login / logout / whoami / refresh
//   - go <path>, dashboard, tickets [status]
//   - add, edit <id>, status <id> <status>, delete <id>
//   - export <file> / import <file>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
