// Package cli provides the interactive training portal command-line client.
//
// It restores the session, starts the background feed and connectivity
// watchers, and runs a REPL over the session, catalog and feed services.
//
// Key features:
//   - Login / Logout / Register
//   - Browse videos with search and category filters, refreshed in the background
//   - Show a video with its embeddable link
//   - Administration of users, videos and categories (admin only)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
