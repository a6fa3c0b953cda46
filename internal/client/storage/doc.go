// Package storage is the persistent key/value store behind the client's
// local cache. It plays the part browser storage plays for a web client:
// a single SQLite table of opaque values keyed by name.
//
// InitDatabase opens the SQLite file (modernc.org/sqlite, pure Go) and
// applies the embedded goose migrations. Repository is the contract used by
// the cache; SQLiteRepository implements it.
package storage
