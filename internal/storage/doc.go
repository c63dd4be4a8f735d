// Package storage provides the durable key/value backends behind homepage
// preferences and level progress.
//
// # Backends
//
//   - FileStore: a flat TOML table, rewritten on every Set via temp file + rename
//   - SQLiteStore: a single kv table in a pure-Go SQLite database
//   - MemoryStore: process-local, used in tests and as a fallback
//
// All backends are safe for concurrent use and write through: Set returns
// only after the value is durable (or returns an *Error).
//
// # Errors
//
// Every backend failure is reported as *Error carrying the operation and key.
// Callers in the prefs package treat these as recoverable and fall back to
// defaults.
package storage
