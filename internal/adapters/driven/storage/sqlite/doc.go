// Package sqlite provides a SQLite-based implementation of the highlight store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Highlight rectangles are stored as a JSON array; timestamps as Unix nanoseconds
// so creation order survives a round trip exactly.
//
// # Data Location
//
// By default, the database is stored at ~/.inkmark/data/highlights.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
