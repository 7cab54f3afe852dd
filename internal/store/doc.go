// Package store provides persistence for the askhive question catalogue.
//
// # Architecture
//
// The Store interface is the single source of truth for Questions and
// Answers. Two interchangeable implementations satisfy it:
//
//   - SQLiteStore: durable backing via modernc.org/sqlite behind
//     database/sql (the connection pool). Every write runs in its own
//     transaction; on any failure the transaction is rolled back in full.
//   - MemoryStore: a process-local table guarded by a sync.RWMutex so any
//     number of readers proceed concurrently while a writer is exclusive.
//
// Handlers depend only on the interface and work with either backing
// without modification.
//
// # Data Models
//
//   - Question / NewQuestion: catalogue entries with optional tags
//   - Answer / NewAnswer: append-only answers referencing a question id
//   - Pagination: (limit, offset) window over id-ordered result sets
//
// Ids are surrogate keys assigned by the store, monotonic in assignment
// order, and never reused after delete. Values returned by reads are
// detached copies.
//
// # Error Handling
//
//   - ErrNotFound: the requested id does not exist
//   - PersistenceError: backing-engine failure, with the engine's message
//     surfaced verbatim
//
// All methods accept context.Context. An out-of-range pagination window is
// never an error; it yields fewer (possibly zero) rows.
//
// # SQLite Configuration
//
// The SQLite backing uses WAL mode for concurrent reads and enables
// foreign keys so answers.corresponding_question is enforced by the engine:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Use NewSQLiteStore(":memory:") for integration tests with real SQLite,
// or NewMemoryStore() when no engine is wanted at all.
package store
