// Package db provides the SQL execution engine for CoreDB.
//
// The Executor type is the main entry point: it parses SQL, runs the
// statement against a storage manager, and returns a QueryResult.
//
// # Executor Usage
//
//	executor := db.NewExecutor(ps.NewMemoryManager())
//	result := executor.Execute("SELECT * FROM users")
//	result.Display()
//
// Every outcome, including parse and storage failures, is reported as
// a QueryResult; Execute never panics and never returns an error
// directly.
//
// # Snapshots
//
// Dump and Load move a full database snapshot to and from a local
// path, an HTTP URL (read side only) or an s3:// URL.
package db
