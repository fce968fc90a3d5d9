// Package coredb provides a small file-backed SQL database engine.
//
// CoreDB parses a practical subset of SQL, executes it against a
// JSON-file table store, and can optionally maintain equality indexes
// for primary-keyed tables.
//
// # Quick Start
//
// Create an in-memory database:
//
//	db := coredb.Open(ps.NewMemoryManager())
//	engine := db.Executor()
//
//	engine.Execute("CREATE TABLE users (id INT PRIMARY KEY, name TEXT)")
//	engine.Execute("INSERT INTO users (id, name) VALUES (1, 'Alice')")
//
//	result := engine.Execute("SELECT * FROM users")
//	result.Display()
//
// For durable storage with index acceleration:
//
//	db := coredb.Open(ps.NewIndexedManager(ps.NewFileManager("data")))
//
// # Supported SQL
//
// CoreDB supports a subset of SQL including:
//   - CREATE/DROP TABLE (PRIMARY KEY, NOT NULL, REFERENCES)
//   - INSERT, SELECT, UPDATE, DELETE
//   - WHERE with comparison operators and BETWEEN
//   - AND/OR connectives, combined left-to-right without precedence
//   - JOINs: INNER, LEFT, RIGHT, FULL OUTER
//   - Aggregate functions: COUNT, SUM, AVG, MIN, MAX
//   - GROUP BY, HAVING
//   - ORDER BY (per-column ASC/DESC), LIMIT, DISTINCT
package coredb
