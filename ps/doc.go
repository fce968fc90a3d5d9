// Package ps provides persistent storage for CoreDB tables.
//
// Storage is file-backed through a billy filesystem: one schema.json
// describing every table, one <table>.json per table holding its rows,
// and, in indexed mode, one indexes/<table>/<column>.json file per
// equality index.
//
// # Managers
//
// Manager is the storage interface the executor runs against. Two
// implementations exist:
//
//	base := ps.NewFileManager("./data")   // plain file-backed store
//	mgr := ps.NewIndexedManager(base)     // adds equality indexes
//
// For tests and throwaway databases an in-memory filesystem works the
// same way:
//
//	base := ps.NewMemoryManager()
//
// Indexes exist only for tables with a primary key, are rebuilt in
// full after every mutation, and accelerate single-condition equality
// selects. Everything else falls back to a full scan.
package ps
