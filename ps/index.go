package ps

import (
	"encoding/json"
	"errors"
	"os"
	"path"

	"github.com/go-git/go-billy/v6/util"

	"github.com/coredb-io/coredb/core"
)

const indexesDir = "indexes"

// Index is an equality index on one column: stringified column value
// to the primary-key values of the rows holding it. Indexes are
// derived data, rebuilt in full after every mutation.
type Index struct {
	Table   string
	Column  string
	Entries map[string][]core.Value
}

// NewIndex returns an empty index for a (table, column) pair.
func NewIndex(table, column string) *Index {
	return &Index{
		Table:   table,
		Column:  column,
		Entries: make(map[string][]core.Value),
	}
}

// Build populates the index from rows, keyed by the indexed column
// and carrying pkColumn values. Rows where either side is Null are
// skipped.
func (idx *Index) Build(rows []core.Row, pkColumn string) {
	for _, row := range rows {
		key := row[idx.Column]
		pk := row[pkColumn]
		if key.IsNull() || pk.IsNull() {
			continue
		}
		keyStr := key.String()
		idx.Entries[keyStr] = append(idx.Entries[keyStr], pk)
	}
}

// Lookup returns the primary-key values stored under a stringified
// column value.
func (idx *Index) Lookup(key string) []core.Value {
	return idx.Entries[key]
}

func indexDir(table string) string {
	return path.Join(indexesDir, table)
}

func indexFile(table, column string) string {
	return path.Join(indexesDir, table, column+".json")
}

// saveIndex writes the index file. Only the entry mapping is
// persisted; table and column are implied by the file path.
func (m *IndexedManager) saveIndex(idx *Index) error {
	data, err := json.MarshalIndent(idx.Entries, "", "  ")
	if err != nil {
		return &core.StorageError{Op: "encode index " + idx.Table + "." + idx.Column, Err: err}
	}
	file := indexFile(idx.Table, idx.Column)
	if err := util.WriteFile(m.base.fs, file, data, 0644); err != nil {
		return &core.StorageError{Op: "write index " + file, Err: err}
	}
	return nil
}

// loadIndex reads an index file back. A missing file yields an empty
// index.
func (m *IndexedManager) loadIndex(table, column string) (*Index, error) {
	idx := NewIndex(table, column)
	data, err := util.ReadFile(m.base.fs, indexFile(table, column))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return idx, nil
		}
		return nil, &core.StorageError{Op: "read index " + indexFile(table, column), Err: err}
	}
	if err := json.Unmarshal(data, &idx.Entries); err != nil {
		return nil, &core.StorageError{Op: "decode index " + indexFile(table, column), Err: err}
	}
	return idx, nil
}
