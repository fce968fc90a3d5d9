package ps

import (
	"github.com/go-git/go-billy/v6/util"

	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/sql"
)

// IndexedManager wraps a FileManager and keeps a primary-key equality
// index per table, rebuilt after every mutation. Single-condition
// equality selects consult the index; everything else delegates to
// the base manager.
type IndexedManager struct {
	base *FileManager
}

func NewIndexedManager(base *FileManager) *IndexedManager {
	return &IndexedManager{base: base}
}

// rebuildIndex recomputes the index on column from the table's
// current rows and rewrites its file. Tables without a primary key
// carry no indexes.
func (m *IndexedManager) rebuildIndex(t *core.Table, column string) error {
	pk := t.PrimaryKey()
	if pk == nil {
		return nil
	}
	idx := NewIndex(t.Name, column)
	idx.Build(t.Rows, pk.Name)
	return m.saveIndex(idx)
}

// refreshPrimaryIndex rebuilds the primary-key index after a
// mutation.
func (m *IndexedManager) refreshPrimaryIndex(table string) error {
	t, err := m.base.GetTable(table)
	if err != nil {
		return err
	}
	pk := t.PrimaryKey()
	if pk == nil {
		return nil
	}
	return m.rebuildIndex(t, pk.Name)
}

func (m *IndexedManager) CreateTable(table core.Table) error {
	if err := m.base.CreateTable(table); err != nil {
		return err
	}
	return m.refreshPrimaryIndex(table.Name)
}

func (m *IndexedManager) DropTable(name string) (bool, error) {
	dropped, err := m.base.DropTable(name)
	if err != nil || !dropped {
		return dropped, err
	}
	// Index files are derived data; a failure to clean them up does
	// not fail the drop.
	_ = util.RemoveAll(m.base.fs, indexDir(name))
	return true, nil
}

func (m *IndexedManager) GetTable(name string) (*core.Table, error) {
	return m.base.GetTable(name)
}

func (m *IndexedManager) TableNames() ([]string, error) {
	return m.base.TableNames()
}

func (m *IndexedManager) TableExists(name string) (bool, error) {
	return m.base.TableExists(name)
}

func (m *IndexedManager) InsertData(table string, rows []core.Row) (int, error) {
	count, err := m.base.InsertData(table, rows)
	if err != nil {
		return 0, err
	}
	if err := m.refreshPrimaryIndex(table); err != nil {
		return 0, err
	}
	return count, nil
}

func (m *IndexedManager) UpdateData(table string, updates map[string]core.Value, where sql.WhereClause) (int, error) {
	count, err := m.base.UpdateData(table, updates, where)
	if err != nil {
		return 0, err
	}
	if err := m.refreshPrimaryIndex(table); err != nil {
		return 0, err
	}
	return count, nil
}

func (m *IndexedManager) DeleteData(table string, where sql.WhereClause) (int, error) {
	count, err := m.base.DeleteData(table, where)
	if err != nil {
		return 0, err
	}
	if err := m.refreshPrimaryIndex(table); err != nil {
		return 0, err
	}
	return count, nil
}

// SelectData attempts the index fast path: a table with a primary
// key, exactly one condition, no connectives, '=' on a real column.
// Anything else, or an index miss, falls back to the base full scan.
func (m *IndexedManager) SelectData(table string, columns []string, where sql.WhereClause) ([]core.Row, error) {
	t, err := m.base.GetTable(table)
	if err != nil {
		return nil, err
	}

	if pk := t.PrimaryKey(); pk != nil && len(where.Conditions) == 1 && len(where.LogicalOps) == 0 {
		condition := where.Conditions[0]
		if condition.Operator == sql.EqualsOperator && t.Column(condition.Column) != nil {
			rows, hit, err := m.selectByIndex(t, pk.Name, condition)
			if err != nil {
				return nil, err
			}
			if hit {
				return projectRows(rows, columns, t)
			}
		}
	}

	return m.base.SelectData(table, columns, where)
}

// selectByIndex rebuilds the index on the condition column (rebuild
// guarantees freshness), then resolves matching rows through their
// primary keys. hit is false when the index holds no entry for the
// value.
func (m *IndexedManager) selectByIndex(t *core.Table, pkColumn string, condition sql.WhereCondition) ([]core.Row, bool, error) {
	if err := m.rebuildIndex(t, condition.Column); err != nil {
		return nil, false, err
	}
	idx, err := m.loadIndex(t.Name, condition.Column)
	if err != nil {
		return nil, false, err
	}

	pks := idx.Lookup(condition.Value.String())
	if len(pks) == 0 {
		return nil, false, nil
	}

	wanted := make(map[string]bool, len(pks))
	for _, pk := range pks {
		wanted[pk.String()] = true
	}

	matched := make([]core.Row, 0, len(pks))
	for _, row := range t.Rows {
		pk := row[pkColumn]
		if !pk.IsNull() && wanted[pk.String()] {
			matched = append(matched, row)
		}
	}
	return matched, true, nil
}
