package ps

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"

	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/sql"
)

const schemaFile = "schema.json"

// tableSchema is the persisted form of one table's metadata inside
// schema.json.
type tableSchema struct {
	Columns []core.Column `json:"columns"`
}

// FileManager stores tables on a billy filesystem: schema.json for
// metadata plus one tables/<table>.json per table. Row files live in
// their own directory so a table named "schema" cannot clobber the
// metadata file.
type FileManager struct {
	fs billy.Filesystem
	mu sync.RWMutex
}

// NewFileManager returns a manager backed by a directory on disk.
func NewFileManager(path string) *FileManager {
	return &FileManager{fs: osfs.New(path)}
}

// NewMemoryManager returns a manager backed by an in-memory
// filesystem. Nothing survives the process.
func NewMemoryManager() *FileManager {
	return &FileManager{fs: memfs.New()}
}

func (m *FileManager) loadSchema() (map[string]tableSchema, error) {
	data, err := util.ReadFile(m.fs, schemaFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]tableSchema{}, nil
		}
		return nil, &core.StorageError{Op: "read schema", Err: err}
	}
	schema := map[string]tableSchema{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, &core.StorageError{Op: "decode schema", Err: err}
	}
	return schema, nil
}

func (m *FileManager) saveSchema(schema map[string]tableSchema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return &core.StorageError{Op: "encode schema", Err: err}
	}
	if err := util.WriteFile(m.fs, schemaFile, data, 0644); err != nil {
		return &core.StorageError{Op: "write schema", Err: err}
	}
	return nil
}

func rowsFile(table string) string {
	return "tables/" + table + ".json"
}

func (m *FileManager) loadRows(table string) ([]core.Row, error) {
	data, err := util.ReadFile(m.fs, rowsFile(table))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []core.Row{}, nil
		}
		return nil, &core.StorageError{Op: "read table " + table, Err: err}
	}
	var rows []core.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &core.StorageError{Op: "decode table " + table, Err: err}
	}
	return rows, nil
}

func (m *FileManager) saveRows(table string, rows []core.Row) error {
	if rows == nil {
		rows = []core.Row{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return &core.StorageError{Op: "encode table " + table, Err: err}
	}
	if err := util.WriteFile(m.fs, rowsFile(table), data, 0644); err != nil {
		return &core.StorageError{Op: "write table " + table, Err: err}
	}
	return nil
}

func (m *FileManager) CreateTable(table core.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	schema, err := m.loadSchema()
	if err != nil {
		return err
	}
	if _, exists := schema[table.Name]; exists {
		return &core.TableExistsError{Table: table.Name}
	}

	schema[table.Name] = tableSchema{Columns: table.Columns}
	if err := m.saveSchema(schema); err != nil {
		return err
	}
	return m.saveRows(table.Name, table.Rows)
}

func (m *FileManager) DropTable(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	schema, err := m.loadSchema()
	if err != nil {
		return false, err
	}
	if _, exists := schema[name]; !exists {
		return false, nil
	}

	delete(schema, name)
	if err := m.saveSchema(schema); err != nil {
		return false, err
	}
	if err := m.fs.Remove(rowsFile(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, &core.StorageError{Op: "remove table " + name, Err: err}
	}
	return true, nil
}

func (m *FileManager) GetTable(name string) (*core.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getTable(name)
}

func (m *FileManager) getTable(name string) (*core.Table, error) {
	schema, err := m.loadSchema()
	if err != nil {
		return nil, err
	}
	meta, exists := schema[name]
	if !exists {
		return nil, &core.TableNotFoundError{Table: name}
	}
	rows, err := m.loadRows(name)
	if err != nil {
		return nil, err
	}
	return &core.Table{Name: name, Columns: meta.Columns, Rows: rows}, nil
}

func (m *FileManager) TableNames() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	schema, err := m.loadSchema()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *FileManager) TableExists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	schema, err := m.loadSchema()
	if err != nil {
		return false, err
	}
	_, exists := schema[name]
	return exists, nil
}

func (m *FileManager) InsertData(table string, rows []core.Row) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.getTable(table)
	if err != nil {
		return 0, err
	}
	if err := m.saveRows(table, append(t.Rows, rows...)); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (m *FileManager) SelectData(table string, columns []string, where sql.WhereClause) ([]core.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.getTable(table)
	if err != nil {
		return nil, err
	}
	matched, err := filterRows(t.Rows, where)
	if err != nil {
		return nil, err
	}
	return projectRows(matched, columns, t)
}

func (m *FileManager) UpdateData(table string, updates map[string]core.Value, where sql.WhereClause) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.getTable(table)
	if err != nil {
		return 0, err
	}

	// Evaluate and mutate in memory first so a condition error never
	// leaves a partial update behind.
	count := 0
	for i := range t.Rows {
		matched, err := where.Matches(t.Rows[i])
		if err != nil {
			return 0, err
		}
		if !matched {
			continue
		}
		for column, value := range updates {
			t.Rows[i][column] = value
		}
		count++
	}

	if err := m.saveRows(table, t.Rows); err != nil {
		return 0, err
	}
	return count, nil
}

func (m *FileManager) DeleteData(table string, where sql.WhereClause) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.getTable(table)
	if err != nil {
		return 0, err
	}

	kept := make([]core.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		matched, err := where.Matches(row)
		if err != nil {
			return 0, err
		}
		if !matched {
			kept = append(kept, row)
		}
	}

	if err := m.saveRows(table, kept); err != nil {
		return 0, err
	}
	return len(t.Rows) - len(kept), nil
}

// filterRows returns the rows matching the clause.
func filterRows(rows []core.Row, where sql.WhereClause) ([]core.Row, error) {
	if where.Empty() {
		return rows, nil
	}
	matched := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		ok, err := where.Matches(row)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// projectRows narrows rows to the named columns, validating each name
// against the table schema. Columns a row does not populate read as
// Null. An empty column list returns the rows unchanged.
func projectRows(rows []core.Row, columns []string, t *core.Table) ([]core.Row, error) {
	if len(columns) == 0 {
		return rows, nil
	}
	for _, column := range columns {
		if t.Column(column) == nil {
			return nil, &core.ColumnNotFoundError{Column: column, Table: t.Name}
		}
	}
	projected := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		out := make(core.Row, len(columns))
		for _, column := range columns {
			out[column] = row[column]
		}
		projected = append(projected, out)
	}
	return projected, nil
}
