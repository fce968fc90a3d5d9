package ps

import (
	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/sql"
)

// Manager is the storage contract the executor runs against. Mutating
// calls are all-or-nothing: a rejected statement leaves the stored
// rows untouched.
type Manager interface {
	// CreateTable persists a new table. Fails with TableExistsError
	// when the name is taken.
	CreateTable(table core.Table) error

	// DropTable removes a table and reports whether it existed.
	DropTable(name string) (bool, error)

	// GetTable loads a table's schema and rows. Fails with
	// TableNotFoundError when absent.
	GetTable(name string) (*core.Table, error)

	// TableNames lists the stored tables in sorted order.
	TableNames() ([]string, error)

	// TableExists reports whether a table is stored.
	TableExists(name string) (bool, error)

	// InsertData appends rows and returns the number inserted.
	InsertData(table string, rows []core.Row) (int, error)

	// SelectData returns the table's rows, optionally WHERE-filtered
	// and projected to the named columns.
	SelectData(table string, columns []string, where sql.WhereClause) ([]core.Row, error)

	// UpdateData applies the set clause to every matching row and
	// returns the number updated.
	UpdateData(table string, updates map[string]core.Value, where sql.WhereClause) (int, error)

	// DeleteData removes every matching row and returns the number
	// removed.
	DeleteData(table string, where sql.WhereClause) (int, error)
}
