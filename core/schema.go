package core

// DataType is the declared column type. Declared types are advisory:
// the engine never coerces stored values to them.
type DataType string

const (
	IntType   DataType = "INT"
	FloatType DataType = "FLOAT"
	TextType  DataType = "TEXT"
	BoolType  DataType = "BOOLEAN"
)

// ForeignKey records a REFERENCES clause. It is metadata only;
// referential integrity is never enforced.
type ForeignKey struct {
	Column           string `json:"column"`
	ReferencedTable  string `json:"referenced_table"`
	ReferencedColumn string `json:"referenced_column"`
}

type Column struct {
	Name       string      `json:"name"`
	Type       DataType    `json:"type"`
	Nullable   bool        `json:"nullable"`
	PrimaryKey bool        `json:"primary_key"`
	ForeignKey *ForeignKey `json:"foreign_key,omitempty"`
}

// Table pairs a schema with its rows as loaded from storage.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"-"`
}

// Column returns the named column definition, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKey returns the first column flagged PRIMARY KEY, or nil when
// the table has none.
func (t *Table) PrimaryKey() *Column {
	for i := range t.Columns {
		if t.Columns[i].PrimaryKey {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the declared column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
