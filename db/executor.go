package db

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/ps"
	"github.com/coredb-io/coredb/sql"
)

// Executor interprets parsed statements against a storage manager.
type Executor struct {
	storage ps.Manager
}

func NewExecutor(storage ps.Manager) *Executor {
	return &Executor{storage: storage}
}

// Storage exposes the underlying manager for host-level inspection
// (table listings, snapshots).
func (e *Executor) Storage() ps.Manager {
	return e.storage
}

// Execute parses and runs one SQL statement. Every failure, from
// syntax errors to storage faults, comes back as a failed QueryResult
// rather than an error.
func (e *Executor) Execute(query string) QueryResult {
	start := time.Now()

	statement, err := sql.NewParser(query).Parse()
	if err != nil {
		return failedResult(err, start)
	}

	result, err := e.ExecuteStatement(statement)
	if err != nil {
		return failedResult(err, start)
	}
	result.ExecutionTime = time.Since(start)
	return result
}

// ExecuteStatement runs an already-parsed statement.
func (e *Executor) ExecuteStatement(statement sql.Statement) (QueryResult, error) {
	switch statement.Type() {
	case sql.CreateTableStatementType:
		return e.executeCreateTable(statement.(sql.CreateTableStatement))
	case sql.InsertStatementType:
		return e.executeInsert(statement.(sql.InsertStatement))
	case sql.SelectStatementType:
		return e.executeSelect(statement.(sql.SelectStatement))
	case sql.UpdateStatementType:
		return e.executeUpdate(statement.(sql.UpdateStatement))
	case sql.DeleteStatementType:
		return e.executeDelete(statement.(sql.DeleteStatement))
	case sql.DropTableStatementType:
		return e.executeDropTable(statement.(sql.DropTableStatement))
	default:
		return QueryResult{}, core.Syntaxf("unsupported statement type %d", statement.Type())
	}
}

func failedResult(err error, start time.Time) QueryResult {
	message := err.Error()
	if !core.IsEngineError(err) {
		message = "Unexpected error: " + message
	}
	return QueryResult{
		Success:       false,
		Message:       message,
		ExecutionTime: time.Since(start),
	}
}

func (e *Executor) executeCreateTable(statement sql.CreateTableStatement) (QueryResult, error) {
	table := core.Table{Name: statement.Table, Columns: statement.Columns}
	if err := e.storage.CreateTable(table); err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Success: true,
		Message: fmt.Sprintf("Table '%s' created successfully", statement.Table),
	}, nil
}

func (e *Executor) executeInsert(statement sql.InsertStatement) (QueryResult, error) {
	columns := statement.Columns
	if len(columns) == 0 {
		table, err := e.storage.GetTable(statement.Table)
		if err != nil {
			return QueryResult{}, err
		}
		columns = table.ColumnNames()
	}

	// Validate every tuple before anything is written.
	rows := make([]core.Row, 0, len(statement.Values))
	for _, tuple := range statement.Values {
		if len(tuple) != len(columns) {
			return QueryResult{}, &core.CardinalityError{Columns: len(columns), Values: len(tuple)}
		}
		row := make(core.Row, len(columns))
		for i, column := range columns {
			row[column] = tuple[i]
		}
		rows = append(rows, row)
	}

	count, err := e.storage.InsertData(statement.Table, rows)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Success:      true,
		Message:      fmt.Sprintf("Inserted %d row(s) into '%s'", count, statement.Table),
		AffectedRows: count,
	}, nil
}

func (e *Executor) executeUpdate(statement sql.UpdateStatement) (QueryResult, error) {
	updates := make(map[string]core.Value, len(statement.Updates))
	for _, set := range statement.Updates {
		updates[set.Column] = set.Value
	}

	count, err := e.storage.UpdateData(statement.Table, updates, statement.Where)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Success:      true,
		Message:      fmt.Sprintf("Updated %d row(s) in '%s'", count, statement.Table),
		AffectedRows: count,
	}, nil
}

func (e *Executor) executeDelete(statement sql.DeleteStatement) (QueryResult, error) {
	count, err := e.storage.DeleteData(statement.Table, statement.Where)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d row(s) from '%s'", count, statement.Table),
		AffectedRows: count,
	}, nil
}

func (e *Executor) executeDropTable(statement sql.DropTableStatement) (QueryResult, error) {
	dropped, err := e.storage.DropTable(statement.Table)
	if err != nil {
		return QueryResult{}, err
	}
	if !dropped {
		return QueryResult{}, &core.TableNotFoundError{Table: statement.Table}
	}
	return QueryResult{
		Success: true,
		Message: fmt.Sprintf("Table '%s' dropped successfully", statement.Table),
	}, nil
}

// executeSelect runs the SELECT pipeline in fixed order: joins or base
// fetch with WHERE, then GROUP BY, HAVING, ORDER BY, LIMIT,
// projection, and DISTINCT last.
func (e *Executor) executeSelect(statement sql.SelectStatement) (QueryResult, error) {
	var rows []core.Row
	var err error

	if len(statement.Joins) > 0 {
		rows, err = e.executeJoins(statement)
	} else {
		rows, err = e.fetchBaseRows(statement)
	}
	if err != nil {
		return QueryResult{}, err
	}

	grouped := len(statement.GroupBy) > 0
	if grouped {
		rows, err = applyGroupBy(rows, statement.GroupBy, statement.Exprs)
		if err != nil {
			return QueryResult{}, err
		}
	}

	if !statement.Having.Empty() {
		rows, err = filterRows(rows, statement.Having)
		if err != nil {
			return QueryResult{}, err
		}
	}

	if len(statement.OrderBy) > 0 {
		rows, err = applyOrderBy(rows, statement.OrderBy)
		if err != nil {
			return QueryResult{}, err
		}
	}

	if statement.Limit > 0 && statement.Limit < len(rows) {
		rows = rows[:statement.Limit]
	}

	// Joined and grouped results are already column-shaped.
	if !grouped && len(statement.Joins) == 0 && !statement.Star {
		rows = projectRows(rows, statement.Exprs)
	}

	if statement.Distinct {
		rows = applyDistinct(rows)
	}

	columns, err := e.resultColumns(statement, rows)
	if err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Success:      true,
		Message:      fmt.Sprintf("Selected %d row(s)", len(rows)),
		Columns:      columns,
		Rows:         rows,
		AffectedRows: len(rows),
	}, nil
}

// fetchBaseRows loads the base table for a join-free SELECT, applies
// the alias, and filters by WHERE. The filter is pushed down to the
// storage manager when no alias rewrites the keys, so an equality
// index can serve it.
func (e *Executor) fetchBaseRows(statement sql.SelectStatement) ([]core.Row, error) {
	if statement.TableAlias == "" {
		return e.storage.SelectData(statement.Table, nil, statement.Where)
	}

	rows, err := e.storage.SelectData(statement.Table, nil, sql.WhereClause{})
	if err != nil {
		return nil, err
	}
	rows = applyAlias(rows, statement.TableAlias)
	return filterRows(rows, statement.Where)
}

// applyAlias prefixes every column key with "alias.".
func applyAlias(rows []core.Row, alias string) []core.Row {
	aliased := make([]core.Row, len(rows))
	for i, row := range rows {
		out := make(core.Row, len(row))
		for column, value := range row {
			out[alias+"."+column] = value
		}
		aliased[i] = out
	}
	return aliased
}

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

// resolveColumn finds a column value in a row: exact key first, then
// an "any-table.column" suffix match, then the bare column name of a
// qualified reference. Suffix candidates are scanned in sorted key
// order so resolution is deterministic.
func resolveColumn(row core.Row, ref string) (core.Value, bool) {
	if value, ok := row[ref]; ok {
		return value, true
	}

	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.HasSuffix(key, "."+ref) {
			return row[key], true
		}
	}

	if i := strings.LastIndex(ref, "."); i >= 0 {
		bare := ref[i+1:]
		if value, ok := row[bare]; ok {
			return value, true
		}
		for _, key := range keys {
			if strings.HasSuffix(key, "."+bare) {
				return row[key], true
			}
		}
	}

	return core.Null(), false
}

// projectRows shapes rows to the select list. Aliased expressions
// always produce their key, Null when unresolved; plain references
// are included only when they resolve; aggregate calls without a
// surrounding GROUP BY resolve to nothing and are skipped.
func projectRows(rows []core.Row, exprs []sql.SelectExpr) []core.Row {
	projected := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		out := core.Row{}
		for _, expr := range exprs {
			if expr.IsAggregate() {
				continue
			}
			value, found := resolveColumn(row, expr.Column)
			if expr.Alias != "" {
				out[expr.Alias] = value
			} else if found {
				out[expr.Column] = value
			}
		}
		projected = append(projected, out)
	}
	return projected
}

// applyOrderBy stable-sorts rows by the named columns, honoring the
// per-column direction. Null sorts before any value.
func applyOrderBy(rows []core.Row, orderBy []sql.OrderByClause) ([]core.Row, error) {
	sorted := make([]core.Row, len(rows))
	copy(sorted, rows)

	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, clause := range orderBy {
			a := sorted[i][clause.Column]
			b := sorted[j][clause.Column]

			cmp, err := compareForSort(a, b)
			if err != nil && sortErr == nil {
				sortErr = err
			}
			if cmp == 0 {
				continue
			}
			if clause.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}

// compareForSort orders two values for ORDER BY, placing Null first.
func compareForSort(a, b core.Value) (int, error) {
	switch {
	case a.IsNull() && b.IsNull():
		return 0, nil
	case a.IsNull():
		return -1, nil
	case b.IsNull():
		return 1, nil
	}
	return a.Compare(b)
}

// applyDistinct removes duplicate rows by full content equality,
// keeping the first occurrence.
func applyDistinct(rows []core.Row) []core.Row {
	seen := make(map[string]bool, len(rows))
	result := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, row)
	}
	return result
}

// rowKey builds an order-independent content key for a row.
func rowKey(row core.Row) string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var b strings.Builder
	for _, column := range columns {
		value := row[column]
		fmt.Fprintf(&b, "%s=%d:%s\x1f", column, value.Kind, value.String())
	}
	return b.String()
}

// resultColumns derives the display/serialization column order for
// the final rows.
func (e *Executor) resultColumns(statement sql.SelectStatement, rows []core.Row) ([]string, error) {
	grouped := len(statement.GroupBy) > 0

	switch {
	case grouped:
		columns := append([]string{}, statement.GroupBy...)
		for _, expr := range statement.Exprs {
			name := expr.ResultName()
			if !containsString(columns, name) {
				columns = append(columns, name)
			}
		}
		return columns, nil

	case statement.Star:
		if len(statement.Joins) > 0 || statement.TableAlias != "" {
			return unionColumns(rows), nil
		}
		table, err := e.storage.GetTable(statement.Table)
		if err != nil {
			return nil, err
		}
		return table.ColumnNames(), nil

	default:
		columns := make([]string, 0, len(statement.Exprs))
		for _, expr := range statement.Exprs {
			if expr.IsAggregate() {
				// Without GROUP BY an aggregate produces no column.
				continue
			}
			columns = append(columns, expr.ResultName())
		}
		return columns, nil
	}
}

// unionColumns collects every key present in the rows, sorted.
func unionColumns(rows []core.Row) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for column := range row {
			seen[column] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for column := range seen {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
