package db

import (
	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/sql"
)

// executeJoins evaluates the FROM clause of a SELECT with joins:
// the base table and each joined table are fetched and aliased, the
// joins run left to right as nested loops, then WHERE and the select
// list apply to the combined rows.
func (e *Executor) executeJoins(statement sql.SelectStatement) ([]core.Row, error) {
	rows, err := e.fetchJoinSide(statement.Table, statement.TableAlias)
	if err != nil {
		return nil, err
	}

	for _, join := range statement.Joins {
		right, err := e.fetchJoinSide(join.Table, join.TableAlias)
		if err != nil {
			return nil, err
		}
		rows = performJoin(rows, right, join)
	}

	rows, err = filterRows(rows, statement.Where)
	if err != nil {
		return nil, err
	}

	if !statement.Star && len(statement.Exprs) > 0 {
		rows = projectRows(rows, statement.Exprs)
	}
	return rows, nil
}

// fetchJoinSide loads one side of a join. Keys stay bare unless the
// side declares an alias, so unqualified references keep resolving
// the way they do outside a join.
func (e *Executor) fetchJoinSide(table, alias string) ([]core.Row, error) {
	rows, err := e.storage.SelectData(table, nil, sql.WhereClause{})
	if err != nil {
		return nil, err
	}
	if alias == "" {
		return rows, nil
	}
	return applyAlias(rows, alias), nil
}

func performJoin(left, right []core.Row, join sql.JoinClause) []core.Row {
	if join.On == nil {
		return crossProduct(left, right)
	}
	switch join.Type {
	case "LEFT":
		return leftJoin(left, right, *join.On)
	case "RIGHT":
		return rightJoin(left, right, *join.On)
	case "FULL OUTER":
		return fullOuterJoin(left, right, *join.On)
	default:
		return innerJoin(left, right, *join.On)
	}
}

func innerJoin(left, right []core.Row, on sql.JoinCondition) []core.Row {
	var result []core.Row
	for _, l := range left {
		for _, r := range right {
			if evaluateJoinCondition(l, r, on) {
				result = append(result, mergeRows(l, r))
			}
		}
	}
	return result
}

func leftJoin(left, right []core.Row, on sql.JoinCondition) []core.Row {
	var result []core.Row
	for _, l := range left {
		matched := false
		for _, r := range right {
			if evaluateJoinCondition(l, r, on) {
				result = append(result, mergeRows(l, r))
				matched = true
			}
		}
		if !matched {
			result = append(result, mergeRows(l, nullFill(right)))
		}
	}
	return result
}

func rightJoin(left, right []core.Row, on sql.JoinCondition) []core.Row {
	var result []core.Row
	for _, r := range right {
		matched := false
		for _, l := range left {
			if evaluateJoinCondition(l, r, on) {
				result = append(result, mergeRows(l, r))
				matched = true
			}
		}
		if !matched {
			result = append(result, mergeRows(nullFill(left), r))
		}
	}
	return result
}

func fullOuterJoin(left, right []core.Row, on sql.JoinCondition) []core.Row {
	result := leftJoin(left, right, on)
	for _, r := range right {
		matched := false
		for _, l := range left {
			if evaluateJoinCondition(l, r, on) {
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, mergeRows(nullFill(left), r))
		}
	}
	return result
}

func crossProduct(left, right []core.Row) []core.Row {
	result := make([]core.Row, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			result = append(result, mergeRows(l, r))
		}
	}
	return result
}

// mergeRows combines two halves of a joined row. Keys from the right
// side win on collision.
func mergeRows(left, right core.Row) core.Row {
	merged := make(core.Row, len(left)+len(right))
	for column, value := range left {
		merged[column] = value
	}
	for column, value := range right {
		merged[column] = value
	}
	return merged
}

// nullFill builds a row with the key shape of the given side and all
// Null values, for the unmatched half of an outer join. An empty side
// yields an empty row.
func nullFill(side []core.Row) core.Row {
	if len(side) == 0 {
		return core.Row{}
	}
	filled := make(core.Row, len(side[0]))
	for column := range side[0] {
		filled[column] = core.Null()
	}
	return filled
}

// evaluateJoinCondition compares the two referenced columns. Equality
// tolerates mixed kinds; ordered comparisons on mismatched kinds are
// simply false rather than an error, so one odd row cannot sink a
// whole join.
func evaluateJoinCondition(left, right core.Row, on sql.JoinCondition) bool {
	lv, ok := resolveColumn(left, on.Left)
	if !ok {
		lv, _ = resolveColumn(right, on.Left)
	}
	rv, ok := resolveColumn(right, on.Right)
	if !ok {
		rv, _ = resolveColumn(left, on.Right)
	}

	switch on.Operator {
	case sql.EqualsOperator:
		return lv.Equals(rv)
	case sql.NotEqualsOperator:
		return !lv.Equals(rv)
	}

	cmp, err := lv.Compare(rv)
	if err != nil {
		return false
	}
	switch on.Operator {
	case sql.LessThanOperator:
		return cmp < 0
	case sql.LessThanOrEqualOperator:
		return cmp <= 0
	case sql.GreaterThanOperator:
		return cmp > 0
	case sql.GreaterThanOrEqualOperator:
		return cmp >= 0
	}
	return false
}
