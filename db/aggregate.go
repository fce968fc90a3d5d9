package db

import (
	"fmt"
	"strings"

	"github.com/coredb-io/coredb/core"
	"github.com/coredb-io/coredb/sql"
)

// applyGroupBy partitions rows by the grouping columns and computes
// one output row per group: the grouping values first, then one entry
// per select expression keyed by its result name. A non-aggregate
// expression outside the grouping list takes its value from the
// group's first row.
func applyGroupBy(rows []core.Row, groupBy []string, exprs []sql.SelectExpr) ([]core.Row, error) {
	keys := make([]string, 0)
	groups := make(map[string][]core.Row)

	for _, row := range rows {
		key := groupKey(row, groupBy)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	result := make([]core.Row, 0, len(keys))
	for _, key := range keys {
		members := groups[key]
		out := core.Row{}
		for _, column := range groupBy {
			value, _ := resolveColumn(members[0], column)
			out[column] = value
		}
		for _, expr := range exprs {
			name := expr.ResultName()
			if _, ok := out[name]; ok {
				continue
			}
			if expr.IsAggregate() {
				value, err := computeAggregate(members, expr)
				if err != nil {
					return nil, err
				}
				out[name] = value
			} else {
				value, _ := resolveColumn(members[0], expr.Column)
				out[name] = value
			}
		}
		result = append(result, out)
	}
	return result, nil
}

// groupKey encodes the grouping values of a row into a stable string.
func groupKey(row core.Row, groupBy []string) string {
	parts := make([]string, len(groupBy))
	for i, column := range groupBy {
		value, _ := resolveColumn(row, column)
		parts[i] = fmt.Sprintf("%d:%s", value.Kind, value.String())
	}
	return strings.Join(parts, "\x1f")
}

// computeAggregate evaluates one aggregate call over the rows of a
// group. SUM and AVG skip Nulls; an empty SUM or AVG is Integer 0;
// MAX and MIN over nothing are Null.
func computeAggregate(rows []core.Row, expr sql.SelectExpr) (core.Value, error) {
	switch expr.Aggregate {
	case "COUNT":
		return countRows(rows, expr), nil
	case "SUM":
		sum, _, err := sumColumn(rows, expr.Column)
		return sum, err
	case "AVG":
		sum, n, err := sumColumn(rows, expr.Column)
		if err != nil {
			return core.Value{}, err
		}
		if n == 0 {
			return core.NewInteger(0), nil
		}
		return core.NewFloat(sum.AsFloat() / float64(n)), nil
	case "MAX":
		return extremeColumn(rows, expr.Column, 1)
	case "MIN":
		return extremeColumn(rows, expr.Column, -1)
	default:
		return core.Value{}, core.Syntaxf("unknown aggregate function '%s'", expr.Aggregate)
	}
}

func countRows(rows []core.Row, expr sql.SelectExpr) core.Value {
	if expr.AggStar {
		return core.NewInteger(int64(len(rows)))
	}

	if expr.AggDistinct {
		seen := map[string]bool{}
		for _, row := range rows {
			value, _ := resolveColumn(row, expr.Column)
			if value.IsNull() {
				continue
			}
			seen[fmt.Sprintf("%d:%s", value.Kind, value.String())] = true
		}
		return core.NewInteger(int64(len(seen)))
	}

	count := int64(0)
	for _, row := range rows {
		if value, _ := resolveColumn(row, expr.Column); !value.IsNull() {
			count++
		}
	}
	return core.NewInteger(count)
}

// sumColumn adds the non-Null values of a column. The result stays
// Integer while every addend is an Integer and becomes Float once any
// Float appears. Returns the count of values that contributed.
func sumColumn(rows []core.Row, column string) (core.Value, int, error) {
	var intSum int64
	var floatSum float64
	allInts := true
	n := 0

	for _, row := range rows {
		value, _ := resolveColumn(row, column)
		switch value.Kind {
		case core.KindNull:
			continue
		case core.KindInteger:
			intSum += value.Int
			floatSum += float64(value.Int)
		case core.KindFloat:
			allInts = false
			floatSum += value.Float
		default:
			return core.Value{}, 0, &core.TypeMismatchError{
				Left:   value.Kind,
				Right:  core.KindFloat,
				Column: column,
			}
		}
		n++
	}

	if n == 0 || allInts {
		return core.NewInteger(intSum), n, nil
	}
	return core.NewFloat(floatSum), n, nil
}

// extremeColumn finds the maximum (direction > 0) or minimum
// (direction < 0) non-Null value of a column, Null when the group has
// none.
func extremeColumn(rows []core.Row, column string, direction int) (core.Value, error) {
	best := core.Null()
	for _, row := range rows {
		value, _ := resolveColumn(row, column)
		if value.IsNull() {
			continue
		}
		if best.IsNull() {
			best = value
			continue
		}
		cmp, err := value.Compare(best)
		if err != nil {
			return core.Value{}, err
		}
		if direction > 0 && cmp > 0 || direction < 0 && cmp < 0 {
			best = value
		}
	}
	return best, nil
}
