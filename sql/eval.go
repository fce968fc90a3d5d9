package sql

import "github.com/coredb-io/coredb/core"

// Matches evaluates the clause against a row. Every condition is
// evaluated first, then the results are folded across the logical
// operators strictly left-to-right; AND and OR carry no precedence.
// An empty clause matches every row.
func (w WhereClause) Matches(row core.Row) (bool, error) {
	if w.Empty() {
		return true, nil
	}

	results := make([]bool, len(w.Conditions))
	for i, condition := range w.Conditions {
		matched, err := condition.Matches(row)
		if err != nil {
			return false, err
		}
		results[i] = matched
	}

	result := results[0]
	for i, op := range w.LogicalOps {
		if op == LogicalAnd {
			result = result && results[i+1]
		} else {
			result = result || results[i+1]
		}
	}
	return result, nil
}

// Matches evaluates a single condition against a row.
//
// Null handling is two-valued: '=' is true only when both operands are
// Null, '!=' is true when exactly one operand is Null, and every other
// operator involving a Null operand is false.
func (c WhereCondition) Matches(row core.Row) (bool, error) {
	value, ok := row[c.Column]
	if !ok {
		return false, &core.ColumnNotFoundError{Column: c.Column}
	}

	if c.Operator == BetweenOperator {
		return c.matchesRange(value)
	}

	if value.IsNull() || c.Value.IsNull() {
		switch c.Operator {
		case EqualsOperator:
			return value.IsNull() && c.Value.IsNull(), nil
		case NotEqualsOperator:
			return value.IsNull() != c.Value.IsNull(), nil
		default:
			return false, nil
		}
	}

	cmp, err := value.Compare(c.Value)
	if err != nil {
		return false, namedMismatch(err, c.Column)
	}

	switch c.Operator {
	case EqualsOperator:
		return cmp == 0, nil
	case NotEqualsOperator:
		return cmp != 0, nil
	case LessThanOperator:
		return cmp < 0, nil
	case GreaterThanOperator:
		return cmp > 0, nil
	case LessThanOrEqualOperator:
		return cmp <= 0, nil
	case GreaterThanOrEqualOperator:
		return cmp >= 0, nil
	default:
		return false, core.Syntaxf("unsupported operator '%s'", c.Operator)
	}
}

// matchesRange performs the inclusive BETWEEN check.
func (c WhereCondition) matchesRange(value core.Value) (bool, error) {
	if value.IsNull() || c.Low.IsNull() || c.High.IsNull() {
		return false, nil
	}
	low, err := value.Compare(c.Low)
	if err != nil {
		return false, namedMismatch(err, c.Column)
	}
	high, err := value.Compare(c.High)
	if err != nil {
		return false, namedMismatch(err, c.Column)
	}
	return low >= 0 && high <= 0, nil
}

func namedMismatch(err error, column string) error {
	if mismatch, ok := err.(*core.TypeMismatchError); ok {
		return &core.TypeMismatchError{Left: mismatch.Left, Right: mismatch.Right, Column: column}
	}
	return err
}
