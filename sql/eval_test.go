package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coredb-io/coredb/core"
)

func TestConditionNullHandling(t *testing.T) {
	row := core.Row{"a": core.Null(), "b": core.NewInteger(1)}

	tests := []struct {
		name      string
		condition WhereCondition
		want      bool
	}{
		{
			name:      "equals both null",
			condition: WhereCondition{Column: "a", Operator: EqualsOperator, Value: core.Null()},
			want:      true,
		},
		{
			name:      "equals null vs literal",
			condition: WhereCondition{Column: "a", Operator: EqualsOperator, Value: core.NewInteger(1)},
			want:      false,
		},
		{
			name:      "not equals exactly one null",
			condition: WhereCondition{Column: "a", Operator: NotEqualsOperator, Value: core.NewInteger(1)},
			want:      true,
		},
		{
			name:      "not equals both null",
			condition: WhereCondition{Column: "a", Operator: NotEqualsOperator, Value: core.Null()},
			want:      false,
		},
		{
			name:      "not equals value vs null literal",
			condition: WhereCondition{Column: "b", Operator: NotEqualsOperator, Value: core.Null()},
			want:      true,
		},
		{
			name:      "ordering against null is false",
			condition: WhereCondition{Column: "a", Operator: GreaterThanOperator, Value: core.NewInteger(0)},
			want:      false,
		},
		{
			name:      "between with null operand is false",
			condition: WhereCondition{Column: "a", Operator: BetweenOperator, Low: core.NewInteger(0), High: core.NewInteger(10)},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.condition.Matches(row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConditionBetweenInclusive(t *testing.T) {
	condition := WhereCondition{
		Column:   "age",
		Operator: BetweenOperator,
		Low:      core.NewInteger(18),
		High:     core.NewInteger(30),
	}

	for age, want := range map[int64]bool{17: false, 18: true, 25: true, 30: true, 31: false} {
		got, err := condition.Matches(core.Row{"age": core.NewInteger(age)})
		require.NoError(t, err)
		assert.Equal(t, want, got, "age=%d", age)
	}
}

func TestConditionMissingColumn(t *testing.T) {
	condition := WhereCondition{Column: "nope", Operator: EqualsOperator, Value: core.NewInteger(1)}
	_, err := condition.Matches(core.Row{"a": core.NewInteger(1)})

	var notFound *core.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Column)
}

func TestConditionTypeMismatchNamesColumn(t *testing.T) {
	condition := WhereCondition{Column: "name", Operator: GreaterThanOperator, Value: core.NewInteger(5)}
	_, err := condition.Matches(core.Row{"name": core.NewText("Alice")})

	var mismatch *core.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "name", mismatch.Column)
	assert.Equal(t, core.KindText, mismatch.Left)
	assert.Equal(t, core.KindInteger, mismatch.Right)
}

func TestWhereClauseLeftToRightFold(t *testing.T) {
	// a=1 OR b=2 AND c=3 folds as ((a=1 OR b=2) AND c=3), not with
	// AND binding tighter.
	clause := WhereClause{
		Conditions: []WhereCondition{
			{Column: "a", Operator: EqualsOperator, Value: core.NewInteger(1)},
			{Column: "b", Operator: EqualsOperator, Value: core.NewInteger(2)},
			{Column: "c", Operator: EqualsOperator, Value: core.NewInteger(3)},
		},
		LogicalOps: []LogicalOperator{LogicalOr, LogicalAnd},
	}

	row := core.Row{
		"a": core.NewInteger(1),
		"b": core.NewInteger(0),
		"c": core.NewInteger(0),
	}
	got, err := clause.Matches(row)
	require.NoError(t, err)
	assert.False(t, got, "a matches but c does not, so the trailing AND must reject the row")

	row["c"] = core.NewInteger(3)
	got, err = clause.Matches(row)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestWhereClauseEmptyMatchesAll(t *testing.T) {
	got, err := WhereClause{}.Matches(core.Row{"a": core.NewInteger(1)})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestWhereClauseNumericCrossKindComparison(t *testing.T) {
	clause := WhereClause{
		Conditions: []WhereCondition{
			{Column: "score", Operator: GreaterThanOperator, Value: core.NewInteger(3)},
		},
	}
	got, err := clause.Matches(core.Row{"score": core.NewFloat(3.5)})
	require.NoError(t, err)
	assert.True(t, got)
}
