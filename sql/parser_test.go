package sql

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coredb-io/coredb/core"
)

func TestParseCreateTable(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want Statement
	}{
		{
			name: "basic table",
			sql:  "CREATE TABLE users (id INT PRIMARY KEY, name TEXT, age INT)",
			want: CreateTableStatement{
				Table: "users",
				Columns: []core.Column{
					{Name: "id", Type: core.IntType, Nullable: true, PrimaryKey: true},
					{Name: "name", Type: core.TextType, Nullable: true},
					{Name: "age", Type: core.IntType, Nullable: true},
				},
			},
		},
		{
			name: "not null and foreign key",
			sql:  "CREATE TABLE orders (id INT PRIMARY KEY, user_id INT NOT NULL REFERENCES users(id), amount FLOAT)",
			want: CreateTableStatement{
				Table: "orders",
				Columns: []core.Column{
					{Name: "id", Type: core.IntType, Nullable: true, PrimaryKey: true},
					{Name: "user_id", Type: core.IntType, Nullable: false, ForeignKey: &core.ForeignKey{
						Column:           "user_id",
						ReferencedTable:  "users",
						ReferencedColumn: "id",
					}},
					{Name: "amount", Type: core.FloatType, Nullable: true},
				},
			},
		},
		{
			name: "boolean column",
			sql:  "create table flags (id int primary key, active boolean)",
			want: CreateTableStatement{
				Table: "flags",
				Columns: []core.Column{
					{Name: "id", Type: core.IntType, Nullable: true, PrimaryKey: true},
					{Name: "active", Type: core.BoolType, Nullable: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.sql).Parse()
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.sql, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestParseInsert(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want Statement
	}{
		{
			name: "explicit columns multiple tuples",
			sql:  "INSERT INTO users (id, name, age) VALUES (1, 'Alice', 30), (2, 'Bob', 25)",
			want: InsertStatement{
				Table:   "users",
				Columns: []string{"id", "name", "age"},
				Values: [][]core.Value{
					{core.NewInteger(1), core.NewText("Alice"), core.NewInteger(30)},
					{core.NewInteger(2), core.NewText("Bob"), core.NewInteger(25)},
				},
			},
		},
		{
			name: "no column list",
			sql:  "INSERT INTO users VALUES (1, 'Alice', 30)",
			want: InsertStatement{
				Table: "users",
				Values: [][]core.Value{
					{core.NewInteger(1), core.NewText("Alice"), core.NewInteger(30)},
				},
			},
		},
		{
			name: "null float bool and negative literals",
			sql:  "INSERT INTO m (a, b, c, d) VALUES (NULL, 1.5, TRUE, -3)",
			want: InsertStatement{
				Table:   "m",
				Columns: []string{"a", "b", "c", "d"},
				Values: [][]core.Value{
					{core.Null(), core.NewFloat(1.5), core.NewBoolean(true), core.NewInteger(-3)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.sql).Parse()
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.sql, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want Statement
	}{
		{
			name: "star",
			sql:  "SELECT * FROM users",
			want: SelectStatement{Table: "users", Star: true},
		},
		{
			name: "columns with where",
			sql:  "SELECT name FROM users WHERE age > 26",
			want: SelectStatement{
				Table: "users",
				Exprs: []SelectExpr{{Column: "name"}},
				Where: WhereClause{
					Conditions: []WhereCondition{
						{Column: "age", Operator: GreaterThanOperator, Value: core.NewInteger(26)},
					},
				},
			},
		},
		{
			name: "flat and or fold",
			sql:  "SELECT * FROM t WHERE a = 1 OR b = 2 AND c = 3",
			want: SelectStatement{
				Table: "t",
				Star:  true,
				Where: WhereClause{
					Conditions: []WhereCondition{
						{Column: "a", Operator: EqualsOperator, Value: core.NewInteger(1)},
						{Column: "b", Operator: EqualsOperator, Value: core.NewInteger(2)},
						{Column: "c", Operator: EqualsOperator, Value: core.NewInteger(3)},
					},
					LogicalOps: []LogicalOperator{LogicalOr, LogicalAnd},
				},
			},
		},
		{
			name: "between",
			sql:  "SELECT * FROM t WHERE age BETWEEN 18 AND 30",
			want: SelectStatement{
				Table: "t",
				Star:  true,
				Where: WhereClause{
					Conditions: []WhereCondition{
						{
							Column:   "age",
							Operator: BetweenOperator,
							Low:      core.NewInteger(18),
							High:     core.NewInteger(30),
						},
					},
				},
			},
		},
		{
			name: "group by having order by limit",
			sql:  "SELECT age, COUNT(*) AS n FROM users GROUP BY age HAVING n > 1 ORDER BY age DESC, n LIMIT 5",
			want: SelectStatement{
				Table: "users",
				Exprs: []SelectExpr{
					{Column: "age"},
					{Aggregate: "COUNT", AggStar: true, Alias: "n"},
				},
				GroupBy: []string{"age"},
				Having: WhereClause{
					Conditions: []WhereCondition{
						{Column: "n", Operator: GreaterThanOperator, Value: core.NewInteger(1)},
					},
				},
				OrderBy: []OrderByClause{
					{Column: "age", Descending: true},
					{Column: "n"},
				},
				Limit: 5,
			},
		},
		{
			name: "having on raw aggregate text",
			sql:  "SELECT city, COUNT(*) FROM users GROUP BY city HAVING COUNT(*) >= 2",
			want: SelectStatement{
				Table: "users",
				Exprs: []SelectExpr{
					{Column: "city"},
					{Aggregate: "COUNT", AggStar: true},
				},
				GroupBy: []string{"city"},
				Having: WhereClause{
					Conditions: []WhereCondition{
						{Column: "COUNT(*)", Operator: GreaterThanOrEqualOperator, Value: core.NewInteger(2)},
					},
				},
			},
		},
		{
			name: "aggregates",
			sql:  "SELECT COUNT(DISTINCT city), SUM(amount) AS total, AVG(age), MIN(age), MAX(age) FROM users",
			want: SelectStatement{
				Table: "users",
				Exprs: []SelectExpr{
					{Aggregate: "COUNT", AggDistinct: true, Column: "city"},
					{Aggregate: "SUM", Column: "amount", Alias: "total"},
					{Aggregate: "AVG", Column: "age"},
					{Aggregate: "MIN", Column: "age"},
					{Aggregate: "MAX", Column: "age"},
				},
			},
		},
		{
			name: "left join with aliases",
			sql:  "SELECT a.name, b.amount FROM users a LEFT JOIN orders b ON a.id = b.user_id",
			want: SelectStatement{
				Table:      "users",
				TableAlias: "a",
				Exprs: []SelectExpr{
					{Column: "a.name"},
					{Column: "b.amount"},
				},
				Joins: []JoinClause{
					{
						Type:       "LEFT",
						Table:      "orders",
						TableAlias: "b",
						On:         &JoinCondition{Left: "a.id", Operator: EqualsOperator, Right: "b.user_id"},
					},
				},
			},
		},
		{
			name: "full outer join without on",
			sql:  "SELECT * FROM a FULL OUTER JOIN b",
			want: SelectStatement{
				Table: "a",
				Star:  true,
				Joins: []JoinClause{{Type: "FULL OUTER", Table: "b"}},
			},
		},
		{
			name: "distinct",
			sql:  "SELECT DISTINCT city FROM users",
			want: SelectStatement{
				Table:    "users",
				Distinct: true,
				Exprs:    []SelectExpr{{Column: "city"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.sql).Parse()
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.sql, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestParseUpdateDeleteDrop(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want Statement
	}{
		{
			name: "update with where",
			sql:  "UPDATE users SET age = 31, name = 'Alicia' WHERE id = 1",
			want: UpdateStatement{
				Table: "users",
				Updates: []SetClause{
					{Column: "age", Value: core.NewInteger(31)},
					{Column: "name", Value: core.NewText("Alicia")},
				},
				Where: WhereClause{
					Conditions: []WhereCondition{
						{Column: "id", Operator: EqualsOperator, Value: core.NewInteger(1)},
					},
				},
			},
		},
		{
			name: "update without where",
			sql:  "UPDATE users SET age = 0",
			want: UpdateStatement{
				Table:   "users",
				Updates: []SetClause{{Column: "age", Value: core.NewInteger(0)}},
			},
		},
		{
			name: "delete with where",
			sql:  "DELETE FROM users WHERE id = 2",
			want: DeleteStatement{
				Table: "users",
				Where: WhereClause{
					Conditions: []WhereCondition{
						{Column: "id", Operator: EqualsOperator, Value: core.NewInteger(2)},
					},
				},
			},
		},
		{
			name: "drop table",
			sql:  "DROP TABLE users",
			want: DropTableStatement{Table: "users"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.sql).Parse()
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.sql, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"SELEKT * FROM users",
		"SELECT FROM users",
		"SELECT * users",
		"INSERT users VALUES (1)",
		"INSERT INTO users (id VALUES (1)",
		"UPDATE users age = 1",
		"DELETE users",
		"CREATE users (id INT)",
		"CREATE TABLE users (id WIBBLE)",
		"DROP users",
		"SELECT * FROM t WHERE age >",
		"SELECT * FROM t WHERE age BETWEEN 1 OR 2",
		"SELECT FOO(age) FROM t",
		"SELECT * FROM t LIMIT 5 garbage",
		"SELECT * FROM t alias garbage",
		"SELECT * FROM t WHERE id = 1 1",
		"INSERT INTO t (id) VALUES (1) garbage",
		"UPDATE t SET id = 1 garbage",
		"DELETE FROM t garbage",
		"CREATE TABLE t (id INT) garbage",
		"DROP TABLE t garbage",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			_, err := NewParser(sql).Parse()
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", sql)
			}
			if _, ok := err.(*core.SyntaxError); !ok {
				t.Errorf("Parse(%q) error = %T, want *core.SyntaxError", sql, err)
			}
		})
	}
}
