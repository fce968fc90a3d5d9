package sql

import (
	"strings"

	"github.com/coredb-io/coredb/core"
)

type StatementType int

const (
	SelectStatementType StatementType = iota
	InsertStatementType
	UpdateStatementType
	DeleteStatementType
	CreateTableStatementType
	DropTableStatementType
)

type Statement interface {
	Type() StatementType
}

type SelectStatement struct {
	Table      string
	TableAlias string
	Star       bool
	Exprs      []SelectExpr
	Joins      []JoinClause
	Distinct   bool
	Where      WhereClause
	GroupBy    []string
	Having     WhereClause
	OrderBy    []OrderByClause
	Limit      int
}

// SelectExpr is one entry of a SELECT column list: either a plain
// column reference (possibly table-qualified) or an aggregate call.
type SelectExpr struct {
	Column      string
	Aggregate   string // COUNT, SUM, AVG, MIN, MAX; empty for a plain column
	AggStar     bool   // COUNT(*)
	AggDistinct bool   // COUNT(DISTINCT col)
	Alias       string
}

// IsAggregate reports whether the expression is an aggregate call.
func (e SelectExpr) IsAggregate() bool { return e.Aggregate != "" }

// ResultName is the key the expression produces in result rows: the
// alias when present, otherwise the column name or the raw call text.
func (e SelectExpr) ResultName() string {
	if e.Alias != "" {
		return e.Alias
	}
	if !e.IsAggregate() {
		return e.Column
	}
	var b strings.Builder
	b.WriteString(e.Aggregate)
	b.WriteString("(")
	if e.AggStar {
		b.WriteString("*")
	} else {
		if e.AggDistinct {
			b.WriteString("DISTINCT ")
		}
		b.WriteString(e.Column)
	}
	b.WriteString(")")
	return b.String()
}

type JoinClause struct {
	Type       string // INNER, LEFT, RIGHT, FULL OUTER
	Table      string
	TableAlias string
	On         *JoinCondition
}

// JoinCondition relates a column of the running result to a column of
// the joined table. Both sides are column references, usually
// table-qualified.
type JoinCondition struct {
	Left     string
	Operator WhereOperator
	Right    string
}

type InsertStatement struct {
	Table   string
	Columns []string
	Values  [][]core.Value
}

type UpdateStatement struct {
	Table   string
	Updates []SetClause
	Where   WhereClause
}

type SetClause struct {
	Column string
	Value  core.Value
}

type DeleteStatement struct {
	Table string
	Where WhereClause
}

type CreateTableStatement struct {
	Table   string
	Columns []core.Column
}

type DropTableStatement struct {
	Table string
}

// WhereClause is a flat list of conditions joined by logical
// connectives, evaluated strictly left-to-right. LogicalOps always
// holds one operator fewer than Conditions.
type WhereClause struct {
	Conditions []WhereCondition
	LogicalOps []LogicalOperator
}

// Empty reports whether the clause has no conditions.
func (w WhereClause) Empty() bool { return len(w.Conditions) == 0 }

type LogicalOperator int

const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
)

type WhereCondition struct {
	Column   string
	Operator WhereOperator
	Value    core.Value
	Low      core.Value // BETWEEN lower bound
	High     core.Value // BETWEEN upper bound
}

type WhereOperator int

const (
	EqualsOperator WhereOperator = iota
	NotEqualsOperator
	LessThanOperator
	GreaterThanOperator
	LessThanOrEqualOperator
	GreaterThanOrEqualOperator
	BetweenOperator
)

func (op WhereOperator) String() string {
	switch op {
	case EqualsOperator:
		return "="
	case NotEqualsOperator:
		return "!="
	case LessThanOperator:
		return "<"
	case GreaterThanOperator:
		return ">"
	case LessThanOrEqualOperator:
		return "<="
	case GreaterThanOrEqualOperator:
		return ">="
	case BetweenOperator:
		return "BETWEEN"
	default:
		return "?"
	}
}

type OrderByClause struct {
	Column     string
	Descending bool
}

func (s SelectStatement) Type() StatementType {
	return SelectStatementType
}

func (s InsertStatement) Type() StatementType {
	return InsertStatementType
}

func (s UpdateStatement) Type() StatementType {
	return UpdateStatementType
}

func (s DeleteStatement) Type() StatementType {
	return DeleteStatementType
}

func (s CreateTableStatement) Type() StatementType {
	return CreateTableStatementType
}

func (s DropTableStatement) Type() StatementType {
	return DropTableStatementType
}
