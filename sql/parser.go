package sql

import (
	"strconv"
	"strings"

	"github.com/coredb-io/coredb/core"
)

type Parser struct {
	lexer *Lexer
}

func NewParser(sql string) *Parser {
	lexer := NewLexer(sql)
	return &Parser{lexer: lexer}
}

// expectEnd rejects trailing tokens after a complete statement.
func expectEnd(token Token) error {
	if token.Type != EOF {
		return core.Syntaxf("unexpected token '%s' at end of statement", token.Value)
	}
	return nil
}

func (parser *Parser) Parse() (Statement, error) {
	token := parser.lexer.NextToken()
	switch token.Type {
	case Select:
		return ParseSelect(parser)
	case Insert:
		return ParseInsert(parser)
	case Update:
		return ParseUpdate(parser)
	case Delete:
		return ParseDelete(parser)
	case Create:
		return ParseCreate(parser)
	case Drop:
		return ParseDrop(parser)
	default:
		return nil, core.Syntaxf("unknown statement type '%s'", token.Value)
	}
}

func ParseSelect(parser *Parser) (Statement, error) {
	var selectStatement SelectStatement

	token := parser.lexer.NextToken()

	// Check for DISTINCT
	if token.Type == Distinct {
		selectStatement.Distinct = true
		token = parser.lexer.NextToken()
	}

	if token.Type == Wildcard {
		selectStatement.Star = true
		token = parser.lexer.NextToken()
	} else if token.Type == Identifier {
		for {
			if token.Type != Identifier {
				return nil, core.Syntaxf("expected column name in SELECT list")
			}
			expr, err := parseSelectExpr(parser, token)
			if err != nil {
				return nil, err
			}
			selectStatement.Exprs = append(selectStatement.Exprs, expr)

			token = parser.lexer.NextToken()
			if token.Type == Comma {
				token = parser.lexer.NextToken()
				continue
			}
			break
		}
	} else {
		return nil, core.Syntaxf("expected column name, '*' or DISTINCT after SELECT")
	}

	if token.Type != From {
		return nil, core.Syntaxf("expected FROM")
	}

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after FROM")
	}
	selectStatement.Table = token.Value

	token = parser.lexer.NextToken()

	// Check for table alias
	if token.Type == As {
		token = parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, core.Syntaxf("expected alias after AS")
		}
		selectStatement.TableAlias = token.Value
		token = parser.lexer.NextToken()
	} else if token.Type == Identifier {
		// Alias without AS keyword
		selectStatement.TableAlias = token.Value
		token = parser.lexer.NextToken()
	}

	// Parse JOIN clauses
	for token.Type == Join || token.Type == Inner || token.Type == Left || token.Type == Right || token.Type == Full {
		joinClause, err := parseJoin(parser, token)
		if err != nil {
			return nil, err
		}
		selectStatement.Joins = append(selectStatement.Joins, joinClause)
		token = parser.lexer.NextToken()
	}

	// Parse WHERE clause
	if token.Type == Where {
		whereClause, err := ParseWhere(parser)
		if err != nil {
			return nil, err
		}
		selectStatement.Where = whereClause
		token = parser.lexer.NextToken()
	}

	// Parse GROUP BY clause
	if token.Type == Group {
		token = parser.lexer.NextToken()
		if token.Type != By {
			return nil, core.Syntaxf("expected BY after GROUP")
		}
		for {
			token = parser.lexer.NextToken()
			if token.Type != Identifier {
				return nil, core.Syntaxf("expected column name in GROUP BY")
			}
			selectStatement.GroupBy = append(selectStatement.GroupBy, token.Value)

			peek := parser.lexer.PeekToken()
			if peek.Type == Comma {
				parser.lexer.NextToken() // consume comma
				continue
			}
			break
		}
		token = parser.lexer.NextToken()
	}

	// Parse HAVING clause
	if token.Type == Having {
		havingClause, err := ParseWhere(parser)
		if err != nil {
			return nil, err
		}
		selectStatement.Having = havingClause
		token = parser.lexer.NextToken()
	}

	// Parse ORDER BY clause
	if token.Type == Order {
		token = parser.lexer.NextToken()
		if token.Type != By {
			return nil, core.Syntaxf("expected BY after ORDER")
		}
		for {
			token = parser.lexer.NextToken()
			if token.Type != Identifier {
				return nil, core.Syntaxf("expected column name in ORDER BY")
			}
			orderByClause := OrderByClause{Column: token.Value}

			peek := parser.lexer.PeekToken()
			if peek.Type == Asc {
				parser.lexer.NextToken()
				orderByClause.Descending = false
			} else if peek.Type == Desc {
				parser.lexer.NextToken()
				orderByClause.Descending = true
			}

			selectStatement.OrderBy = append(selectStatement.OrderBy, orderByClause)

			peek = parser.lexer.PeekToken()
			if peek.Type == Comma {
				parser.lexer.NextToken() // consume comma
				continue
			}
			break
		}
		token = parser.lexer.NextToken()
	}

	// Parse LIMIT clause
	if token.Type == Limit {
		token = parser.lexer.NextToken()
		if token.Type != Int {
			return nil, core.Syntaxf("expected integer after LIMIT")
		}
		limit, err := strconv.Atoi(token.Value)
		if err != nil {
			return nil, core.Syntaxf("invalid LIMIT value '%s'", token.Value)
		}
		selectStatement.Limit = limit
		token = parser.lexer.NextToken()
	}

	if err := expectEnd(token); err != nil {
		return nil, err
	}
	return selectStatement, nil
}

var aggregateFunctions = map[string]bool{
	"COUNT": true,
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
}

// parseSelectExpr parses one SELECT list entry starting from its first
// token: a column reference or an aggregate call, each with an
// optional AS alias.
func parseSelectExpr(parser *Parser, token Token) (SelectExpr, error) {
	expr := SelectExpr{Column: token.Value}

	if parser.lexer.PeekToken().Type == ParenOpen {
		function := strings.ToUpper(token.Value)
		if !aggregateFunctions[function] {
			return expr, core.Syntaxf("unknown function '%s'", token.Value)
		}
		parser.lexer.NextToken() // consume '('
		expr.Aggregate = function
		expr.Column = ""

		inner := parser.lexer.NextToken()
		switch inner.Type {
		case Wildcard:
			expr.AggStar = true
		case Distinct:
			expr.AggDistinct = true
			inner = parser.lexer.NextToken()
			if inner.Type != Identifier {
				return expr, core.Syntaxf("expected column name after DISTINCT in %s()", function)
			}
			expr.Column = inner.Value
		case Identifier:
			expr.Column = inner.Value
		default:
			return expr, core.Syntaxf("expected '*' or column name in %s()", function)
		}

		if next := parser.lexer.NextToken(); next.Type != ParenClose {
			return expr, core.Syntaxf("expected ')' after %s argument", function)
		}
	}

	if parser.lexer.PeekToken().Type == As {
		parser.lexer.NextToken() // consume AS
		alias := parser.lexer.NextToken()
		if alias.Type != Identifier {
			return expr, core.Syntaxf("expected alias after AS")
		}
		expr.Alias = alias.Value
	}

	return expr, nil
}

// parseJoin parses one JOIN clause. token is the first token of the
// clause (JOIN or a join-type keyword).
func parseJoin(parser *Parser, token Token) (JoinClause, error) {
	joinClause := JoinClause{Type: "INNER"} // bare JOIN means INNER

	switch token.Type {
	case Left:
		joinClause.Type = "LEFT"
		token = parser.lexer.NextToken()
		if token.Type == Outer {
			token = parser.lexer.NextToken()
		}
		if token.Type != Join {
			return joinClause, core.Syntaxf("expected JOIN after LEFT")
		}
	case Right:
		joinClause.Type = "RIGHT"
		token = parser.lexer.NextToken()
		if token.Type == Outer {
			token = parser.lexer.NextToken()
		}
		if token.Type != Join {
			return joinClause, core.Syntaxf("expected JOIN after RIGHT")
		}
	case Full:
		joinClause.Type = "FULL OUTER"
		token = parser.lexer.NextToken()
		if token.Type == Outer {
			token = parser.lexer.NextToken()
		}
		if token.Type != Join {
			return joinClause, core.Syntaxf("expected JOIN after FULL")
		}
	case Inner:
		token = parser.lexer.NextToken()
		if token.Type != Join {
			return joinClause, core.Syntaxf("expected JOIN after INNER")
		}
	}

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return joinClause, core.Syntaxf("expected table name after JOIN")
	}
	joinClause.Table = token.Value

	// Check for table alias
	peek := parser.lexer.PeekToken()
	if peek.Type == As {
		parser.lexer.NextToken() // consume AS
		alias := parser.lexer.NextToken()
		if alias.Type != Identifier {
			return joinClause, core.Syntaxf("expected alias after AS")
		}
		joinClause.TableAlias = alias.Value
		peek = parser.lexer.PeekToken()
	} else if peek.Type == Identifier {
		joinClause.TableAlias = peek.Value
		parser.lexer.NextToken()
		peek = parser.lexer.PeekToken()
	}

	// ON condition is optional; without it the join is a cross product
	if peek.Type != On {
		return joinClause, nil
	}
	parser.lexer.NextToken() // consume ON

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return joinClause, core.Syntaxf("expected column after ON")
	}
	condition := JoinCondition{Left: token.Value}

	token = parser.lexer.NextToken()
	operator, ok := comparisonOperator(token.Type)
	if !ok {
		return joinClause, core.Syntaxf("expected comparison operator in JOIN ON condition")
	}
	condition.Operator = operator

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return joinClause, core.Syntaxf("expected column after operator in JOIN ON")
	}
	condition.Right = token.Value

	joinClause.On = &condition
	return joinClause, nil
}

func ParseWhere(parser *Parser) (WhereClause, error) {
	var whereClause WhereClause

	for {
		token := parser.lexer.NextToken()
		if token.Type != Identifier {
			return whereClause, core.Syntaxf("expected identifier in WHERE clause")
		}
		column := token.Value

		// HAVING may reference an aggregate by its call text, e.g.
		// COUNT(*) > 1; normalize it to the result-column key.
		if parser.lexer.PeekToken().Type == ParenOpen {
			normalized, err := parseAggregateRef(parser, column)
			if err != nil {
				return whereClause, err
			}
			column = normalized
		}

		token = parser.lexer.NextToken()
		condition := WhereCondition{Column: column}

		if token.Type == Between {
			low, err := parseLiteral(parser.lexer.NextToken())
			if err != nil {
				return whereClause, err
			}
			if next := parser.lexer.NextToken(); next.Type != And {
				return whereClause, core.Syntaxf("expected AND in BETWEEN range")
			}
			high, err := parseLiteral(parser.lexer.NextToken())
			if err != nil {
				return whereClause, err
			}
			condition.Operator = BetweenOperator
			condition.Low = low
			condition.High = high
		} else {
			operator, ok := comparisonOperator(token.Type)
			if !ok {
				return whereClause, core.Syntaxf("expected operator in WHERE clause")
			}
			value, err := parseLiteral(parser.lexer.NextToken())
			if err != nil {
				return whereClause, err
			}
			condition.Operator = operator
			condition.Value = value
		}

		whereClause.Conditions = append(whereClause.Conditions, condition)

		token = parser.lexer.PeekToken()
		if token.Type == And {
			parser.lexer.NextToken() // consume AND
			whereClause.LogicalOps = append(whereClause.LogicalOps, LogicalAnd)
			continue
		} else if token.Type == Or {
			parser.lexer.NextToken() // consume OR
			whereClause.LogicalOps = append(whereClause.LogicalOps, LogicalOr)
			continue
		}
		break
	}

	return whereClause, nil
}

// parseAggregateRef consumes '(arg)' after an aggregate function name
// and returns the canonical call text used as a result-column key.
func parseAggregateRef(parser *Parser, function string) (string, error) {
	upper := strings.ToUpper(function)
	if !aggregateFunctions[upper] {
		return "", core.Syntaxf("unknown function '%s'", function)
	}
	parser.lexer.NextToken() // consume '('

	inner := parser.lexer.NextToken()
	arg := ""
	switch inner.Type {
	case Wildcard:
		arg = "*"
	case Distinct:
		col := parser.lexer.NextToken()
		if col.Type != Identifier {
			return "", core.Syntaxf("expected column name after DISTINCT in %s()", upper)
		}
		arg = "DISTINCT " + col.Value
	case Identifier:
		arg = inner.Value
	default:
		return "", core.Syntaxf("expected '*' or column name in %s()", upper)
	}

	if next := parser.lexer.NextToken(); next.Type != ParenClose {
		return "", core.Syntaxf("expected ')' after %s argument", upper)
	}
	return upper + "(" + arg + ")", nil
}

func comparisonOperator(t TokenType) (WhereOperator, bool) {
	switch t {
	case Equals:
		return EqualsOperator, true
	case NotEquals:
		return NotEqualsOperator, true
	case LessThan:
		return LessThanOperator, true
	case GreaterThan:
		return GreaterThanOperator, true
	case LessThanOrEqual:
		return LessThanOrEqualOperator, true
	case GreaterThanOrEqual:
		return GreaterThanOrEqualOperator, true
	default:
		return EqualsOperator, false
	}
}

// parseLiteral converts a literal token into a Value.
func parseLiteral(token Token) (core.Value, error) {
	switch token.Type {
	case String:
		return core.NewText(token.Value), nil
	case Int:
		i, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return core.Null(), core.Syntaxf("invalid integer literal '%s'", token.Value)
		}
		return core.NewInteger(i), nil
	case Float:
		f, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return core.Null(), core.Syntaxf("invalid float literal '%s'", token.Value)
		}
		return core.NewFloat(f), nil
	case True:
		return core.NewBoolean(true), nil
	case False:
		return core.NewBoolean(false), nil
	case Null:
		return core.Null(), nil
	default:
		return core.Null(), core.Syntaxf("expected literal value, got '%s'", token.Value)
	}
}

func ParseInsert(parser *Parser) (Statement, error) {
	var insertStatement InsertStatement

	token := parser.lexer.NextToken()
	if token.Type != Into {
		return nil, core.Syntaxf("expected INTO after INSERT")
	}

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after INSERT INTO")
	}
	insertStatement.Table = token.Value

	// Optional column list
	token = parser.lexer.NextToken()
	if token.Type == ParenOpen {
		for {
			token = parser.lexer.NextToken()
			if token.Type != Identifier {
				return nil, core.Syntaxf("expected column name")
			}
			insertStatement.Columns = append(insertStatement.Columns, token.Value)

			token = parser.lexer.NextToken()
			if token.Type == Comma {
				continue
			} else if token.Type == ParenClose {
				break
			} else {
				return nil, core.Syntaxf("expected ',' or ')' in column list")
			}
		}
		token = parser.lexer.NextToken()
	}

	if token.Type != Values {
		return nil, core.Syntaxf("expected VALUES")
	}

	// One or more value tuples
	for {
		token = parser.lexer.NextToken()
		if token.Type != ParenOpen {
			return nil, core.Syntaxf("expected '(' after VALUES")
		}

		var tuple []core.Value
		for {
			value, err := parseLiteral(parser.lexer.NextToken())
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, value)

			token = parser.lexer.NextToken()
			if token.Type == Comma {
				continue
			} else if token.Type == ParenClose {
				break
			} else {
				return nil, core.Syntaxf("expected ',' or ')' in values list")
			}
		}
		insertStatement.Values = append(insertStatement.Values, tuple)

		if parser.lexer.PeekToken().Type == Comma {
			parser.lexer.NextToken() // consume comma
			continue
		}
		break
	}

	if err := expectEnd(parser.lexer.NextToken()); err != nil {
		return nil, err
	}
	return insertStatement, nil
}

func ParseUpdate(parser *Parser) (Statement, error) {
	var updateStatement UpdateStatement

	token := parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after UPDATE")
	}
	updateStatement.Table = token.Value

	token = parser.lexer.NextToken()
	if token.Type != Set {
		return nil, core.Syntaxf("expected SET after table name")
	}

	for {
		token = parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, core.Syntaxf("expected column name in SET clause")
		}
		column := token.Value

		token = parser.lexer.NextToken()
		if token.Type != Equals {
			return nil, core.Syntaxf("expected '=' in SET clause")
		}

		value, err := parseLiteral(parser.lexer.NextToken())
		if err != nil {
			return nil, err
		}

		updateStatement.Updates = append(updateStatement.Updates, SetClause{
			Column: column,
			Value:  value,
		})

		token = parser.lexer.PeekToken()
		if token.Type == Comma {
			parser.lexer.NextToken() // consume comma
			continue
		}
		break
	}

	token = parser.lexer.NextToken()
	if token.Type == Where {
		whereClause, err := ParseWhere(parser)
		if err != nil {
			return nil, err
		}
		updateStatement.Where = whereClause
		token = parser.lexer.NextToken()
	}

	if err := expectEnd(token); err != nil {
		return nil, err
	}
	return updateStatement, nil
}

func ParseDelete(parser *Parser) (Statement, error) {
	var deleteStatement DeleteStatement

	token := parser.lexer.NextToken()
	if token.Type != From {
		return nil, core.Syntaxf("expected FROM after DELETE")
	}

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after FROM")
	}
	deleteStatement.Table = token.Value

	token = parser.lexer.NextToken()
	if token.Type == Where {
		whereClause, err := ParseWhere(parser)
		if err != nil {
			return nil, err
		}
		deleteStatement.Where = whereClause
		token = parser.lexer.NextToken()
	}

	if err := expectEnd(token); err != nil {
		return nil, err
	}
	return deleteStatement, nil
}

func ParseCreate(parser *Parser) (Statement, error) {
	token := parser.lexer.NextToken()
	if token.Type != TableIdentifier {
		return nil, core.Syntaxf("expected TABLE after CREATE")
	}
	return ParseCreateTable(parser)
}

func ParseCreateTable(parser *Parser) (Statement, error) {
	var createTableStatement CreateTableStatement

	token := parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after TABLE")
	}
	createTableStatement.Table = token.Value

	token = parser.lexer.NextToken()
	if token.Type != ParenOpen {
		return nil, core.Syntaxf("expected '(' after table name")
	}

	for {
		token = parser.lexer.NextToken()
		if token.Type != Identifier {
			return nil, core.Syntaxf("expected column name")
		}
		columnName := token.Value

		token = parser.lexer.NextToken()
		var columnType core.DataType
		switch strings.ToUpper(token.Value) {
		case "INT", "INTEGER":
			columnType = core.IntType
		case "FLOAT", "DOUBLE", "REAL":
			columnType = core.FloatType
		case "TEXT", "STRING", "VARCHAR":
			columnType = core.TextType
		case "BOOL", "BOOLEAN":
			columnType = core.BoolType
		default:
			return nil, core.Syntaxf("expected column type (INT, FLOAT, TEXT, BOOLEAN)")
		}

		column := core.Column{
			Name:     columnName,
			Type:     columnType,
			Nullable: true,
		}

		// Column constraints
		for {
			peek := parser.lexer.PeekToken()
			if peek.Type == PrimaryKey {
				parser.lexer.NextToken() // consume PRIMARY KEY
				column.PrimaryKey = true
			} else if peek.Type == Not {
				parser.lexer.NextToken() // consume NOT
				if next := parser.lexer.NextToken(); next.Type != Null {
					return nil, core.Syntaxf("expected NULL after NOT")
				}
				column.Nullable = false
			} else if peek.Type == References {
				parser.lexer.NextToken() // consume REFERENCES
				foreignKey, err := parseReferences(parser, columnName)
				if err != nil {
					return nil, err
				}
				column.ForeignKey = foreignKey
			} else {
				break
			}
		}

		createTableStatement.Columns = append(createTableStatement.Columns, column)

		token = parser.lexer.NextToken()
		if token.Type == Comma {
			continue
		} else if token.Type == ParenClose {
			break
		} else {
			return nil, core.Syntaxf("expected ',' or ')' in column list")
		}
	}

	if err := expectEnd(parser.lexer.NextToken()); err != nil {
		return nil, err
	}
	return createTableStatement, nil
}

// parseReferences parses the 'table(column)' tail of a REFERENCES
// constraint.
func parseReferences(parser *Parser, columnName string) (*core.ForeignKey, error) {
	token := parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after REFERENCES")
	}
	foreignKey := &core.ForeignKey{
		Column:          columnName,
		ReferencedTable: token.Value,
	}

	if next := parser.lexer.NextToken(); next.Type != ParenOpen {
		return nil, core.Syntaxf("expected '(' after referenced table")
	}
	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected column name in REFERENCES")
	}
	foreignKey.ReferencedColumn = token.Value
	if next := parser.lexer.NextToken(); next.Type != ParenClose {
		return nil, core.Syntaxf("expected ')' after referenced column")
	}

	return foreignKey, nil
}

func ParseDrop(parser *Parser) (Statement, error) {
	token := parser.lexer.NextToken()
	if token.Type != TableIdentifier {
		return nil, core.Syntaxf("expected TABLE after DROP")
	}

	token = parser.lexer.NextToken()
	if token.Type != Identifier {
		return nil, core.Syntaxf("expected table name after DROP TABLE")
	}
	name := token.Value

	if err := expectEnd(parser.lexer.NextToken()); err != nil {
		return nil, err
	}
	return DropTableStatement{Table: name}, nil
}
