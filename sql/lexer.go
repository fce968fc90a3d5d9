package sql

import "strings"

type Token struct {
	Type  TokenType
	Value string
}

type TokenType int

const (
	Identifier TokenType = iota
	TableIdentifier
	String
	Int
	Float
	PrimaryKey
	Wildcard
	Comma
	ParenOpen
	ParenClose
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Between
	And
	Or
	Not
	Null
	References
	True
	False
	Select
	Distinct
	From
	Where
	Group
	By
	Having
	Order
	Asc
	Desc
	Limit
	As
	Join
	Inner
	Left
	Right
	Full
	Outer
	On
	Create
	Drop
	Insert
	Into
	Values
	Update
	Set
	Delete
	EOF
	Unknown
)

func (token Token) String() string {
	switch token.Type {
	case Identifier:
		return "Identifier(" + token.Value + ")"
	case TableIdentifier:
		return "TableIdentifier"
	case String:
		return "String(" + token.Value + ")"
	case Int:
		return "Int(" + token.Value + ")"
	case Float:
		return "Float(" + token.Value + ")"
	case PrimaryKey:
		return "PrimaryKey"
	case Wildcard:
		return "Wildcard"
	case Comma:
		return "Comma"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case Equals:
		return "Equals"
	case NotEquals:
		return "NotEquals"
	case LessThan:
		return "LessThan"
	case GreaterThan:
		return "GreaterThan"
	case LessThanOrEqual:
		return "LessThanOrEqual"
	case GreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case Between:
		return "Between"
	case And:
		return "And"
	case Or:
		return "Or"
	case Not:
		return "Not"
	case Null:
		return "Null"
	case References:
		return "References"
	case True:
		return "True"
	case False:
		return "False"
	case Select:
		return "Select"
	case Distinct:
		return "Distinct"
	case From:
		return "From"
	case Where:
		return "Where"
	case Group:
		return "Group"
	case By:
		return "By"
	case Having:
		return "Having"
	case Order:
		return "Order"
	case Asc:
		return "Asc"
	case Desc:
		return "Desc"
	case Limit:
		return "Limit"
	case As:
		return "As"
	case Join:
		return "Join"
	case Inner:
		return "Inner"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Full:
		return "Full"
	case Outer:
		return "Outer"
	case On:
		return "On"
	case Create:
		return "Create"
	case Drop:
		return "Drop"
	case Insert:
		return "Insert"
	case Into:
		return "Into"
	case Values:
		return "Values"
	case Update:
		return "Update"
	case Set:
		return "Set"
	case Delete:
		return "Delete"
	case EOF:
		return "EOF"
	default:
		return "Unknown(" + token.Value + ")"
	}
}

type Lexer struct {
	sql          string
	position     int
	readPosition int
	ch           byte
}

func NewLexer(sql string) *Lexer {
	lexer := &Lexer{sql: sql}
	lexer.readChar()
	return lexer
}

func (lexer *Lexer) readChar() {
	if lexer.readPosition >= len(lexer.sql) {
		lexer.ch = 0
	} else {
		lexer.ch = lexer.sql[lexer.readPosition]
	}
	lexer.position = lexer.readPosition
	lexer.readPosition++
}

func (lexer *Lexer) peekChar() byte {
	if lexer.readPosition >= len(lexer.sql) {
		return 0
	}
	return lexer.sql[lexer.readPosition]
}

func (lexer *Lexer) NextToken() Token {
	var token Token

	lexer.skipWhitespace()

	switch lexer.ch {
	case ',':
		token = Token{Type: Comma, Value: string(lexer.ch)}
	case '(':
		token = Token{Type: ParenOpen, Value: string(lexer.ch)}
	case ')':
		token = Token{Type: ParenClose, Value: string(lexer.ch)}
	case ';':
		token = Token{Type: EOF, Value: ""}
	case 0:
		token = Token{Type: EOF, Value: ""}
	case '\'':
		token = Token{Type: String, Value: lexer.readString()}
	case '*':
		token = Token{Type: Wildcard, Value: string(lexer.ch)}
	default:
		if isOperator(lexer.ch) {
			operator := lexer.readOperator()
			switch operator {
			case "=":
				return Token{Type: Equals, Value: operator}
			case "!=", "<>":
				return Token{Type: NotEquals, Value: operator}
			case "<":
				return Token{Type: LessThan, Value: operator}
			case ">":
				return Token{Type: GreaterThan, Value: operator}
			case "<=":
				return Token{Type: LessThanOrEqual, Value: operator}
			case ">=":
				return Token{Type: GreaterThanOrEqual, Value: operator}
			default:
				return Token{Type: Unknown, Value: operator}
			}
		} else if isDigit(lexer.ch) || (lexer.ch == '-' && isDigit(lexer.peekChar())) {
			return lexer.readNumberToken()
		} else if isAlphaNumeric(lexer.ch) {
			literal := lexer.readIdentifier()
			if strings.EqualFold(literal, "PRIMARY") {
				// PRIMARY KEY is lexed as a single token
				lexer.skipWhitespace()
				nextLiteral := lexer.readIdentifier()
				if strings.EqualFold(nextLiteral, "KEY") {
					return Token{Type: PrimaryKey, Value: "PRIMARY KEY"}
				}
				return Token{Type: Unknown, Value: literal + " " + nextLiteral}
			}
			return Token{Type: lookupIdentifier(literal), Value: literal}
		} else {
			token = Token{Type: Unknown, Value: string(lexer.ch)}
		}
	}

	lexer.readChar()
	return token
}

func (lexer *Lexer) PeekToken() Token {
	savedPosition := lexer.position
	savedReadPosition := lexer.readPosition
	savedCh := lexer.ch

	token := lexer.NextToken()

	lexer.position = savedPosition
	lexer.readPosition = savedReadPosition
	lexer.ch = savedCh

	return token
}

func (lexer *Lexer) skipWhitespace() {
	for lexer.ch == ' ' || lexer.ch == '\t' || lexer.ch == '\n' || lexer.ch == '\r' {
		lexer.readChar()
	}
}

func (lexer *Lexer) readIdentifier() string {
	position := lexer.position
	for isAlphaNumeric(lexer.ch) {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

func (lexer *Lexer) readString() string {
	lexer.readChar() // skip opening quote
	position := lexer.position
	for lexer.ch != '\'' && lexer.ch != 0 {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

func (lexer *Lexer) readNumberToken() Token {
	sign := ""
	if lexer.ch == '-' {
		sign = "-"
		lexer.readChar()
	}
	num := lexer.readNumber()
	if lexer.ch == '.' {
		lexer.readChar() // consume '.'
		decimal := lexer.readNumber()
		return Token{Type: Float, Value: sign + num + "." + decimal}
	}
	return Token{Type: Int, Value: sign + num}
}

func (lexer *Lexer) readNumber() string {
	position := lexer.position
	for isDigit(lexer.ch) {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

func (lexer *Lexer) readOperator() string {
	position := lexer.position
	for isOperator(lexer.ch) {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

func isAlphaNumeric(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == '.' || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isOperator(ch byte) bool {
	return ch == '=' || ch == '!' || ch == '<' || ch == '>'
}

func lookupIdentifier(id string) TokenType {
	switch strings.ToUpper(id) {
	case "TABLE":
		return TableIdentifier
	case "BETWEEN":
		return Between
	case "AND":
		return And
	case "OR":
		return Or
	case "NOT":
		return Not
	case "NULL":
		return Null
	case "REFERENCES":
		return References
	case "TRUE":
		return True
	case "FALSE":
		return False
	case "SELECT":
		return Select
	case "DISTINCT":
		return Distinct
	case "FROM":
		return From
	case "WHERE":
		return Where
	case "GROUP":
		return Group
	case "BY":
		return By
	case "HAVING":
		return Having
	case "ORDER":
		return Order
	case "ASC":
		return Asc
	case "DESC":
		return Desc
	case "LIMIT":
		return Limit
	case "AS":
		return As
	case "JOIN":
		return Join
	case "INNER":
		return Inner
	case "LEFT":
		return Left
	case "RIGHT":
		return Right
	case "FULL":
		return Full
	case "OUTER":
		return Outer
	case "ON":
		return On
	case "CREATE":
		return Create
	case "DROP":
		return Drop
	case "INSERT":
		return Insert
	case "INTO":
		return Into
	case "VALUES":
		return Values
	case "UPDATE":
		return Update
	case "SET":
		return Set
	case "DELETE":
		return Delete
	default:
		return Identifier
	}
}
