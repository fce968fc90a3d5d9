// Package sql provides SQL lexing and parsing for CoreDB.
//
// The package includes a lexer that tokenizes SQL strings, a parser
// that produces abstract syntax trees for SQL statements, and the
// WHERE-clause evaluator shared by the storage layer and the executor.
//
// # Lexer Usage
//
//	lexer := sql.NewLexer("SELECT * FROM users")
//	for {
//	    token := lexer.NextToken()
//	    if token.Type == sql.EOF {
//	        break
//	    }
//	    fmt.Printf("Token: %s = %s\n", token.Type, token.Value)
//	}
//
// # Parser Usage
//
//	parser := sql.NewParser("SELECT * FROM users WHERE id = 1")
//	statement, err := parser.Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Statements
//
// The parser supports the following statement types:
//   - SelectStatement
//   - InsertStatement
//   - UpdateStatement
//   - DeleteStatement
//   - CreateTableStatement
//   - DropTableStatement
//
// Logical connectives in WHERE and HAVING carry no precedence: the
// parser emits a flat list of conditions joined left-to-right.
package sql
