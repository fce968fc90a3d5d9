package main

import "strings"

// sqlKnowledge maps topic keywords to canned explanations for the
// learning assistant endpoint.
var sqlKnowledge = map[string]string{
	"primary key": `A PRIMARY KEY is a column that uniquely identifies each row in a table.

Key points:
- Must contain unique values
- Cannot contain NULL values
- Each table can have only ONE primary key

Example:
CREATE TABLE users (
    id INT PRIMARY KEY,
    name TEXT,
    email TEXT
);`,

	"foreign key": `A FOREIGN KEY is a column that references the PRIMARY KEY of another table, linking the two together.

Example:
CREATE TABLE orders (
    id INT PRIMARY KEY,
    user_id INT REFERENCES users(id),
    amount FLOAT
);`,

	"join": `JOIN operations combine rows from two or more tables based on a related column.

Types of JOINs:
- INNER JOIN: matching rows from both tables
- LEFT JOIN: all rows from the left table, matches from the right
- RIGHT JOIN: all rows from the right table, matches from the left
- FULL OUTER JOIN: all rows from both tables

Example:
SELECT u.name, o.amount
FROM users u
INNER JOIN orders o ON u.id = o.user_id;`,

	"select": `SELECT retrieves data from tables.

Basic syntax:
SELECT column1, column2 FROM table_name;

Features:
- WHERE: filter rows
- ORDER BY: sort results
- GROUP BY: group rows
- LIMIT: cap the result size
- DISTINCT: remove duplicates

Example:
SELECT name, age
FROM users
WHERE age > 18
ORDER BY name
LIMIT 10;`,

	"insert": `INSERT INTO adds new rows to a table.

Syntax:
INSERT INTO table_name (col1, col2) VALUES (val1, val2);

You can insert multiple rows at once, or omit the column list to use the table's column order.

Example:
INSERT INTO users (id, name, email)
VALUES (1, 'Alice', 'alice@example.com');`,

	"update": `UPDATE modifies existing rows in a table.

Syntax:
UPDATE table_name SET col1 = val1 WHERE condition;

Without a WHERE clause, ALL rows will be updated.

Example:
UPDATE users
SET email = 'newemail@example.com'
WHERE id = 1;`,

	"delete": `DELETE removes rows from a table.

Syntax:
DELETE FROM table_name WHERE condition;

Without a WHERE clause, ALL rows will be deleted.

Example:
DELETE FROM users WHERE id = 1;`,

	"create table": `CREATE TABLE creates a new table with columns and constraints.

Common constraints:
- PRIMARY KEY
- NOT NULL
- REFERENCES (foreign key)

Example:
CREATE TABLE users (
    id INT PRIMARY KEY,
    name TEXT NOT NULL,
    age INT
);`,

	"where": `WHERE filters rows based on conditions.

Operators:
- = and !=
- < > <= >=
- BETWEEN (inclusive range)
- AND, OR connectives

Example:
SELECT * FROM users
WHERE age >= 18 AND age <= 65;`,

	"group by": `GROUP BY groups rows sharing values in the listed columns, usually with aggregate functions: COUNT, SUM, AVG, MAX, MIN.

Example:
SELECT department, COUNT(*) AS total
FROM employees
GROUP BY department;`,

	"order by": `ORDER BY sorts the result set.

Syntax:
ORDER BY column1 [ASC|DESC], column2 [ASC|DESC];

Example:
SELECT name, age
FROM users
ORDER BY age DESC, name ASC;`,
}

// topicOrder fixes the lookup order so messages touching several
// topics always get the same answer.
var topicOrder = []string{
	"primary key",
	"foreign key",
	"create table",
	"group by",
	"order by",
	"join",
	"select",
	"insert",
	"update",
	"delete",
	"where",
}

var greetings = []string{"hi", "hello", "hey", "good morning", "good afternoon"}

const defaultChatResponse = `I'm not sure about that specific question, but I can help you with:

SQL basics:
- CREATE TABLE, INSERT, SELECT, UPDATE, DELETE

Advanced topics:
- PRIMARY KEY and FOREIGN KEY
- JOINs (INNER, LEFT, RIGHT, FULL OUTER)
- WHERE clauses
- GROUP BY and aggregates
- ORDER BY sorting

Try asking something like "What is a PRIMARY KEY?" or "How do I use JOIN?"`

// chatReply picks a canned answer by keyword matching, tried from the
// most specific cue to the most general.
func chatReply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, greeting := range greetings {
		if strings.Contains(lower, greeting) {
			return "Hello! I'm your SQL learning assistant. Ask me about SQL commands, keys, joins, or anything else about querying. What would you like to learn?"
		}
	}

	for _, topic := range topicOrder {
		if strings.Contains(lower, topic) {
			return sqlKnowledge[topic]
		}
	}

	if strings.Contains(lower, "what is") || strings.Contains(lower, "explain") || strings.Contains(lower, "how") {
		switch {
		case strings.Contains(lower, "table"):
			return sqlKnowledge["create table"]
		case strings.Contains(lower, "filter"), strings.Contains(lower, "condition"):
			return sqlKnowledge["where"]
		case strings.Contains(lower, "sort"):
			return sqlKnowledge["order by"]
		case strings.Contains(lower, "aggregate"), strings.Contains(lower, "count"), strings.Contains(lower, "sum"):
			return sqlKnowledge["group by"]
		}
	}

	switch {
	case strings.Contains(lower, "create"):
		return sqlKnowledge["create table"]
	case strings.Contains(lower, "select"), strings.Contains(lower, "query"), strings.Contains(lower, "retrieve"):
		return sqlKnowledge["select"]
	case strings.Contains(lower, "insert"), strings.Contains(lower, "add"):
		return sqlKnowledge["insert"]
	case strings.Contains(lower, "update"), strings.Contains(lower, "modify"):
		return sqlKnowledge["update"]
	case strings.Contains(lower, "delete"), strings.Contains(lower, "remove"):
		return sqlKnowledge["delete"]
	}

	return defaultChatResponse
}
