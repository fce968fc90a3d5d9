package tests

import (
	"fmt"
	"strconv"
	"testing"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/db"
	"github.com/coredb-io/coredb/ps"
	"github.com/coredb-io/coredb/sql"
)

// setupBenchmarkEngine creates an engine with 1000 users seeded.
func setupBenchmarkEngine(b *testing.B, indexed bool) *db.Executor {
	b.Helper()

	var storage ps.Manager = ps.NewMemoryManager()
	if indexed {
		storage = ps.NewIndexedManager(ps.NewMemoryManager())
	}
	engine := coredb.Open(storage).Executor()

	mustRun(b, engine, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT, age INT, city TEXT)")
	for i := 1; i <= 1000; i++ {
		mustRun(b, engine, "INSERT INTO users (id, name, age, city) VALUES ("+
			strconv.Itoa(i)+", 'User"+strconv.Itoa(i)+"', "+strconv.Itoa(20+i%50)+", 'City"+strconv.Itoa(i%10)+"')")
	}
	return engine
}

func mustRun(b *testing.B, engine *db.Executor, query string) {
	b.Helper()
	if result := engine.Execute(query); !result.Success {
		b.Fatalf("query %q failed: %s", query, result.Message)
	}
}

func BenchmarkSQLParsing(b *testing.B) {
	queries := []struct {
		name string
		sql  string
	}{
		{"Simple", "SELECT * FROM users"},
		{"Where", "SELECT name, age FROM users WHERE age > 30 AND city = 'City1'"},
		{"GroupBy", "SELECT city, COUNT(*) AS n, AVG(age) AS avg_age FROM users GROUP BY city HAVING n > 10"},
		{"Join", "SELECT u.name, o.amount FROM users u LEFT JOIN orders o ON u.id = o.user_id"},
		{"Insert", "INSERT INTO users (id, name, age) VALUES (1, 'Alice', 30), (2, 'Bob', 25)"},
	}

	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := sql.NewParser(q.sql).Parse(); err != nil {
					b.Fatalf("Parse error: %v", err)
				}
			}
		})
	}
}

func BenchmarkLexer(b *testing.B) {
	query := "SELECT name, age FROM users WHERE age BETWEEN 20 AND 40 ORDER BY age DESC LIMIT 10"
	for i := 0; i < b.N; i++ {
		lexer := sql.NewLexer(query)
		for {
			if token := lexer.NextToken(); token.Type == sql.EOF {
				break
			}
		}
	}
}

func BenchmarkSelectAll(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users")
	}
}

func BenchmarkSelectWithWhere(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users WHERE age > 40")
	}
}

// BenchmarkSelectByPrimaryKey compares the full scan against the
// equality-index fast path.
func BenchmarkSelectByPrimaryKey(b *testing.B) {
	b.Run("Plain", func(b *testing.B) {
		engine := setupBenchmarkEngine(b, false)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			mustRun(b, engine, "SELECT * FROM users WHERE id = "+strconv.Itoa(1+i%1000))
		}
	})
	b.Run("Indexed", func(b *testing.B) {
		engine := setupBenchmarkEngine(b, true)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			mustRun(b, engine, "SELECT * FROM users WHERE id = "+strconv.Itoa(1+i%1000))
		}
	})
}

func BenchmarkSelectWithOrderBy(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users ORDER BY age DESC, name ASC")
	}
}

func BenchmarkSelectWithLimit(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users ORDER BY id LIMIT 10")
	}
}

func BenchmarkAggregates(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	queries := map[string]string{
		"Count": "SELECT city, COUNT(*) AS n FROM users GROUP BY city",
		"Sum":   "SELECT city, SUM(age) AS total FROM users GROUP BY city",
		"Avg":   "SELECT city, AVG(age) AS avg_age FROM users GROUP BY city",
		"MinMax": "SELECT city, MIN(age) AS youngest, MAX(age) AS oldest " +
			"FROM users GROUP BY city",
	}
	for name, query := range queries {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				mustRun(b, engine, query)
			}
		})
	}
}

func BenchmarkGroupByWithHaving(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT city, COUNT(*) AS n FROM users GROUP BY city HAVING n > 50")
	}
}

func BenchmarkDistinct(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT DISTINCT city FROM users")
	}
}

func BenchmarkJoin(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	mustRun(b, engine, "CREATE TABLE orders (id INT PRIMARY KEY, user_id INT, amount FLOAT)")
	for i := 1; i <= 200; i++ {
		mustRun(b, engine, fmt.Sprintf(
			"INSERT INTO orders (id, user_id, amount) VALUES (%d, %d, %d.5)", i, i%100+1, i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT u.name, o.amount FROM users u INNER JOIN orders o ON u.id = o.user_id")
	}
}

func BenchmarkInsert(b *testing.B) {
	b.Run("Plain", func(b *testing.B) {
		engine := coredb.Open(ps.NewMemoryManager()).Executor()
		mustRun(b, engine, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			mustRun(b, engine, "INSERT INTO users (id, name) VALUES ("+strconv.Itoa(i)+", 'User')")
		}
	})
	// Every insert triggers a full index rebuild in indexed mode.
	b.Run("Indexed", func(b *testing.B) {
		engine := coredb.Open(ps.NewIndexedManager(ps.NewMemoryManager())).Executor()
		mustRun(b, engine, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			mustRun(b, engine, "INSERT INTO users (id, name) VALUES ("+strconv.Itoa(i)+", 'User')")
		}
	})
}

func BenchmarkBulkInsert(b *testing.B) {
	engine := coredb.Open(ps.NewMemoryManager()).Executor()
	mustRun(b, engine, "CREATE TABLE bulk (id INT PRIMARY KEY, v INT)")

	var sb []byte
	sb = append(sb, "INSERT INTO bulk (id, v) VALUES "...)
	for i := 0; i < 100; i++ {
		if i > 0 {
			sb = append(sb, ", "...)
		}
		sb = append(sb, fmt.Sprintf("(%d, %d)", i, i*i)...)
	}
	query := string(sb)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		mustRun(b, engine, "DELETE FROM bulk")
		b.StartTimer()
		mustRun(b, engine, query)
	}
}

func BenchmarkUpdate(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "UPDATE users SET age = "+strconv.Itoa(20+i%50)+" WHERE id = "+strconv.Itoa(1+i%1000))
	}
}

func BenchmarkComplexQuery(b *testing.B) {
	engine := setupBenchmarkEngine(b, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine,
			"SELECT city, COUNT(*) AS n, AVG(age) AS avg_age FROM users "+
				"WHERE age > 25 GROUP BY city HAVING n > 10 ORDER BY avg_age DESC LIMIT 5")
	}
}
