//go:build comparative

package tests

import (
	"database/sql"
	"strconv"
	"testing"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/db"
	"github.com/coredb-io/coredb/ps"

	_ "github.com/duckdb/duckdb-go/v2"
)

// setupCoreDB creates a CoreDB engine with test data.
func setupCoreDB(b *testing.B) *db.Executor {
	engine := coredb.Open(ps.NewIndexedManager(ps.NewMemoryManager())).Executor()

	mustRun(b, engine, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT, age INT, city TEXT)")
	for i := 1; i <= 1000; i++ {
		mustRun(b, engine, "INSERT INTO users (id, name, age, city) VALUES ("+
			strconv.Itoa(i)+", 'User"+strconv.Itoa(i)+"', "+strconv.Itoa(20+i%50)+", 'City"+strconv.Itoa(i%10)+"')")
	}
	return engine
}

// setupDuckDB creates a DuckDB instance with identical test data.
func setupDuckDB(b *testing.B) *sql.DB {
	duck, err := sql.Open("duckdb", "")
	if err != nil {
		b.Fatalf("Failed to open DuckDB: %v", err)
	}

	if _, err := duck.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR, age INTEGER, city VARCHAR)"); err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	for i := 1; i <= 1000; i++ {
		_, err := duck.Exec("INSERT INTO users VALUES (?, ?, ?, ?)",
			i, "User"+strconv.Itoa(i), 20+i%50, "City"+strconv.Itoa(i%10))
		if err != nil {
			b.Fatalf("Failed to insert: %v", err)
		}
	}
	return duck
}

// drainRows consumes a result set so both engines do comparable work.
func drainRows(b *testing.B, rows *sql.Rows, err error) {
	if err != nil {
		b.Fatalf("Query error: %v", err)
	}
	for rows.Next() {
	}
	rows.Close()
}

func BenchmarkCoreDB_SelectAll(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users")
	}
}

func BenchmarkDuckDB_SelectAll(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT * FROM users")
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_SelectWhere(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users WHERE age > 40")
	}
}

func BenchmarkDuckDB_SelectWhere(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT * FROM users WHERE age > 40")
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_SelectByKey(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users WHERE id = "+strconv.Itoa(1+i%1000))
	}
}

func BenchmarkDuckDB_SelectByKey(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT * FROM users WHERE id = ?", 1+i%1000)
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_OrderBy(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users ORDER BY age DESC")
	}
}

func BenchmarkDuckDB_OrderBy(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT * FROM users ORDER BY age DESC")
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_GroupBy(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT city, COUNT(*) AS n, AVG(age) AS avg_age FROM users GROUP BY city")
	}
}

func BenchmarkDuckDB_GroupBy(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT city, COUNT(*) AS n, AVG(age) AS avg_age FROM users GROUP BY city")
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_Insert(b *testing.B) {
	engine := coredb.Open(ps.NewMemoryManager()).Executor()
	mustRun(b, engine, "CREATE TABLE t (id INT PRIMARY KEY, v INT)")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "INSERT INTO t (id, v) VALUES ("+strconv.Itoa(i)+", "+strconv.Itoa(i*7)+")")
	}
}

func BenchmarkDuckDB_Insert(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	if _, err := duck.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY, v INTEGER)"); err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := duck.Exec("INSERT INTO t VALUES (?, ?)", i, i*7); err != nil {
			b.Fatalf("Insert error: %v", err)
		}
	}
}

func BenchmarkCoreDB_Limit(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine, "SELECT * FROM users ORDER BY id LIMIT 10")
	}
}

func BenchmarkDuckDB_Limit(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query("SELECT * FROM users ORDER BY id LIMIT 10")
		drainRows(b, rows, err)
	}
}

func BenchmarkCoreDB_Complex(b *testing.B) {
	engine := setupCoreDB(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mustRun(b, engine,
			"SELECT city, COUNT(*) AS n FROM users WHERE age > 25 GROUP BY city HAVING n > 10 ORDER BY n DESC LIMIT 5")
	}
}

func BenchmarkDuckDB_Complex(b *testing.B) {
	duck := setupDuckDB(b)
	defer duck.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := duck.Query(
			"SELECT city, COUNT(*) AS n FROM users WHERE age > 25 GROUP BY city HAVING n > 10 ORDER BY n DESC LIMIT 5")
		drainRows(b, rows, err)
	}
}
