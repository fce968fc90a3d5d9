package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/db"
	"github.com/coredb-io/coredb/ps"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the CLI state
type CLI struct {
	engine      *db.Executor
	storage     ps.Manager
	history     []string
	historyFile string
}

func main() {
	dataDir := flag.String("dataDir", "", "Directory for table files (memory if empty)")
	storageMode := flag.String("storageMode", "indexed", "Storage mode: plain or indexed")
	sqlFile := flag.String("sqlFile", "", "SQL file to execute (non-interactive)")
	flag.Parse()

	printBanner()

	var base *ps.FileManager
	if *dataDir == "" {
		fmt.Printf("%sUsing memory storage%s\n", SuccessColor, ResetColor)
		base = ps.NewMemoryManager()
	} else {
		fmt.Printf("%sUsing file storage: %s%s\n", SuccessColor, *dataDir, ResetColor)
		base = ps.NewFileManager(*dataDir)
	}

	var storage ps.Manager = base
	if strings.ToLower(*storageMode) == "indexed" {
		storage = ps.NewIndexedManager(base)
	}

	cli := &CLI{
		engine:      coredb.Open(storage).Executor(),
		storage:     storage,
		history:     make([]string, 0),
		historyFile: getHistoryPath(),
	}

	cli.loadHistory()

	if *sqlFile != "" {
		if err := cli.importFile(*sqlFile); err != nil {
			fmt.Printf("%sError importing file: %v%s\n", ErrorColor, err, ResetColor)
			os.Exit(1)
		}
		return
	}

	cli.run()
}

func printBanner() {
	fmt.Println()
	bannerWidth := 39 // inner width of the banner box
	versionLine := fmt.Sprintf("CoreDB v%s", Version)
	padding := bannerWidth - len(versionLine) - 2 // -2 for "  " margins
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║ %*s%s%*s ║%s\n", BoldColor, PromptColor, leftPad, "", versionLine, rightPad, "", ResetColor)
	fmt.Printf("%s%s║   File-backed SQL Database Engine     ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println()
}

func (cli *CLI) run() {
	reader := bufio.NewReader(os.Stdin)
	var multiLineBuffer strings.Builder

	for {
		fmt.Print(cli.getPrompt(multiLineBuffer.Len() > 0))

		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			return
		}

		input = strings.TrimSuffix(input, "\n")
		input = strings.TrimSuffix(input, "\r")

		if strings.TrimSpace(input) == "" {
			continue
		}

		// Special commands only apply outside multi-line mode.
		if multiLineBuffer.Len() == 0 && strings.HasPrefix(input, ".") {
			if cli.handleCommand(input) {
				continue
			}
		}

		// Accumulate until a semicolon completes the statement.
		multiLineBuffer.WriteString(input)

		trimmed := strings.TrimSpace(multiLineBuffer.String())
		if !strings.HasSuffix(trimmed, ";") {
			multiLineBuffer.WriteString(" ")
			continue
		}

		sql := strings.TrimSuffix(trimmed, ";")
		multiLineBuffer.Reset()

		if strings.TrimSpace(sql) == "" {
			continue
		}

		cli.addToHistory(sql + ";")

		result := cli.engine.Execute(sql)
		result.Display()
	}
}

func (cli *CLI) getPrompt(multiLine bool) string {
	if multiLine {
		return fmt.Sprintf("%s   ...>%s ", PromptColor, ResetColor)
	}
	return fmt.Sprintf("%scoredb>%s ", PromptColor, ResetColor)
}

func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		cli.saveHistory()
		os.Exit(0)

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		cli.showTables()

	case ".clear", ".cls":
		fmt.Print("\033[H\033[2J")

	case ".history":
		cli.printHistory()

	case ".version":
		fmt.Printf("CoreDB version %s\n", Version)

	case ".import":
		if len(parts) > 1 {
			if err := cli.importFile(parts[1]); err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .import <file.sql>%s\n", ErrorColor, ResetColor)
		}

	case ".dump":
		if len(parts) > 1 {
			if err := db.Dump(cli.storage, parts[1], nil); err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			} else {
				fmt.Printf("%s✓ Dumped database to %s%s\n", SuccessColor, parts[1], ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .dump <url>%s\n", ErrorColor, ResetColor)
		}

	case ".restore":
		if len(parts) > 1 {
			if err := db.Load(cli.storage, parts[1], nil); err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			} else {
				fmt.Printf("%s✓ Restored database from %s%s\n", SuccessColor, parts[1], ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .restore <url>%s\n", ErrorColor, ResetColor)
		}

	default:
		fmt.Printf("%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return true
}

func (cli *CLI) printHelp() {
	fmt.Println()
	fmt.Printf("%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  .help, .h        Show this help message")
	fmt.Println("  .quit, .exit     Exit the CLI")
	fmt.Println("  .tables          List all tables")
	fmt.Println("  .import <file>   Execute SQL statements from a file")
	fmt.Println("  .dump <url>      Dump all tables to a snapshot (path, file://, s3://)")
	fmt.Println("  .restore <url>   Restore tables from a snapshot")
	fmt.Println("  .history         Show command history")
	fmt.Println("  .clear           Clear the screen")
	fmt.Println("  .version         Show version info")
	fmt.Println()
	fmt.Printf("%s%sSQL Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  CREATE TABLE <table> (<column> <type> [PRIMARY KEY|NOT NULL|REFERENCES t(c)], ...);")
	fmt.Println("  DROP TABLE <table>;")
	fmt.Println("  INSERT INTO <table> (<cols>) VALUES (<vals>), ...;")
	fmt.Println("  SELECT <cols> FROM <table> [JOIN ...] [WHERE ...] [GROUP BY ...]")
	fmt.Println("         [HAVING ...] [ORDER BY ...] [LIMIT n];")
	fmt.Println("  UPDATE <table> SET <col>=<val> [WHERE ...];")
	fmt.Println("  DELETE FROM <table> [WHERE ...];")
	fmt.Println()
	fmt.Printf("%s%sAggregates:%s COUNT, SUM, AVG, MIN, MAX with GROUP BY\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%sJoins:%s INNER, LEFT, RIGHT, FULL OUTER\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
}

func (cli *CLI) showTables() {
	names, err := cli.storage.TableNames()
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	if len(names) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Println("No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}

	for i := start; i < len(cli.history); i++ {
		fmt.Printf("  %3d  %s\n", i+1, cli.history[i])
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coredb_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	// Save last 1000 entries
	start := 0
	if len(cli.history) > 1000 {
		start = len(cli.history) - 1000
	}

	for i := start; i < len(cli.history); i++ {
		_, _ = file.WriteString(cli.history[i] + "\n")
	}
}

// importFile reads and executes SQL statements from a file
func (cli *CLI) importFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	statements := splitStatements(string(data))

	successCount := 0
	errorCount := 0

	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		result := cli.engine.Execute(stmt)
		if !result.Success {
			fmt.Printf("%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
			fmt.Printf("      Error: %s\n", result.Message)
			errorCount++
			continue
		}

		successCount++
		if len(result.Rows) > 0 {
			fmt.Printf("%s[%d] ✓ %s (%d rows)%s\n", SuccessColor, i+1, truncate(stmt, 50), len(result.Rows), ResetColor)
		} else {
			fmt.Printf("%s[%d] ✓ %s%s\n", SuccessColor, i+1, truncate(stmt, 50), ResetColor)
		}
	}

	fmt.Printf("\n%s✓ Import complete: %d succeeded, %d failed%s\n",
		SuccessColor, successCount, errorCount, ResetColor)

	return nil
}

// splitStatements splits SQL content into individual statements
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	inString := false
	stringChar := byte(0)

	for i := 0; i < len(content); i++ {
		ch := content[i]

		// Handle string literals
		if (ch == '\'' || ch == '"') && (i == 0 || content[i-1] != '\\') {
			if !inString {
				inString = true
				stringChar = ch
			} else if ch == stringChar {
				inString = false
			}
		}

		// Handle comments
		if !inString && ch == '-' && i+1 < len(content) && content[i+1] == '-' {
			// Skip to end of line
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}

		// Statement separator
		if !inString && ch == ';' {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	// Handle last statement without semicolon
	stmt := strings.TrimSpace(current.String())
	if stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
