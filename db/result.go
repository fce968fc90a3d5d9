package db

import (
	"fmt"
	"os"
	"time"

	"github.com/coredb-io/coredb/core"
)

// QueryResult is the uniform outcome envelope for every statement.
type QueryResult struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	Columns       []string      `json:"columns,omitempty"`
	Rows          []core.Row    `json:"rows,omitempty"`
	AffectedRows  int           `json:"affected_rows"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// formatDuration renders an execution time in human-readable form.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < 10*time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// Display prints the result to stdout: a formatted table when rows
// are present, then a compact status line.
func (result QueryResult) Display() {
	if len(result.Rows) > 0 {
		table := NewTable(os.Stdout)
		table.Header(result.Columns)
		for _, row := range result.Rows {
			cells := make([]string, len(result.Columns))
			for i, column := range result.Columns {
				cells[i] = row[column].String()
			}
			table.Row(cells)
		}
		table.Render()
	}

	status := "OK"
	if !result.Success {
		status = "ERROR"
	}
	fmt.Printf("%s: %s (%d rows, %s)\n",
		status, result.Message, result.AffectedRows, formatDuration(result.ExecutionTime))
}
