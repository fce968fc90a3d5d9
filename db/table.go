package db

import (
	"fmt"
	"io"
	"strings"
)

// SimpleTable renders rows as an ASCII table.
type SimpleTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a new table writer.
func NewTable(w io.Writer) *SimpleTable {
	return &SimpleTable{writer: w}
}

// Header sets the column headers.
func (t *SimpleTable) Header(headers []string) {
	t.headers = headers
}

// Row adds a single row.
func (t *SimpleTable) Row(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the formatted table.
func (t *SimpleTable) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	widths := t.columnWidths()
	separator := t.separator(widths)

	fmt.Fprintln(t.writer, separator)
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.headers, widths))
		fmt.Fprintln(t.writer, separator)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, widths))
	}
	fmt.Fprintln(t.writer, separator)
}

func (t *SimpleTable) columnWidths() []int {
	columns := len(t.headers)
	for _, row := range t.rows {
		if len(row) > columns {
			columns = len(row)
		}
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for i, cell := range row {
			if i < columns && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func (t *SimpleTable) separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func (t *SimpleTable) formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
