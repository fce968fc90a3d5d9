// Package main provides an HTTP SQL server for CoreDB.
package main

import (
	"encoding/json"
	"net/http"

	"github.com/coredb-io/coredb/core"
)

// ExecuteRequest is the body of POST /api/v1/execute.
type ExecuteRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// ExecuteResponse carries the outcome of one statement.
type ExecuteResponse struct {
	Success      bool       `json:"success"`
	Result       []core.Row `json:"result,omitempty"`
	Columns      []string   `json:"columns,omitempty"`
	TimeMs       float64    `json:"time_ms"`
	Message      string     `json:"message,omitempty"`
	Error        string     `json:"error,omitempty"`
	AffectedRows int        `json:"affected_rows"`
	SessionID    string     `json:"session_id,omitempty"`
	Truncated    bool       `json:"truncated,omitempty"`
}

// QueryRecord is one entry in a session's query history.
type QueryRecord struct {
	Query        string  `json:"query"`
	Timestamp    float64 `json:"timestamp"`
	Success      bool    `json:"success"`
	TimeMs       float64 `json:"time_ms"`
	AffectedRows int     `json:"affected_rows"`
}

// HistoryResponse is the body of GET /api/v1/history.
type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	Queries   []QueryRecord `json:"queries"`
	Total     int           `json:"total"`
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Nullable   bool             `json:"nullable"`
	PrimaryKey bool             `json:"primary_key"`
	ForeignKey *core.ForeignKey `json:"foreign_key,omitempty"`
}

// TableInfo describes one table and its row count.
type TableInfo struct {
	Name     string       `json:"name"`
	Columns  []ColumnInfo `json:"columns"`
	RowCount int          `json:"row_count"`
}

// TablesResponse is the body of GET /api/v1/tables.
type TablesResponse struct {
	Success     bool        `json:"success"`
	Tables      []TableInfo `json:"tables"`
	TotalTables int         `json:"total_tables"`
}

// ResetResponse is the body of POST /api/v1/reset.
type ResetResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TablesDropped int    `json:"tables_dropped"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response  string  `json:"response"`
	Timestamp float64 `json:"timestamp"`
}

// ErrorResponse is the uniform error body for non-engine failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message})
}
