package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/db"
)

// Server exposes the CoreDB engine over HTTP.
type Server struct {
	instance   *coredb.Instance
	mu         sync.Mutex
	engine     *db.Executor
	history    *sessionHistory
	authConfig *AuthConfig
	limits     Limits
	httpServer *http.Server
	listener   net.Listener
}

// Limits bounds per-request work.
type Limits struct {
	MaxQueryLength int
	MaxResultRows  int
	MaxHistory     int
}

var defaultLimits = Limits{
	MaxQueryLength: 10000,
	MaxResultRows:  1000,
	MaxHistory:     100,
}

// NewServer creates an HTTP server around the given CoreDB instance.
func NewServer(instance *coredb.Instance, authConfig *AuthConfig, limits Limits) *Server {
	if limits.MaxQueryLength == 0 {
		limits = defaultLimits
	}
	return &Server{
		instance:   instance,
		engine:     instance.Executor(),
		history:    newSessionHistory(limits.MaxHistory),
		authConfig: authConfig,
		limits:     limits,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/execute", s.authConfig.requireAuth(s.handleExecute))
	mux.HandleFunc("GET /api/v1/history", s.authConfig.requireAuth(s.handleHistory))
	mux.HandleFunc("GET /api/v1/tables", s.authConfig.requireAuth(s.handleTables))
	mux.HandleFunc("POST /api/v1/reset", s.authConfig.requireAuth(s.handleReset))
	mux.HandleFunc("POST /api/v1/chat", s.handleChat)
	return mux
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener
	s.httpServer = &http.Server{Handler: s.routes()}

	log.Printf("SQL server listening on %s", listener.Addr())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Serve error: %v", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "CoreDB SQL server",
		"version": Version,
		"endpoints": map[string]string{
			"execute": "POST /api/v1/execute",
			"history": "GET /api/v1/history",
			"tables":  "GET /api/v1/tables",
			"reset":   "POST /api/v1/reset",
			"chat":    "POST /api/v1/chat",
			"health":  "GET /health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": float64(time.Now().UnixNano()) / 1e9,
		"version":   Version,
	})
}

// handleExecute runs one SQL statement. Statements are serialized on
// the engine mutex; the storage layer itself is not transactional.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "query cannot be empty")
		return
	}
	if len(query) > s.limits.MaxQueryLength {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("query exceeds maximum length of %d", s.limits.MaxQueryLength))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	result := s.engine.Execute(query)
	s.mu.Unlock()

	timeMs := float64(result.ExecutionTime.Microseconds()) / 1000

	s.history.Record(sessionID, QueryRecord{
		Query:        query,
		Timestamp:    float64(time.Now().UnixNano()) / 1e9,
		Success:      result.Success,
		TimeMs:       timeMs,
		AffectedRows: result.AffectedRows,
	})

	resp := ExecuteResponse{
		Success:      result.Success,
		TimeMs:       timeMs,
		Message:      result.Message,
		AffectedRows: result.AffectedRows,
		SessionID:    sessionID,
	}
	if result.Success {
		resp.Result = result.Rows
		resp.Columns = result.Columns
		if s.limits.MaxResultRows > 0 && len(resp.Result) > s.limits.MaxResultRows {
			resp.Result = resp.Result[:s.limits.MaxResultRows]
			resp.Truncated = true
		}
	} else {
		resp.Error = result.Message
		log.Printf("Query failed: %s", result.Message)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	queries, total := s.history.Get(sessionID, limit)
	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID: sessionID,
		Queries:   queries,
		Total:     total,
	})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage := s.instance.Storage
	names, err := storage.TableNames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		table, err := storage.GetTable(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		columns := make([]ColumnInfo, len(table.Columns))
		for i, col := range table.Columns {
			columns[i] = ColumnInfo{
				Name:       col.Name,
				Type:       string(col.Type),
				Nullable:   col.Nullable,
				PrimaryKey: col.PrimaryKey,
				ForeignKey: col.ForeignKey,
			}
		}
		tables = append(tables, TableInfo{
			Name:     name,
			Columns:  columns,
			RowCount: len(table.Rows),
		})
	}

	writeJSON(w, http.StatusOK, TablesResponse{
		Success:     true,
		Tables:      tables,
		TotalTables: len(tables),
	})
}

// handleReset drops every table and clears session history.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage := s.instance.Storage
	names, err := storage.TableNames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, name := range names {
		if _, err := storage.DropTable(name); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.history.Clear()

	log.Printf("Database reset, %d table(s) dropped", len(names))
	writeJSON(w, http.StatusOK, ResetResponse{
		Success:       true,
		Message:       "Database reset successfully",
		TablesDropped: len(names),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  chatReply(req.Message),
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
	})
}
