package main

import "sync"

// sessionHistory keeps a bounded per-session record of executed
// queries, in memory only.
type sessionHistory struct {
	mu       sync.Mutex
	max      int
	sessions map[string][]QueryRecord
}

func newSessionHistory(max int) *sessionHistory {
	return &sessionHistory{
		max:      max,
		sessions: make(map[string][]QueryRecord),
	}
}

func (h *sessionHistory) Record(sessionID string, record QueryRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	records := append(h.sessions[sessionID], record)
	if len(records) > h.max {
		records = records[len(records)-h.max:]
	}
	h.sessions[sessionID] = records
}

// Get returns the last limit records for a session and the total
// count held.
func (h *sessionHistory) Get(sessionID string, limit int) ([]QueryRecord, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	records := h.sessions[sessionID]
	total := len(records)
	if limit > 0 && limit < total {
		records = records[total-limit:]
	}

	out := make([]QueryRecord, len(records))
	copy(out, records)
	return out, total
}

func (h *sessionHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = make(map[string][]QueryRecord)
}
