package api

import (
	"encoding/json"
	"net/http"
)

// handleLLMStats exposes a snapshot of recent model call latencies.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	snap := s.stats.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.Error("encode stats", "error", err)
	}
}
