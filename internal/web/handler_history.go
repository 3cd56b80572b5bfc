package web

import (
	"fmt"
	"net/http"
)

const historyPageSize = 50

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !s.service.HistoryEnabled() {
		http.NotFound(w, r)
		return
	}

	recs, err := s.service.ListHistory(r.Context(), historyPageSize)
	if err != nil {
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		s.logger.Error("list history failed", "error", err)
		return
	}

	if err := s.renderPage(w, http.StatusOK,
		map[string]any{"Entries": recs, "ActiveNav": "history", "HistoryEnabled": true},
		"base.html", "pages/history.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// humanBytes formats n as B, KB or MB with one decimal.
func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
