package web

import (
	"net/http"
	"strconv"

	"github.com/robinrobin1706/space-biology/internal/analytics"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.analytics.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleAnalyticsHistory(w http.ResponseWriter, r *http.Request) {
	limit := analytics.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, &domain.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	history, err := s.analytics.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(history))
}
