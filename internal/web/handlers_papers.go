package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

func (s *Server) handleListPapers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := ports.PaperQuery{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  paperListLimit,
	}

	if raw := strings.TrimSpace(q.Get("relevance")); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, &domain.ValidationError{Field: "relevance", Message: "must be an integer"})
			return
		}
		query.MinRelevance = floor
	}

	papers, err := s.papers.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(papers))
}
