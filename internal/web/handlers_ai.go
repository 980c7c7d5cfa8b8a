package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

type analyzeTextRequest struct {
	Text string `json:"text"`
}

// predictRequest accepts the duration as either a display string
// ("30 days") or a bare number of days.
type predictRequest struct {
	Duration json.RawMessage `json:"duration"`
	Category string          `json:"category"`
	Organism string          `json:"organism"`
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis.AnalyzeText(req.Text))
}

func (s *Server) handlePredictOutcome(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis.PredictOutcome(in))
}

func (req predictRequest) input() (analysis.PredictionInput, error) {
	in := analysis.PredictionInput{Organism: strings.TrimSpace(req.Organism)}

	raw := strings.TrimSpace(string(req.Duration))
	if raw == "" || raw == "null" {
		return in, &domain.ValidationError{Field: "duration", Message: "is required"}
	}
	var text string
	if err := json.Unmarshal(req.Duration, &text); err != nil {
		// Not a string: take the literal, e.g. 120.
		text = raw
	}
	days, err := domain.ParseDuration(text)
	if err != nil {
		return in, err
	}
	in.DurationDays = days

	if c := strings.TrimSpace(req.Category); c != "" {
		category, err := domain.ParseCategory(c)
		if err != nil {
			return in, err
		}
		in.Category = category
	}
	return in, nil
}
