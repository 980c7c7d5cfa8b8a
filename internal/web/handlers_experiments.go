package web

import (
	"net/http"
	"strings"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

type experimentDetail struct {
	Experiment *domain.Experiment `json:"experiment"`
	DataPoints []domain.DataPoint `json:"dataPoints"`
}

func (s *Server) handleListExperiments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec, err := catalog.ParseSpec(q.Get("category"), q.Get("mission"), q.Get("search"), catalog.BackendFields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	records, err := s.experiments.List(r.Context(), spec, experimentListLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The store narrows the rows; the in-process engine has the last word.
	writeJSON(w, http.StatusOK, catalog.Filter(records, spec))
}

func (s *Server) handleGetExperiment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	e, err := s.experiments.GetByCode(ctx, code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if e == nil {
		writeMessage(w, http.StatusNotFound, "experiment not found")
		return
	}

	points, err := s.dataPoints.ListByExperiment(ctx, code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, experimentDetail{Experiment: e, DataPoints: nonNil(points)})
}

func (s *Server) handleCreateExperiment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.ExperimentInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := domain.NewExperiment(in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	enriched := analysis.Enrich(*e)
	if err := s.experiments.Create(ctx, &enriched); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ExperimentCreated(ctx, enriched.Category)

	writeJSON(w, http.StatusCreated, &enriched)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	spec := catalog.Spec{Search: query, Fields: catalog.SuggestionFields}
	if spec.IsZero() {
		writeJSON(w, http.StatusOK, []domain.Experiment{})
		return
	}

	records, err := s.experiments.List(r.Context(), spec, catalog.DefaultSuggestionLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, catalog.Suggest(records, query, catalog.DefaultSuggestionLimit))
}
