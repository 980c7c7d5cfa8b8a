package web

import (
	"net/http"
	"time"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/seed"
	"github.com/robinrobin1706/space-biology/internal/web/templates"
)

type externalDatasets struct {
	Source     string         `json:"source"`
	LastUpdate time.Time      `json:"lastUpdate"`
	Datasets   []seed.Dataset `json:"datasets"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := s.experiments.List(ctx, catalog.Spec{}, experimentListLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view := templates.Landing{GeneratedAt: s.now().UTC()}
	for _, e := range records {
		row := templates.ExperimentRow{
			Code:     e.Code,
			Title:    e.Title,
			Category: string(e.Category),
			Organism: e.Organism,
			Mission:  e.Mission,
			Duration: e.Duration(),
		}
		if e.Analysis != nil && e.Analysis.Prediction != nil {
			p := e.Analysis.Prediction.SuccessProbability
			row.SuccessProbability = &p
		}
		view.Experiments = append(view.Experiments, row)
	}
	for _, d := range seed.ReferenceDatasets() {
		view.Datasets = append(view.Datasets, templates.DatasetRow(d))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.LandingPage(view).Render(ctx, w); err != nil {
		s.logger.Error("failed to render landing page", "error", err)
	}
}

func (s *Server) handleExternalDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, externalDatasets{
		Source:     seed.DatasetSource,
		LastUpdate: s.now().UTC(),
		Datasets:   seed.ReferenceDatasets(),
	})
}
