package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

func (s *Server) handleCreateDataPoint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.DataPointInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	dp, err := domain.NewDataPoint(uuid.NewString(), in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.dataPoints.Create(ctx, dp); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.DataPointIngested(ctx, dp)

	if dp.Quality > s.cfg.QualityThreshold {
		s.scheduleEnrichment(dp.ExperimentCode, dp.ID)
	}

	writeJSON(w, http.StatusCreated, dp)
}

func (s *Server) handleListDataPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.dataPoints.ListByExperiment(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(points))
}

// scheduleEnrichment refreshes the analysis of the experiment that owns a
// high-quality data point. It runs detached from the request; failures are
// only logged.
func (s *Server) scheduleEnrichment(code, dataPointID string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
		defer cancel()

		logger := s.logger.With("code", code, "dataPoint", dataPointID)

		e, err := s.experiments.GetByCode(ctx, code)
		if err != nil {
			logger.Error("enrichment lookup failed", "error", err)
			return
		}
		if e == nil {
			logger.Debug("skipping enrichment of unknown experiment")
			return
		}

		enriched := analysis.Enrich(*e)
		if enriched.Analysis == nil {
			return
		}
		if err := s.experiments.UpdateAnalysis(ctx, code, enriched.Analysis); err != nil {
			logger.Error("enrichment update failed", "error", err)
			return
		}
		logger.Info("experiment enriched")
	}()
}
