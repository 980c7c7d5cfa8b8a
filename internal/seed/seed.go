// Package seed loads the bundled starter catalogue into an empty store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

//go:embed catalogue.json
var catalogueJSON []byte

// Dataset is an entry of the reference list of NASA Open Science Data
// Repository studies.
type Dataset struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	DataPoints int    `json:"dataPoints"`
}

// DatasetSource names the repository the reference datasets come from.
const DatasetSource = "NASA Open Science Data Repository"

// Catalogue is the bundled starter content.
type Catalogue struct {
	Experiments []domain.ExperimentInput `json:"experiments"`
	Papers      []domain.PaperInput      `json:"papers"`
	Datasets    []Dataset                `json:"datasets"`
}

// Load parses the embedded catalogue.
func Load() (*Catalogue, error) {
	var c Catalogue
	if err := json.Unmarshal(catalogueJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalogue: %w", err)
	}
	return &c, nil
}

// ReferenceDatasets returns the static dataset list served by the
// external-datasets endpoint.
func ReferenceDatasets() []Dataset {
	c, err := Load()
	if err != nil {
		return []Dataset{}
	}
	return c.Datasets
}

// Result reports how many records Apply inserted.
type Result struct {
	Experiments int
	Papers      int
}

// Apply inserts the catalogue's experiments when the store holds none and
// its papers when the store holds none. Experiments are enriched before
// they are stored.
func Apply(ctx context.Context, store *ports.Store, c *Catalogue, now time.Time, logger *slog.Logger) (Result, error) {
	var res Result

	count, err := store.Experiments.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count experiments: %w", err)
	}
	if count == 0 {
		for _, in := range c.Experiments {
			e, err := domain.NewExperiment(in, now)
			if err != nil {
				return res, fmt.Errorf("invalid seed experiment %q: %w", in.Code, err)
			}
			enriched := analysis.Enrich(*e)
			if err := store.Experiments.Create(ctx, &enriched); err != nil {
				if errors.Is(err, domain.ErrDuplicateCode) {
					logger.Warn("seed experiment already present", "code", e.Code)
					continue
				}
				return res, fmt.Errorf("failed to store seed experiment %q: %w", e.Code, err)
			}
			res.Experiments++
		}
	}

	count, err = store.Papers.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count papers: %w", err)
	}
	if count == 0 {
		for _, in := range c.Papers {
			p, err := domain.NewPaper(uuid.NewString(), in)
			if err != nil {
				return res, fmt.Errorf("invalid seed paper %q: %w", in.Title, err)
			}
			if err := store.Papers.Create(ctx, p); err != nil {
				return res, fmt.Errorf("failed to store seed paper %q: %w", p.Title, err)
			}
			res.Papers++
		}
	}

	if res.Experiments > 0 || res.Papers > 0 {
		logger.Info("seeded catalogue", "experiments", res.Experiments, "papers", res.Papers)
	}
	return res, nil
}
