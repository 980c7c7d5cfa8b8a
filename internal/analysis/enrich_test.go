package analysis

import (
	"testing"
	"time"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

func TestEnrich(t *testing.T) {
	e := domain.Experiment{
		Code:         "RadGene",
		Title:        "Radiation Effects on Gene Expression",
		Description:  "Investigating DNA damage and repair mechanisms",
		Impact:       "Essential for astronaut health on long-duration Mars missions",
		Organism:     "Human cell cultures",
		Mission:      "ISS",
		DurationDays: 200,
		Category:     domain.CategoryCellBiology,
		CreatedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	got := Enrich(e)

	if got.Analysis == nil {
		t.Fatal("Analysis = nil, want enrichment")
	}
	if e.Analysis != nil {
		t.Error("Enrich mutated its input")
	}
	if got.Code != e.Code || got.Title != e.Title || !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("Enrich changed identifying fields: %+v", got)
	}
	if got.Analysis.Prediction == nil {
		t.Fatal("Prediction = nil")
	}
	if got.Analysis.Prediction.SuccessProbability != 0.88 {
		t.Errorf("SuccessProbability = %v, want 0.88", got.Analysis.Prediction.SuccessProbability)
	}
	if len(got.Analysis.Keywords) == 0 {
		t.Error("Keywords empty, want terms from title and description")
	}
	if got.Analysis.Keywords[0] != "radiation" {
		t.Errorf("Keywords[0] = %q, want %q", got.Analysis.Keywords[0], "radiation")
	}
}
