package analysis

import (
	"strings"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

const (
	baseProbability = 0.70
	maxProbability  = 0.95

	RiskLongDuration = "long_duration"

	RecommendShielding    = "Consider additional radiation shielding"
	RecommendLightControl = "Monitor light exposure carefully"
)

// PredictionInput carries the attributes the predictor looks at.
type PredictionInput struct {
	DurationDays int             `json:"durationDays"`
	Category     domain.Category `json:"category"`
	Organism     string          `json:"organism"`
}

// InputFor extracts the predictor's view of an experiment.
func InputFor(e domain.Experiment) PredictionInput {
	return PredictionInput{
		DurationDays: e.DurationDays,
		Category:     e.Category,
		Organism:     e.Organism,
	}
}

type rule struct {
	applies        func(PredictionInput) bool
	boost          float64
	risk           string
	recommendation string
}

// rules are evaluated in order; recommendations keep that order.
var rules = []rule{
	{
		applies:        func(in PredictionInput) bool { return in.DurationDays > 90 },
		boost:          0.10,
		recommendation: RecommendShielding,
	},
	{
		applies:        func(in PredictionInput) bool { return in.Category == domain.CategoryPlantBiology },
		boost:          0.05,
		recommendation: RecommendLightControl,
	},
	{
		applies: func(in PredictionInput) bool { return strings.Contains(strings.ToLower(in.Organism), "cell") },
		boost:   0.08,
	},
	{
		applies: func(in PredictionInput) bool { return in.DurationDays > 180 },
		risk:    RiskLongDuration,
	},
}

// PredictOutcome estimates success probability, risks and recommendations
// for an experiment. The probability is always within [0, 0.95].
func PredictOutcome(in PredictionInput) domain.Prediction {
	p := domain.Prediction{
		SuccessProbability: baseProbability,
		RiskFactors:        []string{},
		Recommendations:    []string{},
	}

	for _, r := range rules {
		if !r.applies(in) {
			continue
		}
		p.SuccessProbability += r.boost
		if r.risk != "" {
			p.RiskFactors = append(p.RiskFactors, r.risk)
		}
		if r.recommendation != "" {
			p.Recommendations = append(p.Recommendations, r.recommendation)
		}
	}

	p.SuccessProbability = round2(clamp(p.SuccessProbability, 0, maxProbability))
	return p
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
