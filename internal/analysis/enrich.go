package analysis

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// Enrich returns a copy of e with Analysis filled in from its text and
// attributes. A failure inside the analyzers is logged and the copy is
// returned without Analysis; the other fields are never touched.
func Enrich(e domain.Experiment) (out domain.Experiment) {
	out = e
	defer func() {
		if r := recover(); r != nil {
			slog.Error("experiment enrichment failed",
				"code", e.Code,
				"panic", fmt.Sprint(r),
			)
			out = e
			out.Analysis = nil
		}
	}()

	text := AnalyzeText(strings.Join([]string{e.Title, e.Description, e.Impact}, " "))
	prediction := PredictOutcome(InputFor(e))

	out.Analysis = &domain.Analysis{
		Sentiment:  text.Sentiment,
		Complexity: text.Complexity,
		Keywords:   text.Keywords,
		Prediction: &prediction,
	}
	return out
}
