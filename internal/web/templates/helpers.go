package templates

import (
	"github.com/a-h/templ"

	"github.com/robinrobin1706/space-biology/internal/util"
)

func text(s string) string {
	return templ.EscapeString(s)
}

func formatProbability(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return util.FormatPercent(*p)
}

func categoryCounts(rows []ExperimentRow) ([]string, map[string]int) {
	var order []string
	counts := make(map[string]int)
	for _, r := range rows {
		if _, ok := counts[r.Category]; !ok {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}
	return order, counts
}
