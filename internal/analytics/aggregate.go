package analytics

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

const (
	// ActiveWindow is how far back an experiment's creation counts as active.
	ActiveWindow = 30 * 24 * time.Hour

	// cancelCheckInterval is how many records are processed between
	// context checks.
	cancelCheckInterval = 256
)

// Clock returns the current time.
type Clock func() time.Time

// DefaultInsights are the advisory lines attached to every snapshot. They
// are fixed text, not measurements.
var DefaultInsights = []string{
	"Plant biology experiments show 23% higher success rate in long duration missions",
	"Microgravity effects are most pronounced in first 30 days",
	"Cell biology studies require additional radiation protection",
}

// Aggregator computes snapshots over the full catalogue.
type Aggregator struct {
	now      Clock
	insights []string
}

// NewAggregator creates an aggregator. A nil clock uses time.Now and nil
// insights use DefaultInsights.
func NewAggregator(now Clock, insights []string) *Aggregator {
	if now == nil {
		now = time.Now
	}
	if insights == nil {
		insights = DefaultInsights
	}
	return &Aggregator{now: now, insights: insights}
}

// Aggregate summarizes experiments and data points. It stops early with
// ctx.Err() if ctx is cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, experiments []domain.Experiment, dataPoints []domain.DataPointSummary) (domain.Snapshot, error) {
	processed := 0
	for i, dp := range dataPoints {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Snapshot{}, err
			}
		}
		if dp.Processed {
			processed++
		}
	}
	return a.summarize(ctx, experiments, processed)
}

func (a *Aggregator) summarize(ctx context.Context, experiments []domain.Experiment, processed int) (domain.Snapshot, error) {
	now := a.now().UTC()
	windowStart := now.Add(-ActiveWindow)

	categories := newTally()
	missions := newTally()
	active := 0

	for i := range experiments {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Snapshot{}, err
			}
		}
		e := &experiments[i]

		if !e.CreatedAt.Before(windowStart) && !e.CreatedAt.After(now) {
			active++
		}
		categories.add(string(e.Category))
		missions.add(MissionLabel(e.Impact))
	}

	insights := make([]domain.Insight, len(a.insights))
	for i, text := range a.insights {
		insights[i] = domain.Insight{Text: text, Synthetic: true}
	}

	return domain.Snapshot{
		GeneratedAt:          now,
		TotalExperiments:     len(experiments),
		ActiveExperiments:    active,
		DataPointsProcessed:  processed,
		CategoryDistribution: categories.buckets(len(experiments)),
		MissionDistribution:  missions.buckets(len(experiments)),
		Insights:             insights,
	}, nil
}

// MissionLabel buckets an impact statement by destination. Mars takes
// precedence over the Moon.
func MissionLabel(impact string) string {
	lower := strings.ToLower(impact)
	switch {
	case strings.Contains(lower, "mars"):
		return domain.MissionMars
	case strings.Contains(lower, "moon"):
		return domain.MissionMoon
	default:
		return domain.MissionOther
	}
}

// tally counts labels in first-seen order.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(label string) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

func (t *tally) buckets(total int) []domain.Bucket {
	out := make([]domain.Bucket, 0, len(t.order))
	for _, label := range t.order {
		n := t.counts[label]
		out = append(out, domain.Bucket{
			Label:      label,
			Count:      n,
			Percentage: percentage(n, total),
		})
	}
	return out
}

func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}
