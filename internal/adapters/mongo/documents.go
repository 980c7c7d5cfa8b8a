package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

type analysisDoc struct {
	Sentiment  float64            `bson:"sentiment"`
	Complexity float64            `bson:"complexity"`
	Keywords   []string           `bson:"keywords"`
	Prediction *domain.Prediction `bson:"predictions,omitempty"`
}

type experimentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Code         string             `bson:"code"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Impact       string             `bson:"impact"`
	Organism     string             `bson:"organism"`
	Mission      string             `bson:"mission"`
	DurationDays int                `bson:"durationDays"`
	Category     string             `bson:"category"`
	CreatedAt    time.Time          `bson:"dateCreated"`
	Analysis     *analysisDoc       `bson:"aiAnalysis,omitempty"`
}

func toExperimentDoc(e *domain.Experiment) experimentDoc {
	return experimentDoc{
		Code:         e.Code,
		Title:        e.Title,
		Description:  e.Description,
		Impact:       e.Impact,
		Organism:     e.Organism,
		Mission:      e.Mission,
		DurationDays: e.DurationDays,
		Category:     string(e.Category),
		CreatedAt:    e.CreatedAt.UTC(),
		Analysis:     toAnalysisDoc(e.Analysis),
	}
}

func toAnalysisDoc(a *domain.Analysis) *analysisDoc {
	if a == nil {
		return nil
	}
	return &analysisDoc{
		Sentiment:  a.Sentiment,
		Complexity: a.Complexity,
		Keywords:   a.Keywords,
		Prediction: a.Prediction,
	}
}

func (d experimentDoc) toDomain() domain.Experiment {
	e := domain.Experiment{
		Code:         d.Code,
		Title:        d.Title,
		Description:  d.Description,
		Impact:       d.Impact,
		Organism:     d.Organism,
		Mission:      d.Mission,
		DurationDays: d.DurationDays,
		Category:     domain.Category(d.Category),
		CreatedAt:    d.CreatedAt.UTC(),
	}
	if d.Analysis != nil {
		e.Analysis = &domain.Analysis{
			Sentiment:  d.Analysis.Sentiment,
			Complexity: d.Analysis.Complexity,
			Keywords:   d.Analysis.Keywords,
			Prediction: d.Analysis.Prediction,
		}
		if e.Analysis.Keywords == nil {
			e.Analysis.Keywords = []string{}
		}
	}
	return e
}

type dataPointDoc struct {
	ID              string    `bson:"_id"`
	ExperimentCode  string    `bson:"experimentId"`
	Timestamp       time.Time `bson:"timestamp"`
	MeasurementType string    `bson:"measurementType"`
	Value           any       `bson:"value"`
	Unit            string    `bson:"unit,omitempty"`
	Quality         float64   `bson:"quality"`
	Processed       bool      `bson:"processed"`
	Source          string    `bson:"source"`
}

func toDataPointDoc(dp *domain.DataPoint) dataPointDoc {
	return dataPointDoc{
		ID:              dp.ID,
		ExperimentCode:  dp.ExperimentCode,
		Timestamp:       dp.Timestamp.UTC(),
		MeasurementType: dp.MeasurementType,
		Value:           dp.Value.Interface(),
		Unit:            dp.Unit,
		Quality:         dp.Quality,
		Processed:       dp.Processed,
		Source:          dp.Source,
	}
}

func (d dataPointDoc) toDomain() (domain.DataPoint, error) {
	value, err := domain.ValueOf(d.Value)
	if err != nil {
		return domain.DataPoint{}, fmt.Errorf("data point %s: %w", d.ID, err)
	}
	return domain.DataPoint{
		ID:              d.ID,
		ExperimentCode:  d.ExperimentCode,
		Timestamp:       d.Timestamp.UTC(),
		MeasurementType: d.MeasurementType,
		Value:           value,
		Unit:            d.Unit,
		Quality:         d.Quality,
		Processed:       d.Processed,
		Source:          d.Source,
	}, nil
}

type paperDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Summary     string     `bson:"summary"`
	URL         string     `bson:"url"`
	Relevance   int        `bson:"relevance"`
	Authors     []string   `bson:"authors"`
	Keywords    []string   `bson:"keywords"`
	Citations   int        `bson:"citations"`
	PublishedAt *time.Time `bson:"publishDate,omitempty"`
}

func toPaperDoc(p *domain.Paper) paperDoc {
	return paperDoc{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		URL:         p.URL,
		Relevance:   p.Relevance,
		Authors:     p.Authors,
		Keywords:    p.Keywords,
		Citations:   p.Citations,
		PublishedAt: p.PublishedAt,
	}
}

func (d paperDoc) toDomain() domain.Paper {
	p := domain.Paper{
		ID:          d.ID,
		Title:       d.Title,
		Summary:     d.Summary,
		URL:         d.URL,
		Relevance:   d.Relevance,
		Authors:     d.Authors,
		Keywords:    d.Keywords,
		Citations:   d.Citations,
		PublishedAt: d.PublishedAt,
	}
	if p.Authors == nil {
		p.Authors = []string{}
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p
}

type snapshotDoc struct {
	ID                   string           `bson:"_id"`
	GeneratedAt          time.Time        `bson:"timestamp"`
	TotalExperiments     int              `bson:"totalExperiments"`
	ActiveExperiments    int              `bson:"activeExperiments"`
	DataPointsProcessed  int              `bson:"dataPointsProcessed"`
	CategoryDistribution []domain.Bucket  `bson:"categoryDistribution"`
	MissionDistribution  []domain.Bucket  `bson:"missionDistribution"`
	Insights             []domain.Insight `bson:"insights"`
}

func toSnapshotDoc(s *domain.Snapshot) snapshotDoc {
	return snapshotDoc{
		ID:                   s.ID,
		GeneratedAt:          s.GeneratedAt.UTC(),
		TotalExperiments:     s.TotalExperiments,
		ActiveExperiments:    s.ActiveExperiments,
		DataPointsProcessed:  s.DataPointsProcessed,
		CategoryDistribution: s.CategoryDistribution,
		MissionDistribution:  s.MissionDistribution,
		Insights:             s.Insights,
	}
}

func (d snapshotDoc) toDomain() domain.Snapshot {
	return domain.Snapshot{
		ID:                   d.ID,
		GeneratedAt:          d.GeneratedAt.UTC(),
		TotalExperiments:     d.TotalExperiments,
		ActiveExperiments:    d.ActiveExperiments,
		DataPointsProcessed:  d.DataPointsProcessed,
		CategoryDistribution: d.CategoryDistribution,
		MissionDistribution:  d.MissionDistribution,
		Insights:             d.Insights,
	}
}
