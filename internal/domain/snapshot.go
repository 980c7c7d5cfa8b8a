package domain

import "time"

// Mission labels used to bucket experiments by destination.
const (
	MissionMars  = "Mars"
	MissionMoon  = "Moon"
	MissionOther = "Other"
)

// Snapshot is a point-in-time aggregate over the catalogue. It is never
// mutated once generated.
type Snapshot struct {
	ID                   string    `json:"id"`
	GeneratedAt          time.Time `json:"timestamp"`
	TotalExperiments     int       `json:"totalExperiments"`
	ActiveExperiments    int       `json:"activeExperiments"`
	DataPointsProcessed  int       `json:"dataPointsProcessed"`
	CategoryDistribution []Bucket  `json:"categoryDistribution"`
	MissionDistribution  []Bucket  `json:"missionDistribution"`
	Insights             []Insight `json:"insights"`
}

// Bucket is one slice of a distribution.
type Bucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Insight is an advisory line shown next to a snapshot. Synthetic insights
// are static configuration, not derived from the data.
type Insight struct {
	Text      string `json:"text"`
	Synthetic bool   `json:"synthetic"`
}

// DataPointSummary is the slice of a data point the aggregator looks at.
type DataPointSummary struct {
	Processed bool
}
