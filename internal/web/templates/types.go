package templates

import "time"

// Landing is the view model of the index page.
type Landing struct {
	Experiments []ExperimentRow
	Datasets    []DatasetRow
	GeneratedAt time.Time
}

type ExperimentRow struct {
	Code     string
	Title    string
	Category string
	Organism string
	Mission  string
	Duration string
	// SuccessProbability is nil for experiments without analysis.
	SuccessProbability *float64
}

type DatasetRow struct {
	ID         string
	Title      string
	Status     string
	DataPoints int
}
