package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryPlantBiology  Category = "Plant Biology"
	CategoryCellBiology   Category = "Cell Biology"
	CategoryMicrobiology  Category = "Microbiology"
	CategoryAnimalBiology Category = "Animal Biology"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryPlantBiology,
	CategoryCellBiology,
	CategoryMicrobiology,
	CategoryAnimalBiology,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named by s or a ValidationError.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
	}
	return c, nil
}

// Experiment is a catalogued space-biology study. Code is its stable,
// unique identifier (serialized as "id" for compatibility with the
// dashboard client).
type Experiment struct {
	Code         string    `json:"id" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Impact       string    `json:"impact" validate:"required"`
	Organism     string    `json:"organism" validate:"required"`
	Mission      string    `json:"mission" validate:"required"`
	DurationDays int       `json:"durationDays" validate:"gte=0"`
	Category     Category  `json:"category" validate:"required,category"`
	CreatedAt    time.Time `json:"dateCreated"`
	Analysis     *Analysis `json:"aiAnalysis,omitempty"`
}

// Duration renders the day count the way the catalogue displays it.
func (e Experiment) Duration() string {
	return FormatDuration(e.DurationDays)
}

func (e Experiment) MarshalJSON() ([]byte, error) {
	type plain Experiment
	return json.Marshal(struct {
		plain
		Duration string `json:"duration"`
	}{plain(e), e.Duration()})
}

// Analysis holds the derived enrichment fields of an experiment.
type Analysis struct {
	Sentiment  float64     `json:"sentiment"`
	Complexity float64     `json:"complexity"`
	Keywords   []string    `json:"keywords"`
	Prediction *Prediction `json:"predictions,omitempty"`
}

// Prediction is the heuristic outcome estimate for an experiment.
type Prediction struct {
	SuccessProbability float64  `json:"successProbability"`
	RiskFactors        []string `json:"riskFactors"`
	Recommendations    []string `json:"recommendations"`
}

// ExperimentInput carries the raw fields of a new experiment as submitted
// by a client or read from the seed catalogue.
type ExperimentInput struct {
	Code        string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Organism    string `json:"organism"`
	Mission     string `json:"mission"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
}

// NewExperiment parses and validates input. The duration string is parsed
// once here; a malformed duration is rejected rather than defaulted.
func NewExperiment(in ExperimentInput, createdAt time.Time) (*Experiment, error) {
	days, err := ParseDuration(in.Duration)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		Code:         strings.TrimSpace(in.Code),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Impact:       strings.TrimSpace(in.Impact),
		Organism:     strings.TrimSpace(in.Organism),
		Mission:      strings.TrimSpace(in.Mission),
		DurationDays: days,
		Category:     Category(strings.TrimSpace(in.Category)),
		CreatedAt:    createdAt.UTC(),
	}
	if err := Validate(e); err != nil {
		return nil, err
	}
	return e, nil
}

var durationPattern = regexp.MustCompile(`(?i)^(\d+)\s*(d|days?)?$`)

// ParseDuration converts strings such as "30 days", "1 day" or "45" into a
// day count.
func ParseDuration(s string) (int, error) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &ValidationError{Field: "duration", Message: fmt.Sprintf("cannot parse %q as a day count", s)}
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, &ValidationError{Field: "duration", Message: fmt.Sprintf("day count %q out of range", m[1])}
	}
	return days, nil
}

func FormatDuration(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
