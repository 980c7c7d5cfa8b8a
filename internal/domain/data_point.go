package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultQualityThreshold is the quality above which an ingested data
	// point schedules enrichment of its experiment.
	DefaultQualityThreshold = 0.8

	DefaultDataPointSource = "ISS"

	valueRangeMin = 0
	valueRangeMax = 1000
)

// DataPoint is a single measurement attached to an experiment by code.
// The relation is weak: no store cascades on it.
type DataPoint struct {
	ID              string    `json:"id"`
	ExperimentCode  string    `json:"experimentId" validate:"required"`
	Timestamp       time.Time `json:"timestamp"`
	MeasurementType string    `json:"measurementType" validate:"required"`
	Value           Value     `json:"value"`
	Unit            string    `json:"unit,omitempty"`
	Quality         float64   `json:"quality" validate:"gte=0,lte=1"`
	Processed       bool      `json:"processed"`
	Source          string    `json:"source"`
}

// DataPointInput is a data point as submitted by the ingestion feed.
type DataPointInput struct {
	ExperimentCode  string     `json:"experimentId"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	MeasurementType string     `json:"measurementType"`
	Value           Value      `json:"value"`
	Unit            string     `json:"unit,omitempty"`
	Source          string     `json:"source,omitempty"`
}

// NewDataPoint scores and validates in. A missing timestamp is penalised in
// the quality score and then defaulted to now.
func NewDataPoint(id string, in DataPointInput, now time.Time) (*DataPoint, error) {
	dp := &DataPoint{
		ID:              id,
		ExperimentCode:  strings.TrimSpace(in.ExperimentCode),
		MeasurementType: strings.TrimSpace(in.MeasurementType),
		Value:           in.Value,
		Unit:            strings.TrimSpace(in.Unit),
		Quality:         ScoreQuality(in),
		Processed:       true,
		Source:          strings.TrimSpace(in.Source),
	}
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		dp.Timestamp = in.Timestamp.UTC()
	} else {
		dp.Timestamp = now.UTC()
	}
	if dp.Source == "" {
		dp.Source = DefaultDataPointSource
	}

	if err := Validate(dp); err != nil {
		return nil, err
	}
	return dp, nil
}

// ScoreQuality rates how complete and plausible a submitted data point is,
// from 1 (complete) down to 0.
func ScoreQuality(in DataPointInput) float64 {
	quality := 1.0

	if in.Value.IsZero() {
		quality -= 0.3
	}
	if strings.TrimSpace(in.Unit) == "" {
		quality -= 0.1
	}
	if in.Timestamp == nil || in.Timestamp.IsZero() {
		quality -= 0.2
	}
	if n, ok := in.Value.Float(); ok && (n < valueRangeMin || n > valueRangeMax) {
		quality -= 0.2
	}

	if quality < 0 {
		return 0
	}
	// Subtractions accumulate binary rounding error; keep two decimals.
	return float64(int(quality*100+0.5)) / 100
}

// Value is a measurement that is either a number or a string.
type Value struct {
	num  *float64
	text *string
}

func NumberValue(n float64) Value { return Value{num: &n} }

func TextValue(s string) Value { return Value{text: &s} }

// IsZero reports whether no value was supplied. Empty strings count as
// missing; the number zero does not.
func (v Value) IsZero() bool {
	if v.num != nil {
		return false
	}
	return v.text == nil || strings.TrimSpace(*v.text) == ""
}

func (v Value) Float() (float64, bool) {
	if v.num == nil {
		return 0, false
	}
	return *v.num, true
}

func (v Value) Text() (string, bool) {
	if v.text == nil {
		return "", false
	}
	return *v.text, true
}

// Interface returns the value as float64, string or nil.
func (v Value) Interface() any {
	switch {
	case v.num != nil:
		return *v.num
	case v.text != nil:
		return *v.text
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts a decoded JSON or BSON scalar into a Value.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Value{}, nil
	case float64:
		return NumberValue(x), nil
	case float32:
		return NumberValue(float64(x)), nil
	case int:
		return NumberValue(float64(x)), nil
	case int32:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case string:
		return TextValue(x), nil
	default:
		return Value{}, &ValidationError{Field: "value", Message: fmt.Sprintf("must be a number or a string, got %T", raw)}
	}
}
