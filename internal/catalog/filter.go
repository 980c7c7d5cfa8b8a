// Package catalog selects experiments matching a filter spec.
package catalog

import (
	"strings"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// FieldSet selects which experiment fields a search query is matched
// against.
type FieldSet uint8

const (
	FieldTitle FieldSet = 1 << iota
	FieldCode
	FieldDescription
	FieldOrganism
)

const (
	// BackendFields is searched by the experiment list endpoint.
	BackendFields = FieldTitle | FieldDescription | FieldOrganism
	// SuggestionFields is searched by type-ahead suggestions.
	SuggestionFields = FieldTitle | FieldCode

	DefaultSuggestionLimit = 6
)

func (fs FieldSet) Has(f FieldSet) bool { return fs&f != 0 }

func (fs FieldSet) values(e *domain.Experiment) []string {
	out := make([]string, 0, 4)
	if fs.Has(FieldTitle) {
		out = append(out, e.Title)
	}
	if fs.Has(FieldCode) {
		out = append(out, e.Code)
	}
	if fs.Has(FieldDescription) {
		out = append(out, e.Description)
	}
	if fs.Has(FieldOrganism) {
		out = append(out, e.Organism)
	}
	return out
}

// Spec is a filter specification. Zero-valued fields are unconstrained.
type Spec struct {
	Category domain.Category
	// Mission is matched against the experiment's Impact text, which is
	// where the catalogue names destinations such as Mars or the Moon.
	Mission string
	Search  string
	Fields  FieldSet
}

// IsZero reports whether the spec constrains nothing.
func (s Spec) IsZero() bool {
	return s.Category == "" && s.Mission == "" && s.Search == ""
}

// Matches reports whether e satisfies every constraint in s.
func (s Spec) Matches(e *domain.Experiment) bool {
	if s.Category != "" && e.Category != s.Category {
		return false
	}
	if s.Mission != "" && !ContainsFold(e.Impact, s.Mission) {
		return false
	}
	if s.Search == "" {
		return true
	}
	fields := s.Fields
	if fields == 0 {
		fields = BackendFields
	}
	for _, v := range fields.values(e) {
		if ContainsFold(v, s.Search) {
			return true
		}
	}
	return false
}

// Filter returns the records matching spec in their input order. The
// result is never nil.
func Filter(records []domain.Experiment, spec Spec) []domain.Experiment {
	out := make([]domain.Experiment, 0, len(records))
	for i := range records {
		if spec.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Suggest returns up to limit experiments whose title or code contains
// query. A blank query suggests nothing.
func Suggest(records []domain.Experiment, query string, limit int) []domain.Experiment {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Experiment{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	spec := Spec{Search: query, Fields: SuggestionFields}
	out := make([]domain.Experiment, 0, limit)
	for i := range records {
		if len(out) == limit {
			break
		}
		if spec.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// ContainsFold reports whether substr occurs in s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
