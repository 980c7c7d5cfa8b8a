package catalog

import (
	"strings"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// Sentinel values sent by the dashboard's select boxes.
const (
	AllCategories = "All Categories"
	AllMissions   = "All Missions"
)

// ParseSpec normalizes raw query parameters into a Spec. Blank values and
// the "All ..." sentinels mean unconstrained; an unknown category is a
// ValidationError.
func ParseSpec(category, mission, search string, fields FieldSet) (Spec, error) {
	spec := Spec{
		Mission: normalize(mission, AllMissions),
		Search:  strings.TrimSpace(search),
		Fields:  fields,
	}

	if c := normalize(category, AllCategories); c != "" {
		parsed, err := domain.ParseCategory(c)
		if err != nil {
			return Spec{}, err
		}
		spec.Category = parsed
	}
	return spec, nil
}

func normalize(v, sentinel string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, sentinel) {
		return ""
	}
	return v
}
