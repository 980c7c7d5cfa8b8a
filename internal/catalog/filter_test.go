package catalog

import (
	"reflect"
	"testing"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

func codes(records []domain.Experiment) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Code
	}
	return out
}

func fixtures() []domain.Experiment {
	return []domain.Experiment{
		{
			Code:        "A",
			Title:       "Tomato growth",
			Description: "Fruit yield under LED light",
			Impact:      "Food production for Mars transit",
			Organism:    "Tomato plants",
			Mission:     "ISS Expedition 65",
			Category:    domain.CategoryPlantBiology,
		},
		{
			Code:         "B",
			Title:        "Stem cell differentiation",
			Description:  "Long term culture in microgravity",
			Impact:       "Tissue engineering for Moon bases",
			Organism:     "Human cells",
			Category:     domain.CategoryCellBiology,
			DurationDays: 200,
		},
		{
			Code:        "BRIC-LED",
			Title:       "Moss phototropism",
			Description: "Physcomitrella response to light",
			Impact:      "Bioregenerative life support on mars",
			Organism:    "Moss",
			Category:    domain.CategoryPlantBiology,
		},
		{
			Code:        "RR-20",
			Title:       "Rodent bone loss",
			Description: "Skeletal changes in mice",
			Impact:      "Countermeasures for crew health",
			Organism:    "Mice",
			Category:    domain.CategoryAnimalBiology,
		},
	}
}

func TestFilter(t *testing.T) {
	records := fixtures()

	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{name: "empty spec returns everything", spec: Spec{}, want: []string{"A", "B", "BRIC-LED", "RR-20"}},
		{name: "category", spec: Spec{Category: domain.CategoryPlantBiology}, want: []string{"A", "BRIC-LED"}},
		{name: "mission matches impact case-insensitively", spec: Spec{Mission: "Mars"}, want: []string{"A", "BRIC-LED"}},
		{name: "mission ignores the mission field", spec: Spec{Mission: "Expedition"}, want: []string{}},
		{name: "search title", spec: Spec{Search: "STEM"}, want: []string{"B"}},
		{name: "search description", spec: Spec{Search: "light"}, want: []string{"A", "BRIC-LED"}},
		{name: "search organism", spec: Spec{Search: "mice"}, want: []string{"RR-20"}},
		{name: "backend fields skip code", spec: Spec{Search: "RR-20", Fields: BackendFields}, want: []string{}},
		{name: "suggestion fields include code", spec: Spec{Search: "rr-20", Fields: SuggestionFields}, want: []string{"RR-20"}},
		{name: "suggestion fields skip description", spec: Spec{Search: "skeletal", Fields: SuggestionFields}, want: []string{}},
		{
			name: "constraints are conjunctive",
			spec: Spec{Category: domain.CategoryPlantBiology, Mission: "mars", Search: "moss"},
			want: []string{"BRIC-LED"},
		},
		{name: "no match", spec: Spec{Search: "zebrafish"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.spec)
			if got == nil {
				t.Fatal("Filter() = nil, want non-nil slice")
			}
			if !reflect.DeepEqual(codes(got), tt.want) {
				t.Errorf("Filter() = %v, want %v", codes(got), tt.want)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	records := fixtures()
	specs := []Spec{
		{Category: domain.CategoryPlantBiology},
		{Mission: "moon"},
		{Search: "cell"},
		{Search: "b", Fields: SuggestionFields},
	}

	for _, spec := range specs {
		once := Filter(records, spec)
		twice := Filter(once, spec)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Filter(%+v) not idempotent: %v then %v", spec, codes(once), codes(twice))
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	records := fixtures()
	reversed := make([]domain.Experiment, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}

	got := Filter(reversed, Spec{Category: domain.CategoryPlantBiology})
	if want := []string{"BRIC-LED", "A"}; !reflect.DeepEqual(codes(got), want) {
		t.Errorf("Filter() = %v, want %v", codes(got), want)
	}
}

func TestFilter_DoesNotAlias(t *testing.T) {
	records := fixtures()
	got := Filter(records, Spec{})
	got[0].Title = "changed"
	if records[0].Title == "changed" {
		t.Error("Filter() result aliases the input slice")
	}
}

func TestSuggest(t *testing.T) {
	records := fixtures()

	if got := Suggest(records, "  ", 0); len(got) != 0 {
		t.Errorf("Suggest(blank) = %v, want empty", codes(got))
	}

	got := Suggest(records, "bric", 0)
	if want := []string{"BRIC-LED"}; !reflect.DeepEqual(codes(got), want) {
		t.Errorf("Suggest(bric) = %v, want %v", codes(got), want)
	}

	many := make([]domain.Experiment, 0, 10)
	for i := 0; i < 10; i++ {
		many = append(many, domain.Experiment{Code: "X", Title: "Plant study"})
	}
	if got := Suggest(many, "plant", 0); len(got) != DefaultSuggestionLimit {
		t.Errorf("Suggest() returned %d, want %d", len(got), DefaultSuggestionLimit)
	}
	if got := Suggest(many, "plant", 2); len(got) != 2 {
		t.Errorf("Suggest(limit=2) returned %d, want 2", len(got))
	}
}
