package turso_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/robinrobin1706/space-biology/internal/adapters/turso"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

func TestSnapshotRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := turso.NewSnapshotRepository(testDB(t))

	older := domain.Snapshot{
		ID:                   "s1",
		GeneratedAt:          baseTime,
		TotalExperiments:     2,
		ActiveExperiments:    1,
		DataPointsProcessed:  5,
		CategoryDistribution: []domain.Bucket{{Label: "Plant Biology", Count: 2, Percentage: 100}},
		MissionDistribution:  []domain.Bucket{{Label: domain.MissionMars, Count: 2, Percentage: 100}},
		Insights:             []domain.Insight{{Text: "static", Synthetic: true}},
	}
	newer := older
	newer.ID = "s2"
	newer.GeneratedAt = baseTime.Add(time.Hour)

	for _, s := range []domain.Snapshot{older, newer} {
		if err := repo.Create(ctx, &s); err != nil {
			t.Fatalf("Create(%s): %v", s.ID, err)
		}
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if want := []domain.Snapshot{newer, older}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %+v\nwant %+v", got, want)
	}

	got, err = repo.List(ctx, 1)
	if err != nil || len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("List(1) = %+v, %v; want [s2]", got, err)
	}
}
