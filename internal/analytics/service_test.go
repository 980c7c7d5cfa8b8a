package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

type mockExperiments struct {
	ListFunc func(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error)
}

func (m *mockExperiments) List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error) {
	return m.ListFunc(ctx, spec, limit)
}

type mockCounter struct {
	CountProcessedFunc func(ctx context.Context) (int, error)
}

func (m *mockCounter) CountProcessed(ctx context.Context) (int, error) {
	return m.CountProcessedFunc(ctx)
}

type mockSnapshots struct {
	created   []*domain.Snapshot
	CreateErr error
	ListFunc  func(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

func (m *mockSnapshots) Create(_ context.Context, s *domain.Snapshot) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.created = append(m.created, s)
	return nil
}

func (m *mockSnapshots) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	return m.ListFunc(ctx, limit)
}

type mockMetrics struct {
	snapshots int
}

func (m *mockMetrics) SnapshotGenerated(context.Context, *domain.Snapshot) { m.snapshots++ }

func newTestService(exps *mockExperiments, counter *mockCounter, snaps *mockSnapshots, metrics *mockMetrics) *Service {
	return NewService(exps, counter, snaps, metrics, NewAggregator(fixedClock, nil), nil)
}

func TestService_Snapshot(t *testing.T) {
	exps := &mockExperiments{ListFunc: func(_ context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error) {
		if !spec.IsZero() || limit != 0 {
			t.Errorf("List(%+v, %d), want unconstrained", spec, limit)
		}
		return scenario(), nil
	}}
	counter := &mockCounter{CountProcessedFunc: func(context.Context) (int, error) { return 7, nil }}
	snaps := &mockSnapshots{}
	metrics := &mockMetrics{}

	got, err := newTestService(exps, counter, snaps, metrics).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}

	if got.ID == "" {
		t.Error("Snapshot().ID is empty")
	}
	if got.TotalExperiments != 2 || got.DataPointsProcessed != 7 {
		t.Errorf("Snapshot() = %+v", got)
	}
	if len(snaps.created) != 1 || snaps.created[0].ID != got.ID {
		t.Errorf("recorded snapshots = %v, want the returned one", snaps.created)
	}
	if metrics.snapshots != 1 {
		t.Errorf("metrics.snapshots = %d, want 1", metrics.snapshots)
	}
}

func TestService_Snapshot_RecordFailureIsNotFatal(t *testing.T) {
	exps := &mockExperiments{ListFunc: func(context.Context, catalog.Spec, int) ([]domain.Experiment, error) {
		return scenario(), nil
	}}
	counter := &mockCounter{CountProcessedFunc: func(context.Context) (int, error) { return 0, nil }}
	snaps := &mockSnapshots{CreateErr: errors.New("disk full")}

	got, err := newTestService(exps, counter, snaps, &mockMetrics{}).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if got == nil || got.TotalExperiments != 2 {
		t.Errorf("Snapshot() = %+v, want a snapshot despite the record failure", got)
	}
}

func TestService_Snapshot_FetchError(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name    string
		exps    *mockExperiments
		counter *mockCounter
	}{
		{
			name: "experiments",
			exps: &mockExperiments{ListFunc: func(context.Context, catalog.Spec, int) ([]domain.Experiment, error) {
				return nil, storeErr
			}},
			counter: &mockCounter{CountProcessedFunc: func(context.Context) (int, error) { return 0, nil }},
		},
		{
			name: "data points",
			exps: &mockExperiments{ListFunc: func(context.Context, catalog.Spec, int) ([]domain.Experiment, error) {
				return scenario(), nil
			}},
			counter: &mockCounter{CountProcessedFunc: func(context.Context) (int, error) { return 0, storeErr }},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps := &mockSnapshots{}
			_, err := newTestService(tt.exps, tt.counter, snaps, &mockMetrics{}).Snapshot(context.Background())
			if !errors.Is(err, storeErr) {
				t.Errorf("Snapshot() error = %v, want wrapped %v", err, storeErr)
			}
			if len(snaps.created) != 0 {
				t.Error("snapshot recorded despite fetch failure")
			}
		})
	}
}

func TestService_History(t *testing.T) {
	var gotLimit int
	snaps := &mockSnapshots{ListFunc: func(_ context.Context, limit int) ([]domain.Snapshot, error) {
		gotLimit = limit
		return []domain.Snapshot{{ID: "s2"}, {ID: "s1"}}, nil
	}}

	svc := newTestService(nil, nil, snaps, nil)

	got, err := svc.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if gotLimit != DefaultHistoryLimit {
		t.Errorf("limit = %d, want %d", gotLimit, DefaultHistoryLimit)
	}
	if len(got) != 2 || got[0].ID != "s2" {
		t.Errorf("History() = %+v", got)
	}
}
