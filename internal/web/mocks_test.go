package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

type MockExperiments struct {
	CreateFunc         func(ctx context.Context, e *domain.Experiment) error
	GetByCodeFunc      func(ctx context.Context, code string) (*domain.Experiment, error)
	ListFunc           func(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error)
	UpdateAnalysisFunc func(ctx context.Context, code string, a *domain.Analysis) error
	CountFunc          func(ctx context.Context) (int, error)
}

func (m *MockExperiments) Create(ctx context.Context, e *domain.Experiment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockExperiments) GetByCode(ctx context.Context, code string) (*domain.Experiment, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockExperiments) List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, spec, limit)
	}
	return []domain.Experiment{}, nil
}

func (m *MockExperiments) UpdateAnalysis(ctx context.Context, code string, a *domain.Analysis) error {
	if m.UpdateAnalysisFunc != nil {
		return m.UpdateAnalysisFunc(ctx, code, a)
	}
	return nil
}

func (m *MockExperiments) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type MockDataPoints struct {
	CreateFunc           func(ctx context.Context, dp *domain.DataPoint) error
	ListByExperimentFunc func(ctx context.Context, code string) ([]domain.DataPoint, error)
}

func (m *MockDataPoints) Create(ctx context.Context, dp *domain.DataPoint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, dp)
	}
	return nil
}

func (m *MockDataPoints) ListByExperiment(ctx context.Context, code string) ([]domain.DataPoint, error) {
	if m.ListByExperimentFunc != nil {
		return m.ListByExperimentFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockDataPoints) ListSince(context.Context, time.Time) ([]domain.DataPoint, error) {
	return nil, nil
}

func (m *MockDataPoints) CountProcessed(context.Context) (int, error) {
	return 0, nil
}

type MockPapers struct {
	SearchFunc func(ctx context.Context, q ports.PaperQuery) ([]domain.Paper, error)
}

func (m *MockPapers) Create(context.Context, *domain.Paper) error { return nil }

func (m *MockPapers) Search(ctx context.Context, q ports.PaperQuery) ([]domain.Paper, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockPapers) Count(context.Context) (int, error) { return 0, nil }

type MockAnalytics struct {
	SnapshotFunc func(ctx context.Context) (*domain.Snapshot, error)
	HistoryFunc  func(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

func (m *MockAnalytics) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	return &domain.Snapshot{}, nil
}

func (m *MockAnalytics) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, limit)
	}
	return nil, nil
}

// recordingMetrics counts exporter calls.
type recordingMetrics struct {
	mu          sync.Mutex
	experiments []domain.Category
	dataPoints  int
}

func (m *recordingMetrics) ExperimentCreated(_ context.Context, c domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.experiments = append(m.experiments, c)
}

func (m *recordingMetrics) DataPointIngested(context.Context, *domain.DataPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dataPoints++
}

func (m *recordingMetrics) SnapshotGenerated(context.Context, *domain.Snapshot) {}
func (m *recordingMetrics) BroadcastSent(context.Context, int) {}
func (m *recordingMetrics) Close(context.Context) error { return nil }

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	experiments *MockExperiments
	dataPoints  *MockDataPoints
	papers      *MockPapers
	analytics   *MockAnalytics
	metrics     *recordingMetrics
	push        http.Handler
}

func newTestServer(d testDeps) *Server {
	if d.experiments == nil {
		d.experiments = &MockExperiments{}
	}
	if d.dataPoints == nil {
		d.dataPoints = &MockDataPoints{}
	}
	if d.papers == nil {
		d.papers = &MockPapers{}
	}
	if d.analytics == nil {
		d.analytics = &MockAnalytics{}
	}
	if d.metrics == nil {
		d.metrics = &recordingMetrics{}
	}
	store := &ports.Store{
		Experiments: d.experiments,
		DataPoints:  d.dataPoints,
		Papers:      d.papers,
	}
	s := NewServer(Config{}, store, d.analytics, d.metrics, d.push, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return testNow }
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func newExperiment(t *testing.T, code, title, category, impact string) domain.Experiment {
	t.Helper()

	e, err := domain.NewExperiment(domain.ExperimentInput{
		Code:        code,
		Title:       title,
		Description: "Description of " + code,
		Impact:      impact,
		Organism:    "Arabidopsis plants",
		Mission:     "ISS",
		Duration:    "30 days",
		Category:    category,
	}, testNow)
	if err != nil {
		t.Fatalf("NewExperiment(%s): %v", code, err)
	}
	return *e
}
