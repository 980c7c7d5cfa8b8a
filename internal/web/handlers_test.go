package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

func TestHandleListPapers(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantQuery      ports.PaperQuery
		expectedStatus int
	}{
		{
			name:           "defaults",
			query:          "",
			wantQuery:      ports.PaperQuery{Limit: 20},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "search and relevance floor",
			query:          "?search=+GeneLab+&relevance=90",
			wantQuery:      ports.PaperQuery{Search: "GeneLab", MinRelevance: 90, Limit: 20},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-integer relevance",
			query:          "?relevance=high",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers := &MockPapers{SearchFunc: func(_ context.Context, q ports.PaperQuery) ([]domain.Paper, error) {
				if q != tt.wantQuery {
					t.Errorf("Search(%+v), want %+v", q, tt.wantQuery)
				}
				return nil, nil
			}}
			w := do(t, newTestServer(testDeps{papers: papers}), http.MethodGet, "/api/papers"+tt.query, "")
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK && strings.TrimSpace(w.Body.String()) != "[]" {
				t.Errorf("body = %s, want []", w.Body)
			}
		})
	}
}

func TestHandleAnalytics(t *testing.T) {
	t.Run("snapshot", func(t *testing.T) {
		a := &MockAnalytics{SnapshotFunc: func(context.Context) (*domain.Snapshot, error) {
			return &domain.Snapshot{ID: "snap-1", TotalExperiments: 8, ActiveExperiments: 8}, nil
		}}
		w := do(t, newTestServer(testDeps{analytics: a}), http.MethodGet, "/api/analytics", "")

		var got struct {
			ID               string `json:"id"`
			TotalExperiments int    `json:"totalExperiments"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid body %s: %v", w.Body, err)
		}
		if w.Code != http.StatusOK || got.ID != "snap-1" || got.TotalExperiments != 8 {
			t.Errorf("response = %d %+v", w.Code, got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		a := &MockAnalytics{SnapshotFunc: func(context.Context) (*domain.Snapshot, error) {
			return nil, errors.New("failed to list experiments: timeout")
		}}
		w := do(t, newTestServer(testDeps{analytics: a}), http.MethodGet, "/api/analytics", "")
		if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "timeout") {
			t.Errorf("response = %d %s, want generic 500", w.Code, w.Body)
		}
	})
}

func TestHandleAnalyticsHistory(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantLimit      int
		expectedStatus int
	}{
		{"default limit", "", 20, http.StatusOK},
		{"explicit limit", "?limit=5", 5, http.StatusOK},
		{"invalid limit", "?limit=-1", 0, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &MockAnalytics{HistoryFunc: func(_ context.Context, limit int) ([]domain.Snapshot, error) {
				if limit != tt.wantLimit {
					t.Errorf("History(%d), want %d", limit, tt.wantLimit)
				}
				return nil, nil
			}}
			w := do(t, newTestServer(testDeps{analytics: a}), http.MethodGet, "/api/analytics/history"+tt.query, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleAnalyzeText(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		want           analysis.TextAnalysis
	}{
		{
			name:           "empty text",
			body:           `{"text":"   "}`,
			expectedStatus: http.StatusOK,
			want:           analysis.TextAnalysis{Keywords: []string{}},
		},
		{
			name:           "missing text",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			want:           analysis.TextAnalysis{Keywords: []string{}},
		},
		{
			name:           "malformed body",
			body:           `text`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(testDeps{}), http.MethodPost, "/api/ai/analyze-text", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var got analysis.TextAnalysis
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid body %s: %v", w.Body, err)
			}
			if got.Sentiment != tt.want.Sentiment || got.Complexity != tt.want.Complexity || len(got.Keywords) != 0 {
				t.Errorf("analysis = %+v, want %+v", got, tt.want)
			}
			if !strings.Contains(w.Body.String(), `"keywords":[]`) {
				t.Errorf("body = %s, want an empty keyword array", w.Body)
			}
		})
	}
}

func TestHandlePredictOutcome(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		wantP          float64
		wantRisks      int
		wantRecs       int
	}{
		{
			name:           "long cell study",
			body:           `{"duration":"200 days","category":"Cell Biology","organism":"Cell cultures"}`,
			expectedStatus: http.StatusOK,
			wantP:          0.88,
			wantRisks:      1,
			wantRecs:       1,
		},
		{
			name:           "numeric duration",
			body:           `{"duration":120,"category":"Plant Biology","organism":"Tomato plants"}`,
			expectedStatus: http.StatusOK,
			wantP:          0.85,
			wantRecs:       2,
		},
		{
			name:           "short study without category",
			body:           `{"duration":"30 days","organism":"Laboratory mice"}`,
			expectedStatus: http.StatusOK,
			wantP:          0.7,
		},
		{
			name:           "unparseable duration",
			body:           `{"duration":"a while","category":"Cell Biology"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing duration",
			body:           `{"category":"Cell Biology"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			body:           `{"duration":"30 days","category":"Geology"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(testDeps{}), http.MethodPost, "/api/ai/predict-outcome", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var got domain.Prediction
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid body %s: %v", w.Body, err)
			}
			if got.SuccessProbability != tt.wantP || len(got.RiskFactors) != tt.wantRisks || len(got.Recommendations) != tt.wantRecs {
				t.Errorf("prediction = %+v, want p=%v risks=%d recs=%d", got, tt.wantP, tt.wantRisks, tt.wantRecs)
			}
		})
	}
}

func TestHandleIndex(t *testing.T) {
	e := newExperiment(t, "BRIC-24", "Vacuole Formation in Microgravity", "Plant Biology", "Moon")
	exps := &MockExperiments{ListFunc: func(context.Context, catalog.Spec, int) ([]domain.Experiment, error) {
		return []domain.Experiment{analysis.Enrich(e)}, nil
	}}
	w := do(t, newTestServer(testDeps{experiments: exps}), http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	for _, want := range []string{"Vacuole Formation in Microgravity", "75%", "OSD-867"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("index page missing %q", want)
		}
	}

	if w := do(t, newTestServer(testDeps{}), http.MethodGet, "/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /missing = %d, want 404", w.Code)
	}
}

func TestHandleExternalDatasets(t *testing.T) {
	w := do(t, newTestServer(testDeps{}), http.MethodGet, "/api/external/datasets", "")

	var got externalDatasets
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body %s: %v", w.Body, err)
	}
	if got.Source != "NASA Open Science Data Repository" || len(got.Datasets) != 2 {
		t.Errorf("datasets = %+v", got)
	}
	if !got.LastUpdate.Equal(testNow) {
		t.Errorf("LastUpdate = %v, want %v", got.LastUpdate, testNow)
	}
}

func TestRoutes(t *testing.T) {
	push := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name           string
		push           http.Handler
		method, target string
		expectedStatus int
	}{
		{"health", nil, http.MethodGet, "/health", http.StatusOK},
		{"push channel mounted", push, http.MethodGet, "/ws", http.StatusTeapot},
		{"push channel absent", nil, http.MethodGet, "/ws", http.StatusNotFound},
		{"wrong method", nil, http.MethodDelete, "/api/experiments", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(testDeps{push: tt.push}), tt.method, tt.target, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.target, w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRecoverPanics(t *testing.T) {
	exps := &MockExperiments{ListFunc: func(context.Context, catalog.Spec, int) ([]domain.Experiment, error) {
		panic("nil map write")
	}}
	w := do(t, newTestServer(testDeps{experiments: exps}), http.MethodGet, "/api/experiments", "")
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "nil map") {
		t.Errorf("response = %d %s, want generic 500", w.Code, w.Body)
	}
}
