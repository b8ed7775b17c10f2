package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sha9506/HireRank/internal/db"
	"github.com/sha9506/HireRank/internal/engine"
	"github.com/sha9506/HireRank/internal/server/ratelimit"
	"github.com/sha9506/HireRank/internal/taxonomy"
	"github.com/sha9506/HireRank/internal/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	analyses map[uuid.UUID]*db.Analysis
	pingErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{analyses: make(map[uuid.UUID]*db.Analysis)}
}

func (f *fakeStore) StoreAnalysis(_ context.Context, input *db.AnalysisCreateInput) (uuid.UUID, error) {
	id := uuid.New()
	f.analyses[id] = &db.Analysis{
		ID:             id,
		CandidateName:  input.CandidateName,
		JobTitle:       input.JobTitle,
		JobDescription: input.JobDescription,
		Skills:         input.Skills,
		Score:          input.Fit.Score,
		Fit:            input.Fit,
		CandidateInfo:  input.CandidateInfo,
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetAnalysis(_ context.Context, id uuid.UUID) (*db.Analysis, error) {
	return f.analyses[id], nil
}

func (f *fakeStore) GetRankings(_ context.Context, jobTitle string, limit int) ([]db.Analysis, error) {
	var out []db.Analysis
	for _, a := range f.analyses {
		if jobTitle == "" || a.JobTitle == jobTitle {
			out = append(out, *a)
		}
	}
	// insertion sort by score descending, plenty for test-sized data
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetHistory(ctx context.Context, limit int) ([]db.Analysis, error) {
	return f.GetRankings(ctx, "", limit)
}

func (f *fakeStore) GetTopPerformers(ctx context.Context, limit int) ([]db.Analysis, error) {
	return f.GetRankings(ctx, "", limit)
}

func (f *fakeStore) UpdateRemarks(_ context.Context, id uuid.UUID, remarks string) (bool, error) {
	a, ok := f.analyses[id]
	if !ok {
		return false, nil
	}
	a.Remarks = remarks
	return true, nil
}

func (f *fakeStore) DeleteAnalysis(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.analyses[id]; !ok {
		return false, nil
	}
	delete(f.analyses, id)
	return true, nil
}

func (f *fakeStore) GetStatistics(_ context.Context, jobTitle string) (*db.Statistics, error) {
	stats := &db.Statistics{}
	sum := 0
	for _, a := range f.analyses {
		if jobTitle != "" && a.JobTitle != jobTitle {
			continue
		}
		if stats.TotalAnalyses == 0 || a.Score > stats.HighestScore {
			stats.HighestScore = a.Score
		}
		if stats.TotalAnalyses == 0 || a.Score < stats.LowestScore {
			stats.LowestScore = a.Score
		}
		stats.TotalAnalyses++
		sum += a.Score
	}
	if stats.TotalAnalyses > 0 {
		stats.AverageScore = float64(sum) / float64(stats.TotalAnalyses)
	}
	return stats, nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.pingErr
}

const testResume = `Jane Doe
jane.doe@example.com

Backend engineer with 6 years of experience building services in Go,
backed by PostgreSQL and deployed with Docker.`

// newTestServer builds a server on a taxonomy-only engine with rate
// limiting disabled.
func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()
	table, err := taxonomy.Load()
	require.NoError(t, err)

	eng := engine.New(table, nil, engine.Options{})
	return New(eng, Options{
		Store:     store,
		RateLimit: &ratelimit.Config{Enabled: false},
	})
}

func analyzeBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(types.AnalyzeRequest{
		ResumeText:     testResume,
		JobTitle:       "Backend Engineer",
		ExpectedSkills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes"},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestAnalyze(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", analyzeBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// 3 of 4 expected skills found -> taxonomy-only score of 75
	assert.Equal(t, 75, resp.Fit.Score)
	assert.Equal(t, types.ProvenanceTaxonomy, resp.Fit.Provenance)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL", "Docker"}, resp.Fit.SkillsFound)
	assert.Equal(t, []string{"Kubernetes"}, resp.Fit.SkillsMissing)
	assert.NotEmpty(t, resp.Fit.Rationale)
	assert.Equal(t, "Jane Doe", resp.CandidateInfo.Name)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	stored, err := store.GetAnalysis(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 75, stored.Score)
	assert.Equal(t, "Backend Engineer", stored.JobTitle)
}

func TestAnalyze_WithoutStore(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", analyzeBody(t)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uuid.Nil, resp.ID)
	assert.Equal(t, 75, resp.Fit.Score)
}

func TestAnalyze_Validation(t *testing.T) {
	handler := newTestServer(t, newFakeStore()).Handler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing job title", fmt.Sprintf(`{"resume_text": %q}`, testResume)},
		{"resume too short", `{"resume_text": "too short", "job_title": "Backend Engineer"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(
				http.MethodPost, "/analyses", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyze_UnknownTitleNoSkills(t *testing.T) {
	handler := newTestServer(t, newFakeStore()).Handler()

	body, err := json.Marshal(types.AnalyzeRequest{
		ResumeText: testResume,
		JobTitle:   "Chief Vibes Officer",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expected skills")
}

func TestAnalyze_JobURLFetch(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><div class="job-description">
			We need strong Go and Kubernetes experience.</div></body></html>`)
	}))
	defer posting.Close()

	store := newFakeStore()
	handler := newTestServer(t, store).Handler()

	body, err := json.Marshal(types.AnalyzeRequest{
		ResumeText:     testResume,
		JobTitle:       "Backend Engineer",
		JobURL:         posting.URL,
		ExpectedSkills: []string{"Go"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBuffer(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	stored, _ := store.GetAnalysis(context.Background(), resp.ID)
	require.NotNil(t, stored)
	assert.Contains(t, stored.JobDescription, "Kubernetes")
}

func TestAnalyze_JobURLFetchFailure(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer posting.Close()

	handler := newTestServer(t, newFakeStore()).Handler()

	body, err := json.Marshal(types.AnalyzeRequest{
		ResumeText:     testResume,
		JobTitle:       "Backend Engineer",
		JobURL:         posting.URL,
		ExpectedSkills: []string{"Go"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetAnalysis(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()

	id, err := store.StoreAnalysis(context.Background(), &db.AnalysisCreateInput{
		JobTitle: "Backend Engineer",
		Fit:      types.FitScore{Score: 80},
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses/"+id.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got db.Analysis
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, id, got.ID)
		assert.Equal(t, 80, got.Score)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(
			http.MethodGet, "/analyses/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateRemarksAndDelete(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()

	id, err := store.StoreAnalysis(context.Background(), &db.AnalysisCreateInput{
		JobTitle: "Backend Engineer",
		Fit:      types.FitScore{Score: 70},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
		"/analyses/"+id.String()+"/remarks",
		bytes.NewBufferString(`{"remarks": "strong candidate"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "strong candidate", store.analyses[id].Remarks)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/analyses/"+id.String(), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/analyses/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRankings(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()
	ctx := context.Background()

	for _, score := range []int{40, 90, 65} {
		_, err := store.StoreAnalysis(ctx, &db.AnalysisCreateInput{
			JobTitle: "Backend Engineer",
			Fit:      types.FitScore{Score: score},
		})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(
		http.MethodGet, "/rankings?job_title=Backend+Engineer", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []db.Analysis `json:"results"`
		Count   int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 3, body.Count)
	assert.Equal(t, 90, body.Results[0].Score)
	assert.Equal(t, 40, body.Results[2].Score)
}

func TestTopPerformers_Limit(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()
	ctx := context.Background()

	for _, score := range []int{40, 90, 65, 88} {
		_, err := store.StoreAnalysis(ctx, &db.AnalysisCreateInput{
			JobTitle: "Backend Engineer",
			Fit:      types.FitScore{Score: score},
		})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/top-performers?limit=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []db.Analysis `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, 90, body.Results[0].Score)
}

func TestStatistics(t *testing.T) {
	store := newFakeStore()
	handler := newTestServer(t, store).Handler()
	ctx := context.Background()

	for _, score := range []int{40, 90, 65} {
		_, err := store.StoreAnalysis(ctx, &db.AnalysisCreateInput{
			JobTitle: "Backend Engineer",
			Fit:      types.FitScore{Score: score},
		})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statistics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats db.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalAnalyses)
	assert.Equal(t, 90, stats.HighestScore)
	assert.Equal(t, 40, stats.LowestScore)
	assert.InDelta(t, 65.0, stats.AverageScore, 0.01)
}

func TestPersistenceEndpoints_NoStore(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	paths := []string{
		"/analyses/" + uuid.NewString(),
		"/rankings",
		"/history",
		"/top-performers",
		"/statistics",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "path %s", path)
	}
}

func TestHealth(t *testing.T) {
	t.Run("without store", func(t *testing.T) {
		handler := newTestServer(t, nil).Handler()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"database":"disabled"`)
	})

	t.Run("store unreachable", func(t *testing.T) {
		store := newFakeStore()
		store.pingErr = fmt.Errorf("connection refused")
		handler := newTestServer(t, store).Handler()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	})
}

func TestRateLimit_ScoringEndpoint(t *testing.T) {
	table, err := taxonomy.Load()
	require.NoError(t, err)
	eng := engine.New(table, nil, engine.Options{})

	handler := New(eng, Options{
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/analyses", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			},
		},
	}).Handler()

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", analyzeBody(t)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", analyzeBody(t)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/analyses", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
