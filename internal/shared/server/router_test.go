package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/analyses"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
)

func testRouter(burst int) http.Handler {
	svc := &analyses.Service{Repo: analyses.NewMemoryRepo()}
	return NewRouter(RouterDeps{
		Config: config.Config{
			CORSAllowOrigin:  []string{"http://localhost:5173"},
			AnalyzeRateRPS:   0.001,
			AnalyzeRateBurst: burst,
		},
		AnalysisHandler: analyses.NewHandler(svc, 1<<20),
		Health:          health.NewService(nil),
	})
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(5).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"database":"memory"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(5).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "analysis_started_total")
}

func TestRouterAnalyzeIsRateLimited(t *testing.T) {
	r := testRouter(1)
	body, err := json.Marshal(map[string]string{
		"resumeText":     "Go developer",
		"jobDescription": "Go developer wanted",
	})
	require.NoError(t, err)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, post().Code)
	limited := post()
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.True(t, strings.Contains(limited.Body.String(), `"rate_limited"`))

	// Reads are outside the analyze group.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analyses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	testRouter(5).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}
