package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/analyses"
	"ats-backend/internal/shared/config"
	localstore "ats-backend/internal/shared/storage/object/local"
)

func TestBuildInMemory(t *testing.T) {
	app, err := Build(context.Background(), config.Config{
		LocalStoreDir:    t.TempDir(),
		AnalyzeRateRPS:   5,
		AnalyzeRateBurst: 10,
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "dev", app.Config.Env)
	assert.Nil(t, app.DB)
	assert.IsType(t, &analyses.MemoryRepo{}, app.AnalysesRepo)
	assert.IsType(t, &localstore.Store{}, app.Store)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildDevFallsBackWhenDatabaseUnreachable(t *testing.T) {
	t.Setenv("DB_PING_TIMEOUT", "1s")
	app, err := Build(context.Background(), config.Config{
		Env:           "dev",
		DatabaseURL:   "postgres://ats@127.0.0.1:1/ats?sslmode=disable&connect_timeout=1",
		LocalStoreDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Nil(t, app.DB)
	assert.IsType(t, &analyses.MemoryRepo{}, app.AnalysesRepo)
}

func TestBuildProductionRequiresDatabase(t *testing.T) {
	t.Setenv("DB_PING_TIMEOUT", "1s")
	_, err := Build(context.Background(), config.Config{
		Env:           "production",
		DatabaseURL:   "postgres://ats@127.0.0.1:1/ats?sslmode=disable&connect_timeout=1",
		LocalStoreDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestBuildDisablesQueueWithoutDatabase(t *testing.T) {
	app, err := Build(context.Background(), config.Config{
		LocalStoreDir: t.TempDir(),
		QueueURL:      "https://sqs.us-east-1.amazonaws.com/123456789012/ats-jobs",
	})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Queue)
	assert.ErrorIs(t, app.RequireDurableRepo(), ErrDurableRepoRequired)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/async",
		strings.NewReader(`{"resumeText":"Go engineer","jobDescription":"Golang role"}`))
	req.Header.Set("Content-Type", "application/json")
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), analyses.ErrorCodeQueueUnavailable)
}

func TestBuildS3RequiresBucket(t *testing.T) {
	_, err := Build(context.Background(), config.Config{ObjectStoreType: "s3"})
	assert.ErrorContains(t, err, "S3_BUCKET")
}
