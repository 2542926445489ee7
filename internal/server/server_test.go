package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isabella-notion/internal/common/config"
	"isabella-notion/internal/common/database"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/models"
)

type stubAnalyzer struct {
	result models.AnalysisResult
}

func (s *stubAnalyzer) Analyze(ctx context.Context, conversation string) models.AnalysisResult {
	return s.result
}

func testServerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Version = "1.0.0"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 8000
	cfg.Server.RateLimitPerMinute = 60
	cfg.Notion.Version = "2022-06-28"
	cfg.Notion.Timeout = 5000
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config, opts Options) *Server {
	analysis := models.FallbackAnalysisResult()
	analysis.Topics = []string{"testing"}
	return NewServer(cfg, &stubAnalyzer{result: analysis}, logger.NewTestLogger(t), opts)
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "Isabella Notion API is running", resp.Message)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAnalyzeConversation(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodPost, "/analyze-conversation", `{"conversation": "plan my week"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []string{"testing"}, result.Topics)
	assert.NotNil(t, result.PlanningElements.Schedules)
}

func TestAnalyzeConversationMissingField(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodPost, "/analyze-conversation", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "REQUEST_VALIDATION_FAILED")
}

func TestAnalyzeConversationInvalidJSON(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodPost, "/analyze-conversation", `{"conversation": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func startFakeNotion(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": "root-page", "object": "page"}]}`))
	})
	mux.HandleFunc("/pages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "page-123", "url": "https://www.notion.so/page-123"}`))
	})
	mux.HandleFunc("/databases", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "db-123"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateTemplate(t *testing.T) {
	notionSrv := startFakeNotion(t)

	cfg := testServerConfig()
	cfg.Notion.BaseURL = notionSrv.URL

	s := newTestServer(t, cfg, Options{})

	rec := doRequest(s, http.MethodPost, "/generate-template",
		`{"conversation": "plan my content", "notion_api_key": "secret_abc", "template_name": "Studio"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.GenerateTemplateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "page-123", resp.TemplateID)
	assert.Equal(t, "https://notion.so/page123", resp.TemplateURL)
	assert.Equal(t, []string{"testing"}, resp.Analysis.Topics)
}

func TestGenerateTemplateMissingNotionKey(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodPost, "/generate-template", `{"conversation": "x"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "notion_api_key")
}

func TestGenerateTemplateEmptyWorkspace(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})
	notionSrv := httptest.NewServer(mux)
	defer notionSrv.Close()

	cfg := testServerConfig()
	cfg.Notion.BaseURL = notionSrv.URL

	s := newTestServer(t, cfg, Options{})

	rec := doRequest(s, http.MethodPost, "/generate-template",
		`{"conversation": "x", "notion_api_key": "secret_abc"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "WORKSPACE_EMPTY")
}

func TestListTemplatesWithoutStore(t *testing.T) {
	s := newTestServer(t, testServerConfig(), Options{})

	rec := doRequest(s, http.MethodGet, "/templates", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"templates": []}`, rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)

	redisClient := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	cfg := testServerConfig()
	cfg.Server.RateLimitPerMinute = 2

	s := newTestServer(t, cfg, Options{Redis: redisClient})

	for i := 0; i < 2; i++ {
		rec := doRequest(s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	redisClient := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	mr.Close()

	cfg := testServerConfig()
	cfg.Server.RateLimitPerMinute = 1

	s := newTestServer(t, cfg, Options{Redis: redisClient})

	for i := 0; i < 3; i++ {
		rec := doRequest(s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
