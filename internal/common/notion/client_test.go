package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isabella-notion/internal/common/config"
	apperrors "isabella-notion/internal/common/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient("secret-token", config.NotionConfig{
		BaseURL: baseURL,
		Version: "2022-06-28",
		Timeout: 5000,
	})
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"id": "page-1", "object": "page"}, {"id": "page-2", "object": "page"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	results, err := client.Search(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "page-1", results[0].ID)
}

func TestFindParentPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": "parent-abc", "object": "page"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	id, err := client.FindParentPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "parent-abc", id)
}

func TestFindParentPageEmptyWorkspace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.FindParentPage(context.Background())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeWorkspaceEmpty, stdErr.Code)
}

func TestCreatePage(t *testing.T) {
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"id": "new-page", "url": "https://www.notion.so/new-page"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	page, err := client.CreatePage(context.Background(), CreatePageRequest{
		ParentPageID: "parent-abc",
		Properties: map[string]interface{}{
			"title": map[string]interface{}{"title": []interface{}{}},
		},
		Children: []map[string]interface{}{
			{"object": "block", "type": "paragraph"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-page", page.ID)

	parent := gotPayload["parent"].(map[string]interface{})
	assert.Equal(t, "page_id", parent["type"])
	assert.Equal(t, "parent-abc", parent["page_id"])
	assert.NotNil(t, gotPayload["children"])
}

func TestCreateDatabase(t *testing.T) {
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"id": "db-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	db, err := client.CreateDatabase(context.Background(), CreateDatabaseRequest{
		ParentPageID: "parent-abc",
		Title:        "Task Tracker",
		Properties: map[string]interface{}{
			"Task": map[string]interface{}{"title": map[string]interface{}{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "db-1", db.ID)

	title := gotPayload["title"].([]interface{})
	first := title[0].(map[string]interface{})
	text := first["text"].(map[string]interface{})
	assert.Equal(t, "Task Tracker", text["content"])
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "API token is invalid."}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Search(context.Background())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotionUnauthorized, stdErr.Code)
}

func TestAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream error`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Search(context.Background())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotionAPIFailed, stdErr.Code)
	assert.True(t, apperrors.IsRetryable(err))
}
