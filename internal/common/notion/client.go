package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"isabella-notion/internal/common/config"
	apperrors "isabella-notion/internal/common/errors"
)

// Client talks to the Notion REST API. All requests carry the integration
// token and the pinned API version header.
type Client struct {
	apiKey     string
	baseURL    string
	version    string
	httpClient *http.Client
}

// Page is the subset of a Notion page object the generator cares about.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Database is the subset of a Notion database object the generator cares about.
type Database struct {
	ID string `json:"id"`
}

// SearchResult is a single entry from the search endpoint.
type SearchResult struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

// CreatePageRequest creates a page under a parent page. Properties and
// children follow the Notion block object shape.
type CreatePageRequest struct {
	ParentPageID string
	Properties   map[string]interface{}
	Children     []map[string]interface{}
}

// CreateDatabaseRequest creates an inline database under a parent page.
type CreateDatabaseRequest struct {
	ParentPageID string
	Title        string
	Properties   map[string]interface{}
}

func NewClient(apiKey string, cfg config.NotionConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    cfg.BaseURL,
		version:    cfg.Version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search lists objects the integration can access. An empty filter returns
// everything shared with the integration.
func (c *Client) Search(ctx context.Context) ([]SearchResult, error) {
	body, err := c.post(ctx, "/search", map[string]interface{}{})
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	return result.Results, nil
}

// FindParentPage returns the first page the integration can see. Template
// pages are created underneath it.
func (c *Client) FindParentPage(ctx context.Context) (string, error) {
	results, err := c.Search(ctx)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", apperrors.NewWorkspaceEmptyError()
	}
	return results[0].ID, nil
}

func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	payload := map[string]interface{}{
		"parent": map[string]interface{}{
			"type":    "page_id",
			"page_id": req.ParentPageID,
		},
		"properties": req.Properties,
	}
	if len(req.Children) > 0 {
		payload["children"] = req.Children
	}

	body, err := c.post(ctx, "/pages", payload)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page response: %w", err)
	}

	return &page, nil
}

func (c *Client) CreateDatabase(ctx context.Context, req CreateDatabaseRequest) (*Database, error) {
	payload := map[string]interface{}{
		"parent": map[string]interface{}{
			"type":    "page_id",
			"page_id": req.ParentPageID,
		},
		"title": []map[string]interface{}{
			{"type": "text", "text": map[string]interface{}{"content": req.Title}},
		},
		"properties": req.Properties,
	}

	body, err := c.post(ctx, "/databases", payload)
	if err != nil {
		return nil, err
	}

	var db Database
	if err := json.Unmarshal(body, &db); err != nil {
		return nil, fmt.Errorf("failed to unmarshal database response: %w", err)
	}

	return &db, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperrors.NewNotionUnauthorizedError(string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewNotionAPIFailedError(resp.StatusCode, string(body))
	}

	return body, nil
}
