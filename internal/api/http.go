package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/feedback"
)

// HTTPClient talks to the triage backend over HTTP. Every request carries
// a bearer token from the session provider and a generated request id so
// backend logs can be correlated with client-side errors.
type HTTPClient struct {
	baseURL    string
	session    auth.SessionProvider
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client targeting the given backend base URL.
func NewHTTPClient(baseURL string, session auth.SessionProvider) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// errorResponse mirrors the backend's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// do issues a request and decodes a 2xx JSON response into out (out may be
// nil for endpoints with no interesting body).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return feedback.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorResponse
		// Best effort; the body may not be JSON on proxy errors.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(data, &envelope)
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Error,
			RequestID:  requestID,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListThemes implements ThemeAPI.
func (c *HTTPClient) ListThemes(ctx context.Context, workspaceID string) ([]feedback.Theme, error) {
	var themes []feedback.Theme
	path := fmt.Sprintf("/v1/workspaces/%s/themes", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &themes); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return themes, nil
}

// CreateTheme implements ThemeAPI.
func (c *HTTPClient) CreateTheme(ctx context.Context, workspaceID string, draft feedback.ThemeDraft) (feedback.Theme, error) {
	var theme feedback.Theme
	path := fmt.Sprintf("/v1/workspaces/%s/themes", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodPost, path, nil, draft, &theme); err != nil {
		return feedback.Theme{}, fmt.Errorf("create theme: %w", err)
	}
	return theme, nil
}

// UpdateTheme implements ThemeAPI.
func (c *HTTPClient) UpdateTheme(ctx context.Context, themeID string, draft feedback.ThemeDraft) (feedback.Theme, error) {
	var theme feedback.Theme
	path := "/v1/themes/" + url.PathEscape(themeID)
	if err := c.do(ctx, http.MethodPatch, path, nil, draft, &theme); err != nil {
		return feedback.Theme{}, fmt.Errorf("update theme: %w", err)
	}
	return theme, nil
}

// DeleteTheme implements ThemeAPI.
func (c *HTTPClient) DeleteTheme(ctx context.Context, themeID string) error {
	path := "/v1/themes/" + url.PathEscape(themeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	return nil
}

// ListSubThemes implements SubThemeAPI.
func (c *HTTPClient) ListSubThemes(ctx context.Context, themeID string) ([]feedback.SubTheme, error) {
	var subThemes []feedback.SubTheme
	path := fmt.Sprintf("/v1/themes/%s/sub-themes", url.PathEscape(themeID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &subThemes); err != nil {
		return nil, fmt.Errorf("list sub-themes: %w", err)
	}
	return subThemes, nil
}

// CreateSubTheme implements SubThemeAPI.
func (c *HTTPClient) CreateSubTheme(ctx context.Context, themeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error) {
	var subTheme feedback.SubTheme
	path := fmt.Sprintf("/v1/themes/%s/sub-themes", url.PathEscape(themeID))
	if err := c.do(ctx, http.MethodPost, path, nil, draft, &subTheme); err != nil {
		return feedback.SubTheme{}, fmt.Errorf("create sub-theme: %w", err)
	}
	return subTheme, nil
}

// UpdateSubTheme implements SubThemeAPI.
func (c *HTTPClient) UpdateSubTheme(ctx context.Context, subThemeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error) {
	var subTheme feedback.SubTheme
	path := "/v1/sub-themes/" + url.PathEscape(subThemeID)
	if err := c.do(ctx, http.MethodPatch, path, nil, draft, &subTheme); err != nil {
		return feedback.SubTheme{}, fmt.Errorf("update sub-theme: %w", err)
	}
	return subTheme, nil
}

// DeleteSubTheme implements SubThemeAPI.
func (c *HTTPClient) DeleteSubTheme(ctx context.Context, subThemeID string) error {
	path := "/v1/sub-themes/" + url.PathEscape(subThemeID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete sub-theme: %w", err)
	}
	return nil
}

// mergeRequest is the body for the sub-theme merge endpoint.
type mergeRequest struct {
	TargetID string `json:"target_id"`
}

// MergeSubThemes implements SubThemeAPI.
func (c *HTTPClient) MergeSubThemes(ctx context.Context, sourceID, targetID string) (feedback.MergeResult, error) {
	var result feedback.MergeResult
	path := fmt.Sprintf("/v1/sub-themes/%s/merge", url.PathEscape(sourceID))
	if err := c.do(ctx, http.MethodPost, path, nil, mergeRequest{TargetID: targetID}, &result); err != nil {
		return feedback.MergeResult{}, fmt.Errorf("merge sub-themes: %w", err)
	}
	return result, nil
}

// ListCustomerAsks implements AskAPI.
func (c *HTTPClient) ListCustomerAsks(ctx context.Context, subThemeID, cursor string) (feedback.Page[feedback.CustomerAsk], error) {
	var page feedback.Page[feedback.CustomerAsk]
	path := fmt.Sprintf("/v1/sub-themes/%s/asks", url.PathEscape(subThemeID))
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return feedback.Page[feedback.CustomerAsk]{}, fmt.Errorf("list asks: %w", err)
	}
	return page, nil
}

// statusRequest is the body for the ask status endpoint.
type statusRequest struct {
	Status feedback.AskStatus `json:"status"`
}

// UpdateAskStatus implements AskAPI.
func (c *HTTPClient) UpdateAskStatus(ctx context.Context, askID string, status feedback.AskStatus) (feedback.CustomerAsk, error) {
	var ask feedback.CustomerAsk
	path := fmt.Sprintf("/v1/asks/%s/status", url.PathEscape(askID))
	if err := c.do(ctx, http.MethodPut, path, nil, statusRequest{Status: status}, &ask); err != nil {
		return feedback.CustomerAsk{}, fmt.Errorf("update ask status: %w", err)
	}
	return ask, nil
}

// ListMentions implements MentionAPI.
func (c *HTTPClient) ListMentions(ctx context.Context, askID, cursor string) (feedback.Page[feedback.Mention], error) {
	var page feedback.Page[feedback.Mention]
	path := fmt.Sprintf("/v1/asks/%s/mentions", url.PathEscape(askID))
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return feedback.Page[feedback.Mention]{}, fmt.Errorf("list mentions: %w", err)
	}
	return page, nil
}

// ListTranscriptClassifications implements TranscriptAPI.
func (c *HTTPClient) ListTranscriptClassifications(ctx context.Context, workspaceID string) ([]feedback.TranscriptClassification, error) {
	var classifications []feedback.TranscriptClassification
	path := fmt.Sprintf("/v1/workspaces/%s/transcript-classifications", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &classifications); err != nil {
		return nil, fmt.Errorf("list transcript classifications: %w", err)
	}
	return classifications, nil
}

// countResponse mirrors the count-only endpoint's body.
type countResponse struct {
	Count int `json:"count"`
}

// CountTranscriptClassifications implements TranscriptAPI.
func (c *HTTPClient) CountTranscriptClassifications(ctx context.Context, workspaceID string) (int, error) {
	var out countResponse
	path := fmt.Sprintf("/v1/workspaces/%s/transcript-classifications/count", url.PathEscape(workspaceID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return 0, fmt.Errorf("count transcript classifications: %w", err)
	}
	return out.Count, nil
}
