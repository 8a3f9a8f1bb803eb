package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/feedback"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, auth.StaticSession{Workspace: "ws-1", BearerToken: "tok"})
}

func TestHTTPClient_ListThemes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/workspaces/ws-1/themes", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_ = json.NewEncoder(w).Encode([]feedback.Theme{
			{ID: "t1", Name: "Onboarding"},
			{ID: "t2", Name: "Billing"},
		})
	})

	themes, err := client.ListThemes(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "Onboarding", themes[0].Name)
}

func TestHTTPClient_ListMentions_passes_cursor_opaquely(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/asks/a1/mentions", r.URL.Path)
		assert.Equal(t, "c1%2Fx", r.URL.Query().Get("cursor")) // token round-trips untouched
		_ = json.NewEncoder(w).Encode(feedback.Page[feedback.Mention]{
			Items:      []feedback.Mention{{ID: "m1", AskID: "a1"}},
			HasMore:    true,
			NextCursor: "c2",
		})
	})

	page, err := client.ListMentions(context.Background(), "a1", "c1%2Fx")
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	assert.Equal(t, "c2", page.NextCursor)
	require.Len(t, page.Items, 1)
}

func TestHTTPClient_MergeSubThemes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/sub-themes/s1/merge", r.URL.Path)

		var body mergeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s2", body.TargetID)

		_ = json.NewEncoder(w).Encode(feedback.MergeResult{
			SourceID: "s1",
			Target:   feedback.SubTheme{ID: "s2", FeedbackCount: 9},
			Moved:    4,
		})
	})

	result, err := client.MergeSubThemes(context.Background(), "s1", "s2")
	require.NoError(t, err)
	assert.Equal(t, "s1", result.SourceID)
	assert.Equal(t, 4, result.Moved)
	assert.Equal(t, 9, result.Target.FeedbackCount)
}

func TestHTTPClient_NotFound_maps_to_sentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such theme"}`, http.StatusNotFound)
	})

	err := client.DeleteTheme(context.Background(), "missing")
	assert.ErrorIs(t, err, feedback.ErrNotFound)
}

func TestHTTPClient_ServerError_returns_status_error(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "database down"})
	})

	_, err := client.ListThemes(context.Background(), "ws-1")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "database down", statusErr.Message)
	assert.NotEmpty(t, statusErr.RequestID)
}

func TestHTTPClient_UpdateAskStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body statusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, feedback.AskStatusPlanned, body.Status)

		_ = json.NewEncoder(w).Encode(feedback.CustomerAsk{ID: "a1", Status: body.Status})
	})

	ask, err := client.UpdateAskStatus(context.Background(), "a1", feedback.AskStatusPlanned)
	require.NoError(t, err)
	assert.Equal(t, feedback.AskStatusPlanned, ask.Status)
}
