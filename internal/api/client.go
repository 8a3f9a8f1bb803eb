// Package api defines the backend contract the triage client consumes.
// All list endpoints for high-volume collections are cursor-paginated:
// the response carries the items, a has-more flag, and an opaque cursor
// for the next page. Cursors are never inspected or derived client-side.
package api

import (
	"context"
	"fmt"

	"github.com/colonyops/triage/internal/core/feedback"
)

// Client is the full backend surface consumed by the store. Implementations
// must be safe for concurrent use; the store issues overlapping calls.
type Client interface {
	ThemeAPI
	SubThemeAPI
	AskAPI
	MentionAPI
	TranscriptAPI
}

// ThemeAPI covers the root Theme collection.
type ThemeAPI interface {
	ListThemes(ctx context.Context, workspaceID string) ([]feedback.Theme, error)
	CreateTheme(ctx context.Context, workspaceID string, draft feedback.ThemeDraft) (feedback.Theme, error)
	UpdateTheme(ctx context.Context, themeID string, draft feedback.ThemeDraft) (feedback.Theme, error)
	DeleteTheme(ctx context.Context, themeID string) error
}

// SubThemeAPI covers the SubTheme level, including merge. Merge is a
// single backend transaction; the client applies its result atomically.
type SubThemeAPI interface {
	ListSubThemes(ctx context.Context, themeID string) ([]feedback.SubTheme, error)
	CreateSubTheme(ctx context.Context, themeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error)
	UpdateSubTheme(ctx context.Context, subThemeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error)
	DeleteSubTheme(ctx context.Context, subThemeID string) error
	MergeSubThemes(ctx context.Context, sourceID, targetID string) (feedback.MergeResult, error)
}

// AskAPI covers the CustomerAsk level. Listing is paginated newest-first.
type AskAPI interface {
	ListCustomerAsks(ctx context.Context, subThemeID, cursor string) (feedback.Page[feedback.CustomerAsk], error)
	UpdateAskStatus(ctx context.Context, askID string, status feedback.AskStatus) (feedback.CustomerAsk, error)
}

// MentionAPI covers the Mention level. Listing is paginated newest-first.
type MentionAPI interface {
	ListMentions(ctx context.Context, askID, cursor string) (feedback.Page[feedback.Mention], error)
}

// TranscriptAPI covers workspace-scoped transcript classifications. The
// count variant is a lightweight aggregate fetched in the background
// during initialization.
type TranscriptAPI interface {
	ListTranscriptClassifications(ctx context.Context, workspaceID string) ([]feedback.TranscriptClassification, error)
	CountTranscriptClassifications(ctx context.Context, workspaceID string) (int, error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
