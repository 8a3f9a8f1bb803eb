package store

import (
	"context"
	"fmt"

	"github.com/colonyops/triage/internal/core/feedback"
)

// ThemeActions is the Theme-level action surface.
type ThemeActions interface {
	FetchThemes(ctx context.Context, opts FetchOptions) error
	CreateTheme(ctx context.Context, draft feedback.ThemeDraft) (feedback.Theme, error)
	UpdateTheme(ctx context.Context, themeID string, draft feedback.ThemeDraft) (feedback.Theme, error)
	DeleteTheme(ctx context.Context, themeID string) error
}

// FetchThemes loads the workspace's root Theme collection.
func (s *Store) FetchThemes(ctx context.Context, opts FetchOptions) error {
	return s.themes.Fetch(ctx, s.session.WorkspaceID(), s.fetchOpts(opts))
}

// CreateTheme creates a theme and splices it into local state. Errors are
// returned to the calling dialog; no level-scoped error is recorded.
func (s *Store) CreateTheme(ctx context.Context, draft feedback.ThemeDraft) (feedback.Theme, error) {
	theme, err := s.client.CreateTheme(ctx, s.session.WorkspaceID(), draft)
	if err != nil {
		return feedback.Theme{}, fmt.Errorf("create theme: %w", err)
	}
	s.themes.insert(s.session.WorkspaceID(), theme)
	return theme, nil
}

// UpdateTheme updates a theme and replaces the local record on success.
func (s *Store) UpdateTheme(ctx context.Context, themeID string, draft feedback.ThemeDraft) (feedback.Theme, error) {
	theme, err := s.client.UpdateTheme(ctx, themeID, draft)
	if err != nil {
		return feedback.Theme{}, fmt.Errorf("update theme: %w", err)
	}
	s.themes.replace(s.session.WorkspaceID(), theme)
	return theme, nil
}

// DeleteTheme deletes a theme, evicts every cache hanging off it, and
// cascade-clears the selection if the theme was selected.
func (s *Store) DeleteTheme(ctx context.Context, themeID string) error {
	if err := s.client.DeleteTheme(ctx, themeID); err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}

	// Evict descendants before removing the parent row so lookups during
	// eviction still resolve.
	if subThemes, ok := s.subThemes.cached(themeID); ok {
		for _, st := range subThemes {
			if asks, ok := s.asks.cached(st.ID); ok {
				for _, ask := range asks {
					s.mentions.invalidate(ask.ID)
				}
			}
			s.asks.invalidate(st.ID)
		}
	}
	s.subThemes.invalidate(themeID)
	s.themes.remove(s.session.WorkspaceID(), themeID)

	s.mu.Lock()
	if s.ui.sel.themeID == themeID {
		s.ui.clearTheme()
	}
	s.mu.Unlock()
	return nil
}
