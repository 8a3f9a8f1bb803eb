package store

import (
	"context"
	"fmt"

	"github.com/colonyops/triage/internal/core/feedback"
)

// SubThemeActions is the SubTheme-level action surface.
type SubThemeActions interface {
	FetchSubThemes(ctx context.Context, themeID string, opts FetchOptions) error
	PrefetchSubThemes(ctx context.Context, themeID string) error
	CreateSubTheme(ctx context.Context, themeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error)
	UpdateSubTheme(ctx context.Context, subThemeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error)
	DeleteSubTheme(ctx context.Context, subThemeID string) error
	MergeSubThemes(ctx context.Context, sourceID, targetID string) (feedback.MergeResult, error)
}

// FetchSubThemes makes themeID's sub-themes visible.
func (s *Store) FetchSubThemes(ctx context.Context, themeID string, opts FetchOptions) error {
	return s.subThemes.Fetch(ctx, themeID, s.fetchOpts(opts))
}

// PrefetchSubThemes warms the sub-theme cache for a theme the user has not
// navigated to yet. The visible list is untouched.
func (s *Store) PrefetchSubThemes(ctx context.Context, themeID string) error {
	return s.subThemes.Prefetch(ctx, themeID)
}

// CreateSubTheme creates a sub-theme under themeID and bumps the parent's
// sub-theme count locally.
func (s *Store) CreateSubTheme(ctx context.Context, themeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error) {
	subTheme, err := s.client.CreateSubTheme(ctx, themeID, draft)
	if err != nil {
		return feedback.SubTheme{}, fmt.Errorf("create sub-theme: %w", err)
	}
	s.subThemes.insert(themeID, subTheme)
	s.themes.mutate(s.session.WorkspaceID(), themeID, func(t *feedback.Theme) {
		t.SubThemeCount++
	})
	return subTheme, nil
}

// UpdateSubTheme updates a sub-theme and replaces the local record.
func (s *Store) UpdateSubTheme(ctx context.Context, subThemeID string, draft feedback.SubThemeDraft) (feedback.SubTheme, error) {
	subTheme, err := s.client.UpdateSubTheme(ctx, subThemeID, draft)
	if err != nil {
		return feedback.SubTheme{}, fmt.Errorf("update sub-theme: %w", err)
	}
	s.subThemes.replace(subTheme.ThemeID, subTheme)
	return subTheme, nil
}

// DeleteSubTheme deletes a sub-theme, evicts its ask and mention caches,
// adjusts the parent theme's counts, and cascade-clears the selection if
// the sub-theme was selected.
func (s *Store) DeleteSubTheme(ctx context.Context, subThemeID string) error {
	subTheme, ok := s.findSubTheme(subThemeID)
	if err := s.client.DeleteSubTheme(ctx, subThemeID); err != nil {
		return fmt.Errorf("delete sub-theme: %w", err)
	}

	if asks, cached := s.asks.cached(subThemeID); cached {
		for _, ask := range asks {
			s.mentions.invalidate(ask.ID)
		}
	}
	s.asks.invalidate(subThemeID)

	if ok {
		s.subThemes.remove(subTheme.ThemeID, subThemeID)
		s.themes.mutate(s.session.WorkspaceID(), subTheme.ThemeID, func(t *feedback.Theme) {
			t.SubThemeCount--
			t.FeedbackCount -= subTheme.FeedbackCount
		})
	}

	s.mu.Lock()
	if s.ui.sel.subThemeID == subThemeID {
		s.ui.clearSubTheme()
	}
	s.mu.Unlock()
	return nil
}

// MergeSubThemes merges sourceID into targetID. The backend performs the
// delete-and-move as one transaction; its result is applied to local state
// atomically: source removed, target replaced with updated counts, and the
// stale ask caches of both evicted.
func (s *Store) MergeSubThemes(ctx context.Context, sourceID, targetID string) (feedback.MergeResult, error) {
	result, err := s.client.MergeSubThemes(ctx, sourceID, targetID)
	if err != nil {
		return feedback.MergeResult{}, fmt.Errorf("merge sub-themes: %w", err)
	}

	source, sourceKnown := s.findSubTheme(sourceID)

	if asks, cached := s.asks.cached(sourceID); cached {
		for _, ask := range asks {
			s.mentions.invalidate(ask.ID)
		}
	}
	s.asks.invalidate(sourceID)
	s.asks.invalidate(targetID)

	if sourceKnown {
		s.subThemes.remove(source.ThemeID, sourceID)
		s.themes.mutate(s.session.WorkspaceID(), source.ThemeID, func(t *feedback.Theme) {
			t.SubThemeCount--
		})
	}
	s.subThemes.replace(result.Target.ThemeID, result.Target)

	// A selection pointing at the merged-away source follows the feedback
	// to the target rather than dangling.
	s.mu.Lock()
	if s.ui.sel.subThemeID == sourceID {
		s.ui.sel.subThemeID = targetID
		s.ui.clearAsk()
	}
	s.mu.Unlock()
	return result, nil
}

// findSubTheme looks up a sub-theme across cached entries by id.
func (s *Store) findSubTheme(subThemeID string) (feedback.SubTheme, bool) {
	for _, theme := range s.themes.Visible() {
		if subThemes, ok := s.subThemes.cached(theme.ID); ok {
			for _, st := range subThemes {
				if st.ID == subThemeID {
					return st, true
				}
			}
		}
	}
	return feedback.SubTheme{}, false
}
