package store

import (
	"context"
	"fmt"

	"github.com/colonyops/triage/internal/core/feedback"
)

// AskActions is the CustomerAsk-level action surface. Asks are the first
// high-volume collection: listing is cursor-paginated newest-first.
type AskActions interface {
	FetchAsks(ctx context.Context, subThemeID string, opts FetchOptions) error
	PrefetchAsks(ctx context.Context, subThemeID string) error
	FetchMoreAsks(ctx context.Context, subThemeID string) error
	UpdateAskStatus(ctx context.Context, askID string, status feedback.AskStatus) (feedback.CustomerAsk, error)
}

// FetchAsks makes subThemeID's asks visible (first page).
func (s *Store) FetchAsks(ctx context.Context, subThemeID string, opts FetchOptions) error {
	return s.asks.Fetch(ctx, subThemeID, s.fetchOpts(opts))
}

// PrefetchAsks warms the ask cache for a sub-theme without touching the
// visible list.
func (s *Store) PrefetchAsks(ctx context.Context, subThemeID string) error {
	return s.asks.Prefetch(ctx, subThemeID)
}

// FetchMoreAsks appends the next ask page for subThemeID. No-op while a
// page for the same sub-theme is already in flight or when no more pages
// exist.
func (s *Store) FetchMoreAsks(ctx context.Context, subThemeID string) error {
	return s.asks.FetchMore(ctx, subThemeID)
}

// UpdateAskStatus changes an ask's triage status and replaces the local
// record with the backend's result.
func (s *Store) UpdateAskStatus(ctx context.Context, askID string, status feedback.AskStatus) (feedback.CustomerAsk, error) {
	ask, err := s.client.UpdateAskStatus(ctx, askID, status)
	if err != nil {
		return feedback.CustomerAsk{}, fmt.Errorf("update ask status: %w", err)
	}
	s.asks.replace(ask.SubThemeID, ask)
	return ask, nil
}
