package store

import "context"

// MentionActions is the Mention-level action surface. Mentions are the
// highest-volume collection; everything is cursor-paginated and the
// configured source-ignore globs are applied before cache writes.
type MentionActions interface {
	FetchMentions(ctx context.Context, askID string, opts FetchOptions) error
	FetchMoreMentions(ctx context.Context, askID string) error
}

// FetchMentions makes askID's mentions visible (first page).
func (s *Store) FetchMentions(ctx context.Context, askID string, opts FetchOptions) error {
	return s.mentions.Fetch(ctx, askID, s.fetchOpts(opts))
}

// FetchMoreMentions appends the next mention page for askID. No-op while a
// page for the same ask is already in flight or when no more pages exist.
func (s *Store) FetchMoreMentions(ctx context.Context, askID string) error {
	return s.mentions.FetchMore(ctx, askID)
}
