package store

import "context"

// TranscriptActions covers the workspace-scoped transcript classification
// collection, which sits beside the Theme tree.
type TranscriptActions interface {
	FetchTranscripts(ctx context.Context, opts FetchOptions) error
}

// FetchTranscripts loads the workspace's transcript classifications.
func (s *Store) FetchTranscripts(ctx context.Context, opts FetchOptions) error {
	return s.transcripts.Fetch(ctx, s.session.WorkspaceID(), s.fetchOpts(opts))
}
