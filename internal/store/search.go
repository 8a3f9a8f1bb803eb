package store

import (
	"github.com/sahilm/fuzzy"
)

// SearchActions is the search-mode part of the action surface. Search is
// scoped to the active column's titles.
type SearchActions interface {
	OpenSearch()
	CloseSearch()
	SetSearchQuery(query string)
}

// SearchResult is one fuzzy match against the active column.
type SearchResult struct {
	ID    string
	Title string
	// MatchedIndexes are rune offsets into Title, for highlight rendering.
	MatchedIndexes []int
}

// OpenSearch enters search mode with an empty query.
func (s *Store) OpenSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.searchOpen = true
	s.ui.searchQuery = ""
}

// CloseSearch leaves search mode and clears the query.
func (s *Store) CloseSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.searchOpen = false
	s.ui.searchQuery = ""
}

// SetSearchQuery updates the live query.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.searchQuery = query
}

// SearchOpen reports whether search mode is active.
func (s *Store) SearchOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.searchOpen
}

// SearchQuery returns the live search query.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.searchQuery
}

// searchCandidate pairs an id with its display title.
type searchCandidate struct {
	id    string
	title string
}

// candidateSource adapts candidates to fuzzy.Source.
type candidateSource []searchCandidate

func (c candidateSource) String(i int) string { return c[i].title }
func (c candidateSource) Len() int            { return len(c) }

// SearchResults fuzzy-matches the query against the active column's
// titles, best match first. An empty query returns every candidate in
// list order.
func (s *Store) SearchResults() []SearchResult {
	query := s.SearchQuery()
	candidates := s.searchCandidates()

	if query == "" {
		results := make([]SearchResult, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, SearchResult{ID: c.id, Title: c.title})
		}
		return results
	}

	matches := fuzzy.FindFrom(query, candidateSource(candidates))
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{
			ID:             candidates[m.Index].id,
			Title:          candidates[m.Index].title,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return results
}

// searchCandidates snapshots the active column's ids and titles.
func (s *Store) searchCandidates() []searchCandidate {
	switch s.ActiveColumn() {
	case ColumnThemes:
		themes := s.themes.Visible()
		out := make([]searchCandidate, len(themes))
		for i, t := range themes {
			out[i] = searchCandidate{id: t.ID, title: t.Name}
		}
		return out
	case ColumnSubThemes:
		subThemes := s.subThemes.Visible()
		out := make([]searchCandidate, len(subThemes))
		for i, st := range subThemes {
			out[i] = searchCandidate{id: st.ID, title: st.Name}
		}
		return out
	case ColumnAsks:
		asks := s.asks.Visible()
		out := make([]searchCandidate, len(asks))
		for i, a := range asks {
			out[i] = searchCandidate{id: a.ID, title: a.Title}
		}
		return out
	default:
		// Mentions have no titles worth matching; search stays on asks.
		asks := s.asks.Visible()
		out := make([]searchCandidate, len(asks))
		for i, a := range asks {
			out[i] = searchCandidate{id: a.ID, title: a.Title}
		}
		return out
	}
}
