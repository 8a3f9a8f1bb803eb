package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_open_clears_previous_query(t *testing.T) {
	s, _ := newNavStore(t)

	s.OpenSearch()
	s.SetSearchQuery("bill")
	s.CloseSearch()
	assert.False(t, s.SearchOpen())
	assert.Empty(t, s.SearchQuery())

	s.OpenSearch()
	assert.True(t, s.SearchOpen())
	assert.Empty(t, s.SearchQuery())
}

func TestSearchResults_empty_query_returns_list_order(t *testing.T) {
	s, _ := newNavStore(t)

	s.OpenSearch()
	results := s.SearchResults()
	require.Len(t, results, 2)
	assert.Equal(t, "Onboarding", results[0].Title)
	assert.Equal(t, "Billing", results[1].Title)
}

func TestSearchResults_fuzzy_matches_active_column(t *testing.T) {
	s, _ := newNavStore(t)

	s.OpenSearch()
	s.SetSearchQuery("bil")
	results := s.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "t2", results[0].ID)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestSearchResults_follow_column_focus(t *testing.T) {
	s, _ := newNavStore(t)
	s.SelectTheme("t1")
	require.True(t, s.AdvanceColumn())

	s.OpenSearch()
	s.SetSearchQuery("sig")
	results := s.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].ID)
	assert.Equal(t, "Signup flow", results[0].Title)
}

func TestSearchResults_mentions_column_searches_asks(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	s.OpenSearch()
	s.SetSearchQuery("saml")
	results := s.SearchResults()
	require.Len(t, results, 1)
	assert.Equal(t, "a2", results[0].ID)
}

func TestSearchResults_no_match_returns_empty(t *testing.T) {
	s, _ := newNavStore(t)

	s.OpenSearch()
	s.SetSearchQuery("zzzz")
	assert.Empty(t, s.SearchResults())
}
