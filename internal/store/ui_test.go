package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/triage/internal/core/feedback"
)

func newNavStore(t *testing.T) (*Store, *fakeClient) {
	t.Helper()
	client := newFakeClient()
	seedHierarchy(client)
	client.askPages["s1"] = map[string]feedback.Page[feedback.CustomerAsk]{
		"": {Items: []feedback.CustomerAsk{
			{ID: "a1", SubThemeID: "s1", ThemeID: "t1", Title: "Export to CSV"},
			{ID: "a2", SubThemeID: "s1", ThemeID: "t1", Title: "SAML support"},
		}},
	}
	client.mentionPages["a1"] = map[string]feedback.Page[feedback.Mention]{
		"": {Items: []feedback.Mention{{ID: "m1", AskID: "a1"}}},
	}

	s := newTestStore(client, Options{})
	require.NoError(t, s.FetchThemes(context.Background(), FetchOptions{}))
	require.NoError(t, s.FetchSubThemes(context.Background(), "t1", FetchOptions{}))
	require.NoError(t, s.FetchAsks(context.Background(), "s1", FetchOptions{}))
	require.NoError(t, s.FetchMentions(context.Background(), "a1", FetchOptions{}))
	return s, client
}

// drillToMentions selects one item per level and advances focus to the
// mentions column, pushing the full navigation stack.
func drillToMentions(t *testing.T, s *Store) {
	t.Helper()
	s.SelectTheme("t1")
	require.True(t, s.AdvanceColumn())
	s.SelectSubTheme("s1")
	require.True(t, s.AdvanceColumn())
	s.SelectAsk("a1")
	require.True(t, s.AdvanceColumn())
}

func TestSelection_child_never_clears_ancestor(t *testing.T) {
	s, _ := newNavStore(t)

	s.SelectTheme("t1")
	s.SelectSubTheme("s1")
	s.SelectAsk("a1")

	sel := s.Selection()
	assert.Equal(t, "t1", sel.ThemeID)
	assert.Equal(t, "s1", sel.SubThemeID)
	assert.Equal(t, "a1", sel.AskID)
}

func TestSelection_changing_ancestor_cascade_clears(t *testing.T) {
	s, _ := newNavStore(t)

	s.SelectTheme("t1")
	s.SelectSubTheme("s1")
	s.ExpandAsk("a1")
	require.True(t, s.DetailOpen())

	s.SelectTheme("t2")

	sel := s.Selection()
	assert.Equal(t, "t2", sel.ThemeID)
	assert.Empty(t, sel.SubThemeID)
	assert.Empty(t, sel.AskID)
	assert.Empty(t, sel.ExpandedAskID)
	assert.False(t, s.DetailOpen())
	assert.False(t, s.MentionsOpen())
}

func TestSelection_reselecting_same_id_is_noop(t *testing.T) {
	s, _ := newNavStore(t)

	s.SelectTheme("t1")
	s.SelectSubTheme("s1")
	s.SelectAsk("a1")

	// Same theme again must not cascade.
	s.SelectTheme("t1")

	sel := s.Selection()
	assert.Equal(t, "s1", sel.SubThemeID)
	assert.Equal(t, "a1", sel.AskID)
}

func TestCloseDetail_keeps_selection(t *testing.T) {
	s, _ := newNavStore(t)

	s.SelectTheme("t1")
	s.SelectSubTheme("s1")
	s.ExpandAsk("a1")

	s.CloseDetail()

	assert.False(t, s.DetailOpen())
	assert.Equal(t, "a1", s.Selection().AskID)
}

func TestSelectedAsk_vanished_entity_resolves_false(t *testing.T) {
	s, _ := newNavStore(t)

	s.SelectAsk("a1")
	_, ok := s.SelectedAsk()
	require.True(t, ok)

	// The ask list refreshes without a1; the id no longer resolves.
	s.asks.invalidate("s1")
	_, ok = s.SelectedAsk()
	assert.False(t, ok)
	assert.Equal(t, "a1", s.Selection().AskID)
}

func TestAdvanceColumn_requires_selection(t *testing.T) {
	s, _ := newNavStore(t)

	assert.False(t, s.AdvanceColumn())
	assert.Equal(t, ColumnThemes, s.ActiveColumn())

	s.SelectTheme("t1")
	assert.True(t, s.AdvanceColumn())
	assert.Equal(t, ColumnSubThemes, s.ActiveColumn())
}

func TestAdvanceColumn_from_asks_opens_mentions_panel(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	assert.Equal(t, ColumnMentions, s.ActiveColumn())
	assert.True(t, s.MentionsOpen())

	// Mentions is the end of the chain.
	assert.False(t, s.AdvanceColumn())
}

func TestNavStack_push_pop_and_titles(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	stack := s.NavStack()
	require.Len(t, stack, 4)
	assert.Equal(t, "Themes", stack[0].Title)
	assert.Equal(t, "Onboarding", stack[1].Title)
	assert.Equal(t, "Signup flow", stack[2].Title)
	assert.Equal(t, "Export to CSV", stack[3].Title)
	assert.Equal(t, "a1", stack[3].AskID)

	s.RegressColumn()
	stack = s.NavStack()
	require.Len(t, stack, 3)
	assert.Equal(t, ColumnAsks, s.CurrentView().View)
}

func TestNavStack_floor_is_never_popped(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	// Regress past the floor several times; the themes entry survives.
	for range 10 {
		s.RegressColumn()
	}
	stack := s.NavStack()
	require.Len(t, stack, 1)
	assert.Equal(t, ColumnThemes, stack[0].View)
	assert.Equal(t, ColumnThemes, s.ActiveColumn())
}

func TestRegressColumn_from_mentions_closes_panel_keeps_ask(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	s.RegressColumn()

	assert.Equal(t, ColumnAsks, s.ActiveColumn())
	assert.False(t, s.MentionsOpen())
	assert.Equal(t, "a1", s.Selection().AskID)
}

func TestRegressColumn_clears_selection_at_level(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)
	s.RegressColumn() // mentions -> asks

	s.RegressColumn() // asks -> subThemes, ask selection cleared
	assert.Equal(t, ColumnSubThemes, s.ActiveColumn())
	assert.Empty(t, s.Selection().AskID)
	assert.Equal(t, "s1", s.Selection().SubThemeID)

	s.RegressColumn() // subThemes -> themes
	assert.Equal(t, ColumnThemes, s.ActiveColumn())
	assert.Empty(t, s.Selection().SubThemeID)
	assert.Equal(t, "t1", s.Selection().ThemeID)

	s.RegressColumn() // at the floor: clears the theme, stays put
	assert.Equal(t, ColumnThemes, s.ActiveColumn())
	assert.Empty(t, s.Selection().ThemeID)
}

func TestFocusPrevColumn_moves_without_clearing(t *testing.T) {
	s, _ := newNavStore(t)
	drillToMentions(t, s)

	s.FocusPrevColumn()
	s.FocusPrevColumn()

	assert.Equal(t, ColumnSubThemes, s.ActiveColumn())
	sel := s.Selection()
	assert.Equal(t, "s1", sel.SubThemeID)
	assert.Equal(t, "a1", sel.AskID)

	// Clamped at the themes end.
	s.FocusPrevColumn()
	s.FocusPrevColumn()
	assert.Equal(t, ColumnThemes, s.ActiveColumn())
}

func TestFocusNextColumn_requires_selection(t *testing.T) {
	s, _ := newNavStore(t)

	s.FocusNextColumn()
	assert.Equal(t, ColumnThemes, s.ActiveColumn())

	s.SelectTheme("t1")
	s.FocusNextColumn()
	assert.Equal(t, ColumnSubThemes, s.ActiveColumn())
}

func TestDialogs_are_mutually_exclusive(t *testing.T) {
	s, _ := newNavStore(t)

	s.OpenDialog(DialogThemeCreate)
	assert.Equal(t, DialogThemeCreate, s.ActiveDialog())

	s.OpenDialog(DialogSubThemeMerge)
	assert.Equal(t, DialogSubThemeMerge, s.ActiveDialog())

	s.CloseDialog()
	assert.Equal(t, DialogNone, s.ActiveDialog())
}
