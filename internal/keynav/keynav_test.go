package keynav

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/store"
)

// stubClient serves a fixed two-theme hierarchy.
type stubClient struct{}

func (stubClient) ListThemes(context.Context, string) ([]feedback.Theme, error) {
	return []feedback.Theme{
		{ID: "t1", Name: "Onboarding"},
		{ID: "t2", Name: "Billing"},
		{ID: "t3", Name: "Performance"},
	}, nil
}

func (stubClient) CreateTheme(context.Context, string, feedback.ThemeDraft) (feedback.Theme, error) {
	return feedback.Theme{}, nil
}

func (stubClient) UpdateTheme(context.Context, string, feedback.ThemeDraft) (feedback.Theme, error) {
	return feedback.Theme{}, nil
}

func (stubClient) DeleteTheme(context.Context, string) error { return nil }

func (stubClient) ListSubThemes(_ context.Context, themeID string) ([]feedback.SubTheme, error) {
	if themeID != "t1" {
		return nil, nil
	}
	return []feedback.SubTheme{
		{ID: "s1", ThemeID: "t1", Name: "Signup flow"},
		{ID: "s2", ThemeID: "t1", Name: "Invites"},
	}, nil
}

func (stubClient) CreateSubTheme(context.Context, string, feedback.SubThemeDraft) (feedback.SubTheme, error) {
	return feedback.SubTheme{}, nil
}

func (stubClient) UpdateSubTheme(context.Context, string, feedback.SubThemeDraft) (feedback.SubTheme, error) {
	return feedback.SubTheme{}, nil
}

func (stubClient) DeleteSubTheme(context.Context, string) error { return nil }

func (stubClient) MergeSubThemes(context.Context, string, string) (feedback.MergeResult, error) {
	return feedback.MergeResult{}, nil
}

func (stubClient) ListCustomerAsks(_ context.Context, subThemeID, cursor string) (feedback.Page[feedback.CustomerAsk], error) {
	if subThemeID != "s1" {
		return feedback.Page[feedback.CustomerAsk]{}, nil
	}
	if cursor != "" {
		return feedback.Page[feedback.CustomerAsk]{
			Items: []feedback.CustomerAsk{{ID: "a3", SubThemeID: "s1", Title: "Dark mode"}},
		}, nil
	}
	return feedback.Page[feedback.CustomerAsk]{
		Items: []feedback.CustomerAsk{
			{ID: "a1", SubThemeID: "s1", Title: "Export to CSV"},
			{ID: "a2", SubThemeID: "s1", Title: "SAML support"},
		},
		HasMore:    true,
		NextCursor: "c1",
	}, nil
}

func (stubClient) UpdateAskStatus(context.Context, string, feedback.AskStatus) (feedback.CustomerAsk, error) {
	return feedback.CustomerAsk{}, nil
}

func (stubClient) ListMentions(_ context.Context, askID, _ string) (feedback.Page[feedback.Mention], error) {
	if askID != "a1" {
		return feedback.Page[feedback.Mention]{}, nil
	}
	return feedback.Page[feedback.Mention]{
		Items:   []feedback.Mention{{ID: "m1", AskID: "a1"}},
		HasMore: true,
	}, nil
}

func (stubClient) ListTranscriptClassifications(context.Context, string) ([]feedback.TranscriptClassification, error) {
	return nil, nil
}

func (stubClient) CountTranscriptClassifications(context.Context, string) (int, error) {
	return 0, nil
}

func newController(t *testing.T) (*Controller, *store.Store) {
	t.Helper()
	s := store.New(stubClient{}, auth.StaticSession{Workspace: "ws-1", BearerToken: "tok"}, zerolog.Nop(), store.Options{})
	require.NoError(t, s.FetchThemes(context.Background(), store.FetchOptions{}))
	return New(s, zerolog.Nop()), s
}

func kinds(r Result) []EffectKind {
	out := make([]EffectKind, len(r.Effects))
	for i, e := range r.Effects {
		out[i] = e.Kind
	}
	return out
}

func TestHandle_suppressed_while_dialog_or_input_owns_keys(t *testing.T) {
	c, s := newController(t)

	assert.False(t, c.Handle("j", Context{DialogOpen: true}).Handled)
	assert.False(t, c.Handle("enter", Context{TextInputFocused: true}).Handled)
	assert.Empty(t, s.Selection().ThemeID)
}

func TestHandle_first_move_selects_index_zero(t *testing.T) {
	c, s := newController(t)

	res := c.Handle("j", Context{})
	require.True(t, res.Handled)
	assert.Equal(t, "t1", s.Selection().ThemeID)
	assert.Equal(t, []EffectKind{EffectPrefetchSubThemes}, kinds(res))

	// k with no prior selection also lands on index 0.
	s.ClearThemeSelection()
	c.Handle("k", Context{})
	assert.Equal(t, "t1", s.Selection().ThemeID)
}

func TestHandle_moves_clamp_at_list_ends(t *testing.T) {
	c, s := newController(t)

	c.Handle("j", Context{})
	c.Handle("k", Context{})
	assert.Equal(t, "t1", s.Selection().ThemeID)

	for range 10 {
		c.Handle("j", Context{})
	}
	assert.Equal(t, "t3", s.Selection().ThemeID)
}

func TestHandle_arrows_mirror_vim_keys(t *testing.T) {
	c, s := newController(t)

	c.Handle("down", Context{})
	c.Handle("down", Context{})
	assert.Equal(t, "t2", s.Selection().ThemeID)
	c.Handle("up", Context{})
	assert.Equal(t, "t1", s.Selection().ThemeID)
}

func TestHandle_enter_selects_first_then_advances(t *testing.T) {
	c, s := newController(t)

	res := c.Handle("enter", Context{})
	require.True(t, res.Handled)
	assert.Equal(t, "t1", s.Selection().ThemeID)
	assert.Equal(t, store.ColumnSubThemes, s.ActiveColumn())
	require.Equal(t, []EffectKind{EffectFetchSubThemes}, kinds(res))
	assert.Equal(t, "t1", res.Effects[0].TargetID)
}

func TestHandle_enter_on_ask_emits_mention_fetch(t *testing.T) {
	c, s := newController(t)
	drill(t, c, s)

	assert.Equal(t, store.ColumnMentions, s.ActiveColumn())
	assert.True(t, s.MentionsOpen())
}

// drill walks theme -> sub-theme -> ask with enter, running the fetch
// effects the way the view layer would.
func drill(t *testing.T, c *Controller, s *store.Store) {
	t.Helper()
	res := c.Handle("enter", Context{}) // selects t1, advances
	runEffects(t, s, res)
	res = c.Handle("enter", Context{}) // selects s1, advances
	runEffects(t, s, res)
	res = c.Handle("enter", Context{}) // selects a1, opens mentions
	runEffects(t, s, res)
}

func runEffects(t *testing.T, s *store.Store, res Result) {
	t.Helper()
	ctx := context.Background()
	for _, e := range res.Effects {
		var err error
		switch e.Kind {
		case EffectFetchSubThemes:
			err = s.FetchSubThemes(ctx, e.TargetID, store.FetchOptions{})
		case EffectFetchAsks:
			err = s.FetchAsks(ctx, e.TargetID, store.FetchOptions{})
		case EffectFetchMentions:
			err = s.FetchMentions(ctx, e.TargetID, store.FetchOptions{})
		case EffectFetchMoreAsks:
			err = s.FetchMoreAsks(ctx, e.TargetID)
		case EffectFetchMoreMentions:
			err = s.FetchMoreMentions(ctx, e.TargetID)
		}
		require.NoError(t, err)
	}
}

func TestHandle_j_at_ask_bottom_pulls_next_page(t *testing.T) {
	c, s := newController(t)

	res := c.Handle("enter", Context{})
	runEffects(t, s, res)
	res = c.Handle("enter", Context{})
	runEffects(t, s, res)

	// Walk to the bottom of the two loaded asks.
	c.Handle("j", Context{})
	c.Handle("j", Context{})
	assert.Equal(t, "a2", s.Selection().AskID)

	res = c.Handle("j", Context{})
	require.Equal(t, []EffectKind{EffectFetchMoreAsks}, kinds(res))
	runEffects(t, s, res)
	require.Len(t, s.Asks(), 3)

	// The page landed; the next j steps onto it.
	c.Handle("j", Context{})
	assert.Equal(t, "a3", s.Selection().AskID)
}

func TestHandle_j_in_mentions_scrolls_and_pages(t *testing.T) {
	c, s := newController(t)
	drill(t, c, s)

	res := c.Handle("j", Context{})
	require.True(t, res.Handled)
	assert.Equal(t, []EffectKind{EffectScrollMentions, EffectFetchMoreMentions}, kinds(res))
	assert.Equal(t, 1, res.Effects[0].Delta)

	res = c.Handle("k", Context{})
	assert.Equal(t, []EffectKind{EffectScrollMentions}, kinds(res))
	assert.Equal(t, -1, res.Effects[0].Delta)
}

func TestHandle_h_and_l_move_focus_without_clearing(t *testing.T) {
	c, s := newController(t)
	drill(t, c, s)

	c.Handle("h", Context{})
	assert.Equal(t, store.ColumnAsks, s.ActiveColumn())
	assert.Equal(t, "a1", s.Selection().AskID)

	res := c.Handle("l", Context{})
	assert.Equal(t, store.ColumnMentions, s.ActiveColumn())
	assert.Equal(t, []EffectKind{EffectFetchMentions}, kinds(res))
}

func TestHandle_escape_closes_detail_before_regressing(t *testing.T) {
	c, s := newController(t)
	res := c.Handle("enter", Context{})
	runEffects(t, s, res)
	res = c.Handle("enter", Context{})
	runEffects(t, s, res)
	c.Handle("j", Context{})
	s.ExpandAsk(s.Selection().AskID)

	c.Handle("esc", Context{})
	assert.False(t, s.DetailOpen())
	assert.Equal(t, store.ColumnAsks, s.ActiveColumn())
	assert.NotEmpty(t, s.Selection().AskID)

	c.Handle("esc", Context{})
	assert.Equal(t, store.ColumnSubThemes, s.ActiveColumn())
	assert.Empty(t, s.Selection().AskID)
}

func TestHandle_escape_at_floor_clears_theme(t *testing.T) {
	c, s := newController(t)
	c.Handle("j", Context{})
	require.Equal(t, "t1", s.Selection().ThemeID)

	c.Handle("esc", Context{})
	assert.Equal(t, store.ColumnThemes, s.ActiveColumn())
	assert.Empty(t, s.Selection().ThemeID)
}

func TestHandle_search_keys_open_search(t *testing.T) {
	c, s := newController(t)

	require.True(t, c.Handle("/", Context{}).Handled)
	assert.True(t, s.SearchOpen())
	c.Handle("esc", Context{})
	assert.False(t, s.SearchOpen())

	require.True(t, c.Handle("ctrl+k", Context{}).Handled)
	assert.True(t, s.SearchOpen())
}

func TestHandle_search_mode_passes_keys_through(t *testing.T) {
	c, s := newController(t)
	c.Handle("/", Context{})

	// j belongs to the query while searching, not to navigation.
	res := c.Handle("j", Context{})
	assert.False(t, res.Handled)
	assert.Empty(t, s.Selection().ThemeID)

	res = c.Handle("esc", Context{})
	assert.True(t, res.Handled)
	assert.False(t, s.SearchOpen())
}

func TestHandle_unbound_key_is_ignored(t *testing.T) {
	c, _ := newController(t)
	assert.False(t, c.Handle("x", Context{}).Handled)
}
