package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/config"
	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/store"
)

// nilClient serves a minimal fixed hierarchy for view tests.
type nilClient struct{}

func (nilClient) ListThemes(context.Context, string) ([]feedback.Theme, error) {
	return []feedback.Theme{{ID: "t1", Name: "Onboarding", SubThemeCount: 1}}, nil
}

func (nilClient) CreateTheme(context.Context, string, feedback.ThemeDraft) (feedback.Theme, error) {
	return feedback.Theme{}, nil
}

func (nilClient) UpdateTheme(context.Context, string, feedback.ThemeDraft) (feedback.Theme, error) {
	return feedback.Theme{}, nil
}

func (nilClient) DeleteTheme(context.Context, string) error { return nil }

func (nilClient) ListSubThemes(context.Context, string) ([]feedback.SubTheme, error) {
	return nil, nil
}

func (nilClient) CreateSubTheme(context.Context, string, feedback.SubThemeDraft) (feedback.SubTheme, error) {
	return feedback.SubTheme{}, nil
}

func (nilClient) UpdateSubTheme(context.Context, string, feedback.SubThemeDraft) (feedback.SubTheme, error) {
	return feedback.SubTheme{}, nil
}

func (nilClient) DeleteSubTheme(context.Context, string) error { return nil }

func (nilClient) MergeSubThemes(context.Context, string, string) (feedback.MergeResult, error) {
	return feedback.MergeResult{}, nil
}

func (nilClient) ListCustomerAsks(context.Context, string, string) (feedback.Page[feedback.CustomerAsk], error) {
	return feedback.Page[feedback.CustomerAsk]{}, nil
}

func (nilClient) UpdateAskStatus(context.Context, string, feedback.AskStatus) (feedback.CustomerAsk, error) {
	return feedback.CustomerAsk{}, nil
}

func (nilClient) ListMentions(context.Context, string, string) (feedback.Page[feedback.Mention], error) {
	return feedback.Page[feedback.Mention]{}, nil
}

func (nilClient) ListTranscriptClassifications(context.Context, string) ([]feedback.TranscriptClassification, error) {
	return nil, nil
}

func (nilClient) CountTranscriptClassifications(context.Context, string) (int, error) {
	return 0, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := store.New(nilClient{}, auth.StaticSession{Workspace: "ws-1"}, zerolog.Nop(), store.Options{})
	require.NoError(t, s.FetchThemes(context.Background(), store.FetchOptions{}))
	return New(s, config.Default(), zerolog.Nop())
}

func TestView_renders_board_after_resize(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "Themes")
	assert.Contains(t, out, "Onboarding")
	assert.Contains(t, out, "Customer asks")
}

func TestView_compact_below_threshold_shows_single_column(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "Themes")
	assert.NotContains(t, out, "Customer asks")
}

func TestUpdate_quit_keys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_navigation_key_moves_selection(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = next.(Model)

	assert.Equal(t, "t1", m.store.Selection().ThemeID)
}

func TestNextStatus_cycles(t *testing.T) {
	assert.Equal(t, feedback.AskStatusPlanned, nextStatus(feedback.AskStatusOpen))
	assert.Equal(t, feedback.AskStatusShipped, nextStatus(feedback.AskStatusPlanned))
	assert.Equal(t, feedback.AskStatusDeclined, nextStatus(feedback.AskStatusShipped))
	assert.Equal(t, feedback.AskStatusOpen, nextStatus(feedback.AskStatusDeclined))
}

func TestAskMarkdown_includes_insights(t *testing.T) {
	md := askMarkdown(feedback.CustomerAsk{
		Title:        "Export to CSV",
		Status:       feedback.AskStatusOpen,
		Source:       feedback.SourceSlack,
		MentionCount: 4,
		Insights: &feedback.AIInsights{
			KeyPoints:        []string{"finance teams need raw data"},
			SuggestedActions: []string{"scope a CSV exporter"},
		},
	})

	assert.True(t, strings.HasPrefix(md, "# Export to CSV"))
	assert.Contains(t, md, "## Key points")
	assert.Contains(t, md, "- finance teams need raw data")
	assert.Contains(t, md, "## Suggested actions")
}

func TestTruncate_clips_to_width(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "", truncate("abc", 0))
}
