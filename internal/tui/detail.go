package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/core/styles"
)

// renderDetail renders the expanded ask's drawer: metadata plus the AI
// insight sections as markdown.
func (m Model) renderDetail() string {
	ask, ok := m.store.ExpandedAsk()
	if !ok {
		return ""
	}

	width := m.width - 4
	rendered := askMarkdown(ask)

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, rerr := r.Render(rendered); rerr == nil {
			rendered = out
		}
	}

	return detailStyle.Width(width).Render(
		strings.TrimRight(rendered, "\n") + "\n" +
			mutedStyle.Render("y yank "+iconDot+" esc close"))
}

// askMarkdown formats an ask as markdown for the detail drawer and the
// clipboard.
func askMarkdown(ask feedback.CustomerAsk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", ask.Title)
	fmt.Fprintf(&b, "**Status:** %s  \n", ask.Status)
	fmt.Fprintf(&b, "**Source:** %s  \n", ask.Source)
	if ask.Urgency != "" {
		fmt.Fprintf(&b, "**Urgency:** %s  \n", ask.Urgency)
	}
	if ask.Sentiment != "" {
		fmt.Fprintf(&b, "**Sentiment:** %s  \n", ask.Sentiment)
	}
	if ask.Contact != "" {
		fmt.Fprintf(&b, "**Contact:** %s  \n", ask.Contact)
	}
	fmt.Fprintf(&b, "**Mentions:** %d\n", ask.MentionCount)

	if len(ask.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(ask.Tags, ", "))
	}

	if ask.Insights != nil {
		if len(ask.Insights.KeyPoints) > 0 {
			b.WriteString("\n## Key points\n\n")
			for _, p := range ask.Insights.KeyPoints {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		if len(ask.Insights.SuggestedActions) > 0 {
			b.WriteString("\n## Suggested actions\n\n")
			for _, a := range ask.Insights.SuggestedActions {
				fmt.Fprintf(&b, "- %s\n", a)
			}
		}
	}
	return b.String()
}

// yankCmd copies the expanded ask's markdown to the system clipboard.
func (m Model) yankCmd() tea.Cmd {
	ask, ok := m.store.ExpandedAsk()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return yankDoneMsg{err: clipboard.WriteAll(askMarkdown(ask))}
	}
}

// yankMentionsCmd copies the visible mention feed as quoted text.
func (m Model) yankMentionsCmd() tea.Cmd {
	mentions := m.store.Mentions()
	if len(mentions) == 0 {
		return nil
	}
	var b strings.Builder
	for _, mention := range mentions {
		fmt.Fprintf(&b, "> %s\n", mention.Content)
		fmt.Fprintf(&b, "- %s\n\n", mentionByline(mention))
	}
	return func() tea.Msg {
		return yankDoneMsg{err: clipboard.WriteAll(b.String())}
	}
}
