package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/core/styles"
	"github.com/colonyops/triage/internal/store"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.renderBreadcrumb())
	b.WriteString("\n")

	if m.store.SearchOpen() {
		b.WriteString(m.renderSearch())
		b.WriteString("\n")
	}

	if m.width < m.cfg.TUI.CompactWidth {
		b.WriteString(m.renderCompact())
	} else {
		b.WriteString(m.renderBoard())
	}

	if m.store.DetailOpen() {
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderBreadcrumb shows the navigation stack, floor first.
func (m Model) renderBreadcrumb() string {
	stack := m.store.NavStack()
	titles := make([]string, len(stack))
	for i, entry := range stack {
		titles[i] = entry.Title
	}
	crumb := strings.Join(titles, " "+iconDot+" ")
	if count := m.store.TranscriptCount(); count > 0 {
		crumb += mutedStyle.Render(fmt.Sprintf("   %d transcripts", count))
	}
	return breadcrumbStyle.Render(truncate(crumb, m.width))
}

// renderBoard renders the multi-column layout: themes, sub-themes, asks,
// and the mentions panel when open.
func (m Model) renderBoard() string {
	panes := []string{
		m.renderThemesPane(),
		m.renderSubThemesPane(),
		m.renderAsksPane(),
	}
	if m.store.MentionsOpen() {
		panes = append(panes, m.renderMentionsPane())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

// renderCompact renders the single-column progressive flow: only the view
// at the top of the navigation stack.
func (m Model) renderCompact() string {
	switch m.store.CurrentView().View {
	case store.ColumnSubThemes:
		return m.renderSubThemesPane()
	case store.ColumnAsks:
		return m.renderAsksPane()
	case store.ColumnMentions:
		return m.renderMentionsPane()
	default:
		return m.renderThemesPane()
	}
}

func (m Model) columnWidth() int {
	cols := 3
	if m.store.MentionsOpen() && m.width >= m.cfg.TUI.CompactWidth {
		cols = 4
	}
	if m.width < m.cfg.TUI.CompactWidth {
		cols = 1
	}
	// Border and padding eat 4 cells per pane.
	w := m.width/cols - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) boardHeight() int {
	h := m.height - 4 // breadcrumb, status bar, pane border
	if m.store.DetailOpen() {
		h -= m.height / 3
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) pane(col store.Column, title, body string) string {
	style := paneStyle
	if m.store.ActiveColumn() == col {
		style = paneActiveStyle
	}
	header := paneTitleStyle.Render(title)
	return style.Width(m.columnWidth()).Height(m.boardHeight()).
		Render(header + "\n" + body)
}

func (m Model) renderThemesPane() string {
	themes := m.store.Themes()
	selected := m.store.Selection().ThemeID
	w := m.columnWidth()

	var rows []string
	for _, t := range themes {
		label := t.Name
		if t.Locked {
			label = iconLocked + " " + label
		}
		if t.AIGenerated {
			label = iconSpark + " " + label
		}
		line := fmt.Sprintf("%s %s", label, mutedStyle.Render(fmt.Sprintf("(%d)", t.SubThemeCount)))
		rows = append(rows, m.renderRow(line, t.ID == selected, w, styles.ColorForString(t.ID)))
	}
	body := m.listBody(rows, m.store.ThemesLoading(), m.store.ThemesError(), "no themes yet")
	return m.pane(store.ColumnThemes, "Themes", body)
}

func (m Model) renderSubThemesPane() string {
	subThemes := m.store.SubThemes()
	selected := m.store.Selection().SubThemeID
	w := m.columnWidth()

	var rows []string
	for _, st := range subThemes {
		label := st.Name
		if st.Locked {
			label = iconLocked + " " + label
		}
		line := fmt.Sprintf("%s %s", label, mutedStyle.Render(fmt.Sprintf("(%d)", st.FeedbackCount)))
		rows = append(rows, m.renderRow(line, st.ID == selected, w, ""))
	}

	empty := "select a theme"
	if m.store.Selection().ThemeID != "" {
		empty = "no sub-themes"
	}
	body := m.listBody(rows, m.store.SubThemesLoading(), m.store.SubThemesError(), empty)
	return m.pane(store.ColumnSubThemes, "Sub-themes", body)
}

func (m Model) renderAsksPane() string {
	asks := m.store.Asks()
	selected := m.store.Selection().AskID
	w := m.columnWidth()

	var rows []string
	for _, a := range asks {
		badge := askStatusStyle(string(a.Status)).Render(string(a.Status))
		line := fmt.Sprintf("%s %s %s", badge, a.Title,
			mutedStyle.Render(fmt.Sprintf("%s %d", iconMention, a.MentionCount)))
		rows = append(rows, m.renderRow(line, a.ID == selected, w, ""))
	}
	if sel := m.store.Selection().SubThemeID; sel != "" && m.store.HasMoreAsks(sel) {
		rows = append(rows, mutedStyle.Render("  … more (j to load)"))
	}

	empty := "select a sub-theme"
	if m.store.Selection().SubThemeID != "" {
		empty = "no asks"
	}
	body := m.listBody(rows, m.store.AsksLoading(), m.store.AsksError(), empty)
	return m.pane(store.ColumnAsks, "Customer asks", body)
}

func (m Model) renderMentionsPane() string {
	m.mentionsView.SetContent(m.renderMentionsContent())
	return m.pane(store.ColumnMentions, "Mentions", m.mentionsView.View())
}

// renderMentionsContent renders the mention feed for the viewport.
func (m Model) renderMentionsContent() string {
	mentions := m.store.Mentions()
	if m.store.MentionsLoading() && len(mentions) == 0 {
		return m.spinner.View() + " loading"
	}
	if err := m.store.MentionsError(); err != nil {
		return errorStyle.Render(truncate(err.Error(), m.columnWidth()))
	}
	if len(mentions) == 0 {
		return mutedStyle.Render("no mentions")
	}

	w := m.columnWidth()
	var b strings.Builder
	for i, mention := range mentions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render(truncate(mentionByline(mention), w)))
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(truncate(mention.Content, w*3)))
		b.WriteString("\n")
	}
	if askID := m.store.Selection().AskID; askID != "" && m.store.HasMoreMentions(askID) {
		b.WriteString(mutedStyle.Render("… more (j to load)"))
	}
	return b.String()
}

func mentionByline(mention feedback.Mention) string {
	byline := string(mention.Source)
	if mention.Author != "" {
		byline += " " + iconDot + " " + mention.Author
	}
	if !mention.CreatedAt.IsZero() {
		byline += " " + iconDot + " " + mention.CreatedAt.Format("Jan 2")
	}
	return byline
}

// renderRow renders one list row with selection highlight and truncation.
func (m Model) renderRow(line string, selected bool, width int, accent lipgloss.Color) string {
	line = truncate(line, width)
	if selected {
		return rowSelectedStyle.Render("▌" + line)
	}
	if accent != "" {
		return lipgloss.NewStyle().Foreground(accent).Render("▏") + rowStyle.Render(line)
	}
	return " " + rowStyle.Render(line)
}

// listBody assembles rows with the loading/error/empty states.
func (m Model) listBody(rows []string, loading bool, err error, empty string) string {
	var parts []string
	if err != nil {
		parts = append(parts, errorStyle.Render(truncate(err.Error(), m.columnWidth())))
	}
	if loading && len(rows) == 0 {
		parts = append(parts, m.spinner.View()+" loading")
	} else if len(rows) == 0 {
		parts = append(parts, mutedStyle.Render(empty))
	} else {
		parts = append(parts, rows...)
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderSearch() string {
	bar := m.searchInput.View()
	if results := m.store.SearchResults(); m.store.SearchQuery() != "" {
		bar += mutedStyle.Render(fmt.Sprintf("  %d matches", len(results)))
	}
	return searchBarStyle.Width(m.width - 2).Render(bar)
}

func (m Model) renderStatusBar() string {
	if !m.store.Initialized() {
		if m.store.Initializing() {
			return statusBarStyle.Render(m.spinner.View() + " connecting")
		}
		if m.status != "" {
			return errorStyle.Render(truncate(m.status, m.width))
		}
	}

	help := "j/k move " + iconDot + " enter open " + iconDot + " esc back " + iconDot +
		" / search " + iconDot + " n new " + iconDot + " q quit"
	left := statusBarStyle.Render(help)
	if m.status == "" {
		return left
	}
	return left + "  " + statusBarStyle.Render(truncate(m.status, m.width-lipgloss.Width(left)-2))
}

// truncate clips s to width terminal cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
