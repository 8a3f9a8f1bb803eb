package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/triage/internal/core/config"
	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/core/styles"
	"github.com/colonyops/triage/internal/keynav"
	"github.com/colonyops/triage/internal/store"
)

// Messages produced by commands.
type (
	initDoneMsg  struct{ err error }
	fetchDoneMsg struct {
		kind   keynav.EffectKind
		target string
		err    error
	}
	mutationDoneMsg struct {
		status string
		err    error
	}
	yankDoneMsg struct{ err error }
)

// Model is the root Bubble Tea model. It renders from store selectors and
// routes every mutation through the store's action surface; no state lives
// here beyond view chrome.
type Model struct {
	store *store.Store
	nav   *keynav.Controller
	cfg   *config.Config
	log   zerolog.Logger

	width  int
	height int

	spinner      spinner.Model
	searchInput  textinput.Model
	mentionsView viewport.Model

	form       *huh.Form
	formDialog store.Dialog
	draft      *formDraft

	status string
}

// New creates the root model.
func New(s *store.Store, cfg *config.Config, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "

	return Model{
		store:        s,
		nav:          keynav.New(s, log),
		cfg:          cfg,
		log:          log.With().Str("component", "tui").Logger(),
		spinner:      sp,
		searchInput:  search,
		mentionsView: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initCmd())
}

func (m Model) initCmd() tea.Cmd {
	return func() tea.Msg {
		return initDoneMsg{err: m.store.Initialize(context.Background())}
	}
}

// effectCmd turns one keynav effect into a command. Scroll effects are
// applied synchronously by the caller and never reach here.
func (m Model) effectCmd(e keynav.Effect) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch e.Kind {
		case keynav.EffectFetchSubThemes:
			err = s.FetchSubThemes(ctx, e.TargetID, store.FetchOptions{})
		case keynav.EffectFetchAsks:
			err = s.FetchAsks(ctx, e.TargetID, store.FetchOptions{})
		case keynav.EffectFetchMentions:
			err = s.FetchMentions(ctx, e.TargetID, store.FetchOptions{})
		case keynav.EffectPrefetchSubThemes:
			err = s.PrefetchSubThemes(ctx, e.TargetID)
		case keynav.EffectPrefetchAsks:
			err = s.PrefetchAsks(ctx, e.TargetID)
		case keynav.EffectFetchMoreAsks:
			err = s.FetchMoreAsks(ctx, e.TargetID)
		case keynav.EffectFetchMoreMentions:
			err = s.FetchMoreMentions(ctx, e.TargetID)
		}
		return fetchDoneMsg{kind: e.Kind, target: e.TargetID, err: err}
	}
}

func (m Model) runEffects(effects []keynav.Effect) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		if e.Kind == keynav.EffectScrollMentions {
			if e.Delta > 0 {
				m.mentionsView.LineDown(1)
			} else {
				m.mentionsView.LineUp(1)
			}
			continue
		}
		cmds = append(cmds, m.effectCmd(e))
	}
	return m, tea.Batch(cmds...)
}

// refreshCmd force-refreshes the active column.
func (m Model) refreshCmd() tea.Cmd {
	s := m.store
	col := s.ActiveColumn()
	sel := s.Selection()
	return func() tea.Msg {
		ctx := context.Background()
		opts := store.FetchOptions{ForceRefresh: true}
		var err error
		switch col {
		case store.ColumnThemes:
			err = s.FetchThemes(ctx, opts)
		case store.ColumnSubThemes:
			if sel.ThemeID != "" {
				err = s.FetchSubThemes(ctx, sel.ThemeID, opts)
			}
		case store.ColumnAsks:
			if sel.SubThemeID != "" {
				err = s.FetchAsks(ctx, sel.SubThemeID, opts)
			}
		case store.ColumnMentions:
			if sel.AskID != "" {
				err = s.FetchMentions(ctx, sel.AskID, opts)
			}
		}
		return fetchDoneMsg{err: err}
	}
}

// cycleStatusCmd advances the selected ask to the next triage status.
func (m Model) cycleStatusCmd() tea.Cmd {
	ask, ok := m.store.SelectedAsk()
	if !ok {
		return nil
	}
	next := nextStatus(ask.Status)
	s := m.store
	return func() tea.Msg {
		_, err := s.UpdateAskStatus(context.Background(), ask.ID, next)
		return mutationDoneMsg{status: "status: " + string(next), err: err}
	}
}

func nextStatus(s feedback.AskStatus) feedback.AskStatus {
	switch s {
	case feedback.AskStatusOpen:
		return feedback.AskStatusPlanned
	case feedback.AskStatusPlanned:
		return feedback.AskStatusShipped
	case feedback.AskStatusShipped:
		return feedback.AskStatusDeclined
	default:
		return feedback.AskStatusOpen
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mentionsView.Width = m.columnWidth()
		m.mentionsView.Height = m.boardHeight()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case initDoneMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("initialize failed")
			m.status = "initialize failed: " + msg.err.Error()
		}
		return m, nil

	case fetchDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("fetch failed")
		}
		if msg.kind == keynav.EffectFetchMentions || msg.kind == keynav.EffectFetchMoreMentions {
			m.mentionsView.SetContent(m.renderMentionsContent())
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, nil

	case yankDoneMsg:
		if msg.err != nil {
			m.status = "yank failed: " + msg.err.Error()
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if m.store.SearchOpen() {
		return m.updateSearch(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.refreshCmd()
	case "n":
		return m.openCreateDialog()
	case "e":
		return m.openEditDialog()
	case "M":
		return m.openMergeDialog()
	case "d":
		return m.openDeleteConfirm()
	case "s":
		if m.store.ActiveColumn() == store.ColumnAsks {
			return m, m.cycleStatusCmd()
		}
	case "o", " ":
		if m.store.ActiveColumn() == store.ColumnAsks {
			if ask, ok := m.store.SelectedAsk(); ok {
				m.store.ExpandAsk(ask.ID)
			}
			return m, nil
		}
	case "y":
		if m.store.DetailOpen() {
			return m, m.yankCmd()
		}
		if m.store.ActiveColumn() == store.ColumnMentions {
			return m, m.yankMentionsCmd()
		}
	}

	res := m.nav.Handle(key, keynav.Context{DialogOpen: m.form != nil})
	if res.Handled {
		if m.store.SearchOpen() {
			m.searchInput.SetValue("")
			m.searchInput.Focus()
		}
		return m.runEffects(res.Effects)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.store.CloseSearch()
		m.searchInput.Blur()
		return m, nil
	case "enter":
		// Jump to the best match and leave search mode.
		if results := m.store.SearchResults(); len(results) > 0 {
			m.selectByID(results[0].ID)
		}
		m.store.CloseSearch()
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.store.SetSearchQuery(m.searchInput.Value())
	return m, cmd
}

// selectByID applies a search result to the active column's selection.
func (m Model) selectByID(id string) {
	switch m.store.ActiveColumn() {
	case store.ColumnThemes:
		m.store.SelectTheme(id)
	case store.ColumnSubThemes:
		m.store.SelectSubTheme(id)
	default:
		m.store.SelectAsk(id)
	}
}
