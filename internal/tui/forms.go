package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/triage/internal/core/feedback"
	"github.com/colonyops/triage/internal/store"
)

// formDraft carries the in-progress values of the open dialog. It lives
// behind a pointer so huh's value bindings survive model copies.
type formDraft struct {
	name        string
	description string
	color       string

	// targetID is the entity being edited, merged from, or deleted.
	targetID string
	// mergeTargetID is the merge destination sub-theme.
	mergeTargetID string

	confirmed  bool
	deleteKind store.Column
}

// openCreateDialog opens the create form for the active column. Creating
// a sub-theme needs a selected parent theme.
func (m Model) openCreateDialog() (tea.Model, tea.Cmd) {
	switch m.store.ActiveColumn() {
	case store.ColumnThemes:
		m.draft = &formDraft{}
		m.formDialog = store.DialogThemeCreate
		m.form = newThemeForm("New theme", m.draft)
	case store.ColumnSubThemes:
		if m.store.Selection().ThemeID == "" {
			return m, nil
		}
		m.draft = &formDraft{}
		m.formDialog = store.DialogSubThemeCreate
		m.form = newSubThemeForm("New sub-theme", m.draft)
	default:
		return m, nil
	}
	m.store.OpenDialog(m.formDialog)
	return m, m.form.Init()
}

// openEditDialog opens the edit form pre-filled from the selected entity.
// Locked entities are read-only.
func (m Model) openEditDialog() (tea.Model, tea.Cmd) {
	switch m.store.ActiveColumn() {
	case store.ColumnThemes:
		theme, ok := m.store.SelectedTheme()
		if !ok || theme.Locked {
			return m, nil
		}
		m.draft = &formDraft{
			name:        theme.Name,
			description: theme.Description,
			color:       theme.Color,
			targetID:    theme.ID,
		}
		m.formDialog = store.DialogThemeEdit
		m.form = newThemeForm("Edit theme", m.draft)
	case store.ColumnSubThemes:
		subTheme, ok := m.store.SelectedSubTheme()
		if !ok || subTheme.Locked {
			return m, nil
		}
		m.draft = &formDraft{
			name:        subTheme.Name,
			description: subTheme.Description,
			targetID:    subTheme.ID,
		}
		m.formDialog = store.DialogSubThemeEdit
		m.form = newSubThemeForm("Edit sub-theme", m.draft)
	default:
		return m, nil
	}
	m.store.OpenDialog(m.formDialog)
	return m, m.form.Init()
}

// openMergeDialog opens the sub-theme merge picker. The selected sub-theme
// is the source; the form picks the target among its siblings.
func (m Model) openMergeDialog() (tea.Model, tea.Cmd) {
	if m.store.ActiveColumn() != store.ColumnSubThemes {
		return m, nil
	}
	source, ok := m.store.SelectedSubTheme()
	if !ok {
		return m, nil
	}

	options := make([]huh.Option[string], 0)
	for _, st := range m.store.SubThemes() {
		if st.ID == source.ID {
			continue
		}
		options = append(options, huh.NewOption(st.Name, st.ID))
	}
	if len(options) == 0 {
		return m, nil
	}

	m.draft = &formDraft{targetID: source.ID}
	m.formDialog = store.DialogSubThemeMerge
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Merge %q into", source.Name)).
				Options(options...).
				Value(&m.draft.mergeTargetID),
			huh.NewConfirm().
				Title("Feedback moves to the target; this cannot be undone.").
				Value(&m.draft.confirmed),
		),
	)
	m.store.OpenDialog(m.formDialog)
	return m, m.form.Init()
}

// openDeleteConfirm opens a delete confirmation for the selected theme or
// sub-theme.
func (m Model) openDeleteConfirm() (tea.Model, tea.Cmd) {
	var title, id string
	col := m.store.ActiveColumn()
	switch col {
	case store.ColumnThemes:
		theme, ok := m.store.SelectedTheme()
		if !ok || theme.Locked {
			return m, nil
		}
		title = fmt.Sprintf("Delete theme %q and everything under it?", theme.Name)
		id = theme.ID
	case store.ColumnSubThemes:
		subTheme, ok := m.store.SelectedSubTheme()
		if !ok || subTheme.Locked {
			return m, nil
		}
		title = fmt.Sprintf("Delete sub-theme %q?", subTheme.Name)
		id = subTheme.ID
	default:
		return m, nil
	}

	m.draft = &formDraft{targetID: id, deleteKind: col}
	m.formDialog = store.DialogNone
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(&m.draft.confirmed),
		),
	)
	return m, m.form.Init()
}

func newThemeForm(title string, draft *formDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name").
				Value(&draft.name).
				Validate(requireName),
			huh.NewText().
				Description("Description").
				Lines(3).
				Value(&draft.description),
			huh.NewInput().
				Description("Color (hex, optional)").
				Value(&draft.color),
		),
	)
}

func newSubThemeForm(title string, draft *formDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name").
				Value(&draft.name).
				Validate(requireName),
			huh.NewText().
				Description("Description").
				Lines(3).
				Value(&draft.description),
		),
	)
}

func requireName(s string) error {
	if s == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// updateForm forwards keys to the open form and fires the mutation when
// the form completes. Mutation failures land in the status bar; the store
// is never left half-updated because mutations only splice on success.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		mutation := m.mutationCmd()
		m.closeForm()
		return m, mutation
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.formDialog = store.DialogNone
	m.store.CloseDialog()
}

// mutationCmd builds the store call for the completed form.
func (m Model) mutationCmd() tea.Cmd {
	s := m.store
	dialog := m.formDialog
	draft := m.draft

	return func() tea.Msg {
		ctx := context.Background()
		switch dialog {
		case store.DialogThemeCreate:
			theme, err := s.CreateTheme(ctx, feedback.ThemeDraft{
				Name:        draft.name,
				Description: draft.description,
				Color:       draft.color,
			})
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			s.SelectTheme(theme.ID)
			return mutationDoneMsg{status: "created " + theme.Name}

		case store.DialogThemeEdit:
			theme, err := s.UpdateTheme(ctx, draft.targetID, feedback.ThemeDraft{
				Name:        draft.name,
				Description: draft.description,
				Color:       draft.color,
			})
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{status: "updated " + theme.Name}

		case store.DialogSubThemeCreate:
			subTheme, err := s.CreateSubTheme(ctx, s.Selection().ThemeID, feedback.SubThemeDraft{
				Name:        draft.name,
				Description: draft.description,
			})
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			s.SelectSubTheme(subTheme.ID)
			return mutationDoneMsg{status: "created " + subTheme.Name}

		case store.DialogSubThemeEdit:
			subTheme, err := s.UpdateSubTheme(ctx, draft.targetID, feedback.SubThemeDraft{
				Name:        draft.name,
				Description: draft.description,
			})
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{status: "updated " + subTheme.Name}

		case store.DialogSubThemeMerge:
			if !draft.confirmed || draft.mergeTargetID == "" {
				return mutationDoneMsg{status: "merge cancelled"}
			}
			result, err := s.MergeSubThemes(ctx, draft.targetID, draft.mergeTargetID)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{status: fmt.Sprintf("moved %d items to %s", result.Moved, result.Target.Name)}

		default:
			// Delete confirmation.
			if !draft.confirmed {
				return mutationDoneMsg{status: "delete cancelled"}
			}
			var err error
			if draft.deleteKind == store.ColumnThemes {
				err = s.DeleteTheme(ctx, draft.targetID)
			} else {
				err = s.DeleteSubTheme(ctx, draft.targetID)
			}
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{status: "deleted"}
		}
	}
}
