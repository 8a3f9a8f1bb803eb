package store

import "slices"

// Column identifies a hierarchy level in the board. The active column is
// a linear chain; navigation never skips levels.
type Column int

const (
	ColumnThemes Column = iota
	ColumnSubThemes
	ColumnAsks
	ColumnMentions
)

// String implements fmt.Stringer.
func (c Column) String() string {
	switch c {
	case ColumnThemes:
		return "themes"
	case ColumnSubThemes:
		return "subThemes"
	case ColumnAsks:
		return "customerAsks"
	case ColumnMentions:
		return "mentions"
	default:
		return "unknown"
	}
}

// Dialog identifies the currently open modal dialog, if any. Dialogs are
// mutually exclusive.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogThemeCreate
	DialogThemeEdit
	DialogSubThemeCreate
	DialogSubThemeEdit
	DialogSubThemeMerge
)

// NavEntry is one screen on the mobile navigation stack. It records enough
// context to render the header without re-querying the caches.
type NavEntry struct {
	View       Column
	Title      string
	ThemeID    string
	SubThemeID string
	AskID      string
}

// Selection is the cross-cutting selection state, one id per level.
type Selection struct {
	ThemeID       string
	SubThemeID    string
	AskID         string
	ExpandedAskID string
	TranscriptID  string
}

// selection is the internal mutable form of Selection.
type selection struct {
	themeID       string
	subThemeID    string
	askID         string
	expandedAskID string
	transcriptID  string
}

// uiState is the UI/navigation module: selection, active column, panel
// flags, search mode, and the mobile navigation stack. All access goes
// through the Store's mutex.
type uiState struct {
	sel          selection
	column       Column
	detailOpen   bool
	mentionsOpen bool
	dialog       Dialog
	searchOpen   bool
	searchQuery  string
	stack        []NavEntry
}

// newUIState returns the pristine UI state. The navigation stack is never
// empty; "themes" is its permanent floor.
func newUIState() uiState {
	return uiState{
		stack: []NavEntry{{View: ColumnThemes, Title: "Themes"}},
	}
}

// clearTheme cascade-clears the theme selection and everything below it.
func (u *uiState) clearTheme() {
	u.sel.themeID = ""
	u.clearSubTheme()
}

// clearSubTheme cascade-clears the sub-theme selection and everything
// below it, and closes the panels that depend on descendants.
func (u *uiState) clearSubTheme() {
	u.sel.subThemeID = ""
	u.clearAsk()
}

// clearAsk clears the ask selection and force-closes dependent panels.
// Closing a panel never clears a selection; the reverse always does.
func (u *uiState) clearAsk() {
	u.sel.askID = ""
	u.sel.expandedAskID = ""
	u.detailOpen = false
	u.mentionsOpen = false
}

// push grows the navigation stack on forward navigation.
func (u *uiState) push(entry NavEntry) {
	u.stack = append(u.stack, entry)
}

// pop shrinks the navigation stack. Popping the floor is a no-op.
func (u *uiState) pop() {
	if len(u.stack) > 1 {
		u.stack = u.stack[:len(u.stack)-1]
	}
}

// SelectionActions is the selection part of the action surface. Selecting
// a child never clears an ancestor; changing or clearing an ancestor
// cascade-clears every descendant selection and dependent panel.
type SelectionActions interface {
	SelectTheme(themeID string)
	SelectSubTheme(subThemeID string)
	SelectAsk(askID string)
	ExpandAsk(askID string)
	SelectTranscript(transcriptID string)
	ClearThemeSelection()
	ClearSubThemeSelection()
	ClearAskSelection()
}

// NavigationActions is the column/stack part of the action surface.
type NavigationActions interface {
	// AdvanceColumn moves keyboard focus one level deeper, if the next
	// level has content to show. Reports whether it advanced.
	AdvanceColumn() bool
	// RegressColumn clears the selection at the active level, regresses
	// focus one level, and pops the navigation stack.
	RegressColumn()
	// FocusPrevColumn and FocusNextColumn move focus across columns
	// without changing any selection. Both clamp at the chain's ends;
	// FocusNextColumn requires a selection at the current level.
	FocusPrevColumn()
	FocusNextColumn()
}

// PanelActions is the panel/dialog part of the action surface.
type PanelActions interface {
	CloseDetail()
	OpenDialog(d Dialog)
	CloseDialog()
}

// SelectTheme selects a theme. Changing the selected theme cascade-clears
// all descendant selections and closes the mentions panel.
func (s *Store) SelectTheme(themeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.sel.themeID == themeID {
		return
	}
	s.ui.clearTheme()
	s.ui.sel.themeID = themeID
}

// SelectSubTheme selects a sub-theme under the selected theme.
func (s *Store) SelectSubTheme(subThemeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.sel.subThemeID == subThemeID {
		return
	}
	s.ui.clearSubTheme()
	s.ui.sel.subThemeID = subThemeID
}

// SelectAsk selects an ask under the selected sub-theme.
func (s *Store) SelectAsk(askID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.sel.askID == askID {
		return
	}
	s.ui.clearAsk()
	s.ui.sel.askID = askID
}

// ExpandAsk selects an ask and opens its detail drawer.
func (s *Store) ExpandAsk(askID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.sel.askID != askID {
		s.ui.clearAsk()
		s.ui.sel.askID = askID
	}
	s.ui.sel.expandedAskID = askID
	s.ui.detailOpen = true
}

// SelectTranscript selects a transcript classification. The transcript
// collection sits beside the Theme tree, so no cascade applies.
func (s *Store) SelectTranscript(transcriptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.sel.transcriptID = transcriptID
}

// ClearThemeSelection clears the theme selection and all descendants.
func (s *Store) ClearThemeSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.clearTheme()
}

// ClearSubThemeSelection clears the sub-theme selection and all descendants.
func (s *Store) ClearSubThemeSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.clearSubTheme()
}

// ClearAskSelection clears the ask selection and dependent panels.
func (s *Store) ClearAskSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.clearAsk()
}

// AdvanceColumn implements NavigationActions. Advancing from the asks
// column opens the mentions panel, mirroring a click on the active ask.
func (s *Store) AdvanceColumn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.ui.column {
	case ColumnThemes:
		if s.ui.sel.themeID == "" {
			return false
		}
		s.ui.column = ColumnSubThemes
		s.ui.push(NavEntry{
			View:    ColumnSubThemes,
			Title:   s.themeTitle(s.ui.sel.themeID),
			ThemeID: s.ui.sel.themeID,
		})
	case ColumnSubThemes:
		if s.ui.sel.subThemeID == "" {
			return false
		}
		s.ui.column = ColumnAsks
		s.ui.push(NavEntry{
			View:       ColumnAsks,
			Title:      s.subThemeTitle(s.ui.sel.subThemeID),
			ThemeID:    s.ui.sel.themeID,
			SubThemeID: s.ui.sel.subThemeID,
		})
	case ColumnAsks:
		if s.ui.sel.askID == "" {
			return false
		}
		s.ui.column = ColumnMentions
		s.ui.mentionsOpen = true
		s.ui.push(NavEntry{
			View:       ColumnMentions,
			Title:      s.askTitle(s.ui.sel.askID),
			ThemeID:    s.ui.sel.themeID,
			SubThemeID: s.ui.sel.subThemeID,
			AskID:      s.ui.sel.askID,
		})
	case ColumnMentions:
		return false
	}
	return true
}

// RegressColumn implements NavigationActions. At the themes floor it
// clears the theme selection and stays put.
func (s *Store) RegressColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.ui.column {
	case ColumnMentions:
		s.ui.mentionsOpen = false
		s.ui.column = ColumnAsks
		s.ui.pop()
	case ColumnAsks:
		s.ui.clearAsk()
		s.ui.column = ColumnSubThemes
		s.ui.pop()
	case ColumnSubThemes:
		s.ui.clearSubTheme()
		s.ui.column = ColumnThemes
		s.ui.pop()
	case ColumnThemes:
		s.ui.clearTheme()
	}
}

// FocusPrevColumn implements NavigationActions.
func (s *Store) FocusPrevColumn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.column > ColumnThemes {
		s.ui.column--
		s.ui.pop()
	}
}

// FocusNextColumn implements NavigationActions. Focus only moves forward
// when the current level has a selection, so the next column has content.
func (s *Store) FocusNextColumn() {
	s.mu.Lock()
	hasSelection := false
	switch s.ui.column {
	case ColumnThemes:
		hasSelection = s.ui.sel.themeID != ""
	case ColumnSubThemes:
		hasSelection = s.ui.sel.subThemeID != ""
	case ColumnAsks:
		hasSelection = s.ui.sel.askID != ""
	}
	s.mu.Unlock()

	if hasSelection {
		s.AdvanceColumn()
	}
}

// CloseDetail closes the detail drawer. The underlying selection stays so
// re-opening shows the same item.
func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.detailOpen = false
}

// OpenDialog opens a modal dialog, replacing any open one.
func (s *Store) OpenDialog(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.dialog = d
}

// CloseDialog dismisses the open dialog.
func (s *Store) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.dialog = DialogNone
}

// themeTitle resolves a theme name for navigation headers. Callers hold
// s.mu; collections have their own locks so the nested read is safe.
func (s *Store) themeTitle(themeID string) string {
	for _, t := range s.themes.Visible() {
		if t.ID == themeID {
			return t.Name
		}
	}
	return "Theme"
}

func (s *Store) subThemeTitle(subThemeID string) string {
	for _, st := range s.subThemes.Visible() {
		if st.ID == subThemeID {
			return st.Name
		}
	}
	return "Sub-theme"
}

func (s *Store) askTitle(askID string) string {
	for _, a := range s.asks.Visible() {
		if a.ID == askID {
			return a.Title
		}
	}
	return "Ask"
}

// NavStack returns a copy of the mobile navigation stack, floor first.
func (s *Store) NavStack() []NavEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ui.stack)
}

// CurrentView returns the top of the navigation stack.
func (s *Store) CurrentView() NavEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.stack[len(s.ui.stack)-1]
}
