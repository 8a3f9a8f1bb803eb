package store

import "github.com/colonyops/triage/internal/core/feedback"

// Selectors are pure projections over current state: they look up, copy,
// and derive, but never trigger fetches.

// Initialized reports whether Initialize has completed successfully.
func (s *Store) Initialized() bool {
	return s.phase.Load() == phaseReady
}

// Initializing reports whether an Initialize call is in flight.
func (s *Store) Initializing() bool {
	return s.phase.Load() == phaseInitializing
}

// Themes returns the visible theme list.
func (s *Store) Themes() []feedback.Theme { return s.themes.Visible() }

// SubThemes returns the visible sub-theme list.
func (s *Store) SubThemes() []feedback.SubTheme { return s.subThemes.Visible() }

// Asks returns the visible ask list.
func (s *Store) Asks() []feedback.CustomerAsk { return s.asks.Visible() }

// Mentions returns the visible mention list.
func (s *Store) Mentions() []feedback.Mention { return s.mentions.Visible() }

// Transcripts returns the visible transcript classification list.
func (s *Store) Transcripts() []feedback.TranscriptClassification {
	return s.transcripts.Visible()
}

// TranscriptCount returns the workspace-wide classification count fetched
// in the background during initialization.
func (s *Store) TranscriptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcriptCount
}

// Selection returns a snapshot of the per-level selection ids.
func (s *Store) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Selection{
		ThemeID:       s.ui.sel.themeID,
		SubThemeID:    s.ui.sel.subThemeID,
		AskID:         s.ui.sel.askID,
		ExpandedAskID: s.ui.sel.expandedAskID,
		TranscriptID:  s.ui.sel.transcriptID,
	}
}

// SelectedTheme resolves the selected theme id against the visible list.
// A selection whose entity vanished resolves to false, never to a stale
// record.
func (s *Store) SelectedTheme() (feedback.Theme, bool) {
	id := s.Selection().ThemeID
	if id == "" {
		return feedback.Theme{}, false
	}
	for _, t := range s.themes.Visible() {
		if t.ID == id {
			return t, true
		}
	}
	return feedback.Theme{}, false
}

// SelectedSubTheme resolves the selected sub-theme against the visible list.
func (s *Store) SelectedSubTheme() (feedback.SubTheme, bool) {
	id := s.Selection().SubThemeID
	if id == "" {
		return feedback.SubTheme{}, false
	}
	for _, st := range s.subThemes.Visible() {
		if st.ID == id {
			return st, true
		}
	}
	return feedback.SubTheme{}, false
}

// SelectedAsk resolves the selected ask against the visible list.
func (s *Store) SelectedAsk() (feedback.CustomerAsk, bool) {
	id := s.Selection().AskID
	if id == "" {
		return feedback.CustomerAsk{}, false
	}
	for _, a := range s.asks.Visible() {
		if a.ID == id {
			return a, true
		}
	}
	return feedback.CustomerAsk{}, false
}

// ExpandedAsk resolves the ask shown in the detail drawer.
func (s *Store) ExpandedAsk() (feedback.CustomerAsk, bool) {
	id := s.Selection().ExpandedAskID
	if id == "" {
		return feedback.CustomerAsk{}, false
	}
	for _, a := range s.asks.Visible() {
		if a.ID == id {
			return a, true
		}
	}
	return feedback.CustomerAsk{}, false
}

// ActiveColumn returns the hierarchy level holding keyboard focus.
func (s *Store) ActiveColumn() Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.column
}

// DetailOpen reports whether the ask detail drawer is open.
func (s *Store) DetailOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.detailOpen
}

// MentionsOpen reports whether the mentions panel is open.
func (s *Store) MentionsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.mentionsOpen
}

// ActiveDialog returns the open dialog, or DialogNone.
func (s *Store) ActiveDialog() Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.dialog
}

// ThemesLoading reports whether the theme list is being fetched. The
// equivalents below cover the other levels.
func (s *Store) ThemesLoading() bool    { return s.themes.Loading() }
func (s *Store) SubThemesLoading() bool { return s.subThemes.Loading() }
func (s *Store) AsksLoading() bool      { return s.asks.Loading() }
func (s *Store) MentionsLoading() bool  { return s.mentions.Loading() }

// ThemesError returns the level-scoped fetch error for themes, if any.
// Stale data stays visible alongside the error.
func (s *Store) ThemesError() error    { return s.themes.Err() }
func (s *Store) SubThemesError() error { return s.subThemes.Err() }
func (s *Store) AsksError() error      { return s.asks.Err() }
func (s *Store) MentionsError() error  { return s.mentions.Err() }

// DismissThemesError clears the themes fetch error banner. The equivalents
// below cover the other levels.
func (s *Store) DismissThemesError()    { s.themes.ClearErr() }
func (s *Store) DismissSubThemesError() { s.subThemes.ClearErr() }
func (s *Store) DismissAsksError()      { s.asks.ClearErr() }
func (s *Store) DismissMentionsError()  { s.mentions.ClearErr() }

// HasMoreAsks reports whether more ask pages exist for the sub-theme.
func (s *Store) HasMoreAsks(subThemeID string) bool {
	return s.asks.HasMore(subThemeID)
}

// HasMoreMentions reports whether more mention pages exist for the ask.
func (s *Store) HasMoreMentions(askID string) bool {
	return s.mentions.HasMore(askID)
}
