// Package keynav translates key presses into store actions and fetch
// effects. It owns no rendering: the TUI feeds it keys and executes the
// effects it returns, which keeps every binding testable without a
// terminal.
package keynav

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/triage/internal/store"
)

// Context tells the controller what currently owns the keyboard.
type Context struct {
	// DialogOpen suppresses all navigation keys; the dialog handles input.
	DialogOpen bool
	// TextInputFocused suppresses all navigation keys; a text field (other
	// than the search bar) handles input.
	TextInputFocused bool
}

// EffectKind identifies a side effect the view layer must run after a key
// was applied. Fetches are effects rather than direct calls so the TUI can
// run them as commands off the update loop.
type EffectKind int

const (
	EffectFetchSubThemes EffectKind = iota
	EffectFetchAsks
	EffectFetchMentions
	EffectPrefetchSubThemes
	EffectPrefetchAsks
	EffectFetchMoreAsks
	EffectFetchMoreMentions
	// EffectScrollMentions asks the view to scroll the mentions panel one
	// step; the controller has no viewport to move itself.
	EffectScrollMentions
)

// Effect is one side effect with its target parent id.
type Effect struct {
	Kind     EffectKind
	TargetID string
	// Delta is the scroll direction for EffectScrollMentions: -1 up, 1 down.
	Delta int
}

// Result reports whether a key was consumed and which effects to run.
type Result struct {
	Handled bool
	Effects []Effect
}

// Controller maps keys onto a store's action surface.
type Controller struct {
	store *store.Store
	log   zerolog.Logger
}

// New creates a Controller bound to a store.
func New(s *store.Store, log zerolog.Logger) *Controller {
	return &Controller{
		store: s,
		log:   log.With().Str("component", "keynav").Logger(),
	}
}

// Handle applies one key press. Keys arrive in Bubble Tea's string form
// ("j", "up", "ctrl+k", "enter", "esc").
func (c *Controller) Handle(key string, kctx Context) Result {
	if kctx.DialogOpen || kctx.TextInputFocused {
		return Result{}
	}

	// While the search bar is focused it owns every key except Escape, so
	// queries may contain j, k, and the rest.
	if c.store.SearchOpen() {
		if key == "esc" {
			c.store.CloseSearch()
			return Result{Handled: true}
		}
		return Result{}
	}

	switch key {
	case "j", "down":
		return c.moveSelection(1)
	case "k", "up":
		return c.moveSelection(-1)
	case "h", "left":
		c.store.FocusPrevColumn()
		return Result{Handled: true}
	case "l", "right":
		c.store.FocusNextColumn()
		return c.enterEffects()
	case "enter":
		return c.enter()
	case "esc":
		return c.escape()
	case "/", "ctrl+k":
		c.store.OpenSearch()
		return Result{Handled: true}
	}
	return Result{}
}

// moveSelection moves the active column's selection by delta, clamped to
// the list. No current selection lands on index 0 regardless of direction.
func (c *Controller) moveSelection(delta int) Result {
	s := c.store
	switch s.ActiveColumn() {
	case store.ColumnThemes:
		themes := s.Themes()
		idx, ok := indexOf(len(themes), s.Selection().ThemeID, func(i int) string { return themes[i].ID })
		next := step(idx, ok, delta, len(themes))
		if next < 0 {
			return Result{Handled: true}
		}
		s.SelectTheme(themes[next].ID)
		return Result{Handled: true, Effects: []Effect{
			{Kind: EffectPrefetchSubThemes, TargetID: themes[next].ID},
		}}

	case store.ColumnSubThemes:
		subThemes := s.SubThemes()
		idx, ok := indexOf(len(subThemes), s.Selection().SubThemeID, func(i int) string { return subThemes[i].ID })
		next := step(idx, ok, delta, len(subThemes))
		if next < 0 {
			return Result{Handled: true}
		}
		s.SelectSubTheme(subThemes[next].ID)
		return Result{Handled: true, Effects: []Effect{
			{Kind: EffectPrefetchAsks, TargetID: subThemes[next].ID},
		}}

	case store.ColumnAsks:
		asks := s.Asks()
		idx, ok := indexOf(len(asks), s.Selection().AskID, func(i int) string { return asks[i].ID })
		next := step(idx, ok, delta, len(asks))
		if next < 0 {
			// Clamped at the bottom: pull the next page if one exists.
			subThemeID := s.Selection().SubThemeID
			if delta > 0 && subThemeID != "" && s.HasMoreAsks(subThemeID) {
				return Result{Handled: true, Effects: []Effect{
					{Kind: EffectFetchMoreAsks, TargetID: subThemeID},
				}}
			}
			return Result{Handled: true}
		}
		s.SelectAsk(asks[next].ID)
		return Result{Handled: true}

	case store.ColumnMentions:
		// Mentions have no selection; movement scrolls the panel, and
		// scrolling past the bottom pulls the next page.
		askID := s.Selection().AskID
		effects := []Effect{{Kind: EffectScrollMentions, Delta: delta}}
		if delta > 0 && askID != "" && s.HasMoreMentions(askID) {
			effects = append(effects, Effect{Kind: EffectFetchMoreMentions, TargetID: askID})
		}
		return Result{Handled: true, Effects: effects}
	}
	return Result{}
}

// enter drills into the selected item, selecting the first list entry when
// nothing is selected yet.
func (c *Controller) enter() Result {
	s := c.store
	if c.currentSelectionID() == "" {
		if !c.selectFirst() {
			return Result{Handled: true}
		}
	}
	if !s.AdvanceColumn() {
		return Result{Handled: true}
	}
	return c.enterEffects()
}

// enterEffects returns the fetch effect for the column focus just moved
// into. Fetches are cache-served when warm, so emitting one on every
// advance is cheap.
func (c *Controller) enterEffects() Result {
	s := c.store
	sel := s.Selection()
	switch s.ActiveColumn() {
	case store.ColumnSubThemes:
		if sel.ThemeID == "" {
			return Result{Handled: true}
		}
		return Result{Handled: true, Effects: []Effect{
			{Kind: EffectFetchSubThemes, TargetID: sel.ThemeID},
		}}
	case store.ColumnAsks:
		if sel.SubThemeID == "" {
			return Result{Handled: true}
		}
		return Result{Handled: true, Effects: []Effect{
			{Kind: EffectFetchAsks, TargetID: sel.SubThemeID},
		}}
	case store.ColumnMentions:
		if sel.AskID == "" {
			return Result{Handled: true}
		}
		return Result{Handled: true, Effects: []Effect{
			{Kind: EffectFetchMentions, TargetID: sel.AskID},
		}}
	}
	return Result{Handled: true}
}

// escape unwinds one layer: detail drawer first, then column regression.
// Search mode is unwound earlier in Handle, before keys reach here. At the
// themes floor regression only clears the selection.
func (c *Controller) escape() Result {
	s := c.store
	if s.DetailOpen() {
		s.CloseDetail()
		return Result{Handled: true}
	}
	s.RegressColumn()
	return Result{Handled: true}
}

// currentSelectionID returns the selection id at the active column.
func (c *Controller) currentSelectionID() string {
	sel := c.store.Selection()
	switch c.store.ActiveColumn() {
	case store.ColumnThemes:
		return sel.ThemeID
	case store.ColumnSubThemes:
		return sel.SubThemeID
	case store.ColumnAsks:
		return sel.AskID
	default:
		return sel.AskID
	}
}

// selectFirst selects index 0 of the active column's list. Reports false
// when the list is empty.
func (c *Controller) selectFirst() bool {
	s := c.store
	switch s.ActiveColumn() {
	case store.ColumnThemes:
		if themes := s.Themes(); len(themes) > 0 {
			s.SelectTheme(themes[0].ID)
			return true
		}
	case store.ColumnSubThemes:
		if subThemes := s.SubThemes(); len(subThemes) > 0 {
			s.SelectSubTheme(subThemes[0].ID)
			return true
		}
	case store.ColumnAsks:
		if asks := s.Asks(); len(asks) > 0 {
			s.SelectAsk(asks[0].ID)
			return true
		}
	}
	return false
}

// indexOf finds id's index via the accessor. ok is false when id is empty
// or absent from the list.
func indexOf(n int, id string, idAt func(int) string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i := range n {
		if idAt(i) == id {
			return i, true
		}
	}
	return 0, false
}

// step computes the next index for a delta move. With no current selection
// any move lands on index 0. Returns -1 when the move is clamped away or
// the list is empty.
func step(idx int, hasSelection bool, delta, n int) int {
	if n == 0 {
		return -1
	}
	if !hasSelection {
		return 0
	}
	next := idx + delta
	if next < 0 || next >= n {
		return -1
	}
	return next
}
