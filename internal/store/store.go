// Package store is the client-side exploration state for the triage
// hierarchy. One Store instance composes a cache module per hierarchy
// level with the cross-cutting selection/navigation state, and exposes
// pure selectors plus a grouped action surface to the view layer. The
// view layer never mutates state directly.
package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/triage/internal/api"
	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/feedback"
)

// Lifecycle phases. Initialize moves idle → initializing → ready; a failed
// initialization drops back to idle so the caller may retry.
const (
	phaseIdle int32 = iota
	phaseInitializing
	phaseReady
)

// LifecycleActions is the process lifecycle of the store.
type LifecycleActions interface {
	// Initialize fetches the root collection and warms caches. Idempotent:
	// concurrent and repeated calls perform at most one root fetch.
	Initialize(ctx context.Context) error
	// Reset synchronously returns the store to its pristine shape. Used on
	// workspace switch and logout.
	Reset()
}

// Actions is the full action surface exposed to the view layer.
type Actions interface {
	LifecycleActions
	ThemeActions
	SubThemeActions
	AskActions
	MentionActions
	TranscriptActions
	SelectionActions
	NavigationActions
	PanelActions
	SearchActions
}

// Options tunes a Store.
type Options struct {
	// MaxAge is the default cache freshness bound applied to fetches that
	// do not specify one. Zero disables staleness.
	MaxAge time.Duration
	// IgnoreSources lists doublestar globs matched against a mention's
	// "source/source_ref" path; matches never enter the mention cache.
	IgnoreSources []string
}

// Store is the concrete state container. Construct one per workspace view
// with New; there is deliberately no package-level instance so tests (and
// future multi-window surfaces) can hold isolated stores.
type Store struct {
	client  api.Client
	session auth.SessionProvider
	log     zerolog.Logger
	opts    Options

	phase atomic.Int32

	themes      *collection[feedback.Theme]
	subThemes   *collection[feedback.SubTheme]
	asks        *collection[feedback.CustomerAsk]
	mentions    *collection[feedback.Mention]
	transcripts *collection[feedback.TranscriptClassification]

	mu              sync.Mutex // guards ui and transcriptCount
	ui              uiState
	transcriptCount int

	background sync.WaitGroup
}

var _ Actions = (*Store)(nil)

// New creates a Store bound to the given backend client and session.
func New(client api.Client, session auth.SessionProvider, log zerolog.Logger, opts Options) *Store {
	s := &Store{
		client:  client,
		session: session,
		log:     log.With().Str("component", "store").Logger(),
		opts:    opts,
	}

	s.themes = newCollection("themes", func(ctx context.Context, parentID, _ string) (feedback.Page[feedback.Theme], error) {
		items, err := client.ListThemes(ctx, parentID)
		return feedback.Page[feedback.Theme]{Items: items}, err
	}, s.log)

	s.subThemes = newCollection("sub_themes", func(ctx context.Context, parentID, _ string) (feedback.Page[feedback.SubTheme], error) {
		items, err := client.ListSubThemes(ctx, parentID)
		return feedback.Page[feedback.SubTheme]{Items: items}, err
	}, s.log)

	s.asks = newCollection("asks", func(ctx context.Context, parentID, cursor string) (feedback.Page[feedback.CustomerAsk], error) {
		return client.ListCustomerAsks(ctx, parentID, cursor)
	}, s.log)

	s.mentions = newCollection("mentions", func(ctx context.Context, parentID, cursor string) (feedback.Page[feedback.Mention], error) {
		page, err := client.ListMentions(ctx, parentID, cursor)
		if err != nil {
			return page, err
		}
		page.Items = s.filterMentions(page.Items)
		return page, nil
	}, s.log)

	s.transcripts = newCollection("transcripts", func(ctx context.Context, parentID, _ string) (feedback.Page[feedback.TranscriptClassification], error) {
		items, err := client.ListTranscriptClassifications(ctx, parentID)
		return feedback.Page[feedback.TranscriptClassification]{Items: items}, err
	}, s.log)

	s.ui = newUIState()
	return s
}

// filterMentions drops mentions whose source path matches an ignore glob.
// Filtering happens at cache-write time so pagination accumulation and the
// visible list always agree.
func (s *Store) filterMentions(items []feedback.Mention) []feedback.Mention {
	if len(s.opts.IgnoreSources) == 0 {
		return items
	}
	kept := items[:0:0]
	for _, m := range items {
		path := string(m.Source) + "/" + m.SourceRef
		ignored := false
		for _, pattern := range s.opts.IgnoreSources {
			if ok, _ := doublestar.Match(pattern, path); ok {
				ignored = true
				break
			}
		}
		if !ignored {
			kept = append(kept, m)
		}
	}
	return kept
}

// Initialize implements LifecycleActions. The phase flag is claimed with a
// compare-and-swap before any network work starts, so two near-simultaneous
// callers cannot both pass the "not yet initializing" check.
func (s *Store) Initialize(ctx context.Context) error {
	if !s.phase.CompareAndSwap(phaseIdle, phaseInitializing) {
		return nil
	}

	workspace := s.session.WorkspaceID()
	if err := s.themes.Fetch(ctx, workspace, s.fetchOpts(FetchOptions{})); err != nil {
		s.phase.Store(phaseIdle)
		return fmt.Errorf("initialize: %w", err)
	}
	s.phase.Store(phaseReady)

	// Background work is an optimization, never correctness: failures are
	// logged and swallowed, and the tasks outlive the caller's context.
	bgCtx := context.WithoutCancel(ctx)

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		count, err := s.client.CountTranscriptClassifications(bgCtx, workspace)
		if err != nil {
			s.log.Warn().Err(err).Msg("background transcript count failed")
			return
		}
		s.mu.Lock()
		s.transcriptCount = count
		s.mu.Unlock()
	}()

	// An empty theme list is a valid state; nothing to warm then, and no
	// auto-reset or re-initialization is attempted.
	if themes := s.themes.Visible(); len(themes) > 0 {
		first := themes[0].ID
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			if err := s.subThemes.Prefetch(bgCtx, first); err != nil {
				s.log.Warn().Err(err).Str("theme", first).Msg("sub-theme prefetch failed")
			}
		}()
	}

	return nil
}

// Reset implements LifecycleActions.
func (s *Store) Reset() {
	s.phase.Store(phaseIdle)
	s.themes.Reset()
	s.subThemes.Reset()
	s.asks.Reset()
	s.mentions.Reset()
	s.transcripts.Reset()

	s.mu.Lock()
	s.ui = newUIState()
	s.transcriptCount = 0
	s.mu.Unlock()
}

// fetchOpts applies the store-wide MaxAge default to zero-valued options.
func (s *Store) fetchOpts(opts FetchOptions) FetchOptions {
	if opts.MaxAge == 0 {
		opts.MaxAge = s.opts.MaxAge
	}
	return opts
}

// waitBackground blocks until fire-and-forget tasks settle. Test hook.
func (s *Store) waitBackground() {
	s.background.Wait()
}
