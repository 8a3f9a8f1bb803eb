package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/colonyops/triage/internal/core/feedback"
)

// FetchOptions controls cache behavior for a fetch.
type FetchOptions struct {
	// ForceRefresh bypasses the cache and always goes to the network.
	ForceRefresh bool
	// MaxAge treats cache entries older than this as stale. Zero means a
	// cached entry is always fresh.
	MaxAge time.Duration
}

// cacheEntry is the cached page accumulation for one parent id.
type cacheEntry[T feedback.Entity] struct {
	items      []T
	nextCursor string
	hasMore    bool
	fetchedAt  time.Time
}

// pageFetcher loads one page of children for a parent. Levels without
// pagination return a single page with HasMore false and ignore the cursor.
type pageFetcher[T feedback.Entity] func(ctx context.Context, parentID, cursor string) (feedback.Page[T], error)

// collection is the cache module for one hierarchy level. It owns the
// currently visible list, a per-parent cache of previously fetched lists
// with their pagination cursors, and the in-flight bookkeeping that keeps
// concurrent fetches down to one network round trip per parent.
//
// The stale-response guard: the visible list is only written by a fetch
// whose requested parent still matches the collection's current parent at
// resolution time. Cache writes are keyed by the requested parent and are
// therefore always safe to apply.
type collection[T feedback.Entity] struct {
	name  string
	fetch pageFetcher[T]
	log   zerolog.Logger

	mu           sync.Mutex
	visible      []T
	parentID     string // parent whose children are (or are being made) visible
	loading      bool
	lastErr      error
	cache        map[string]cacheEntry[T]
	fetchingMore map[string]bool
	gen          uint64 // bumped on Reset; in-flight results from old generations are dropped

	flight singleflight.Group
}

func newCollection[T feedback.Entity](name string, fetch pageFetcher[T], log zerolog.Logger) *collection[T] {
	return &collection[T]{
		name:         name,
		fetch:        fetch,
		log:          log.With().Str("collection", name).Logger(),
		cache:        make(map[string]cacheEntry[T]),
		fetchingMore: make(map[string]bool),
	}
}

// fresh reports whether entry satisfies opts without a network call.
func fresh[T feedback.Entity](entry cacheEntry[T], opts FetchOptions) bool {
	if opts.ForceRefresh {
		return false
	}
	if opts.MaxAge > 0 && time.Since(entry.fetchedAt) > opts.MaxAge {
		return false
	}
	return true
}

// Fetch makes parentID's children visible, from cache when possible.
// Concurrent calls for the same parent share one network round trip.
func (c *collection[T]) Fetch(ctx context.Context, parentID string, opts FetchOptions) error {
	c.mu.Lock()
	// The requested parent becomes current immediately so a late response
	// for the previous parent cannot win the visible list.
	c.parentID = parentID
	gen := c.gen

	if entry, ok := c.cache[parentID]; ok && fresh(entry, opts) {
		c.visible = slices.Clone(entry.items)
		c.lastErr = nil
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	entry, err := c.load(ctx, parentID, gen)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if gen != c.gen {
		// Reset happened while in flight; drop the result entirely.
		return nil
	}
	if err != nil {
		if c.parentID == parentID {
			// Stale data beats empty state: keep the previous visible list.
			c.lastErr = err
		} else {
			c.log.Debug().Err(err).Str("parent", parentID).Msg("superseded fetch failed")
		}
		return err
	}
	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
		c.lastErr = nil
	}
	return nil
}

// Prefetch warms the cache for parentID without touching the visible list,
// loading state, or error state. A parent already in cache is a no-op.
func (c *collection[T]) Prefetch(ctx context.Context, parentID string) error {
	c.mu.Lock()
	_, cached := c.cache[parentID]
	gen := c.gen
	c.mu.Unlock()
	if cached {
		return nil
	}

	_, err := c.load(ctx, parentID, gen)
	return err
}

// load performs the de-duplicated network fetch of the first page for
// parentID and writes the cache entry. Callers decide what (if anything)
// to do with the visible list.
func (c *collection[T]) load(ctx context.Context, parentID string, gen uint64) (cacheEntry[T], error) {
	v, err, _ := c.flight.Do(parentID, func() (any, error) {
		page, err := c.fetch(ctx, parentID, "")
		if err != nil {
			return cacheEntry[T]{}, fmt.Errorf("fetch %s for %q: %w", c.name, parentID, err)
		}
		entry := cacheEntry[T]{
			items:      page.Items,
			nextCursor: page.NextCursor,
			hasMore:    page.HasMore,
			fetchedAt:  time.Now(),
		}

		c.mu.Lock()
		if gen == c.gen {
			c.cache[parentID] = entry
		}
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return cacheEntry[T]{}, err
	}
	return v.(cacheEntry[T]), nil
}

// FetchMore appends the next page for parentID using the stored cursor.
// It is a no-op when the entry has no further pages or a fetch-more for
// the same parent is already in flight. Appended items are de-duplicated
// by id.
func (c *collection[T]) FetchMore(ctx context.Context, parentID string) error {
	c.mu.Lock()
	entry, ok := c.cache[parentID]
	if !ok || !entry.hasMore || c.fetchingMore[parentID] {
		c.mu.Unlock()
		return nil
	}
	c.fetchingMore[parentID] = true
	cursor := entry.nextCursor
	gen := c.gen
	c.mu.Unlock()

	page, err := c.fetch(ctx, parentID, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fetchingMore, parentID)
	if gen != c.gen {
		return nil
	}
	if err != nil {
		err = fmt.Errorf("fetch more %s for %q: %w", c.name, parentID, err)
		if c.parentID == parentID {
			c.lastErr = err
		}
		return err
	}

	entry, ok = c.cache[parentID]
	if !ok {
		// Entry evicted while the page was in flight (parent deleted).
		return nil
	}

	seen := make(map[string]struct{}, len(entry.items))
	for _, item := range entry.items {
		seen[item.EntityID()] = struct{}{}
	}
	for _, item := range page.Items {
		if _, dup := seen[item.EntityID()]; dup {
			continue
		}
		entry.items = append(entry.items, item)
		seen[item.EntityID()] = struct{}{}
	}
	entry.nextCursor = page.NextCursor
	entry.hasMore = page.HasMore
	entry.fetchedAt = time.Now()
	c.cache[parentID] = entry

	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
		c.lastErr = nil
	}
	return nil
}

// insert splices a newly created item into the cache entry for parentID
// (newest first) and into the visible list when that parent is current.
func (c *collection[T]) insert(parentID string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[parentID]
	if !ok {
		entry = cacheEntry[T]{fetchedAt: time.Now()}
	}
	entry.items = append([]T{item}, entry.items...)
	c.cache[parentID] = entry

	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
	}
}

// replace swaps the item with the same id in parentID's entry (and the
// visible list). Unknown ids are ignored.
func (c *collection[T]) replace(parentID string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[parentID]
	if !ok {
		return
	}
	for i := range entry.items {
		if entry.items[i].EntityID() == item.EntityID() {
			entry.items[i] = item
			break
		}
	}
	c.cache[parentID] = entry

	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
	}
}

// remove deletes the item with the given id from parentID's entry and the
// visible list.
func (c *collection[T]) remove(parentID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[parentID]
	if !ok {
		return
	}
	entry.items = slices.DeleteFunc(slices.Clone(entry.items), func(item T) bool {
		return item.EntityID() == id
	})
	c.cache[parentID] = entry

	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
	}
}

// mutate applies fn to the cached item with the given id under parentID.
func (c *collection[T]) mutate(parentID, id string, fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[parentID]
	if !ok {
		return
	}
	items := slices.Clone(entry.items)
	for i := range items {
		if items[i].EntityID() == id {
			fn(&items[i])
			break
		}
	}
	entry.items = items
	c.cache[parentID] = entry

	if c.parentID == parentID {
		c.visible = slices.Clone(entry.items)
	}
}

// invalidate evicts the cache entry for parentID. The visible list is
// cleared when that parent is current.
func (c *collection[T]) invalidate(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, parentID)
	if c.parentID == parentID {
		c.visible = nil
	}
}

// cached returns the cached items for parentID without touching state.
func (c *collection[T]) cached(parentID string) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[parentID]
	if !ok {
		return nil, false
	}
	return slices.Clone(entry.items), true
}

// Visible returns a copy of the currently visible list.
func (c *collection[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.visible)
}

// Parent returns the parent id whose children are currently visible.
func (c *collection[T]) Parent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parentID
}

// Loading reports whether a visible-list fetch is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the level-scoped fetch error, if any.
func (c *collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearErr dismisses the level-scoped fetch error.
func (c *collection[T]) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// HasMore reports whether more pages exist for parentID.
func (c *collection[T]) HasMore(parentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[parentID]
	return ok && entry.hasMore
}

// Reset returns the collection to its pristine shape. In-flight results
// from before the reset are dropped when they land.
func (c *collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.visible = nil
	c.parentID = ""
	c.loading = false
	c.lastErr = nil
	c.cache = make(map[string]cacheEntry[T])
	c.fetchingMore = make(map[string]bool)
}
