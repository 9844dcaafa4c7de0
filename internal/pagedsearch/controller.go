// Package pagedsearch accumulates pages of a paginated query into one
// growing item list and folds debounced search input into fresh
// page-one executions. It owns no query state of its own: items,
// pagination and loading flags are derived from the underlying query
// snapshot on every observation, so the query result stays the single
// source of truth.
package pagedsearch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gqlpick/internal/domain"
	"gqlpick/internal/gql"
)

// DefaultDebounce is the search debounce window used when the caller
// does not set one.
const DefaultDebounce = 500 * time.Millisecond

// PagedQuery is the executor capability the controller drives.
// *gql.Handle[R] implements it; tests substitute fakes.
type PagedQuery[R any] interface {
	Snapshot() gql.Result[R]
	Refetch(ctx context.Context, vars any)
	FetchMore(ctx context.Context, vars any, merge func(prev, incoming R) R)
}

// Config wires the caller's knowledge of the response shape into the
// controller. GetItems, GetPagination and SetItems are required;
// everything else has defaults.
type Config[R, T any] struct {
	// GetItems extracts the item list from a response.
	GetItems func(R) []T
	// GetPagination extracts the server-reported page metadata.
	GetPagination func(R) domain.PageInfo
	// SetItems writes an item list back into a response, producing the
	// value committed after a page merge. The incoming page's
	// pagination metadata stays authoritative.
	SetItems func(R, []T) R
	// MergeItems combines accumulated and incoming items. Defaults to
	// append in order; callers may substitute a deduplicating merge.
	MergeItems func(existing, incoming []T) []T
	// Variables builds query variables from a page cursor and search
	// term (nil when no search is applied). Defaults to
	// {"pagination": cursor, "filter": term}.
	Variables func(p domain.Pagination, search *string) any
	// DefaultPagination is the cursor used for fresh queries.
	DefaultPagination domain.Pagination
	// DebounceTime is the search coalescing window.
	DebounceTime time.Duration
}

// Controller is the paged-search state machine. The only state it
// holds is the current search term and the debounce timer; see the
// package comment.
type Controller[R, T any] struct {
	query PagedQuery[R]
	cfg   Config[R, T]

	mu     sync.Mutex
	search *string
	deb    *Debouncer
	// gen invalidates scheduled debounce fires: Reset, Close,
	// SearchImmediate and SetDebounce bump it, and a fire scheduled
	// against an older value does nothing.
	gen int
}

// New validates the config, fills defaults and builds a controller.
// The query is not executed until Start.
func New[R, T any](query PagedQuery[R], cfg Config[R, T]) (*Controller[R, T], error) {
	if query == nil {
		return nil, errors.New("pagedsearch: query is required")
	}
	if cfg.GetItems == nil || cfg.GetPagination == nil || cfg.SetItems == nil {
		return nil, errors.New("pagedsearch: GetItems, GetPagination and SetItems are required")
	}
	if cfg.MergeItems == nil {
		cfg.MergeItems = func(existing, incoming []T) []T {
			merged := make([]T, 0, len(existing)+len(incoming))
			merged = append(merged, existing...)
			return append(merged, incoming...)
		}
	}
	if cfg.Variables == nil {
		cfg.Variables = func(p domain.Pagination, search *string) any {
			return map[string]any{"pagination": p, "filter": search}
		}
	}
	if cfg.DefaultPagination == (domain.Pagination{}) {
		cfg.DefaultPagination = domain.DefaultPagination
	}
	if cfg.DebounceTime <= 0 {
		cfg.DebounceTime = DefaultDebounce
	}
	return &Controller[R, T]{
		query: query,
		cfg:   cfg,
		deb:   NewDebouncer(cfg.DebounceTime),
	}, nil
}

// Start issues the initial query at the default pagination with no
// search applied.
func (c *Controller[R, T]) Start(ctx context.Context) {
	c.query.Refetch(ctx, c.cfg.Variables(c.cfg.DefaultPagination, nil))
}

// Items returns the accumulated item list, or nil before the first
// response.
func (c *Controller[R, T]) Items() []T {
	snap := c.query.Snapshot()
	if !snap.HasData {
		return nil
	}
	return c.cfg.GetItems(snap.Data)
}

// Pagination returns the current page metadata, or the zero sentinel
// before the first response.
func (c *Controller[R, T]) Pagination() domain.PageInfo {
	snap := c.query.Snapshot()
	if !snap.HasData {
		return domain.PageInfo{}
	}
	return c.cfg.GetPagination(snap.Data)
}

// HasNextPage reports whether another page can be loaded.
func (c *Controller[R, T]) HasNextPage() bool {
	return c.Pagination().HasNext()
}

// IsFetching reports whether a full (replacing) fetch is in flight.
func (c *Controller[R, T]) IsFetching() bool {
	return c.query.Snapshot().Fetching
}

// IsFetchingNextPage reports whether a page-advance is in flight.
func (c *Controller[R, T]) IsFetchingNextPage() bool {
	return c.query.Snapshot().FetchingMore
}

// Err returns the query's current error, verbatim and unretried.
func (c *Controller[R, T]) Err() error {
	return c.query.Snapshot().Err
}

// SearchValue returns the applied search term. ok is false when no
// search has been applied since construction or the last Reset;
// ("", true) means the search was explicitly cleared.
func (c *Controller[R, T]) SearchValue() (value string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.search == nil {
		return "", false
	}
	return *c.search, true
}

// LoadNextPage requests the page after the current one and merges its
// items into the accumulated list. It is a no-op unless a next page
// exists and nothing is in flight, so callers may invoke it freely
// from high-frequency scroll handlers.
func (c *Controller[R, T]) LoadNextPage(ctx context.Context) {
	snap := c.query.Snapshot()
	if !snap.HasData || snap.Fetching || snap.FetchingMore {
		return
	}
	page := c.cfg.GetPagination(snap.Data)
	if !page.HasNext() {
		return
	}
	c.mu.Lock()
	search := c.search
	c.mu.Unlock()
	vars := c.cfg.Variables(page.Next(), search)
	c.query.FetchMore(ctx, vars, c.mergeResponse)
}

// mergeResponse combines an accumulated response with an incoming
// page: merged items are written into the incoming response so its
// pagination metadata becomes authoritative.
func (c *Controller[R, T]) mergeResponse(prev, incoming R) R {
	items := c.cfg.MergeItems(c.cfg.GetItems(prev), c.cfg.GetItems(incoming))
	return c.cfg.SetItems(incoming, items)
}

// SearchImmediate applies the trimmed term right away: pagination
// restarts at the default cursor and previously accumulated items are
// discarded in favour of the fresh response. Any pending debounced
// search is cancelled so it cannot overwrite this term later.
func (c *Controller[R, T]) SearchImmediate(ctx context.Context, value string) {
	trimmed := strings.TrimSpace(value)
	c.mu.Lock()
	c.gen++
	c.deb.Cancel()
	c.search = &trimmed
	c.mu.Unlock()
	c.query.Refetch(ctx, c.cfg.Variables(c.cfg.DefaultPagination, &trimmed))
}

// Search behaves like SearchImmediate but coalesced: within one
// debounce window only the last call takes effect.
func (c *Controller[R, T]) Search(ctx context.Context, value string) {
	c.mu.Lock()
	deb := c.deb
	gen := c.gen
	c.mu.Unlock()
	deb.Call(func() {
		c.applyDebounced(ctx, value, gen)
	})
}

// applyDebounced lands a debounced search. The fire is dropped when
// anything bumped the generation since it was scheduled, and it holds
// the lock through the refetch so Reset and Close cannot return while
// a fire is mid-application.
func (c *Controller[R, T]) applyDebounced(ctx context.Context, value string, gen int) {
	trimmed := strings.TrimSpace(value)
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.search = &trimmed
	c.query.Refetch(ctx, c.cfg.Variables(c.cfg.DefaultPagination, &trimmed))
}

// SetDebounce replaces the debounce window. The previous pending
// invocation, if any, is cancelled rather than carried over. Setting
// the window already in effect leaves pending work untouched.
func (c *Controller[R, T]) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = DefaultDebounce
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if d == c.deb.Delay() {
		return
	}
	c.gen++
	c.deb.Cancel()
	c.deb = NewDebouncer(d)
}

// Reset cancels any pending debounced search, clears the search term
// back to unapplied and re-runs the query at the default pagination.
// No debounce fire can land after Reset returns.
func (c *Controller[R, T]) Reset(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	c.deb.Cancel()
	c.search = nil
	c.mu.Unlock()
	c.query.Refetch(ctx, c.cfg.Variables(c.cfg.DefaultPagination, nil))
}

// Close cancels any pending debounced work. The underlying query
// handle is owned by the caller and is not closed here.
func (c *Controller[R, T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.deb.Cancel()
}
