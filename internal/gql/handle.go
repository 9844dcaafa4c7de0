package gql

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gqlpick/internal/eventbus"
)

// Result is a point-in-time view of a handle's state. Data is only
// meaningful when HasData is true.
type Result[R any] struct {
	Data         R
	HasData      bool
	Err          error
	Fetching     bool
	FetchingMore bool
}

// Handle is one registered query: its latest committed response, the
// last error, and in-flight flags. All mutation happens through
// Refetch and FetchMore; observers read consistent copies via
// Snapshot. A handle is safe for concurrent use.
type Handle[R any] struct {
	mu     sync.Mutex
	client *Client
	op     Operation
	opts   Options

	data         R
	hasData      bool
	err          error
	fetching     bool
	fetchingMore bool

	// gen invalidates in-flight work: any response that returns to
	// find a different generation is discarded.
	gen    int
	closed bool
}

// Query registers op against the client and, unless opts.Skip is set,
// starts the initial fetch. The returned handle can be observed
// immediately; completion is signalled through the client's bus.
func Query[R any](ctx context.Context, c *Client, op Operation, vars any, opts Options) *Handle[R] {
	h := &Handle[R]{client: c, op: op, opts: opts}
	if !opts.Skip {
		h.Refetch(ctx, vars)
	}
	return h
}

// Snapshot returns a copy of the handle's current state.
func (h *Handle[R]) Snapshot() Result[R] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Result[R]{
		Data:         h.data,
		HasData:      h.hasData,
		Err:          h.err,
		Fetching:     h.fetching,
		FetchingMore: h.fetchingMore,
	}
}

// Refetch replaces the handle's data with a fresh execution of the
// query at the given variables. Any in-flight work is superseded: its
// result will be discarded when it lands.
func (h *Handle[R]) Refetch(ctx context.Context, vars any) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.gen++
	gen := h.gen
	h.fetching = true
	h.fetchingMore = false
	h.mu.Unlock()

	policy := h.opts.policy()
	key := cacheKey(h.op, vars)

	if policy == CacheFirst || policy == CacheAndNetwork {
		if raw, ok := h.client.cache.Get(key); ok {
			decoded, err := decode[R](raw)
			if err == nil {
				h.commit(gen, decoded, policy == CacheFirst)
				h.client.publish(eventbus.QueryCompletedEvent{
					Operation: h.op.Name,
					FromCache: true,
				})
				if policy == CacheFirst {
					return
				}
			}
		}
	}

	reqID := uuid.NewString()
	go func() {
		h.client.publish(eventbus.QueryStartedEvent{Operation: h.op.Name, RequestID: reqID})
		resp, err := h.client.post(ctx, h.op, vars, h.opts)
		if err == nil {
			err = resp.err()
		}

		h.mu.Lock()
		if h.closed || h.gen != gen {
			h.mu.Unlock()
			return
		}
		if err != nil {
			h.err = err
			h.fetching = false
			h.mu.Unlock()
			h.client.publish(eventbus.QueryFailedEvent{Operation: h.op.Name, RequestID: reqID, Err: err})
			return
		}

		decoded, derr := decode[R](resp.Data)
		if derr != nil {
			h.err = fmt.Errorf("gql: decoding %s response: %w", h.op.Name, derr)
			h.fetching = false
			h.mu.Unlock()
			h.client.publish(eventbus.QueryFailedEvent{Operation: h.op.Name, RequestID: reqID, Err: h.err})
			return
		}

		h.data = decoded
		h.hasData = true
		h.err = nil
		h.fetching = false
		h.mu.Unlock()

		if policy != NoCache {
			h.client.cache.Add(key, resp.Data)
		}
		h.client.publish(eventbus.QueryCompletedEvent{Operation: h.op.Name, RequestID: reqID})
	}()
}

// FetchMore issues one incremental request and commits
// merge(previous, incoming) as the handle's data. At most one
// incremental request may be in flight; further calls while one is
// pending, or while a full fetch is running, or before any data
// exists, are dropped. A fetch that yields no usable payload leaves
// the accumulated data untouched.
func (h *Handle[R]) FetchMore(ctx context.Context, vars any, merge func(prev, incoming R) R) {
	h.mu.Lock()
	if h.closed || h.fetching || h.fetchingMore || !h.hasData {
		h.mu.Unlock()
		return
	}
	h.fetchingMore = true
	gen := h.gen
	h.mu.Unlock()

	reqID := uuid.NewString()
	go func() {
		h.client.publish(eventbus.QueryStartedEvent{Operation: h.op.Name, RequestID: reqID})
		resp, err := h.client.post(ctx, h.op, vars, h.opts)
		if err == nil {
			err = resp.err()
		}

		h.mu.Lock()
		if h.closed || h.gen != gen {
			h.mu.Unlock()
			return
		}
		if err != nil {
			h.err = err
			h.fetchingMore = false
			h.mu.Unlock()
			h.client.publish(eventbus.QueryFailedEvent{Operation: h.op.Name, RequestID: reqID, Err: err})
			return
		}
		if !resp.hasData() {
			// Nothing usable came back; keep what we have.
			h.fetchingMore = false
			h.mu.Unlock()
			return
		}

		incoming, derr := decode[R](resp.Data)
		if derr != nil {
			h.err = fmt.Errorf("gql: decoding %s page: %w", h.op.Name, derr)
			h.fetchingMore = false
			h.mu.Unlock()
			h.client.publish(eventbus.QueryFailedEvent{Operation: h.op.Name, RequestID: reqID, Err: h.err})
			return
		}

		h.data = merge(h.data, incoming)
		h.err = nil
		h.fetchingMore = false
		h.mu.Unlock()
		h.client.publish(eventbus.PageFetchedEvent{Operation: h.op.Name, RequestID: reqID})
	}()
}

// Close detaches the handle. Responses from in-flight requests are
// discarded and later Refetch/FetchMore calls are no-ops.
func (h *Handle[R]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.gen++
}

// commit stores a cache-served value. done marks the handle as no
// longer fetching (cache-first); cache-and-network keeps the fetching
// flag up while the network revalidation runs.
func (h *Handle[R]) commit(gen int, data R, done bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.gen != gen {
		return
	}
	h.data = data
	h.hasData = true
	h.err = nil
	if done {
		h.fetching = false
	}
}

func decode[R any](raw json.RawMessage) (R, error) {
	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
