package gql

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"resty.dev/v3"

	"gqlpick/internal/eventbus"
)

const defaultCacheSize = 128

// Client executes GraphQL operations against a single endpoint and
// keeps an LRU cache of raw response payloads. A Client may be shared
// by any number of concurrently registered query handles.
type Client struct {
	endpoint string
	http     *resty.Client
	headers  map[string]string
	cache    *lru.Cache[string, json.RawMessage]
	bus      eventbus.EventBus
	timeout  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHeaders sets headers sent with every request (e.g. Authorization).
func WithHeaders(h map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithBus publishes query lifecycle events to the given bus.
func WithBus(bus eventbus.EventBus) ClientOption {
	return func(c *Client) { c.bus = bus }
}

// WithCacheSize overrides the response cache capacity.
func WithCacheSize(n int) ClientOption {
	return func(c *Client) {
		cache, err := lru.New[string, json.RawMessage](n)
		if err == nil {
			c.cache = cache
		}
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a client for the given GraphQL endpoint.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("gql: endpoint is required")
	}
	cache, err := lru.New[string, json.RawMessage](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("gql: creating response cache: %w", err)
	}
	c := &Client{
		endpoint: endpoint,
		http:     resty.New(),
		headers:  map[string]string{"Content-Type": "application/json"},
		cache:    cache,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// cacheKey builds a stable key from the operation name and the
// canonical JSON encoding of the variables.
func cacheKey(op Operation, vars any) string {
	b, err := json.Marshal(vars)
	if err != nil {
		b = []byte(fmt.Sprintf("%v", vars))
	}
	return op.Name + ":" + string(b)
}

// wire types for the GraphQL-over-HTTP request/response envelope.

type wireRequest struct {
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
	OperationName string `json:"operationName,omitempty"`
}

type wireError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

type wireResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []wireError     `json:"errors"`
}

func (r *wireResponse) err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("gql: %s", strings.Join(msgs, "; "))
}

// hasData reports whether the response carries a usable payload.
func (r *wireResponse) hasData() bool {
	trimmed := strings.TrimSpace(string(r.Data))
	return trimmed != "" && trimmed != "null"
}
