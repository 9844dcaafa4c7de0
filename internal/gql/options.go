package gql

import "time"

// CachePolicy controls how a query interacts with the client's response cache.
type CachePolicy string

const (
	// CacheFirst serves a cached response when present and only goes to
	// the network on a miss.
	CacheFirst CachePolicy = "cache-first"
	// CacheAndNetwork serves a cached response immediately when present,
	// then revalidates against the network.
	CacheAndNetwork CachePolicy = "cache-and-network"
	// NetworkOnly always fetches, but still writes the result to the cache.
	NetworkOnly CachePolicy = "network-only"
	// NoCache neither reads from nor writes to the cache.
	NoCache CachePolicy = "no-cache"
)

// Operation names a GraphQL document to execute.
type Operation struct {
	Name  string
	Query string
}

// Options tune a single query registration.
type Options struct {
	// Skip suppresses execution entirely; the handle stays empty until
	// Refetch is called.
	Skip bool
	// Context is opaque per-request metadata attached to every request
	// as HTTP headers (auth tokens and the like).
	Context map[string]string
	// CachePolicy defaults to CacheFirst.
	CachePolicy CachePolicy
	// Timeout bounds a single request. Zero means the client default.
	Timeout time.Duration
}

func (o Options) policy() CachePolicy {
	if o.CachePolicy == "" {
		return CacheFirst
	}
	return o.CachePolicy
}
