package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

// Store is the main database facade combining all sub-interfaces.
// The cache and the search engine are both served through it, usually by separate instances.
type Store interface {
	Pinger
	KVStore
	JSONStore
	Searcher
	IndexInspector
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

// JSONStore reads JSON documents.
type JSONStore interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// Searcher runs queries over FT indexes.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
	SearchCount(ctx context.Context, index string, clause query.Clause) (int, error)
}

// IndexInspector reports whether FT indexes are present.
type IndexInspector interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
