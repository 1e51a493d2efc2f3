package retrieval

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
)

// Cache stores serialized documents and document lists under string keys.
type Cache interface {
	// Get decodes the value at key into dst; found is false on a miss.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	// Set stores v at key with the cache's fixed TTL.
	Set(ctx context.Context, key string, v any) error
}

// SearchEngine executes queries against per-collection search indexes.
// Store failures are reported wrapping domain.ErrUpstreamUnavailable.
type SearchEngine interface {
	// GetByID returns domain.ErrNotFound when no document has the identifier.
	GetByID(ctx context.Context, collection, id string) (document.Document, error)
	// Search runs body as-is and returns hits in engine order plus the total match count.
	Search(ctx context.Context, collection string, body query.Body) ([]document.Document, int, error)
	// Count returns the number of documents matching body's clause.
	Count(ctx context.Context, collection string, body query.Body) (int, error)
}

// Builder turns a request into an unpaginated query body for one entity kind.
type Builder func(req request.Request) query.Body
