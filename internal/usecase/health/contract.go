package health

import "context"

// Pinger checks store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the search index of a collection exists.
type IndexChecker interface {
	IndexExists(ctx context.Context, collection string) (bool, error)
}
