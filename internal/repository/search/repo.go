package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/moviedex/internal/db"
	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
)

// docPath is the JSONPath selecting a whole document, both for JSON.GET and FT.SEARCH RETURN.
const docPath = "$"

// store is the consumer interface for search operations (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, clause query.Clause) (int, error)
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo maps collections onto search indexes and decodes hits into documents.
// Documents live under "<prefix><collection>:<id>", indexed by "<prefix><collection>:idx".
type Repo struct {
	store     store
	keyPrefix string
	duration  *prometheus.HistogramVec
}

// New creates a search repository.
// duration is a histogram vec with labels "collection" and "op", nil disables timing.
func New(s store, keyPrefix string, duration *prometheus.HistogramVec) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, duration: duration}
}

// IndexName returns the FT index serving collection.
func (r *Repo) IndexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", r.keyPrefix, collection)
}

func (r *Repo) docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", r.keyPrefix, collection, id)
}

// GetByID fetches one document by identifier.
func (r *Repo) GetByID(ctx context.Context, collection, id string) (document.Document, error) {
	defer r.observe(collection, "get", time.Now())

	data, err := r.store.JSONGet(ctx, r.docKey(collection, id), docPath)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, upstream(err))
	}

	doc, ok, err := document.DecodeFirst(data)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// Search executes body against collection and returns the hits in engine order
// together with the total match count. Pagination and sorting are taken from body verbatim.
func (r *Repo) Search(
	ctx context.Context, collection string, body query.Body,
) ([]document.Document, int, error) {
	defer r.observe(collection, "search", time.Now())

	sr, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName:    r.IndexName(collection),
		Body:         body,
		ReturnFields: []string{docPath},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", collection, upstream(err))
	}

	docs := make([]document.Document, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw, ok := entry.Fields[docPath]
		if !ok {
			return nil, 0, fmt.Errorf("search %s: hit %s has no document body", collection, entry.Key)
		}
		doc, err := document.Decode([]byte(raw))
		if err != nil {
			return nil, 0, fmt.Errorf("search %s: hit %s: %w", collection, entry.Key, err)
		}
		docs = append(docs, doc)
	}
	return docs, sr.Total, nil
}

// Count returns how many documents of collection match body's clause.
// Sort and window are irrelevant to the count and ignored.
func (r *Repo) Count(ctx context.Context, collection string, body query.Body) (int, error) {
	defer r.observe(collection, "count", time.Now())

	n, err := r.store.SearchCount(ctx, r.IndexName(collection), body.Query)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, upstream(err))
	}
	return n, nil
}

// IndexExists reports whether the index serving collection is present.
func (r *Repo) IndexExists(ctx context.Context, collection string) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.IndexName(collection))
	if err != nil {
		return false, fmt.Errorf("index %s: %w", collection, upstream(err))
	}
	return ok, nil
}

// upstream marks failures reported by the store (connection, timeout, server reply)
// as domain.ErrUpstreamUnavailable. Query rendering and decoding errors are left as is.
func upstream(err error) error {
	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return err
}

func (r *Repo) observe(collection, op string, start time.Time) {
	if r.duration != nil {
		r.duration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
	}
}
