// Package retrieval implements cache-aside reads over the search engine for every collection.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/query"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	logpkg "github.com/kailas-cloud/moviedex/internal/logger"
)

// DefaultWriteTimeout bounds a cache population that outlives its request.
const DefaultWriteTimeout = 2 * time.Second

// Service is the retrieval engine. It holds no per-request state and is safe for concurrent use.
type Service struct {
	cache        Cache
	search       SearchEngine
	cacheTotal   *prometheus.CounterVec
	writeTimeout time.Duration
	logger       *zap.Logger
}

// New creates a retrieval engine.
// cacheTotal is a counter vec with labels "collection" and "result" ("hit"/"miss"), may be nil.
func New(
	cache Cache,
	search SearchEngine,
	cacheTotal *prometheus.CounterVec,
	writeTimeout time.Duration,
	logger *zap.Logger,
) *Service {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:        cache,
		search:       search,
		cacheTotal:   cacheTotal,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// GetOne returns the document of collection with the given id.
// Unknown ids yield domain.ErrNotFound and are never cached.
func (s *Service) GetOne(ctx context.Context, collection, id string) (document.Document, error) {
	key := PointKey(collection, id)

	var cached document.Document
	if s.fromCache(ctx, collection, key, &cached) {
		return cached, nil
	}

	doc, err := s.search.GetByID(ctx, collection, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	s.toCache(ctx, key, doc)
	return doc, nil
}

// GetList returns one page of the documents matched by build(req), in engine order.
// The requested page is first clamped to the available range and the cache key
// carries the clamped page, so out-of-range requests share the last page's entry.
func (s *Service) GetList(
	ctx context.Context, collection string, req request.Request, build Builder,
) ([]document.Document, error) {
	body := build(req)

	page, err := s.ValidatePage(ctx, collection, req.Page(), req.Size(), body)
	if err != nil {
		return nil, err
	}
	req = req.WithPage(page)

	key := ListKey(collection, req)

	var cached []document.Document
	if s.fromCache(ctx, collection, key, &cached) {
		return cached, nil
	}

	docs, _, err := s.search.Search(ctx, collection, body.Paginate(query.PageWindow(page, req.Size())))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	if docs == nil {
		docs = []document.Document{}
	}

	s.toCache(ctx, key, docs)
	return docs, nil
}

// fromCache reports a hit. Cache failures count as misses.
func (s *Service) fromCache(ctx context.Context, collection, key string, dst any) bool {
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		logpkg.FromContextOr(ctx, s.logger).Warn("cache read failed, falling back to search",
			zap.String("key", key), zap.Error(err))
	}
	if found && err == nil {
		s.incCache(collection, "hit")
		return true
	}
	s.incCache(collection, "miss")
	return false
}

// toCache populates key on a context detached from the caller's cancellation.
// Failures are logged and dropped.
func (s *Service) toCache(ctx context.Context, key string, v any) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()

	if err := s.cache.Set(wctx, key, v); err != nil {
		logpkg.FromContextOr(ctx, s.logger).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) incCache(collection, result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(collection, result).Inc()
	}
}
