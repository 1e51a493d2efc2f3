package moviedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/moviedex/internal/db/redis"
	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	cacherepo "github.com/kailas-cloud/moviedex/internal/repository/cache"
	searchrepo "github.com/kailas-cloud/moviedex/internal/repository/search"
	filmuc "github.com/kailas-cloud/moviedex/internal/usecase/film"
	genreuc "github.com/kailas-cloud/moviedex/internal/usecase/genre"
	healthuc "github.com/kailas-cloud/moviedex/internal/usecase/health"
	personuc "github.com/kailas-cloud/moviedex/internal/usecase/person"
	"github.com/kailas-cloud/moviedex/internal/usecase/retrieval"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type filmUseCase interface {
	Get(ctx context.Context, id string) (document.Document, error)
	List(ctx context.Context, req request.Request) ([]document.Document, error)
	Search(ctx context.Context, req request.Request) ([]document.Document, error)
}

type genreUseCase interface {
	Get(ctx context.Context, id string) (document.Document, error)
	List(ctx context.Context, req request.Request) ([]document.Document, error)
	Search(ctx context.Context, req request.Request) ([]document.Document, error)
}

type personUseCase interface {
	Get(ctx context.Context, id string) (document.Document, error)
	Search(ctx context.Context, req request.Request) ([]document.Document, error)
	Films(ctx context.Context, id string, req request.Request) ([]document.Document, error)
}

// Client is the moviedex SDK entry point.
type Client struct {
	cacheStore  *dbRedis.Store
	searchStore *dbRedis.Store
	films       filmUseCase
	genres      genreUseCase
	persons     personUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates a Client and connects to both stores.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.cache.addrs) == 0 {
		return nil, errors.New("moviedex: cache address required (use WithCache)")
	}
	if len(cfg.search.addrs) == 0 {
		return nil, errors.New("moviedex: search address required (use WithSearch)")
	}
	if cfg.ttl < cacherepo.MinTTL {
		return nil, fmt.Errorf("moviedex: ttl must be at least %v (use WithTTL), got %v", cacherepo.MinTTL, cfg.ttl)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	cacheStore, err := connect(ctx, "cache", cfg.cache, cfg.readinessTimeout)
	if err != nil {
		return nil, err
	}
	searchStore, err := connect(ctx, "search", cfg.search, cfg.readinessTimeout)
	if err != nil {
		cacheStore.Close()
		return nil, err
	}

	c, err := wireClient(cacheStore, searchStore, cfg, obs)
	if err != nil {
		cacheStore.Close()
		searchStore.Close()
		return nil, err
	}
	return c, nil
}

func connect(ctx context.Context, name string, ep endpoint, timeout time.Duration) (*dbRedis.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      ep.addrs,
		Password:   ep.password,
		DB:         ep.db,
		ClientName: "moviedex-sdk-" + name,
	})
	if err != nil {
		return nil, fmt.Errorf("moviedex: create %s store: %w", name, err)
	}
	if err := s.WaitForReady(ctx, timeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("moviedex: %s not ready: %w", name, err)
	}
	return s, nil
}

func wireClient(cacheStore, searchStore *dbRedis.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	codec, err := cacherepo.NewCodec(cfg.codec)
	if err != nil {
		return nil, fmt.Errorf("moviedex: %w", err)
	}

	logger := obs.zapLogger()
	cache, err := cacherepo.New(cacheStore, codec, cfg.ttl, cacherepo.BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("moviedex: %w", err)
	}
	search := searchrepo.New(searchStore, cfg.keyPrefix, nil)
	engine := retrieval.New(cache, search, obs.cacheCounter(), cfg.writeTimeout, logger)

	return &Client{
		cacheStore:  cacheStore,
		searchStore: searchStore,
		films:       filmuc.New(engine),
		genres:      genreuc.New(engine),
		persons:     personuc.New(engine),
		healthSvc:   healthuc.New(cache, searchStore, search, domain.Collections()),
		obs:         obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cacheStore != nil {
		c.cacheStore.Close()
	}
	if c.searchStore != nil {
		c.searchStore.Close()
	}
}

// Ping checks connectivity of both stores.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.cacheStore.Ping(ctx); err != nil {
		return fmt.Errorf("ping cache: %w", err)
	}
	if err = c.searchStore.Ping(ctx); err != nil {
		return fmt.Errorf("ping search: %w", err)
	}
	return nil
}

// Films returns the film service.
func (c *Client) Films() *FilmService {
	return &FilmService{svc: c.films, obs: c.obs}
}

// Genres returns the genre service.
func (c *Client) Genres() *GenreService {
	return &GenreService{svc: c.genres, obs: c.obs}
}

// Persons returns the person service.
func (c *Client) Persons() *PersonService {
	return &PersonService{svc: c.persons, obs: c.obs}
}
