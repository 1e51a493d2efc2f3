package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/config"
	dbRedis "github.com/kailas-cloud/moviedex/internal/db/redis"
	"github.com/kailas-cloud/moviedex/internal/domain"
	logpkg "github.com/kailas-cloud/moviedex/internal/logger"
	"github.com/kailas-cloud/moviedex/internal/metrics"
	cacherepo "github.com/kailas-cloud/moviedex/internal/repository/cache"
	searchrepo "github.com/kailas-cloud/moviedex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/moviedex/internal/transport/chi"
	filmuc "github.com/kailas-cloud/moviedex/internal/usecase/film"
	genreuc "github.com/kailas-cloud/moviedex/internal/usecase/genre"
	healthuc "github.com/kailas-cloud/moviedex/internal/usecase/health"
	personuc "github.com/kailas-cloud/moviedex/internal/usecase/person"
	"github.com/kailas-cloud/moviedex/internal/usecase/retrieval"
	"github.com/kailas-cloud/moviedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting moviedex API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
		zap.Strings("search_addrs", cfg.Search.Addrs),
		zap.String("cache_codec", cfg.Cache.Codec),
	)

	ctx := context.Background()

	cacheStore := mustConnect(ctx, logger, "cache", cfg.Cache.RedisConfig)
	defer cacheStore.Close()
	searchStore := mustConnect(ctx, logger, "search", cfg.Search.RedisConfig)
	defer searchStore.Close()

	// Register retrieval metrics explicitly (no init())
	metrics.RegisterRetrievalMetrics()

	codec, err := cacherepo.NewCodec(cfg.Cache.Codec)
	if err != nil {
		logger.Fatal("Invalid cache codec", zap.Error(err))
	}
	cacheRepo, err := cacherepo.New(cacheStore, codec, cfg.CacheTTL(), cacherepo.BreakerConfig{
		FailureThreshold: uint32(cfg.Cache.Breaker.FailureThreshold), //nolint:gosec // validated positive
		OpenTimeout:      time.Duration(cfg.Cache.Breaker.OpenTimeoutSec) * time.Second,
		HalfOpenRequests: uint32(cfg.Cache.Breaker.HalfOpenRequests), //nolint:gosec // validated positive
	}, metrics.CacheBreakerState, logger)
	if err != nil {
		logger.Fatal("Invalid cache settings", zap.Error(err))
	}
	searchRepo := searchrepo.New(searchStore, cfg.Search.KeyPrefix, metrics.SearchDuration)

	// Retrieval engine shared by every entity service
	engine := retrieval.New(cacheRepo, searchRepo, metrics.CacheRequestsTotal, cfg.CacheWriteTimeout(), logger)

	filmSvc := filmuc.New(engine)
	genreSvc := genreuc.New(engine)
	personSvc := personuc.New(engine)
	healthSvc := healthuc.New(cacheRepo, searchStore, searchRepo, domain.Collections())

	server := chiTransport.NewServer(filmSvc, genreSvc, personSvc, healthSvc, chiTransport.PageLimits{
		DefaultSize: cfg.API.DefaultPageSize,
		MaxSize:     cfg.API.MaxPageSize,
	})
	router := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		APIKeys:         cfg.Auth.APIKeys,
		RateLimitPerMin: cfg.HTTP.RateLimitPerMin,
		Logger:          logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// mustConnect opens a store and blocks until it answers PING.
func mustConnect(ctx context.Context, logger *zap.Logger, name string, rc config.RedisConfig) *dbRedis.Store {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      rc.Addrs,
		Username:   rc.Username,
		Password:   rc.Password,
		DB:         rc.DB,
		ClientName: "moviedex-" + name,
	})
	if err != nil {
		logger.Fatal("Failed to create store", zap.String("store", name), zap.Error(err))
	}

	if err := store.WaitForReady(ctx, time.Duration(rc.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		logger.Fatal("Store not ready", zap.String("store", name), zap.Error(err))
	}
	logger.Info("Connected to store", zap.String("store", name), zap.Strings("addrs", rc.Addrs))
	return store
}
