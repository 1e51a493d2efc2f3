package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/db"
)

// probeKey is looked up by Ping. It is never written.
const probeKey = "moviedex::health"

// MinTTL is the shortest entry lifetime. SET ... EX takes whole seconds and rejects 0.
const MinTTL = time.Second

// ErrInvalidTTL is returned by New for a TTL below MinTTL.
var ErrInvalidTTL = errors.New("cache ttl must be at least 1s")

// store is the consumer interface for the cache key-value store (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

// BreakerConfig tunes the circuit breaker guarding the cache store.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32
}

// Cache is a typed view over the key-value store: values go through a codec and every
// store call passes a circuit breaker, so a dead cache fails fast instead of adding latency.
// A missing key is a normal outcome and never counts as a breaker failure.
type Cache struct {
	store   store
	codec   Codec
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

// New creates a cache adapter.
// breakerState is a gauge set to the breaker state (0 closed, 1 half-open, 2 open), may be nil.
func New(
	s store,
	codec Codec,
	ttl time.Duration,
	bc BreakerConfig,
	breakerState prometheus.Gauge,
	logger *zap.Logger,
) (*Cache, error) {
	if ttl < MinTTL {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidTTL, ttl)
	}
	c := &Cache{store: s, codec: codec, ttl: ttl, logger: logger}

	threshold := max(bc.FailureThreshold, 1)
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "cache",
		MaxRequests: bc.HalfOpenRequests,
		Timeout:     bc.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, db.ErrKeyNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if breakerState != nil {
				breakerState.Set(float64(to))
			}
		},
	})
	return c, nil
}

// Get decodes the value at key into dst. found is false on a miss.
// An entry that does not decode, for instance one written with another codec, is evicted.
func (c *Cache) Get(ctx context.Context, key string, dst any) (found bool, err error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.store.Get(ctx, key)
	})
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := c.codec.Unmarshal(data, dst); err != nil {
		if delErr := c.Delete(ctx, key); delErr != nil {
			c.logger.Warn("evicting undecodable cache entry failed", zap.String("key", key), zap.Error(delErr))
		}
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes v and stores it at key with the configured TTL, replacing any previous value.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	data, err := c.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.store.SetWithTTL(ctx, key, data, c.ttl)
	})
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key is cached.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	_, err := c.breaker.Execute(func() ([]byte, error) {
		var err error
		ok, err = c.store.Exists(ctx, key)
		return nil, err
	})
	if err != nil {
		return false, fmt.Errorf("cache exists %s: %w", key, err)
	}
	return ok, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.store.Del(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Ping round-trips a key lookup through the breaker, so an open breaker
// reports the cache as down even while the server answers PING.
func (c *Cache) Ping(ctx context.Context) error {
	_, err := c.Exists(ctx, probeKey)
	return err
}
