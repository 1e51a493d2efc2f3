package moviedex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type endpoint struct {
	addrs    []string
	password string
	db       int
}

type clientConfig struct {
	cache  endpoint
	search endpoint

	keyPrefix        string
	ttl              time.Duration
	writeTimeout     time.Duration
	codec            string
	readinessTimeout time.Duration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		keyPrefix:        "moviedex:",
		ttl:              5 * time.Minute,
		codec:            "json",
		readinessTimeout: defaultReadinessTimeout,
	}
}

// WithCache sets the Redis instance holding cached results.
func WithCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cache.addrs = []string{addr}
		c.cache.password = password
	})
}

// WithCacheDB selects the logical database of the cache instance.
func WithCacheDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cache.db = db
	})
}

// WithSearch sets the Redis Stack instance holding the film, person and genre indexes.
func WithSearch(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.search.addrs = []string{addr}
		c.search.password = password
	})
}

// WithKeyPrefix sets the prefix of search index and document key names.
// Default: "moviedex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTTL sets how long cached results live. Default: 5 minutes.
// Redis expires keys in whole seconds; New rejects anything below one second.
func WithTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.ttl = ttl
	})
}

// WithWriteTimeout bounds a cache write that outlives its call. Default: 2 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.writeTimeout = d
	})
}

// WithCodec sets the cache value encoding: "json" (default) or "msgpack".
// Every reader of a cache must agree on the codec.
func WithCodec(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.codec = name
	})
}

// WithReadinessTimeout bounds the initial wait for both stores. Default: 10 seconds.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
