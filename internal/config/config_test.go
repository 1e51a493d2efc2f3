package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Cache:  CacheConfig{RedisConfig: RedisConfig{Addrs: []string{"localhost:6379"}}},
		Search: SearchConfig{RedisConfig: RedisConfig{Addrs: []string{"localhost:6380"}}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected ttl 300, got %d", cfg.Cache.TTLSec)
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("expected 5m ttl, got %v", cfg.CacheTTL())
	}
	if cfg.CacheWriteTimeout() != 2*time.Second {
		t.Errorf("expected 2s write timeout, got %v", cfg.CacheWriteTimeout())
	}
	if cfg.Cache.Codec != "json" {
		t.Errorf("expected json codec, got %q", cfg.Cache.Codec)
	}
	if cfg.Search.KeyPrefix != "moviedex:" {
		t.Errorf("expected moviedex: prefix, got %q", cfg.Search.KeyPrefix)
	}
	if cfg.API.DefaultPageSize != 25 || cfg.API.MaxPageSize != 100 {
		t.Errorf("unexpected page sizes: %+v", cfg.API)
	}
	if cfg.Cache.Breaker.FailureThreshold != 5 {
		t.Errorf("expected breaker threshold 5, got %d", cfg.Cache.Breaker.FailureThreshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port must be between 1 and 65535, got 0"},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimitPerMin = -1 }, "http.rate_limit_per_min must not be negative, got -1"},
		{"missing cache addrs", func(c *Config) { c.Cache.Addrs = nil }, "cache.addrs is required"},
		{"missing search addrs", func(c *Config) { c.Search.Addrs = nil }, "search.addrs is required"},
		{"unknown codec", func(c *Config) { c.Cache.Codec = "gob" }, `cache.codec must be "json" or "msgpack", got "gob"`},
		{
			"default above max",
			func(c *Config) { c.API.DefaultPageSize = 200 },
			"api.default_page_size (200) must not exceed api.max_page_size (100)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MOVIEDEX_TEST_PASS", "s3cret")

	got := string(expandEnvVars([]byte("a: ${MOVIEDEX_TEST_PASS}\nb: ${MOVIEDEX_TEST_UNSET:-fallback}\nc: ${MOVIEDEX_TEST_UNSET}")))
	want := "a: s3cret\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: 9000
cache:
  addrs: ["cache:6379"]
  ttl_sec: 60
  codec: msgpack
search:
  addrs: ["${MOVIEDEX_TEST_SEARCH:-search:6379}"]
  key_prefix: "test:"
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.HTTP.Port)
	}
	if cfg.Cache.Addrs[0] != "cache:6379" || cfg.Cache.TTLSec != 60 || cfg.Cache.Codec != "msgpack" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Search.Addrs[0] != "search:6379" || cfg.Search.KeyPrefix != "test:" {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("defaults not applied: %+v", cfg.HTTP)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
