package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig tunes the response cache applied to the public catalog
// and hall-date endpoints.  Caching is skipped entirely when Enabled
// is false or no Redis client is available.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
	MaxBody int // largest response body to cache, in bytes
}

// LoadCacheConfig reads cache settings from the environment with
// sensible defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
		MaxBody: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

// Shared env helpers used by cache.go and ratelimit.go.

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
