package config

import (
	"strings"
	"time"
)

// CacheConfig tunes the response cache in front of the room browse
// routes. Room inventory is read far more often than it changes, so
// even a short TTL takes real load off the database; correctness
// comes from the generation counter the invalidation middleware bumps
// on every inventory mutation, not from the TTL alone.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods eligible for caching
	TTL          time.Duration
	KeyStrategy  string // which request parts feed the cache key
	Prefix       string // Redis key namespace
	MaxBodyBytes int    // responses larger than this are never cached
}

// LoadCacheConfig reads the CACHE_* environment variables, falling
// back to defaults suited to the room listing endpoints.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "hotel:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	methods := make(map[string]bool)
	for _, m := range strings.Split(s, ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			methods[m] = true
		}
	}
	return methods
}
