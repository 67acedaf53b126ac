package middleware

// Response caching for the room browse routes. Entries live in Redis
// as the serialized status, headers and body of a 200 response, keyed
// by route/query under a generation counter. Inventory mutations bump
// the generation through NewCacheInvalidator, which orphans every
// previously cached entry at once; the TTL then garbage-collects the
// stale generation without any key scanning.

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-backoffice/internal/config"
)

// cachedResponse is the stored form of a cacheable response.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// recordingWriter tees the response body into a buffer while
// forwarding it to the client. Bodies over the limit set truncated
// and stop buffering; a truncated capture is never cached.
type recordingWriter struct {
	http.ResponseWriter
	status    int
	body      bytes.Buffer
	limit     int
	truncated bool
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.truncated {
		if w.limit > 0 && w.body.Len()+len(b) > w.limit {
			w.truncated = true
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// generationKey holds the cache generation counter for a prefix.
func generationKey(prefix string) string { return prefix + ":gen" }

// cacheKeyFrom builds the Redis key for a request within a cache
// generation. The variable tail is hashed so query strings of any
// length produce fixed-size keys.
func cacheKeyFrom(cfg config.CacheConfig, generation string, c echo.Context) string {
	r := c.Request()
	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = c.Path()
	case "method_route":
		tail = r.Method + ":" + c.Path()
	case "method_route_query":
		tail = r.Method + ":" + c.Path() + "?" + r.URL.RawQuery
	default: // "route_query"
		tail = c.Path() + "?" + r.URL.RawQuery
	}
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:g%s:%x", cfg.Prefix, generation, sum)
}

// NewRedisCache returns the response cache middleware. Headers are
// stored alongside the body so replayed responses are byte-identical
// to the original, with an added X-Cache header marking hits and
// misses. Only 200 responses to the configured methods are stored.
// When disabled or without Redis the middleware is a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			ctx := c.Request().Context()
			generation, err := rdb.Get(ctx, generationKey(cfg.Prefix)).Result()
			if err != nil {
				generation = "0"
			}
			key := cacheKeyFrom(cfg, generation, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var stored cachedResponse
				if json.Unmarshal(raw, &stored) == nil {
					return replay(c, stored)
				}
			}

			w := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = w
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if w.status == http.StatusOK && !w.truncated {
				store(rdb, cfg, key, w, c.Response().Header())
			}
			return nil
		}
	}
}

func replay(c echo.Context, stored cachedResponse) error {
	h := c.Response().Header()
	for name, values := range stored.Header {
		if strings.EqualFold(name, "Content-Length") {
			continue
		}
		for _, v := range values {
			h.Add(name, v)
		}
	}
	h.Set("X-Cache", "HIT")
	c.Response().WriteHeader(stored.Status)
	if len(stored.Body) > 0 {
		_, _ = c.Response().Write(stored.Body)
	}
	return nil
}

func store(rdb *redis.Client, cfg config.CacheConfig, key string, w *recordingWriter, header http.Header) {
	stored := cachedResponse{
		Status: w.status,
		Header: make(http.Header, len(header)),
		Body:   w.body.Bytes(),
	}
	for name, values := range header {
		stored.Header[name] = append([]string(nil), values...)
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	// Detached context: the request may be done but the write should
	// still land.
	_ = rdb.SetEx(context.Background(), key, raw, cfg.TTL).Err()
}

// NewCacheInvalidator returns a middleware for inventory mutation
// routes. After a handler succeeds with a 2xx status it increments
// the cache generation, which invalidates every cached browse
// response in one write. Pass-through when caching is disabled or
// Redis is absent.
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if status := c.Response().Status; status >= 200 && status < 300 {
				_ = rdb.Incr(context.Background(), generationKey(cfg.Prefix)).Err()
			}
			return nil
		}
	}
}
