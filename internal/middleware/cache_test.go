package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/config"
)

func cacheConfig(strategy string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          30 * time.Second,
		KeyStrategy:  strategy,
		Prefix:       "hotel:cache",
		MaxBodyBytes: 1 << 20,
	}
}

func browseContext(test *testing.T, target string) echo.Context {
	test.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/rooms")
	return c
}

func TestCacheKeyChangesAcrossGenerations(test *testing.T) {
	test.Parallel()
	cfg := cacheConfig("route_query")
	c := browseContext(test, "/v1/rooms?status=AVAILABLE")
	gen1 := cacheKeyFrom(cfg, "1", c)
	gen2 := cacheKeyFrom(cfg, "2", c)
	if gen1 == gen2 {
		test.Fatalf("expected generation bump to change the key, got %q twice", gen1)
	}
	if again := cacheKeyFrom(cfg, "1", c); again != gen1 {
		test.Fatalf("expected stable key within a generation, got %q then %q", gen1, again)
	}
}

func TestCacheKeyStrategyQuerySensitivity(test *testing.T) {
	test.Parallel()
	withQuery := browseContext(test, "/v1/rooms?status=AVAILABLE")
	without := browseContext(test, "/v1/rooms")

	cfg := cacheConfig("route_query")
	if cacheKeyFrom(cfg, "1", withQuery) == cacheKeyFrom(cfg, "1", without) {
		test.Fatal("route_query strategy must distinguish query strings")
	}

	cfg = cacheConfig("route")
	if cacheKeyFrom(cfg, "1", withQuery) != cacheKeyFrom(cfg, "1", without) {
		test.Fatal("route strategy must ignore query strings")
	}
}

func TestCacheKeyStaysInPrefixNamespace(test *testing.T) {
	test.Parallel()
	key := cacheKeyFrom(cacheConfig("route_query"), "7", browseContext(test, "/v1/rooms"))
	if !strings.HasPrefix(key, "hotel:cache:g7:") {
		test.Fatalf("expected prefix and generation namespace, got %q", key)
	}
}

func TestRecordingWriterMarksOversizedBodies(test *testing.T) {
	test.Parallel()
	rec := httptest.NewRecorder()
	w := &recordingWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}
	payload := []byte("0123456789abcdef")
	if _, err := w.Write(payload); err != nil {
		test.Fatalf("write: %v", err)
	}
	if !w.truncated {
		test.Fatal("expected oversized body to mark the capture truncated")
	}
	// The client must still receive the full payload.
	if rec.Body.String() != string(payload) {
		test.Fatalf("expected full body forwarded, got %q", rec.Body.String())
	}
}

func TestNewRedisCachePassThroughWithoutRedis(test *testing.T) {
	test.Parallel()
	called := false
	mw := NewRedisCache(cacheConfig("route_query"), nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(browseContext(test, "/v1/rooms")); err != nil {
		test.Fatalf("pass-through: %v", err)
	}
	if !called {
		test.Fatal("expected next handler to run without Redis")
	}
}

func TestNewCacheInvalidatorPassThroughWithoutRedis(test *testing.T) {
	test.Parallel()
	called := false
	mw := NewCacheInvalidator(cacheConfig("route_query"), nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})
	if err := handler(browseContext(test, "/v1/rooms")); err != nil {
		test.Fatalf("pass-through: %v", err)
	}
	if !called {
		test.Fatal("expected next handler to run without Redis")
	}
}
