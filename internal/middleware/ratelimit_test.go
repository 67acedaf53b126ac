package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/config"
)

func rateLimitConfig(strategy string) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       60,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            10 * time.Minute,
		KeyStrategy:    strategy,
		Prefix:         "hotel:rl",
	}
}

func requestContext(test *testing.T) echo.Context {
	test.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/rooms")
	return c
}

func TestBuildRateKeyUsesTokenSubject(test *testing.T) {
	test.Parallel()
	c := requestContext(test)
	c.Set("subject", "staff-7")
	key := buildRateKey(rateLimitConfig("ip_user_route"), c)
	if !strings.Contains(key, ":user:staff-7") {
		test.Fatalf("expected key to carry the token subject, got %q", key)
	}
}

func TestBuildRateKeyAnonymousWithoutSubject(test *testing.T) {
	test.Parallel()
	key := buildRateKey(rateLimitConfig("ip_user_route"), requestContext(test))
	if !strings.Contains(key, ":user:anon") {
		test.Fatalf("expected anonymous user dimension, got %q", key)
	}
}

func TestBuildRateKeyStrategies(test *testing.T) {
	test.Parallel()
	c := requestContext(test)
	c.Set("subject", "staff-7")

	userKey := buildRateKey(rateLimitConfig("user"), c)
	if !strings.HasSuffix(userKey, ":user:staff-7") {
		test.Fatalf("unexpected user-strategy key %q", userKey)
	}
	routeKey := buildRateKey(rateLimitConfig("route"), c)
	if !strings.Contains(routeKey, "GET /v1/rooms") {
		test.Fatalf("unexpected route-strategy key %q", routeKey)
	}
	if strings.Contains(routeKey, "staff-7") {
		test.Fatalf("route strategy must not carry the subject, got %q", routeKey)
	}
}

// The limiter runs inside the authenticated route groups, after
// JWTAuth. This test walks a request through that chain and asserts
// the bucket key built downstream of JWTAuth carries the token
// subject rather than the anonymous fallback.
func TestRateKeySeesSubjectBehindJWTAuth(test *testing.T) {
	test.Parallel()
	const secret = "chain-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "staff-7",
		"role": RoleReception,
	})
	raw, err := token.SignedString([]byte(secret))
	if err != nil {
		test.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/rooms")

	var key string
	chain := JWTAuth(secret)(func(c echo.Context) error {
		key = buildRateKey(rateLimitConfig("ip_user_route"), c)
		return c.NoContent(http.StatusOK)
	})
	if err := chain(c); err != nil {
		test.Fatalf("chain: %v", err)
	}
	if rec.Code != http.StatusOK {
		test.Fatalf("expected 200 through the chain, got %d", rec.Code)
	}
	if !strings.Contains(key, ":user:staff-7") {
		test.Fatalf("expected per-user bucket key behind JWTAuth, got %q", key)
	}
	if strings.Contains(key, ":user:anon") {
		test.Fatalf("bucket key degraded to anonymous: %q", key)
	}
}

func TestNewTokenBucketPassThroughWithoutRedis(test *testing.T) {
	test.Parallel()
	called := false
	mw := NewTokenBucket(rateLimitConfig("ip_user_route"), nil)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(requestContext(test)); err != nil {
		test.Fatalf("pass-through: %v", err)
	}
	if !called {
		test.Fatal("expected next handler to run without Redis")
	}
}
