package router

// This file registers the read-only room browse endpoints.  They are the
// hottest routes in the service and the only ones that go through the Redis
// response cache, which is why they get their own group instead of living
// with the reception routes.

import (
	"github.com/iliyamo/hotel-backoffice/internal/handler"
	"github.com/iliyamo/hotel-backoffice/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterBrowse registers authenticated room browse endpoints under /v1.
// Both staff roles may read the inventory.  Middleware order matters:
// JWTAuth first so the rate limiter can key per user, the cache last so
// a cache hit still counts against the caller's bucket.
func RegisterBrowse(e *echo.Echo, rm *handler.RoomHandler, jwtSecret string, limiter, cache echo.MiddlewareFunc) {
	gr := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleReception, middleware.RoleManager),
		limiter,
		cache,
	)

	gr.GET("/rooms", rm.List) // optional ?status= filter
	gr.GET("/rooms/:id", rm.Get)
}
