package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/hotel-backoffice/internal/handler"    // manager handlers
	"github.com/iliyamo/hotel-backoffice/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterManager registers MANAGER-scoped endpoints under /v1.
// All routes require a valid JWT and the MANAGER role.  Managers own the
// room inventory and may remove guest profiles; reception staff may not.
// The rate limiter runs after JWTAuth so its per-user bucket key sees the
// token subject.  bust is the cache-invalidation middleware: room
// mutations carry it so the cached browse responses are dropped the
// moment the inventory changes.
func RegisterManager(e *echo.Echo, rm *handler.RoomHandler, g *handler.GuestHandler, jwtSecret string, limiter, bust echo.MiddlewareFunc) {
	// Attach middlewares at group construction time for clarity.
	gr := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleManager),
		limiter,
	)

	// ---- Rooms ----
	gr.POST("/rooms", rm.Create, bust)
	gr.PUT("/rooms/:id", rm.Update, bust)
	gr.PATCH("/rooms/:id", rm.Update, bust) // allow partial/semantic updates via PATCH as well
	gr.DELETE("/rooms/:id", rm.Delete, bust)

	// ---- Guests ----
	// Deleting a profile is destructive and blocked while reservations
	// reference it, so it stays manager-only.
	gr.DELETE("/guests/:id", g.Delete)
}
