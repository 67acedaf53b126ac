package router

// This file registers the day-to-day front-desk routes: reservation
// management, the guest directory and the availability quote.  They are
// separate from the manager routes to keep inventory administration
// isolated from reception work.

import (
	"github.com/iliyamo/hotel-backoffice/internal/handler"
	"github.com/iliyamo/hotel-backoffice/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterReception registers reception-scoped endpoints under /v1.  All
// routes require a valid JWT and either the RECEPTION or MANAGER role.
// Reception staff create and amend reservations, move them through the
// check-in lifecycle, maintain guest profiles and run availability quotes.
// The rate limiter runs after JWTAuth so its per-user bucket key sees the
// token subject.
func RegisterReception(e *echo.Echo, res *handler.ReservationHandler, g *handler.GuestHandler, rm *handler.RoomHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	gr := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleReception, middleware.RoleManager),
		limiter,
	)

	// ---- Reservations ----
	gr.POST("/reservations", res.Create)
	gr.GET("/reservations", res.List) // optional ?start=&end= date window
	gr.GET("/reservations/:id", res.Get)
	gr.PUT("/reservations/:id", res.Update)
	gr.PATCH("/reservations/:id", res.Update) // allow partial/semantic updates via PATCH as well
	gr.DELETE("/reservations/:id", res.Delete)

	// Room membership of an existing reservation.
	gr.POST("/reservations/:id/rooms/:roomId", res.AddRoom)
	gr.DELETE("/reservations/:id/rooms/:roomId", res.RemoveRoom)

	// Lifecycle transitions.  Each is a POST because it moves the
	// reservation through its state machine rather than replacing it.
	gr.POST("/reservations/:id/check-in", res.CheckIn)
	gr.POST("/reservations/:id/check-out", res.CheckOut)
	gr.POST("/reservations/:id/cancel", res.Cancel)

	// ---- Guests ----
	gr.POST("/guests", g.Create)
	gr.GET("/guests", g.List)
	gr.GET("/guests/me", g.Me)
	gr.GET("/guests/:id", g.Get)
	gr.PUT("/guests/:id", g.Update)
	gr.PATCH("/guests/:id", g.Update)
	gr.GET("/guests/:id/reservations", res.ListByGuest)

	// ---- Availability ----
	// POST rather than GET: the request carries a JSON body with the room
	// set and stay window, and quotes must never be served from cache.
	gr.POST("/availability", rm.CheckAvailability)
}
