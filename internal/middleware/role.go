package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role names carried in the JWT "role" claim. RECEPTION covers
// front-desk staff who manage reservations day to day; MANAGER
// additionally controls the room and rate inventory.
const (
	RoleReception = "RECEPTION"
	RoleManager   = "MANAGER"
)

// RequireRole enforces that the authenticated caller holds one of the
// given roles. It reads the "role" context key set by JWTAuth, so it
// must run after that middleware; a missing or disallowed role is
// rejected with 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
