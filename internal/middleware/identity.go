package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides subject extraction: the identity provider's stable
// user identifier, stored in context by JWTAuth. When no token is present
// the caller is treated as anonymous.

import (
	"github.com/labstack/echo/v4"
)

// currentSubject extracts the authenticated caller's subject from context.
// It returns "anon" when no subject is present, which keeps rate-limit keys
// well formed for unauthenticated routes such as the health check.
func currentSubject(c echo.Context) string {
	if v := c.Get("subject"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
