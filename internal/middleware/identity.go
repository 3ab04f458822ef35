package middleware

// identity.go holds helpers shared across middleware files. The rate
// limiter keys buckets by user where possible and falls back to
// "anon" for unauthenticated traffic.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id stored by JWTAuth
// as a string for bucket keys. Claims decoded from JSON arrive as
// float64; issued-in-process tokens may carry uint64.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
