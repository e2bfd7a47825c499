package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID reads the authenticated user's ID stored in context by
// the JWT middleware.  The "sub" claim round-trips through JSON, so it
// may arrive as a float64 or a string depending on how the token was
// minted.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, true
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 {
			return uint64(v), true
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return n, err == nil && n > 0
}
