package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solara/venue-reservation/internal/utils"
)

func runRequest(mw echo.MiddlewareFunc, setup func(c echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec
}

func TestJWTAuth(t *testing.T) {
	const secret = "mw-secret"

	t.Run("valid token passes claims through", func(t *testing.T) {
		tok, err := utils.NewAccessToken(secret, 9, "admin", 15)
		require.NoError(t, err)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var gotID, gotRole interface{}
		handler := JWTAuth(secret)(func(c echo.Context) error {
			gotID = c.Get("user_id")
			gotRole = c.Get("role")
			return c.String(http.StatusOK, "ok")
		})
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(9), gotID)
		assert.Equal(t, "admin", gotRole)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := runRequest(JWTAuth(secret), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := runRequest(JWTAuth(secret), func(c echo.Context) {
			c.Request().Header.Set("Authorization", "Bearer not-a-jwt")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 9, "admin", 15)
		require.NoError(t, err)
		rec := runRequest(JWTAuth(secret), func(c echo.Context) {
			c.Request().Header.Set("Authorization", "Bearer "+tok.Token)
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		rec := runRequest(RequireRole("admin"), func(c echo.Context) {
			c.Set("role", "admin")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		rec := runRequest(RequireRole("admin"), func(c echo.Context) {
			c.Set("role", "customer")
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		rec := runRequest(RequireRole("admin", "customer"), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
