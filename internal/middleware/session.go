package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/session"
)

// RequireSession admits a request only when the slot set by JWTAuth still
// holds a signed-in identity.  The session and identity are stored under
// SessionKey and UserKey.  A token whose slot was logged out is refused.
func RequireSession(m *session.Manager) echo.MiddlewareFunc {
	if m == nil {
		panic("nil session manager passed to RequireSession")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slot, ok := SlotFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			s, err := m.Get(ctx, slot)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
			}
			user, ok := s.Current()
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
			}
			c.Set(SessionKey, s)
			c.Set(UserKey, user)
			return next(c)
		}
	}
}
