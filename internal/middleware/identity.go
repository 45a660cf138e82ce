package middleware

// Context keys shared between the middleware and handlers, with typed
// accessors.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/session"
)

const (
	SlotKey    = "slot"
	SessionKey = "session"
	UserKey    = "user"
)

// SlotFrom returns the session slot set by JWTAuth.
func SlotFrom(c echo.Context) (string, bool) {
	s, ok := c.Get(SlotKey).(string)
	return s, ok && s != ""
}

// SessionFrom returns the session set by RequireSession.
func SessionFrom(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(SessionKey).(*session.Session)
	return s, ok && s != nil
}

// UserFrom returns the identity set by RequireSession.
func UserFrom(c echo.Context) (session.Identity, bool) {
	u, ok := c.Get(UserKey).(session.Identity)
	return u, ok
}

// clientID identifies the caller for rate limiting: the slot when there is
// one, otherwise "anon".
func clientID(c echo.Context) string {
	if s, ok := SlotFrom(c); ok {
		return s
	}
	return "anon"
}
