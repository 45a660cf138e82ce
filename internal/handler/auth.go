package handler

import (
	"context"  // bounded calls to the session store
	"errors"   // errors.Is for sentinel mapping
	"net/http" // HTTP status codes
	"strings"  // bearer parsing and input trimming
	"time"     // timeouts

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/cinebook/internal/booking"    // per-slot desks dropped on logout
	"github.com/iliyamo/cinebook/internal/config"     // app configuration
	"github.com/iliyamo/cinebook/internal/logger"     // session logging
	"github.com/iliyamo/cinebook/internal/middleware" // context accessors
	"github.com/iliyamo/cinebook/internal/session"    // identities and slots
	"github.com/iliyamo/cinebook/internal/utils"      // token issuing
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Sessions *session.Manager
	Desks    *booking.Registry
	Log      *logger.Logger
	// OnLogout, if set, runs after a slot is cleared.
	OnLogout func(slot string)
}

func NewAuthHandler(cfg config.Config, sessions *session.Manager, desks *booking.Registry, log *logger.Logger) *AuthHandler {
	if sessions == nil || desks == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{Cfg: cfg, Sessions: sessions, Desks: desks, Log: log}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User   session.Identity  `json:"user"`
	Access utils.AccessToken `json:"access"`
}

// Login signs in with any non-empty email and password.  A caller that
// already holds a valid token keeps its slot (and its booking draft) and
// the new identity replaces the old one; otherwise a fresh slot is made.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)

	slot := h.bearerSlot(c)
	if slot == "" {
		slot = h.Sessions.NewSlot()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Sessions.Get(ctx, slot)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
	}
	user, err := s.Login(ctx, req.Email, req.Password)
	if errors.Is(err, session.ErrMissingCredentials) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if err != nil {
		h.Log.Error("SESSION", err.Error())
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not persist session"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, slot, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	h.Log.LogSession("LOGIN", slot, user.Email)
	return c.JSON(http.StatusOK, authResp{User: user, Access: tok})
}

// bearerSlot returns the slot of a valid bearer token, or "".
func (h *AuthHandler) bearerSlot(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	slot, err := utils.ParseAccessToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return ""
	}
	return slot
}

// Logout clears the slot and drops its booking draft.  It only needs a
// valid token, so logging out twice answers 204 both times.
func (h *AuthHandler) Logout(c echo.Context) error {
	slot, ok := middleware.SlotFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Sessions.Get(ctx, slot)
	if err == nil {
		err = s.Logout(ctx)
	}
	if err != nil {
		h.Log.Error("SESSION", err.Error())
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
	}
	h.Desks.Drop(slot)
	h.Sessions.Forget(slot)
	if h.OnLogout != nil {
		h.OnLogout(slot)
	}
	h.Log.LogSession("LOGOUT", slot, "signed out")
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in identity.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
	}
	return c.JSON(http.StatusOK, user)
}
