package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/cinebook/internal/handler"    // handlers for each route group
	"github.com/iliyamo/cinebook/internal/middleware" // JWT, session, cache and rate-limit middleware
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login, logout and /v1/me.  Login is open and rate
// limited; logout needs only a valid token so it stays idempotent; /v1/me
// needs a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit, live echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login, limit)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret), live)
}

// RegisterBrowse registers the catalog routes.  The list endpoints are
// static data and go through the response cache; the hero slide changes
// every few seconds and is never cached.
func RegisterBrowse(g *echo.Group, b *handler.BrowseHandler, cache echo.MiddlewareFunc) {
	g.GET("/hero", b.Hero)
	g.GET("/movies", b.Movies, cache)
	g.GET("/movies/:id", b.Movie)
	g.GET("/theatres", b.Theatres, cache)
}
