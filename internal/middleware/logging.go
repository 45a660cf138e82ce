package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/logger"
)

// RequestLogger reports method, route, status and latency of each request.
func RequestLogger(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			l.LogAPI(c.Request().Method, path, status, time.Since(start).Round(time.Microsecond))
			return err
		}
	}
}
