package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // status codes

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health answers "ok" for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
