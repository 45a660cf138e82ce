package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/handler"
)

// RegisterWeatherRelay mounts the raw relay.  It is open to any caller,
// like the edge function it stands in for, and is neither cached nor rate
// limited.
func RegisterWeatherRelay(e *echo.Echo, w *handler.WeatherHandler) {
	e.POST("/functions/v1/weather", w.Relay)
	e.OPTIONS("/functions/v1/weather", w.Preflight)
}

// RegisterWeather mounts the joined lookup for signed-in users.
func RegisterWeather(g *echo.Group, w *handler.WeatherHandler) {
	g.GET("/weather", w.Lookup)
	g.GET("/weather/latest", w.Latest)
}
