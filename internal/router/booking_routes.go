package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/handler"
)

// RegisterBooking registers the booking flow under /v1/booking.  The
// group inherits session checks from g; mutations are rate limited.
func RegisterBooking(g *echo.Group, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
	b := g.Group("/booking")
	b.GET("", h.Get)
	b.DELETE("", h.Reset)
	b.POST("/movie", h.ChooseMovie, limit)
	b.POST("/show", h.ChooseShow, limit)
	b.POST("/date", h.ChooseDate, limit)
	b.GET("/seats", h.Seats)
	b.POST("/seats/:seat/toggle", h.ToggleSeat, limit)
	b.GET("/summary", h.Summary)
	b.POST("/confirm", h.Confirm, limit)
	b.GET("/receipt", h.Receipt)
	b.GET("/receipt/qr", h.ReceiptQR)
}
