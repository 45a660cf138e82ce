package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/booking"
	"github.com/iliyamo/cinebook/internal/catalog"
	"github.com/iliyamo/cinebook/internal/logger"
	"github.com/iliyamo/cinebook/internal/middleware"
	"github.com/iliyamo/cinebook/internal/queue"
	"github.com/iliyamo/cinebook/internal/receipt"
	"github.com/iliyamo/cinebook/internal/service"
)

// BookingHandler drives the per-session booking desk.  All methods assume
// JWTAuth and RequireSession have run.
type BookingHandler struct {
	Desks     *booking.Registry
	Publisher service.BookingPublisher
	Log       *logger.Logger
}

func NewBookingHandler(desks *booking.Registry, pub service.BookingPublisher, log *logger.Logger) *BookingHandler {
	if desks == nil {
		panic("nil registry passed to NewBookingHandler")
	}
	if pub == nil {
		pub = service.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BookingHandler{Desks: desks, Publisher: pub, Log: log}
}

func (h *BookingHandler) desk(c echo.Context) (*booking.Desk, string, bool) {
	slot, ok := middleware.SlotFrom(c)
	if !ok {
		return nil, "", false
	}
	return h.Desks.Desk(slot), slot, true
}

// bookingError maps desk errors to a status and message in one place.
func bookingError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrMovieNotFound), errors.Is(err, catalog.ErrTheatreNotFound):
		return notInCatalog(c, err)
	case errors.Is(err, booking.ErrNoReceipt):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrUnknownShowTime), errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrUnknownSeat):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrSeatBooked), errors.Is(err, booking.ErrConfirmed),
		errors.Is(err, booking.ErrIncomplete), errors.Is(err, booking.ErrNoShow),
		errors.Is(err, booking.ErrNoSeatMap):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		return c.JSON(status, echo.Map{"error": "booking error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
}

// Get returns the current draft.
func (h *BookingHandler) Get(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, d.Snapshot())
}

// ChooseMovie handles POST /v1/booking/movie {movie_id}.
func (h *BookingHandler) ChooseMovie(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	var body struct {
		MovieID string `json:"movie_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.MovieID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id is required"})
	}
	snap, err := d.ChooseMovie(strings.TrimSpace(body.MovieID))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// ChooseShow handles POST /v1/booking/show {theatre_id, time}.
func (h *BookingHandler) ChooseShow(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	var body struct {
		TheatreID string `json:"theatre_id"`
		Time      string `json:"time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TheatreID == "" || body.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theatre_id and time are required"})
	}
	snap, err := d.ChooseShow(body.TheatreID, body.Time)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// ChooseDate handles POST /v1/booking/date {date}.
func (h *BookingHandler) ChooseDate(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	snap, err := d.ChooseDate(strings.TrimSpace(body.Date))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// Seats opens a new seat-selection visit; every call redraws the booked set.
func (h *BookingHandler) Seats(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	view, err := d.OpenSeatMap()
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// ToggleSeat handles POST /v1/booking/seats/:seat/toggle.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	selected, snap, err := d.Toggle(c.Param("seat"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"selected": selected, "draft": snap})
}

func (h *BookingHandler) Summary(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	sum, err := d.Summary()
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// Confirm finalises the draft and announces it.  A publish failure is
// logged and does not fail the booking.
func (h *BookingHandler) Confirm(c echo.Context) error {
	d, slot, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	r, err := d.Confirm()
	if err != nil {
		return bookingError(c, err)
	}
	h.Log.LogBooking("CONFIRM", slot, fmt.Sprintf("%s %s seats=%v total=%d", r.ID, r.Movie.Title, r.Seats, r.GrandTotal))

	email := ""
	if u, ok := middleware.UserFrom(c); ok {
		email = u.Email
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Publisher.PublishBookingConfirmed(ctx, queue.NewBookingConfirmed(r, email)); err != nil {
		h.Log.Warn("BOOKING", fmt.Sprintf("booking %s not announced: %v", r.ID, err))
	}
	return c.JSON(http.StatusCreated, r)
}

// Receipt returns the last confirmed booking.
func (h *BookingHandler) Receipt(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	r, err := d.LastReceipt()
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// ReceiptQR renders the last confirmed booking as a PNG QR code.
func (h *BookingHandler) ReceiptQR(c echo.Context) error {
	d, _, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	r, err := d.LastReceipt()
	if err != nil {
		return bookingError(c, err)
	}
	png, err := receipt.QRCode(r)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "qr generation failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Reset abandons the draft (or acknowledges a confirmed one).
func (h *BookingHandler) Reset(c echo.Context) error {
	d, slot, ok := h.desk(c)
	if !ok {
		return unauthorized(c)
	}
	h.Log.LogBooking("RESET", slot, "draft cleared")
	return c.JSON(http.StatusOK, d.Reset())
}
