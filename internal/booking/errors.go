package booking

import "errors"

var (
	// ErrIncomplete is returned by Confirm when the movie, theatre, time,
	// date or seats are missing.  The draft is left unchanged.
	ErrIncomplete = errors.New("booking is incomplete")
	// ErrConfirmed is returned when a confirmed draft is mutated before Reset.
	ErrConfirmed = errors.New("booking already confirmed")
	// ErrSeatBooked is returned when a toggle targets a seat marked booked
	// in the current seat map.
	ErrSeatBooked = errors.New("seat is already booked")
	// ErrUnknownSeat is returned for identifiers outside the seat grid.
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrNoSeatMap is returned when seats are toggled before a seat map
	// has been opened for the chosen show.
	ErrNoSeatMap = errors.New("no seat map open")
	// ErrNoShow is returned when a seat map is requested before a movie
	// and a theatre/time have been chosen.
	ErrNoShow = errors.New("movie and show must be chosen first")
	// ErrUnknownShowTime is returned when a theatre does not list the time.
	ErrUnknownShowTime = errors.New("theatre has no such showtime")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNoReceipt is returned when no booking has been confirmed yet.
	ErrNoReceipt = errors.New("no confirmed booking")
)
