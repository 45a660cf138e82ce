// Package pricing computes ticket totals for a booking.  All amounts are
// whole rupees; catalog prices are never fractional.
package pricing

import "errors"

const (
	// PerSeat is the flat price charged for every selected seat.
	PerSeat = 250
	// ServiceFee is the convenience fee added once per booking.
	ServiceFee = 49
)

// ErrNegativeSeatCount is returned when a quote is requested for fewer than zero seats.
var ErrNegativeSeatCount = errors.New("seat count must not be negative")

// Quote is the breakdown shown on the booking summary.
type Quote struct {
	Seats    int `json:"seats"`
	PerSeat  int `json:"per_seat"`
	Subtotal int `json:"subtotal"`
	Fee      int `json:"fee"`
	Total    int `json:"total"`
}

// Price returns the quote for seatCount seats at the fixed per-seat price
// plus the service fee.
func Price(seatCount int) (Quote, error) {
	if seatCount < 0 {
		return Quote{}, ErrNegativeSeatCount
	}
	subtotal := seatCount * PerSeat
	return Quote{
		Seats:    seatCount,
		PerSeat:  PerSeat,
		Subtotal: subtotal,
		Fee:      ServiceFee,
		Total:    subtotal + ServiceFee,
	}, nil
}

// Subtotal is the seat-only amount (no fee) for n seats.  Negative counts
// are treated as zero.
func Subtotal(n int) int {
	if n < 0 {
		return 0
	}
	return n * PerSeat
}
