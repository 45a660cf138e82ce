// Package queue defines the booking event carried over RabbitMQ and the
// consumer that records it.
package queue

import (
	"time"

	"github.com/iliyamo/cinebook/internal/model"
)

// BookingQueue is the durable queue confirmed bookings are published to.
const BookingQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a draft is confirmed.  It carries
// everything a consumer needs to log or notify without asking the service.
type BookingConfirmedEvent struct {
	ReceiptID   string   `json:"receipt_id"`
	Email       string   `json:"email"`
	MovieID     string   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	TheatreID   string   `json:"theatre_id"`
	TheatreName string   `json:"theatre_name"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	ShowTime    string   `json:"show_time"`
	SeatLabels  []string `json:"seats"`
	TotalPrice  int      `json:"total_price"`
	ServiceFee  int      `json:"service_fee"`
	GrandTotal  int      `json:"grand_total"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// NewBookingConfirmed builds the event for a receipt issued to email.
func NewBookingConfirmed(r model.Receipt, email string) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		ReceiptID:   r.ID,
		Email:       email,
		MovieID:     r.Movie.ID,
		MovieTitle:  r.Movie.Title,
		TheatreID:   r.Theatre.ID,
		TheatreName: r.Theatre.Name,
		Location:    r.Theatre.Location,
		Date:        r.Date,
		ShowTime:    r.Time,
		SeatLabels:  append([]string(nil), r.Seats...),
		TotalPrice:  r.TotalPrice,
		ServiceFee:  r.ServiceFee,
		GrandTotal:  r.GrandTotal,
		ConfirmedAt: r.ConfirmedAt.UTC().Format(time.RFC3339),
	}
}
