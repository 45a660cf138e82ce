// Package booking holds the in-progress booking for a session.
//
// A Draft walks Empty → MovieChosen → TheatreChosen → DateChosen →
// SeatsChosen → Confirmed.  It has no knowledge of seat availability;
// Desk pairs a draft with the seat map of the current visit and is the
// type handlers talk to.
package booking

import (
	"time" // confirmation timestamps

	"github.com/google/uuid" // receipt identifiers

	"github.com/iliyamo/cinebook/internal/model"   // receipt and catalog types
	"github.com/iliyamo/cinebook/internal/pricing" // per-seat price and fee
)

// State names where a draft is in the booking flow.
type State string

const (
	Empty         State = "EMPTY"
	MovieChosen   State = "MOVIE_CHOSEN"
	TheatreChosen State = "THEATRE_CHOSEN"
	DateChosen    State = "DATE_CHOSEN"
	SeatsChosen   State = "SEATS_CHOSEN"
	Confirmed     State = "CONFIRMED"
	// Inconsistent means a later step is set while an earlier one is not,
	// e.g. a theatre chosen without a movie.  ChooseMovie or Reset recovers.
	Inconsistent State = "INCONSISTENT"
)

// Lookup resolves catalog ids when a draft is confirmed.
type Lookup interface {
	Movie(id string) (model.Movie, error)
	Theatre(id string) (model.Theatre, error)
}

// Draft is a single booking being assembled.  It is not safe for
// concurrent use; Desk serialises access.
type Draft struct {
	movieID   string
	theatreID string
	showTime  string
	date      string
	seats     []string
	confirmed bool
}

// NewDraft returns an empty draft.
func NewDraft() *Draft { return &Draft{} }

// ChooseMovie selects a movie and clears everything chosen after it.  It
// is accepted in every state, including Confirmed, where it starts a new
// booking.
func (d *Draft) ChooseMovie(movieID string) {
	*d = Draft{movieID: movieID}
}

// ChooseTheatreAndTime selects the show and clears the seat selection.
// Without a movie the draft becomes Inconsistent rather than failing.
func (d *Draft) ChooseTheatreAndTime(theatreID, showTime string) error {
	if d.confirmed {
		return ErrConfirmed
	}
	d.theatreID = theatreID
	d.showTime = showTime
	d.seats = nil
	return nil
}

// ChooseDate sets the show date; the seat selection is kept.
func (d *Draft) ChooseDate(date string) error {
	if d.confirmed {
		return ErrConfirmed
	}
	d.date = date
	return nil
}

// ToggleSeat adds the seat if absent and removes it if present.  It
// reports whether the seat is selected afterwards.  Availability is the
// caller's concern.
func (d *Draft) ToggleSeat(seatID string) (bool, error) {
	if d.confirmed {
		return false, ErrConfirmed
	}
	for i, s := range d.seats {
		if s == seatID {
			d.seats = append(d.seats[:i:i], d.seats[i+1:]...)
			return false, nil
		}
	}
	d.seats = append(d.seats, seatID)
	return true, nil
}

// Seats returns the selection in the order it was made.
func (d *Draft) Seats() []string {
	return append([]string{}, d.seats...)
}

// TotalPrice is seats × pricing.PerSeat, computed on every call.
func (d *Draft) TotalPrice() int {
	return pricing.Subtotal(len(d.seats))
}

// State derives the flow position from the fields that are set.
func (d *Draft) State() State {
	if d.confirmed {
		return Confirmed
	}
	steps := []bool{d.movieID != "", d.theatreID != "" && d.showTime != "", d.date != "", len(d.seats) > 0}
	states := []State{Empty, MovieChosen, TheatreChosen, DateChosen, SeatsChosen}
	k := 0
	for k < len(steps) && steps[k] {
		k++
	}
	for _, later := range steps[k:] {
		if later {
			return Inconsistent
		}
	}
	return states[k]
}

// Ready reports whether Confirm would accept the draft.
func (d *Draft) Ready() bool {
	return !d.confirmed && d.movieID != "" && d.theatreID != "" && d.showTime != "" && d.date != "" && len(d.seats) > 0
}

// Confirm finalises the draft and returns the receipt.  An incomplete
// draft yields ErrIncomplete and is not modified; catalog misses are
// passed through from lookup.
func (d *Draft) Confirm(lookup Lookup, at time.Time) (model.Receipt, error) {
	if d.confirmed {
		return model.Receipt{}, ErrConfirmed
	}
	if !d.Ready() {
		return model.Receipt{}, ErrIncomplete
	}
	movie, err := lookup.Movie(d.movieID)
	if err != nil {
		return model.Receipt{}, err
	}
	theatre, err := lookup.Theatre(d.theatreID)
	if err != nil {
		return model.Receipt{}, err
	}
	quote, err := pricing.Price(len(d.seats))
	if err != nil {
		return model.Receipt{}, err
	}
	d.confirmed = true
	return model.Receipt{
		ID:          uuid.NewString(),
		Movie:       movie,
		Theatre:     theatre,
		Date:        d.date,
		Time:        d.showTime,
		Seats:       d.Seats(),
		TotalPrice:  quote.Subtotal,
		ServiceFee:  quote.Fee,
		GrandTotal:  quote.Total,
		ConfirmedAt: at.UTC(),
	}, nil
}

// Reset returns the draft to Empty.
func (d *Draft) Reset() { *d = Draft{} }

// Snapshot is a read-only copy of a draft for display.
type Snapshot struct {
	State      State    `json:"state"`
	MovieID    string   `json:"movie_id,omitempty"`
	TheatreID  string   `json:"theatre_id,omitempty"`
	ShowTime   string   `json:"show_time,omitempty"`
	Date       string   `json:"date,omitempty"`
	Seats      []string `json:"seats"`
	SeatPrice  int      `json:"seat_price"`
	TotalPrice int      `json:"total_price"`
}

// Snapshot copies the draft's current values.
func (d *Draft) Snapshot() Snapshot {
	return Snapshot{
		State:      d.State(),
		MovieID:    d.movieID,
		TheatreID:  d.theatreID,
		ShowTime:   d.showTime,
		Date:       d.date,
		Seats:      d.Seats(),
		SeatPrice:  pricing.PerSeat,
		TotalPrice: d.TotalPrice(),
	}
}
