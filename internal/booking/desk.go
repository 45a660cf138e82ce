package booking

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iliyamo/cinebook/internal/model"
	"github.com/iliyamo/cinebook/internal/pricing"
	"github.com/iliyamo/cinebook/internal/seatmap"
)

// Catalog is what a Desk needs from the catalog.
type Catalog interface {
	Lookup
	HasShowTime(theatreID, showTime string) bool
}

// Desk owns the single active draft of one session together with the seat
// map of the current seat-selection visit.  Requests for the same session
// can arrive concurrently, so every method holds the desk lock.
type Desk struct {
	mu      sync.Mutex
	catalog Catalog
	rng     *rand.Rand
	now     func() time.Time
	draft   *Draft
	seats   *seatmap.Map
	receipt *model.Receipt
}

// NewDesk builds a desk.  rng and now may be nil, in which case a
// clock-seeded source and time.Now are used.  A nil catalog is a wiring
// bug and panics.
func NewDesk(catalog Catalog, rng *rand.Rand, now func() time.Time) *Desk {
	if catalog == nil {
		panic("nil catalog passed to NewDesk")
	}
	if rng == nil {
		rng = seatmap.NewSource()
	}
	if now == nil {
		now = time.Now
	}
	return &Desk{catalog: catalog, rng: rng, now: now, draft: NewDraft()}
}

// Snapshot returns the current draft.
func (d *Desk) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft.Snapshot()
}

// ChooseMovie validates the id against the catalog and starts the draft over.
func (d *Desk) ChooseMovie(movieID string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.catalog.Movie(movieID); err != nil {
		return d.draft.Snapshot(), err
	}
	d.draft.ChooseMovie(movieID)
	d.seats = nil
	return d.draft.Snapshot(), nil
}

// ChooseShow selects theatre and time.  The time must be one the theatre lists.
func (d *Desk) ChooseShow(theatreID, showTime string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.catalog.Theatre(theatreID); err != nil {
		return d.draft.Snapshot(), err
	}
	if !d.catalog.HasShowTime(theatreID, showTime) {
		return d.draft.Snapshot(), ErrUnknownShowTime
	}
	if err := d.draft.ChooseTheatreAndTime(theatreID, showTime); err != nil {
		return d.draft.Snapshot(), err
	}
	d.seats = nil
	return d.draft.Snapshot(), nil
}

// ChooseDate sets the show date, which must be YYYY-MM-DD.
func (d *Desk) ChooseDate(date string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return d.draft.Snapshot(), ErrInvalidDate
	}
	if err := d.draft.ChooseDate(date); err != nil {
		return d.draft.Snapshot(), err
	}
	return d.draft.Snapshot(), nil
}

// SeatView is the seat-selection page: layout, current selection and price.
type SeatView struct {
	Draft  Snapshot      `json:"draft"`
	Rows   []seatmap.Row `json:"rows"`
	Booked []string      `json:"booked"`
}

// OpenSeatMap starts a seat-selection visit.  Each call draws a fresh seat
// map; the previous one is discarded.  Seats already selected stay in the
// draft even if the new map happens to mark them booked.
func (d *Desk) OpenSeatMap() (SeatView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := d.draft.Snapshot()
	if snap.MovieID == "" || snap.TheatreID == "" || snap.ShowTime == "" {
		return SeatView{Draft: snap}, ErrNoShow
	}
	if snap.State == Confirmed {
		return SeatView{Draft: snap}, ErrConfirmed
	}
	d.seats = seatmap.GenerateDefault(d.rng)
	return d.seatView(), nil
}

// SeatMap returns the open visit without regenerating it.
func (d *Desk) SeatMap() (SeatView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seats == nil {
		return SeatView{Draft: d.draft.Snapshot()}, ErrNoSeatMap
	}
	return d.seatView(), nil
}

func (d *Desk) seatView() SeatView {
	snap := d.draft.Snapshot()
	return SeatView{Draft: snap, Rows: d.seats.Rows(snap.Seats), Booked: d.seats.Booked()}
}

// Toggle flips a seat after checking it against the open seat map.  Booked
// and out-of-grid seats are rejected without touching the draft.
func (d *Desk) Toggle(raw string) (selected bool, snap Snapshot, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seats == nil {
		return false, d.draft.Snapshot(), ErrNoSeatMap
	}
	id, _, _, perr := seatmap.ParseSeat(raw)
	if perr != nil || !d.seats.Contains(id) {
		return false, d.draft.Snapshot(), ErrUnknownSeat
	}
	if d.seats.IsBooked(id) {
		return false, d.draft.Snapshot(), ErrSeatBooked
	}
	selected, err = d.draft.ToggleSeat(id)
	return selected, d.draft.Snapshot(), err
}

// Summary is the booking summary page.
type Summary struct {
	Draft   Snapshot      `json:"draft"`
	Movie   model.Movie   `json:"movie"`
	Theatre model.Theatre `json:"theatre"`
	Quote   pricing.Quote `json:"quote"`
}

// Summary resolves the draft for display.  It fails with ErrIncomplete
// when there is nothing to summarise, or with the catalog's not-found
// errors.
func (d *Desk) Summary() (Summary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := d.draft.Snapshot()
	if snap.MovieID == "" || snap.TheatreID == "" || len(snap.Seats) == 0 {
		return Summary{Draft: snap}, ErrIncomplete
	}
	movie, err := d.catalog.Movie(snap.MovieID)
	if err != nil {
		return Summary{Draft: snap}, err
	}
	theatre, err := d.catalog.Theatre(snap.TheatreID)
	if err != nil {
		return Summary{Draft: snap}, err
	}
	quote, err := pricing.Price(len(snap.Seats))
	if err != nil {
		return Summary{Draft: snap}, err
	}
	return Summary{Draft: snap, Movie: movie, Theatre: theatre, Quote: quote}, nil
}

// Confirm finalises the draft.  The receipt is kept so it can be shown
// again (or rendered as a QR code) after the draft is reset.
func (d *Desk) Confirm() (model.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, err := d.draft.Confirm(d.catalog, d.now())
	if err != nil {
		return model.Receipt{}, err
	}
	d.receipt = &r
	d.seats = nil
	return r, nil
}

// LastReceipt returns the most recent confirmed booking.
func (d *Desk) LastReceipt() (model.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.receipt == nil {
		return model.Receipt{}, ErrNoReceipt
	}
	return *d.receipt, nil
}

// Reset abandons or acknowledges the current draft.
func (d *Desk) Reset() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft.Reset()
	d.seats = nil
	return d.draft.Snapshot()
}
