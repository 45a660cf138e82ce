package booking

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinebook/internal/catalog"
	"github.com/iliyamo/cinebook/internal/seatmap"
)

func newTestDesk(seed int64) *Desk {
	return NewDesk(catalog.New(), rand.New(rand.NewSource(seed)), func() time.Time { return confirmAt })
}

func openDesk(t *testing.T, seed int64) (*Desk, SeatView) {
	t.Helper()
	d := newTestDesk(seed)
	_, err := d.ChooseMovie("3")
	require.NoError(t, err)
	_, err = d.ChooseShow("t2", "2:30 PM")
	require.NoError(t, err)
	_, err = d.ChooseDate("2026-04-10")
	require.NoError(t, err)
	view, err := d.OpenSeatMap()
	require.NoError(t, err)
	return d, view
}

func freeSeats(view SeatView) []string {
	var out []string
	for _, r := range view.Rows {
		for _, s := range r.Seats {
			if s.Status != seatmap.Booked {
				out = append(out, s.ID)
			}
		}
	}
	return out
}

func TestDesk_RejectsBookedSeat(t *testing.T) {
	d, view := openDesk(t, 11)
	require.NotEmpty(t, view.Booked)

	_, snap, err := d.Toggle(view.Booked[0])
	assert.ErrorIs(t, err, ErrSeatBooked)
	assert.Empty(t, snap.Seats)
}

func TestDesk_RejectsUnknownSeat(t *testing.T) {
	d, _ := openDesk(t, 11)
	for _, s := range []string{"Z1", "A13", "", "A0"} {
		_, _, err := d.Toggle(s)
		assert.ErrorIs(t, err, ErrUnknownSeat, s)
	}
}

func TestDesk_ToggleParityProperty(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d, view := openDesk(t, seed)
		booked := map[string]bool{}
		for _, b := range view.Booked {
			booked[b] = true
		}
		counts := map[string]int{}
		rng := rand.New(rand.NewSource(seed + 1000))
		for i := 0; i < 200; i++ {
			id := seatmap.SeatID(rng.Intn(8), rng.Intn(12)+1)
			_, _, err := d.Toggle(id)
			if booked[id] {
				assert.ErrorIs(t, err, ErrSeatBooked)
				continue
			}
			require.NoError(t, err)
			counts[id]++
		}
		got := map[string]bool{}
		for _, s := range d.Snapshot().Seats {
			assert.False(t, got[s], "duplicate seat %s", s)
			got[s] = true
		}
		for id, n := range counts {
			assert.Equal(t, n%2 == 1, got[id], "seed %d seat %s toggled %d times", seed, id, n)
		}
		for id := range got {
			assert.False(t, booked[id])
		}
	}
}

func TestDesk_SeededSeatMapReproducible(t *testing.T) {
	_, a := openDesk(t, 5)
	_, b := openDesk(t, 5)
	assert.Equal(t, a.Booked, b.Booked)
}

func TestDesk_RevisitRegeneratesMap(t *testing.T) {
	d, first := openDesk(t, 5)
	second, err := d.OpenSeatMap()
	require.NoError(t, err)
	assert.NotEqual(t, first.Booked, second.Booked)

	again, err := d.SeatMap()
	require.NoError(t, err)
	assert.Equal(t, second.Booked, again.Booked, "SeatMap does not redraw")
}

func TestDesk_ToggleNeedsOpenMap(t *testing.T) {
	d := newTestDesk(1)
	_, _, err := d.Toggle("A1")
	assert.ErrorIs(t, err, ErrNoSeatMap)

	_, err = d.OpenSeatMap()
	assert.ErrorIs(t, err, ErrNoShow)
}

func TestDesk_ChooseValidatesCatalog(t *testing.T) {
	d := newTestDesk(1)
	_, err := d.ChooseMovie("99")
	assert.ErrorIs(t, err, catalog.ErrMovieNotFound)
	_, err = d.ChooseShow("t9", "10:00 AM")
	assert.ErrorIs(t, err, catalog.ErrTheatreNotFound)
	_, err = d.ChooseShow("t1", "3:00 AM")
	assert.ErrorIs(t, err, ErrUnknownShowTime)
	_, err = d.ChooseDate("10/04/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, Empty, d.Snapshot().State)
}

func TestDesk_ChangingShowClosesSeatMap(t *testing.T) {
	d, view := openDesk(t, 2)
	free := freeSeats(view)
	_, _, err := d.Toggle(free[0])
	require.NoError(t, err)

	snap, err := d.ChooseShow("t1", "5:00 PM")
	require.NoError(t, err)
	assert.Empty(t, snap.Seats)
	_, err = d.SeatMap()
	assert.ErrorIs(t, err, ErrNoSeatMap)
}

func TestDesk_SummaryAndConfirm(t *testing.T) {
	d, view := openDesk(t, 9)
	_, err := d.Summary()
	assert.ErrorIs(t, err, ErrIncomplete)

	free := freeSeats(view)
	for _, s := range free[:2] {
		_, _, err := d.Toggle(s)
		require.NoError(t, err)
	}
	sum, err := d.Summary()
	require.NoError(t, err)
	assert.Equal(t, 549, sum.Quote.Total)
	assert.Equal(t, "Wasteland Rising", sum.Movie.Title)

	_, err = d.LastReceipt()
	assert.ErrorIs(t, err, ErrNoReceipt)

	r, err := d.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 549, r.GrandTotal)
	assert.Equal(t, free[:2], r.Seats)

	snap := d.Reset()
	assert.Equal(t, Empty, snap.State)
	last, err := d.LastReceipt()
	require.NoError(t, err)
	assert.Equal(t, r.ID, last.ID)
}

func TestDesk_ConcurrentToggles(t *testing.T) {
	d, view := openDesk(t, 4)
	free := freeSeats(view)
	require.GreaterOrEqual(t, len(free), 10)

	var wg sync.WaitGroup
	for _, s := range free[:10] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, _ = d.Toggle(id)
		}(s)
	}
	wg.Wait()
	assert.Len(t, d.Snapshot().Seats, 10)
	assert.Equal(t, 2500, d.Snapshot().TotalPrice)
}

func TestNewDesk_PanicsWithoutCatalog(t *testing.T) {
	assert.Panics(t, func() { NewDesk(nil, nil, nil) })
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(func() *Desk { return newTestDesk(1) })
	a := reg.Desk("slot-a")
	assert.Same(t, a, reg.Desk("slot-a"))
	assert.NotSame(t, a, reg.Desk("slot-b"))
	assert.Equal(t, 2, reg.Len())

	reg.Drop("slot-a")
	reg.Drop("missing")
	assert.Equal(t, 1, reg.Len())
	assert.NotSame(t, a, reg.Desk("slot-a"))
}
