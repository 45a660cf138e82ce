package weather

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	cur    Current
	fc     Forecast
	curErr error
	fcErr  error
}

func (s *stubFetcher) FetchCurrent(context.Context, Query) (Current, error) {
	return s.cur, s.curErr
}

func (s *stubFetcher) FetchForecast(context.Context, Query) (Forecast, error) {
	return s.fc, s.fcErr
}

func TestLookup_Joins(t *testing.T) {
	c := newUpstream(t, okUpstream)
	r, err := Lookup(context.Background(), c, CityQuery("Mumbai"))
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", r.Current.Name)
	assert.Len(t, r.Forecast.List, 3)
	require.Len(t, r.Daily, 2)
	assert.Equal(t, "2026-04-10 12:00:00", r.Daily[0].DtTxt)
	assert.Equal(t, "C", r.Unit)
}

func TestLookup_PrefersCurrentError(t *testing.T) {
	curErr := errors.New("current down")
	fcErr := errors.New("forecast down")

	_, err := Lookup(context.Background(), &stubFetcher{curErr: curErr, fcErr: fcErr}, CityQuery("x"))
	assert.ErrorIs(t, err, curErr)

	_, err = Lookup(context.Background(), &stubFetcher{fcErr: fcErr}, CityQuery("x"))
	assert.ErrorIs(t, err, fcErr)
}

func TestLookup_InvalidQuery(t *testing.T) {
	_, err := Lookup(context.Background(), &stubFetcher{}, Query{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDaily_CapsAtFive(t *testing.T) {
	var f Forecast
	for i := 0; i < 40; i++ {
		txt := "2026-04-10 09:00:00"
		if i%8 == 4 {
			txt = "2026-04-10 12:00:00"
		}
		f.List = append(f.List, ForecastEntry{Dt: int64(i), DtTxt: txt})
	}
	f.List = append(f.List, ForecastEntry{Dt: 99, DtTxt: "2026-04-16 12:00:00"})

	d := f.Daily()
	require.Len(t, d, MaxDaily)
	assert.Equal(t, int64(4), d[0].Dt)
	assert.Equal(t, int64(36), d[4].Dt)
}

func TestDaily_Empty(t *testing.T) {
	assert.Empty(t, Forecast{}.Daily())
}

func TestToFahrenheit(t *testing.T) {
	assert.InDelta(t, 32.0, ToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, ToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, ToFahrenheit(-40), 1e-9)
}

func TestReport_Fahrenheit(t *testing.T) {
	r := Report{
		Current:  Current{Main: Main{Temp: 0, TempMax: 100}},
		Forecast: Forecast{List: []ForecastEntry{{DtTxt: "x 12:00:00", Main: Main{Temp: 10}}}},
		Unit:     "C",
	}
	f := r.Fahrenheit()
	assert.Equal(t, "F", f.Unit)
	assert.InDelta(t, 32.0, f.Current.Main.Temp, 1e-9)
	assert.InDelta(t, 212.0, f.Current.Main.TempMax, 1e-9)
	assert.InDelta(t, 50.0, f.Daily[0].Main.Temp, 1e-9)
	assert.InDelta(t, 10.0, r.Forecast.List[0].Main.Temp, 1e-9, "original untouched")
	assert.Equal(t, f, f.Fahrenheit())
}

func TestTracker_LastRequestWins(t *testing.T) {
	var tr Tracker
	_, ok := tr.Latest()
	assert.False(t, ok)

	slow := tr.Begin()
	fast := tr.Begin()
	assert.True(t, tr.Commit(fast, Report{Current: Current{Name: "Pune"}}))
	assert.False(t, tr.IsLatest(slow))
	assert.False(t, tr.Commit(slow, Report{Current: Current{Name: "Delhi"}}))

	got, ok := tr.Latest()
	require.True(t, ok)
	assert.Equal(t, "Pune", got.Current.Name)
}

func TestTracker_Concurrent(t *testing.T) {
	var tr Tracker
	var wg sync.WaitGroup
	tickets := make(chan Ticket, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- tr.Begin()
		}()
	}
	wg.Wait()
	close(tickets)

	seen := map[Ticket]bool{}
	var committed int
	for tk := range tickets {
		assert.False(t, seen[tk])
		seen[tk] = true
		if tr.Commit(tk, Report{}) {
			committed++
		}
	}
	assert.Equal(t, 1, committed)
}
