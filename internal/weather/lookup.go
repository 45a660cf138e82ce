package weather

import (
	"context"
	"sync"
)

// Fetcher is the part of Client that Lookup needs.
type Fetcher interface {
	FetchCurrent(ctx context.Context, q Query) (Current, error)
	FetchForecast(ctx context.Context, q Query) (Forecast, error)
}

// Report joins current conditions and the forecast for one location.
type Report struct {
	Current  Current         `json:"current"`
	Forecast Forecast        `json:"forecast"`
	Daily    []ForecastEntry `json:"daily"`
	Unit     string          `json:"unit"`
}

// Lookup fetches current conditions and the forecast concurrently.  Both
// calls run to completion; when either fails the current call's error is
// reported in preference to the forecast's.
func Lookup(ctx context.Context, f Fetcher, q Query) (Report, error) {
	if err := q.Validate(); err != nil {
		return Report{}, err
	}

	var (
		wg            sync.WaitGroup
		cur           Current
		fc            Forecast
		curErr, fcErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, curErr = f.FetchCurrent(ctx, q)
	}()
	go func() {
		defer wg.Done()
		fc, fcErr = f.FetchForecast(ctx, q)
	}()
	wg.Wait()

	if curErr != nil {
		return Report{}, curErr
	}
	if fcErr != nil {
		return Report{}, fcErr
	}
	return Report{Current: cur, Forecast: fc, Daily: fc.Daily(), Unit: "C"}, nil
}

// Fahrenheit returns a copy of r with every temperature converted.
func (r Report) Fahrenheit() Report {
	if r.Unit == "F" {
		return r
	}
	r.Current.Main = r.Current.Main.fahrenheit()
	list := make([]ForecastEntry, len(r.Forecast.List))
	for i, e := range r.Forecast.List {
		e.Main = e.Main.fahrenheit()
		list[i] = e
	}
	r.Forecast.List = list
	r.Daily = r.Forecast.Daily()
	r.Unit = "F"
	return r
}
