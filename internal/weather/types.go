package weather

import "strings"

// Readings are in metric units as requested from the upstream.
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like,omitempty"`
	Humidity  int     `json:"humidity,omitempty"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Wind struct {
	Speed float64 `json:"speed"` // m/s
}

type Sys struct {
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
	Country string `json:"country"`
}

// Current is the current-conditions payload.
type Current struct {
	Name       string      `json:"name"`
	Main       Main        `json:"main"`
	Weather    []Condition `json:"weather"`
	Wind       Wind        `json:"wind"`
	Sys        Sys         `json:"sys"`
	Visibility int         `json:"visibility"` // metres
}

// ForecastEntry is one 3-hourly forecast slot.
type ForecastEntry struct {
	Dt      int64       `json:"dt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
	DtTxt   string      `json:"dt_txt"`
}

type City struct {
	Name string `json:"name"`
}

// Forecast is the 5-day forecast payload.
type Forecast struct {
	List []ForecastEntry `json:"list"`
	City City            `json:"city"`
}

// DailySlot marks the entry kept per day in the daily digest.
const DailySlot = "12:00:00"

// MaxDaily caps the daily digest.
const MaxDaily = 5

// Daily keeps the noon entry of each day, at most MaxDaily of them.
func (f Forecast) Daily() []ForecastEntry {
	out := make([]ForecastEntry, 0, MaxDaily)
	for _, e := range f.List {
		if len(out) == MaxDaily {
			break
		}
		if strings.Contains(e.DtTxt, DailySlot) {
			out = append(out, e)
		}
	}
	return out
}

// ToFahrenheit converts a Celsius reading.
func ToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func (m Main) fahrenheit() Main {
	m.Temp = ToFahrenheit(m.Temp)
	m.FeelsLike = ToFahrenheit(m.FeelsLike)
	m.TempMin = ToFahrenheit(m.TempMin)
	m.TempMax = ToFahrenheit(m.TempMax)
	return m
}
