package weather

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// DefaultCity is looked up when a client asks for weather without a location.
const DefaultCity = "Mumbai"

// ErrInvalidQuery is returned when a query names neither a city nor a
// complete coordinate pair, or names both.
var ErrInvalidQuery = errors.New("query needs a city or lat and lon")

// Kind selects the upstream endpoint.
type Kind string

const (
	KindCurrent  Kind = "current"
	KindForecast Kind = "forecast"
)

// ParseKind maps the relay's "type" field.  Anything but "forecast" is a
// current-conditions request.
func ParseKind(s string) Kind {
	if s == string(KindForecast) {
		return KindForecast
	}
	return KindCurrent
}

func (k Kind) path() string {
	if k == KindForecast {
		return "/forecast"
	}
	return "/weather"
}

// Query is a location: a free-text city or a latitude/longitude pair.
type Query struct {
	City string   `json:"city,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

func CityQuery(name string) Query { return Query{City: name} }

func CoordQuery(lat, lon float64) Query { return Query{Lat: &lat, Lon: &lon} }

// Validate checks that exactly one location form is set.
func (q Query) Validate() error {
	city := strings.TrimSpace(q.City) != ""
	coords := q.Lat != nil && q.Lon != nil
	if city == coords {
		return ErrInvalidQuery
	}
	return nil
}

// values is the location part of the upstream query string.
func (q Query) values() url.Values {
	v := url.Values{}
	if city := strings.TrimSpace(q.City); city != "" {
		v.Set("q", city)
		return v
	}
	v.Set("lat", formatCoord(q.Lat))
	v.Set("lon", formatCoord(q.Lon))
	return v
}

func (q Query) String() string {
	if q.City != "" {
		return q.City
	}
	return formatCoord(q.Lat) + "," + formatCoord(q.Lon)
}

func formatCoord(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
