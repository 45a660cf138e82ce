package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/logger"
	"github.com/iliyamo/cinebook/internal/middleware"
	"github.com/iliyamo/cinebook/internal/weather"
)

// relay CORS headers, sent on every relay response including errors.
var relayCORS = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
}

// lookupFailed is shown when the failure carries no upstream message.
const lookupFailed = "Failed to fetch weather data"

// WeatherClient is what the handler needs from weather.Client.
type WeatherClient interface {
	weather.Fetcher
	Relay(ctx context.Context, kind weather.Kind, q weather.Query) (json.RawMessage, error)
}

// WeatherHandler serves the raw relay and the joined lookup used by the
// weather page.  Lookups are tracked per slot so that only the newest of
// overlapping requests is answered with data.
type WeatherHandler struct {
	Client   WeatherClient
	Log      *logger.Logger
	trackers sync.Map // slot -> *weather.Tracker
}

func NewWeatherHandler(client WeatherClient, log *logger.Logger) *WeatherHandler {
	if client == nil {
		panic("nil client passed to NewWeatherHandler")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WeatherHandler{Client: client, Log: log}
}

func setCORS(c echo.Context) {
	for k, v := range relayCORS {
		c.Response().Header().Set(k, v)
	}
}

// Preflight answers OPTIONS on the relay.
func (h *WeatherHandler) Preflight(c echo.Context) error {
	setCORS(c)
	return c.NoContent(http.StatusOK)
}

type relayReq struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Type string   `json:"type"`
}

// Relay handles POST /functions/v1/weather.  The upstream body is passed
// through; upstream errors keep their status and message.  Transport and
// decode failures answer 500 with a fixed message and are only logged in
// detail.
func (h *WeatherHandler) Relay(c echo.Context) error {
	setCORS(c)
	var req relayReq
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid request body"})
	}
	q := weather.Query{City: strings.TrimSpace(req.City)}
	if q.City == "" {
		q.Lat, q.Lon = req.Lat, req.Lon
	}
	kind := weather.ParseKind(req.Type)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	raw, err := h.Client.Relay(ctx, kind, q)
	if err != nil {
		h.Log.LogWeather(string(kind), q.String(), err.Error())
		return weatherError(c, err, lookupFailed)
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// weatherError maps relay errors; fallback is used for failures that have
// no upstream status.
func weatherError(c echo.Context, err error, fallback string) error {
	var up *weather.UpstreamError
	switch {
	case errors.As(err, &up):
		return c.JSON(up.StatusCode, echo.Map{"error": up.Message})
	case errors.Is(err, weather.ErrNoAPIKey):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": weather.ErrNoAPIKey.Error()})
	case errors.Is(err, weather.ErrInvalidQuery):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": weather.ErrInvalidQuery.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}

// parseQuery reads ?city= or ?lat=&lon=; no location means DefaultCity.
func parseQuery(c echo.Context) (weather.Query, error) {
	if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
		return weather.CityQuery(city), nil
	}
	latS, lonS := c.QueryParam("lat"), c.QueryParam("lon")
	if latS == "" && lonS == "" {
		return weather.CityQuery(weather.DefaultCity), nil
	}
	lat, err1 := strconv.ParseFloat(latS, 64)
	lon, err2 := strconv.ParseFloat(lonS, 64)
	if err1 != nil || err2 != nil {
		return weather.Query{}, weather.ErrInvalidQuery
	}
	return weather.CoordQuery(lat, lon), nil
}

func (h *WeatherHandler) tracker(c echo.Context) *weather.Tracker {
	slot, ok := middleware.SlotFrom(c)
	if !ok {
		slot = "anon"
	}
	t, _ := h.trackers.LoadOrStore(slot, &weather.Tracker{})
	return t.(*weather.Tracker)
}

// Lookup handles GET /v1/weather.  If a newer lookup from the same session
// starts while this one is in flight, this one answers 409 and its result
// is dropped.
func (h *WeatherHandler) Lookup(c echo.Context) error {
	q, err := parseQuery(c)
	if err != nil {
		return weatherError(c, err, lookupFailed)
	}
	tr := h.tracker(c)
	tk := tr.Begin()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	report, err := weather.Lookup(ctx, h.Client, q)
	if !tr.IsLatest(tk) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "superseded by a newer request"})
	}
	if err != nil {
		h.Log.LogWeather("lookup", q.String(), err.Error())
		return weatherError(c, err, lookupFailed)
	}
	tr.Commit(tk, report)
	h.Log.LogWeather("lookup", q.String(), report.Current.Name)
	if strings.EqualFold(c.QueryParam("unit"), "F") {
		report = report.Fahrenheit()
	}
	return c.JSON(http.StatusOK, report)
}

// Latest returns the session's last successful lookup.
func (h *WeatherHandler) Latest(c echo.Context) error {
	r, ok := h.tracker(c).Latest()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no weather looked up yet"})
	}
	if strings.EqualFold(c.QueryParam("unit"), "F") {
		r = r.Fahrenheit()
	}
	return c.JSON(http.StatusOK, r)
}

// Forget drops the tracker of slot at logout.
func (h *WeatherHandler) Forget(slot string) {
	h.trackers.Delete(slot)
}
