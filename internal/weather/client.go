// Package weather relays location queries to OpenWeather.  The API key
// stays server-side; callers only see the upstream payload or an error.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// FallbackMessage is reported when the upstream fails without a message.
	FallbackMessage = "City not found"

	maxBodyBytes = 1 << 20
)

var (
	// ErrNoAPIKey is returned before any request is made when no key is set.
	ErrNoAPIKey = errors.New("API key not configured")
	// ErrRelayFailed wraps transport and decode failures.
	ErrRelayFailed = errors.New("weather relay failed")
)

// UpstreamError is a non-2xx answer from the provider.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Client issues one request per call: no retry and no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds a client.  An empty baseURL selects DefaultBaseURL and a
// nil httpClient gets a 10s timeout.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (c *Client) endpoint(kind Kind, q Query) string {
	v := q.values()
	v.Set("units", "metric")
	v.Set("appid", c.apiKey)
	return c.baseURL + kind.path() + "?" + v.Encode()
}

// Relay returns the upstream body unchanged.
func (c *Client) Relay(ctx context.Context, kind Kind, q Query) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(kind, q), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRelayFailed, redact(err.Error(), c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelayFailed, redact(err.Error(), c.apiKey))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRelayFailed, err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{StatusCode: res.StatusCode, Message: upstreamMessage(body)}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: upstream returned invalid JSON", ErrRelayFailed)
	}
	return json.RawMessage(body), nil
}

// FetchCurrent returns current conditions for q.
func (c *Client) FetchCurrent(ctx context.Context, q Query) (Current, error) {
	var out Current
	err := c.fetch(ctx, KindCurrent, q, &out)
	return out, err
}

// FetchForecast returns the 3-hourly forecast for q.
func (c *Client) FetchForecast(ctx context.Context, q Query) (Forecast, error) {
	var out Forecast
	err := c.fetch(ctx, KindForecast, q, &out)
	return out, err
}

func (c *Client) fetch(ctx context.Context, kind Kind, q Query, out any) error {
	raw, err := c.Relay(ctx, kind, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrRelayFailed, kind, err)
	}
	return nil
}

func upstreamMessage(body []byte) string {
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return FallbackMessage
	}
	if s, ok := payload.Message.(string); ok && s != "" {
		return s
	}
	return FallbackMessage
}

// redact keeps the key, raw or query-escaped, out of errors that quote the URL.
func redact(msg, key string) string {
	if key == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(key), "***")
	return strings.ReplaceAll(msg, key, "***")
}
