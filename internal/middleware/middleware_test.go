package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinebook/internal/config"
	"github.com/iliyamo/cinebook/internal/logger"
	"github.com/iliyamo/cinebook/internal/session"
	"github.com/iliyamo/cinebook/internal/utils"
)

const secret = "test-secret"

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, slot string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, slot, 10)
	require.NoError(t, err)
	return tok.Token
}

func protectedEcho(m *session.Manager) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret), RequireSession(m))
	g.GET("/me", func(c echo.Context) error {
		u, ok := UserFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		if _, ok := SessionFrom(c); !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, u)
	})
	return e
}

func TestJWTAuth_RejectsMissingAndBadTokens(t *testing.T) {
	e := protectedEcho(session.NewManager(session.NewMemoryStore()))

	rec := do(e, http.MethodGet, "/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/v1/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())
}

func TestRequireSession(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(session.NewMemoryStore())
	e := protectedEcho(m)

	rec := do(e, http.MethodGet, "/v1/me", tokenFor(t, "slot-1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not signed in"}`, rec.Body.String())

	s, err := m.Get(ctx, "slot-1")
	require.NoError(t, err)
	_, err = s.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	rec = do(e, http.MethodGet, "/v1/me", tokenFor(t, "slot-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"alice@example.com","name":"alice"}`, rec.Body.String())

	require.NoError(t, s.Logout(ctx))
	rec = do(e, http.MethodGet, "/v1/me", tokenFor(t, "slot-1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token outlives logout but the slot is empty")
}

func TestRequireSession_PanicsWithoutManager(t *testing.T) {
	assert.Panics(t, func() { RequireSession(nil) })
}

func TestRedisCache_HitAfterMiss(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	var calls int32
	e := echo.New()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "c", MaxBodyBytes: 1 << 20}
	e.GET("/v1/movies/:id", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	}, NewRedisCache(cfg, rdb))

	first := do(e, http.MethodGet, "/v1/movies/1", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := do(e, http.MethodGet, "/v1/movies/1", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, echo.MIMEApplicationJSON, second.Header().Get(echo.HeaderContentType))

	other := do(e, http.MethodGet, "/v1/movies/2", "")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"), "params are part of the key")
	assert.Contains(t, other.Body.String(), `"2"`)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRedisCache_SkipsErrorsAndDisabled(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "c"}
	e := echo.New()
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}, NewRedisCache(cfg, rdb))
	do(e, http.MethodGet, "/missing", "")
	assert.Empty(t, mr.Keys())

	cfg.Enabled = false
	e.GET("/off", func(c echo.Context) error { return c.String(http.StatusOK, "x") }, NewRedisCache(cfg, rdb))
	rec := do(e, http.MethodGet, "/off", "")
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(201, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, 201, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestTokenBucket_Blocks(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl", KeyStrategy: "ip_route"}
	e := echo.New()
	e.POST("/v1/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, NewTokenBucket(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodPost, "/v1/auth/login", "")
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := do(e, http.MethodPost, "/v1/auth/login", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestTokenBucket_RedisDownLetsThrough(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	mr.Close()
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/x", "").Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/booking/confirm", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/booking/confirm")
	c.Set(SlotKey, "slot-9")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	assert.Equal(t, "rl:ip:10.0.0.1:user:slot-9:route:POST /v1/booking/confirm", buildRateKey(cfg, c))
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:slot-9", buildRateKey(cfg, c))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logger.NewWriter(&buf)))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do(e, http.MethodGet, "/healthz", "")
	do(e, http.MethodGet, "/nope", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "GET /healthz - 200")
	assert.Contains(t, lines[1], "- 404")
}
