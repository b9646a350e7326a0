package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/visits-api/internal/config"
)

func newLimitedEcho(cfg config.RateLimitConfig) *echo.Echo {
	return newRedisLimitedEcho(cfg, nil)
}

func newRedisLimitedEcho(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.Use(NewRateLimiter(cfg, rdb, zap.NewNop()))
	e.GET("/health", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"status": "healthy"}) })
	e.GET("/", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{}) })
	return e
}

func get(e *echo.Echo, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewRateLimiter_DisabledPassesThrough(t *testing.T) {
	e := newLimitedEcho(config.RateLimitConfig{Enabled: false, Capacity: 1})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.1:1234").Code)
	}
}

func TestNewRateLimiter_MemoryStoreRejectsAfterBurst(t *testing.T) {
	e := newLimitedEcho(config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	})

	require.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.1:1234").Code)

	rec := get(e, "/health", "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error":"Too many requests"`)

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.2:1234").Code)
}

func TestNewRateLimiter_IPRouteKeysPerRoute(t *testing.T) {
	e := newLimitedEcho(config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	})

	assert.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(e, "/", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(e, "/", "10.0.0.1:1234").Code)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/calculate")

	tests := map[string]string{
		"ip":       "rl:ip:192.0.2.7",
		"route":    "rl:route:POST /api/calculate",
		"ip_route": "rl:ip:192.0.2.7:route:POST /api/calculate",
		"":         "rl:ip:192.0.2.7:route:POST /api/calculate",
	}
	for strategy, want := range tests {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		assert.Equal(t, want, got, "strategy %q", strategy)
	}
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(7), asInt64(int64(7)))
	assert.Equal(t, int64(7), asInt64(7))
	assert.Equal(t, int64(7), asInt64(7.9))
	assert.Equal(t, int64(42), asInt64("42"))
	assert.Equal(t, int64(0), asInt64("nope"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func redisLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
}

func TestNewRateLimiter_RedisTokenBucket(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newRedisLimitedEcho(redisLimitConfig(), rdb)

	rec := get(e, "/health", "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = get(e, "/health", "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = get(e, "/health", "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error":"Too many requests"`)

	assert.True(t, mr.Exists("rl:ip:10.0.0.1"))
	assert.Equal(t, "0", mr.HGet("rl:ip:10.0.0.1", "tokens"))
	assert.Greater(t, mr.TTL("rl:ip:10.0.0.1"), time.Duration(0))

	// buckets are per key
	assert.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.2:1234").Code)
}

func TestNewRateLimiter_RedisRefill(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newRedisLimitedEcho(redisLimitConfig(), rdb)

	require.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, get(e, "/health", "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(e, "/health", "10.0.0.1:1234").Code)

	// pretend the last refill happened two intervals ago
	last, err := strconv.ParseInt(mr.HGet("rl:ip:10.0.0.1", "last_refill_ms"), 10, 64)
	require.NoError(t, err)
	mr.HSet("rl:ip:10.0.0.1", "last_refill_ms", strconv.FormatInt(last-2*time.Hour.Milliseconds(), 10))

	rec := get(e, "/health", "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestNewRateLimiter_RedisDownFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newRedisLimitedEcho(redisLimitConfig(), rdb)

	for i := 0; i < 4; i++ {
		rec := get(e, "/health", "10.0.0.1:1234")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}
