package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedEcho(t *testing.T, cfg RateLimitConfig) (*echo.Echo, *RateLimiter) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rl := NewRateLimiter(ctx, cfg)
	e := echo.New()
	e.Use(rl.Middleware())
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e, rl
}

func serve(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	e, _ := newLimitedEcho(t, RateLimitConfig{Rate: rate.Limit(10), Burst: 10})

	assert.Equal(t, http.StatusOK, serve(e, "").Code)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	e, _ := newLimitedEcho(t, RateLimitConfig{Rate: rate.Limit(1), Burst: 1})

	assert.Equal(t, http.StatusOK, serve(e, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, "").Code)
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	e, _ := newLimitedEcho(t, PerMinute(30, 1))

	serve(e, "")
	rec := serve(e, "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsGetSeparateLimits(t *testing.T) {
	e, _ := newLimitedEcho(t, RateLimitConfig{Rate: rate.Limit(1), Burst: 1})

	assert.Equal(t, http.StatusOK, serve(e, "1.2.3.4:1234").Code)
	assert.Equal(t, http.StatusOK, serve(e, "5.6.7.8:5678").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, "1.2.3.4:1234").Code)
}

func TestRateLimiter_SweepDropsIdleEntries(t *testing.T) {
	e, rl := newLimitedEcho(t, RateLimitConfig{Rate: rate.Limit(1), Burst: 1})
	serve(e, "1.2.3.4:1234")

	rl.sweep(time.Hour)
	assert.Len(t, rl.limiters, 1)

	rl.sweep(-time.Second)
	assert.Empty(t, rl.limiters)
}

func TestPerMinute(t *testing.T) {
	cfg := PerMinute(120, 4)
	assert.Equal(t, rate.Limit(2), cfg.Rate)
	assert.Equal(t, 4, cfg.Burst)
}
