package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLimiter counts hits per key in memory
type fakeLimiter struct {
	mu   sync.Mutex
	hits map[string]int64
	keys []string
	err  error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{hits: make(map[string]int64)}
}

func (l *fakeLimiter) RateLimit(_ context.Context, key string, limit int64, _ time.Duration) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.keys = append(l.keys, key)
	if l.err != nil {
		return false, 0, l.err
	}

	l.hits[key]++
	remaining := limit - l.hits[key]
	if remaining < 0 {
		remaining = 0
	}
	return l.hits[key] <= limit, remaining, nil
}

func newRateLimitedApp(limiter Limiter, cfg RateLimitConfig) *fiber.App {
	app := fiber.New()
	app.Use(NewRateLimitMiddleware(limiter, cfg).Handler())
	app.Get("/api/v1/people", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		cfg := DefaultRateLimitConfig()
		cfg.Max = 2
		app := newRateLimitedApp(newFakeLimiter(), cfg)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		cfg := DefaultRateLimitConfig()
		cfg.Max = 2
		app := newRateLimitedApp(newFakeLimiter(), cfg)

		for i := 0; i < 2; i++ {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
		}

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	})

	t.Run("fails open when limiter errors", func(t *testing.T) {
		limiter := newFakeLimiter()
		limiter.err = errors.New("redis down")

		cfg := DefaultRateLimitConfig()
		cfg.Max = 1
		app := newRateLimitedApp(limiter, cfg)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		}
	})

	t.Run("uses key generator", func(t *testing.T) {
		limiter := newFakeLimiter()

		cfg := DefaultRateLimitConfig()
		cfg.KeyGenerator = func(c *fiber.Ctx) string { return "fixed" }
		app := newRateLimitedApp(limiter, cfg)

		_, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Equal(t, []string{"ratelimit:fixed"}, limiter.keys)
	})

	t.Run("skip bypasses the limiter", func(t *testing.T) {
		limiter := newFakeLimiter()

		cfg := DefaultRateLimitConfig()
		cfg.Skip = func(*fiber.Ctx) bool { return true }
		app := newRateLimitedApp(limiter, cfg)

		_, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Empty(t, limiter.keys)
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		limiter := newFakeLimiter()
		app := newRateLimitedApp(limiter, RateLimitConfig{})

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "100", resp.Header.Get("X-RateLimit-Limit"))
	})
}
