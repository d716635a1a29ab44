package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// Limiter counts a hit against a key in a fixed window
type Limiter interface {
	RateLimit(ctx context.Context, key string, limit int64, window time.Duration) (allowed bool, remaining int64, err error)
}

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Custom limit exceeded handler
	LimitReached fiber.Handler
	// Logger for limiter failures
	Logger *zap.Logger
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			appErr := apperrors.RateLimited()
			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"error":   "Too Many Requests",
				"message": appErr.Message,
			})
		},
		Logger: zap.NewNop(),
	}
}

// RateLimitMiddleware limits requests per key using a shared Limiter
type RateLimitMiddleware struct {
	limiter Limiter
	config  RateLimitConfig
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	defaults := DefaultRateLimitConfig()
	if cfg.Max <= 0 {
		cfg.Max = defaults.Max
	}
	if cfg.Window <= 0 {
		cfg.Window = defaults.Window
	}
	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = defaults.KeyGenerator
	}
	if cfg.LimitReached == nil {
		cfg.LimitReached = defaults.LimitReached
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		config:  cfg,
	}
}

// Handler returns the rate limit handler
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	window := int64(m.config.Window.Seconds())

	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := "ratelimit:" + m.config.KeyGenerator(c)

		allowed, remaining, err := m.limiter.RateLimit(c.UserContext(), key, int64(m.config.Max), m.config.Window)
		if err != nil {
			// Fail open when the limiter backend is unavailable.
			m.config.Logger.Warn("rate limiter unavailable",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
			)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Unix()+window, 10))

		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(window, 10))
			return m.config.LimitReached(c)
		}

		return c.Next()
	}
}
