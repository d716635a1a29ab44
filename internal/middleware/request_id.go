package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// ContextKey type for fiber locals keys
type ContextKey string

// ContextKeyRequestID holds the request id in fiber locals
const ContextKeyRequestID ContextKey = "requestID"

// maxRequestIDLength bounds client-supplied ids echoed back in headers and logs
const maxRequestIDLength = 128

// RequestIDConfig configures the request ID middleware
type RequestIDConfig struct {
	// Header is the header key for the request ID
	Header string
	// Generator generates a new request ID
	Generator func() string
}

// DefaultRequestIDConfig returns default request ID config
func DefaultRequestIDConfig() RequestIDConfig {
	return RequestIDConfig{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.New().String()
		},
	}
}

// RequestID creates a request ID middleware
func RequestID(config ...RequestIDConfig) fiber.Handler {
	cfg := DefaultRequestIDConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		requestID := utils.CopyString(c.Get(cfg.Header))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = cfg.Generator()
		}

		c.Set(cfg.Header, requestID)
		c.Locals(string(ContextKeyRequestID), requestID)

		return c.Next()
	}
}

// GetRequestID gets the request ID from context
func GetRequestID(c *fiber.Ctx) string {
	if requestID, ok := c.Locals(string(ContextKeyRequestID)).(string); ok {
		return requestID
	}
	return ""
}
