package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/middleware"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// errorName returns the short status name used in the "error" field.
func errorName(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusMethodNotAllowed:
		return "Method Not Allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "Request Entity Too Large"
	case fiber.StatusUnprocessableEntity:
		return "Unprocessable Entity"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	case fiber.StatusServiceUnavailable:
		return "Service Unavailable"
	}
	return "Error"
}

// respondError renders err with the status its kind maps to. Server-side
// failures are logged and reported; their cause is never echoed to the client.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	resp := ErrorResponse{Message: "An unexpected error occurred"}
	status := fiber.StatusInternalServerError

	// An AppError may wrap a fiber error; its own status wins.
	var fiberErr *fiber.Error
	if appErr := apperrors.GetAppError(err); appErr != nil {
		status = appErr.StatusCode
		resp.Message = appErr.Message
		if fieldErrors, ok := appErr.Details["errors"]; ok {
			resp.Errors = fieldErrors
		}
	} else if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		resp.Message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		middleware.CaptureError(c, err)
	}

	resp.Error = errorName(status)
	return c.Status(status).JSON(resp)
}

// NewErrorHandler returns the fiber error handler for errors that escape a
// handler, such as unmatched routes or oversized bodies.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return respondError(c, logger, err)
	}
}
