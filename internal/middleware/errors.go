package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// statusForError returns the HTTP status an error will be rendered with
func statusForError(err error) int {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
