package dto

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/validator"
)

// ParseAndValidate parses the request body into the given struct and validates it.
// A malformed body yields BAD_REQUEST and a failed rule yields VALIDATION_ERROR
// with the per-field errors attached under the "errors" detail.
func ParseAndValidate(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperrors.BadRequest("Invalid request body: " + err.Error()).WithError(err)
	}

	if err := validator.Validate(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return apperrors.Validation("Request validation failed").
				WithDetail("errors", validationErrors)
		}
		return apperrors.BadRequest(err.Error())
	}

	return nil
}
