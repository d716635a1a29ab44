// Package dto contains Data Transfer Objects for HTTP request/response handling.
//
// DTOs provide:
//   - Type-safe request parsing with struct tags
//   - Declarative validation using go-playground/validator
//   - Separation between API contracts and domain types
//
// # Usage
//
// Use dto.ParseAndValidate() in handlers to parse and validate requests.
// It returns an *errors.AppError for the handler to render:
//
//	var req dto.CreatePersonRequest
//	if err := dto.ParseAndValidate(c, &req); err != nil {
//	    return h.respondError(c, err)
//	}
//
// # Validation Tags
//
// Common validation tags:
//   - required: Field must be present and non-empty
//   - min=N: Minimum length/value
//   - max=N: Maximum length/value
//   - oneof=A B C: Must be one of the specified values
package dto
