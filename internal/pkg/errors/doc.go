// Package errors provides application error types for the people API.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for the error kinds the service surfaces
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - Validation: Input fails basic shape requirements (400)
//   - NotFound: The requested person does not exist (404)
//   - Storage: The persistence provider failed (500)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.NotFound("person")
//	return apperrors.Storage("failed to insert person").WithError(err)
//
// Check error types:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
//
// # Error Wrapping
//
// Errors survive wrapping with fmt.Errorf and %w; the predicates use
// errors.As.
package errors
