// Package validator provides struct validation for the people API.
//
// This package wraps go-playground/validator to provide:
//   - Consistent validation across all handlers
//   - Human-readable error messages
//   - Structured validation error responses
//
// # Usage
//
// Use validator.Validate() directly or through dto.ParseAndValidate():
//
//	if err := validator.Validate(myStruct); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// # Custom Validations
//
// The "notblank" tag rejects strings that are empty after trimming
// whitespace. Field names in errors use the json tag name.
// The validator instance is package-level and thread-safe.
package validator
