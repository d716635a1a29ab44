// Package handler contains the HTTP request handlers of the people API.
//
// Handlers parse typed parameters, call the query and random services, and
// render results as JSON. Failures are rendered from their apperrors kind:
//
//	VALIDATION_ERROR, BAD_REQUEST -> 400
//	NOT_FOUND                     -> 404
//	RATE_LIMITED                  -> 429
//	STORAGE_FAILURE and the rest  -> 500
//
// # Routes
//
//   - /api/v1/person, /api/v1/people, /api/v1/person/random, /api/v1/person/:id
//   - /hello, /hello/people, /hello/:name (plain text)
//   - /health, /livez, /readyz, /version
//   - /docs, /docs/openapi.yaml
//
// All handlers are safe for concurrent use.
package handler
