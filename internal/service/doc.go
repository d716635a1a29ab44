// Package service contains the business logic layer of the people API.
//
// Services depend on interfaces defined in this package (PersonStore,
// EventPublisher), following the dependency inversion principle. The
// concrete stores live under internal/repository.
//
// # Services
//
//   - QueryService: create, list and delete people
//   - RandomService: pick one person at random under a configurable policy
//
// Errors from the store are returned unchanged so the handler can map the
// apperrors code to an HTTP status. Neither service holds locks; each call is
// at most one read-then-write sequence against the store.
package service
