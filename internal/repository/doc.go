// Package repository contains the person store implementations.
//
// The PersonStore interface is defined at the service layer (consumer-defined
// interface). Each subpackage here satisfies it for one backend:
//   - sqlite: embedded database file, the default
//   - postgres: pgx connection pool
//   - memory: process-local map, for tests and ephemeral runs
//
// Open picks one from configuration and creates its schema.
//
// # Contract
//
// Ids are assigned by the store, unique, and never reused after a delete.
// Sorted listings compare names by code point and break ties by id.
// Missing rows surface as errors.NotFound("person"); driver failures surface
// as errors.Storage with the driver error wrapped.
//
// # Thread Safety
//
// All implementations are safe for concurrent use.
package repository
