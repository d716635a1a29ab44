// Package domain contains the core entities and value types of the people API.
//
// This package defines:
//   - Person, the single entity managed by the service
//   - PersonInput, the creation payload (the store assigns ids)
//   - SortOrder and RandomPolicy value types
//   - PersonEvent, emitted after a successful create or delete
//
// Domain types are persistence-agnostic and carry both json and db tags so
// the same value flows from the store to the HTTP response unchanged.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create operations.
package domain
