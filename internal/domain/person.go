package domain

import "strings"

// Person is a named entity with a store-assigned id
type Person struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PersonInput represents input for creating a person
type PersonInput struct {
	Name string `json:"name"`
}

// IsBlank reports whether the name is empty or only whitespace
func (in PersonInput) IsBlank() bool {
	return strings.TrimSpace(in.Name) == ""
}

// SortOrder controls how a listing is ordered by name
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// ParseSortOrder maps a query parameter to a SortOrder.
// Anything other than the exact words "ascending" or "descending" yields SortNone.
func ParseSortOrder(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortAscending:
		return SortAscending
	case SortDescending:
		return SortDescending
	default:
		return SortNone
	}
}

// IsSorted returns true when the order requires sorting by name
func (s SortOrder) IsSorted() bool {
	return s == SortAscending || s == SortDescending
}

// RandomPolicy selects the algorithm used to pick a random person
type RandomPolicy string

const (
	// RandomUniform draws uniformly over the people that currently exist.
	RandomUniform RandomPolicy = "uniform"
	// RandomDenseID draws an id in [1, count] and looks it up. Gaps left by
	// deletions produce NotFound.
	RandomDenseID RandomPolicy = "dense_id"
)

// ParseRandomPolicy returns the policy for raw, defaulting to RandomUniform
func ParseRandomPolicy(raw string) RandomPolicy {
	if RandomPolicy(strings.ToLower(raw)) == RandomDenseID {
		return RandomDenseID
	}
	return RandomUniform
}
