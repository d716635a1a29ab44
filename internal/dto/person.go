package dto

import "github.com/awesomepeople/people/api/internal/domain"

// CreatePersonRequest represents the request to create a person.
// ID is accepted for compatibility with older clients and ignored.
type CreatePersonRequest struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name" validate:"required,notblank"`
}

// ToInput converts the request to the store's creation input
func (r CreatePersonRequest) ToInput() domain.PersonInput {
	return domain.PersonInput{Name: r.Name}
}
