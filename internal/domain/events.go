package domain

import (
	"time"

	"github.com/google/uuid"
)

// PersonEventType identifies a person lifecycle event
type PersonEventType string

const (
	PersonCreated PersonEventType = "person.created"
	PersonDeleted PersonEventType = "person.deleted"
)

// PersonEvent is published after a person is created or deleted
type PersonEvent struct {
	ID         uuid.UUID       `json:"id"`
	Type       PersonEventType `json:"type"`
	Person     Person          `json:"person"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewPersonEvent builds an event stamped with a fresh id and the current time
func NewPersonEvent(eventType PersonEventType, p Person) PersonEvent {
	return PersonEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Person:     p,
		OccurredAt: time.Now().UTC(),
	}
}
