package service

import (
	"context"

	"github.com/awesomepeople/people/api/internal/domain"
)

// PersonStore defines person persistence operations
type PersonStore interface {
	Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
	ListAll(ctx context.Context) ([]domain.Person, error)
	ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	DeleteByID(ctx context.Context, id int64) (*domain.Person, error)
	Count(ctx context.Context) (int64, error)
}

// EventPublisher hands person lifecycle events to a queue
type EventPublisher interface {
	Publish(ctx context.Context, event domain.PersonEvent) error
}
