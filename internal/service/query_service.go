package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/pkg/metrics"
)

// QueryService handles creating, listing and deleting people
type QueryService struct {
	store     PersonStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewQueryService creates a new query service. publisher may be nil.
func NewQueryService(store PersonStore, publisher EventPublisher, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new person. Blank names are rejected; any other name is
// stored exactly as given.
func (s *QueryService) Create(ctx context.Context, name string) (*domain.Person, error) {
	in := domain.PersonInput{Name: name}
	if in.IsBlank() {
		metrics.RecordPersonOperation("create", metrics.OutcomeInvalid)
		return nil, apperrors.Validation("name must not be blank").WithDetail("field", "name")
	}

	p, err := s.store.Insert(ctx, in)
	if err != nil {
		metrics.RecordPersonOperation("create", outcomeOf(err))
		return nil, err
	}
	metrics.RecordPersonOperation("create", metrics.OutcomeSuccess)

	s.publish(ctx, domain.NewPersonEvent(domain.PersonCreated, *p))
	return p, nil
}

// List returns all people, sorted by name when order asks for it
func (s *QueryService) List(ctx context.Context, order domain.SortOrder) ([]domain.Person, error) {
	var (
		people []domain.Person
		err    error
	)
	if order.IsSorted() {
		people, err = s.store.ListSorted(ctx, order)
	} else {
		people, err = s.store.ListAll(ctx)
	}
	if err != nil {
		metrics.RecordPersonOperation("list", outcomeOf(err))
		return nil, err
	}
	metrics.RecordPersonOperation("list", metrics.OutcomeSuccess)

	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}

// Delete removes a person and returns it
func (s *QueryService) Delete(ctx context.Context, id int64) (*domain.Person, error) {
	p, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		metrics.RecordPersonOperation("delete", outcomeOf(err))
		return nil, err
	}
	metrics.RecordPersonOperation("delete", metrics.OutcomeSuccess)

	s.publish(ctx, domain.NewPersonEvent(domain.PersonDeleted, *p))
	return p, nil
}

// publish never fails the caller; a lost event is only logged.
func (s *QueryService) publish(ctx context.Context, event domain.PersonEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish person event",
			zap.String("type", string(event.Type)),
			zap.Int64("person_id", event.Person.ID),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case apperrors.IsNotFound(err):
		return metrics.OutcomeNotFound
	case apperrors.IsValidation(err):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
