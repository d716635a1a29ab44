package service

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/pkg/metrics"
)

// RandomService picks one person at random
type RandomService struct {
	store  PersonStore
	policy domain.RandomPolicy
	logger *zap.Logger
	// int64N returns a value in [0, n).
	int64N func(n int64) int64
}

// NewRandomService creates a new random selection service
func NewRandomService(store PersonStore, policy domain.RandomPolicy, logger *zap.Logger) *RandomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy != domain.RandomDenseID {
		policy = domain.RandomUniform
	}
	return &RandomService{
		store:  store,
		policy: policy,
		logger: logger,
		int64N: rand.Int64N,
	}
}

// Policy returns the active selection policy
func (s *RandomService) Policy() domain.RandomPolicy {
	return s.policy
}

// PickRandom returns a random person, or NotFound when there is none to pick
func (s *RandomService) PickRandom(ctx context.Context) (*domain.Person, error) {
	var (
		p   *domain.Person
		err error
	)
	switch s.policy {
	case domain.RandomDenseID:
		p, err = s.pickDenseID(ctx)
	default:
		p, err = s.pickUniform(ctx)
	}

	if err != nil {
		metrics.RecordRandomPick(string(s.policy), outcomeOf(err))
		return nil, err
	}
	metrics.RecordRandomPick(string(s.policy), metrics.OutcomeSuccess)
	return p, nil
}

// pickUniform draws from the people that exist right now, so every
// existing person is equally likely and a non-empty store always yields one.
func (s *RandomService) pickUniform(ctx context.Context) (*domain.Person, error) {
	people, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, apperrors.NotFound("person")
	}

	p := people[s.int64N(int64(len(people)))]
	return &p, nil
}

// pickDenseID assumes ids run densely from 1 to Count. A draw that lands on
// a deleted id is reported as NotFound.
func (s *RandomService) pickDenseID(ctx context.Context) (*domain.Person, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperrors.NotFound("person")
	}

	id := s.int64N(n) + 1
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Debug("random id has no person", zap.Int64("id", id), zap.Int64("count", n))
		}
		return nil, err
	}
	return p, nil
}
