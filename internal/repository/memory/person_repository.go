// Package memory provides a process-local person store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// PersonRepository keeps people in a map guarded by a RWMutex.
// Ids come from a counter that only moves forward.
type PersonRepository struct {
	mu     sync.RWMutex
	people map[int64]domain.Person
	lastID int64
}

// NewPersonRepository creates an empty in-memory store
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{people: make(map[int64]domain.Person)}
}

// Insert stores a new person under the next id
func (r *PersonRepository) Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("failed to insert person").WithError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	p := domain.Person{ID: r.lastID, Name: in.Name}
	r.people[p.ID] = p
	return &p, nil
}

// ListAll returns every person ordered by id
func (r *PersonRepository) ListAll(ctx context.Context) ([]domain.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("failed to list people").WithError(err)
	}

	r.mu.RLock()
	people := make([]domain.Person, 0, len(r.people))
	for _, p := range r.people {
		people = append(people, p)
	}
	r.mu.RUnlock()

	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })
	return people, nil
}

// ListSorted returns every person ordered by name, ties broken by id
func (r *PersonRepository) ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error) {
	people, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	desc := order == domain.SortDescending
	sort.SliceStable(people, func(i, j int) bool {
		if desc {
			return people[i].Name > people[j].Name
		}
		return people[i].Name < people[j].Name
	})
	return people, nil
}

// FindByID returns the person with the given id
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("failed to get person").WithError(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.people[id]
	if !ok {
		return nil, apperrors.NotFound("person")
	}
	return &p, nil
}

// DeleteByID removes and returns the person with the given id
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) (*domain.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("failed to delete person").WithError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.people[id]
	if !ok {
		return nil, apperrors.NotFound("person")
	}
	delete(r.people, id)
	return &p, nil
}

// Count returns the number of people
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.Storage("failed to count people").WithError(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.people)), nil
}

// Ping always succeeds
func (r *PersonRepository) Ping(context.Context) error {
	return nil
}
