package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/awesomepeople/people/api/internal/domain"
)

// NewTestPerson creates a person with the given id and name.
func NewTestPerson(id int64, name string) *domain.Person {
	return &domain.Person{ID: id, Name: name}
}

// Inserter is the slice of a person store needed for seeding.
type Inserter interface {
	Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
}

// SeedPeople inserts one person per name, in order, and returns them.
func SeedPeople(t *testing.T, store Inserter, names ...string) []domain.Person {
	t.Helper()

	people := make([]domain.Person, 0, len(names))
	for _, name := range names {
		p, err := store.Insert(context.Background(), domain.PersonInput{Name: name})
		require.NoError(t, err)
		people = append(people, *p)
	}
	return people
}

// Names returns the names of people in order.
func Names(people []domain.Person) []string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	return names
}
