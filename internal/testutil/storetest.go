package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// PersonStore mirrors the service layer's store contract so this package
// does not import service.
type PersonStore interface {
	Inserter
	ListAll(ctx context.Context) ([]domain.Person, error)
	ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	DeleteByID(ctx context.Context, id int64) (*domain.Person, error)
	Count(ctx context.Context) (int64, error)
}

// RunPersonStoreSuite checks the behaviour every store implementation must
// share. newStore must return an empty store.
func RunPersonStoreSuite(t *testing.T, newStore func(t *testing.T) PersonStore) {
	ctx := context.Background()

	t.Run("insert assigns distinct ids", func(t *testing.T) {
		store := newStore(t)

		a, err := store.Insert(ctx, domain.PersonInput{Name: "Ada"})
		require.NoError(t, err)
		b, err := store.Insert(ctx, domain.PersonInput{Name: "Ada"})
		require.NoError(t, err)

		assert.Equal(t, "Ada", a.Name)
		assert.Equal(t, "Ada", b.Name)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("insert stores the name as supplied", func(t *testing.T) {
		store := newStore(t)

		p, err := store.Insert(ctx, domain.PersonInput{Name: "  José Ñúñez "})
		require.NoError(t, err)

		found, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "  José Ñúñez ", found.Name)
	})

	t.Run("list on empty store is an empty slice", func(t *testing.T) {
		store := newStore(t)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		sorted, err := store.ListSorted(ctx, domain.SortAscending)
		require.NoError(t, err)
		assert.NotNil(t, sorted)
		assert.Empty(t, sorted)
	})

	t.Run("list all returns every person", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Charlie", "alice", "Bob")

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, seeded, all)
	})

	t.Run("list sorted orders by code point", func(t *testing.T) {
		store := newStore(t)
		SeedPeople(t, store, "bob", "Alice", "alice", "Bob", "Émile")

		asc, err := store.ListSorted(ctx, domain.SortAscending)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob", "alice", "bob", "Émile"}, Names(asc))

		desc, err := store.ListSorted(ctx, domain.SortDescending)
		require.NoError(t, err)
		assert.Equal(t, []string{"Émile", "bob", "alice", "Bob", "Alice"}, Names(desc))
	})

	t.Run("equal names are ordered by id", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Sam", "Ann", "Sam", "Sam")

		for _, order := range []domain.SortOrder{domain.SortAscending, domain.SortDescending} {
			sorted, err := store.ListSorted(ctx, order)
			require.NoError(t, err)

			var sams []int64
			for _, p := range sorted {
				if p.Name == "Sam" {
					sams = append(sams, p.ID)
				}
			}
			assert.Equal(t, []int64{seeded[0].ID, seeded[2].ID, seeded[3].ID}, sams, "order %s", order)
		}
	})

	t.Run("find by id", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Ada", "Grace")

		found, err := store.FindByID(ctx, seeded[1].ID)
		require.NoError(t, err)
		assert.Equal(t, seeded[1], *found)

		missing, err := store.FindByID(ctx, seeded[1].ID+100)
		assert.Nil(t, missing)
		assert.True(t, apperrors.IsNotFound(err), "got %v", err)
	})

	t.Run("delete returns the removed person", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Ada", "Grace")

		deleted, err := store.DeleteByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.Equal(t, seeded[0], *deleted)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Person{seeded[1]}, all)

		_, err = store.FindByID(ctx, seeded[0].ID)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("delete of missing id is not found", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Ada")

		_, err := store.DeleteByID(ctx, seeded[0].ID)
		require.NoError(t, err)

		again, err := store.DeleteByID(ctx, seeded[0].ID)
		assert.Nil(t, again)
		assert.True(t, apperrors.IsNotFound(err), "got %v", err)

		_, err = store.DeleteByID(ctx, 999999)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		store := newStore(t)
		seeded := SeedPeople(t, store, "Ada", "Grace")

		_, err := store.DeleteByID(ctx, seeded[1].ID)
		require.NoError(t, err)

		next, err := store.Insert(ctx, domain.PersonInput{Name: "Linus"})
		require.NoError(t, err)
		assert.Greater(t, next.ID, seeded[1].ID)
	})

	t.Run("count tracks inserts and deletes", func(t *testing.T) {
		store := newStore(t)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		seeded := SeedPeople(t, store, "Ada", "Grace", "Linus")
		_, err = store.DeleteByID(ctx, seeded[0].ID)
		require.NoError(t, err)

		n, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("concurrent inserts get unique ids", func(t *testing.T) {
		store := newStore(t)

		const workers = 8
		const perWorker = 10

		var wg sync.WaitGroup
		ids := make(chan int64, workers*perWorker)
		errs := make(chan error, workers*perWorker)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					p, err := store.Insert(ctx, domain.PersonInput{Name: "worker"})
					if err != nil {
						errs <- err
						continue
					}
					ids <- p.ID
				}
			}()
		}
		wg.Wait()
		close(ids)
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers*perWorker)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(workers*perWorker), n)
	})
}
