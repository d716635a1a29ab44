package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/repository/memory"
	"github.com/awesomepeople/people/api/internal/testutil"
)

func eventOfType(eventType domain.PersonEventType, id int64) interface{} {
	return mock.MatchedBy(func(e domain.PersonEvent) bool {
		return e.Type == eventType && e.Person.ID == id
	})
}

func TestNewQueryService(t *testing.T) {
	t.Run("creates service successfully", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		svc := NewQueryService(store, nil, nil)

		assert.NotNil(t, svc)
		assert.Equal(t, store, svc.store)
		assert.NotNil(t, svc.logger)
	})
}

func TestQueryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the name and publishes an event", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		pub := new(testutil.MockEventPublisher)
		svc := NewQueryService(store, pub, zap.NewNop())

		store.On("Insert", ctx, domain.PersonInput{Name: "Ada"}).Return(testutil.NewTestPerson(1, "Ada"), nil)
		pub.On("Publish", ctx, eventOfType(domain.PersonCreated, 1)).Return(nil)

		p, err := svc.Create(ctx, "Ada")

		require.NoError(t, err)
		assert.Equal(t, &domain.Person{ID: 1, Name: "Ada"}, p)
		store.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("keeps surrounding whitespace", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		svc := NewQueryService(store, nil, zap.NewNop())

		store.On("Insert", ctx, domain.PersonInput{Name: " Ada "}).Return(testutil.NewTestPerson(2, " Ada "), nil)

		p, err := svc.Create(ctx, " Ada ")

		require.NoError(t, err)
		assert.Equal(t, " Ada ", p.Name)
	})

	t.Run("rejects blank names without touching the store", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t\n"} {
			store := new(testutil.MockPersonStore)
			svc := NewQueryService(store, nil, zap.NewNop())

			p, err := svc.Create(ctx, name)

			assert.Nil(t, p)
			assert.True(t, apperrors.IsValidation(err), "name %q", name)
			store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		}
	})

	t.Run("returns storage failure unchanged and publishes nothing", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		pub := new(testutil.MockEventPublisher)
		svc := NewQueryService(store, pub, zap.NewNop())

		storageErr := apperrors.Storage("failed to insert person").WithError(errors.New("disk full"))
		store.On("Insert", ctx, mock.Anything).Return(nil, storageErr)

		p, err := svc.Create(ctx, "Ada")

		assert.Nil(t, p)
		assert.Same(t, storageErr, err)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure is logged and ignored", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		store := new(testutil.MockPersonStore)
		pub := new(testutil.MockEventPublisher)
		svc := NewQueryService(store, pub, zap.New(core))

		store.On("Insert", ctx, mock.Anything).Return(testutil.NewTestPerson(3, "Ada"), nil)
		pub.On("Publish", ctx, mock.Anything).Return(errors.New("queue down"))

		p, err := svc.Create(ctx, "Ada")

		require.NoError(t, err)
		assert.Equal(t, int64(3), p.ID)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "failed to publish person event", entry.Message)
		assert.Equal(t, "person.created", entry.ContextMap()["type"])
	})
}

func TestQueryService_List(t *testing.T) {
	ctx := context.Background()
	people := []domain.Person{{ID: 1, Name: "b"}, {ID: 2, Name: "a"}}

	t.Run("unsorted uses list all", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		svc := NewQueryService(store, nil, zap.NewNop())

		store.On("ListAll", ctx).Return(people, nil)

		got, err := svc.List(ctx, domain.SortNone)

		require.NoError(t, err)
		assert.Equal(t, people, got)
		store.AssertNotCalled(t, "ListSorted", mock.Anything, mock.Anything)
	})

	t.Run("sorted orders delegate to list sorted", func(t *testing.T) {
		for _, order := range []domain.SortOrder{domain.SortAscending, domain.SortDescending} {
			store := new(testutil.MockPersonStore)
			svc := NewQueryService(store, nil, zap.NewNop())

			store.On("ListSorted", ctx, order).Return(people, nil)

			got, err := svc.List(ctx, order)

			require.NoError(t, err)
			assert.Equal(t, people, got)
			store.AssertExpectations(t)
		}
	})

	t.Run("nil from store becomes empty list", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		svc := NewQueryService(store, nil, zap.NewNop())

		store.On("ListAll", ctx).Return([]domain.Person(nil), nil)

		got, err := svc.List(ctx, domain.SortNone)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		svc := NewQueryService(store, nil, zap.NewNop())

		store.On("ListSorted", ctx, domain.SortAscending).Return(nil, apperrors.Storage("failed to list people"))

		got, err := svc.List(ctx, domain.SortAscending)

		assert.Nil(t, got)
		assert.True(t, apperrors.IsStorage(err))
	})
}

func TestQueryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted person and publishes", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		pub := new(testutil.MockEventPublisher)
		svc := NewQueryService(store, pub, zap.NewNop())

		store.On("DeleteByID", ctx, int64(5)).Return(testutil.NewTestPerson(5, "Grace"), nil)
		pub.On("Publish", ctx, eventOfType(domain.PersonDeleted, 5)).Return(nil)

		p, err := svc.Delete(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, "Grace", p.Name)
		pub.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		store := new(testutil.MockPersonStore)
		pub := new(testutil.MockEventPublisher)
		svc := NewQueryService(store, pub, zap.NewNop())

		store.On("DeleteByID", ctx, int64(9)).Return(nil, apperrors.NotFound("person"))

		p, err := svc.Delete(ctx, 9)

		assert.Nil(t, p)
		assert.True(t, apperrors.IsNotFound(err))
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestQueryService_WithMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewQueryService(memory.NewPersonRepository(), nil, zap.NewNop())

	for _, name := range []string{"bob", "Alice", "carol"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	asc, err := svc.List(ctx, domain.SortAscending)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "bob", "carol"}, testutil.Names(asc))

	desc, err := svc.List(ctx, domain.SortDescending)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "bob", "Alice"}, testutil.Names(desc))

	deleted, err := svc.Delete(ctx, asc[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", deleted.Name)

	_, err = svc.Delete(ctx, asc[0].ID)
	assert.True(t, apperrors.IsNotFound(err))

	all, err := svc.List(ctx, domain.ParseSortOrder("sideways"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
