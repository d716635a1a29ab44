package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/database"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/pkg/logger"
	"github.com/awesomepeople/people/api/internal/testutil"
)

func TestMain(m *testing.M) {
	_ = logger.Init(logger.Config{Level: "error", Format: "console"})
	os.Exit(m.Run())
}

func openTestRepo(t *testing.T, path string) *PersonRepository {
	t.Helper()

	db, err := database.NewSQLite(context.Background(), config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPersonRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestPersonRepository(t *testing.T) {
	testutil.RunPersonStoreSuite(t, func(t *testing.T) testutil.PersonStore {
		return openTestRepo(t, database.MemoryDSN)
	})
}

func TestPersonRepository_EnsureSchemaIsIdempotent(t *testing.T) {
	repo := openTestRepo(t, database.MemoryDSN)
	testutil.SeedPeople(t, repo, "Ada")

	require.NoError(t, repo.EnsureSchema(context.Background()))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPersonRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "people.db")

	first := openTestRepo(t, path)
	seeded := testutil.SeedPeople(t, first, "Ada", "Grace")
	_, err := first.DeleteByID(ctx, seeded[1].ID)
	require.NoError(t, err)

	second := openTestRepo(t, path)
	all, err := second.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Person{seeded[0]}, all)

	next, err := second.Insert(ctx, domain.PersonInput{Name: "Linus"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, seeded[1].ID)
}

func TestPersonRepository_ClosedDatabaseIsStorageFailure(t *testing.T) {
	db, err := database.NewSQLite(context.Background(), config.SQLiteConfig{Path: database.MemoryDSN})
	require.NoError(t, err)
	repo := NewPersonRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, db.Close())

	_, err = repo.Insert(context.Background(), domain.PersonInput{Name: "Ada"})
	assert.True(t, apperrors.IsStorage(err), "got %v", err)

	_, err = repo.ListAll(context.Background())
	assert.True(t, apperrors.IsStorage(err))

	_, err = repo.FindByID(context.Background(), 1)
	assert.True(t, apperrors.IsStorage(err))

	assert.Error(t, repo.Ping(context.Background()))
}
