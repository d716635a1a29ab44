// Package postgres provides the PostgreSQL person store.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/database"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT      NOT NULL
)`

// PersonRepository handles person data operations in PostgreSQL
type PersonRepository struct {
	db *database.PostgresDB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *database.PostgresDB) *PersonRepository {
	return &PersonRepository{db: db}
}

// EnsureSchema creates the people table if it does not exist
func (r *PersonRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, schema); err != nil {
		return apperrors.Storage("failed to create people table").WithError(err)
	}
	return nil
}

// Insert creates a new person and returns it with its assigned id
func (r *PersonRepository) Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	query := `INSERT INTO people (name) VALUES ($1) RETURNING id, name`

	var p domain.Person
	if err := r.db.Pool.QueryRow(ctx, query, in.Name).Scan(&p.ID, &p.Name); err != nil {
		return nil, apperrors.Storage("failed to insert person").WithError(err)
	}

	return &p, nil
}

// ListAll returns every person ordered by id
func (r *PersonRepository) ListAll(ctx context.Context) ([]domain.Person, error) {
	return r.list(ctx, `SELECT id, name FROM people ORDER BY id`)
}

// ListSorted returns every person ordered by name, ties broken by id.
// The "C" collation compares bytes, which is code point order for UTF-8.
func (r *PersonRepository) ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error) {
	query := `SELECT id, name FROM people ORDER BY name COLLATE "C" ASC, id ASC`
	if order == domain.SortDescending {
		query = `SELECT id, name FROM people ORDER BY name COLLATE "C" DESC, id ASC`
	}
	return r.list(ctx, query)
}

func (r *PersonRepository) list(ctx context.Context, query string) ([]domain.Person, error) {
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Storage("failed to list people").WithError(err)
	}

	people, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Person])
	if err != nil {
		return nil, apperrors.Storage("failed to scan people").WithError(err)
	}
	if people == nil {
		people = []domain.Person{}
	}

	return people, nil
}

// FindByID retrieves a person by id
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `SELECT id, name FROM people WHERE id = $1`

	var p domain.Person
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("person")
		}
		return nil, apperrors.Storage("failed to get person").WithError(err)
	}

	return &p, nil
}

// DeleteByID removes a person and returns the deleted row
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `DELETE FROM people WHERE id = $1 RETURNING id, name`

	var p domain.Person
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("person")
		}
		return nil, apperrors.Storage("failed to delete person").WithError(err)
	}

	return &p, nil
}

// Count returns the number of people
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM people`).Scan(&n); err != nil {
		return 0, apperrors.Storage("failed to count people").WithError(err)
	}
	return n, nil
}

// Ping verifies the pool can reach the server
func (r *PersonRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
