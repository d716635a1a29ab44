// Package sqlite provides the embedded SQLite person store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/database"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS people (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT    NOT NULL
)`

// PersonRepository handles person data operations in SQLite
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *database.SQLiteDB) *PersonRepository {
	return &PersonRepository{db: db.DB}
}

// EnsureSchema creates the people table if it does not exist.
// AUTOINCREMENT keeps ids of deleted rows from being handed out again.
func (r *PersonRepository) EnsureSchema(ctx context.Context) error {
	start := time.Now()
	_, err := r.db.ExecContext(ctx, schema)
	if database.ObserveQuery("sqlite", "create", start, err) != nil {
		return apperrors.Storage("failed to create people table").WithError(err)
	}
	return nil
}

// Insert creates a new person and returns it with its assigned id
func (r *PersonRepository) Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	query := `INSERT INTO people (name) VALUES (?) RETURNING id, name`

	var p domain.Person
	start := time.Now()
	err := r.db.GetContext(ctx, &p, query, in.Name)
	if database.ObserveQuery("sqlite", "insert", start, err) != nil {
		return nil, apperrors.Storage("failed to insert person").WithError(err)
	}

	return &p, nil
}

// ListAll returns every person ordered by id
func (r *PersonRepository) ListAll(ctx context.Context) ([]domain.Person, error) {
	return r.list(ctx, `SELECT id, name FROM people ORDER BY id`)
}

// ListSorted returns every person ordered by name, ties broken by id.
// BINARY collation compares UTF-8 bytes, which is code point order.
func (r *PersonRepository) ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error) {
	query := `SELECT id, name FROM people ORDER BY name COLLATE BINARY ASC, id ASC`
	if order == domain.SortDescending {
		query = `SELECT id, name FROM people ORDER BY name COLLATE BINARY DESC, id ASC`
	}
	return r.list(ctx, query)
}

func (r *PersonRepository) list(ctx context.Context, query string) ([]domain.Person, error) {
	people := []domain.Person{}

	start := time.Now()
	err := r.db.SelectContext(ctx, &people, query)
	if database.ObserveQuery("sqlite", "select", start, err) != nil {
		return nil, apperrors.Storage("failed to list people").WithError(err)
	}

	return people, nil
}

// FindByID retrieves a person by id
func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `SELECT id, name FROM people WHERE id = ?`

	var p domain.Person
	start := time.Now()
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = database.ObserveQuery("sqlite", "select", start, nil)
		return nil, apperrors.NotFound("person")
	}
	if database.ObserveQuery("sqlite", "select", start, err) != nil {
		return nil, apperrors.Storage("failed to get person").WithError(err)
	}

	return &p, nil
}

// DeleteByID removes a person and returns the deleted row
func (r *PersonRepository) DeleteByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `DELETE FROM people WHERE id = ? RETURNING id, name`

	var p domain.Person
	start := time.Now()
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = database.ObserveQuery("sqlite", "delete", start, nil)
		return nil, apperrors.NotFound("person")
	}
	if database.ObserveQuery("sqlite", "delete", start, err) != nil {
		return nil, apperrors.Storage("failed to delete person").WithError(err)
	}

	return &p, nil
}

// Count returns the number of people
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	start := time.Now()
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM people`)
	if database.ObserveQuery("sqlite", "select", start, err) != nil {
		return 0, apperrors.Storage("failed to count people").WithError(err)
	}
	return n, nil
}

// Ping verifies the database is reachable
func (r *PersonRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
