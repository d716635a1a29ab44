package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/database"
	"github.com/awesomepeople/people/api/internal/repository/memory"
	"github.com/awesomepeople/people/api/internal/repository/postgres"
	"github.com/awesomepeople/people/api/internal/repository/sqlite"
)

// Store is a person store that can report its own reachability
type Store interface {
	Insert(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
	ListAll(ctx context.Context) ([]domain.Person, error)
	ListSorted(ctx context.Context, order domain.SortOrder) ([]domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	DeleteByID(ctx context.Context, id int64) (*domain.Person, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Open opens the store selected by cfg.Store.Driver and creates its schema.
// The returned close function releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory person store, data is lost on exit")
		return memory.NewPersonRepository(), func() {}, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		repo := sqlite.NewPersonRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("opened sqlite person store", zap.String("path", cfg.SQLite.Path))
		return repo, func() { _ = db.Close() }, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres, cfg.IsDevelopment())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		repo := postgres.NewPersonRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("opened postgres person store",
			zap.String("host", cfg.Postgres.Host),
			zap.String("database", cfg.Postgres.Database),
		)
		return repo, db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
