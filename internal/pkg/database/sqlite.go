package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/pkg/logger"
	"github.com/awesomepeople/people/api/internal/pkg/metrics"
)

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

// SQLiteDB wraps an embedded SQLite database
type SQLiteDB struct {
	DB *sqlx.DB
}

// NewSQLite opens the SQLite database at cfg.Path.
// The pool is limited to one connection so writers are serialized and an
// in-memory database survives for the lifetime of the handle.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig) (*SQLiteDB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != MemoryDSN {
		path = filepath.Clean(path)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	busyTimeout := cfg.BusyTimeoutMs
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	logger.Info("opened SQLite database", zap.String("path", path))

	return &SQLiteDB{DB: db}, nil
}

// Close closes the database handle
func (db *SQLiteDB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

// Ping verifies the database is reachable
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// ObserveQuery records metrics for a query that began at start.
// It returns err unchanged so callers can wrap a statement in one line.
func ObserveQuery(database, operation string, start time.Time, err error) error {
	metrics.RecordDBQuery(database, operation, time.Since(start))
	if err != nil {
		metrics.RecordDBError(database, operation)
	}
	return err
}
