package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomepeople/people/api/internal/config"
)

func TestNewSQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		db, err := NewSQLite(ctx, config.SQLiteConfig{Path: MemoryDSN})
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Ping(ctx))

		var one int
		require.NoError(t, db.DB.GetContext(ctx, &one, "SELECT 1"))
		assert.Equal(t, 1, one)
	})

	t.Run("in memory state survives across statements", func(t *testing.T) {
		db, err := NewSQLite(ctx, config.SQLiteConfig{Path: MemoryDSN})
		require.NoError(t, err)
		defer db.Close()

		_, err = db.DB.ExecContext(ctx, "CREATE TABLE t (v INTEGER)")
		require.NoError(t, err)
		_, err = db.DB.ExecContext(ctx, "INSERT INTO t (v) VALUES (1), (2)")
		require.NoError(t, err)

		var n int
		require.NoError(t, db.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM t"))
		assert.Equal(t, 2, n)
	})

	t.Run("file backed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "people.db")
		db, err := NewSQLite(ctx, config.SQLiteConfig{Path: path, BusyTimeoutMs: 1000})
		require.NoError(t, err)
		defer db.Close()

		var mode string
		require.NoError(t, db.DB.GetContext(ctx, &mode, "PRAGMA journal_mode"))
		assert.Equal(t, "wal", mode)

		var timeout int
		require.NoError(t, db.DB.GetContext(ctx, &timeout, "PRAGMA busy_timeout"))
		assert.Equal(t, 1000, timeout)
	})

	t.Run("empty path", func(t *testing.T) {
		db, err := NewSQLite(ctx, config.SQLiteConfig{Path: "  "})
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestSQLiteDBClose(t *testing.T) {
	db := &SQLiteDB{}
	assert.NoError(t, db.Close())
}

func TestObserveQuery(t *testing.T) {
	start := time.Now()
	assert.NoError(t, ObserveQuery("sqlite", "select", start, nil))

	boom := errors.New("boom")
	assert.ErrorIs(t, ObserveQuery("sqlite", "insert", start, boom), boom)
}
