package database

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

func TestPoolConfig_AppliesLimits(t *testing.T) {
	t.Parallel()

	cfg, err := PoolConfig(config.DatabaseConfig{
		URL:             "postgres://app:pw@db.internal:5432/todos?sslmode=disable",
		MaxConns:        7,
		MinConns:        2,
		MaxConnLifetime: 10 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(7), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 10*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.Equal(t, "todos", cfg.ConnConfig.Database)
}

func TestPoolConfig_InvalidURLHidesCredentials(t *testing.T) {
	t.Parallel()

	_, err := PoolConfig(config.DatabaseConfig{URL: "postgres://app:hunter2@db:notaport/todos", MaxConns: 1})

	require.ErrorIs(t, err, errURL)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestMigrationFiles_Paired(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file in migrations: %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestMigrationFiles_CreateTodos(t *testing.T) {
	t.Parallel()

	up, err := migrationFiles.ReadFile("migrations/000001_create_todos.up.sql")
	require.NoError(t, err)

	sql := string(up)
	for _, want := range []string{"todos", "BIGSERIAL PRIMARY KEY", "title", "description", "done"} {
		assert.Contains(t, sql, want)
	}
}

// TestConnectAndMigrate runs against a real server when TEST_DATABASE_URL is set.
func TestConnectAndMigrate(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, config.DatabaseConfig{URL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := slog.New(slog.DiscardHandler)
	require.NoError(t, Migrate(pool, logger))
	// A second run finds nothing to do.
	require.NoError(t, Migrate(pool, logger))

	var exists bool
	require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass('public.todos') IS NOT NULL").Scan(&exists))
	assert.True(t, exists)
}
