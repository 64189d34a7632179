package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/postgres"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

var todoColumns = []string{"id", "title", "description", "done"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, pool.ExpectationsWereMet())
		pool.Close()
	})
	return pool
}

func TestInsert_ReturnsStoredRow(t *testing.T) {
	t.Parallel()

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO todos (title, description, done)")).
		WithArgs("a", "b", false).
		WillReturnRows(pgxmock.NewRows(todoColumns).AddRow(int64(1), "a", "b", false))

	repo := postgres.NewTodoRepository(pool)
	got, err := repo.Insert(context.Background(), todo.NewTodo{Title: "a", Description: "b"})

	require.NoError(t, err)
	assert.Equal(t, &todo.Todo{ID: 1, Title: "a", Description: "b", Done: false}, got)
}

func TestInsert_EmptyStringsAndDone(t *testing.T) {
	t.Parallel()

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO todos")).
		WithArgs("", "", true).
		WillReturnRows(pgxmock.NewRows(todoColumns).AddRow(int64(7), "", "", true))

	got, err := postgres.NewTodoRepository(pool).Insert(context.Background(), todo.NewTodo{Done: true})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.True(t, got.Done)
}

func TestInsert_QueryErrorIsStorageError(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO todos")).
		WithArgs("a", "b", false).
		WillReturnError(refused)

	_, err := postgres.NewTodoRepository(pool).Insert(context.Background(), todo.NewTodo{Title: "a", Description: "b"})

	require.ErrorIs(t, err, domain.ErrStorage)
	require.ErrorIs(t, err, refused)
	assert.Equal(t, "failed to insert todo: connection refused", err.Error())
}

func TestInsert_NoRowReturned(t *testing.T) {
	t.Parallel()

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO todos")).
		WithArgs("a", "b", false).
		WillReturnRows(pgxmock.NewRows(todoColumns))

	_, err := postgres.NewTodoRepository(pool).Insert(context.Background(), todo.NewTodo{Title: "a", Description: "b"})

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestListAll_OrderedRows(t *testing.T) {
	t.Parallel()

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, done\nFROM todos\nORDER BY id")).
		WillReturnRows(pgxmock.NewRows(todoColumns).
			AddRow(int64(1), "first", "", false).
			AddRow(int64(2), "second", "d", true))

	got, err := postgres.NewTodoRepository(pool).ListAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []todo.Todo{
		{ID: 1, Title: "first", Description: "", Done: false},
		{ID: 2, Title: "second", Description: "d", Done: true},
	}, got)
}

func TestListAll_EmptyIsNonNil(t *testing.T) {
	t.Parallel()

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("FROM todos")).
		WillReturnRows(pgxmock.NewRows(todoColumns))

	got, err := postgres.NewTodoRepository(pool).ListAll(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListAll_RowErrorIsStorageError(t *testing.T) {
	t.Parallel()

	broken := errors.New("connection reset")

	pool := newMockPool(t)
	pool.ExpectQuery(regexp.QuoteMeta("FROM todos")).
		WillReturnRows(pgxmock.NewRows(todoColumns).
			AddRow(int64(1), "a", "b", false).
			RowError(0, broken))

	_, err := postgres.NewTodoRepository(pool).ListAll(context.Background())

	require.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, broken)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	down := errors.New("no route to host")
	pool.ExpectPing()
	pool.ExpectPing().WillReturnError(down)

	repo := postgres.NewTodoRepository(pool)

	assert.Equal(t, "postgres", repo.Name())
	require.NoError(t, repo.HealthCheck(context.Background()))

	err = repo.HealthCheck(context.Background())
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, down)
	assert.NoError(t, pool.ExpectationsWereMet())
}
