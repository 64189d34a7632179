package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

const (
	insertTodoSQL = `INSERT INTO todos (title, description, done)
VALUES ($1, $2, $3)
RETURNING id, title, description, done`

	listTodosSQL = `SELECT id, title, description, done
FROM todos
ORDER BY id`
)

// Querier is the subset of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

var (
	_ ports.TodoRepository = (*TodoRepository)(nil)
	_ ports.HealthChecker  = (*TodoRepository)(nil)
)

// TodoRepository reads and writes the todos relation. It never retries;
// cancelling ctx aborts the running statement.
type TodoRepository struct {
	db Querier
}

// NewTodoRepository returns a repository backed by db.
func NewTodoRepository(db Querier) *TodoRepository {
	return &TodoRepository{db: db}
}

// Insert stores t and returns the row as written, with its assigned ID.
func (r *TodoRepository) Insert(ctx context.Context, t todo.NewTodo) (*todo.Todo, error) {
	rows, err := r.db.Query(ctx, insertTodoSQL, t.Title, t.Description, t.Done)
	if err != nil {
		return nil, &domain.StorageError{Op: "insert todo", Err: err}
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[todo.Todo])
	if err != nil {
		return nil, &domain.StorageError{Op: "insert todo", Err: err}
	}

	return created, nil
}

// ListAll returns every todo ordered by ascending ID. An empty relation
// yields an empty, non-nil slice.
func (r *TodoRepository) ListAll(ctx context.Context) ([]todo.Todo, error) {
	rows, err := r.db.Query(ctx, listTodosSQL)
	if err != nil {
		return nil, &domain.StorageError{Op: "list todos", Err: err}
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[todo.Todo])
	if err != nil {
		return nil, &domain.StorageError{Op: "list todos", Err: err}
	}

	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

// Name implements [ports.HealthChecker].
func (r *TodoRepository) Name() string {
	return "postgres"
}

// HealthCheck pings the database.
func (r *TodoRepository) HealthCheck(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return &domain.StorageError{Op: "ping database", Err: err}
	}
	return nil
}
