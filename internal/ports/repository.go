package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoRepository defines the storage port for the todos relation.
// Implemented by the postgres adapter; called by the application layer.
// Implementations never retry: every failure is returned to the caller
// wrapped as a *domain.StorageError.
type TodoRepository interface {
	// Insert stores a new todo and returns the stored row, including the
	// identifier assigned by storage.
	Insert(ctx context.Context, t todo.NewTodo) (*todo.Todo, error)

	// ListAll returns every stored todo ordered by ascending ID.
	ListAll(ctx context.Context) ([]todo.Todo, error)
}
