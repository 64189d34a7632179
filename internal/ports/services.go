package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoService defines the service port for todo use cases.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// CreateTodo persists a new todo and returns it with its assigned ID.
	// Returns an error wrapping domain.ErrStorage if storage fails.
	CreateTodo(ctx context.Context, t todo.NewTodo) (*todo.Todo, error)

	// ListTodos returns all todos. An empty store yields an empty, non-nil slice.
	// Returns an error wrapping domain.ErrStorage if storage fails.
	ListTodos(ctx context.Context) ([]todo.Todo, error)
}
