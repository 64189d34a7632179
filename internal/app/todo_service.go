// Package app holds the application services that sit between the inbound
// HTTP adapter and the storage port.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of a TodoRepository. It
// adds structured logging and nothing else: storage errors are returned
// unchanged so the HTTP layer can map them.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards output.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// CreateTodo stores t and returns it with its assigned ID.
func (s *TodoService) CreateTodo(ctx context.Context, t todo.NewTodo) (*todo.Todo, error) {
	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "todo created", slog.Int64("todo_id", created.ID))
	return created, nil
}

// ListTodos returns every todo in ascending ID order.
func (s *TodoService) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	todos, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}
