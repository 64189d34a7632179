// Package dto holds the HTTP request and response bodies and the RFC 9457
// problem responses of the inbound adapter.
package dto

import "github.com/jsamuelsen11/todo-service/internal/domain/todo"

// TodoResponse is the JSON form of a todo.
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// ToTodoResponse converts a domain todo.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
	}
}

// ToTodoListResponse converts todos preserving order. The result is never nil
// so an empty list encodes as [].
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, ToTodoResponse(&todos[i]))
	}
	return out
}
