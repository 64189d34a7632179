// Package todo holds the todo entity persisted in the todos relation.
package todo

// Todo is a persisted task item. ID is assigned by storage on insert and never
// changes afterwards.
type Todo struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Done        bool   `db:"done"`
}

// NewTodo carries the caller-supplied fields of a todo that has not been
// stored yet.
type NewTodo struct {
	Title       string
	Description string
	Done        bool
}
