// Package postgres implements [ports.TodoRepository] on PostgreSQL with pgx.
//
// [TodoRepository] issues the SQL. [Guard] decorates any repository with a
// circuit breaker, a client span and operation metrics; cmd/server composes
// the two:
//
//	repo := postgres.NewGuard(postgres.NewTodoRepository(pool), cfg.Breaker, metrics, logger)
package postgres
