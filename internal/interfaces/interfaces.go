package interfaces

import (
	"context"

	"cqrs-todo/internal/result"
	"cqrs-todo/internal/service"
)

// TodoService defines the contract for the todo query and command handlers.
// Every method is a pipeline handler: expected failures come back as a
// failed result, a non-nil error is a fault.
type TodoService interface {
	GetTodos(ctx context.Context, q service.GetTodosQuery) (result.Value[[]service.TodoSummary], error)
	GetTodo(ctx context.Context, q service.GetTodoQuery) (result.Value[service.TodoDetails], error)
	CreateTodo(ctx context.Context, cmd service.CreateTodoCommand) (result.Value[service.CreateTodoResponse], error)
	CompleteTodo(ctx context.Context, cmd service.CompleteTodoCommand) (result.Result, error)
	UpdateTodo(ctx context.Context, cmd service.UpdateTodoCommand) (result.Result, error)
	DeleteTodo(ctx context.Context, cmd service.DeleteTodoCommand) (result.Result, error)
}
