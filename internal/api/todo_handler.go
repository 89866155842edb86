package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cqrs-todo/internal/interfaces"
	"cqrs-todo/internal/pipeline"
	"cqrs-todo/internal/result"
	"cqrs-todo/internal/service"
	"cqrs-todo/internal/validation"
)

// TodoHandler exposes the todo operations in both route styles. The
// pipelines are built once and shared by the two styles.
type TodoHandler struct {
	logger *slog.Logger

	getTodos     *pipeline.Pipeline[service.GetTodosQuery, result.Value[[]service.TodoSummary]]
	getTodo      *pipeline.Pipeline[service.GetTodoQuery, result.Value[service.TodoDetails]]
	createTodo   *pipeline.Pipeline[service.CreateTodoCommand, result.Value[service.CreateTodoResponse]]
	completeTodo *pipeline.Pipeline[service.CompleteTodoCommand, result.Result]
	updateTodo   *pipeline.Pipeline[service.UpdateTodoCommand, result.Result]
	deleteTodo   *pipeline.Pipeline[service.DeleteTodoCommand, result.Result]
}

func NewTodoHandler(svc interfaces.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		logger:       logger,
		getTodos:     pipeline.New(logger, svc.GetTodos),
		getTodo:      pipeline.New(logger, svc.GetTodo, validation.Struct[service.GetTodoQuery]()),
		createTodo:   pipeline.New(logger, svc.CreateTodo, validation.Struct[service.CreateTodoCommand]()),
		completeTodo: pipeline.New(logger, svc.CompleteTodo, validation.Struct[service.CompleteTodoCommand]()),
		updateTodo:   pipeline.New(logger, svc.UpdateTodo, validation.Struct[service.UpdateTodoCommand]()),
		deleteTodo:   pipeline.New(logger, svc.DeleteTodo, validation.Struct[service.DeleteTodoCommand]()),
	}
}

// RegisterSimple installs the routes whose results are projected
// automatically.
func (h *TodoHandler) RegisterSimple(r chi.Router) {
	MapGet(r, "/", h.getTodos)
	MapGet(r, "/{todoId}", h.getTodo)
	MapPostFromBody(r, "/", h.createTodo, Created(todoLocation))
	MapPost(r, "/{todoId}/complete", h.completeTodo)
	MapPut(r, "/{todoId}", h.updateTodo)
	MapDelete(r, "/{todoId}", h.deleteTodo)
}

// RegisterExplicit installs the routes with explicitly registered success
// and error handlers. It fails if a route is wired incompletely.
func (h *TodoHandler) RegisterExplicit(r chi.Router) error {
	getTodos := ExplicitQuery(h.logger, http.MethodGet, "/", FromPath[service.GetTodosQuery](), h.getTodos).
		OnSuccess(DefaultSuccess[service.GetTodosQuery, []service.TodoSummary])
	OnError(getTodos, DefaultError[service.GetTodosQuery])

	getTodo := ExplicitQuery(h.logger, http.MethodGet, "/{todoId}", FromPath[service.GetTodoQuery](), h.getTodo).
		OnSuccess(DefaultSuccess[service.GetTodoQuery, service.TodoDetails])
	OnError(getTodo, NotFoundError[service.GetTodoQuery])
	OnError(getTodo, DefaultError[service.GetTodoQuery])

	createTodo := ExplicitQuery(h.logger, http.MethodPost, "/", FromBody[service.CreateTodoCommand](), h.createTodo).
		OnSuccess(func(w http.ResponseWriter, r *http.Request, _ RouteContext[service.CreateTodoCommand], value service.CreateTodoResponse) {
			Created(todoLocation)(w, r, value)
		})
	OnError(createTodo, DefaultError[service.CreateTodoCommand])

	completeTodo := ExplicitCommand(h.logger, http.MethodPost, "/{todoId}/complete", FromPath[service.CompleteTodoCommand](), h.completeTodo).
		OnSuccess(DefaultSuccess[service.CompleteTodoCommand, NoContent])
	OnError(completeTodo, NotFoundError[service.CompleteTodoCommand])
	OnError(completeTodo, DefaultError[service.CompleteTodoCommand])

	updateTodo := ExplicitCommand(h.logger, http.MethodPut, "/{todoId}", FromBody[service.UpdateTodoCommand](), h.updateTodo).
		OnSuccess(DefaultSuccess[service.UpdateTodoCommand, NoContent])
	OnError(updateTodo, NotFoundError[service.UpdateTodoCommand])
	OnError(updateTodo, DefaultError[service.UpdateTodoCommand])

	deleteTodo := ExplicitCommand(h.logger, http.MethodDelete, "/{todoId}", FromPath[service.DeleteTodoCommand](), h.deleteTodo).
		OnSuccess(DefaultSuccess[service.DeleteTodoCommand, NoContent])
	OnError(deleteTodo, DefaultError[service.DeleteTodoCommand])

	mounts := []func(chi.Router) error{
		getTodos.Mount, getTodo.Mount, createTodo.Mount,
		completeTodo.Mount, updateTodo.Mount, deleteTodo.Mount,
	}
	for _, mount := range mounts {
		if err := mount(r); err != nil {
			return err
		}
	}
	return nil
}

func todoLocation(r *http.Request, value service.CreateTodoResponse) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(r.URL.Path, "/"), value.ID)
}
