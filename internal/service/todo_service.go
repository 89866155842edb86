package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	app_errors "cqrs-todo/internal/errors"
	"cqrs-todo/internal/model"
	"cqrs-todo/internal/repository"
	"cqrs-todo/internal/result"
)

// TodoService holds the todo query and command handlers. Expected failures
// come back as failed results; repository faults are returned as errors and
// left to the pipeline to classify.
type TodoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) GetTodos(ctx context.Context, _ GetTodosQuery) (result.Value[[]TodoSummary], error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return result.Value[[]TodoSummary]{}, fmt.Errorf("failed to list todos: %w", err)
	}

	summaries := make([]TodoSummary, 0, len(todos))
	for _, t := range todos {
		summaries = append(summaries, TodoSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			IsCompleted: t.IsCompleted,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return result.Ok(summaries), nil
}

func (s *TodoService) GetTodo(ctx context.Context, q GetTodoQuery) (result.Value[TodoDetails], error) {
	todo, appErr, err := s.find(ctx, q.TodoID)
	if err != nil {
		return result.Value[TodoDetails]{}, err
	}
	if appErr != nil {
		return result.FailValue[TodoDetails](appErr), nil
	}
	return result.Ok(newTodoDetails(todo)), nil
}

func (s *TodoService) CreateTodo(ctx context.Context, cmd CreateTodoCommand) (result.Value[CreateTodoResponse], error) {
	todo := model.NewTodo(cmd.Title, cmd.Description)
	if err := s.repo.Add(ctx, todo); err != nil {
		return result.Value[CreateTodoResponse]{}, fmt.Errorf("failed to add todo: %w", err)
	}
	return result.Ok(CreateTodoResponse{ID: todo.ID}), nil
}

func (s *TodoService) CompleteTodo(ctx context.Context, cmd CompleteTodoCommand) (result.Result, error) {
	todo, appErr, err := s.find(ctx, cmd.TodoID)
	if err != nil {
		return result.Result{}, err
	}
	if appErr != nil {
		return result.Fail(appErr), nil
	}

	if todo.IsCompleted {
		return result.Fail(app_errors.Conflict(
			"Todo.AlreadyCompleted",
			fmt.Sprintf("The todo %s is already completed.", todo.ID),
		)), nil
	}

	todo.Complete()
	return s.save(ctx, todo)
}

func (s *TodoService) UpdateTodo(ctx context.Context, cmd UpdateTodoCommand) (result.Result, error) {
	todo, appErr, err := s.find(ctx, cmd.TodoID)
	if err != nil {
		return result.Result{}, err
	}
	if appErr != nil {
		return result.Fail(appErr), nil
	}

	if todo.IsCompleted {
		return result.Fail(app_errors.Conflict(
			"Todo.Completed",
			fmt.Sprintf("The todo %s is completed and can no longer be changed.", todo.ID),
		)), nil
	}

	todo.Edit(cmd.Title, cmd.Description)
	return s.save(ctx, todo)
}

func (s *TodoService) DeleteTodo(ctx context.Context, cmd DeleteTodoCommand) (result.Result, error) {
	if err := s.repo.Delete(ctx, cmd.TodoID); err != nil {
		return result.Result{}, fmt.Errorf("failed to delete todo: %w", err)
	}
	return result.Success(), nil
}

// find loads a todo. Absence is reported as a not-found Error, anything else
// as a fault.
func (s *TodoService) find(ctx context.Context, id uuid.UUID) (*model.Todo, *app_errors.Error, error) {
	todo, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app_errors.NotFound(""), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil, nil
}

// save persists a modified todo. A todo deleted since it was loaded is
// reported as not found.
func (s *TodoService) save(ctx context.Context, todo *model.Todo) (result.Result, error) {
	err := s.repo.Update(ctx, todo)
	if errors.Is(err, repository.ErrNotFound) {
		return result.Fail(app_errors.NotFound("")), nil
	}
	if err != nil {
		return result.Result{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return result.Success(), nil
}
