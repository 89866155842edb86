package service

import (
	"time"

	"github.com/google/uuid"

	"cqrs-todo/internal/model"
)

// GetTodosQuery lists every todo.
type GetTodosQuery struct{}

// GetTodoQuery fetches a single todo.
type GetTodoQuery struct {
	TodoID uuid.UUID `json:"todoId" validate:"required"`
}

// CreateTodoCommand creates an open todo.
type CreateTodoCommand struct {
	Title       string `json:"title" validate:"required,min=5,max=20"`
	Description string `json:"description" validate:"required,max=100"`
}

// CompleteTodoCommand marks a todo as completed.
type CompleteTodoCommand struct {
	TodoID uuid.UUID `json:"todoId" validate:"required"`
}

// UpdateTodoCommand replaces the title and description of an open todo.
// TodoID comes from the path and overrides any value in the body.
type UpdateTodoCommand struct {
	TodoID      uuid.UUID `json:"todoId" validate:"required"`
	Title       string    `json:"title" validate:"required,min=5,max=20"`
	Description string    `json:"description" validate:"required,max=100"`
}

// DeleteTodoCommand removes a todo. Deleting a missing todo succeeds.
type DeleteTodoCommand struct {
	TodoID uuid.UUID `json:"todoId" validate:"required"`
}

// TodoSummary is a list entry.
type TodoSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoDetails is the full representation of a todo.
type TodoDetails struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTodoResponse carries the id of a created todo.
type CreateTodoResponse struct {
	ID uuid.UUID `json:"id"`
}

func newTodoDetails(t *model.Todo) TodoDetails {
	return TodoDetails{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
