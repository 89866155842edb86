package repository

import (
	"context"

	"github.com/google/uuid"

	"cqrs-todo/internal/model"
)

// TodoRepository defines the interface for todo storage operations.
// Each call is atomic on its own; callers do not get transactions across calls.
type TodoRepository interface {
	List(ctx context.Context) ([]*model.Todo, error)
	// GetByID returns ErrNotFound when no todo has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	Add(ctx context.Context, todo *model.Todo) error
	// Update returns ErrNotFound when no todo has the todo's id.
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
}
