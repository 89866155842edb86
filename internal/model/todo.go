package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single item of the todo list. Completion is a one-way transition.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTodo creates an open todo with a fresh id.
func NewTodo(title, description string) *Todo {
	now := time.Now().UTC()
	return &Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Complete marks the todo as completed.
func (t *Todo) Complete() {
	t.IsCompleted = true
	t.UpdatedAt = time.Now().UTC()
}

// Edit replaces the title and description.
func (t *Todo) Edit(title, description string) {
	t.Title = title
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
}
