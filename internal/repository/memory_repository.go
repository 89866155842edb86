package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"cqrs-todo/internal/model"
)

type memoryRepository struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]model.Todo
}

// NewMemoryRepository returns a TodoRepository that keeps todos in process
// memory. Stored values are copied in and out so callers never share state.
func NewMemoryRepository() TodoRepository {
	return &memoryRepository{todos: make(map[uuid.UUID]model.Todo)}
}

func (r *memoryRepository) List(ctx context.Context) ([]*model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		todo := t
		todos = append(todos, &todo)
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memoryRepository) Add(ctx context.Context, todo *model.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[todo.ID] = *todo
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, todo *model.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[todo.ID]; !ok {
		return ErrNotFound
	}
	r.todos[todo.ID] = *todo
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.todos, id)
	return nil
}
