package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cqrs-todo/internal/model"
)

const todosIndexKey = "todos"

type redisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository returns a TodoRepository backed by Redis. Each todo is
// stored as JSON under todo:<id>; the "todos" sorted set orders ids by
// creation time.
func NewRedisRepository(rdb *redis.Client) TodoRepository {
	return &redisRepository{rdb: rdb}
}

func todoKey(id uuid.UUID) string { return fmt.Sprintf("todo:%s", id) }

func (r *redisRepository) List(ctx context.Context) ([]*model.Todo, error) {
	ids, err := r.rdb.ZRange(ctx, todosIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not list todo ids: %w", err)
	}
	todos := make([]*model.Todo, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("todo index holds invalid id %q: %w", raw, err)
		}
		todo, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry outlived its todo; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

func (r *redisRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	data, err := r.rdb.Get(ctx, todoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get todo: %w", err)
	}
	var todo model.Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return nil, fmt.Errorf("could not decode todo: %w", err)
	}
	return &todo, nil
}

func (r *redisRepository) Add(ctx context.Context, todo *model.Todo) error {
	data, err := json.Marshal(todo)
	if err != nil {
		return fmt.Errorf("could not encode todo: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, todoKey(todo.ID), data, 0)
	pipe.ZAdd(ctx, todosIndexKey, redis.Z{Score: float64(todo.CreatedAt.UnixNano()), Member: todo.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("could not store todo: %w", err)
	}
	return nil
}

func (r *redisRepository) Update(ctx context.Context, todo *model.Todo) error {
	data, err := json.Marshal(todo)
	if err != nil {
		return fmt.Errorf("could not encode todo: %w", err)
	}
	// XX only overwrites an existing key.
	ok, err := r.rdb.SetXX(ctx, todoKey(todo.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("could not update todo: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, todoKey(id))
	pipe.ZRem(ctx, todosIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute todo deletion pipeline: %w", err)
	}
	return nil
}
