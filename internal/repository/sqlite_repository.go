package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cqrs-todo/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a TodoRepository backed by db. The schema is
// created by database.InitDB.
func NewSQLiteRepository(db *sql.DB) TodoRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) List(ctx context.Context) ([]*model.Todo, error) {
	query := "SELECT id, title, description, is_completed, created_at, updated_at FROM todos ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []*model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate todos: %w", err)
	}
	return todos, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	query := "SELECT id, title, description, is_completed, created_at, updated_at FROM todos WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, id.String())
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (r *sqliteRepository) Add(ctx context.Context, todo *model.Todo) error {
	query := "INSERT INTO todos (id, title, description, is_completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		todo.ID.String(),
		todo.Title,
		todo.Description,
		todo.IsCompleted,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert todo: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Update(ctx context.Context, todo *model.Todo) error {
	query := "UPDATE todos SET title = ?, description = ?, is_completed = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.IsCompleted,
		todo.UpdatedAt,
		todo.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("could not update todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM todos WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("could not delete todo: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*model.Todo, error) {
	var todo model.Todo
	var id string
	if err := s.Scan(&id, &todo.Title, &todo.Description, &todo.IsCompleted, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("stored todo has invalid id %q: %w", id, err)
	}
	todo.ID = parsed
	return &todo, nil
}
