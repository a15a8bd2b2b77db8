package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"todo-service/models"

	"github.com/jmoiron/sqlx"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task owned by ownerID. Category ownership is the
// handler layer's responsibility; this insert trusts category_id.
func (r *TaskRepository) Create(ctx context.Context, ownerID int64, in models.TaskCreate) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, completed, due_date, owner_id, category_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Description, in.Completed, in.DueDate, ownerID, in.CategoryID, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
		OwnerID:     ownerID,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Get returns the task only when it belongs to ownerID; a task owned by
// someone else reads as ErrNotFound.
func (r *TaskRepository) Get(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t models.Task
	err := r.db.GetContext(ctx, &t,
		`SELECT * FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns the owner's tasks, optionally filtered by category and
// completion state, paginated by skip/limit.
func (r *TaskRepository) List(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT * FROM tasks WHERE owner_id = ?`
	args := []interface{}{ownerID}

	if filter.CategoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, *filter.CategoryID)
	}
	if filter.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *filter.Completed)
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, skip)

	var out []models.Task
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges the provided fields and refreshes updated_at.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID int64, in models.TaskUpdate) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	setParts := []string{}
	args := []interface{}{}

	if in.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Completed != nil {
		setParts = append(setParts, "completed = ?")
		args = append(args, *in.Completed)
	}
	if in.DueDate != nil {
		setParts = append(setParts, "due_date = ?")
		args = append(args, *in.DueDate)
	}
	if in.CategoryID != nil {
		setParts = append(setParts, "category_id = ?")
		args = append(args, *in.CategoryID)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id, ownerID)

	query := "UPDATE tasks SET " + strings.Join(setParts, ", ") + " WHERE id = ? AND owner_id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id, ownerID)
}

// Delete removes the task when owned by ownerID. Reports false when the
// record is absent or foreign-owned, so a double delete is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ToggleCompletion flips the completed flag and refreshes updated_at.
func (r *TaskRepository) ToggleCompletion(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ? AND owner_id = ?`,
		time.Now(), id, ownerID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id, ownerID)
}
