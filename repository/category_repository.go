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

const defaultCategoryColor = "#000000"

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category owned by ownerID.
func (r *CategoryRepository) Create(ctx context.Context, ownerID int64, in models.CategoryCreate) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	color := in.Color
	if color == "" {
		color = defaultCategoryColor
	}
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, description, color, owner_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, color, ownerID, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Category{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Get returns the category only when it belongs to ownerID; a category owned
// by someone else reads as ErrNotFound.
func (r *CategoryRepository) Get(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Category
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context, ownerID int64, skip, limit int) ([]models.Category, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Category
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM categories WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges the provided fields and refreshes updated_at.
func (r *CategoryRepository) Update(ctx context.Context, id, ownerID int64, in models.CategoryUpdate) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	setParts := []string{}
	args := []interface{}{}

	if in.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Color != nil {
		setParts = append(setParts, "color = ?")
		args = append(args, *in.Color)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id, ownerID)

	query := "UPDATE categories SET " + strings.Join(setParts, ", ") + " WHERE id = ? AND owner_id = ?"
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

// Delete removes the category when owned by ownerID. Tasks referencing it
// fall back to NULL category via ON DELETE SET NULL. Reports false when the
// record is absent or foreign-owned.
func (r *CategoryRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
