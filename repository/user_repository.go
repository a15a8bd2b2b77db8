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

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with an already-hashed password.
// Email and username are checked for uniqueness first; a concurrent insert
// that slips past the check is caught via the unique index and reported the
// same way, as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, in models.UserCreate, hashedPassword string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := r.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, full_name, hashed_password, is_active, created_at, updated_at)
         VALUES (?, ?, ?, ?, 1, ?, ?)`,
		in.Email, in.Username, in.FullName, hashedPassword, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:             id,
		Email:          in.Email,
		Username:       in.Username,
		FullName:       in.FullName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.User
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update merges the provided fields onto the stored user and refreshes
// updated_at. hashedPassword, when non-nil, replaces the stored hash; the
// caller hashes the plaintext from in.Password before getting here.
func (r *UserRepository) Update(ctx context.Context, id int64, in models.UserUpdate, hashedPassword *string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	setParts := []string{}
	args := []interface{}{}

	if in.Email != nil {
		setParts = append(setParts, "email = ?")
		args = append(args, *in.Email)
	}
	if in.Username != nil {
		setParts = append(setParts, "username = ?")
		args = append(args, *in.Username)
	}
	if in.FullName != nil {
		setParts = append(setParts, "full_name = ?")
		args = append(args, *in.FullName)
	}
	if hashedPassword != nil {
		setParts = append(setParts, "hashed_password = ?")
		args = append(args, *hashedPassword)
	}
	if in.IsActive != nil {
		setParts = append(setParts, "is_active = ?")
		args = append(args, *in.IsActive)
	}

	setParts = append(setParts, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user. Tasks and categories owned by the user are removed
// through ON DELETE CASCADE. Reports false when the user does not exist.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
