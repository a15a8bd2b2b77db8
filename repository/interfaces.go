package repository

import (
	"context"

	"todo-service/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, in models.UserCreate, hashedPassword string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, id int64, in models.UserUpdate, hashedPassword *string) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryRepositoryI defines owner-scoped operations on Category entities.
type CategoryRepositoryI interface {
	Create(ctx context.Context, ownerID int64, in models.CategoryCreate) (*models.Category, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Category, error)
	List(ctx context.Context, ownerID int64, skip, limit int) ([]models.Category, error)
	Update(ctx context.Context, id, ownerID int64, in models.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

// TaskRepositoryI defines owner-scoped operations on Task entities.
type TaskRepositoryI interface {
	Create(ctx context.Context, ownerID int64, in models.TaskCreate) (*models.Task, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Task, error)
	List(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id, ownerID int64, in models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
	ToggleCompletion(ctx context.Context, id, ownerID int64) (*models.Task, error)
}
