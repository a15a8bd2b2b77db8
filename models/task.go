package models

import "time"

// Task is a single to-do item owned by a user.
// CategoryID, when set, must reference a category of the same owner;
// the handler layer enforces that before writes.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	OwnerID     int64      `json:"owner_id" db:"owner_id"`
	CategoryID  *int64     `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskCreate represents the request to create a task.
type TaskCreate struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  *int64     `json:"category_id,omitempty"`
}

// TaskUpdate represents a sparse task update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  *int64     `json:"category_id,omitempty"`
}

// TaskFilter narrows task listings. All fields are optional except the
// owner scoping applied by the repository.
type TaskFilter struct {
	CategoryID *int64
	Completed  *bool
	Skip       int
	Limit      int
}
