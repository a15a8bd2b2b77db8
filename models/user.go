package models

import "time"

// User represents a registered account in the system.
// HashedPassword is bcrypt-hashed and never serialized in responses.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"full_name,omitempty" db:"full_name"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreate represents the request to register a new user.
// Password is plaintext here; it is hashed before storage.
type UserCreate struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// UserUpdate represents a sparse self-service update.
// Nil fields are left untouched.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"` // Plaintext; re-hashed if provided
	IsActive *bool   `json:"is_active,omitempty"`
}
