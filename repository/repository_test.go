package repository

import (
	"context"
	"testing"

	"todo-service/database"
	"todo-service/models"

	"github.com/jmoiron/sqlx"
)

// newTestDB opens an in-memory SQLite database with migrations applied.
// A shared-cache named database keeps the schema visible across pooled
// connections for the duration of the test.
func newTestDB(t *testing.T, name string) *sqlx.DB {
	t.Helper()
	d, err := database.Open("file:" + name + "?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mustCreateUser(t *testing.T, d *sqlx.DB, email, username string) *models.User {
	t.Helper()
	u, err := NewUserRepository(d).Create(context.Background(), models.UserCreate{
		Email:    email,
		Username: username,
		FullName: "Test User",
	}, "fake-bcrypt-hash")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(v int64) *int64 { return &v }
