package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo-service/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	d := newTestDB(t, "userrepo")
	repo := NewUserRepository(d)
	ctx := context.Background()

	u, err := repo.Create(ctx, models.UserCreate{
		Email:    "alice@example.com",
		Username: "alice",
		FullName: "Alice A",
	}, "hash-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || !u.IsActive {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g.Username != "alice" {
		t.Fatalf("get by id: %v %+v", err, g)
	}
	g2, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil || g2.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g2)
	}
	g3, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g3.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g3)
	}
	if g3.HashedPassword != "hash-1" {
		t.Errorf("hash not persisted: %q", g3.HashedPassword)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id err = %v, want ErrNotFound", err)
	}
}

func TestUserRepository_DuplicateEmailAndUsername(t *testing.T) {
	d := newTestDB(t, "userrepo_dup")
	repo := NewUserRepository(d)
	ctx := context.Background()

	mustCreateUser(t, d, "bob@example.com", "bob")

	cases := []models.UserCreate{
		{Email: "bob@example.com", Username: "bob2"}, // duplicate email
		{Email: "bob2@example.com", Username: "bob"}, // duplicate username
	}
	for _, in := range cases {
		if _, err := repo.Create(ctx, in, "hash"); !errors.Is(err, ErrDuplicate) {
			t.Errorf("create %+v err = %v, want ErrDuplicate", in, err)
		}
	}

	// No partial rows persisted.
	list, err := repo.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(users) = %d, want 1", len(list))
	}
}

func TestUserRepository_UpdateSparse(t *testing.T) {
	d := newTestDB(t, "userrepo_update")
	repo := NewUserRepository(d)
	ctx := context.Background()

	u := mustCreateUser(t, d, "carol@example.com", "carol")
	time.Sleep(5 * time.Millisecond)

	got, err := repo.Update(ctx, u.ID, models.UserUpdate{FullName: strPtr("Carol C")}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FullName != "Carol C" {
		t.Errorf("full_name = %q", got.FullName)
	}
	if got.Email != "carol@example.com" || got.Username != "carol" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(u.UpdatedAt) {
		t.Errorf("updated_at not refreshed: %v <= %v", got.UpdatedAt, u.UpdatedAt)
	}

	// Password change goes through the hashed parameter.
	got, err = repo.Update(ctx, u.ID, models.UserUpdate{}, strPtr("hash-2"))
	if err != nil {
		t.Fatalf("update hash: %v", err)
	}
	if got.HashedPassword != "hash-2" {
		t.Errorf("hash = %q, want hash-2", got.HashedPassword)
	}

	if _, err := repo.Update(ctx, 9999, models.UserUpdate{FullName: strPtr("x")}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestUserRepository_UpdateDuplicate(t *testing.T) {
	d := newTestDB(t, "userrepo_update_dup")
	repo := NewUserRepository(d)
	ctx := context.Background()

	mustCreateUser(t, d, "a@example.com", "usera")
	b := mustCreateUser(t, d, "b@example.com", "userb")

	if _, err := repo.Update(ctx, b.ID, models.UserUpdate{Email: strPtr("a@example.com")}, nil); !errors.Is(err, ErrDuplicate) {
		t.Errorf("update to taken email err = %v, want ErrDuplicate", err)
	}
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	d := newTestDB(t, "userrepo_delete")
	users := NewUserRepository(d)
	cats := NewCategoryRepository(d)
	tasks := NewTaskRepository(d)
	ctx := context.Background()

	u := mustCreateUser(t, d, "dave@example.com", "dave")
	c, err := cats.Create(ctx, u.ID, models.CategoryCreate{Name: "Work"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := tasks.Create(ctx, u.ID, models.TaskCreate{Title: "report", CategoryID: &c.ID}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	ok, err := users.Delete(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v ok=%v", err, ok)
	}

	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM tasks WHERE owner_id = ?`, u.ID).Scan(&n); err != nil || n != 0 {
		t.Errorf("tasks remaining = %d err=%v, want 0", n, err)
	}
	if err := d.QueryRow(`SELECT COUNT(*) FROM categories WHERE owner_id = ?`, u.ID).Scan(&n); err != nil || n != 0 {
		t.Errorf("categories remaining = %d err=%v, want 0", n, err)
	}

	// Second delete is not an error, just a miss.
	ok, err = users.Delete(ctx, u.ID)
	if err != nil || ok {
		t.Errorf("double delete ok=%v err=%v, want false/nil", ok, err)
	}
}
