package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo-service/models"
)

func TestCategoryRepository_CRUD(t *testing.T) {
	d := newTestDB(t, "catrepo")
	repo := NewCategoryRepository(d)
	ctx := context.Background()

	owner := mustCreateUser(t, d, "owner@example.com", "owner")

	c, err := repo.Create(ctx, owner.ID, models.CategoryCreate{
		Name:        "Work",
		Description: "work stuff",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 || c.Color != "#000000" {
		t.Fatalf("unexpected category: %+v", c)
	}

	g, err := repo.Get(ctx, c.ID, owner.ID)
	if err != nil || g.Name != "Work" {
		t.Fatalf("get: %v %+v", err, g)
	}

	list, err := repo.List(ctx, owner.ID, 0, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	ok, err := repo.Delete(ctx, c.ID, owner.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v ok=%v", err, ok)
	}
	ok, err = repo.Delete(ctx, c.ID, owner.ID)
	if err != nil || ok {
		t.Errorf("double delete ok=%v err=%v, want false/nil", ok, err)
	}
}

func TestCategoryRepository_OwnerScoping(t *testing.T) {
	d := newTestDB(t, "catrepo_scope")
	repo := NewCategoryRepository(d)
	ctx := context.Background()

	alice := mustCreateUser(t, d, "alice@example.com", "alice")
	mallory := mustCreateUser(t, d, "mallory@example.com", "mallory")

	c, err := repo.Create(ctx, alice.ID, models.CategoryCreate{Name: "Private"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A foreign-owned id must look exactly like a missing one.
	if _, err := repo.Get(ctx, c.ID, mallory.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get err = %v, want ErrNotFound", err)
	}
	if _, err := repo.Get(ctx, 9999, mallory.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing get err = %v, want ErrNotFound", err)
	}
	if _, err := repo.Update(ctx, c.ID, mallory.ID, models.CategoryUpdate{Name: strPtr("hacked")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update err = %v, want ErrNotFound", err)
	}
	if ok, err := repo.Delete(ctx, c.ID, mallory.ID); err != nil || ok {
		t.Errorf("foreign delete ok=%v err=%v, want false/nil", ok, err)
	}

	list, err := repo.List(ctx, mallory.ID, 0, 10)
	if err != nil || len(list) != 0 {
		t.Errorf("foreign list: %v len=%d, want 0", err, len(list))
	}
}

func TestCategoryRepository_UpdateSparse(t *testing.T) {
	d := newTestDB(t, "catrepo_update")
	repo := NewCategoryRepository(d)
	ctx := context.Background()

	owner := mustCreateUser(t, d, "ed@example.com", "ed")
	c, err := repo.Create(ctx, owner.ID, models.CategoryCreate{
		Name:        "Home",
		Description: "chores",
		Color:       "#FF5733",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := repo.Update(ctx, c.ID, owner.ID, models.CategoryUpdate{Name: strPtr("House")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "House" || got.Description != "chores" || got.Color != "#FF5733" {
		t.Errorf("sparse update touched other fields: %+v", got)
	}
	if !got.UpdatedAt.After(c.UpdatedAt) {
		t.Errorf("updated_at not refreshed")
	}
}

func TestCategoryRepository_DeleteDetachesTasks(t *testing.T) {
	d := newTestDB(t, "catrepo_detach")
	cats := NewCategoryRepository(d)
	tasks := NewTaskRepository(d)
	ctx := context.Background()

	owner := mustCreateUser(t, d, "fay@example.com", "fay")
	c, err := cats.Create(ctx, owner.ID, models.CategoryCreate{Name: "Errands"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	task, err := tasks.Create(ctx, owner.ID, models.TaskCreate{Title: "groceries", CategoryID: &c.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if ok, err := cats.Delete(ctx, c.ID, owner.ID); err != nil || !ok {
		t.Fatalf("delete category: %v ok=%v", err, ok)
	}

	got, err := tasks.Get(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("task still references deleted category: %v", *got.CategoryID)
	}
}
