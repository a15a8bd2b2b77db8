package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"todo-service/auth"
	"todo-service/models"
	"todo-service/repository"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// TaskHandler handles owner-scoped task CRUD plus completion toggling.
// It also holds the category repository to verify that a referenced
// category belongs to the caller before any task write.
type TaskHandler struct {
	tasks      repository.TaskRepositoryI
	categories repository.CategoryRepositoryI
}

func NewTaskHandler(tasks repository.TaskRepositoryI, categories repository.CategoryRepositoryI) *TaskHandler {
	return &TaskHandler{tasks: tasks, categories: categories}
}

// checkCategoryRef verifies the category exists and is owned by the caller.
// A foreign-owned category reads as not-found, never forbidden, so the
// response does not reveal that the id exists at all.
func (h *TaskHandler) checkCategoryRef(w http.ResponseWriter, r *http.Request, categoryID, ownerID int64) bool {
	_, err := h.categories.Get(r.Context(), categoryID, ownerID)
	if err == nil {
		return true
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Category not found"))
	} else {
		writeRepositoryError(w, r, err, "Category")
	}
	return false
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}
	if req.Title == "" {
		writeValidationError(w, "Title is required")
		return
	}
	if req.CategoryID != nil && !h.checkCategoryRef(w, r, *req.CategoryID, current.ID) {
		return
	}

	task, err := h.tasks.Create(r.Context(), current.ID, req)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}

	logRequest(r, "info", "Task created", zap.Int64("task_id", task.ID), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusCreated, task)
}

// List handles GET /tasks/ with optional category_id and completed filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	skip, limit := pagination(r)
	filter := models.TaskFilter{Skip: skip, Limit: limit}

	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeValidationError(w, "Invalid category_id filter")
			return
		}
		filter.CategoryID = &id
	}
	if v := r.URL.Query().Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			writeValidationError(w, "Invalid completed filter")
			return
		}
		filter.Completed = &completed
	}

	tasks, err := h.tasks.List(r.Context(), current.ID, filter)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid task ID")
		return
	}

	task, err := h.tasks.Get(r.Context(), id, current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /tasks/{id} - sparse update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid task ID")
		return
	}

	var req models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}
	if req.Title != nil && *req.Title == "" {
		writeValidationError(w, "Title cannot be empty")
		return
	}
	if req.CategoryID != nil && !h.checkCategoryRef(w, r, *req.CategoryID, current.ID) {
		return
	}

	task, err := h.tasks.Update(r.Context(), id, current.ID, req)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}

	logRequest(r, "info", "Task updated", zap.Int64("task_id", id), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid task ID")
		return
	}

	deleted, err := h.tasks.Delete(r.Context(), id, current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Task not found"))
		return
	}

	logRequest(r, "info", "Task deleted", zap.Int64("task_id", id), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// Toggle handles PATCH /tasks/{id}/toggle - flips the completed flag.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid task ID")
		return
	}

	task, err := h.tasks.ToggleCompletion(r.Context(), id, current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "Task")
		return
	}

	logRequest(r, "info", "Task completion toggled",
		zap.Int64("task_id", id), zap.Bool("completed", task.Completed))
	writeJSON(w, http.StatusOK, task)
}
