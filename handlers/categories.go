package handlers

import (
	"encoding/json"
	"net/http"

	"todo-service/auth"
	"todo-service/models"
	"todo-service/repository"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// CategoryHandler handles owner-scoped category CRUD.
type CategoryHandler struct {
	categories repository.CategoryRepositoryI
}

func NewCategoryHandler(categories repository.CategoryRepositoryI) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create handles POST /categories/.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "Name is required")
		return
	}

	category, err := h.categories.Create(r.Context(), current.ID, req)
	if err != nil {
		writeRepositoryError(w, r, err, "Category")
		return
	}

	logRequest(r, "info", "Category created", zap.Int64("category_id", category.ID), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusCreated, category)
}

// List handles GET /categories/.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	skip, limit := pagination(r)
	categories, err := h.categories.List(r.Context(), current.ID, skip, limit)
	if err != nil {
		writeRepositoryError(w, r, err, "Category")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid category ID")
		return
	}

	category, err := h.categories.Get(r.Context(), id, current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "Category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid category ID")
		return
	}

	var req models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeValidationError(w, "Name cannot be empty")
		return
	}

	category, err := h.categories.Update(r.Context(), id, current.ID, req)
	if err != nil {
		writeRepositoryError(w, r, err, "Category")
		return
	}

	logRequest(r, "info", "Category updated", zap.Int64("category_id", id), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeValidationError(w, "Invalid category ID")
		return
	}

	deleted, err := h.categories.Delete(r.Context(), id, current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "Category")
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Category not found"))
		return
	}

	logRequest(r, "info", "Category deleted", zap.Int64("category_id", id), zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
