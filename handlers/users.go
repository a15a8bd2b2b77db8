package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"todo-service/auth"
	"todo-service/config"
	"todo-service/models"
	"todo-service/repository"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)
)

const minPasswordLength = 8

// UserHandler handles account registration and self-service operations.
type UserHandler struct {
	users repository.UserRepositoryI
	cfg   config.AuthConfig
}

func NewUserHandler(users repository.UserRepositoryI, cfg config.AuthConfig) *UserHandler {
	return &UserHandler{users: users, cfg: cfg}
}

// Create handles POST /users/ - register a new account (no auth required).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}

	if !emailRe.MatchString(req.Email) {
		writeValidationError(w, "Invalid email address")
		return
	}
	if !usernameRe.MatchString(req.Username) {
		writeValidationError(w, "Username must be 3-50 characters of letters, digits, underscore or dash")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeValidationError(w, "Password must be at least 8 characters long")
		return
	}

	// Distinct message for a taken email, matching the register flow UI copy.
	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeValidationError(w, "Email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		writeRepositoryError(w, r, err, "User")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		logRequest(r, "error", "Password hashing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to process password"))
		return
	}

	user, err := h.users.Create(r.Context(), req, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeValidationError(w, "Username already taken")
			return
		}
		writeRepositoryError(w, r, err, "User")
		return
	}

	logRequest(r, "info", "User created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	writeJSON(w, http.StatusCreated, user)
}

// List handles GET /users/ - paginated user listing, protected.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	users, err := h.users.List(r.Context(), skip, limit)
	if err != nil {
		writeRepositoryError(w, r, err, "User")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateMe handles PUT /users/me - sparse self-update.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	var req models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON")
		return
	}

	if req.Email != nil && !emailRe.MatchString(*req.Email) {
		writeValidationError(w, "Invalid email address")
		return
	}
	if req.Username != nil && !usernameRe.MatchString(*req.Username) {
		writeValidationError(w, "Username must be 3-50 characters of letters, digits, underscore or dash")
		return
	}

	var hash *string
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			writeValidationError(w, "Password must be at least 8 characters long")
			return
		}
		hashed, err := auth.HashPassword(*req.Password, h.cfg.BcryptCost)
		if err != nil {
			logRequest(r, "error", "Password hashing failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to process password"))
			return
		}
		hash = &hashed
	}
	// Activation state is not self-serviced through this route.
	req.IsActive = nil

	user, err := h.users.Update(r.Context(), current.ID, req, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeValidationError(w, "Email or username already taken")
			return
		}
		writeRepositoryError(w, r, err, "User")
		return
	}

	logRequest(r, "info", "User updated", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusOK, user)
}

// DeleteMe handles DELETE /users/me - removes the account and, by cascade,
// all of its tasks and categories.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	deleted, err := h.users.Delete(r.Context(), current.ID)
	if err != nil {
		writeRepositoryError(w, r, err, "User")
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("User not found"))
		return
	}

	logRequest(r, "info", "User deleted", zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// DisableMe handles POST /users/me/disable - marks the account inactive.
// Subsequent authenticated requests fail the active check.
func (h *UserHandler) DisableMe(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}

	inactive := false
	if _, err := h.users.Update(r.Context(), current.ID, models.UserUpdate{IsActive: &inactive}, nil); err != nil {
		writeRepositoryError(w, r, err, "User")
		return
	}

	logRequest(r, "info", "User disabled", zap.Int64("user_id", current.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "User disabled successfully"})
}
