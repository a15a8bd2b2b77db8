package handlers

import (
	"errors"
	"net/http"

	"todo-service/auth"
	"todo-service/config"
	"todo-service/models"
	"todo-service/repository"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// AuthHandler handles login and current-user endpoints.
type AuthHandler struct {
	users repository.UserRepositoryI
	cfg   config.AuthConfig
}

func NewAuthHandler(users repository.UserRepositoryI, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// Token handles POST /auth/token - form-encoded username+password login.
// Bad username and bad password produce the same 401.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeValidationError(w, "Invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeValidationError(w, "Username and password are required")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeUnauthorized(w, "Incorrect username or password")
			return
		}
		logRequest(r, "error", "User lookup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Database error"))
		return
	}
	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		writeUnauthorized(w, "Incorrect username or password")
		return
	}

	token, err := auth.CreateAccessToken(user.Username, h.cfg.JWTSecret, h.cfg.AccessTokenTTL)
	if err != nil {
		logRequest(r, "error", "Token issuance failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to issue token"))
		return
	}

	logRequest(r, "info", "Login successful", zap.String("username", user.Username))
	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me handles GET /auth/users/me - current user profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
