package handlers

import (
	"errors"
	"net/http"
	"strings"

	"todo-service/auth"
	"todo-service/repository"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// Authenticator resolves bearer tokens into authenticated users.
// Every failure mode of token extraction, verification, and user lookup
// collapses into the same 401 so callers cannot probe which step failed.
type Authenticator struct {
	users  repository.UserRepositoryI
	secret string
}

func NewAuthenticator(users repository.UserRepositoryI, secret string) *Authenticator {
	return &Authenticator{users: users, secret: secret}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireUser wraps a handler with bearer authentication. The resolved user
// is stored in the request context; inactive accounts are rejected with a
// validation error rather than 401, mirroring the distinction between "who
// are you" and "your account is disabled".
func (a *Authenticator) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, "Not authenticated")
			return
		}

		username, err := auth.ParseAccessToken(token, a.secret)
		if err != nil {
			writeUnauthorized(w, "Could not validate credentials")
			return
		}

		user, err := a.users.GetByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeUnauthorized(w, "Could not validate credentials")
				return
			}
			logRequest(r, "error", "User lookup failed during auth", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Database error"))
			return
		}

		if !user.IsActive {
			writeValidationError(w, "Inactive user")
			return
		}

		next(w, r.WithContext(auth.WithUser(r.Context(), user)))
	}
}
