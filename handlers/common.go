package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"todo-service/repository"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// logRequest logs a request-scoped message with method/path fields attached.
// Shared by all handlers; matches logger.Info("msg", fields...) usage elsewhere.
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(message, allFields...)
	case "error":
		logger.Error(message, allFields...)
	case "debug":
		logger.Debug(message, allFields...)
	}
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeValidationError writes a 400 with a validation error body.
func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errs.NewValidationError(message))
}

// writeUnauthorized writes a 401 with the bearer challenge header.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSON(w, http.StatusUnauthorized, errs.NewValidationError(message))
}

// writeRepositoryError maps repository failures onto stable HTTP responses.
// entity names the resource for the not-found message, e.g. "Task".
// Unclassified errors are logged and surface as a generic 500.
func writeRepositoryError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errs.NewNotFoundError(entity+" not found"))
	case errors.Is(err, repository.ErrDuplicate):
		writeValidationError(w, entity+" already exists")
	default:
		logRequest(r, "error", "Repository error", zap.Error(err), zap.String("entity", entity))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Database error"))
	}
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	idStr := mux.Vars(r)["id"]
	return strconv.ParseInt(idStr, 10, 64)
}

// pagination parses skip/limit query parameters with defaults.
func pagination(r *http.Request) (skip, limit int) {
	skip, limit = 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}

// HealthCheck handles GET /health - liveness probe, no auth.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy", "service": "todo-service"}`))
}
