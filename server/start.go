package server

import (
	"net/http"
	"os"

	"todo-service/config"
	"todo-service/database"
	"todo-service/handlers"
	"todo-service/repository"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// NewRouter builds the full route table against the given database.
// Split out from StartServer so tests can mount it on an httptest server.
func NewRouter(cfg *config.Config, dbConn *sqlx.DB) *mux.Router {
	users := repository.NewUserRepository(dbConn)
	categories := repository.NewCategoryRepository(dbConn)
	tasks := repository.NewTaskRepository(dbConn)

	authn := handlers.NewAuthenticator(users, cfg.Auth.JWTSecret)
	authHandler := handlers.NewAuthHandler(users, cfg.Auth)
	userHandler := handlers.NewUserHandler(users, cfg.Auth)
	categoryHandler := handlers.NewCategoryHandler(categories)
	taskHandler := handlers.NewTaskHandler(tasks, categories)

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	api := r.PathPrefix(cfg.Server.APIPrefix).Subrouter()

	api.HandleFunc("/auth/token", authHandler.Token).Methods(http.MethodPost)
	api.HandleFunc("/auth/users/me", authn.RequireUser(authHandler.Me)).Methods(http.MethodGet)

	// Registration is the only open route besides login and health.
	api.HandleFunc("/users/", userHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/", authn.RequireUser(userHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/users/me", authn.RequireUser(userHandler.UpdateMe)).Methods(http.MethodPut)
	api.HandleFunc("/users/me", authn.RequireUser(userHandler.DeleteMe)).Methods(http.MethodDelete)
	api.HandleFunc("/users/me/disable", authn.RequireUser(userHandler.DisableMe)).Methods(http.MethodPost)

	api.HandleFunc("/tasks/", authn.RequireUser(taskHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/tasks/", authn.RequireUser(taskHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}", authn.RequireUser(taskHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}", authn.RequireUser(taskHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id:[0-9]+}", authn.RequireUser(taskHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/toggle", authn.RequireUser(taskHandler.Toggle)).Methods(http.MethodPatch)

	api.HandleFunc("/categories/", authn.RequireUser(categoryHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/categories/", authn.RequireUser(categoryHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", authn.RequireUser(categoryHandler.Get)).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", authn.RequireUser(categoryHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id:[0-9]+}", authn.RequireUser(categoryHandler.Delete)).Methods(http.MethodDelete)

	return r
}

// StartServer initializes logging and storage, then serves until failure.
func StartServer(cfg *config.Config) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Todo Service...", zap.String("config", cfg.String()))

	dbConn := database.InitializeDatabase(cfg.Database)
	defer dbConn.Close()

	router := NewRouter(cfg, dbConn)

	logger.Info("Todo Service listening", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		logger.Error("Server failed", zap.Error(err))
		os.Exit(1)
	}
}
