package database

import (
	"os"

	"todo-service/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Open connects to the SQLite database behind the DSN and applies pending
// migrations. Foreign key enforcement is expected to be enabled through the
// DSN (_foreign_keys=on); Open additionally sets a busy timeout so concurrent
// request transactions queue instead of failing immediately.
func Open(dsn string) (*sqlx.DB, error) {
	conn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     dsn,
	})
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := applyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// InitializeDatabase opens the configured database or exits the process.
func InitializeDatabase(cfg config.DatabaseConfig) *sqlx.DB {
	conn, err := Open(cfg.DSN)
	if err != nil {
		logger.Error("Error while initializing database", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully")
	return conn
}
