package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/users-api/internal/config"
	"github.com/phrazzld/users-api/internal/platform/postgres"
	"github.com/phrazzld/users-api/internal/store"
	"github.com/phrazzld/users-api/internal/store/memory"
)

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when users are kept in memory.
	db *sql.DB

	userStore store.UserStore
}

// newApplication creates a new application instance with all dependencies initialized.
// With the postgres store it opens the database, applies the embedded schema
// when AutoMigrate is set, and layers GORM on top of the pool.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Database.Store {
	case storeMemory:
		app.userStore = memory.NewUserStore()
		logger.Warn("using in-memory user store; data is lost on shutdown")

	case storePostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, logger); err != nil {
				app.cleanup()
				return nil, err
			}
		}

		gormDB, err := postgres.NewGormDB(db, logger)
		if err != nil {
			app.cleanup()
			return nil, err
		}
		app.userStore = postgres.NewPostgresUserStore(gormDB, logger)

	default:
		return nil, fmt.Errorf("unsupported user store %q", cfg.Database.Store)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}
